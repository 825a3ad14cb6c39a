// Package stats counts the colors of an image and derives the ranked color
// table and the count-weighted mean color.
package stats

import (
	"errors"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/image-quantize/internal/imaging"
)

// ErrEmptyImage is returned when an image with no pixels reaches the
// statistics pass. Loading and quantizing already reject such images.
var ErrEmptyImage = errors.New("image has no pixels")

// DefaultTopN is the number of ranked colors kept for reporting.
const DefaultTopN = 4

// Histogram holds the number of pixels of each distinct color.
//
// Colors are kept in the order they were first seen while scanning the image
// row by row, which is the tie-break order used by Ranked.
type Histogram struct {
	order  []imaging.RGBColor
	counts map[imaging.RGBColor]int
	total  int
}

// RankedColor is a color with its pixel count and share of the image.
type RankedColor struct {
	Color      imaging.RGBColor `json:"rgb"`
	Hex        string           `json:"hex"`
	Count      int              `json:"count"`
	Percentage float64          `json:"percentage"` // 0-100, not rounded
}

// CountColors counts every pixel of img in a single pass.
//
// Alpha is ignored; the image is read through its premultiplied RGBA values,
// which equal the straight values for opaque images such as quantizer output.
func CountColors(img image.Image) (*Histogram, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	rgba := clone.AsRGBA(img)
	h := &Histogram{counts: make(map[imaging.RGBColor]int)}
	for i := 0; i+3 < len(rgba.Pix); i += 4 {
		c := imaging.RGBColor{R: rgba.Pix[i], G: rgba.Pix[i+1], B: rgba.Pix[i+2]}
		if _, ok := h.counts[c]; !ok {
			h.order = append(h.order, c)
		}
		h.counts[c]++
		h.total++
	}
	return h, nil
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	return h.total
}

// Len returns the number of distinct colors.
func (h *Histogram) Len() int {
	return len(h.order)
}

// Count returns the number of pixels with color c.
func (h *Histogram) Count(c imaging.RGBColor) int {
	return h.counts[c]
}

// Colors returns the distinct colors in first-seen order.
func (h *Histogram) Colors() []imaging.RGBColor {
	out := make([]imaging.RGBColor, len(h.order))
	copy(out, h.order)
	return out
}

// Ranked returns the n most common colors by descending count. Colors with
// equal counts keep their first-seen order. If n <= 0 or n exceeds the
// number of distinct colors, all colors are returned.
func (h *Histogram) Ranked(n int) []RankedColor {
	ranked := make([]RankedColor, 0, len(h.order))
	for _, c := range h.order {
		count := h.counts[c]
		ranked = append(ranked, RankedColor{
			Color:      c,
			Hex:        c.Hex(),
			Count:      count,
			Percentage: float64(count) / float64(h.total) * 100,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Mean returns the count-weighted mean color. Each channel is floor-divided:
//
//	mean[c] = Σ(color[c] × count) / total
func (h *Histogram) Mean() imaging.RGBColor {
	if h.total == 0 {
		return imaging.RGBColor{}
	}
	var r, g, b uint64
	for c, count := range h.counts {
		r += uint64(c.R) * uint64(count)
		g += uint64(c.G) * uint64(count)
		b += uint64(c.B) * uint64(count)
	}
	total := uint64(h.total)
	return imaging.RGBColor{R: uint8(r / total), G: uint8(g / total), B: uint8(b / total)}
}

// Result is the summary reported for one quantized image.
type Result struct {
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	TotalPixels int              `json:"total_pixels"`
	Distinct    int              `json:"distinct_colors"`
	TopN        int              `json:"top_n"`
	Ranked      []RankedColor    `json:"top_colors"`
	Mean        imaging.RGBColor `json:"mean_rgb"`
	MeanHex     string           `json:"mean_hex"`
}

// Extract counts the colors of img and returns the topN ranked colors and
// the mean color. A topN <= 0 selects DefaultTopN.
func Extract(img image.Image, topN int) (*Result, error) {
	h, err := CountColors(img)
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	bounds := img.Bounds()
	mean := h.Mean()
	return &Result{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		TotalPixels: h.Total(),
		Distinct:    h.Len(),
		TopN:        topN,
		Ranked:      h.Ranked(topN),
		Mean:        mean,
		MeanHex:     mean.Hex(),
	}, nil
}
