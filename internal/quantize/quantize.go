package quantize

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"

	"github.com/disintegration/imaging"

	imgcolor "github.com/ironsheep/image-quantize/internal/imaging"
)

// ErrQuantize is wrapped by every error returned from this package.
var ErrQuantize = errors.New("cannot quantize image")

// MaxColors is the largest palette an image.Paletted can index.
const MaxColors = 256

// Method names the library used to choose the palette.
type Method string

const (
	// MethodMedianCut uses median cut with mean aggregation.
	MethodMedianCut Method = "mediancut"

	// MethodKMeans uses k-means clustering of pixel colors.
	MethodKMeans Method = "kmeans"

	// MethodDominant uses weighted dominant color extraction.
	MethodDominant Method = "dominant"
)

// Methods returns the supported methods, default first.
func Methods() []Method {
	return []Method{MethodMedianCut, MethodKMeans, MethodDominant}
}

// ParseMethod converts a case-insensitive method name to a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown method %q (valid methods: %v)", ErrQuantize, s, Methods())
}

// Quantizer reduces images to at most Colors() colors.
type Quantizer struct {
	colors int
	method Method
}

// New creates a Quantizer producing at most colors palette entries.
//
// It fails with ErrQuantize if colors is outside [1, MaxColors] or the method
// is not one of Methods(). An empty method selects MethodMedianCut.
func New(colors int, method Method) (*Quantizer, error) {
	if colors < 1 || colors > MaxColors {
		return nil, fmt.Errorf("%w: palette size must be between 1 and %d, got %d", ErrQuantize, MaxColors, colors)
	}
	if method == "" {
		method = MethodMedianCut
	}
	m, err := ParseMethod(string(method))
	if err != nil {
		return nil, err
	}
	return &Quantizer{colors: colors, method: m}, nil
}

// Colors returns the maximum palette size.
func (q *Quantizer) Colors() int {
	return q.colors
}

// Method returns the palette selection method.
func (q *Quantizer) Method() Method {
	return q.method
}

// Image returns a paletted copy of img in which every pixel is the nearest
// palette color. The result has the same dimensions as img and no dithering
// is applied.
func (q *Quantizer) Image(img image.Image) (*image.Paletted, error) {
	flat, err := q.prepare(img)
	if err != nil {
		return nil, err
	}

	pal := q.palette(flat)
	dst := image.NewPaletted(flat.Bounds(), pal)
	draw.Draw(dst, dst.Bounds(), flat, flat.Bounds().Min, draw.Src)
	return dst, nil
}

// Palette returns the colors Image would use for img.
func (q *Quantizer) Palette(img image.Image) (color.Palette, error) {
	flat, err := q.prepare(img)
	if err != nil {
		return nil, err
	}
	return q.palette(flat), nil
}

// Quantize implements draw.Quantizer. It appends at most cap(p)-len(p)
// colors to p; on invalid input p is returned unchanged.
func (q *Quantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	pal, err := q.Palette(m)
	if err != nil {
		return p
	}
	n := cap(p) - len(p)
	if n <= 0 || n > len(pal) {
		n = len(pal)
	}
	return append(p, pal[:n]...)
}

// prepare validates the request and returns an opaque NRGBA copy of img.
func (q *Quantizer) prepare(img image.Image) (*image.NRGBA, error) {
	if q == nil || q.colors < 1 || q.colors > MaxColors {
		return nil, fmt.Errorf("%w: quantizer is not configured with a valid palette size", ErrQuantize)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrQuantize)
	}

	flat := imaging.Clone(img)
	for i := 3; i < len(flat.Pix); i += 4 {
		flat.Pix[i] = 0xff
	}
	return flat, nil
}

func (q *Quantizer) palette(img *image.NRGBA) color.Palette {
	if distinct, ok := distinctColors(img, q.colors); ok {
		return distinct
	}

	var pal color.Palette
	switch q.method {
	case MethodKMeans:
		pal = normalizePalette(kmeansPalette(img, q.colors), q.colors)
	case MethodDominant:
		pal = normalizePalette(dominantPalette(img, q.colors), q.colors)
	}
	if len(pal) == 0 {
		if q.method != MethodMedianCut {
			log.Printf("quantize warning: %s returned an empty palette, falling back to %s", q.method, MethodMedianCut)
		}
		pal = normalizePalette(medianCutPalette(img, q.colors), q.colors)
	}
	return pal
}

// distinctColors returns the colors of img in first-seen order when there are
// at most limit of them.
func distinctColors(img *image.NRGBA, limit int) (color.Palette, bool) {
	seen := make(map[imgcolor.RGBColor]struct{}, limit+1)
	pal := make(color.Palette, 0, limit)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		c := imgcolor.RGBColor{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
		if _, ok := seen[c]; ok {
			continue
		}
		if len(seen) == limit {
			return nil, false
		}
		seen[c] = struct{}{}
		pal = append(pal, c.RGBA())
	}
	return pal, true
}

// normalizePalette makes every entry opaque, drops duplicates and keeps at
// most limit colors.
func normalizePalette(colors []color.Color, limit int) color.Palette {
	seen := make(map[imgcolor.RGBColor]struct{}, len(colors))
	pal := make(color.Palette, 0, limit)
	for _, c := range colors {
		if len(pal) == limit {
			break
		}
		rgb := imgcolor.RGBOf(c)
		if _, ok := seen[rgb]; ok {
			continue
		}
		seen[rgb] = struct{}{}
		pal = append(pal, rgb.RGBA())
	}
	return pal
}
