package quantize

import (
	"image"
	"image/color"
	"log"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	mediancut "github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Upper bound on pixels fed to k-means; larger images are subsampled.
const maxKMeansSamples = 12000

func medianCutPalette(img image.Image, k int) color.Palette {
	q := mediancut.MedianCutQuantizer{Aggregation: mediancut.Mean}
	return q.Quantize(make(color.Palette, 0, k), img)
}

func kmeansPalette(img *image.NRGBA, k int) color.Palette {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	step := 1
	if width*height > maxKMeansSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxKMeansSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxKMeansSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := img.NRGBAAt(x, y)
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(k, len(dataset)))
	if err != nil {
		log.Printf("quantize warning: kmeans partition failed: %v", err)
		return nil
	}

	// Most populated clusters first so truncation keeps the dominant colors.
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	pal := make(color.Palette, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		r, g, bl := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped().RGB255()
		pal = append(pal, color.RGBA{R: r, G: g, B: bl, A: 0xff})
	}
	return pal
}

func dominantPalette(img image.Image, k int) color.Palette {
	cands := dominantcolor.FindWeight(img, k)
	slices.SortStableFunc(cands, func(a, b dominantcolor.Color) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})

	pal := make(color.Palette, 0, len(cands))
	for _, c := range cands {
		pal = append(pal, color.RGBA{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B, A: 0xff})
	}
	return pal
}
