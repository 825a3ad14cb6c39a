// Package quantize reduces an image to a small palette of representative
// colors.
//
// The palette itself is always chosen by a third-party library; this package
// only selects the library, normalizes its output and maps every pixel to the
// nearest palette entry.
//
// # Methods
//
//   - mediancut (default): github.com/ericpauley/go-quantize with mean
//     aggregation. Deterministic for a given image and palette size.
//   - kmeans: github.com/muesli/kmeans clustering in RGB space. Cluster seeds
//     are random, so repeated runs may pick slightly different colors.
//   - dominant: github.com/cenkalti/dominantcolor weighted dominant colors.
//
// Images that already contain no more colors than requested pass through
// unchanged under every method.
//
// # Usage
//
//	q, err := quantize.New(4, quantize.MethodMedianCut)
//	if err != nil {
//	    return err
//	}
//	out, err := q.Image(img) // *image.Paletted with at most 4 colors
//
// Quantizer also implements image/draw.Quantizer so it can build GIF palettes.
package quantize
