// Package report renders quantization statistics as text, JSON, or a
// composite PNG figure.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ironsheep/image-quantize/internal/stats"
)

// TextOptions controls the plain-text report.
type TextOptions struct {
	// ShowFormat adds the "- Format:" line to the image details.
	ShowFormat bool

	// Format is the label printed on the format line, e.g. "PNG" or "N/A".
	Format string
}

// WriteText writes the human-readable report:
//
//	Image Details:
//	- Dimensions: 2x2
//	- Total Pixels: 4
//	- Format: PNG
//
//	Top 4 Colors:
//	1. RGB: (255, 0, 0), HEX: #ff0000, Pixels: 2, Percentage: 50.00%
//
//	Mean Color:
//	- RGB: (127, 63, 63)
//	- HEX: #7f3f3f
func WriteText(w io.Writer, res *stats.Result, opts TextOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Image Details:")
	fmt.Fprintf(bw, "- Dimensions: %dx%d\n", res.Width, res.Height)
	fmt.Fprintf(bw, "- Total Pixels: %d\n", res.TotalPixels)
	if opts.ShowFormat {
		format := opts.Format
		if format == "" {
			format = "N/A"
		}
		fmt.Fprintf(bw, "- Format: %s\n", format)
	}

	fmt.Fprintf(bw, "\nTop %d Colors:\n", res.TopN)
	for i, rc := range res.Ranked {
		fmt.Fprintf(bw, "%d. RGB: %s, HEX: %s, Pixels: %d, Percentage: %s\n",
			i+1, rc.Color, rc.Hex, rc.Count, FormatPercentage(rc.Percentage))
	}

	fmt.Fprintln(bw, "\nMean Color:")
	fmt.Fprintf(bw, "- RGB: %s\n", res.Mean)
	fmt.Fprintf(bw, "- HEX: %s\n", res.MeanHex)

	return bw.Flush()
}

// FormatPercentage renders a 0-100 share with two decimals, e.g. "25.00%".
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// jsonReport is the document written by WriteJSON.
type jsonReport struct {
	Format string `json:"format"`
	*stats.Result
}

// WriteJSON writes the same data as WriteText as indented JSON.
func WriteJSON(w io.Writer, res *stats.Result, format string) error {
	if format == "" {
		format = "N/A"
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Format: format, Result: res})
}
