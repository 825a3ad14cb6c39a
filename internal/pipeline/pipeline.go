// Package pipeline runs the load → quantize → statistics → write → report
// sequence for a single image.
package pipeline

import (
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"github.com/ironsheep/image-quantize/internal/imaging"
	"github.com/ironsheep/image-quantize/internal/quantize"
	"github.com/ironsheep/image-quantize/internal/report"
	"github.com/ironsheep/image-quantize/internal/stats"
)

// Options controls one pipeline run. All paths are explicit; nothing is read
// from global state.
type Options struct {
	InputPath  string // image to quantize
	OutputPath string // where the quantized image is written; extension selects the format

	JPEGQuality int // 1-100 for JPEG output; 0 selects imaging.DefaultJPEGQuality

	// Region restricts processing to part of the input. The zero value
	// uses the whole image.
	Region imaging.Region

	Colors int             // palette size
	TopN   int             // ranked colors to report
	Method quantize.Method // palette selection method

	Visual    bool   // also render the composite figure
	StatsPath string // figure output path, used when Visual is set
	Figure    report.FigureOptions

	JSON bool // print the report as JSON instead of text

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// DefaultOptions returns the settings used by the command line tool.
func DefaultOptions() Options {
	return Options{
		JPEGQuality: imaging.DefaultJPEGQuality,
		Colors:      4,
		TopN:        stats.DefaultTopN,
		Method:      quantize.MethodMedianCut,
		StatsPath:   report.DefaultFigurePath,
		Figure:      report.DefaultFigureOptions(),
	}
}

// Result holds everything a run produced.
type Result struct {
	Source    *imaging.Source
	Quantized *image.Paletted
	Stats     *stats.Result
}

// Run executes the pipeline and writes the report to w.
//
// The first failing stage aborts the run and its error is returned unchanged,
// so callers can classify it with errors.Is against imaging.ErrLoad,
// imaging.ErrRegion, quantize.ErrQuantize, stats.ErrEmptyImage or
// imaging.ErrWrite. Files written by earlier stages are left in place.
func Run(opts Options, w io.Writer) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	// 1. Load
	start := time.Now()
	src, err := imaging.Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Printf("loaded %s: %dx%d %s, %s, alpha=%t, %d bytes in %s",
		opts.InputPath, src.Info.Width, src.Info.Height, src.Info.FormatLabel(),
		src.Info.ColorDepth, src.Info.HasAlpha, src.Info.FileSizeBytes, time.Since(start))

	img, err := imaging.Crop(src.Image, opts.Region)
	if err != nil {
		return nil, err
	}
	if opts.Region != imaging.RegionFull {
		logger.Printf("cropped to %s: %dx%d", opts.Region, img.Bounds().Dx(), img.Bounds().Dy())
	}

	// 2. Quantize
	start = time.Now()
	q, err := quantize.New(opts.Colors, opts.Method)
	if err != nil {
		return nil, err
	}
	quantized, err := q.Image(img)
	if err != nil {
		return nil, err
	}
	logger.Printf("quantized with %s to %d palette colors in %s", q.Method(), len(quantized.Palette), time.Since(start))

	// 3. Statistics
	res, err := stats.Extract(quantized, opts.TopN)
	if err != nil {
		return nil, err
	}
	logger.Printf("counted %d pixels, %d distinct colors, mean %s", res.TotalPixels, res.Distinct, res.MeanHex)

	// 4. Write
	saveOpts := []imaging.SaveOption{imaging.WithQuantizer(q, q.Colors())}
	if opts.JPEGQuality != 0 {
		saveOpts = append(saveOpts, imaging.WithJPEGQuality(opts.JPEGQuality))
	}
	if err := imaging.Save(quantized, opts.OutputPath, saveOpts...); err != nil {
		return nil, err
	}
	logger.Printf("wrote %s", opts.OutputPath)

	// 5. Report
	if opts.JSON {
		err = report.WriteJSON(w, res, src.Info.FormatLabel())
	} else {
		err = report.WriteText(w, res, report.TextOptions{
			ShowFormat: !opts.Visual,
			Format:     src.Info.FormatLabel(),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	if opts.Visual {
		if err := report.SaveFigure(opts.StatsPath, img, quantized, res, opts.Figure); err != nil {
			return nil, err
		}
		logger.Printf("wrote figure %s", opts.StatsPath)
	}

	return &Result{Source: src, Quantized: quantized, Stats: res}, nil
}
