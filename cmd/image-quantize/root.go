package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-quantize/internal/imaging"
	"github.com/ironsheep/image-quantize/internal/pipeline"
	"github.com/ironsheep/image-quantize/internal/quantize"
)

func newRootCmd() *cobra.Command {
	opts := pipeline.DefaultOptions()
	var (
		method  string
		region  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "image-quantize <input> <output>",
		Short: "Reduce an image to a four-color palette and report color statistics",
		Long: `image-quantize reduces an image to a small palette (four colors by default),
writes the quantized image to <output> (format chosen by extension) and prints
the image details, the most common colors and the mean color.

With --visual it also writes a figure showing the original image, the
quantized image and the color table side by side.`,
		Args:          cobra.ExactArgs(2),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := quantize.ParseMethod(method)
			if err != nil {
				return err
			}
			opts.Method = m
			opts.Region = imaging.Region(region)
			opts.InputPath = args[0]
			opts.OutputPath = args[1]
			if verbose {
				// stdout is for the report
				opts.Logger = log.New(cmd.ErrOrStderr(), "", log.Ldate|log.Ltime|log.Lshortfile)
				opts.Logger.Printf("image-quantize %s (built %s, commit %s)", Version, BuildTime, GitCommit)
			}
			_, err = pipeline.Run(opts, cmd.OutOrStdout())
			return err
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("image-quantize %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit))

	flags := cmd.Flags()
	flags.IntVarP(&opts.Colors, "colors", "k", opts.Colors, "number of palette colors")
	flags.IntVarP(&opts.TopN, "top", "n", opts.TopN, "number of ranked colors to report")
	flags.StringVarP(&method, "method", "m", string(opts.Method), "palette method ("+joinMethods()+")")
	flags.StringVarP(&region, "region", "r", "", "quantize only part of the image ("+joinRegions()+")")
	flags.IntVar(&opts.JPEGQuality, "jpeg-quality", opts.JPEGQuality, "quality (1-100) when the output is a JPEG")
	flags.BoolVarP(&opts.Visual, "visual", "V", false, "also write a figure of the original, quantized image and color table")
	flags.StringVar(&opts.StatsPath, "stats-path", opts.StatsPath, "figure output path (directory must exist)")
	flags.IntVar(&opts.Figure.PanelHeight, "panel-height", opts.Figure.PanelHeight, "figure panel height in pixels")
	flags.BoolVar(&opts.JSON, "json", false, "print the report as JSON")
	flags.BoolVar(&verbose, "verbose", false, "log debug information to stderr")

	return cmd
}

func joinMethods() string {
	methods := quantize.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func joinRegions() string {
	regions := imaging.Regions()
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
