package report

import (
	"image"

	"github.com/ironsheep/image-quantize/internal/imaging"
	"github.com/ironsheep/image-quantize/internal/stats"
)

// DefaultFigurePath is where the command line tool writes the figure unless
// told otherwise. The directory is not created.
const DefaultFigurePath = "outout/stats.png"

// SaveFigure renders the figure and writes it to path. The format follows the
// extension; errors wrap imaging.ErrWrite.
func SaveFigure(path string, original, quantized image.Image, res *stats.Result, opts FigureOptions) error {
	fig := RenderFigure(original, quantized, res, opts)
	return imaging.Save(fig, path)
}
