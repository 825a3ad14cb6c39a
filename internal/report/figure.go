package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-quantize/internal/stats"
)

// Figure layout in pixels.
const (
	figureMargin   = 12
	figureGutter   = 12
	titleHeight    = 22
	tableWidth     = 352
	minRowHeight   = 18
	glyphHeight    = 13 // basicfont.Face7x13
	glyphAscent    = 11
	defaultPanelHt = 320
	maxPanelAspect = 2 // panel width limit, as a multiple of the panel height
)

// Table column offsets from the left edge of the table.
var tableColumns = [...]struct {
	title string
	x     int
}{
	{"#", 6},
	{"RGB", 44},
	{"HEX", 158},
	{"Pixels", 216},
	{"%", 294},
}

var (
	headerFill = color.RGBA{230, 230, 230, 255}
	ruleColor  = color.RGBA{191, 191, 191, 255}
)

// FigureOptions controls RenderFigure.
type FigureOptions struct {
	// PanelHeight is the height both images are scaled to. The table uses
	// the same height, growing it if the rows would not fit.
	PanelHeight int
}

// DefaultFigureOptions returns the layout used by the command line tool.
func DefaultFigureOptions() FigureOptions {
	return FigureOptions{PanelHeight: defaultPanelHt}
}

// RenderFigure draws the original image, the quantized image and the color
// table side by side.
//
// The table has a header row, one row per ranked color and a final row for
// the mean color. Each color row is filled with its color and labelled in
// black or white depending on the color's perceived luminance. Row height is
// the panel height divided by the number of rows so the table lines up with
// the images.
func RenderFigure(original, quantized image.Image, res *stats.Result, opts FigureOptions) *image.NRGBA {
	rows := len(res.Ranked) + 2
	panelH := opts.PanelHeight
	if panelH <= 0 {
		panelH = defaultPanelHt
	}
	if panelH < rows*minRowHeight {
		panelH = rows * minRowHeight
	}

	maxW := maxPanelAspect * panelH
	orig := scaleToPanel(original, maxW, panelH, imaging.Lanczos)
	quant := scaleToPanel(quantized, maxW, panelH, imaging.NearestNeighbor)

	width := figureMargin + orig.Bounds().Dx() + figureGutter + quant.Bounds().Dx() + figureGutter + tableWidth + figureMargin
	height := figureMargin + titleHeight + panelH + figureMargin
	canvas := imaging.New(width, height, color.White)

	top := figureMargin + titleHeight
	x := figureMargin
	drawText(canvas, x, figureMargin+glyphAscent+2, "Original", color.Black)
	canvas = imaging.Paste(canvas, orig, image.Pt(x, top))

	x += orig.Bounds().Dx() + figureGutter
	drawText(canvas, x, figureMargin+glyphAscent+2, fmt.Sprintf("Quantized (%d colors)", res.Distinct), color.Black)
	canvas = imaging.Paste(canvas, quant, image.Pt(x, top))

	x += quant.Bounds().Dx() + figureGutter
	drawText(canvas, x, figureMargin+glyphAscent+2, "Color Statistics", color.Black)
	drawTable(canvas, image.Rect(x, top, x+tableWidth, top+panelH), res)

	return canvas
}

// scaleToPanel resizes img to height h, preserving its aspect ratio. Images
// that would end up wider than maxW are scaled to width maxW instead and come
// out shorter than h.
func scaleToPanel(img image.Image, maxW, h int, filter imaging.ResampleFilter) *image.NRGBA {
	b := img.Bounds()
	w := (b.Dx()*h + b.Dy()/2) / b.Dy()
	if w > maxW {
		w = maxW
		h = (b.Dy()*maxW + b.Dx()/2) / b.Dx()
	}
	return imaging.Resize(img, max(w, 1), max(h, 1), filter)
}

func drawTable(dst draw.Image, r image.Rectangle, res *stats.Result) {
	rows := len(res.Ranked) + 2
	rowH := r.Dy() / rows

	row := func(i int) image.Rectangle {
		y0 := r.Min.Y + i*rowH
		y1 := y0 + rowH
		if i == rows-1 {
			y1 = r.Max.Y
		}
		return image.Rect(r.Min.X, y0, r.Max.X, y1)
	}

	header := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		header[i] = col.title
	}
	drawRow(dst, row(0), headerFill, color.Black, header)

	for i, rc := range res.Ranked {
		drawRow(dst, row(i+1), rc.Color.RGBA(), rc.Color.ContrastText(), []string{
			strconv.Itoa(i + 1),
			rc.Color.String(),
			rc.Hex,
			strconv.Itoa(rc.Count),
			FormatPercentage(rc.Percentage),
		})
	}

	drawRow(dst, row(rows-1), res.Mean.RGBA(), res.Mean.ContrastText(), []string{
		"Mean",
		res.Mean.String(),
		res.MeanHex,
		"",
		"",
	})

	// Rules between rows and a frame around the table.
	for i := 1; i < rows; i++ {
		fillRect(dst, image.Rect(r.Min.X, row(i).Min.Y, r.Max.X, row(i).Min.Y+1), ruleColor)
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), ruleColor)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), ruleColor)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), ruleColor)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), ruleColor)
}

func drawRow(dst draw.Image, r image.Rectangle, bg, fg color.Color, cells []string) {
	fillRect(dst, r, bg)
	baseline := r.Min.Y + (r.Dy()-glyphHeight)/2 + glyphAscent
	for i, text := range cells {
		if text == "" {
			continue
		}
		drawText(dst, r.Min.X+tableColumns[i].x, baseline, text, fg)
	}
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawText draws text with its baseline at y.
func drawText(dst draw.Image, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
