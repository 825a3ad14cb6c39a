package imaging

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Perceived luminance above which a swatch counts as light.
const lightLuminance = 0.7

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
//
// RGBColor is comparable and is used directly as a map key when counting
// colors.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBOf converts any color.Color to 8-bit RGB, dropping alpha.
//
// The conversion reads the 16-bit premultiplied components from RGBA() and
// right-shifts them by 8 bits. For opaque colors this is the exact 8-bit value.
func RGBOf(c color.Color) RGBColor {
	r, g, b, _ := c.RGBA()
	return RGBColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBA returns the color as an opaque color.RGBA.
func (c RGBColor) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats the color as a lowercase "#rrggbb" string.
func (c RGBColor) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// String formats the color as an "(r, g, b)" tuple.
func (c RGBColor) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Luminance returns the perceived brightness of the color in [0,1].
//
// The weights are the ITU-R BT.601 luma coefficients:
//
//	luminance = (0.299*R + 0.587*G + 0.114*B) / 255
func (c RGBColor) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

// IsLight reports whether text drawn over this color should be black.
func (c RGBColor) IsLight() bool {
	return c.Luminance() > lightLuminance
}

// ContrastText returns black for light colors and white for dark ones.
func (c RGBColor) ContrastText() color.Color {
	if c.IsLight() {
		return color.Black
	}
	return color.White
}
