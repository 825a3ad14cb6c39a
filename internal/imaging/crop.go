package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrRegion is wrapped by errors for unknown or empty crop regions.
var ErrRegion = errors.New("invalid region")

// Region names a part of an image. The zero value is the whole image.
type Region string

const (
	RegionFull        Region = ""
	RegionTopLeft     Region = "top-left"
	RegionTopRight    Region = "top-right"
	RegionBottomLeft  Region = "bottom-left"
	RegionBottomRight Region = "bottom-right"
	RegionTopHalf     Region = "top-half"
	RegionBottomHalf  Region = "bottom-half"
	RegionLeftHalf    Region = "left-half"
	RegionRightHalf   Region = "right-half"
	RegionCenter      Region = "center" // middle 50% in each direction
)

// Regions returns the named regions accepted by Crop.
func Regions() []Region {
	return []Region{
		RegionTopLeft, RegionTopRight, RegionBottomLeft, RegionBottomRight,
		RegionTopHalf, RegionBottomHalf, RegionLeftHalf, RegionRightHalf,
		RegionCenter,
	}
}

// Rect returns the rectangle the region covers within b.
func (r Region) Rect(b image.Rectangle) (image.Rectangle, error) {
	w, h := b.Dx(), b.Dy()
	midX, midY := w/2, h/2

	var x1, y1, x2, y2 int
	switch r {
	case RegionFull:
		return b, nil
	case RegionTopLeft:
		x1, y1, x2, y2 = 0, 0, midX, midY
	case RegionTopRight:
		x1, y1, x2, y2 = midX, 0, w, midY
	case RegionBottomLeft:
		x1, y1, x2, y2 = 0, midY, midX, h
	case RegionBottomRight:
		x1, y1, x2, y2 = midX, midY, w, h
	case RegionTopHalf:
		x1, y1, x2, y2 = 0, 0, w, midY
	case RegionBottomHalf:
		x1, y1, x2, y2 = 0, midY, w, h
	case RegionLeftHalf:
		x1, y1, x2, y2 = 0, 0, midX, h
	case RegionRightHalf:
		x1, y1, x2, y2 = midX, 0, w, h
	case RegionCenter:
		qW, qH := w/4, h/4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return image.Rectangle{}, fmt.Errorf("%w: unknown region %q", ErrRegion, string(r))
	}

	rect := image.Rect(x1, y1, x2, y2).Add(b.Min)
	if rect.Empty() {
		return image.Rectangle{}, fmt.Errorf("%w: %s of a %dx%d image has no pixels", ErrRegion, r, w, h)
	}
	return rect, nil
}

// Crop returns the part of img covered by region. The full region returns
// img itself; any other region returns a copy whose bounds start at (0, 0).
func Crop(img image.Image, region Region) (image.Image, error) {
	if region == RegionFull {
		return img, nil
	}
	rect, err := region.Rect(img.Bounds())
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, rect), nil
}
