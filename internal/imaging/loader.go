package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"

	_ "github.com/disintegration/imaging" // Register BMP and TIFF format decoders
	_ "golang.org/x/image/webp"           // Register WebP format decoder
)

// ErrLoad is wrapped by every error returned from Load and LoadImageInfo.
var ErrLoad = errors.New("cannot load image")

// formatUnknown is the report label used when the decoder name is not known.
const formatUnknown = "N/A"

// ImageInfo contains metadata about a loaded image file.
//
// This struct provides essential information about an image without requiring
// the caller to analyze the image data directly.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the name of the decoder that read the file: "png", "jpeg",
	// "gif", "bmp", "tiff" or "webp". Detection is based on file contents,
	// not the file extension.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// TotalPixels returns Width × Height.
func (i *ImageInfo) TotalPixels() int {
	return i.Width * i.Height
}

// FormatLabel returns the upper-cased format name for display, or "N/A"
// when the format is not known.
func (i *ImageInfo) FormatLabel() string {
	if i == nil || i.Format == "" {
		return formatUnknown
	}
	return strings.ToUpper(i.Format)
}

// Source is a decoded input image together with its file metadata.
type Source struct {
	Image image.Image
	Info  *ImageInfo
}

// Load reads and decodes the image at path.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, GIF, BMP, TIFF and WebP.
//
// Returns:
//   - *Source: The decoded image and its metadata. The concrete image type
//     depends on the format and color model (e.g., *image.NRGBA, *image.YCbCr,
//     *image.Paletted).
//   - error: Non-nil if the file cannot be opened, stat'd or decoded, or if it
//     decodes to an image with no pixels. The error wraps ErrLoad.
func Load(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", ErrLoad, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat file: %w", ErrLoad, err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image %s: %w", ErrLoad, path, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: image %s has no pixels (%dx%d)", ErrLoad, path, bounds.Dx(), bounds.Dy())
	}

	colorDepth, hasAlpha := describeColorModel(img.ColorModel())

	return &Source{
		Image: img,
		Info: &ImageInfo{
			Width:         bounds.Dx(),
			Height:        bounds.Dy(),
			Format:        format,
			ColorDepth:    colorDepth,
			HasAlpha:      hasAlpha,
			FileSizeBytes: stat.Size(),
		},
	}, nil
}

// LoadImageInfo returns the metadata Load would report for path, reading only
// the image header. Errors wrap ErrLoad.
func LoadImageInfo(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", ErrLoad, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat file: %w", ErrLoad, err)
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image header %s: %w", ErrLoad, path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: image %s has no pixels (%dx%d)", ErrLoad, path, cfg.Width, cfg.Height)
	}

	colorDepth, hasAlpha := describeColorModel(cfg.ColorModel)
	return &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// describeColorModel reports the per-channel bit depth and whether the model
// carries alpha. Paletted models have alpha when any entry is not opaque.
func describeColorModel(m color.Model) (depth string, alpha bool) {
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return "8-bit", true
			}
		}
		return "8-bit", false
	}

	switch m {
	case color.RGBAModel, color.NRGBAModel, color.AlphaModel:
		return "8-bit", true
	case color.RGBA64Model, color.NRGBA64Model, color.Alpha16Model:
		return "16-bit", true
	case color.Gray16Model:
		return "16-bit", false
	}
	return "8-bit", false
}
