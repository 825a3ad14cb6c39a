package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// ErrWrite is wrapped by every error returned from Save.
var ErrWrite = errors.New("cannot write image")

// DefaultJPEGQuality is the quality Save uses for JPEG output unless
// WithJPEGQuality says otherwise.
const DefaultJPEGQuality = 95

// SaveOption adjusts how Save encodes an image.
type SaveOption func(*saveConfig)

type saveConfig struct {
	quantizer   draw.Quantizer
	numColors   int
	jpegQuality int
}

// WithQuantizer sets the palette builder used when the output is a GIF and
// the image is not already paletted with at most n colors.
func WithQuantizer(q draw.Quantizer, n int) SaveOption {
	return func(c *saveConfig) {
		c.quantizer = q
		c.numColors = n
	}
}

// WithJPEGQuality sets the JPEG quality (1-100). Other values make Save fail.
func WithJPEGQuality(quality int) SaveOption {
	return func(c *saveConfig) {
		c.jpegQuality = quality
	}
}

// Save writes img to path in the format implied by the path's extension.
//
// Supported extensions are .png, .jpg, .jpeg, .gif, .bmp, .tif and .tiff
// (case-insensitive). The parent directory must already exist.
//
// Paletted images keep their palette in PNG and GIF output. JPEG output is
// lossy, so a JPEG file may contain more colors than the image it was written
// from.
//
// # Errors
//
// The returned error wraps ErrWrite when:
//   - the extension is not a supported image format
//   - the JPEG quality is outside 1-100
//   - the file cannot be created (missing directory, permissions)
//   - encoding fails
func Save(img image.Image, path string, opts ...SaveOption) error {
	cfg := saveConfig{numColors: 256, jpegQuality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.jpegQuality < 1 || cfg.jpegQuality > 100 {
		return fmt.Errorf("%w: %s: JPEG quality must be between 1 and 100, got %d", ErrWrite, path, cfg.jpegQuality)
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	encodeOpts := []imaging.EncodeOption{
		imaging.JPEGQuality(cfg.jpegQuality),
		imaging.GIFNumColors(cfg.numColors),
	}
	if cfg.quantizer != nil {
		encodeOpts = append(encodeOpts, imaging.GIFQuantizer(cfg.quantizer))
	}

	if err := imaging.Save(img, path, encodeOpts...); err != nil {
		return fmt.Errorf("%w: failed to save %s: %w", ErrWrite, path, err)
	}
	return nil
}
