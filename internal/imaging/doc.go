// Package imaging provides the image I/O and color primitives used by the
// quantization pipeline.
//
// This package loads images from disk, writes quantized images back out in a
// format chosen from the file extension, and defines the 8-bit RGB color type
// shared by the statistics and reporting packages. All operations work with
// standard Go image.Image types.
//
// # Supported Formats
//
// Decoding (Load):
//   - PNG, JPEG, GIF: standard library decoders
//   - BMP, TIFF: registered by github.com/disintegration/imaging
//   - WebP: registered by golang.org/x/image/webp
//
// Encoding (Save), selected by extension:
//   - ".png", ".jpg"/".jpeg", ".gif", ".bmp", ".tif"/".tiff"
//
// # Color Representation
//
// Colors are 8-bit RGB triples (RGBColor). Alpha is never part of a color's
// identity; hex strings are lowercase "#rrggbb".
//
// # Error Handling
//
// Load failures wrap ErrLoad and Save failures wrap ErrWrite, so callers can
// classify an error with errors.Is while the message still carries the
// underlying cause:
//   - Missing or unreadable file, undecodable data, zero-pixel image: ErrLoad
//   - Unsupported extension, unwritable path, encoder failure: ErrWrite
package imaging
