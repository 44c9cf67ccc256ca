// Package imageio decodes source images into pixmaps and encodes rendered
// pixmaps for export.
//
// Decoding supports PNG, JPEG and GIF from the standard library plus BMP, TIFF
// and WebP from golang.org/x/image. Encoding supports PNG and JPEG.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/bentpixel"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Format is an export encoding.
type Format string

// Export formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// DefaultJPEGQuality is the export quality for opaque images.
const DefaultJPEGQuality = 95

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// ParseFormat maps a format name or file extension to a Format.
// The empty string returns "" and no error, meaning "choose automatically".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "":
		return "", nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Decode decodes an image from r, auto-detecting the format, and returns the
// pixmap with the detected format name.
func Decode(r io.Reader) (*bentpixel.Pixmap, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("imageio: decode: %w", ErrUnsupportedFormat)
		}
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return bentpixel.FromImage(img), format, nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*bentpixel.Pixmap, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	pm, _, err := Decode(bytes.NewReader(data))
	return pm, err
}

// Load decodes the image file at path.
func Load(path string) (*bentpixel.Pixmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	pm, _, err := Decode(f)
	return pm, err
}

// ChooseFormat picks PNG when any pixel is transparent, JPEG otherwise.
func ChooseFormat(pm *bentpixel.Pixmap) Format {
	if pm.HasTransparency() {
		return FormatPNG
	}
	return FormatJPEG
}

// EncodePNG encodes pm as PNG to w.
func EncodePNG(w io.Writer, pm *bentpixel.Pixmap) error {
	if err := png.Encode(w, pm.ToNRGBA()); err != nil {
		return fmt.Errorf("imageio: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes pm as JPEG to w with the given quality (1-100).
func EncodeJPEG(w io.Writer, pm *bentpixel.Pixmap, quality int) error {
	quality = min(max(quality, 1), 100)
	if err := jpeg.Encode(w, pm.ToNRGBA(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("imageio: encode JPEG: %w", err)
	}
	return nil
}

// Encode encodes pm to w. An empty format is resolved with ChooseFormat;
// a non-positive quality means DefaultJPEGQuality. It returns the format used.
func Encode(w io.Writer, pm *bentpixel.Pixmap, f Format, quality int) (Format, error) {
	if f == "" {
		f = ChooseFormat(pm)
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	switch f {
	case FormatPNG:
		return f, EncodePNG(w, pm)
	case FormatJPEG:
		return f, EncodeJPEG(w, pm, quality)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// EncodeToBytes encodes pm in memory.
func EncodeToBytes(pm *bentpixel.Pixmap, f Format, quality int) ([]byte, Format, error) {
	var buf bytes.Buffer
	used, err := Encode(&buf, pm, f, quality)
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), used, nil
}

// Save writes pm to path. The format follows the extension; a path without
// extension gets one from ChooseFormat. It returns the path written.
func Save(path string, pm *bentpixel.Pixmap, quality int) (string, error) {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return "", err
	}
	if f == "" {
		f = ChooseFormat(pm)
		path += f.Ext()
	}

	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("imageio: create file: %w", err)
	}
	if _, err := Encode(out, pm, f, quality); err != nil {
		_ = out.Close()
		return "", err
	}
	return path, out.Close()
}

// ExportName returns the download name for a render exported at now,
// e.g. "bent-pixel-2024-05-01T10-20-30-123Z.jpg".
func ExportName(now time.Time, f Format) string {
	ts := now.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return "bent-pixel-" + ts + f.Ext()
}
