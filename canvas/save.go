package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"TiledMandelbrot/misc"
)

var ErrUnknownFormat = errors.New("unknown image format")

// Formats lists the supported image formats.
var Formats = []string{"png", "jpeg", "bmp", "tiff"}

// FormatFromPath derives the image format from the file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return ""
	}
}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "tiff":
		return ".tif"
	default:
		return "." + format
	}
}

func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes the image scaled by factor to path. The format follows from the extension.
func (c *Canvas) Save(path string, factor float64) error {
	format := FormatFromPath(path)
	if format == "" {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err := misc.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create image: %w", err)
	}

	if err := Encode(f, c.Scaled(factor), format); err != nil {
		f.Close()
		return fmt.Errorf("unable to save image %s: %w", path, err)
	}
	return f.Close()
}
