// Package imageio provides the image loading and writing collaborators
// for the render pipeline.
//
// The compositing engine itself never touches the filesystem: it
// receives decoded *image.NRGBA stencils from a Loader and hands the
// final image to a Writer. Both collaborators are small interfaces so
// tests can substitute in-memory fakes.
package imageio

import (
	"strings"

	"github.com/disintegration/imaging"

	"github.com/tintstack/tintstack/pkg/errors"
)

// formats maps format identifiers to their encoders.
var formats = map[string]imaging.Format{
	"png":  imaging.PNG,
	"jpeg": imaging.JPEG,
	"jpg":  imaging.JPEG,
	"gif":  imaging.GIF,
	"tiff": imaging.TIFF,
	"tif":  imaging.TIFF,
	"bmp":  imaging.BMP,
}

// alphaCapable lists the formats that persist an alpha channel
// losslessly. Lossy or alpha-less formats are unsupported for
// colorizable stencil layers but fine for flattened output.
var alphaCapable = map[string]bool{
	"png":  true,
	"tiff": true,
	"tif":  true,
}

// ParseFormat resolves a format identifier ("png", "jpeg", ...) to an
// encoder. Unknown identifiers fail with INVALID_FORMAT.
func ParseFormat(name string) (imaging.Format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidFormat,
			"unknown output format %q (supported: png, jpeg, gif, tiff, bmp)", name)
	}
	return f, nil
}

// ValidFormat reports whether name is a known format identifier.
func ValidFormat(name string) bool {
	_, ok := formats[strings.ToLower(name)]
	return ok
}

// PreservesAlpha reports whether the named format keeps the alpha
// channel intact.
func PreservesAlpha(name string) bool {
	return alphaCapable[strings.ToLower(name)]
}

// FormatForFilename infers the format identifier from a filename
// extension. Returns INVALID_FORMAT when the extension is unknown.
func FormatForFilename(filename string) (string, error) {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"cannot infer output format from %q: no extension", filename)
	}
	ext := strings.ToLower(filename[idx+1:])
	if !ValidFormat(ext) {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"cannot infer output format from %q: unknown extension %q", filename, ext)
	}
	return ext, nil
}
