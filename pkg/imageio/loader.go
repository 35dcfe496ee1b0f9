package imageio

import (
	"image"
	"os"

	"github.com/disintegration/imaging"

	// Extend the set of decodable source formats beyond what imaging
	// registers itself (png, jpeg, gif, tiff, bmp). WebP is read-only.
	_ "golang.org/x/image/webp"

	"github.com/tintstack/tintstack/pkg/errors"
)

// Loader decodes a stencil image from a source reference. The returned
// image always carries an explicit alpha channel; sources without one
// decode as fully opaque.
type Loader interface {
	Load(path string) (*image.NRGBA, error)
}

// FileLoader loads stencils from the filesystem.
type FileLoader struct{}

// NewFileLoader creates a filesystem-backed loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load opens and decodes the image at path into non-premultiplied RGBA.
// A missing file fails with SOURCE_NOT_FOUND; anything the decoders
// reject fails with SOURCE_DECODE_ERROR.
func (l *FileLoader) Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err,
				"source image %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeSourceDecode, err,
			"opening source image %s", path)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceDecode, err,
			"decoding source image %s", path)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any decoded image to *image.NRGBA without
// premultiplying, preserving the alpha channel losslessly.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}

var _ Loader = (*FileLoader)(nil)
