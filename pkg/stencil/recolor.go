// Package stencil implements the layer colorization and compositing
// engine.
//
// A stencil is a source image whose shape lives in its alpha channel.
// Recolorize substitutes a stencil's RGB with one resolved color while
// preserving alpha exactly; Composite alpha-blends an ordered stack of
// same-sized layers bottom-to-top onto a transparent canvas using
// source-over blending.
//
// All operations work on non-premultiplied *image.NRGBA so alpha
// preservation and the straight-alpha blend math are exact.
package stencil

import (
	"image"

	"github.com/tintstack/tintstack/pkg/colorspec"
	"github.com/tintstack/tintstack/pkg/errors"
)

// Recolorize returns a layer where every pixel's alpha is copied from
// the stencil and every pixel's RGB is the resolved color. Stencils are
// expected to encode intensity purely via alpha; the stencil's own RGB
// is ignored, not blended.
//
// When color is NoRecolor the stencil is returned unchanged (identity,
// same pointer), which is how rich-color passthrough layers work.
func Recolorize(src *image.NRGBA, color colorspec.Resolved) (*image.NRGBA, error) {
	if err := checkStencil(src); err != nil {
		return nil, err
	}
	if !color.Recolor() {
		return src, nil
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := range h {
		srcOff := src.PixOffset(b.Min.X, b.Min.Y+y)
		outOff := out.PixOffset(0, y)
		for x := range w {
			s := srcOff + x*4
			d := outOff + x*4
			out.Pix[d+0] = color.R
			out.Pix[d+1] = color.G
			out.Pix[d+2] = color.B
			out.Pix[d+3] = src.Pix[s+3] // alpha preserved verbatim
		}
	}
	return out, nil
}

// checkStencil rejects stencils whose pixel buffer disagrees with their
// declared bounds. Decoded images are consistent by construction; this
// guards against hand-built ones.
func checkStencil(img *image.NRGBA) error {
	if img == nil {
		return errors.New(errors.ErrCodeDimensionMismatch, "stencil is nil")
	}
	b := img.Bounds()
	if b.Dx() < 0 || b.Dy() < 0 {
		return errors.New(errors.ErrCodeDimensionMismatch,
			"stencil has negative bounds %v", b)
	}
	if b.Dy() > 0 {
		// The last addressable pixel must fit in the buffer.
		last := img.PixOffset(b.Max.X-1, b.Max.Y-1) + 4
		if last > len(img.Pix) {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"stencil buffer of %d bytes too small for bounds %v", len(img.Pix), b)
		}
	}
	return nil
}

// FullyOpaque reports whether every pixel of the layer has maximum
// alpha. A fully opaque upper layer obscures everything beneath it.
func FullyOpaque(img *image.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			if img.Pix[off+x*4+3] != 0xFF {
				return false
			}
		}
	}
	return true
}
