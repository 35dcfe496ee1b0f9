package stencil

import (
	"image"
	"math"

	"github.com/tintstack/tintstack/pkg/errors"
)

// Composite alpha-blends an ordered stack of same-sized layers onto a
// fresh transparent canvas, bottom to top, using straight-alpha
// source-over blending:
//
//	out.a   = src.a + dst.a*(1-src.a)
//	out.rgb = (src.rgb*src.a + dst.rgb*dst.a*(1-src.a)) / out.a
//
// with out.rgb = 0 where out.a is zero.
//
// An empty stack yields a 0x0 fully transparent canvas. A layer whose
// dimensions disagree with the first layer fails with
// DIMENSION_MISMATCH, reported once for the first offending layer.
func Composite(layers []*image.NRGBA) (*image.NRGBA, error) {
	if len(layers) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	first := layers[0].Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, first.Dx(), first.Dy()))
	if err := CompositeOn(canvas, layers); err != nil {
		return nil, err
	}
	return canvas, nil
}

// CompositeOn blends layers bottom-to-top over an existing canvas, which
// the caller owns and which may already hold content (it acts as the
// bottom-most layer). The canvas is mutated in place.
func CompositeOn(canvas *image.NRGBA, layers []*image.NRGBA) error {
	if err := checkStencil(canvas); err != nil {
		return err
	}
	cb := canvas.Bounds()
	w, h := cb.Dx(), cb.Dy()

	for i, layer := range layers {
		if err := checkStencil(layer); err != nil {
			return errors.Wrap(errors.ErrCodeDimensionMismatch, err, "layer %d", i)
		}
		lb := layer.Bounds()
		if lb.Dx() != w || lb.Dy() != h {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"layer %d is %dx%d, want %dx%d", i, lb.Dx(), lb.Dy(), w, h)
		}
		blendOver(canvas, layer)
	}
	return nil
}

// blendOver paints src over dst in place. Both images must share
// dimensions; callers have already checked.
func blendOver(dst, src *image.NRGBA) {
	db := dst.Bounds()
	sb := src.Bounds()
	w, h := db.Dx(), db.Dy()

	for y := range h {
		dOff := dst.PixOffset(db.Min.X, db.Min.Y+y)
		sOff := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		for x := range w {
			d := dOff + x*4
			s := sOff + x*4

			sa := float64(src.Pix[s+3]) / 255.0
			if sa == 0 {
				continue
			}
			if sa == 1 {
				copy(dst.Pix[d:d+4], src.Pix[s:s+4])
				continue
			}

			da := float64(dst.Pix[d+3]) / 255.0
			outA := sa + da*(1-sa)
			if outA == 0 {
				dst.Pix[d+0] = 0
				dst.Pix[d+1] = 0
				dst.Pix[d+2] = 0
				dst.Pix[d+3] = 0
				continue
			}

			for c := range 3 {
				sv := float64(src.Pix[s+c])
				dv := float64(dst.Pix[d+c])
				out := (sv*sa + dv*da*(1-sa)) / outA
				dst.Pix[d+c] = uint8(math.Round(out))
			}
			dst.Pix[d+3] = uint8(math.Round(outA * 255.0))
		}
	}
}

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}
