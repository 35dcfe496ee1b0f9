package stencil

import (
	"image"
	"image/color"
	"testing"

	"github.com/tintstack/tintstack/pkg/colorspec"
	"github.com/tintstack/tintstack/pkg/errors"
)

// gradientStencil builds a stencil whose alpha varies per pixel and
// whose RGB carries arbitrary junk (recoloring must ignore it).
func gradientStencil(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 13),
				G: uint8(y * 29),
				B: uint8((x + y) * 7),
				A: uint8((x*y*255)/(w*h) + x),
			})
		}
	}
	return img
}

func TestRecolorizeSubstitutesRGB(t *testing.T) {
	src := gradientStencil(8, 8)
	out, err := Recolorize(src, colorspec.RGB(0x22, 0x22, 0x77))
	if err != nil {
		t.Fatalf("Recolorize error: %v", err)
	}
	if out == src {
		t.Fatal("Recolorize with concrete color should return a new image")
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := out.NRGBAAt(x, y)
			want := src.NRGBAAt(x, y)
			if got.R != 0x22 || got.G != 0x22 || got.B != 0x77 {
				t.Fatalf("pixel (%d,%d) RGB = (%d,%d,%d), want (34,34,119)", x, y, got.R, got.G, got.B)
			}
			if got.A != want.A {
				t.Fatalf("pixel (%d,%d) alpha = %d, want %d (alpha must be preserved)", x, y, got.A, want.A)
			}
		}
	}
}

func TestRecolorizeNoRecolorIsIdentity(t *testing.T) {
	src := gradientStencil(6, 4)
	out, err := Recolorize(src, colorspec.NoRecolor)
	if err != nil {
		t.Fatalf("Recolorize error: %v", err)
	}
	if out != src {
		t.Error("NoRecolor should return the stencil unchanged (same pointer)")
	}
	for i, p := range src.Pix {
		if out.Pix[i] != p {
			t.Fatalf("pixel byte %d changed under NoRecolor", i)
		}
	}
}

func TestRecolorizeInconsistentStencil(t *testing.T) {
	broken := &image.NRGBA{
		Pix:    make([]byte, 8), // far too small for 4x4
		Stride: 16,
		Rect:   image.Rect(0, 0, 4, 4),
	}
	_, err := Recolorize(broken, colorspec.RGB(1, 2, 3))
	if !errors.Is(err, errors.ErrCodeDimensionMismatch) {
		t.Errorf("code = %v, want DIMENSION_MISMATCH", errors.GetCode(err))
	}

	if _, err := Recolorize(nil, colorspec.RGB(1, 2, 3)); !errors.Is(err, errors.ErrCodeDimensionMismatch) {
		t.Errorf("nil stencil code = %v, want DIMENSION_MISMATCH", errors.GetCode(err))
	}
}

func TestFullyOpaque(t *testing.T) {
	opaque := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xFF
	}
	if !FullyOpaque(opaque) {
		t.Error("FullyOpaque = false for an all-0xFF alpha image")
	}

	opaque.Pix[3] = 0xFE
	if FullyOpaque(opaque) {
		t.Error("FullyOpaque = true with one translucent pixel")
	}
}
