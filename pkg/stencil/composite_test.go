package stencil

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/tintstack/tintstack/pkg/colorspec"
	"github.com/tintstack/tintstack/pkg/errors"
)

// solid builds a uniform layer.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestCompositeEmpty(t *testing.T) {
	out, err := Composite(nil)
	if err != nil {
		t.Fatalf("Composite(nil) error: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 0 || b.Dy() != 0 {
		t.Errorf("empty composite bounds = %v, want 0x0", b)
	}
}

func TestCompositeOnEmptyLayerListLeavesCanvasTransparent(t *testing.T) {
	canvas := NewCanvas(5, 5)
	if err := CompositeOn(canvas, nil); err != nil {
		t.Fatalf("CompositeOn error: %v", err)
	}
	for i, p := range canvas.Pix {
		if p != 0 {
			t.Fatalf("canvas byte %d = %d, want fully transparent canvas", i, p)
		}
	}
}

// TestCompositeHalfAlphaBlend verifies that a layer with alpha 128/255
// over a fully opaque layer produces the exact linear blend of the two
// recolored layers.
func TestCompositeHalfAlphaBlend(t *testing.T) {
	dark, err := Recolorize(solid(4, 4, color.NRGBA{A: 0xFF}), colorspec.RGB(0x22, 0x22, 0x77))
	if err != nil {
		t.Fatal(err)
	}
	light, err := Recolorize(solid(4, 4, color.NRGBA{A: 128}), colorspec.RGB(0x77, 0x77, 0xAA))
	if err != nil {
		t.Fatal(err)
	}

	out, err := Composite([]*image.NRGBA{dark, light})
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}

	sa := 128.0 / 255.0
	expect := func(s, d uint8) uint8 {
		// dst is opaque, so out.a = 1 and the blend is linear.
		return uint8(math.Round(float64(s)*sa + float64(d)*(1-sa)))
	}
	want := color.NRGBA{
		R: expect(0x77, 0x22),
		G: expect(0x77, 0x22),
		B: expect(0xAA, 0x77),
		A: 0xFF,
	}

	got := out.NRGBAAt(2, 2)
	if got != want {
		t.Errorf("blended pixel = %+v, want %+v", got, want)
	}
}

func TestCompositeTransparentBottomShowsThrough(t *testing.T) {
	bottom := solid(3, 3, color.NRGBA{R: 200, G: 10, B: 10, A: 0}) // invisible
	top := solid(3, 3, color.NRGBA{R: 0, G: 0, B: 255, A: 128})

	out, err := Composite([]*image.NRGBA{bottom, top})
	if err != nil {
		t.Fatal(err)
	}
	got := out.NRGBAAt(1, 1)
	// Over a fully transparent destination, source-over yields the
	// source unchanged.
	if got.R != 0 || got.G != 0 || got.B != 255 || got.A != 128 {
		t.Errorf("pixel = %+v, want source passthrough (0,0,255,128)", got)
	}
}

// TestCompositeAssociative checks that compositing [A,B,C] equals
// compositing [A,B] and then compositing the result with C.
func TestCompositeAssociative(t *testing.T) {
	a := solid(4, 4, color.NRGBA{R: 30, G: 40, B: 50, A: 255})
	b := solid(4, 4, color.NRGBA{R: 200, G: 100, B: 0, A: 90})
	c := solid(4, 4, color.NRGBA{R: 10, G: 250, B: 128, A: 170})

	all, err := Composite([]*image.NRGBA{a, b, c})
	if err != nil {
		t.Fatal(err)
	}

	ab, err := Composite([]*image.NRGBA{a, b})
	if err != nil {
		t.Fatal(err)
	}
	staged, err := Composite([]*image.NRGBA{ab, c})
	if err != nil {
		t.Fatal(err)
	}

	for i := range all.Pix {
		if all.Pix[i] != staged.Pix[i] {
			t.Fatalf("byte %d differs: [A,B,C]=%d, [[A,B],C]=%d", i, all.Pix[i], staged.Pix[i])
		}
	}
}

func TestCompositeDimensionMismatch(t *testing.T) {
	a := solid(4, 4, color.NRGBA{A: 255})
	b := solid(4, 4, color.NRGBA{A: 255})
	narrow := solid(3, 4, color.NRGBA{A: 255})

	_, err := Composite([]*image.NRGBA{a, b, narrow})
	if !errors.Is(err, errors.ErrCodeDimensionMismatch) {
		t.Fatalf("code = %v, want DIMENSION_MISMATCH", errors.GetCode(err))
	}
	// The failing layer is identified by index.
	if msg := errors.UserMessage(err); msg != "layer 2 is 3x4, want 4x4" {
		t.Errorf("message = %q, want offending layer identified", msg)
	}
}

func TestCompositeOpaqueTopWins(t *testing.T) {
	bottom := solid(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	top := solid(2, 2, color.NRGBA{R: 250, G: 251, B: 252, A: 255})

	out, err := Composite([]*image.NRGBA{bottom, top})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 250, G: 251, B: 252, A: 255}) {
		t.Errorf("pixel = %+v, want top layer verbatim", got)
	}
}
