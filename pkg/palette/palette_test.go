package palette

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// blockImage fills the left portion of a 40x40 image with fg and the
// rest with bg. fgFraction is the width fraction covered by fg.
func blockImage(fg, bg color.NRGBA, fgFraction float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	split := int(40 * fgFraction)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < split {
				img.SetNRGBA(x, y, fg)
			} else {
				img.SetNRGBA(x, y, bg)
			}
		}
	}
	return img
}

func colorDist(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func TestDominant(t *testing.T) {
	red := color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	blue := color.NRGBA{R: 30, G: 30, B: 200, A: 255}
	img := blockImage(red, blue, 0.75)

	got := Dominant(img)
	if !got.Recolor() {
		t.Fatal("Dominant should always return a concrete color")
	}
	if colorDist(got.R, got.G, got.B, red.R, red.G, red.B) > 60 {
		t.Errorf("dominant color %s too far from the majority red", got)
	}
}

func TestExtractTwoColors(t *testing.T) {
	red := color.NRGBA{R: 220, G: 20, B: 20, A: 255}
	blue := color.NRGBA{R: 20, G: 20, B: 220, A: 255}
	img := blockImage(red, blue, 0.75)

	got, err := Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(got))
	}

	// The majority color comes first.
	if colorDist(got[0].R, got[0].G, got[0].B, red.R, red.G, red.B) > 30 {
		t.Errorf("first color %s should be close to red", got[0])
	}
	if colorDist(got[1].R, got[1].G, got[1].B, blue.R, blue.G, blue.B) > 30 {
		t.Errorf("second color %s should be close to blue", got[1])
	}
}

func TestExtractSkipsTransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	green := color.NRGBA{R: 10, G: 200, B: 10, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if y < 5 {
				img.SetNRGBA(x, y, green)
			}
			// Bottom half stays fully transparent black.
		}
	}

	got, err := Extract(img, 1)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if colorDist(got[0].R, got[0].G, got[0].B, green.R, green.G, green.B) > 10 {
		t.Errorf("extracted %s, but the only opaque color is green", got[0])
	}
}

func TestExtractRejectsBadArguments(t *testing.T) {
	img := blockImage(color.NRGBA{R: 1, G: 2, B: 3, A: 255}, color.NRGBA{A: 255}, 0.5)
	if _, err := Extract(img, 0); err == nil {
		t.Error("Extract(img, 0) should fail")
	}

	empty := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := Extract(empty, 1); err == nil {
		t.Error("extracting from a fully transparent image should fail")
	}
}

func TestMappingFor(t *testing.T) {
	red := color.NRGBA{R: 220, G: 20, B: 20, A: 255}
	blue := color.NRGBA{R: 20, G: 20, B: 220, A: 255}
	img := blockImage(red, blue, 0.75)

	m, err := MappingFor(img, []string{"body", "trim"})
	if err != nil {
		t.Fatalf("MappingFor failed: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m))
	}
	for _, name := range []string{"body", "trim"} {
		tok := m.Lookup(name)
		if tok.IsNone() {
			t.Errorf("mapping has no entry for %q", name)
		}
	}

	if _, err := MappingFor(img, nil); err == nil {
		t.Error("MappingFor with no names should fail")
	}
}
