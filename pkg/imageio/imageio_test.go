package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tintstack/tintstack/pkg/errors"
)

// writePNG saves a small test image with a translucent pixel.
func writePNG(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	img.SetNRGBA(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return img
}

func TestFileLoaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stencil.png")
	want := writePNG(t, path)

	got, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
	}
	// Alpha must survive the decode losslessly.
	if p := got.NRGBAAt(1, 1); p.A != 128 {
		t.Errorf("alpha at (1,1) = %d, want 128", p.A)
	}
}

func TestFileLoaderNotFound(t *testing.T) {
	_, err := NewFileLoader().Load(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, errors.ErrCodeSourceNotFound) {
		t.Errorf("code = %v, want SOURCE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestFileLoaderDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(path, []byte("this is not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileLoader().Load(path)
	if !errors.Is(err, errors.ErrCodeSourceDecode) {
		t.Errorf("code = %v, want SOURCE_DECODE_ERROR", errors.GetCode(err))
	}
}

func TestFileWriterAtomic(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 200})

	out := filepath.Join(dir, "nested", "out.png")
	if err := NewFileWriter().Write(img, "png", out); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	// Decodes back with alpha intact.
	loaded, err := NewFileLoader().Load(out)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if p := loaded.NRGBAAt(0, 0); p.A != 200 {
		t.Errorf("alpha = %d, want 200", p.A)
	}

	// No temp droppings left behind.
	entries, err := os.ReadDir(filepath.Dir(out))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestFileWriterUnknownFormat(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	err := NewFileWriter().Write(img, "webp", filepath.Join(t.TempDir(), "out.webp"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"png", "PNG", "jpeg", "jpg", "gif", "tiff", "bmp"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
		}
	}
	if _, err := ParseFormat("svg"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(svg) code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestFormatForFilename(t *testing.T) {
	got, err := FormatForFilename("button.png")
	if err != nil || got != "png" {
		t.Errorf("FormatForFilename(button.png) = %q, %v", got, err)
	}
	if _, err := FormatForFilename("noext"); err == nil {
		t.Error("FormatForFilename(noext) should fail")
	}
	if _, err := FormatForFilename("bad.xyz"); err == nil {
		t.Error("FormatForFilename(bad.xyz) should fail")
	}
}

func TestPreservesAlpha(t *testing.T) {
	if !PreservesAlpha("png") {
		t.Error("png should preserve alpha")
	}
	if PreservesAlpha("jpeg") {
		t.Error("jpeg should not preserve alpha")
	}
}
