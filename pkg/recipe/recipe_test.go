package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tintstack/tintstack/pkg/errors"
)

func validRecipe() *Recipe {
	return &Recipe{
		SourceDir: "assets/button",
		Output:    "button.png",
		Format:    "png",
		Layers: []Layer{
			{Color: "dark", Source: "solid.png"},
			{Color: "light", Source: "fade.png"},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validRecipe().Validate(); err != nil {
		t.Fatalf("valid recipe rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Recipe)
	}{
		{"no layers", func(r *Recipe) { r.Layers = nil }},
		{"empty output", func(r *Recipe) { r.Output = "" }},
		{"output with path", func(r *Recipe) { r.Output = "dir/button.png" }},
		{"bad format", func(r *Recipe) { r.Format = "svg" }},
		{"empty color name", func(r *Recipe) { r.Layers[0].Color = "" }},
		{"traversal source", func(r *Recipe) { r.Layers[1].Source = "../../etc/passwd" }},
		{"absolute source", func(r *Recipe) { r.Layers[1].Source = "/tmp/x.png" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(r)
			if err := r.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestOutputFormatInference(t *testing.T) {
	r := validRecipe()
	r.Format = ""
	got, err := r.OutputFormat()
	if err != nil || got != "png" {
		t.Errorf("OutputFormat() = %q, %v, want png", got, err)
	}

	r.Output = "button.art"
	if _, err := r.OutputFormat(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestPaths(t *testing.T) {
	r := validRecipe()
	if got := r.SourcePath(1); got != filepath.Join("assets/button", "fade.png") {
		t.Errorf("SourcePath(1) = %q", got)
	}
	if got := r.OutputPath("/tmp/out"); got != filepath.Join("/tmp/out", "button.png") {
		t.Errorf("OutputPath(dir) = %q", got)
	}
	if got := r.OutputPath(""); got != "button.png" {
		t.Errorf("OutputPath(default) = %q", got)
	}
}

func TestFingerprintStability(t *testing.T) {
	a := validRecipe()
	b := validRecipe()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical recipes should fingerprint identically")
	}

	b.Layers[0], b.Layers[1] = b.Layers[1], b.Layers[0]
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("layer order is significant and must change the fingerprint")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "button.toml")
	content := `
output = "button.png"

[[layers]]
color  = "dark"
source = "solid.png"

[[layers]]
color  = "light"
source = "fade.png"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(r.Layers) != 2 || r.Layers[0].Color != "dark" || r.Layers[1].Color != "light" {
		t.Errorf("layers = %+v", r.Layers)
	}
	// source_dir defaults to the recipe file's directory.
	if r.SourceDir != dir {
		t.Errorf("SourceDir = %q, want %q", r.SourceDir, dir)
	}
	if got := r.SourcePath(0); got != filepath.Join(dir, "solid.png") {
		t.Errorf("SourcePath(0) = %q", got)
	}
}

func TestLoadRelativeSourceDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.toml")
	content := `
source_dir = "assets"
output     = "x.png"

[[layers]]
color  = "base"
source = "base.png"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.SourceDir != filepath.Join(dir, "assets") {
		t.Errorf("SourceDir = %q, want resolved against recipe dir", r.SourceDir)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeSourceNotFound) {
		t.Errorf("missing recipe code = %v, want SOURCE_NOT_FOUND", errors.GetCode(err))
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidRecipe) {
		t.Errorf("bad toml code = %v, want INVALID_RECIPE", errors.GetCode(err))
	}
}

func TestLoadColors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.toml")
	content := `
dark  = "#227"
base  = [34, 34, 119]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	values, err := LoadColors(path)
	if err != nil {
		t.Fatalf("LoadColors error: %v", err)
	}
	if values["dark"] != "#227" {
		t.Errorf("dark = %v", values["dark"])
	}
	if _, ok := values["base"].([]any); !ok {
		// BurntSushi decodes arrays into []interface{}
		t.Errorf("base = %T, want []any", values["base"])
	}
}
