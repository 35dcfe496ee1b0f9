// Package recipe defines the declarative description of a layered image
// asset: which stencils to stack, in what order, and where the result
// goes.
//
// Recipes are data, not types. A recipe is authored once (in a Go
// literal or a TOML file), validated, and then rendered any number of
// times with different color mappings; rendering never mutates it.
package recipe

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tintstack/tintstack/pkg/errors"
	"github.com/tintstack/tintstack/pkg/imageio"
)

// Layer pairs a color-name with the stencil file it tints. Order within
// the recipe is paint order: first is the bottom layer, last is the top.
type Layer struct {
	// Color is the name looked up in the per-render color mapping.
	// A name absent from the mapping leaves the layer unrecolored.
	Color string `toml:"color"`

	// Source is the stencil image path, relative to the recipe's
	// source directory.
	Source string `toml:"source"`
}

// Recipe is the reusable, color-agnostic description of an asset.
type Recipe struct {
	// SourceDir is the default directory holding the layer sources.
	SourceDir string `toml:"source_dir"`

	// Output is the output filename (basename only; the directory is
	// chosen at render time).
	Output string `toml:"output"`

	// Format identifies the output encoder ("png", "gif", ...).
	// Empty means: infer from the Output extension.
	Format string `toml:"format"`

	// Layers is the ordered stack, bottom first.
	Layers []Layer `toml:"layers"`
}

// Validate checks the recipe for structural problems: empty layer list,
// unsafe paths, bad color names, unknown output format. It returns the
// first problem found.
func (r *Recipe) Validate() error {
	if len(r.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidRecipe, "recipe has no layers")
	}
	if err := errors.ValidateOutputFilename(r.Output); err != nil {
		return err
	}
	if _, err := r.OutputFormat(); err != nil {
		return err
	}
	for i, layer := range r.Layers {
		if err := errors.ValidateColorName(layer.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "layer %d", i)
		}
		if err := errors.ValidateSourceRef(layer.Source); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "layer %d (%s)", i, layer.Color)
		}
	}
	return nil
}

// OutputFormat returns the effective format identifier, inferring it
// from the output filename when Format is unset.
func (r *Recipe) OutputFormat() (string, error) {
	if r.Format != "" {
		if !imageio.ValidFormat(r.Format) {
			return "", errors.New(errors.ErrCodeInvalidFormat,
				"unknown output format %q in recipe", r.Format)
		}
		return strings.ToLower(r.Format), nil
	}
	return imageio.FormatForFilename(r.Output)
}

// SourcePath resolves layer i's source reference against the recipe's
// source directory.
func (r *Recipe) SourcePath(i int) string {
	return filepath.Join(r.SourceDir, r.Layers[i].Source)
}

// OutputPath resolves the output file location. A non-empty dir
// overrides the recipe's default; the filename always comes from the
// recipe.
func (r *Recipe) OutputPath(dir string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, r.Output)
}

// Fingerprint returns a stable textual digest input describing the
// recipe, used for cache keying.
func (r *Recipe) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "out=%s;fmt=%s;dir=%s;", r.Output, r.Format, r.SourceDir)
	for _, layer := range r.Layers {
		fmt.Fprintf(&b, "%s:%s;", layer.Color, layer.Source)
	}
	return b.String()
}
