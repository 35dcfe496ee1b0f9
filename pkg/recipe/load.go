package recipe

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tintstack/tintstack/pkg/errors"
)

// Load reads and validates a recipe from a TOML file. A relative
// source_dir in the file is resolved against the recipe file's own
// directory, so recipes can be rendered from anywhere.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "recipe %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidRecipe, err, "reading recipe %s", path)
	}

	var r Recipe
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecipe, err, "parsing recipe %s", path)
	}

	if r.SourceDir == "" {
		r.SourceDir = filepath.Dir(path)
	} else if !filepath.IsAbs(r.SourceDir) {
		r.SourceDir = filepath.Join(filepath.Dir(path), r.SourceDir)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadColors reads a color mapping values file (TOML table of name →
// token). Values may be strings or integer triplets:
//
//	dark  = "#227"
//	light = "rgb(119, 119, 170)"
//	base  = [34, 34, 119]
func LoadColors(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "colors file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidMapping, err, "reading colors file %s", path)
	}

	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMapping, err, "parsing colors file %s", path)
	}
	return values, nil
}
