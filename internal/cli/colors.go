package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tintstack/tintstack/pkg/colorspec"
	"github.com/tintstack/tintstack/pkg/errors"
	"github.com/tintstack/tintstack/pkg/recipe"
)

// colorOpts holds the mapping-related flags shared by render commands.
type colorOpts struct {
	colors     []string // repeated name=value pairs
	colorsFile string   // TOML file of name = value entries
}

// register adds the shared color flags to cmd.
func (o *colorOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&o.colors, "colors", nil, "color assignment name=value (repeatable)")
	cmd.Flags().StringVar(&o.colorsFile, "colors-file", "", "TOML file with color assignments")
}

// mapping builds the color mapping from the flags. File entries load
// first; --colors pairs overlay them, so a flag wins over the file for
// the same name.
func (o *colorOpts) mapping() (colorspec.Mapping, error) {
	m := colorspec.Mapping{}

	if o.colorsFile != "" {
		values, err := recipe.LoadColors(o.colorsFile)
		if err != nil {
			return nil, err
		}
		m, err = colorspec.MappingFromValues(values)
		if err != nil {
			return nil, err
		}
	}

	for _, pair := range o.colors {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidMapping,
				"invalid --colors value %q, want name=value", pair)
		}
		if err := errors.ValidateColorName(name); err != nil {
			return nil, err
		}
		m[name] = colorspec.String(value)
	}

	return m, nil
}
