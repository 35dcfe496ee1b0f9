package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tintstack/tintstack/pkg/colorspec"
	"github.com/tintstack/tintstack/pkg/imageio"
	"github.com/tintstack/tintstack/pkg/palette"
)

// paletteOpts holds the command-line flags for the palette command.
type paletteOpts struct {
	names  []string // color-names to bind, most dominant first
	count  int      // number of colors when no names are given
	output string   // write TOML here instead of stdout
}

// paletteCommand creates the palette command. It extracts the dominant
// colors of a reference image and prints them as a colors TOML file
// ready to pass to render --colors-file.
func (c *CLI) paletteCommand() *cobra.Command {
	var opts paletteOpts

	cmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Derive a color mapping from a reference image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(args[0], &opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.names, "names", nil, "color-names to assign, most dominant first")
	cmd.Flags().IntVar(&opts.count, "count", 4, "number of colors to extract when --names is not given")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the colors TOML to a file instead of stdout")

	return cmd
}

// runPalette extracts the palette and emits the TOML mapping.
func runPalette(path string, opts *paletteOpts) error {
	img, err := imageio.NewFileLoader().Load(path)
	if err != nil {
		return err
	}

	names := opts.names
	if len(names) == 0 {
		for i := 0; i < opts.count; i++ {
			names = append(names, fmt.Sprintf("color%d", i+1))
		}
	}

	mapping, err := palette.MappingFor(img, names)
	if err != nil {
		return err
	}

	toml := mappingTOML(mapping)
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(toml), 0o644); err != nil {
			return err
		}
		printSuccess("Wrote %d colors", len(mapping))
		printFile(opts.output)
		return nil
	}
	fmt.Print(toml)
	return nil
}

// mappingTOML serializes a mapping as a colors TOML document with hex
// values, sorted by name for stable output.
func mappingTOML(m colorspec.Mapping) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		resolved, err := colorspec.Resolve(m[name])
		if err != nil || !resolved.Recolor() {
			continue
		}
		fmt.Fprintf(&b, "%s = %q\n", name, resolved.String())
	}
	return b.String()
}
