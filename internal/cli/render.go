package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tintstack/tintstack/pkg/pipeline"
	"github.com/tintstack/tintstack/pkg/recipe"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	colorOpts
	cacheOpts
	outputDir string // directory for the output file
	refresh   bool   // re-render even on a cache hit
}

// renderCommand creates the render command.
//
// With a recipe argument it renders that recipe; with none it opens an
// interactive picker over the *.toml files in the current directory.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [recipe.toml]",
		Short: "Render a recipe into its output image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pickRecipe(args)
			if err != nil {
				return err
			}
			if path == "" {
				printInfo("No recipe selected")
				return nil
			}
			return c.runRender(cmd.Context(), path, &opts)
		},
	}

	opts.colorOpts.register(cmd)
	opts.cacheOpts.register(cmd)
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for the output file (default: current directory)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if the cache has the result")

	return cmd
}

// pickRecipe resolves the recipe path from args, falling back to the
// interactive picker when no argument was given.
func pickRecipe(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return pickRecipeInteractive(cwd)
}

// runRender loads the recipe and mapping and executes one render.
func (c *CLI) runRender(ctx context.Context, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Loading recipe %s", path)

	rec, err := recipe.Load(path)
	if err != nil {
		return err
	}

	mapping, err := opts.mapping()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cacheOpts)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Render(ctx, rec, mapping, pipeline.Options{
		OutputDir: opts.outputDir,
		Refresh:   opts.refresh,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", path)
	printFile(result.Path)
	printRenderStats(result.Stats.Layers, len(result.Data), result.CacheHit)
	return nil
}
