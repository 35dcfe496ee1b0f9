package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tintstack/tintstack/pkg/colorspec"
	"github.com/tintstack/tintstack/pkg/pipeline"
	"github.com/tintstack/tintstack/pkg/recipe"
)

// recipesOpts holds the command-line flags for the recipes command.
type recipesOpts struct {
	colorOpts
	cacheOpts
	outputDir string // directory for all output files
	refresh   bool   // re-render even on cache hits
	keepGoing bool   // continue after a recipe fails
}

// recipesCommand creates the recipes command for batch rendering every
// recipe in a directory with one shared color mapping.
func (c *CLI) recipesCommand() *cobra.Command {
	var opts recipesOpts

	cmd := &cobra.Command{
		Use:   "recipes <dir>",
		Short: "Render every recipe in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRecipes(cmd.Context(), args[0], &opts)
		},
	}

	opts.colorOpts.register(cmd)
	opts.cacheOpts.register(cmd)
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for the output files (default: current directory)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if the cache has the results")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "continue rendering after a recipe fails")

	return cmd
}

// runRecipes renders all *.toml recipes under dir.
func (c *CLI) runRecipes(ctx context.Context, dir string, opts *recipesOpts) error {
	logger := loggerFromContext(ctx)

	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no recipe files (*.toml) in %s", dir)
	}
	sort.Strings(paths)

	mapping, err := opts.mapping()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cacheOpts)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	rendered, failed := 0, 0

	for _, path := range paths {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(path)))
		spinner.Start()

		result, err := renderOne(ctx, runner, path, mapping, opts)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("%s: %v", filepath.Base(path), err))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			if !opts.keepGoing {
				return err
			}
			continue
		}

		spinner.StopWithSuccess(filepath.Base(path))
		printFile(result.Path)
		printRenderStats(result.Stats.Layers, len(result.Data), result.CacheHit)
		rendered++
	}

	if failed > 0 {
		printWarning("%d of %d recipes failed", failed, len(paths))
	}
	prog.done(fmt.Sprintf("Rendered %d recipes", rendered))
	return nil
}

// renderOne loads and renders a single recipe file.
func renderOne(ctx context.Context, runner *pipeline.Runner, path string, mapping colorspec.Mapping, opts *recipesOpts) (*pipeline.Result, error) {
	rec, err := recipe.Load(path)
	if err != nil {
		return nil, err
	}
	return runner.Render(ctx, rec, mapping, pipeline.Options{
		OutputDir: opts.outputDir,
		Refresh:   opts.refresh,
	})
}
