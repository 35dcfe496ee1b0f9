package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tintstack/tintstack/pkg/cache"
	"github.com/tintstack/tintstack/pkg/colorspec"
	"github.com/tintstack/tintstack/pkg/errors"
	"github.com/tintstack/tintstack/pkg/imageio"
	"github.com/tintstack/tintstack/pkg/observability"
	"github.com/tintstack/tintstack/pkg/recipe"
	"github.com/tintstack/tintstack/pkg/stencil"
)

// Runner executes renders with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store render results. Multiple goroutines can safely use the same
// Runner with different recipes and mappings.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Loader imageio.Loader
	Writer imageio.Writer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Loader: imageio.NewFileLoader(),
		Writer: imageio.NewFileWriter(),
	}
}

// Render executes the complete load → recolor → composite → encode →
// write sequence for one recipe and writes the output file.
//
// The output file is written only after everything else succeeds, and
// the write itself is atomic, so a failed render never leaves a partial
// or stale-looking file behind.
func (r *Runner) Render(ctx context.Context, rec *recipe.Recipe, mapping colorspec.Mapping, opts Options) (*Result, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	opts.setDefaults(r.Logger)

	format, err := rec.OutputFormat()
	if err != nil {
		return nil, err
	}
	outPath := rec.OutputPath(opts.OutputDir)

	if !imageio.PreservesAlpha(format) {
		opts.Logger.Debug("output format drops transparency",
			"format", format, "output", rec.Output)
	}

	result := &Result{Path: outPath, Format: format}

	// Cache lookup. Hashing a source file can fail when the file is
	// missing; in that case skip the cache and let the loader report the
	// failure with the proper layer identification.
	key, keyErr := r.renderKey(rec, mapping)
	if keyErr == nil && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			if err := r.Writer.WriteBytes(data, outPath); err != nil {
				observability.Render().OnWriteDone(ctx, rec.Output, outPath, len(data), err)
				return nil, err
			}
			observability.Render().OnWriteDone(ctx, rec.Output, outPath, len(data), nil)
			opts.Logger.Info("rendered from cache",
				"output", outPath, "bytes", len(data))
			result.Data = data
			result.CacheHit = true
			result.Stats.Layers = len(rec.Layers)
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	img, stats, err := r.renderImage(ctx, rec, mapping, opts.Logger)
	if err != nil {
		return nil, err
	}
	result.Image = img
	result.Stats = stats

	encodeStart := time.Now()
	data, err := imageio.Encode(img, format)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Stats.EncodeTime = time.Since(encodeStart)

	if keyErr == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
	}

	if err := r.Writer.WriteBytes(data, outPath); err != nil {
		observability.Render().OnWriteDone(ctx, rec.Output, outPath, len(data), err)
		return nil, err
	}
	observability.Render().OnWriteDone(ctx, rec.Output, outPath, len(data), nil)

	opts.Logger.Info("rendered recipe",
		"output", outPath,
		"layers", result.Stats.Layers,
		"bytes", len(data),
		"format", format)

	return result, nil
}

// RenderImage runs the in-memory part of the pipeline and returns the
// composited image without encoding or writing anything.
func (r *Runner) RenderImage(ctx context.Context, rec *recipe.Recipe, mapping colorspec.Mapping) (*image.NRGBA, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	img, _, err := r.renderImage(ctx, rec, mapping, logger)
	return img, err
}

// renderImage loads, recolors, and composites all layers.
func (r *Runner) renderImage(ctx context.Context, rec *recipe.Recipe, mapping colorspec.Mapping, logger *log.Logger) (*image.NRGBA, Stats, error) {
	stats := Stats{Layers: len(rec.Layers)}

	layerStart := time.Now()
	layers := make([]*image.NRGBA, 0, len(rec.Layers))
	for i, layer := range rec.Layers {
		if err := ctx.Err(); err != nil {
			return nil, stats, errors.Wrap(errors.ErrCodeInternal, err, "render canceled at layer %d (%s)", i, layer.Color)
		}

		recolored, err := r.renderLayer(ctx, rec, mapping, i)
		if err != nil {
			return nil, stats, err
		}

		// An opaque stencil above the bottom completely hides every
		// layer painted before it.
		if i > 0 && stencil.FullyOpaque(recolored) {
			logger.Warn("layer is fully opaque and hides all layers below it",
				"layer", i, "color", layer.Color, "source", layer.Source)
		}
		layers = append(layers, recolored)
	}
	stats.LayerTime = time.Since(layerStart)

	compositeStart := time.Now()
	img, err := stencil.Composite(layers)
	stats.CompositeTime = time.Since(compositeStart)
	observability.Render().OnCompositeDone(ctx, rec.Output, len(layers), stats.CompositeTime, err)
	if err != nil {
		return nil, stats, err
	}

	logger.Debug("composited layers",
		"layers", len(layers), "duration", stats.CompositeTime)
	return img, stats, nil
}

// renderLayer loads, resolves, and recolors a single layer. Every error
// identifies the layer by index and color-name so a recipe author can
// find the offending entry.
func (r *Runner) renderLayer(ctx context.Context, rec *recipe.Recipe, mapping colorspec.Mapping, i int) (*image.NRGBA, error) {
	layer := rec.Layers[i]
	start := time.Now()
	observability.Render().OnLayerStart(ctx, rec.Output, layer.Color, i)

	src, err := r.Loader.Load(rec.SourcePath(i))
	if err != nil {
		err = errors.Wrap(errors.GetCode(err), err, "layer %d (%s)", i, layer.Color)
		observability.Render().OnLayerDone(ctx, rec.Output, layer.Color, i, time.Since(start), err)
		return nil, err
	}

	resolved, err := colorspec.Resolve(mapping.Lookup(layer.Color))
	if err != nil {
		err = errors.Wrap(errors.GetCode(err), err, "layer %d (%s)", i, layer.Color)
		observability.Render().OnLayerDone(ctx, rec.Output, layer.Color, i, time.Since(start), err)
		return nil, err
	}

	recolored, err := stencil.Recolorize(src, resolved)
	if err != nil {
		err = errors.Wrap(errors.GetCode(err), err, "layer %d (%s)", i, layer.Color)
		observability.Render().OnLayerDone(ctx, rec.Output, layer.Color, i, time.Since(start), err)
		return nil, err
	}

	observability.Render().OnLayerDone(ctx, rec.Output, layer.Color, i, time.Since(start), nil)
	return recolored, nil
}

// renderKey builds the cache key for one render from the recipe, the
// mapping, and the content hashes of all source files.
func (r *Runner) renderKey(rec *recipe.Recipe, mapping colorspec.Mapping) (string, error) {
	hashes := make([]string, 0, len(rec.Layers))
	for i := range rec.Layers {
		h, err := cache.HashFile(rec.SourcePath(i))
		if err != nil {
			return "", err
		}
		hashes = append(hashes, h)
	}
	return r.Keyer.RenderKey(rec.Fingerprint(), mapping.Fingerprint(), hashes), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
