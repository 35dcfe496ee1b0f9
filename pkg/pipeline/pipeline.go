// Package pipeline orchestrates a complete render: load the stencil for
// each recipe layer, resolve its color through the mapping, recolor,
// composite the stack, encode, and write the output file atomically.
//
// This package is the single entry point shared by the CLI commands; by
// centralizing the sequence here the caching and error-identification
// behavior stays identical across entry points.
//
// # Usage
//
// Create a Runner and render a recipe:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, rec, mapping, pipeline.Options{
//	    OutputDir: "build",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", result.Path)
//
// Render in memory without touching the filesystem output:
//
//	img, err := runner.RenderImage(ctx, rec, mapping)
package pipeline

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a single render. The zero value renders into the
// current directory with caching enabled.
type Options struct {
	// OutputDir overrides where the output file is written. Empty means
	// the current directory.
	OutputDir string

	// Refresh skips cache reads and forces a full re-render. The fresh
	// result is still stored back into the cache.
	Refresh bool

	// Logger overrides the runner's logger for this render.
	Logger *log.Logger
}

// setDefaults fills unset option fields.
func (o *Options) setDefaults(fallback *log.Logger) {
	if o.Logger == nil {
		o.Logger = fallback
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Result contains the outputs of one render.
type Result struct {
	// Image is the composited image. Nil on a cache hit, where only the
	// encoded bytes are available.
	Image *image.NRGBA

	// Data is the encoded output.
	Data []byte

	// Path is where the output file was written.
	Path string

	// Format is the effective output format identifier.
	Format string

	// CacheHit reports whether the encoded output came from the cache.
	CacheHit bool

	// Stats contains timing information.
	Stats Stats
}

// Stats contains render timing and size information.
type Stats struct {
	Layers        int
	LayerTime     time.Duration
	CompositeTime time.Duration
	EncodeTime    time.Duration
}
