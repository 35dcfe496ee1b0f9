// Package pkg provides the core libraries for Tintstack layer colorization.
//
// # Overview
//
// Tintstack renders recipes: ordered stacks of grayscale stencil images
// that are each tinted with a named color and composited into one output
// image. The pkg directory is organized into three main areas:
//
//  1. [colorspec], [stencil], [recipe] - Domain logic (color resolution,
//     recoloring, compositing, recipe data)
//  2. [cache], [imageio], [observability], [errors] - Infrastructure
//  3. [pipeline] - Orchestration (load → recolor → composite → write)
//
// # Architecture
//
// The typical data flow through Tintstack:
//
//	Recipe (TOML) + Color Mapping
//	         ↓
//	    [recipe] package (validate, resolve paths)
//	         ↓
//	    [colorspec] package (color-name → RGB triplet)
//	         ↓
//	    [stencil] package (recolor + alpha composite)
//	         ↓
//	    [imageio] package (encode + atomic write)
//
// # Quick Start
//
//	rec, err := recipe.Load("badge.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mapping := colorspec.Mapping{"body": colorspec.String("#E94F37")}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Render(ctx, rec, mapping, pipeline.Options{})
package pkg
