// Package palette derives color mappings from reference images.
//
// Recipe authors often want a rendered asset to match an existing piece
// of artwork (a logo, a screenshot of the current theme). This package
// extracts the dominant colors from such a reference and binds them to
// recipe color-names, producing a ready-to-use color mapping.
//
// Extraction clusters pixels in CIE Lab space, where euclidean distance
// tracks perceived color difference much better than in RGB.
package palette

import (
	"image"
	"sort"

	"github.com/cenkalti/dominantcolor"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/tintstack/tintstack/pkg/colorspec"
	"github.com/tintstack/tintstack/pkg/errors"
)

// maxSamples caps how many pixels feed the clusterer; larger images are
// sampled on a uniform grid.
const maxSamples = 10000

// Dominant returns the single most dominant color of the image as a
// resolved color.
func Dominant(img image.Image) colorspec.Resolved {
	c := dominantcolor.Find(img)
	return colorspec.RGB(c.R, c.G, c.B)
}

// Extract returns the count most dominant colors, ordered from most to
// least dominant.
func Extract(img image.Image, count int) ([]colorspec.Resolved, error) {
	if count < 1 {
		return nil, errors.New(errors.ErrCodeInvalidMapping, "palette size must be at least 1, got %d", count)
	}

	obs := sampleLab(img)
	if len(obs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMapping, "reference image has no opaque pixels to sample")
	}
	if count > len(obs) {
		count = len(obs)
	}

	km := kmeans.New()
	cs, err := km.Partition(obs, count)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "clustering reference image")
	}

	// Most populated cluster first.
	sort.Slice(cs, func(i, j int) bool {
		return len(cs[i].Observations) > len(cs[j].Observations)
	})

	out := make([]colorspec.Resolved, 0, len(cs))
	for _, c := range cs {
		center := c.Center
		lab := colorful.Lab(center[0], center[1], center[2]).Clamped()
		r, g, b := lab.RGB255()
		out = append(out, colorspec.RGB(r, g, b))
	}
	return out, nil
}

// MappingFor extracts len(names) dominant colors and binds them to the
// given names in dominance order: names[0] gets the most dominant color.
func MappingFor(img image.Image, names []string) (colorspec.Mapping, error) {
	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMapping, "no color names given")
	}
	colors, err := Extract(img, len(names))
	if err != nil {
		return nil, err
	}

	m := make(colorspec.Mapping, len(names))
	for i, name := range names {
		if i >= len(colors) {
			break
		}
		c := colors[i]
		m[name] = colorspec.Triplet(int(c.R), int(c.G), int(c.B))
	}
	return m, nil
}

// sampleLab collects up to maxSamples opaque pixels as Lab coordinates.
// Transparent pixels are skipped: in stencil artwork they carry no
// meaningful color.
func sampleLab(img image.Image) clusters.Observations {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	stride := 1
	for (w/stride)*(h/stride) > maxSamples {
		stride++
	}

	var obs clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			c := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(bl>>8) / 255.0,
			}
			l, la, lb := c.Lab()
			obs = append(obs, clusters.Coordinates{l, la, lb})
		}
	}
	return obs
}
