package fluvial

import (
	"math"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
)

func rampRaster() *Raster {
	bounds := vec2d.Rect{Min: vec2d.T{0, 0}, Max: vec2d.T{10, 10}}
	r := NewRaster(10, 10, bounds, nil)
	for i := range r.Data {
		r.Data[i] = float64(i + 1)
	}
	return r
}

func TestSpatialClip(t *testing.T) {
	a := assert.New(t)

	r := rampRaster()
	out := SpatialClip(r, 0.9, nil)

	kept := 0
	for _, v := range out.Data {
		if !math.IsNaN(v) {
			kept++
			a.True(v >= 0 && v <= 1)
		}
	}
	a.True(kept >= 10 && kept <= 12)

	// Input raster stays untouched.
	a.Equal(1.0, r.Data[0])
}

func TestSpatialClipReplace(t *testing.T) {
	a := assert.New(t)

	zero := 0.0
	off := false
	out := SpatialClip(rampRaster(), 0.5, &ClipOptions{Replace: &zero, Normalise: &off})

	a.Equal(0.0, out.Data[0])
	a.Equal(100.0, out.Data[99])
	a.False(anyNaN(out.Data))
}

func TestSpatialClipQuantileFallback(t *testing.T) {
	a := assert.New(t)

	// An out-of-range quantile falls back to the full range, clipping
	// everything below the maximum.
	off := false
	out := SpatialClip(rampRaster(), 1.5, &ClipOptions{Normalise: &off})

	finite := 0
	for _, v := range out.Data {
		if !math.IsNaN(v) {
			finite++
		}
	}
	a.Equal(1, finite)
}
