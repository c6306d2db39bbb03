package fluvial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type ClipOptions struct {
	// Replace is assigned to cells below the quantile threshold. Default
	// NaN.
	Replace *float64
	// Normalise rescales the remaining cells to [0, 1]. Default true.
	Normalise *bool
}

// SpatialClip replaces raster values below the given quantile of the finite
// cells. Used to sharpen migration and amplitude rasters before locating
// the source.
func SpatialClip(r *Raster, quantile float64, opts *ClipOptions) *Raster {
	var o ClipOptions
	if opts != nil {
		o = *opts
	}
	replace := math.NaN()
	if o.Replace != nil {
		replace = *o.Replace
	}
	if quantile <= 0 || quantile > 1 {
		quantile = 1
	}

	finite := make([]float64, 0, len(r.Data))
	for _, v := range r.Data {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}

	out := r.Clone()
	if len(finite) == 0 {
		return out
	}
	sort.Float64s(finite)
	threshold := stat.Quantile(quantile, stat.Empirical, finite, nil)

	for i, v := range out.Data {
		if !math.IsNaN(v) && v < threshold {
			out.Data[i] = replace
		}
	}

	normalise := true
	if o.Normalise != nil {
		normalise = *o.Normalise
	}
	if normalise {
		out.Normalise()
	}
	return out
}
