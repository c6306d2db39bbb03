package fluvial

import (
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

// SpatialPmax returns the world coordinates of the cell or cells attaining
// the global maximum of the raster. Ties return all maximal cells; a raster
// without finite cells returns nil.
func SpatialPmax(r *Raster) []vec2d.T {
	max := math.Inf(-1)
	found := false
	for _, v := range r.Data {
		if !math.IsNaN(v) && v > max {
			max = v
			found = true
		}
	}
	if !found {
		return nil
	}

	var out []vec2d.T
	for idx, v := range r.Data {
		if v == max {
			out = append(out, r.CellCenter(idx/r.Width, idx%r.Width))
		}
	}
	return out
}
