package fluvial

import (
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// DistanceFields holds the per-station travel-distance rasters and the
// symmetric station distance matrix. Cells outside the area of interest are
// NaN.
type DistanceFields struct {
	Maps   []*Raster
	Matrix [][]float64
}

type DistanceOptions struct {
	// Topography enables clamping the direct path onto the terrain
	// surface where no line of sight exists. Default true.
	Topography *bool
	// AOI restricts the distance maps to a bounding box. Default is the
	// full DEM extent.
	AOI *vec2d.Rect
	// SkipMaps computes only the station distance matrix.
	SkipMaps bool
	Workers  int
	Verbose  bool
}

// pathLength walks from a to b in n interpolation steps, sampling terrain
// elevation at every step, and accumulates the 3D path length. With
// topography enabled, the direct-path elevation profile is clamped down to
// the terrain wherever it would run underground, modelling a wave forced to
// travel along the surface.
func pathLength(dem *Raster, a, b vec2d.T, n int, topography bool) float64 {
	if n < 1 {
		n = 1
	}
	if n == 1 {
		return 0
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	floats.Span(xs, a[0], b[0])
	floats.Span(ys, a[1], b[1])

	zTerrain := make([]float64, n)
	for k := 0; k < n; k++ {
		zTerrain[k] = dem.Sample(xs[k], ys[k])
	}

	zDir := make([]float64, n)
	floats.Span(zDir, zTerrain[0], zTerrain[n-1])
	if topography {
		for k := range zDir {
			if zDir[k] > zTerrain[k] {
				zDir[k] = zTerrain[k]
			}
		}
	}

	total := 0.0
	for k := 1; k < n; k++ {
		total += math.Sqrt(pow2(xs[k]-xs[k-1]) + pow2(ys[k]-ys[k-1]) + pow2(zDir[k]-zDir[k-1]))
	}
	return total
}

// SpatialDistance computes topography-corrected travel distances from every
// station to every DEM cell within the area of interest, and the pairwise
// station distance matrix. The DEM must be free of NaN values and all
// stations must lie within its extent.
func SpatialDistance(stations []vec2d.T, dem *Raster, opts *DistanceOptions) (*DistanceFields, error) {
	var o DistanceOptions
	if opts != nil {
		o = *opts
	}
	topography := true
	if o.Topography != nil {
		topography = *o.Topography
	}

	if anyNaN(dem.Data) {
		return nil, inputErrorf("DEM contains NaN values")
	}
	for i, s := range stations {
		if s[0] < dem.Bounds.Min[0] || s[0] > dem.Bounds.Max[0] ||
			s[1] < dem.Bounds.Min[1] || s[1] > dem.Bounds.Max[1] {
			return nil, boundsErrorf("station %d at (%g, %g) is outside the DEM extent", i, s[0], s[1])
		}
	}

	aoi := dem.Bounds
	if o.AOI != nil {
		aoi = *o.AOI
		if aoi.Min[0] < dem.Bounds.Min[0] || aoi.Max[0] > dem.Bounds.Max[0] ||
			aoi.Min[1] < dem.Bounds.Min[1] || aoi.Max[1] > dem.Bounds.Max[1] {
			return nil, boundsErrorf("AOI extent is beyond the DEM extent")
		}
	}

	cs := dem.CellSize()
	meanRes := (cs[0] + cs[1]) / 2

	out := &DistanceFields{
		Maps:   make([]*Raster, len(stations)),
		Matrix: make([][]float64, len(stations)),
	}

	if !o.SkipMaps {
		err := parallelMap(len(stations), o.Workers, func(i int) error {
			if o.Verbose {
				log.Infof("distance map for station %d", i)
			}
			m := NewRaster(dem.Width, dem.Height, dem.Bounds, dem.Srs)
			stat := stations[i]
			for row := 0; row < dem.Height; row++ {
				for col := 0; col < dem.Width; col++ {
					c := dem.CellCenter(row, col)
					if c[0] < aoi.Min[0] || c[0] > aoi.Max[0] ||
						c[1] < aoi.Min[1] || c[1] > aoi.Max[1] {
						m.SetValue(row, col, math.NaN())
						continue
					}
					l := math.Sqrt(pow2(stat[0]-c[0]) + pow2(stat[1]-c[1]))
					n := int(math.Round(l / meanRes))
					if n < 2 {
						n = 2
					}
					m.SetValue(row, col, pathLength(dem, stat, c, n, topography))
				}
			}
			out.Maps[i] = m
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if o.Verbose {
		log.Info("station distance matrix")
	}
	for i := range stations {
		out.Matrix[i] = make([]float64, len(stations))
	}
	// Upper triangle only, mirrored, so the matrix is symmetric exactly.
	for i := range stations {
		for j := i + 1; j < len(stations); j++ {
			l := math.Sqrt(pow2(stations[i][0]-stations[j][0]) + pow2(stations[i][1]-stations[j][1]))
			n := int(math.Round(l / meanRes))
			if n < 2 {
				n = 2
			}
			d := pathLength(dem, stations[i], stations[j], n, topography)
			out.Matrix[i][j] = d
			out.Matrix[j][i] = d
		}
	}

	return out, nil
}
