package fluvial

import (
	"math"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
)

func flatDEM(width, height int, elevation float64) *Raster {
	bounds := vec2d.Rect{
		Min: vec2d.T{0, 0},
		Max: vec2d.T{float64(width), float64(height)},
	}
	dem := NewRaster(width, height, bounds, nil)
	dem.Fill(elevation)
	return dem
}

func TestSpatialDistanceFlat(t *testing.T) {
	a := assert.New(t)

	dem := flatDEM(100, 100, 0)
	stations := []vec2d.T{{20, 20}, {80, 20}, {50, 80}}

	fields, err := SpatialDistance(stations, dem, nil)
	a.NoError(err)
	a.Len(fields.Maps, 3)
	a.Len(fields.Matrix, 3)

	for i := range stations {
		a.Equal(0.0, fields.Matrix[i][i])
		for j := range stations {
			a.Equal(fields.Matrix[i][j], fields.Matrix[j][i])
		}
	}

	// On flat terrain the path length collapses to the horizontal
	// distance.
	a.InDelta(60, fields.Matrix[0][1], 1e-9)
	a.InDelta(math.Hypot(30, 60), fields.Matrix[0][2], 1e-9)

	// A station is close to the center of its own cell.
	row, col, ok := dem.CellAt(20, 20)
	a.True(ok)
	a.True(fields.Maps[0].Value(row, col) < math.Sqrt2)
}

func TestSpatialDistanceTopography(t *testing.T) {
	a := assert.New(t)

	// A valley between two elevated rims. The direct path floats above
	// the valley floor and gets clamped onto it, lengthening the path.
	valley := flatDEM(100, 100, 0)
	for row := 0; row < valley.Height; row++ {
		for col := 0; col < valley.Width; col++ {
			c := valley.CellCenter(row, col)
			valley.SetValue(row, col, -50*math.Sin(c[0]/100*math.Pi))
		}
	}
	stations := []vec2d.T{{5, 50}, {95, 50}}

	topo, err := SpatialDistance(stations, valley, &DistanceOptions{SkipMaps: true})
	a.NoError(err)

	off := false
	direct, err := SpatialDistance(stations, valley, &DistanceOptions{
		Topography: &off,
		SkipMaps:   true,
	})
	a.NoError(err)

	a.True(topo.Matrix[0][1] > direct.Matrix[0][1])

	// The matrix is mirrored from one traversal per pair, so symmetry is
	// exact even on uneven terrain.
	a.Equal(topo.Matrix[0][1], topo.Matrix[1][0])
}

func TestSpatialDistanceAOI(t *testing.T) {
	a := assert.New(t)

	dem := flatDEM(50, 50, 0)
	aoi := vec2d.Rect{Min: vec2d.T{10, 10}, Max: vec2d.T{40, 40}}

	fields, err := SpatialDistance([]vec2d.T{{25, 25}}, dem, &DistanceOptions{AOI: &aoi})
	a.NoError(err)

	m := fields.Maps[0]
	a.True(math.IsNaN(m.Value(0, 0)))
	row, col, ok := dem.CellAt(25, 25)
	a.True(ok)
	a.False(math.IsNaN(m.Value(row, col)))
}

func TestSpatialDistanceErrors(t *testing.T) {
	a := assert.New(t)

	dem := flatDEM(50, 50, 0)

	_, err := SpatialDistance([]vec2d.T{{200, 25}}, dem, nil)
	var berr *OutOfBoundsError
	a.ErrorAs(err, &berr)

	huge := vec2d.Rect{Min: vec2d.T{-10, 0}, Max: vec2d.T{50, 50}}
	_, err = SpatialDistance([]vec2d.T{{25, 25}}, dem, &DistanceOptions{AOI: &huge})
	a.ErrorAs(err, &berr)

	dem.SetValue(3, 3, math.NaN())
	_, err = SpatialDistance([]vec2d.T{{25, 25}}, dem, nil)
	var ierr *InvalidInputError
	a.ErrorAs(err, &ierr)
}
