package fluvial

import (
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func pulseTrace(n, center int) []float64 {
	out := make([]float64, n)
	out[center-1] = 0.5
	out[center] = 1
	out[center+1] = 0.5
	return out
}

func TestCrossCorrelate(t *testing.T) {
	a := assert.New(t)

	n := 64
	x := pulseTrace(n, 30)
	y := pulseTrace(n, 20)

	cc := crossCorrelate(x, y)
	a.Len(cc, 2*n-1)

	// The pulse in x trails the one in y by ten samples.
	best := floats.MaxIdx(cc)
	a.Equal(10, best-(n-1))
}

func TestSpatialMigrate(t *testing.T) {
	a := assert.New(t)

	dem := flatDEM(50, 50, 0)
	stations := []vec2d.T{{10, 25}, {40, 25}}
	fields, err := SpatialDistance(stations, dem, nil)
	a.NoError(err)

	// Source at (15, 25): five units from the first station, twenty five
	// from the second. At v = 5 the second arrival trails by four
	// samples of one second each.
	data := [][]float64{pulseTrace(64, 20), pulseTrace(64, 24)}

	out, err := SpatialMigrate(data, fields.Matrix, fields.Maps, 5, 1, nil)
	a.NoError(err)
	a.Equal(dem.Width, out.Width)
	a.Equal(dem.Height, out.Height)

	nearRow, nearCol, ok := dem.CellAt(15, 25)
	a.True(ok)
	farRow, farCol, ok := dem.CellAt(40, 25)
	a.True(ok)
	a.True(out.Value(nearRow, nearCol) > out.Value(farRow, farCol))
}

func TestSpatialMigrateErrors(t *testing.T) {
	a := assert.New(t)

	dem := flatDEM(10, 10, 0)
	fields, err := SpatialDistance([]vec2d.T{{3, 3}, {7, 7}}, dem, nil)
	a.NoError(err)
	data := [][]float64{pulseTrace(32, 10), pulseTrace(32, 12)}

	var cerr *ConfigurationError
	_, err = SpatialMigrate(data[:1], fields.Matrix, fields.Maps, 5, 1, nil)
	a.ErrorAs(err, &cerr)

	_, err = SpatialMigrate([][]float64{data[0], data[1][:16]}, fields.Matrix, fields.Maps, 5, 1, nil)
	a.ErrorAs(err, &cerr)

	var derr *DomainError
	_, err = SpatialMigrate(data, fields.Matrix, fields.Maps, 0, 1, nil)
	a.ErrorAs(err, &derr)

	// A constant trace has no amplitude range to normalize over.
	var ierr *InvalidInputError
	flat := [][]float64{data[0], make([]float64, 32)}
	_, err = SpatialMigrate(flat, fields.Matrix, fields.Maps, 5, 1, nil)
	a.ErrorAs(err, &ierr)
}
