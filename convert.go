package fluvial

import (
	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/flywave/go-geo"
	"github.com/flywave/go-geoid"
)

// SpatialConvert reprojects coordinate pairs between reference systems.
func SpatialConvert(points []vec2d.T, from, to geo.Proj) []vec2d.T {
	if from == nil || to == nil || from.Eq(to) {
		out := make([]vec2d.T, len(points))
		copy(out, points)
		return out
	}
	return from.TransformTo(to, points)
}

// ConvertHeights converts the z component of the given points from the
// given vertical datum to ellipsoid heights. For height-above-ellipsoid
// input only the constant offset is applied; an unknown datum leaves the
// points untouched.
func ConvertHeights(points []vec3d.T, datum geoid.VerticalDatum, offset float64) []vec3d.T {
	out := make([]vec3d.T, len(points))
	copy(out, points)

	if (datum == geoid.HAE && offset == 0) || datum == geoid.UNKNOWN {
		return out
	}
	if datum == geoid.HAE {
		for i := range out {
			out[i][2] += offset
		}
		return out
	}

	gid := geoid.NewGeoid(datum, false)
	for i := range out {
		out[i][2] = gid.ConvertHeight(out[i][0], out[i][1], out[i][2], geoid.GEOIDTOELLIPSOID)
	}
	return out
}
