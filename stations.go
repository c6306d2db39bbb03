package fluvial

import (
	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/flywave/go-geo"
	"github.com/flywave/go-geom"
	"github.com/flywave/go-geom/general"
)

// StationsFromFeatureCollection extracts station coordinates from the point
// features of a GeoJSON feature collection, reprojecting from srs into the
// target system when both are given.
func StationsFromFeatureCollection(fc *geom.FeatureCollection, srs, target geo.Proj) []vec2d.T {
	var out []vec2d.T
	for _, fea := range fc.Features {
		switch g := fea.Geometry.(type) {
		case *general.Point:
			out = append(out, vec2d.T{g.X(), g.Y()})
		case *general.MultiPoint:
			for _, p := range g.Points() {
				out = append(out, vec2d.T{p.X(), p.Y()})
			}
		}
	}
	if srs != nil && target != nil && !srs.Eq(target) {
		out = srs.TransformTo(target, out)
	}
	return out
}
