package fluvial

import (
	"testing"

	"github.com/flywave/go-geom/general"
	"github.com/stretchr/testify/assert"
)

func TestStationsFromFeatureCollection(t *testing.T) {
	a := assert.New(t)

	json := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"name": "ST01"},
			 "geometry": {"type": "Point", "coordinates": [10.5, 47.2]}},
			{"type": "Feature", "properties": {"name": "ST02"},
			 "geometry": {"type": "Point", "coordinates": [10.8, 47.4]}},
			{"type": "Feature", "properties": {},
			 "geometry": {"type": "MultiPoint", "coordinates": [[11.0, 47.0], [11.1, 47.1]]}},
			{"type": "Feature", "properties": {},
			 "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}}
		]
	}`)

	fc, err := general.UnmarshalFeatureCollection(json)
	a.NoError(err)

	stations := StationsFromFeatureCollection(fc, nil, nil)
	a.Len(stations, 4)
	a.Equal(10.5, stations[0][0])
	a.Equal(47.2, stations[0][1])
	a.Equal(11.1, stations[3][0])
}
