package geomodel

import (
	"github.com/paulmach/orb"
)

// Feature is a named region of the globe. Points in Polygons are
// orb.Point{lon, lat}, in GeoJSON order. Positions that could not be decoded
// are kept as NaN points so ring indices stay aligned with the source.
type Feature struct {
	Admin     string `json:"admin"`
	Name      string `json:"name"`
	Continent string `json:"continent"`

	Polygons orb.MultiPolygon `json:"-"`
}

// OuterRings returns the first ring of every polygon. Holes are not used.
func (f Feature) OuterRings() []orb.Ring {
	rings := make([]orb.Ring, 0, len(f.Polygons))
	for _, p := range f.Polygons {
		if len(p) == 0 {
			continue
		}
		rings = append(rings, p[0])
	}
	return rings
}

// FeatureCollection is loaded once and treated as immutable afterwards.
// Consumers compare collections by pointer.
type FeatureCollection struct {
	Features []Feature
}

func (fc *FeatureCollection) Len() int {
	if fc == nil {
		return 0
	}
	return len(fc.Features)
}
