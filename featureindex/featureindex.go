// Package featureindex finds the feature under a point of the globe.
package featureindex

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/sphere"
	"github.com/tidwall/qtree"
)

type Index struct {
	entries []entry
	qt      qtree.QTree
}

type entry struct {
	feature geomodel.Feature
	shape   orb.MultiPolygon
}

// New indexes the outer rings of every feature. Invalid vertices are dropped
// and features without a usable ring are not indexed.
func New(fc *geomodel.FeatureCollection) *Index {
	idx := &Index{}
	if fc == nil {
		return idx
	}

	for _, f := range fc.Features {
		shape := make(orb.MultiPolygon, 0, len(f.Polygons))
		for _, ring := range f.OuterRings() {
			clean := make(orb.Ring, 0, len(ring))
			for _, p := range ring {
				if sphere.ValidLonLat(p) {
					clean = append(clean, p)
				}
			}
			if len(clean) < 3 {
				continue
			}
			shape = append(shape, orb.Polygon{clean})
		}
		if len(shape) == 0 {
			continue
		}

		bound := shape.Bound()
		idx.qt.Insert(bound.Min, bound.Max, len(idx.entries))
		idx.entries = append(idx.entries, entry{feature: f, shape: shape})
	}
	return idx
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

// Lookup returns the first indexed feature containing the point.
func (idx *Index) Lookup(lat, lon float64) (geomodel.Feature, bool) {
	if !sphere.Valid(lat, lon) {
		return geomodel.Feature{}, false
	}
	point := orb.Point{lon, lat}

	found := -1
	idx.qt.Search(point, point, func(_, _ [2]float64, data interface{}) bool {
		i := data.(int)
		if planar.MultiPolygonContains(idx.entries[i].shape, point) {
			if found == -1 || i < found {
				found = i
			}
		}
		return true
	})

	if found == -1 {
		return geomodel.Feature{}, false
	}
	return idx.entries[found].feature, true
}
