package sampler

import (
	"github.com/paulmach/orb"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/sphere"
)

// Outline samples the outer boundary of every feature. Each vertex is followed
// by the interpolated points between it and the next vertex of the ring; the
// ring wraps from its last vertex to the first. Segments with an invalid
// endpoint are skipped entirely.
func Outline(fc *geomodel.FeatureCollection, opts ...Option) geomodel.PointBuffer {
	options := loadOptions(sphere.OutlineRadius, opts...)

	buf := geomodel.PointBuffer{}
	if fc == nil {
		return buf
	}

	for _, f := range fc.Features {
		for _, ring := range f.OuterRings() {
			buf = appendRingOutline(buf, ring, options.interpolationSteps, options.radius)
		}
	}
	return buf
}

func appendRingOutline(buf geomodel.PointBuffer, ring orb.Ring, steps int, r float64) geomodel.PointBuffer {
	n := len(ring)
	for i := range n {
		cur := ring[i]
		next := ring[(i+1)%n]
		if !sphere.ValidLonLat(cur) || !sphere.ValidLonLat(next) {
			continue
		}

		buf = buf.Append(sphere.ProjectLonLat(cur, r))
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps+1)
			buf = buf.Append(sphere.ProjectLonLat(lerp(cur, next, t), r))
		}
	}
	return buf
}

// lerp interpolates in planar lon/lat space, not along the great circle.
func lerp(a, b orb.Point, t float64) orb.Point {
	return orb.Point{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
	}
}
