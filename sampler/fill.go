package sampler

import (
	"math"
	"math/rand"

	"github.com/fogleman/poissondisc"
	"github.com/paulmach/orb"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/sphere"
	"github.com/sourcegraph/conc/pool"
)

const poissonAttempts = 10

// Fill scatters points inside every feature by rejection sampling its
// bounding box. The candidate count is samplesPerFeature × continent density.
//
// Every feature gets its own generator seeded from the configured source in
// feature order, so a given seed produces the same buffer for any worker count.
func Fill(fc *geomodel.FeatureCollection, opts ...Option) geomodel.PointBuffer {
	options := loadOptions(sphere.FillRadius, opts...)
	if fc.Len() == 0 {
		return geomodel.PointBuffer{}
	}

	rnd := options.randSource()
	seeds := make([]int64, len(fc.Features))
	for i := range seeds {
		seeds[i] = rnd.Int63()
	}

	parts := make([]geomodel.PointBuffer, len(fc.Features))
	if options.workers <= 1 {
		for i, f := range fc.Features {
			parts[i] = sampleFeature(f, newRand(seeds[i]), options)
		}
	} else {
		p := pool.New().WithMaxGoroutines(options.workers)
		for i, f := range fc.Features {
			p.Go(func() {
				parts[i] = sampleFeature(f, newRand(seeds[i]), options)
			})
		}
		p.Wait()
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	buf := make(geomodel.PointBuffer, 0, total)
	for _, part := range parts {
		buf = append(buf, part...)
	}
	return buf
}

func newRand(seed int64) *rand.Rand {
	//nolint:gosec
	return rand.New(rand.NewSource(seed))
}

func sampleFeature(f geomodel.Feature, rnd *rand.Rand, options options) geomodel.PointBuffer {
	rings := make([]orb.Ring, 0, len(f.Polygons))
	for _, ring := range f.OuterRings() {
		ring = validRing(ring)
		if len(ring) < 3 {
			continue
		}
		rings = append(rings, ring)
	}
	if len(rings) == 0 {
		return nil
	}

	bound := rings[0].Bound()
	for _, ring := range rings[1:] {
		bound = bound.Union(ring.Bound())
	}
	if bound.Max.X() <= bound.Min.X() || bound.Max.Y() <= bound.Min.Y() {
		return nil
	}

	density := lookupDensity(options.densities, f.Continent)
	if density <= 0 {
		return nil
	}

	var candidates []orb.Point
	if options.poissonSpacing > 0 {
		candidates = poissonCandidates(bound, options.poissonSpacing/math.Sqrt(density), rnd)
	} else {
		n := int(math.Floor(options.samplesPerFeature * density))
		if n <= 0 {
			return nil
		}
		candidates = uniformCandidates(bound, n, rnd)
	}

	var buf geomodel.PointBuffer
	for _, c := range candidates {
		for _, ring := range rings {
			if ringContains(ring, c) {
				buf = buf.Append(sphere.ProjectLonLat(c, options.radius))
				break
			}
		}
	}
	return buf
}

func uniformCandidates(bound orb.Bound, n int, rnd *rand.Rand) []orb.Point {
	width := bound.Max.X() - bound.Min.X()
	height := bound.Max.Y() - bound.Min.Y()

	points := make([]orb.Point, n)
	for i := range points {
		points[i] = orb.Point{
			bound.Min.X() + rnd.Float64()*width,
			bound.Min.Y() + rnd.Float64()*height,
		}
	}
	return points
}

func poissonCandidates(bound orb.Bound, spacing float64, rnd *rand.Rand) []orb.Point {
	sampled := poissondisc.Sample(bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y(), spacing, poissonAttempts, rnd)
	points := make([]orb.Point, len(sampled))
	for i, p := range sampled {
		points[i] = orb.Point{p.X, p.Y}
	}
	return points
}

// validRing drops vertices that can not be projected.
func validRing(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, 0, len(ring))
	for _, p := range ring {
		if sphere.ValidLonLat(p) {
			out = append(out, p)
		}
	}
	return out
}

// ringContains is an even-odd test casting a ray towards increasing
// longitude. Points on the boundary are not guaranteed either way, and a
// ring without area contains nothing.
func ringContains(ring orb.Ring, p orb.Point) bool {
	x, y := p[0], p[1]
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a[1] > y) != (b[1] > y) &&
			x < (b[0]-a[0])*(y-a[1])/(b[1]-a[1])+a[0] {
			inside = !inside
		}
	}
	return inside
}
