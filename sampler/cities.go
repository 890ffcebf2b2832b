package sampler

import (
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/sphere"
)

// Cities projects every city, in order, with no filtering.
func Cities(cities []geomodel.City, opts ...Option) geomodel.PointBuffer {
	options := loadOptions(sphere.CityRadius, opts...)

	buf := geomodel.NewPointBuffer(len(cities))
	for _, c := range cities {
		buf = buf.Append(sphere.Project(c.Lat, c.Lon, options.radius))
	}
	return buf
}
