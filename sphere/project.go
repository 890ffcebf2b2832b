// Package sphere places geographic coordinates on the globe.
//
// The convention puts the north pole at +Y and offsets longitude by 180
// degrees, so the antimeridian is the seam at θ = 0 / 2π.
package sphere

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/paulmach/orb"
)

const (
	FillRadius    = 1.005
	OutlineRadius = 1.01
	CityRadius    = 1.02
)

// Project converts latitude and longitude in degrees to a point on a sphere
// of radius r. Inputs are not validated, see Valid.
func Project(lat, lon, r float64) r3.Vector {
	phi := (s1.Angle(90-lat) * s1.Degree).Radians()
	theta := (s1.Angle(lon+180) * s1.Degree).Radians()

	return r3.Vector{
		X: r * math.Sin(phi) * math.Cos(theta),
		Y: r * math.Cos(phi),
		Z: r * math.Sin(phi) * math.Sin(theta),
	}
}

// ProjectLonLat projects a GeoJSON ordered point.
func ProjectLonLat(p orb.Point, r float64) r3.Vector {
	return Project(p.Lat(), p.Lon(), r)
}

// Unproject is the inverse of Project. Longitude is undefined at the poles
// and reported as -180.
func Unproject(p r3.Vector) (lat, lon float64) {
	r := p.Norm()
	if r == 0 {
		return 0, 0
	}

	phi := s1.Angle(math.Acos(clamp(p.Y/r, -1, 1)))
	theta := s1.Angle(math.Atan2(p.Z, p.X))

	lat = 90 - phi.Degrees()
	lon = theta.Degrees() - 180
	if lon < -180 {
		lon += 360
	}
	return lat, lon
}

// Valid reports whether lat and lon are finite and inside the geographic range.
func Valid(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func ValidLonLat(p orb.Point) bool {
	return Valid(p.Lat(), p.Lon())
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
