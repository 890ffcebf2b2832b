package sampler

import "strings"

const defaultDensityKey = "default"

var defaultDensities = map[string]float64{
	"asia":            4.0,
	"africa":          3.0,
	"north america":   2.5,
	"south america":   2.5,
	"europe":          2.0,
	"oceania":         1.5,
	defaultDensityKey: 2.0,
}

// Density returns the fill multiplier for a continent label.
func Density(continent string) float64 {
	return lookupDensity(defaultDensities, continent)
}

func lookupDensity(table map[string]float64, continent string) float64 {
	if d, ok := table[strings.ToLower(strings.TrimSpace(continent))]; ok {
		return d
	}
	if d, ok := table[defaultDensityKey]; ok {
		return d
	}
	return defaultDensities[defaultDensityKey]
}

// normalizeDensities lower-cases keys and clamps negative or NaN multipliers
// to zero.
func normalizeDensities(table map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(table))
	for k, v := range table {
		if !(v > 0) {
			v = 0
		}
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
