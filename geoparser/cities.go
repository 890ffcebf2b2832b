package geoparser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/sphere"
)

// LoadCities decodes a JSON array of {name, lat, lon}. Cities are projected
// without filtering, so coordinates are validated here.
func LoadCities(r io.Reader) ([]geomodel.City, error) {
	var cities []geomodel.City
	if err := json.NewDecoder(r).Decode(&cities); err != nil {
		return nil, fmt.Errorf("error decoding cities: %w", err)
	}
	for i, c := range cities {
		if !sphere.Valid(c.Lat, c.Lon) {
			return nil, fmt.Errorf("city %d (%q) has invalid coordinates %v, %v", i, c.Name, c.Lat, c.Lon)
		}
	}
	return cities, nil
}

func LoadCitiesFile(name string) ([]geomodel.City, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open file: %w", err)
	}
	defer f.Close()
	return LoadCities(f)
}
