// Package geoparser decodes GeoJSON feature collections for the globe.
//
// Decoding is tolerant at the coordinate level: a position that is not an
// array of at least two numbers becomes a NaN point instead of failing the
// whole document, so samplers can skip it.
package geoparser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/royalcat/rgeoglobe/geomodel"
)

var ErrNotFeatureCollection = errors.New("document is not a FeatureCollection")

type rawCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	Properties geojson.Properties `json:"properties"`
	Geometry   *rawGeometry       `json:"geometry"`
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

var nanPoint = orb.Point{math.NaN(), math.NaN()}

func Parse(r io.Reader) (*geomodel.FeatureCollection, error) {
	return parse(r, slog.Default())
}

func parse(r io.Reader, log *slog.Logger) (*geomodel.FeatureCollection, error) {
	var raw rawCollection
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding geojson: %w", err)
	}
	if raw.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: type %q", ErrNotFeatureCollection, raw.Type)
	}

	fc := &geomodel.FeatureCollection{
		Features: make([]geomodel.Feature, 0, len(raw.Features)),
	}
	for i, rf := range raw.Features {
		f := geomodel.Feature{
			Admin:     stringProperty(rf.Properties, "admin", "ADMIN"),
			Name:      stringProperty(rf.Properties, "name", "NAME"),
			Continent: stringProperty(rf.Properties, "continent", "CONTINENT"),
		}

		if rf.Geometry == nil {
			log.Debug("feature without geometry skipped", "index", i, "name", f.Name)
			continue
		}

		polygons, err := decodeGeometry(rf.Geometry)
		if err != nil {
			log.Debug("feature geometry skipped", "index", i, "name", f.Name, "error", err.Error())
			continue
		}
		f.Polygons = polygons

		fc.Features = append(fc.Features, f)
	}

	return fc, nil
}

func stringProperty(props geojson.Properties, keys ...string) string {
	for _, k := range keys {
		if v, ok := props[k].(string); ok {
			return v
		}
	}
	return ""
}
