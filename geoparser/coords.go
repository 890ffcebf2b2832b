package geoparser

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

func decodeGeometry(g *rawGeometry) (orb.MultiPolygon, error) {
	switch g.Type {
	case "Polygon":
		p, err := decodePolygon(g.Coordinates)
		if err != nil {
			return nil, err
		}
		return orb.MultiPolygon{p}, nil
	case "MultiPolygon":
		var polygons []json.RawMessage
		if err := json.Unmarshal(g.Coordinates, &polygons); err != nil {
			return nil, fmt.Errorf("invalid multipolygon coordinates: %w", err)
		}
		mp := make(orb.MultiPolygon, 0, len(polygons))
		for _, raw := range polygons {
			p, err := decodePolygon(raw)
			if err != nil {
				return nil, err
			}
			mp = append(mp, p)
		}
		return mp, nil
	}
	return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
}

func decodePolygon(data json.RawMessage) (orb.Polygon, error) {
	var rings [][]json.RawMessage
	if err := json.Unmarshal(data, &rings); err != nil {
		return nil, fmt.Errorf("invalid polygon coordinates: %w", err)
	}

	polygon := make(orb.Polygon, 0, len(rings))
	for _, positions := range rings {
		ring := make(orb.Ring, 0, len(positions))
		for _, pos := range positions {
			ring = append(ring, decodePosition(pos))
		}
		polygon = append(polygon, ring)
	}
	return polygon, nil
}

// decodePosition never fails, malformed positions become NaN points.
func decodePosition(data json.RawMessage) orb.Point {
	var values []any
	if err := json.Unmarshal(data, &values); err != nil || len(values) < 2 {
		return nanPoint
	}
	lon, ok := values[0].(float64)
	if !ok {
		return nanPoint
	}
	lat, ok := values[1].(float64)
	if !ok {
		return nanPoint
	}
	return orb.Point{lon, lat}
}
