package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/paulmach/orb"
	"github.com/royalcat/rgeoglobe/bufferio"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/globe"
	"github.com/royalcat/rgeoglobe/sampler"
	"github.com/valyala/fasthttp"
)

func testServer(t testing.TB) *server {
	t.Helper()

	scene := globe.NewScene(geomodel.DefaultCities,
		globe.WithLogger(slog.New(slog.DiscardHandler)),
		globe.WithFillOptions(sampler.WithSeed(1)),
	)
	scene.Update(&geomodel.FeatureCollection{Features: []geomodel.Feature{{
		Admin:     "Squareland",
		Name:      "Square",
		Continent: "Europe",
		Polygons:  orb.MultiPolygon{{orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}},
	}}})

	s, err := newServer(scene)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func getRequestCtx(uri string, values map[string]string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI(uri)
	for k, v := range values {
		ctx.SetUserValue(k, v)
	}
	return ctx
}

func TestLayerHandler_Binary(t *testing.T) {
	s := testServer(t)

	ctx := getRequestCtx("/layers/cities", map[string]string{"layer": "cities"})
	s.LayerHandler(ctx)
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	if ct := string(ctx.Response.Header.ContentType()); ct != "application/octet-stream" {
		t.Fatalf("expected octet-stream, got %s", ct)
	}

	got, err := bufferio.Load(bytes.NewReader(ctx.Response.Body()))
	if err != nil {
		t.Fatal(err)
	}
	want := s.scene.Layers().Cities
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("cities mismatch (-want +got):\n%s", diff)
	}
}

func TestLayerHandler_JSON(t *testing.T) {
	s := testServer(t)

	ctx := getRequestCtx("/layers/fill?format=json", map[string]string{"layer": "fill"})
	s.LayerHandler(ctx)
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}

	var got []float64
	if err := json.Unmarshal(ctx.Response.Body(), &got); err != nil {
		t.Fatal(err)
	}
	want := s.scene.Layers().Fill
	if len(want) == 0 {
		t.Fatal("expected fill points")
	}
	if diff := cmp.Diff([]float64(want), got); diff != "" {
		t.Errorf("fill mismatch (-want +got):\n%s", diff)
	}
}

func TestLayerHandler_Unknown(t *testing.T) {
	s := testServer(t)

	ctx := getRequestCtx("/layers/oceans", map[string]string{"layer": "oceans"})
	s.LayerHandler(ctx)
	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", ctx.Response.StatusCode())
	}
}

func TestRegionHandler(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name   string
		lat    string
		lon    string
		status int
	}{
		{"inside", "5", "5", http.StatusOK},
		{"outside", "-5", "-5", http.StatusNoContent},
		{"not a number", "north", "5", http.StatusBadRequest},
		{"out of range", "95", "5", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := getRequestCtx("/region/"+tt.lat+"/"+tt.lon, map[string]string{"lat": tt.lat, "lon": tt.lon})
			s.RegionHandler(ctx)
			if ctx.Response.StatusCode() != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, ctx.Response.StatusCode())
			}
			if tt.status != http.StatusOK {
				return
			}

			var f geomodel.Feature
			if err := json.Unmarshal(ctx.Response.Body(), &f); err != nil {
				t.Fatal(err)
			}
			if f.Admin != "Squareland" || f.Name != "Square" || f.Continent != "Europe" {
				t.Fatalf("unexpected feature: %+v", f)
			}
		})
	}
}

func BenchmarkHandlers(b *testing.B) {
	s := testServer(b)

	b.Run("LayerHandler-binary", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s.LayerHandler(getRequestCtx("/layers/fill", map[string]string{"layer": "fill"}))
		}
	})

	b.Run("LayerHandler-json", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s.LayerHandler(getRequestCtx("/layers/fill?format=json", map[string]string{"layer": "fill"}))
		}
	})

	b.Run("RegionHandler", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s.RegionHandler(getRequestCtx("/region/5/5", map[string]string{"lat": "5", "lon": "5"}))
		}
	})
}
