package sampler

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/sphere"
)

var unitSquare = orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}

func featureCollection(continent string, rings ...orb.Ring) *geomodel.FeatureCollection {
	fc := &geomodel.FeatureCollection{}
	for _, r := range rings {
		fc.Features = append(fc.Features, geomodel.Feature{
			Continent: continent,
			Polygons:  orb.MultiPolygon{orb.Polygon{r}},
		})
	}
	return fc
}

func TestDensity(t *testing.T) {
	tests := []struct {
		continent string
		want      float64
	}{
		{"Asia", 4.0},
		{"africa", 3.0},
		{"North America", 2.5},
		{"SOUTH AMERICA", 2.5},
		{"Europe", 2.0},
		{" Oceania ", 1.5},
		{"Antarctica", 2.0},
		{"", 2.0},
	}
	for _, tt := range tests {
		if got := Density(tt.continent); got != tt.want {
			t.Errorf("Density(%q) = %v, want %v", tt.continent, got, tt.want)
		}
	}
}

func TestFill_SquareKeepsAllCandidates(t *testing.T) {
	tests := []struct {
		continent string
		want      int
	}{
		{"Asia", 200},
		{"Africa", 150},
		{"North America", 125},
		{"Oceania", 75},
		{"Atlantis", 100},
	}
	for _, tt := range tests {
		t.Run(tt.continent, func(t *testing.T) {
			buf := Fill(featureCollection(tt.continent, unitSquare), WithSeed(1))
			if buf.Len() != tt.want {
				t.Errorf("Fill() points = %d, want %d", buf.Len(), tt.want)
			}
			for i := range buf.Len() {
				p := buf.Point(i)
				if math.Abs(p.Norm()-sphere.FillRadius) > 1e-9 {
					t.Fatalf("point %d norm = %v, want %v", i, p.Norm(), sphere.FillRadius)
				}
				lat, lon := sphere.Unproject(p)
				if lat < -1e-9 || lat > 1+1e-9 || lon < -1e-9 || lon > 1+1e-9 {
					t.Fatalf("point %d at (%v, %v) outside the square", i, lat, lon)
				}
			}
		})
	}
}

func TestFill_TriangleRejectsOutside(t *testing.T) {
	triangle := orb.Ring{{0, 0}, {10, 0}, {0, 10}, {0, 0}}
	buf := Fill(featureCollection("Europe", triangle), WithSeed(7))

	// half of the bounding box is inside
	if n := buf.Len(); n < 30 || n > 70 {
		t.Fatalf("Fill() points = %d, want about 50", n)
	}
	for i := range buf.Len() {
		lat, lon := sphere.Unproject(buf.Point(i))
		if lat+lon > 10+1e-9 {
			t.Errorf("point %d at (%v, %v) outside the triangle", i, lat, lon)
		}
	}
}

func TestFill_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		ring orb.Ring
	}{
		{"zero width", orb.Ring{{5, 0}, {5, 1}, {5, 2}, {5, 0}}},
		{"zero height", orb.Ring{{0, 5}, {1, 5}, {2, 5}, {0, 5}}},
		{"single point", orb.Ring{{1, 1}}},
		{"empty", orb.Ring{}},
		{"all invalid", orb.Ring{{math.NaN(), 1}, {200, 1}, {1, math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fill(featureCollection("Asia", tt.ring), WithSeed(3)); got.Len() != 0 {
				t.Errorf("Fill() points = %d, want 0", got.Len())
			}
		})
	}
}

func TestFill_IgnoresInvalidVertices(t *testing.T) {
	ring := orb.Ring{{0, 0}, {1, 0}, {math.NaN(), math.NaN()}, {1, 1}, {0, 1}, {0, 0}}
	got := Fill(featureCollection("Europe", ring), WithSeed(5))
	want := Fill(featureCollection("Europe", unitSquare), WithSeed(5))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fill() mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_Deterministic(t *testing.T) {
	fc := featureCollection("Africa",
		orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 0}},
		orb.Ring{{20, 20}, {30, 20}, {25, 30}, {20, 20}},
		orb.Ring{{-50, -20}, {-40, -20}, {-45, -5}, {-50, -20}},
	)

	a := Fill(fc, WithSeed(42))
	b := Fill(fc, WithSeed(42))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Fill() with same seed mismatch (-first +second):\n%s", diff)
	}

	c := Fill(fc, WithSeed(42), WithWorkers(4))
	if diff := cmp.Diff(a, c); diff != "" {
		t.Errorf("Fill() with workers mismatch (-sequential +parallel):\n%s", diff)
	}
}

func TestFill_EmptyCollection(t *testing.T) {
	if got := Fill(nil); len(got) != 0 {
		t.Errorf("Fill(nil) = %v, want empty", got)
	}
}

func TestFill_MultiPolygonSharesCandidates(t *testing.T) {
	fc := &geomodel.FeatureCollection{Features: []geomodel.Feature{{
		Continent: "Europe",
		Polygons: orb.MultiPolygon{
			{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
			{orb.Ring{{9, 9}, {10, 9}, {10, 10}, {9, 10}, {9, 9}}},
		},
	}}}

	buf := Fill(fc, WithSeed(11))
	if buf.Len() >= 100 {
		t.Errorf("Fill() points = %d, want fewer than the 100 candidates", buf.Len())
	}
	for i := range buf.Len() {
		lat, lon := sphere.Unproject(buf.Point(i))
		inA := lat <= 1+1e-9 && lon <= 1+1e-9
		inB := lat >= 9-1e-9 && lon >= 9-1e-9
		if !inA && !inB {
			t.Errorf("point %d at (%v, %v) is in neither square", i, lat, lon)
		}
	}
}

func TestFill_Poisson(t *testing.T) {
	square := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	buf := Fill(featureCollection("Default", square), WithSeed(9), WithPoissonSpacing(1))
	if buf.Len() == 0 {
		t.Fatal("Fill() with poisson spacing produced no points")
	}
	// spacing is divided by sqrt(density), every pair is at least that far apart
	spacing := 1 / math.Sqrt(Density("Default"))
	for i := range buf.Len() {
		lat1, lon1 := sphere.Unproject(buf.Point(i))
		for j := i + 1; j < buf.Len(); j++ {
			lat2, lon2 := sphere.Unproject(buf.Point(j))
			if d := math.Hypot(lat1-lat2, lon1-lon2); d < spacing-1e-6 {
				t.Fatalf("points %d and %d are %v apart, want at least %v", i, j, d, spacing)
			}
		}
	}
}

func TestWithDensityTable(t *testing.T) {
	fc := featureCollection("Mars", unitSquare)
	buf := Fill(fc, WithSeed(1), WithDensityTable(map[string]float64{"MARS": 1, "default": 0}))
	if buf.Len() != 50 {
		t.Errorf("Fill() points = %d, want 50", buf.Len())
	}

	buf = Fill(featureCollection("Venus", unitSquare), WithSeed(1), WithDensityTable(map[string]float64{"default": 0}))
	if buf.Len() != 0 {
		t.Errorf("Fill() points = %d, want 0", buf.Len())
	}
}

func TestWithDensityTable_NonPositive(t *testing.T) {
	tests := []struct {
		name    string
		density float64
		opts    []Option
	}{
		{"negative uniform", -1, nil},
		{"negative poisson", -1, []Option{WithPoissonSpacing(0.1)}},
		{"zero poisson", 0, []Option{WithPoissonSpacing(0.1)}},
		{"tiny uniform", 0.001, nil},
		{"nan uniform", math.NaN(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{
				WithSeed(1),
				WithDensityTable(map[string]float64{"default": tt.density}),
			}, tt.opts...)
			buf := Fill(featureCollection("Mars", unitSquare), opts...)
			if buf.Len() != 0 {
				t.Errorf("Fill() points = %d, want 0", buf.Len())
			}
		})
	}
}

func TestNormalizeDensities(t *testing.T) {
	got := normalizeDensities(map[string]float64{" Asia ": 3, "Europe": -2})
	want := map[string]float64{"asia": 3, "europe": 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalizeDensities() mismatch (-want +got):\n%s", diff)
	}
}

func TestRingContains(t *testing.T) {
	tests := []struct {
		name  string
		point orb.Point
		want  bool
	}{
		{"center", orb.Point{0.5, 0.5}, true},
		{"left", orb.Point{-0.5, 0.5}, false},
		{"right", orb.Point{1.5, 0.5}, false},
		{"above", orb.Point{0.5, 1.5}, false},
		{"below", orb.Point{0.5, -0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ringContains(unitSquare, tt.point); got != tt.want {
				t.Errorf("ringContains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func BenchmarkFill(b *testing.B) {
	fc := featureCollection("Asia",
		orb.Ring{{60, 10}, {140, 10}, {140, 60}, {100, 75}, {60, 50}, {60, 10}},
	)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Fill(fc, WithSeed(int64(i)))
	}
}
