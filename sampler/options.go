package sampler

import (
	"math/rand"
	"time"
)

const (
	defaultSamplesPerFeature  = 50
	defaultInterpolationSteps = 2
)

type options struct {
	radius             float64
	interpolationSteps int
	samplesPerFeature  float64
	densities          map[string]float64
	rand               *rand.Rand
	workers            int
	poissonSpacing     float64
}

type Option interface {
	apply(*options)
}

func loadOptions(defaultRadius float64, opts ...Option) options {
	options := options{
		radius:             defaultRadius,
		interpolationSteps: defaultInterpolationSteps,
		samplesPerFeature:  defaultSamplesPerFeature,
		densities:          defaultDensities,
		workers:            1,
	}
	for _, o := range opts {
		o.apply(&options)
	}
	return options
}

func (o options) randSource() *rand.Rand {
	if o.rand != nil {
		return o.rand
	}
	//nolint:gosec
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

type radius float64

func (r radius) apply(o *options) {
	if r > 0 {
		o.radius = float64(r)
	}
}

// WithRadius overrides the layer radius. Default depends on the layer,
// see sphere.OutlineRadius, sphere.FillRadius and sphere.CityRadius.
func WithRadius(r float64) Option {
	return radius(r)
}

type interpolationSteps int

func (s interpolationSteps) apply(o *options) {
	if s >= 0 {
		o.interpolationSteps = int(s)
	}
}

// WithInterpolationSteps sets how many points are inserted between two
// outline vertices. Default: 2
func WithInterpolationSteps(steps int) Option {
	return interpolationSteps(steps)
}

type samplesPerFeature float64

func (s samplesPerFeature) apply(o *options) {
	if s >= 0 {
		o.samplesPerFeature = float64(s)
	}
}

// WithSamplesPerFeature sets the candidate count for a feature of density 1.
// Default: 50
func WithSamplesPerFeature(n float64) Option {
	return samplesPerFeature(n)
}

type densityTable map[string]float64

func (t densityTable) apply(o *options) {
	o.densities = normalizeDensities(t)
}

// WithDensityTable replaces the continent density table. The "default" key
// sets the multiplier for unknown continents.
func WithDensityTable(table map[string]float64) Option {
	return densityTable(table)
}

type randSource struct {
	r *rand.Rand
}

func (s randSource) apply(o *options) {
	o.rand = s.r
}

// WithRand sets the random source used by Fill. Default: time seeded.
func WithRand(r *rand.Rand) Option {
	return randSource{r: r}
}

// WithSeed is a shortcut for WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	//nolint:gosec
	return randSource{r: rand.New(rand.NewSource(seed))}
}

type workers int

func (w workers) apply(o *options) {
	if w > 0 {
		o.workers = int(w)
	}
}

// WithWorkers samples fill features on n goroutines. Default: 1
func WithWorkers(n int) Option {
	return workers(n)
}

type poissonSpacing float64

func (d poissonSpacing) apply(o *options) {
	if d > 0 {
		o.poissonSpacing = float64(d)
	}
}

// WithPoissonSpacing switches Fill to Poisson-disc candidates with the given
// minimum spacing in degrees.
func WithPoissonSpacing(degrees float64) Option {
	return poissonSpacing(degrees)
}
