package globe

import (
	"context"
	"sync"

	"github.com/royalcat/rgeoglobe/geomodel"
)

// Loader produces the feature collection, typically geoparser.Load.
type Loader func(ctx context.Context) (*geomodel.FeatureCollection, error)

// Scene keeps the layers for the current feature collection and rebuilds them
// only when a different collection is set.
type Scene struct {
	mu     sync.RWMutex
	fc     *geomodel.FeatureCollection
	cities []geomodel.City
	layers Layers
	built  bool

	opts    []Option
	options options
}

func NewScene(cities []geomodel.City, opts ...Option) *Scene {
	return &Scene{
		cities:  cities,
		opts:    opts,
		options: loadOptions(opts...),
	}
}

// Update sets the collection and reports whether the layers were rebuilt.
func (s *Scene) Update(fc *geomodel.FeatureCollection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.built && s.fc == fc {
		return false
	}

	s.layers = Build(fc, s.cities, s.opts...)
	s.fc = fc
	s.built = true

	s.options.logger.Info("Globe layers built",
		"features", fc.Len(),
		"outline_points", s.layers.Outline.Len(),
		"fill_points", s.layers.Fill.Len(),
		"city_points", s.layers.Cities.Len(),
	)
	return true
}

// Load runs the loader and updates the scene. When the loader fails the
// geographic layers are left empty and the city layer is still built; the
// error is logged and returned.
func (s *Scene) Load(ctx context.Context, load Loader) error {
	fc, err := load(ctx)
	if err != nil {
		s.options.logger.ErrorContext(ctx, "Failed to load geographic features, rendering without overlay", "error", err.Error())
		s.Update(nil)
		return err
	}
	s.Update(fc)
	return nil
}

func (s *Scene) Layers() Layers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layers
}

func (s *Scene) Collection() *geomodel.FeatureCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fc
}
