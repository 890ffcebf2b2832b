// Package globe assembles the sampled point layers of the globe.
package globe

import (
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/sampler"
	"github.com/sourcegraph/conc"
)

type Layer string

const (
	LayerOutline Layer = "outline"
	LayerFill    Layer = "fill"
	LayerCities  Layer = "cities"
)

var AllLayers = []Layer{LayerOutline, LayerFill, LayerCities}

type Layers struct {
	Outline geomodel.PointBuffer
	Fill    geomodel.PointBuffer
	Cities  geomodel.PointBuffer
}

func (l Layers) Get(layer Layer) (geomodel.PointBuffer, bool) {
	switch layer {
	case LayerOutline:
		return l.Outline, true
	case LayerFill:
		return l.Fill, true
	case LayerCities:
		return l.Cities, true
	}
	return nil, false
}

// Build samples all layers. Outline and fill only read fc and are computed
// concurrently. A nil collection gives empty geographic layers.
func Build(fc *geomodel.FeatureCollection, cities []geomodel.City, opts ...Option) Layers {
	options := loadOptions(opts...)

	var layers Layers
	var wg conc.WaitGroup
	wg.Go(func() {
		layers.Outline = sampler.Outline(fc, options.outline...)
	})
	wg.Go(func() {
		layers.Fill = sampler.Fill(fc, options.fill...)
	})
	layers.Cities = sampler.Cities(cities, options.cities...)
	wg.Wait()

	return layers
}
