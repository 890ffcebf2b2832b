package globe

import (
	"log/slog"

	"github.com/royalcat/rgeoglobe/sampler"
)

type options struct {
	outline []sampler.Option
	fill    []sampler.Option
	cities  []sampler.Option
	logger  *slog.Logger
}

type Option interface {
	apply(*options)
}

func loadOptions(opts ...Option) options {
	options := options{
		logger: slog.Default().With("component", "globe"),
	}
	for _, o := range opts {
		o.apply(&options)
	}
	return options
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

func WithOutlineOptions(opts ...sampler.Option) Option {
	return optionFunc(func(o *options) {
		o.outline = append(o.outline, opts...)
	})
}

func WithFillOptions(opts ...sampler.Option) Option {
	return optionFunc(func(o *options) {
		o.fill = append(o.fill, opts...)
	})
}

func WithCityOptions(opts ...sampler.Option) Option {
	return optionFunc(func(o *options) {
		o.cities = append(o.cities, opts...)
	})
}

// WithLogger is used by Scene. Default: slog.Default() with component=globe.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}
