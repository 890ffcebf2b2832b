package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/royalcat/rgeoglobe/bufferio"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/geoparser"
	"github.com/royalcat/rgeoglobe/globe"
	"github.com/royalcat/rgeoglobe/internal/preview"
	"github.com/royalcat/rgeoglobe/internal/telemetry"
	"github.com/royalcat/rgeoglobe/sampler"
	"github.com/royalcat/rgeoglobe/server"
	"golang.org/x/sync/errgroup"

	"github.com/urfave/cli/v3"
	_ "go.uber.org/automaxprocs"
)

const appName = "rgeoglobe"

func main() {
	// .env is optional
	_ = godotenv.Load()

	inputFlag := &cli.StringFlag{
		Name:      "input",
		Aliases:   []string{"i"},
		Usage:     "GeoJSON FeatureCollection file or http(s) url, .zst is decompressed",
		Required:  true,
		TakesFile: true,
	}
	citiesFlag := &cli.StringFlag{
		Name:      "cities",
		Usage:     "JSON array of {name, lat, lon}, built in list when empty",
		TakesFile: true,
	}

	app := &cli.App{
		Name:        appName,
		Description: "Point cloud generator for a globe with country outlines",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "writes outline, fill and cities buffers",
				Flags: []cli.Flag{
					inputFlag,
					citiesFlag,
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Required: true,
					},
					&cli.Int64Flag{
						Name:        "seed",
						DefaultText: "random",
					},
					&cli.IntFlag{
						Name:        "workers",
						Aliases:     []string{"t"},
						DefaultText: "max",
					},
					&cli.Float64Flag{
						Name:  "samples",
						Value: 50,
					},
					&cli.Float64Flag{
						Name:        "poisson",
						Usage:       "poisson disc spacing in degrees, uniform sampling when zero",
						DefaultText: "",
					},
					&cli.BoolFlag{
						Name: "zstd",
					},
					&cli.BoolFlag{
						Name:        "pprof.profile",
						DefaultText: "",
					},
				},
				Action: generate,
			},
			{
				Name:  "serve",
				Usage: "serves globe layers over http",
				Flags: []cli.Flag{
					inputFlag,
					citiesFlag,
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:    "otel-endpoint",
						EnvVars: []string{"RGEOGLOBE_OTEL_ENDPOINT"},
					},
				},
				Action: serve,
			},
			{
				Name:  "preview",
				Usage: "renders layers into an svg",
				Flags: []cli.Flag{
					inputFlag,
					citiesFlag,
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Required: true,
					},
					&cli.IntFlag{
						Name:  "width",
						Value: 1500,
					},
				},
				Action: renderPreview,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(ctx *cli.Context) {
	level := slog.LevelInfo
	if ctx.Bool("verbose") {
		level = slog.LevelDebug
	}
	telemetry.SetupLogging(level)
}

func loadCities(ctx *cli.Context) ([]geomodel.City, error) {
	name := ctx.String("cities")
	if name == "" {
		return geomodel.DefaultCities, nil
	}
	return geoparser.LoadCitiesFile(name)
}

func generate(ctx *cli.Context) error {
	setupLogging(ctx)

	workers := ctx.Int("workers")
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := slog.With("workers", workers)

	if ctx.Bool("pprof.profile") {
		f, err := os.OpenFile("profile.cpu.pprof", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("error creating pprof file: %w", err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("error starting pprof: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	cities, err := loadCities(ctx)
	if err != nil {
		return fmt.Errorf("error loading cities: %w", err)
	}

	input := ctx.String("input")
	log.Info("Loading features", "input", input)
	fc, err := geoparser.Load(ctx.Context, input)
	if err != nil {
		return fmt.Errorf("error loading features: %w", err)
	}

	fillOpts := []sampler.Option{
		sampler.WithWorkers(workers),
		sampler.WithSamplesPerFeature(ctx.Float64("samples")),
	}
	if ctx.IsSet("seed") {
		fillOpts = append(fillOpts, sampler.WithSeed(ctx.Int64("seed")))
	}
	if spacing := ctx.Float64("poisson"); spacing > 0 {
		fillOpts = append(fillOpts, sampler.WithPoissonSpacing(spacing))
	}

	layers := globe.Build(fc, cities, globe.WithFillOptions(fillOpts...))
	log.Info("Generation complete",
		"features", fc.Len(),
		"outline_points", layers.Outline.Len(),
		"fill_points", layers.Fill.Len(),
		"city_points", layers.Cities.Len(),
	)

	dir := ctx.String("output")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output dir: %w", err)
	}

	ext := ".rggb"
	if ctx.Bool("zstd") {
		ext += ".zst"
	}

	var g errgroup.Group
	for _, layer := range globe.AllLayers {
		buf, _ := layers.Get(layer)
		name := filepath.Join(dir, string(layer)+ext)
		g.Go(func() error {
			if err := bufferio.SaveFile(name, buf); err != nil {
				return fmt.Errorf("failed to save %s layer: %w", layer, err)
			}
			size := "unknown"
			if st, err := os.Stat(name); err == nil {
				size = humanize.Bytes(uint64(st.Size()))
			}
			log.Info("Saved layer", "layer", layer, "file", name, "size", size)
			return nil
		})
	}
	return g.Wait()
}

func serve(ctx *cli.Context) error {
	setupLogging(ctx)

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := telemetry.Setup(sigCtx, appName, ctx.String("otel-endpoint"))
	if err != nil {
		return fmt.Errorf("error setting up telemetry: %w", err)
	}
	defer client.Shutdown(context.Background())

	cities, err := loadCities(ctx)
	if err != nil {
		return fmt.Errorf("error loading cities: %w", err)
	}

	input := ctx.String("input")
	scene := globe.NewScene(cities)
	// a failed load still serves the city layer
	_ = scene.Load(sigCtx, func(ctx context.Context) (*geomodel.FeatureCollection, error) {
		return geoparser.Load(ctx, input)
	})

	return server.Run(sigCtx, ctx.String("listen"), scene)
}

func renderPreview(ctx *cli.Context) error {
	setupLogging(ctx)

	cities, err := loadCities(ctx)
	if err != nil {
		return fmt.Errorf("error loading cities: %w", err)
	}

	fc, err := geoparser.Load(ctx.Context, ctx.String("input"))
	if err != nil {
		return fmt.Errorf("error loading features: %w", err)
	}

	layers := globe.Build(fc, cities)

	f, err := os.Create(ctx.String("output"))
	if err != nil {
		return err
	}
	defer f.Close()

	preview.WriteSVG(f, layers, ctx.Int("width"))
	slog.Info("Preview written", "file", ctx.String("output"))
	return f.Close()
}
