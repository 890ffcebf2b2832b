package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/royalcat/rgeoglobe/bufferio"
	"github.com/royalcat/rgeoglobe/featureindex"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/globe"
	"github.com/royalcat/rgeoglobe/sphere"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/royalcat/rgeoglobe/server")

func Run(ctx context.Context, address string, scene *globe.Scene) error {
	log := slog.With("component", "server")

	s, err := newServer(scene)
	if err != nil {
		return err
	}

	server := &fasthttp.Server{
		ReadTimeout: time.Second,
		Handler:     s.router().Handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", "address", address)
		errCh <- server.ListenAndServe(address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return server.ShutdownWithContext(shutdownCtx)
}

type server struct {
	scene *globe.Scene

	indexMu  sync.Mutex
	index    *featureindex.Index
	indexFor *geomodel.FeatureCollection

	metricLayerRequests  metric.Int64Counter
	metricRegionRequests metric.Int64Counter
}

func newServer(scene *globe.Scene) (*server, error) {
	metricLayerRequests, err := meter.Int64Counter("globe_layer_requests_total")
	if err != nil {
		return nil, err
	}
	metricRegionRequests, err := meter.Int64Counter("globe_region_requests_total")
	if err != nil {
		return nil, err
	}
	return &server{
		scene:                scene,
		metricLayerRequests:  metricLayerRequests,
		metricRegionRequests: metricRegionRequests,
	}, nil
}

func (s *server) router() *router.Router {
	r := router.New()
	r.GET("/layers/{layer}", s.LayerHandler)
	r.GET("/region/{lat}/{lon}", s.RegionHandler)
	r.Handle(http.MethodGet, "/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
	return r
}

var bufPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

func (s *server) LayerHandler(ctx *fasthttp.RequestCtx) {
	layer := globe.Layer(ctx.UserValue("layer").(string))
	s.metricLayerRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("layer", string(layer))))

	buf, ok := s.scene.Layers().Get(layer)
	if !ok {
		ctx.Response.SetStatusCode(http.StatusNotFound)
		ctx.Response.SetBodyString("unknown layer: " + string(layer))
		return
	}

	if string(ctx.QueryArgs().Peek("format")) == "json" {
		data, err := bufferio.MarshalJSON(buf)
		if err != nil {
			ctx.Response.SetStatusCode(http.StatusInternalServerError)
			return
		}
		ctx.SetContentType("application/json")
		ctx.Response.SetStatusCode(http.StatusOK)
		ctx.Response.SetBody(data)
		return
	}

	out := bufPool.Get().(*bytes.Buffer)
	out.Reset()
	defer bufPool.Put(out)

	if err := bufferio.Save(out, buf); err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString("failed to encode layer")
		return
	}

	ctx.SetContentType("application/octet-stream")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.SetBody(out.Bytes())
}

func (s *server) RegionHandler(ctx *fasthttp.RequestCtx) {
	s.metricRegionRequests.Add(ctx, 1)

	lat, err := strconv.ParseFloat(ctx.UserValue("lat").(string), 64)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(ctx.UserValue("lon").(string), 64)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		return
	}
	if !sphere.Valid(lat, lon) {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		return
	}

	f, ok := s.featureIndex().Lookup(lat, lon)
	if !ok {
		ctx.Response.SetStatusCode(http.StatusNoContent)
		return
	}

	out, err := json.Marshal(f)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString("failed to marshal response")
		return
	}

	ctx.SetContentType("application/json")
	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.SetBody(out)
}

// featureIndex follows the scene collection, rebuilding when it changes.
func (s *server) featureIndex() *featureindex.Index {
	fc := s.scene.Collection()

	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	if s.index == nil || s.indexFor != fc {
		s.index = featureindex.New(fc)
		s.indexFor = fc
	}
	return s.index
}
