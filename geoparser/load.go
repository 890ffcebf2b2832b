package geoparser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/valyala/fasthttp"
)

const fetchTimeout = 30 * time.Second

var client = &fasthttp.Client{
	Name:                "rgeoglobe",
	MaxResponseBodySize: 256 * 1024 * 1024,
}

// Load reads a collection from an http(s) URL or a local file.
func Load(ctx context.Context, source string) (*geomodel.FeatureCollection, error) {
	if isURL(source) {
		return Fetch(ctx, source)
	}
	return LoadFile(source)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func LoadFile(name string) (*geomodel.FeatureCollection, error) {
	log := slog.With("component", "geoparser", "file", name)

	reader, err := openReader(name)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	fc, err := parse(reader, log)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", name, err)
	}
	log.Info("Loaded feature collection", "features", fc.Len())
	return fc, nil
}

// Fetch downloads and parses a collection. The request stops at the ctx
// deadline (30s when there is none) or when ctx is cancelled.
func Fetch(ctx context.Context, url string) (*geomodel.FeatureCollection, error) {
	log := slog.With("component", "geoparser", "url", url)

	// not pooled, the request may outlive a cancelled call
	req := &fasthttp.Request{}
	resp := &fasthttp.Response{}

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(fetchTimeout)
	}

	done := make(chan error, 1)
	go func() {
		done <- client.DoDeadline(req, resp, deadline)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("error fetching %s: %w", url, ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("error fetching %s: %w", url, err)
		}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error fetching %s: status code %d", url, resp.StatusCode())
	}

	body := resp.Body()
	var r io.Reader = bytes.NewReader(body)
	if strings.HasSuffix(url, ".zst") {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("can`t create zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	fc, err := parse(r, log)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", url, err)
	}
	log.Info("Fetched feature collection", "features", fc.Len(), "bytes", len(body))
	return fc, nil
}

func openReader(name string) (io.ReadCloser, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open file: %w", err)
	}

	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("can`t create zstd reader: %w", err)
		}

		return &zstdFile{Decoder: dec, file: file}, nil
	}

	return file, nil
}

type zstdFile struct {
	*zstd.Decoder
	file *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}
