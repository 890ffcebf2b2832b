package bufferio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/royalcat/rgeoglobe/geomodel"
)

// SaveFile writes buf to name, compressing with zstd when name ends in .zst.
func SaveFile(name string, buf geomodel.PointBuffer) error {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error creating buffer file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	var enc *zstd.Encoder
	if strings.HasSuffix(name, ".zst") {
		enc, err = zstd.NewWriter(file)
		if err != nil {
			return fmt.Errorf("can`t create zstd writer: %w", err)
		}
		w = enc
	}

	if err := Save(w, buf); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("error flushing zstd stream: %w", err)
		}
	}
	return file.Close()
}

func LoadFile(name string) (geomodel.PointBuffer, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("can`t create zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	return Load(r)
}
