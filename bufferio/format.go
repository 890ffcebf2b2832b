// Package bufferio stores point buffers as float32 vertex data.
//
// Layout: magic, little-endian uint32 version, uint32 point count, then
// 3×count little-endian float32 values.
package bufferio

import "errors"

var MAGIC_BYTES = []byte("RGGB")

const COMPATIBILITY_LEVEL uint32 = 1

var (
	ErrBadMagic           = errors.New("not a point buffer file")
	ErrUnsupportedVersion = errors.New("unsupported point buffer version")
)
