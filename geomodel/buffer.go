package geomodel

import (
	"github.com/golang/geo/r3"
)

// PointBuffer is a packed x,y,z vertex buffer, three floats per point.
type PointBuffer []float64

func NewPointBuffer(capacity int) PointBuffer {
	return make(PointBuffer, 0, capacity*3)
}

// Len returns the number of points in the buffer.
func (b PointBuffer) Len() int {
	return len(b) / 3
}

func (b PointBuffer) Point(i int) r3.Vector {
	return r3.Vector{X: b[3*i], Y: b[3*i+1], Z: b[3*i+2]}
}

func (b PointBuffer) Append(p r3.Vector) PointBuffer {
	return append(b, p.X, p.Y, p.Z)
}

// Float32 converts the buffer to the precision used by GPU vertex buffers.
func (b PointBuffer) Float32() []float32 {
	out := make([]float32, len(b))
	for i, v := range b {
		out[i] = float32(v)
	}
	return out
}
