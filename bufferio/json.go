package bufferio

import (
	"github.com/mailru/easyjson/jwriter"
	"github.com/royalcat/rgeoglobe/geomodel"
)

// MarshalJSON encodes buf as a flat JSON array of numbers.
func MarshalJSON(buf geomodel.PointBuffer) ([]byte, error) {
	w := jwriter.Writer{}
	w.RawByte('[')
	for i, v := range buf {
		if i > 0 {
			w.RawByte(',')
		}
		w.Float64(v)
	}
	w.RawByte(']')
	return w.BuildBytes()
}
