package bufferio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/royalcat/rgeoglobe/geomodel"
)

func Save(w io.Writer, buf geomodel.PointBuffer) error {
	if len(buf)%3 != 0 {
		return fmt.Errorf("point buffer length %d is not a multiple of 3", len(buf))
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(MAGIC_BYTES); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, COMPATIBILITY_LEVEL); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(buf.Len())); err != nil {
		return err
	}

	var b [4]byte
	for _, v := range buf {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
		if _, err := bw.Write(b[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
