package bufferio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/royalcat/rgeoglobe/geomodel"
)

// maxPoints guards against allocating for corrupt headers.
const maxPoints = 1 << 26

func Load(r io.Reader) (geomodel.PointBuffer, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(MAGIC_BYTES))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("error reading magic bytes: %w", err)
	}
	if string(magic) != string(MAGIC_BYTES) {
		return nil, ErrBadMagic
	}

	var compatibilityLevel uint32
	if err := binary.Read(br, binary.LittleEndian, &compatibilityLevel); err != nil {
		return nil, fmt.Errorf("error reading compatibility level: %w", err)
	}
	if compatibilityLevel != COMPATIBILITY_LEVEL {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, compatibilityLevel)
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("error reading point count: %w", err)
	}
	if count > maxPoints {
		return nil, fmt.Errorf("point count %d exceeds limit %d", count, maxPoints)
	}

	buf := make(geomodel.PointBuffer, int(count)*3)
	var b [4]byte
	for i := range buf {
		if _, err := io.ReadFull(br, b[:]); err != nil {
			return nil, fmt.Errorf("error reading point data: %w", err)
		}
		buf[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[:])))
	}
	return buf, nil
}
