package dem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HGT format errors.
var (
	ErrInvalidHGTSize = errors.New("invalid HGT size: expected a square grid of int16 samples")
	ErrInvalidHGTName = errors.New("invalid HGT name: expected [NS]dd[EW]ddd")
)

// hgtVoid marks a missing sample in SRTM data.
const hgtVoid = -32768

// ParseHGT parses an SRTM height tile. The name (for example "N45E006.hgt")
// carries the latitude and longitude of the tile's south-west corner.
func ParseHGT(data []byte, name string) (*Map, error) {
	lat, lon, err := parseHGTName(name)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 || len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidHGTSize, len(data))
	}
	count := len(data) / 2
	side := int(math.Sqrt(float64(count)))
	if side*side != count || side < 2 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidHGTSize, count)
	}

	m := &Map{
		Name:        strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
		Width:       side,
		Length:      side,
		CellWidth:   1 / float64(side-1),
		CellLength:  1 / float64(side-1),
		NorthBorder: float64(lat + 1),
		WestBorder:  float64(lon),
		Hemisphere:  North,
		Samples:     make([]float64, count),
	}
	if lat < 0 {
		m.Hemisphere = South
	}

	// Samples are big-endian int16, rows from north to south.
	for i := 0; i < count; i++ {
		v := int16(binary.BigEndian.Uint16(data[i*2:]))
		if v == hgtVoid {
			m.Voids++
			continue
		}
		m.Samples[i] = float64(v)
	}

	return m, nil
}

// ParseHGTFile parses an SRTM height tile from disk.
func ParseHGTFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading HGT file: %w", err)
	}
	return ParseHGT(data, filepath.Base(path))
}

// parseHGTName extracts the south-west corner from a tile name.
func parseHGTName(name string) (lat, lon int, err error) {
	base := strings.ToUpper(filepath.Base(name))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if len(base) < 7 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHGTName, name)
	}

	latSign, lonSign := 1, 1
	switch base[0] {
	case 'N':
	case 'S':
		latSign = -1
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHGTName, name)
	}
	switch base[3] {
	case 'E':
	case 'W':
		lonSign = -1
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHGTName, name)
	}

	lat, err = strconv.Atoi(base[1:3])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHGTName, name)
	}
	lon, err = strconv.Atoi(base[4:7])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHGTName, name)
	}
	if lat > 89 || lon > 180 {
		return 0, 0, fmt.Errorf("%w: %q out of range", ErrInvalidHGTName, name)
	}

	return latSign * lat, lonSign * lon, nil
}
