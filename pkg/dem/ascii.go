package dem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ASCII grid errors.
var (
	ErrInvalidGridHeader = errors.New("invalid ASCII grid header")
	ErrTruncatedGrid     = errors.New("truncated ASCII grid data")
)

// gridHeaderKeys lists the recognised header keys, lower-cased.
var gridHeaderKeys = []string{"ncols", "nrows", "xllcorner", "xllcenter", "yllcorner", "yllcenter", "cellsize", "nodata_value"}

// ParseASCIIGrid parses an ESRI ASCII grid.
func ParseASCIIGrid(r io.Reader) (*Map, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	header := make(map[string]float64)
	var pending string
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		if !slices.Contains(gridHeaderKeys, key) {
			pending = sc.Text()
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: missing value for %s", ErrInvalidGridHeader, key)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidGridHeader, key, err)
		}
		header[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII grid: %w", err)
	}

	cols, okCols := header["ncols"]
	rows, okRows := header["nrows"]
	cell, okCell := header["cellsize"]
	if !okCols || !okRows || !okCell {
		return nil, fmt.Errorf("%w: ncols, nrows and cellsize are required", ErrInvalidGridHeader)
	}
	if cols < 2 || rows < 2 || cell <= 0 {
		return nil, fmt.Errorf("%w: %vx%v cellsize %v", ErrInvalidDimensions, cols, rows, cell)
	}

	// Samples are node positions; corner-registered grids are shifted by
	// half a cell to their centres.
	var west, south float64
	switch {
	case hasKey(header, "xllcenter"):
		west = header["xllcenter"]
	case hasKey(header, "xllcorner"):
		west = header["xllcorner"] + cell/2
	default:
		return nil, fmt.Errorf("%w: missing xllcorner/xllcenter", ErrInvalidGridHeader)
	}
	switch {
	case hasKey(header, "yllcenter"):
		south = header["yllcenter"]
	case hasKey(header, "yllcorner"):
		south = header["yllcorner"] + cell/2
	default:
		return nil, fmt.Errorf("%w: missing yllcorner/yllcenter", ErrInvalidGridHeader)
	}

	width, length := int(cols), int(rows)
	nodata, hasNodata := header["nodata_value"]

	m := &Map{
		Width:       width,
		Length:      length,
		CellWidth:   cell,
		CellLength:  cell,
		NorthBorder: south + float64(length-1)*cell,
		WestBorder:  west,
		Hemisphere:  North,
		Samples:     make([]float64, width*length),
	}
	if south < 0 {
		m.Hemisphere = South
	}

	next := func() (string, bool) {
		if pending != "" {
			s := pending
			pending = ""
			return s, true
		}
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	for i := range m.Samples {
		tok, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: got %d of %d samples", ErrTruncatedGrid, i, len(m.Samples))
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing sample %d: %w", i, err)
		}
		if hasNodata && v == nodata {
			m.Voids++
			continue
		}
		m.Samples[i] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII grid: %w", err)
	}

	return m, nil
}

// ParseASCIIGridFile parses an ESRI ASCII grid from disk.
func ParseASCIIGridFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ASCII grid: %w", err)
	}
	defer f.Close()

	m, err := ParseASCIIGrid(f)
	if err != nil {
		return nil, err
	}
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

func hasKey(header map[string]float64, key string) bool {
	_, ok := header[key]
	return ok
}
