package dem

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Supported raster formats.
const (
	FormatAuto  = "auto"
	FormatHGT   = "hgt"
	FormatASCII = "asc"
)

// ErrUnknownFormat is returned for raster formats without a reader.
var ErrUnknownFormat = errors.New("unknown raster format")

// DetectFormat picks a reader from the file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hgt":
		return FormatHGT, nil
	case ".asc", ".grd", ".txt":
		return FormatASCII, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads a raster with the given format, or by extension when the
// format is empty or "auto".
func Load(path, format string) (*Map, error) {
	if format == "" || format == FormatAuto {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatHGT:
		return ParseHGTFile(path)
	case FormatASCII:
		return ParseASCIIGridFile(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}
