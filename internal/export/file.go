package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"

	"github.com/Faultbox/terramesh/internal/mesh"
)

// WriteFile creates path and streams fn's output into it, gzip-compressed
// with a ".gz" suffix when compress is set. It returns the path written.
func WriteFile(path string, fn func(io.Writer) error, compress bool) (written string, err error) {
	if compress {
		path += ".gz"
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if !compress {
		if err := fn(f); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		return path, nil
	}

	zw := gzip.NewWriter(f)
	if err := fn(zw); err != nil {
		return "", multierr.Append(fmt.Errorf("write %s: %w", path, err), zw.Close())
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress %s: %w", path, err)
	}
	return path, nil
}

// Export writes the mesh in each named format into dir. Files are named
// after base with the format's extension. It returns the paths written.
func Export(dir, base string, m *mesh.Mesh, names []string, compress bool, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if base == "" {
		base = "mesh"
	}
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))

	var paths []string
	for _, name := range names {
		format, err := Lookup(name)
		if err != nil {
			return paths, err
		}
		path, err := WriteFile(filepath.Join(dir, base+format.Ext), func(w io.Writer) error {
			return format.Write(w, m, opts)
		}, compress)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
