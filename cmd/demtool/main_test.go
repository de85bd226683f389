package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testGrid = `ncols 5
nrows 5
xllcenter 10
yllcenter 40
cellsize 0.25
NODATA_value -9999
0 0 0 0 0
0 10 20 10 0
0 20 1500 20 0
0 10 20 10 0
0 0 0 0 -9999
`

func writeGrid(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "peak.asc")
	if err := os.WriteFile(path, []byte(testGrid), 0644); err != nil {
		t.Fatalf("failed to write grid: %v", err)
	}
	return path
}

func TestCmdInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdInfo(&buf, []string{writeGrid(t)}); err != nil {
		t.Fatalf("cmdInfo failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Samples: 5 x 5 (25)",
		"Extent:  W 10  S 40  E 11  N 41",
		"Range:   0.0 .. 1,500.0",
		"Voids:   1",
		"UTM:     32N",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCmdSample(t *testing.T) {
	path := writeGrid(t)

	tests := []struct {
		x, y string
		want string
	}{
		{"10.5", "40.5", "1500"},
		{"10.25", "40.75", "10"},
		{"10.375", "40.5", "760"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := cmdSample(&buf, []string{path, tt.x, tt.y}); err != nil {
			t.Fatalf("cmdSample failed: %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != tt.want {
			t.Errorf("sample(%s, %s) = %s, want %s", tt.x, tt.y, got, tt.want)
		}
	}

	if err := cmdSample(&bytes.Buffer{}, []string{path, "east", "40"}); err == nil {
		t.Error("expected error for a non-numeric coordinate")
	}
}

func TestCmdStats(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdStats(&buf, []string{"-size", "2", "-tolerance", "1", writeGrid(t)}); err != nil {
		t.Fatalf("cmdStats failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Grid:      2 x 2 cells, 8 triangles") {
		t.Errorf("unexpected grid line:\n%s", out)
	}
	if !strings.Contains(out, "Sweep   1:") {
		t.Errorf("expected per-sweep counts:\n%s", out)
	}
}

func TestCmdMissingArgs(t *testing.T) {
	if err := cmdInfo(&bytes.Buffer{}, nil); err == nil {
		t.Error("info without a raster should fail")
	}
	if err := cmdSample(&bytes.Buffer{}, []string{"a.hgt"}); err == nil {
		t.Error("sample without coordinates should fail")
	}
}
