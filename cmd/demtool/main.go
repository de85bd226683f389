// demtool is a CLI utility for inspecting elevation rasters and trying
// mesh settings on them.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/terramesh/internal/geodesy"
	"github.com/Faultbox/terramesh/internal/mesh"
	"github.com/Faultbox/terramesh/pkg/dem"
)

var p = message.NewPrinter(language.English)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "sample":
		err = cmdSample(os.Stdout, args)
	case "stats":
		err = cmdStats(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`demtool - elevation raster utility

Usage:
  demtool <command> [options]

Commands:
  info <raster>                      Show raster dimensions, extent and range
  sample <raster> <x> <y>            Interpolate the elevation at a position
  stats [options] <raster>           Build and refine a mesh, print counts

Examples:
  demtool info N45E006.hgt
  demtool sample N45E006.hgt 6.5 45.5
  demtool stats -size 64 -tolerance 2 N45E006.hgt`)
}

func loadRaster(fs *flag.FlagSet) (*dem.Map, error) {
	return dem.Load(fs.Arg(0), fs.Lookup("format").Value.String())
}

func cmdInfo(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.String("format", dem.FormatAuto, "Input format: auto, hgt or asc")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: demtool info <raster>")
	}
	m, err := loadRaster(fs)
	if err != nil {
		return err
	}

	west, south, east, north := m.Extent()
	minZ, maxZ := m.AltitudeRange()

	p.Fprintf(w, "Raster:  %s\n", m.Name)
	p.Fprintf(w, "Samples: %d x %d (%d)\n", m.Width, m.Length, m.Width*m.Length)
	p.Fprintf(w, "Cell:    %g x %g\n", m.CellWidth, m.CellLength)
	p.Fprintf(w, "Extent:  W %g  S %g  E %g  N %g\n", west, south, east, north)
	p.Fprintf(w, "Range:   %.1f .. %.1f\n", minZ, maxZ)
	p.Fprintf(w, "Voids:   %d\n", m.Voids)
	if west >= -180 && east <= 180 && south >= -90 && north <= 90 {
		zone, hemisphere := geodesy.ZoneFor(m.Center())
		p.Fprintf(w, "UTM:     %d%c\n", zone, hemisphere)
	}
	return nil
}

func cmdSample(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	fs.String("format", dem.FormatAuto, "Input format: auto, hgt or asc")
	fs.Parse(args)

	if fs.NArg() < 3 {
		return fmt.Errorf("usage: demtool sample <raster> <x> <y>")
	}
	x, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(fs.Arg(2), 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	m, err := loadRaster(fs)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%g\n", m.Interpolate(x, y))
	return nil
}

func cmdStats(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.String("format", dem.FormatAuto, "Input format: auto, hgt or asc")
	size := fs.Int("size", 32, "Initial cell size in samples")
	tolerance := fs.Float64("tolerance", 5, "Allowed vertical deviation")
	minEdge := fs.Float64("min-edge", 0, "Shortest edge refinement may create")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: demtool stats [options] <raster>")
	}
	m, err := loadRaster(fs)
	if err != nil {
		return err
	}

	msh, err := mesh.Build(m, *size, true, mesh.Options{MinEdge: *minEdge})
	if err != nil {
		return err
	}
	rows, cols := msh.Grid()
	p.Fprintf(w, "Grid:      %d x %d cells, %d triangles\n", cols, rows, msh.Len())

	stats, err := msh.Refine(*tolerance, true)
	if err != nil {
		return err
	}
	for i, n := range stats.Counts {
		p.Fprintf(w, "Sweep %3d: %d triangles\n", i+1, n)
	}
	p.Fprintf(w, "Refined:   %d triangles, %d splits\n", stats.Refined, stats.Splits)
	p.Fprintf(w, "Result:    %d triangles\n", stats.Triangles)
	return nil
}
