// Package pipeline runs the generator end to end: load a raster, build
// and refine the mesh, optionally project it, and export it.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/config"
	"github.com/Faultbox/terramesh/internal/export"
	"github.com/Faultbox/terramesh/internal/geodesy"
	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/internal/mesh"
	"github.com/Faultbox/terramesh/pkg/dem"
)

// ErrNotGeographic is returned when UTM output is requested for a raster
// whose coordinates are not longitude/latitude degrees.
var ErrNotGeographic = errors.New("raster is not in geographic coordinates")

// Timings records how long each stage took.
type Timings struct {
	Load, Build, Refine, Verify, Project, Export time.Duration
}

// Total returns the summed duration of all stages.
func (t Timings) Total() time.Duration {
	return t.Load + t.Build + t.Refine + t.Verify + t.Project + t.Export
}

// Result describes a finished run.
type Result struct {
	Map     *dem.Map
	Mesh    *mesh.Mesh
	Initial int // triangles before refinement
	Stats   mesh.RefineStats
	Files   []string
	Timings Timings
}

// Run executes the configured pipeline. Mesh failures keep their
// *mesh.Error in the chain so callers can map them to exit codes.
func Run(cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("pipeline")
	res := &Result{}

	start := time.Now()
	raster, err := dem.Load(cfg.Input.Path, cfg.Input.Format)
	if err != nil {
		return nil, fmt.Errorf("load raster: %w", err)
	}
	res.Map = raster
	res.Timings.Load = time.Since(start)

	if err := assignZone(raster, cfg.Mesh.UTM); err != nil {
		return nil, err
	}

	minZ, maxZ := raster.AltitudeRange()
	log.Info("raster loaded",
		zap.String("name", raster.Name),
		zap.Int("width", raster.Width),
		zap.Int("length", raster.Length),
		zap.Float64("min_z", minZ),
		zap.Float64("max_z", maxZ),
		zap.Int("zone", raster.Zone),
		zap.Duration("took", res.Timings.Load))
	if raster.Voids > 0 {
		log.Warn("raster has void samples", zap.Int("voids", raster.Voids))
	}

	start = time.Now()
	msh, err := mesh.Build(raster, cfg.Mesh.CellSize, cfg.Mesh.UseHeight, mesh.Options{
		MaxTriangles: cfg.Mesh.MaxTriangles,
		MinEdge:      cfg.Mesh.MinEdge,
		Verify:       cfg.Mesh.Verify,
		Logger:       logger.Named("mesh"),
	})
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}
	res.Mesh = msh
	res.Initial = msh.Len()
	res.Timings.Build = time.Since(start)

	rows, cols := msh.Grid()
	log.Info("initial mesh built",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Int("triangles", res.Initial),
		zap.Duration("took", res.Timings.Build))

	start = time.Now()
	res.Stats, err = msh.Refine(cfg.Mesh.Tolerance, cfg.Mesh.UseHeight)
	if err != nil {
		return res, fmt.Errorf("refine mesh: %w", err)
	}
	res.Timings.Refine = time.Since(start)

	log.Info("mesh refined",
		zap.Float64("tolerance", cfg.Mesh.Tolerance),
		zap.Int("sweeps", res.Stats.Sweeps),
		zap.Int("splits", res.Stats.Splits),
		zap.Int("triangles", res.Stats.Triangles),
		zap.Duration("took", res.Timings.Refine))

	if cfg.Mesh.Verify {
		start = time.Now()
		if err := msh.Verify(); err != nil {
			return res, fmt.Errorf("verify mesh: %w", err)
		}
		res.Timings.Verify = time.Since(start)
		log.Info("mesh verified", zap.Duration("took", res.Timings.Verify))
	}

	if cfg.Mesh.UTM {
		start = time.Now()
		proj, err := geodesy.New(raster.Zone, raster.Hemisphere)
		if err != nil {
			return res, err
		}
		if err := msh.ConvertToUTM(proj); err != nil {
			return res, fmt.Errorf("project mesh: %w", err)
		}
		res.Timings.Project = time.Since(start)
		log.Info("mesh projected", zap.Stringer("zone", proj), zap.Duration("took", res.Timings.Project))
	}

	start = time.Now()
	res.Files, err = export.Export(cfg.Output.Dir, raster.Name, msh, cfg.Output.Formats, cfg.Output.Gzip,
		export.Options{BaseDepth: cfg.Output.BaseDepth})
	if err != nil {
		return res, fmt.Errorf("export mesh: %w", err)
	}
	res.Timings.Export = time.Since(start)

	log.Info("mesh exported",
		zap.Strings("files", res.Files),
		zap.Duration("took", res.Timings.Export),
		zap.Duration("total", res.Timings.Total()))
	return res, nil
}

// assignZone fills in the UTM zone of the raster centre when the reader
// left it unset. Projection needs longitude/latitude input.
func assignZone(m *dem.Map, project bool) error {
	west, south, east, north := m.Extent()
	geographic := west >= -180 && east <= 180 && south >= -90 && north <= 90
	if project && !geographic {
		return fmt.Errorf("%w: extent %v,%v %v,%v", ErrNotGeographic, west, south, east, north)
	}
	if m.Zone == 0 && geographic {
		lon, lat := m.Center()
		m.Zone, m.Hemisphere = geodesy.ZoneFor(lon, lat)
	}
	return nil
}
