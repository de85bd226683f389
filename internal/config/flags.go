package config

import (
	"flag"
	"strings"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagInput     = flag.String("input", "", "Elevation raster (.hgt or .asc)")
	flagFormat    = flag.String("format", "", "Input format: auto, hgt or asc")
	flagSize      = flag.Int("size", 0, "Initial cell size in samples")
	flagTolerance = flag.Float64("tolerance", 0, "Allowed vertical deviation")
	flagMinEdge   = flag.Float64("min-edge", 0, "Shortest edge refinement may create")
	flagNoHeight  = flag.Bool("no-height", false, "Emit flat meshes (z = 0)")
	flagUTM       = flag.Bool("utm", false, "Project vertices to UTM")
	flagVerify    = flag.Bool("verify", false, "Verify mesh consistency after every change")
	flagOut       = flag.String("out", "", "Output directory")
	flagFormats   = flag.String("formats", "", "Comma-separated output formats")
	flagGzip      = flag.Bool("gzip", false, "Compress output files")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagInput != "" {
		cfg.Input.Path = *flagInput
	} else if flag.NArg() > 0 {
		cfg.Input.Path = flag.Arg(0)
	}
	if *flagFormat != "" {
		cfg.Input.Format = *flagFormat
	}
	if *flagSize > 0 {
		cfg.Mesh.CellSize = *flagSize
	}
	if *flagTolerance != 0 {
		cfg.Mesh.Tolerance = *flagTolerance
	}
	if *flagMinEdge > 0 {
		cfg.Mesh.MinEdge = *flagMinEdge
	}
	if *flagNoHeight {
		cfg.Mesh.UseHeight = false
	}
	if *flagUTM {
		cfg.Mesh.UTM = true
	}
	if *flagVerify {
		cfg.Mesh.Verify = true
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagFormats != "" {
		cfg.Output.Formats = splitList(*flagFormats)
	}
	if *flagGzip {
		cfg.Output.Gzip = true
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
