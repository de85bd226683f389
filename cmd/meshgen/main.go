// Package main is the entry point for the terramesh generator.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/config"
	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/internal/mesh"
	"github.com/Faultbox/terramesh/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	res, err := pipeline.Run(cfg)
	if err != nil {
		logger.Error("mesh generation failed", zap.Error(err))
		return exitCode(err)
	}

	for _, f := range res.Files {
		fmt.Println(f)
	}
	return 0
}

// exitCode maps mesh failures to their process status; anything else
// exits 1.
func exitCode(err error) int {
	if kind, ok := mesh.KindOf(err); ok {
		return kind.ExitCode()
	}
	return 1
}
