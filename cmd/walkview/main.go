// walkview displays a triangle mesh split into tiles and colored by slope
// walkability, with live actor markers from an actor server.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/walkview/internal/config"
	"github.com/Faultbox/walkview/internal/logger"
)

func main() {
	// SDL and OpenGL calls must stay on the main thread
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting walkview",
		zap.String("config", config.ConfigPath()),
		zap.Float32("tile_size", cfg.Pipeline.TileSize),
		zap.Float32("slope_angle", cfg.Pipeline.SlopeAngle))

	app, err := NewApp(cfg)
	if err != nil {
		logger.Fatal("failed to create viewer", zap.Error(err))
	}
	defer app.Close()

	app.Run()
	logger.Info("walkview stopped")
}
