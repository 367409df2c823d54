package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagOBJ      = flag.String("obj", "", "OBJ mesh to load on startup")
	flagTileSize = flag.Float64("tile-size", 0, "Tile edge length in world units")
	flagAngle    = flag.Float64("angle", -1, "Maximum walkable slope in degrees")
	flagServer   = flag.String("server", "", "Actor feed address")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
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
	if *flagOBJ != "" {
		cfg.MeshPath = *flagOBJ
	}
	if *flagTileSize > 0 {
		cfg.Pipeline.TileSize = float32(*flagTileSize)
	}
	// 0 is a valid angle, so negative means unset
	if *flagAngle >= 0 {
		cfg.Pipeline.SlopeAngle = float32(*flagAngle)
	}
	if *flagServer != "" {
		cfg.Network.ActorServer = *flagServer
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
