// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalid is returned by Validate for settings that cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Camera   CameraConfig   `yaml:"camera"`
	Network  NetworkConfig  `yaml:"network"`
	Logging  LoggingConfig  `yaml:"logging"`

	// MeshPath is loaded on startup when set. It only comes from -obj.
	MeshPath string `yaml:"-"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// PipelineConfig holds mesh processing settings.
type PipelineConfig struct {
	TileSize   float32 `yaml:"tile_size"`
	SlopeAngle float32 `yaml:"slope_angle"` // degrees
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	MoveSpeed       float32 `yaml:"move_speed"` // units per second
	LookSensitivity float32 `yaml:"look_sensitivity"`
	FOV             float32 `yaml:"fov"` // degrees
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
}

// NetworkConfig holds actor feed settings.
type NetworkConfig struct {
	ActorServer    string        `yaml:"actor_server"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Walkview",
			VSync:  true,
		},
		Pipeline: PipelineConfig{
			TileSize:   988,
			SlopeAngle: 45,
		},
		Camera: CameraConfig{
			MoveSpeed:       988,
			LookSensitivity: 0.00125,
			FOV:             60,
			Near:            0.01,
			Far:             100000,
		},
		Network: NetworkConfig{
			ActorServer:    "127.0.0.1:9999",
			ConnectTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate clamps the slope angle into [0, 90] and rejects settings the
// viewer cannot run with.
func (c *Config) Validate() error {
	c.Pipeline.SlopeAngle = clamp(c.Pipeline.SlopeAngle, 0, 90)

	ts := float64(c.Pipeline.TileSize)
	if !(ts > 0) || math.IsInf(ts, 1) {
		return fmt.Errorf("%w: tile_size %v must be positive", ErrInvalid, c.Pipeline.TileSize)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if !(c.Camera.Near > 0) || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera near %v / far %v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		return fmt.Errorf("%w: fov %v", ErrInvalid, c.Camera.FOV)
	}
	return nil
}

func clamp(v, lo, hi float32) float32 {
	if math.IsNaN(float64(v)) {
		return lo
	}
	return max(lo, min(v, hi))
}
