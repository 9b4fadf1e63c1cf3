package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rideview/internal/playback"
	"github.com/san-kum/rideview/internal/vehicle"
)

// Defaults match the original viewer session.
const (
	DefaultDataDir          = "csv"
	DefaultFPS              = 30
	DefaultSimStep          = 0.001
	DefaultVehicle          = "GR86"
	DefaultGroundOffset     = 0.75
	DefaultWheelRadius      = 0.25
	DefaultCameraHalfWidth  = 5.0
	DefaultCameraYMin       = -1.0
	DefaultCameraYMax       = 3.0
	DefaultBrakingThreshold = -1.0
)

type Config struct {
	DataDir          string  `yaml:"data_dir"`
	FPS              int     `yaml:"fps"`
	SimStep          float64 `yaml:"sim_step"`
	Vehicle          string  `yaml:"vehicle"`
	GroundOffset     float64 `yaml:"ground_offset"`
	WheelRadius      float64 `yaml:"wheel_radius"`
	CameraHalfWidth  float64 `yaml:"camera_half_width"`
	CameraYMin       float64 `yaml:"camera_y_min"`
	CameraYMax       float64 `yaml:"camera_y_max"`
	BrakingThreshold float64 `yaml:"braking_threshold"`
	Overrun          string  `yaml:"overrun"` // hold, loop or stop

	// Extra vehicle profiles on top of the builtin registry.
	Vehicles []VehicleConfig `yaml:"vehicles"`
}

type VehicleConfig struct {
	Name        string  `yaml:"name"`
	FrontOffset float64 `yaml:"front_offset"`
	RearOffset  float64 `yaml:"rear_offset"`
}

func Default() *Config {
	return &Config{
		DataDir:          DefaultDataDir,
		FPS:              DefaultFPS,
		SimStep:          DefaultSimStep,
		Vehicle:          DefaultVehicle,
		GroundOffset:     DefaultGroundOffset,
		WheelRadius:      DefaultWheelRadius,
		CameraHalfWidth:  DefaultCameraHalfWidth,
		CameraYMin:       DefaultCameraYMin,
		CameraYMax:       DefaultCameraYMax,
		BrakingThreshold: DefaultBrakingThreshold,
		Overrun:          "hold",
	}
}

// Load reads a YAML config over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if c.SimStep <= 0 {
		return fmt.Errorf("config: sim_step must be positive, got %f", c.SimStep)
	}
	if c.CameraHalfWidth <= 0 {
		return fmt.Errorf("config: camera_half_width must be positive, got %f", c.CameraHalfWidth)
	}
	if c.CameraYMax <= c.CameraYMin {
		return fmt.Errorf("config: camera_y_max must exceed camera_y_min")
	}
	if c.WheelRadius < 0 {
		return fmt.Errorf("config: wheel_radius must not be negative, got %f", c.WheelRadius)
	}
	if _, err := playback.ParsePolicy(c.Overrun); err != nil {
		return err
	}
	return nil
}

// DisplayPeriod is the seconds-per-frame the engine ticks at.
func (c *Config) DisplayPeriod() float64 {
	return 1.0 / float64(c.FPS)
}

// PlaybackOptions assembles the engine options from this configuration.
func (c *Config) PlaybackOptions() (playback.Options, error) {
	policy, err := playback.ParsePolicy(c.Overrun)
	if err != nil {
		return playback.Options{}, err
	}
	return playback.Options{
		DisplayPeriod:    c.DisplayPeriod(),
		SimStep:          c.SimStep,
		GroundOffset:     c.GroundOffset,
		WheelRadius:      c.WheelRadius,
		CameraHalfWidth:  c.CameraHalfWidth,
		CameraYMin:       c.CameraYMin,
		CameraYMax:       c.CameraYMax,
		BrakingThreshold: c.BrakingThreshold,
		Policy:           policy,
	}, nil
}

// Registry builds the vehicle registry: builtins plus any profiles
// declared in the config file.
func (c *Config) Registry() (*vehicle.Registry, error) {
	reg := vehicle.NewRegistry()
	for _, v := range c.Vehicles {
		p := vehicle.Profile{Name: v.Name, FrontOffset: v.FrontOffset, RearOffset: v.RearOffset}
		if err := reg.Add(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
