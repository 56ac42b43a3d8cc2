// Package settings holds the desired vehicle settings applied through
// UpdateSettings.
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete set of desired settings. It is treated as read-only
// once handed to the device.
type Config struct {
	Piloting PilotingConfig `yaml:"piloting"`
	Speed    SpeedConfig    `yaml:"speed"`
	Picture  PictureConfig  `yaml:"picture"`
	Network  NetworkConfig  `yaml:"network"`
}

type PilotingConfig struct {
	MaxAltitude          float64 `yaml:"max_altitude"` // meters
	MaxTilt              float64 `yaml:"max_tilt"`     // degrees
	MaxDistance          float64 `yaml:"max_distance"` // meters
	NoFlyOverMaxDistance bool    `yaml:"no_fly_over_max_distance"`
	AbsolutControl       bool    `yaml:"absolut_control"`
}

type SpeedConfig struct {
	MaxVerticalSpeed float64 `yaml:"max_vertical_speed"` // m/s
	MaxRotationSpeed float64 `yaml:"max_rotation_speed"` // deg/s
	HullProtection   bool    `yaml:"hull_protection"`
	Outdoor          bool    `yaml:"outdoor"`
}

type PictureConfig struct {
	VideoStabilization string  `yaml:"video_stabilization"` // roll_pitch, pitch, roll, none
	VideoFramerate     string  `yaml:"video_framerate"`     // 24fps, 25fps, 30fps
	AutoWhiteBalance   string  `yaml:"auto_white_balance"`  // auto, tungsten, daylight, cloudy, cool_white
	Exposition         float64 `yaml:"exposition"`          // -1.5..1.5
	Saturation         float64 `yaml:"saturation"`          // -100..100
}

type NetworkConfig struct {
	WifiSelection string `yaml:"wifi_selection"` // auto, manual
	WifiBand      string `yaml:"wifi_band"`      // 2_4ghz, 5ghz, all
	WifiChannel   uint8  `yaml:"wifi_channel"`
}

// Default mirrors the vehicle's factory settings.
func Default() Config {
	return Config{
		Piloting: PilotingConfig{
			MaxAltitude: 150,
			MaxTilt:     20,
			MaxDistance: 2000,
		},
		Speed: SpeedConfig{
			MaxVerticalSpeed: 1,
			MaxRotationSpeed: 100,
			Outdoor:          true,
		},
		Picture: PictureConfig{
			VideoStabilization: "roll_pitch",
			VideoFramerate:     "30fps",
			AutoWhiteBalance:   "auto",
		},
		Network: NetworkConfig{
			WifiSelection: "auto",
			WifiBand:      "2_4ghz",
			WifiChannel:   6,
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &cfg, nil
}

func Validate(cfg *Config) error {
	p := cfg.Piloting
	if p.MaxAltitude < 2.6 || p.MaxAltitude > 150 {
		return fmt.Errorf("piloting.max_altitude %.1f out of range [2.6, 150]", p.MaxAltitude)
	}
	if p.MaxTilt < 5 || p.MaxTilt > 35 {
		return fmt.Errorf("piloting.max_tilt %.1f out of range [5, 35]", p.MaxTilt)
	}
	if p.MaxDistance < 10 || p.MaxDistance > 2000 {
		return fmt.Errorf("piloting.max_distance %.0f out of range [10, 2000]", p.MaxDistance)
	}

	sp := cfg.Speed
	if sp.MaxVerticalSpeed < 0.5 || sp.MaxVerticalSpeed > 6 {
		return fmt.Errorf("speed.max_vertical_speed %.1f out of range [0.5, 6]", sp.MaxVerticalSpeed)
	}
	if sp.MaxRotationSpeed < 10 || sp.MaxRotationSpeed > 360 {
		return fmt.Errorf("speed.max_rotation_speed %.0f out of range [10, 360]", sp.MaxRotationSpeed)
	}

	pic := cfg.Picture
	if err := oneOf("picture.video_stabilization", pic.VideoStabilization, "roll_pitch", "pitch", "roll", "none"); err != nil {
		return err
	}
	if err := oneOf("picture.video_framerate", pic.VideoFramerate, "24fps", "25fps", "30fps"); err != nil {
		return err
	}
	if err := oneOf("picture.auto_white_balance", pic.AutoWhiteBalance, "auto", "tungsten", "daylight", "cloudy", "cool_white"); err != nil {
		return err
	}
	if pic.Exposition < -1.5 || pic.Exposition > 1.5 {
		return fmt.Errorf("picture.exposition %.2f out of range [-1.5, 1.5]", pic.Exposition)
	}
	if pic.Saturation < -100 || pic.Saturation > 100 {
		return fmt.Errorf("picture.saturation %.0f out of range [-100, 100]", pic.Saturation)
	}

	n := cfg.Network
	if err := oneOf("network.wifi_selection", n.WifiSelection, "auto", "manual"); err != nil {
		return err
	}
	if err := oneOf("network.wifi_band", n.WifiBand, "2_4ghz", "5ghz", "all"); err != nil {
		return err
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s %q must be one of %v", field, value, allowed)
}
