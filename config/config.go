package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for detection and announcement behavior.
// Fields may be loaded from a YAML file and overridden by command-line flags.
type Config struct {
	Debug bool `yaml:"debug"`

	// Pipeline parameters
	FPS             float64 `yaml:"fps"`
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
	StableFrames    int     `yaml:"stable_frames"`

	// Detection parameters. Hue uses the 0-180 scale, saturation and
	// value 0-255.
	MinArea   int      `yaml:"min_area"`
	LowerRed1 HSVBound `yaml:"lower_red_1"`
	UpperRed1 HSVBound `yaml:"upper_red_1"`
	LowerRed2 HSVBound `yaml:"lower_red_2"`
	UpperRed2 HSVBound `yaml:"upper_red_2"`

	// Preview sizing for the GUI.
	PreviewMaxW int `yaml:"preview_max_w"`
	PreviewMaxH int `yaml:"preview_max_h"`
}

// HSVBound is one corner of an HSV threshold range.
type HSVBound struct {
	H int `yaml:"h"`
	S int `yaml:"s"`
	V int `yaml:"v"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		FPS:             16.0,
		CooldownSeconds: 2.0,
		StableFrames:    3,
		MinArea:         8,
		LowerRed1:       HSVBound{H: 0, S: 120, V: 80},
		UpperRed1:       HSVBound{H: 10, S: 255, V: 255},
		LowerRed2:       HSVBound{H: 170, S: 120, V: 80},
		UpperRed2:       HSVBound{H: 180, S: 255, V: 255},
		PreviewMaxW:     640,
		PreviewMaxH:     480,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		c.FPS = 16.0
	}
	if c.FPS > 60 {
		c.FPS = 60
	}
	if c.CooldownSeconds < 0 {
		c.CooldownSeconds = 2.0
	}
	if c.StableFrames <= 0 {
		c.StableFrames = 3
	}
	if c.MinArea <= 0 {
		c.MinArea = 8
	}
	clampBound(&c.LowerRed1)
	clampBound(&c.UpperRed1)
	clampBound(&c.LowerRed2)
	clampBound(&c.UpperRed2)
	if c.PreviewMaxW <= 0 {
		c.PreviewMaxW = 640
	}
	if c.PreviewMaxH <= 0 {
		c.PreviewMaxH = 480
	}
	return nil
}

func clampBound(b *HSVBound) {
	b.H = clamp(b.H, 0, 180)
	b.S = clamp(b.S, 0, 255)
	b.V = clamp(b.V, 0, 255)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Load attempts to read configuration from the given YAML file path. If the
// file does not exist it returns DefaultConfig(). On a decode error it
// returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in YAML format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
