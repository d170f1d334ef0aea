package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/pdfstudio/internal/effects"
)

type Config struct {
	InputPath    string  `yaml:"input"`
	JobID        string  `yaml:"job_id"`
	APIBase      string  `yaml:"api_base"`
	OutputDir    string  `yaml:"output_dir"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FPS          int     `yaml:"fps"`
	Workers      int     `yaml:"workers"`
	DPI          int     `yaml:"dpi"`
	Preset       string  `yaml:"preset"`
	StillStep    int     `yaml:"still_step"`
	CaptionChars int     `yaml:"caption_chars"`
	ShareURL     string  `yaml:"share_url"`
	ProbeAudio   bool    `yaml:"probe_audio"`
	HistoryDB    string  `yaml:"history_db"`
	ShowStats    bool    `yaml:"show_stats"`
	BuildVersion string  `yaml:"-"`
	FetchTimeout float64 `yaml:"fetch_timeout"`

	Animation effects.Config `yaml:"animation"`
}

// Default returns the composition used by the preview player: 1080p at 30 FPS.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if c.Width == 0 && c.Height == 0 {
		c.Width, c.Height = 1920, 1080
	}
	if c.FPS == 0 {
		c.FPS = 30
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.DPI == 0 {
		c.DPI = 150
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.StillStep == 0 {
		c.StillStep = c.FPS
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 30
	}

	def := effects.DefaultConfig()
	if c.Animation.FadeInFrames == 0 {
		c.Animation.FadeInFrames = def.FadeInFrames
	}
	if c.Animation.SlideDistance == 0 {
		c.Animation.SlideDistance = def.SlideDistance
	}
	if c.Animation.CaptionPopFrames == 0 {
		c.Animation.CaptionPopFrames = def.CaptionPopFrames
	}
	if c.Animation.CaptionPopScale == 0 {
		c.Animation.CaptionPopScale = def.CaptionPopScale
	}
	if c.Animation.Spring == (effects.DampedSpring{}) {
		c.Animation.Spring = def.Spring
	}
}

// ApplyPreset overrides the frame size for a named aspect ratio.
func (c *Config) ApplyPreset() error {
	switch c.Preset {
	case "":
	case "16:9":
		c.Width, c.Height = 1920, 1080
	case "9:16":
		c.Width, c.Height = 1080, 1920
	case "4:5":
		c.Width, c.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q (expected 16:9, 9:16 or 4:5)", c.Preset)
	}
	return nil
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects settings that cannot produce a timeline.
func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.StillStep <= 0:
		return fmt.Errorf("%w: still step must be positive, got %d", ErrInvalidConfig, c.StillStep)
	case c.CaptionChars < 0:
		return fmt.Errorf("%w: caption chars must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Load reads a YAML project file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.ApplyPreset(); err != nil {
		return nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
