package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := Default()

	if c.Width != 1920 || c.Height != 1080 || c.FPS != 30 {
		t.Errorf("unexpected defaults: %dx%d @ %d", c.Width, c.Height, c.FPS)
	}
	if c.Animation.FadeInFrames != 15 || c.Animation.SlideDistance != 50 {
		t.Errorf("unexpected animation defaults: %+v", c.Animation)
	}
	if c.Animation.Spring.Damping != 100 {
		t.Errorf("unexpected spring: %+v", c.Animation.Spring)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset string
		w, h   int
		err    bool
	}{
		{"16:9", 1920, 1080, false},
		{"9:16", 1080, 1920, false},
		{"4:5", 1080, 1350, false},
		{"1:1", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			c := &Config{Preset: tt.preset}
			err := c.ApplyPreset()
			if tt.err {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Width != tt.w || c.Height != tt.h {
				t.Errorf("got %dx%d, want %dx%d", c.Width, c.Height, tt.w, tt.h)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.FPS = -1
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	c = Default()
	c.Workers = 0
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	data := []byte(`
input: input/pages/job.json
fps: 24
preset: "9:16"
animation:
  fade_in_frames: 12
  spring:
    damping: 20
    stiffness: 100
    mass: 1
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.FPS != 24 || c.Width != 1080 || c.Height != 1920 {
		t.Errorf("unexpected frame setup: %dx%d @ %d", c.Width, c.Height, c.FPS)
	}
	if c.StillStep != 24 {
		t.Errorf("StillStep = %d, want 24", c.StillStep)
	}
	if c.Animation.FadeInFrames != 12 || c.Animation.SlideDistance != 50 {
		t.Errorf("unexpected animation: %+v", c.Animation)
	}
	if c.Animation.Spring.Damping != 20 {
		t.Errorf("spring not loaded: %+v", c.Animation.Spring)
	}
}

func TestLoadRejectsBadFPS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("fps: -5\n"), 0644)

	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
