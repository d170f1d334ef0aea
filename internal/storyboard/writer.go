package storyboard

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Write saves a storyboard as YAML, creating the parent directory.
func Write(sb *Storyboard, path string) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a storyboard from a YAML file.
func Read(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sb Storyboard
	if err := yaml.Unmarshal(data, &sb); err != nil {
		return nil, err
	}

	return &sb, nil
}
