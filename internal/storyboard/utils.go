package storyboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GeneratePath creates a timestamped storyboard filename in dir.
func GeneratePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("storyboard_%s.yaml", timestamp))
}

// FindLatest finds the most recent storyboard file in dir.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read storyboard directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "storyboard_") || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(found) == 0 {
		return "", fmt.Errorf("no storyboard files found in %s", dir)
	}

	// Newest first
	sort.Slice(found, func(i, j int) bool {
		return found[i].mod.After(found[j].mod)
	})

	return found[0].path, nil
}
