package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFindLatestFile(t *testing.T) {
	dir := t.TempDir()
	files := []string{"job_a.json", "job_b.yaml", "job_c.json", "notes.txt"}
	for i, name := range files {
		p := filepath.Join(dir, name)
		os.WriteFile(p, []byte("{}"), 0644)
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(p, modTime, modTime)
	}

	latest, err := FindLatestFile(dir, ManifestExtensions...)
	if err != nil {
		t.Fatalf("FindLatestFile failed: %v", err)
	}
	if filepath.Base(latest) != "job_c.json" {
		t.Errorf("expected job_c.json, got %s", latest)
	}

	if _, err := FindLatestFile(dir, AudioExtensions...); err == nil {
		t.Error("expected error when no audio present")
	}
}

func TestFramePool(t *testing.T) {
	p := NewFramePool()
	img := p.Get(32, 18)
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 18 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	p.Put(img)

	again := p.Get(32, 18)
	if again.Bounds() != img.Bounds() {
		t.Errorf("pool returned wrong size %v", again.Bounds())
	}
	if other := p.Get(8, 8); other.Bounds().Dx() != 8 {
		t.Errorf("unexpected bounds %v", other.Bounds())
	}
}

func TestSnapshot(t *testing.T) {
	s := Snapshot()
	if s.LogicalCPUs <= 0 {
		t.Errorf("expected at least one CPU, got %d", s.LogicalCPUs)
	}
	if !strings.Contains(s.String(), "CPUs:") {
		t.Errorf("unexpected report line: %s", s.String())
	}
}
