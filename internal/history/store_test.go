package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	j := &Job{JobID: "abc", Input: "job.json", Pages: 2, TotalFrames: 165, FPS: 30, Output: "output/stills"}
	if err := s.Record(ctx, j); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if j.ID == "" || j.CreatedAt.IsZero() {
		t.Fatalf("Record should assign ID and CreatedAt: %+v", j)
	}

	got, err := s.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.JobID != "abc" || got.Pages != 2 || got.TotalFrames != 165 || got.Output != "output/stills" {
		t.Errorf("unexpected job: %+v", got)
	}
	if d := got.CreatedAt.Sub(j.CreatedAt); d > time.Millisecond || d < -time.Millisecond {
		t.Errorf("CreatedAt drifted by %v", d)
	}
	if got.Duration() != 5500*time.Millisecond {
		t.Errorf("Duration = %v, want 5.5s", got.Duration())
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		j := &Job{Input: "in", Pages: i + 1, TotalFrames: 30, FPS: 30, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Record(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 jobs, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("jobs not sorted newest first at %d", i)
		}
	}

	top, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Pages != 5 || top[1].Pages != 4 {
		t.Errorf("unexpected limited list: %+v", top)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	j := &Job{Input: "in", Pages: 1, TotalFrames: 30, FPS: 30}
	if err := s.Record(ctx, j); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, j.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, j.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete should report ErrNotFound, got %v", err)
	}
}
