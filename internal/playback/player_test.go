package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/ivlev/pdfstudio/internal/config"
	"github.com/ivlev/pdfstudio/internal/engine"
	"github.com/ivlev/pdfstudio/internal/timeline"
)

func testComposition(t *testing.T) *engine.Composition {
	t.Helper()
	pages := []timeline.PageAsset{
		{PageNumber: 1, Title: "One", NarrationText: "Hello world.", DurationSeconds: 2},
		{PageNumber: 2, Title: "Two", DurationSeconds: 3.5},
	}
	c, err := engine.NewComposition(&config.Config{FPS: 30}, pages)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSeekClamps(t *testing.T) {
	p := NewPlayer(testComposition(t), false)

	tests := []struct {
		seek, want int
	}{
		{-10, 0},
		{0, 0},
		{60, 60},
		{164, 164},
		{165, 164},
		{10000, 164},
	}
	for _, tt := range tests {
		if got := p.Seek(tt.seek); got != tt.want {
			t.Errorf("Seek(%d) = %d, want %d", tt.seek, got, tt.want)
		}
		if p.Frame().Blank {
			t.Errorf("Seek(%d): player must never show a blank frame", tt.seek)
		}
	}

	if got := p.SeekTime(2 * time.Second); got != 60 {
		t.Errorf("SeekTime(2s) = %d, want 60", got)
	}
	if got := p.Frame().PageNumber; got != 2 {
		t.Errorf("frame 60 should show page 2, got %d", got)
	}
}

func TestTick(t *testing.T) {
	p := NewPlayer(testComposition(t), false)

	if got := p.Tick(time.Second); got != 0 {
		t.Errorf("paused player moved to %d", got)
	}

	p.Play()
	if got := p.Tick(time.Second); got != 30 {
		t.Errorf("Tick(1s) = %d, want 30", got)
	}
	// Sub-frame ticks accumulate.
	for i := 0; i < 4; i++ {
		p.Tick(10 * time.Millisecond)
	}
	if got := p.Current(); got != 31 {
		t.Errorf("after 40ms of ticks = %d, want 31", got)
	}

	if got := p.Tick(time.Hour); got != 164 {
		t.Errorf("Tick past the end = %d, want 164", got)
	}
	if p.Playing() {
		t.Error("non-looping player should pause at the end")
	}
}

func TestTickLoops(t *testing.T) {
	p := NewPlayer(testComposition(t), true)
	p.Seek(150)
	p.Play()

	if got := p.Tick(time.Second); got != 15 {
		t.Errorf("looped tick = %d, want 15", got)
	}
	if !p.Playing() {
		t.Error("looping player should keep playing")
	}
}

func TestConcurrentControl(t *testing.T) {
	p := NewPlayer(testComposition(t), true)
	p.Play()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch j % 3 {
				case 0:
					p.Tick(33 * time.Millisecond)
				case 1:
					p.Seek(i*20 + j)
				default:
					_ = p.Frame()
				}
			}
		}(i)
	}
	wg.Wait()

	if f := p.Current(); f < 0 || f >= 165 {
		t.Errorf("play head out of range: %d", f)
	}
}
