package engine

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/pdfstudio/internal/renderer"
	"github.com/ivlev/pdfstudio/internal/system"
)

// RenderStill rasterises one frame to a PNG file, creating its directory.
func (c *Composition) RenderStill(ctx context.Context, r *renderer.Rasterizer, frame int, path string) error {
	img := r.Render(ctx, c.RenderFrame(frame))
	defer system.PutFrame(img)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("кадр %d: %w", frame, err)
	}
	return f.Close()
}

// StillFrames lists the frames sampled every step frames.
func (c *Composition) StillFrames(step int) []int {
	if step <= 0 {
		step = 1
	}
	frames := make([]int, 0, c.TotalFrames()/step+1)
	for f := 0; f < c.TotalFrames(); f += step {
		frames = append(frames, f)
	}
	return frames
}

// ExportStills writes every step-th frame to dir as frame_NNNNNN.png using
// Config.Workers goroutines. The returned paths are ordered by frame.
func (c *Composition) ExportStills(ctx context.Context, r *renderer.Rasterizer, dir string, step int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	frames := c.StillFrames(step)
	paths := make([]string, len(frames))
	var done atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Config.Workers)
	for i, frame := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, fmt.Sprintf("frame_%06d.png", frame))
			if err := c.RenderStill(ctx, r, frame, path); err != nil {
				return err
			}
			paths[i] = path
			fmt.Printf("[>] Ready: %d/%d\n", done.Add(1), len(frames))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
