// Package engine ties the timeline, caption and animation packages into a
// composition that can be sampled at any frame.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ivlev/pdfstudio/internal/captions"
	"github.com/ivlev/pdfstudio/internal/config"
	"github.com/ivlev/pdfstudio/internal/effects"
	"github.com/ivlev/pdfstudio/internal/renderer"
	"github.com/ivlev/pdfstudio/internal/timeline"
)

// BuildTimeline lays pages out back to back at fps.
func BuildTimeline(pages []timeline.PageAsset, fps int) (*timeline.Timeline, error) {
	return timeline.Build(pages, fps)
}

// Composition is an immutable, fully timed video. All methods are safe for
// concurrent use.
type Composition struct {
	Config *config.Config

	timeline *timeline.Timeline
	chunks   [][]captions.Chunk
	anim     *effects.Animator
}

// NewComposition builds the timeline and the caption tables of every page.
// cfg is copied; a nil cfg uses config.Default.
func NewComposition(cfg *config.Config, pages []timeline.PageAsset) (*Composition, error) {
	c := config.Default()
	if cfg != nil {
		copied := *cfg
		copied.SetDefaults()
		c = &copied
	}

	tl, err := BuildTimeline(pages, c.FPS)
	if err != nil {
		return nil, err
	}

	seg := captions.Segmenter{MaxChars: c.CaptionChars}
	chunks := make([][]captions.Chunk, len(tl.Entries))
	for i, e := range tl.Entries {
		chunks[i] = seg.Segment(e.Page.NarrationText, e.FrameCount)
	}

	return &Composition{
		Config:   c,
		timeline: tl,
		chunks:   chunks,
		anim:     effects.NewAnimator(c.Animation, c.FPS, nil),
	}, nil
}

func (c *Composition) Timeline() *timeline.Timeline { return c.timeline }

func (c *Composition) TotalFrames() int { return c.timeline.TotalFrames }

func (c *Composition) FPS() int { return c.timeline.FPS }

// Chunks returns the caption chunks of the entry at index.
func (c *Composition) Chunks(index int) []captions.Chunk {
	if index < 0 || index >= len(c.chunks) {
		return nil
	}
	return c.chunks[index]
}

// RenderFrame describes the global frame. Frames outside [0, TotalFrames) are blank.
func (c *Composition) RenderFrame(frame int) renderer.Frame {
	entry, ok := c.timeline.Locate(frame)
	if !ok {
		return renderer.Blank(frame)
	}
	return renderer.RenderSlide(entry, c.chunks[entry.Index], c.anim, c.timeline.FPS, frame)
}

// CaptionCues places every caption chunk on the global clock.
func (c *Composition) CaptionCues() []captions.Cue {
	var cues []captions.Cue
	fps := c.timeline.FPS
	for i, e := range c.timeline.Entries {
		offset := float64(e.StartFrame)
		for _, ch := range c.chunks[i] {
			cues = append(cues, captions.Cue{
				Index: len(cues) + 1,
				Start: captions.FramesToDuration(offset+ch.StartFrame, fps),
				End:   captions.FramesToDuration(offset+ch.EndFrame, fps),
				Text:  ch.Text,
			})
		}
	}
	return cues
}

// WriteSRT saves the caption cues as a SubRip file.
func (c *Composition) WriteSRT(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := captions.WriteSRT(f, c.CaptionCues()); err != nil {
		f.Close()
		return fmt.Errorf("ошибка записи субтитров: %w", err)
	}
	return f.Close()
}
