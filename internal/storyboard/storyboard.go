// Package storyboard dumps a composition's layout to YAML and checks that a
// rebuild reproduces it.
package storyboard

import (
	"fmt"
	"slices"

	"github.com/ivlev/pdfstudio/internal/captions"
	"github.com/ivlev/pdfstudio/internal/engine"
)

const Version = "1.0"

// Storyboard is the frame layout of a whole video.
type Storyboard struct {
	Version     string  `yaml:"version"`
	FPS         int     `yaml:"fps"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	TotalFrames int     `yaml:"total_frames"`
	Slides      []Slide `yaml:"slides"`
}

// Slide is one page segment with its captions.
type Slide struct {
	Page       int              `yaml:"page"`
	Title      string           `yaml:"title,omitempty"`
	StartFrame int              `yaml:"start_frame"`
	FrameCount int              `yaml:"frame_count"`
	Duration   float64          `yaml:"duration"` // seconds
	Background string           `yaml:"background,omitempty"`
	Images     []string         `yaml:"images,omitempty"`
	Audio      string           `yaml:"audio,omitempty"`
	Captions   []captions.Chunk `yaml:"captions,omitempty"`
}

// FromComposition captures the layout of c.
func FromComposition(c *engine.Composition) *Storyboard {
	tl := c.Timeline()
	sb := &Storyboard{
		Version:     Version,
		FPS:         tl.FPS,
		Width:       c.Config.Width,
		Height:      c.Config.Height,
		TotalFrames: tl.TotalFrames,
		Slides:      make([]Slide, len(tl.Entries)),
	}
	for i, e := range tl.Entries {
		sb.Slides[i] = Slide{
			Page:       e.Page.PageNumber,
			Title:      e.Page.Title,
			StartFrame: e.StartFrame,
			FrameCount: e.FrameCount,
			Duration:   e.Page.DurationSeconds,
			Background: e.Page.BackgroundImageRef,
			Images:     append([]string(nil), e.Page.ContentImageRefs...),
			Audio:      e.Page.AudioRef,
			Captions:   append([]captions.Chunk(nil), c.Chunks(i)...),
		}
	}
	return sb
}

// Compare returns the differences between two storyboards, or nil when they
// describe the same video. Frame positions are compared exactly.
func Compare(want, got *Storyboard) []string {
	var diffs []string
	add := func(format string, args ...interface{}) {
		diffs = append(diffs, fmt.Sprintf(format, args...))
	}

	if want.Version != got.Version {
		add("version: %q != %q", want.Version, got.Version)
	}
	if want.FPS != got.FPS {
		add("fps: %d != %d", want.FPS, got.FPS)
	}
	if want.Width != got.Width || want.Height != got.Height {
		add("size: %dx%d != %dx%d", want.Width, want.Height, got.Width, got.Height)
	}
	if want.TotalFrames != got.TotalFrames {
		add("total_frames: %d != %d", want.TotalFrames, got.TotalFrames)
	}
	if len(want.Slides) != len(got.Slides) {
		add("slides: %d != %d", len(want.Slides), len(got.Slides))
		return diffs
	}

	for i := range want.Slides {
		a, b := want.Slides[i], got.Slides[i]
		if a.Page != b.Page {
			add("slide %d: page %d != %d", i, a.Page, b.Page)
		}
		if a.Title != b.Title {
			add("slide %d: title %q != %q", i, a.Title, b.Title)
		}
		if a.StartFrame != b.StartFrame || a.FrameCount != b.FrameCount {
			add("slide %d: frames [%d,+%d) != [%d,+%d)", i, a.StartFrame, a.FrameCount, b.StartFrame, b.FrameCount)
		}
		if a.Duration != b.Duration {
			add("slide %d: duration %gs != %gs", i, a.Duration, b.Duration)
		}
		if a.Background != b.Background {
			add("slide %d: background %q != %q", i, a.Background, b.Background)
		}
		if !slices.Equal(a.Images, b.Images) {
			add("slide %d: images %q != %q", i, a.Images, b.Images)
		}
		if a.Audio != b.Audio {
			add("slide %d: audio %q != %q", i, a.Audio, b.Audio)
		}
		if len(a.Captions) != len(b.Captions) {
			add("slide %d: %d captions != %d", i, len(a.Captions), len(b.Captions))
			continue
		}
		for j := range a.Captions {
			if ca, cb := a.Captions[j], b.Captions[j]; ca != cb {
				add("slide %d caption %d: %q [%g,%g) != %q [%g,%g)",
					i, j, ca.Text, ca.StartFrame, ca.EndFrame, cb.Text, cb.StartFrame, cb.EndFrame)
			}
		}
	}
	return diffs
}
