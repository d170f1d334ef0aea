package renderer

import (
	"github.com/ivlev/pdfstudio/internal/captions"
	"github.com/ivlev/pdfstudio/internal/effects"
	"github.com/ivlev/pdfstudio/internal/timeline"
)

// RenderSlide composes the layers of one page segment at a global frame.
// A frame outside the entry yields a blank frame.
func RenderSlide(entry timeline.Entry, chunks []captions.Chunk, anim *effects.Animator, fps int, frame int) Frame {
	if !entry.Contains(frame) {
		return Blank(frame)
	}

	local := frame - entry.StartFrame
	f := float64(local)
	state := anim.At(f)
	page := entry.Page

	out := Frame{
		Frame:      frame,
		PageIndex:  entry.Index,
		PageNumber: page.PageNumber,
		LocalFrame: local,
	}

	if page.BackgroundImageRef != "" {
		out.Background = &BackgroundLayer{
			ImageRef: page.BackgroundImageRef,
			Opacity:  state.Opacity,
		}
	}

	out.Content = &ContentLayer{
		Title:      page.Title,
		ImageRefs:  append([]string(nil), page.ContentImageRefs...),
		PageNumber: page.PageNumber,
		Opacity:    state.Opacity,
		OffsetY:    state.OffsetY,
	}

	if i, chunk, ok := captions.Active(chunks, f); ok {
		opacity, scale := anim.CaptionPop(f, chunk)
		out.Caption = &CaptionLayer{
			Text:    chunk.Text,
			Index:   i,
			Opacity: opacity,
			Scale:   scale,
		}
	}

	if page.AudioRef != "" {
		out.Audio = &AudioTrack{
			Ref:           page.AudioRef,
			StartFrame:    entry.StartFrame,
			OffsetFrames:  local,
			OffsetSeconds: f / float64(fps),
		}
	}

	return out
}
