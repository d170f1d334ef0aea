package timeline

import (
	"math"
	"sort"
)

// Entry is one page segment of the timeline: frames [StartFrame, StartFrame+FrameCount).
type Entry struct {
	Index      int
	Page       PageAsset
	StartFrame int
	FrameCount int
}

// EndFrame is the first frame after the segment.
func (e Entry) EndFrame() int {
	return e.StartFrame + e.FrameCount
}

// Contains reports whether the global frame belongs to this segment.
func (e Entry) Contains(frame int) bool {
	return frame >= e.StartFrame && frame < e.EndFrame()
}

// Timeline is the ordered, gap-free tiling of [0, TotalFrames) by page segments.
// It is immutable once built and safe to share between goroutines.
type Timeline struct {
	FPS         int
	Entries     []Entry
	TotalFrames int
}

// Build validates pages and lays them out back to back in page-number order.
// The input slice is neither reordered nor modified.
func Build(pages []PageAsset, fps int) (*Timeline, error) {
	if fps <= 0 {
		return nil, &ConfigError{Index: -1, Field: "fps", Err: ErrInvalidFPS}
	}
	if len(pages) == 0 {
		return nil, &ConfigError{Index: -1, Field: "pages", Err: ErrEmptyPages}
	}

	seen := make(map[int]int, len(pages))
	for i, p := range pages {
		if p.PageNumber <= 0 {
			return nil, &ConfigError{Index: i, Field: "pageNumber", Err: ErrInvalidPageNumber}
		}
		if _, dup := seen[p.PageNumber]; dup {
			return nil, &ConfigError{Index: i, Field: "pageNumber", Err: ErrDuplicatePage}
		}
		seen[p.PageNumber] = i
		if !(p.DurationSeconds > 0) || math.IsInf(p.DurationSeconds, 0) {
			return nil, &ConfigError{Index: i, Field: "durationSeconds", Err: ErrInvalidDuration}
		}
	}

	ordered := make([]PageAsset, len(pages))
	copy(ordered, pages)
	for i := range ordered {
		if ordered[i].ContentImageRefs != nil {
			ordered[i].ContentImageRefs = append([]string(nil), ordered[i].ContentImageRefs...)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PageNumber < ordered[j].PageNumber
	})

	durations := make([]float64, len(ordered))
	for i, p := range ordered {
		durations[i] = p.DurationSeconds
	}
	layout := CalculateDurations(durations, fps)

	tl := &Timeline{FPS: fps, Entries: make([]Entry, len(ordered))}
	currentFrame := 0
	for i, p := range ordered {
		tl.Entries[i] = Entry{
			Index:      i,
			Page:       p,
			StartFrame: currentFrame,
			FrameCount: layout.FrameCounts[i],
		}
		currentFrame += layout.FrameCounts[i]
	}
	tl.TotalFrames = currentFrame
	return tl, nil
}

// Locate returns the segment owning a global frame, or false when the frame
// lies outside [0, TotalFrames).
func (t *Timeline) Locate(frame int) (Entry, bool) {
	if t == nil || frame < 0 || frame >= t.TotalFrames {
		return Entry{}, false
	}
	i := sort.Search(len(t.Entries), func(i int) bool {
		return t.Entries[i].EndFrame() > frame
	})
	if i == len(t.Entries) {
		return Entry{}, false
	}
	return t.Entries[i], true
}

// Seconds converts a frame count to seconds at the timeline's frame rate.
func (t *Timeline) Seconds(frames int) float64 {
	return float64(frames) / float64(t.FPS)
}

// Duration is the total length of the timeline in seconds.
func (t *Timeline) Duration() float64 {
	return t.Seconds(t.TotalFrames)
}
