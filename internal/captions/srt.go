package captions

import (
	"fmt"
	"io"
	"time"
)

// Cue is a caption placed on the global video clock.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// FramesToDuration converts a (fractional) frame position to wall time.
func FramesToDuration(frames float64, fps int) time.Duration {
	return time.Duration(frames / float64(fps) * float64(time.Second)).Round(time.Millisecond)
}

// WriteSRT writes cues in SubRip format.
func WriteSRT(w io.Writer, cues []Cue) error {
	for i, c := range cues {
		index := c.Index
		if index == 0 {
			index = i + 1
		}
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n", index, srtTime(c.Start), srtTime(c.End), c.Text); err != nil {
			return fmt.Errorf("write cue %d: %w", index, err)
		}
	}
	return nil
}

func srtTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d,%03d", int64(h), int64(m), int64(s), int64(d/time.Millisecond))
}
