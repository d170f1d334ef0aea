package timeline

import "math"

// frameEpsilon absorbs binary float noise in duration*fps, so 1.1s at 30fps is 33 frames, not 34.
const frameEpsilon = 1e-9

// Durations is the frame layout of an ordered list of page durations.
type Durations struct {
	FrameCounts []int
	Offsets     []int
	TotalFrames int
}

// FrameCount converts a duration in seconds to a whole number of frames, rounding up.
// Any positive duration occupies at least one frame.
func FrameCount(seconds float64, fps int) int {
	x := seconds * float64(fps)
	if r := math.Round(x); math.Abs(x-r) < frameEpsilon {
		x = r
	}
	n := int(math.Ceil(x))
	if n < 1 && seconds > 0 {
		n = 1
	}
	return n
}

// CalculateDurations returns per-page frame counts, their cumulative start offsets and the total.
// Callers validate durations beforehand; the input slice is not modified.
func CalculateDurations(durations []float64, fps int) Durations {
	d := Durations{
		FrameCounts: make([]int, len(durations)),
		Offsets:     make([]int, len(durations)),
	}
	for i, sec := range durations {
		d.Offsets[i] = d.TotalFrames
		d.FrameCounts[i] = FrameCount(sec, fps)
		d.TotalFrames += d.FrameCounts[i]
	}
	return d
}
