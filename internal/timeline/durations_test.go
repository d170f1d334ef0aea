package timeline

import "testing"

func TestFrameCountRounding(t *testing.T) {
	tests := []struct {
		seconds float64
		fps     int
		want    int
	}{
		{1.0, 30, 30},
		{1.01, 30, 31},
		{1.1, 30, 33},
		{2.0, 30, 60},
		{3.5, 30, 105},
		{0.001, 30, 1},
		{0.5, 24, 12},
		{7.3, 25, 183},
	}

	for _, tt := range tests {
		if got := FrameCount(tt.seconds, tt.fps); got != tt.want {
			t.Errorf("FrameCount(%v, %d) = %d, want %d", tt.seconds, tt.fps, got, tt.want)
		}
	}
}

func TestCalculateDurations(t *testing.T) {
	durations := []float64{2.0, 3.5, 1.01}
	snapshot := append([]float64(nil), durations...)

	d := CalculateDurations(durations, 30)

	wantCounts := []int{60, 105, 31}
	wantOffsets := []int{0, 60, 165}
	for i := range durations {
		if d.FrameCounts[i] != wantCounts[i] {
			t.Errorf("FrameCounts[%d] = %d, want %d", i, d.FrameCounts[i], wantCounts[i])
		}
		if d.Offsets[i] != wantOffsets[i] {
			t.Errorf("Offsets[%d] = %d, want %d", i, d.Offsets[i], wantOffsets[i])
		}
	}
	if d.TotalFrames != 196 {
		t.Errorf("TotalFrames = %d, want 196", d.TotalFrames)
	}

	for i := range durations {
		if durations[i] != snapshot[i] {
			t.Fatalf("input mutated at %d: %v", i, durations)
		}
	}
}

func TestCalculateDurationsEmpty(t *testing.T) {
	d := CalculateDurations(nil, 30)
	if d.TotalFrames != 0 || len(d.FrameCounts) != 0 {
		t.Errorf("expected empty layout, got %+v", d)
	}
}
