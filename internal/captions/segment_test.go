package captions

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

const tolerance = 1e-9

func TestSegmentSentenceSplit(t *testing.T) {
	narration := "The quick brown fox jumps. Over the lazy dog."
	chunks := Segment(narration, 150)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Text != "The quick brown fox jumps." {
		t.Errorf("first chunk = %q", chunks[0].Text)
	}
	if chunks[1].Text != "Over the lazy dog." {
		t.Errorf("second chunk = %q", chunks[1].Text)
	}

	// 27 of 46 characters belong to the first sentence.
	split := 27.0 / 46.0 * 150
	if chunks[0].StartFrame != 0 {
		t.Errorf("first chunk starts at %f", chunks[0].StartFrame)
	}
	if math.Abs(chunks[0].EndFrame-split) > tolerance {
		t.Errorf("first chunk ends at %f, want %f", chunks[0].EndFrame, split)
	}
	if chunks[1].StartFrame != chunks[0].EndFrame {
		t.Errorf("chunks not contiguous: %f != %f", chunks[1].StartFrame, chunks[0].EndFrame)
	}
	if chunks[1].EndFrame != 150 {
		t.Errorf("last chunk ends at %f, want 150", chunks[1].EndFrame)
	}
}

func TestSegmentSingleWord(t *testing.T) {
	chunks := Segment("Hello", 42)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].StartFrame != 0 || chunks[0].EndFrame != 42 {
		t.Errorf("chunk spans [%f, %f), want [0, 42)", chunks[0].StartFrame, chunks[0].EndFrame)
	}
}

func TestSegmentEmpty(t *testing.T) {
	for _, s := range []string{"", "   ", "\n\t"} {
		if chunks := Segment(s, 90); len(chunks) != 0 {
			t.Errorf("Segment(%q) produced %d chunks", s, len(chunks))
		}
	}
}

func TestSegmentLengthThreshold(t *testing.T) {
	narration := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"
	chunks := Segment(narration, 300)

	if len(chunks) < 2 {
		t.Fatalf("expected the narration to be split, got %d chunk(s)", len(chunks))
	}
	for i, c := range chunks[:len(chunks)-1] {
		words := strings.Fields(c.Text)
		without := len(c.Text) - len(words[len(words)-1])
		if without > DefaultMaxChars {
			t.Errorf("chunk %d %q kept growing past the threshold", i, c.Text)
		}
	}
}

func TestSegmentCustomRules(t *testing.T) {
	s := Segmenter{MaxChars: 10, Punctuation: "."}
	chunks := s.Segment("one, two, three four five.", 100)
	for _, c := range chunks {
		if strings.HasSuffix(c.Text, ",") && len(c.Text) <= 10 {
			t.Errorf("comma closed chunk %q although it is not a break mark", c.Text)
		}
	}
	if Join(chunks) != "one, two, three four five." {
		t.Errorf("Join = %q", Join(chunks))
	}
}

func TestSegmentCoverage(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	vocabulary := []string{"a", "pdf", "video,", "frame", "narration.", "ok!", "why?", "spring;", "timeline", "ünïcödé", "caption"}

	for run := 0; run < 300; run++ {
		n := 1 + r.Intn(40)
		words := make([]string, n)
		for i := range words {
			words[i] = vocabulary[r.Intn(len(vocabulary))]
		}
		narration := strings.Join(words, " ")
		frameCount := 1 + r.Intn(600)

		chunks := Segment("  "+narration+"\n", frameCount)
		if got := Join(chunks); got != narration {
			t.Fatalf("run %d: Join = %q, want %q", run, got, narration)
		}
		if chunks[0].StartFrame != 0 {
			t.Fatalf("run %d: first chunk starts at %f", run, chunks[0].StartFrame)
		}
		for i := 1; i < len(chunks); i++ {
			if chunks[i].StartFrame != chunks[i-1].EndFrame {
				t.Fatalf("run %d: chunk %d not contiguous", run, i)
			}
			if chunks[i].EndFrame < chunks[i].StartFrame {
				t.Fatalf("run %d: chunk %d reversed", run, i)
			}
		}
		if last := chunks[len(chunks)-1].EndFrame; math.Abs(last-float64(frameCount)) > tolerance {
			t.Fatalf("run %d: last chunk ends at %f, want %d", run, last, frameCount)
		}
	}
}

func TestSegmentDeterministic(t *testing.T) {
	narration := "Spring easing settles the card. Captions follow the narration, chunk by chunk!"
	a := Segment(narration, 211)
	b := Segment(narration, 211)
	if len(a) != len(b) {
		t.Fatal("chunk counts differ")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestActive(t *testing.T) {
	chunks := Segment("The quick brown fox jumps. Over the lazy dog.", 150)

	tests := []struct {
		f     float64
		index int
		ok    bool
	}{
		{-1, -1, false},
		{0, 0, true},
		{88, 0, true},
		{89, 1, true},
		{149, 1, true},
		{150, -1, false},
	}
	for _, tt := range tests {
		i, _, ok := Active(chunks, tt.f)
		if ok != tt.ok || i != tt.index {
			t.Errorf("Active(%v) = (%d, %v), want (%d, %v)", tt.f, i, ok, tt.index, tt.ok)
		}
	}

	if _, _, ok := Active(nil, 3); ok {
		t.Error("Active on no chunks should report nothing")
	}
}
