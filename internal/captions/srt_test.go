package captions

import (
	"bytes"
	"testing"
	"time"
)

func TestWriteSRT(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 2934 * time.Millisecond, Text: "The quick brown fox jumps."},
		{Start: 2934 * time.Millisecond, End: time.Hour + 5*time.Second, Text: "Over the lazy dog."},
	}

	var buf bytes.Buffer
	if err := WriteSRT(&buf, cues); err != nil {
		t.Fatalf("WriteSRT failed: %v", err)
	}

	want := "1\n00:00:00,000 --> 00:00:02,934\nThe quick brown fox jumps.\n\n" +
		"2\n00:00:02,934 --> 01:00:05,000\nOver the lazy dog.\n\n"
	if buf.String() != want {
		t.Errorf("unexpected SRT:\n%s", buf.String())
	}
}

func TestFramesToDuration(t *testing.T) {
	if got := FramesToDuration(45, 30); got != 1500*time.Millisecond {
		t.Errorf("FramesToDuration(45, 30) = %v", got)
	}
	if got := FramesToDuration(88.04347826, 30); got != 2935*time.Millisecond {
		t.Errorf("FramesToDuration(88.04, 30) = %v", got)
	}
}
