// Package captions splits page narration into short on-screen caption chunks
// and times them by their share of the narration's characters.
package captions

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxChars    = 30
	DefaultPunctuation = ".!?,;"
)

// Chunk is a caption unit. StartFrame and EndFrame are relative to the page
// segment and are not necessarily integers.
type Chunk struct {
	Text       string  `json:"text" yaml:"text"`
	StartFrame float64 `json:"start" yaml:"start"`
	EndFrame   float64 `json:"end" yaml:"end"`
}

// Contains reports whether the page-local frame falls inside the chunk.
func (c Chunk) Contains(f float64) bool {
	return c.StartFrame <= f && f < c.EndFrame
}

// Segmenter holds the chunking rules. The zero value uses the defaults.
type Segmenter struct {
	MaxChars    int
	Punctuation string
}

var defaultSegmenter = Segmenter{}

// Segment splits narration with the default rules.
func Segment(narration string, frameCount int) []Chunk {
	return defaultSegmenter.Segment(narration, frameCount)
}

// Segment splits narration into chunks covering [0, frameCount).
//
// Every word counts as its rune length plus one separator. A chunk closes once its
// length exceeds MaxChars, after a word ending in a break mark, or at the last word.
func (s Segmenter) Segment(narration string, frameCount int) []Chunk {
	words := strings.Fields(narration)
	if len(words) == 0 || frameCount <= 0 {
		return nil
	}

	maxChars := s.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	marks := s.Punctuation
	if marks == "" {
		marks = DefaultPunctuation
	}

	type span struct {
		text       string
		start, end int
	}
	var spans []span

	var current []string
	chunkStart, offset, length := 0, 0, 0
	for i, w := range words {
		current = append(current, w)
		n := utf8.RuneCountInString(w) + 1
		length += n
		offset += n

		last, _ := utf8.DecodeLastRuneInString(w)
		if length > maxChars || strings.ContainsRune(marks, last) || i == len(words)-1 {
			spans = append(spans, span{text: strings.Join(current, " "), start: chunkStart, end: offset})
			current = current[:0]
			chunkStart, length = offset, 0
		}
	}

	total := float64(offset)
	frames := float64(frameCount)
	chunks := make([]Chunk, len(spans))
	for i, sp := range spans {
		chunks[i] = Chunk{
			Text:       sp.text,
			StartFrame: float64(sp.start) / total * frames,
			EndFrame:   float64(sp.end) / total * frames,
		}
	}
	// Pin the last boundary so the chunks tile the segment exactly.
	chunks[len(chunks)-1].EndFrame = frames
	return chunks
}

// Active returns the chunk shown at page-local frame f. Frames falling between
// chunks through rounding simply show nothing.
func Active(chunks []Chunk, f float64) (int, Chunk, bool) {
	i := sort.Search(len(chunks), func(i int) bool {
		return chunks[i].EndFrame > f
	})
	if i < len(chunks) && chunks[i].Contains(f) {
		return i, chunks[i], true
	}
	return -1, Chunk{}, false
}

// Join rebuilds the narration text from its chunks.
func Join(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}
