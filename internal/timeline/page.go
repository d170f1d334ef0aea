package timeline

import "strings"

// PageAsset is one slide's input as delivered by the processing backend.
// Image and audio references are opaque; resolving them is the host's job.
type PageAsset struct {
	PageNumber         int      `json:"page_num" yaml:"page_num"`
	Title              string   `json:"title,omitempty" yaml:"title,omitempty"`
	NarrationText      string   `json:"narration,omitempty" yaml:"narration,omitempty"`
	BackgroundImageRef string   `json:"background,omitempty" yaml:"background,omitempty"`
	ContentImageRefs   []string `json:"images,omitempty" yaml:"images,omitempty"`
	AudioRef           string   `json:"audio,omitempty" yaml:"audio,omitempty"`
	DurationSeconds    float64  `json:"duration" yaml:"duration"`
}

// HasNarration reports whether the page carries any caption text.
func (p PageAsset) HasNarration() bool {
	return strings.TrimSpace(p.NarrationText) != ""
}
