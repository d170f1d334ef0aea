package renderer

// Frame describes everything visible and audible at one instant of the video.
// It is plain data: hosts turn it into pixels and audio scheduling.
type Frame struct {
	Frame      int  `json:"frame"`
	Blank      bool `json:"blank"`
	PageIndex  int  `json:"page_index"`
	PageNumber int  `json:"page_number"`
	LocalFrame int  `json:"local_frame"`

	Background *BackgroundLayer `json:"background,omitempty"`
	Content    *ContentLayer    `json:"content,omitempty"`
	Caption    *CaptionLayer    `json:"caption,omitempty"`
	Audio      *AudioTrack      `json:"audio,omitempty"`
}

// BackgroundLayer is the full-bleed, dimmed stock image behind the card.
type BackgroundLayer struct {
	ImageRef string  `json:"image_ref"`
	Opacity  float64 `json:"opacity"`
}

// ContentLayer is the centered white card with the page title, images and number badge.
type ContentLayer struct {
	Title      string   `json:"title,omitempty"`
	ImageRefs  []string `json:"image_refs,omitempty"`
	PageNumber int      `json:"page_number"`
	Opacity    float64  `json:"opacity"`
	OffsetY    float64  `json:"offset_y"`
}

// CaptionLayer is the active caption chunk with its pop-in state.
type CaptionLayer struct {
	Text    string  `json:"text"`
	Index   int     `json:"index"`
	Opacity float64 `json:"opacity"`
	Scale   float64 `json:"scale"`
}

// AudioTrack is the page narration, placed at the start of the page segment.
type AudioTrack struct {
	Ref           string  `json:"ref"`
	StartFrame    int     `json:"start_frame"`
	OffsetFrames  int     `json:"offset_frames"`
	OffsetSeconds float64 `json:"offset_seconds"`
}

// Blank is the frame returned for requests outside the timeline.
func Blank(frame int) Frame {
	return Frame{Frame: frame, Blank: true, PageIndex: -1}
}
