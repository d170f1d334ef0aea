// Package effects computes per-frame animation state. Every value is a pure
// function of the frame number and configuration, so frames may be evaluated
// in any order and from any number of goroutines.
package effects

import "github.com/ivlev/pdfstudio/internal/captions"

// Config holds the animation constants of a slide.
type Config struct {
	FadeInFrames     float64      `yaml:"fade_in_frames"`
	SlideDistance    float64      `yaml:"slide_distance"`
	CaptionPopFrames float64      `yaml:"caption_pop_frames"`
	CaptionPopScale  float64      `yaml:"caption_pop_scale"`
	Spring           DampedSpring `yaml:"spring"`
}

// DefaultConfig: 15-frame fade, 50px slide, 5-frame caption pop from 80% scale.
func DefaultConfig() Config {
	return Config{
		FadeInFrames:     15,
		SlideDistance:    50,
		CaptionPopFrames: 5,
		CaptionPopScale:  0.8,
		Spring:           DefaultSpring(),
	}
}

// Animator evaluates slide animation at page-local frames.
type Animator struct {
	cfg    Config
	fps    float64
	spring Spring
}

// NewAnimator builds an animator for the given frame rate. A nil spring uses cfg.Spring.
func NewAnimator(cfg Config, fps int, spring Spring) *Animator {
	if spring == nil {
		spring = cfg.Spring
	}
	return &Animator{cfg: cfg, fps: float64(fps), spring: spring}
}

// FadeOpacity ramps linearly from 0 to 1 over the fade window, then holds.
func (a *Animator) FadeOpacity(f float64) float64 {
	if a.cfg.FadeInFrames <= 0 {
		return 1
	}
	return Interpolate(f, 0, a.cfg.FadeInFrames, 0, 1)
}

// SlideProgress is the spring response at frame f.
func (a *Animator) SlideProgress(f float64) float64 {
	return a.spring.Evaluate(f, a.fps)
}

// SlideOffset is the vertical translation of the content card, easing from SlideDistance to 0.
func (a *Animator) SlideOffset(f float64) float64 {
	return lerp(a.cfg.SlideDistance, 0, a.SlideProgress(f))
}

// CaptionPop returns opacity and scale of a caption chunk at page-local frame f,
// anchored to the chunk's own start rather than the page.
func (a *Animator) CaptionPop(f float64, chunk captions.Chunk) (opacity, scale float64) {
	local := f - chunk.StartFrame
	if a.cfg.CaptionPopFrames <= 0 {
		return 1, 1
	}
	t := clamp01(local / a.cfg.CaptionPopFrames)
	from := a.cfg.CaptionPopScale
	if from <= 0 {
		from = 1
	}
	return t, lerp(from, 1, easeOutCubic(t))
}

// State bundles the page-level animation values for one frame.
type State struct {
	Opacity  float64
	OffsetY  float64
	Progress float64
}

// At evaluates the page-level state at frame f.
func (a *Animator) At(f float64) State {
	p := a.SlideProgress(f)
	return State{
		Opacity:  a.FadeOpacity(f),
		OffsetY:  lerp(a.cfg.SlideDistance, 0, p),
		Progress: p,
	}
}
