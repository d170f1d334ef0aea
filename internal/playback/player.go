// Package playback is a minimal preview host: a play head over a composition
// that is advanced by wall-clock time and can be seeked at any moment.
package playback

import (
	"math"
	"sync"
	"time"

	"github.com/ivlev/pdfstudio/internal/renderer"
)

// Composition is what the player drives.
type Composition interface {
	TotalFrames() int
	FPS() int
	RenderFrame(frame int) renderer.Frame
}

// Player is safe for concurrent use.
type Player struct {
	comp Composition
	Loop bool

	mu      sync.Mutex
	frame   int
	playing bool
	carry   float64 // fractional frames not yet applied
}

func NewPlayer(comp Composition, loop bool) *Player {
	return &Player{comp: comp, Loop: loop}
}

// Seek moves the play head, clamping to [0, TotalFrames-1].
func (p *Player) Seek(frame int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame = p.clamp(frame)
	p.carry = 0
	return p.frame
}

// SeekTime seeks to a wall-clock position.
func (p *Player) SeekTime(d time.Duration) int {
	return p.Seek(int(math.Floor(d.Seconds() * float64(p.comp.FPS()))))
}

func (p *Player) clamp(frame int) int {
	last := p.comp.TotalFrames() - 1
	if frame > last {
		frame = last
	}
	if frame < 0 {
		frame = 0
	}
	return frame
}

func (p *Player) Play() {
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
}

func (p *Player) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Current returns the play head.
func (p *Player) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// Tick advances a playing player by elapsed wall time and returns the new play head.
// At the end it wraps around when Loop is set and pauses on the last frame otherwise.
func (p *Player) Tick(elapsed time.Duration) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.comp.TotalFrames()
	if !p.playing || elapsed <= 0 || total <= 0 {
		return p.frame
	}

	advance := elapsed.Seconds()*float64(p.comp.FPS()) + p.carry
	step := math.Floor(advance)
	p.carry = advance - step

	next := p.frame + int(step)
	if next >= total {
		if p.Loop {
			next %= total
		} else {
			next = total - 1
			p.playing = false
			p.carry = 0
		}
	}
	p.frame = next
	return p.frame
}

// Frame describes the frame under the play head.
func (p *Player) Frame() renderer.Frame {
	return p.comp.RenderFrame(p.Current())
}
