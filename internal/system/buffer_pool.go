package system

import (
	"image"
	"sync"
)

// FramePool recycles *image.RGBA frame buffers by size so that rasterising
// thousands of stills does not churn the garbage collector.
type FramePool struct {
	mu    sync.RWMutex
	pools map[image.Point]*sync.Pool
}

var framePool = NewFramePool()

func NewFramePool() *FramePool {
	return &FramePool{pools: make(map[image.Point]*sync.Pool)}
}

// GetFrame returns a w x h buffer from the shared pool. Its contents are undefined.
func GetFrame(w, h int) *image.RGBA {
	return framePool.Get(w, h)
}

// PutFrame hands a buffer back to the shared pool.
func PutFrame(img *image.RGBA) {
	framePool.Put(img)
}

func (p *FramePool) Get(w, h int) *image.RGBA {
	size := image.Pt(w, h)
	p.mu.RLock()
	pool, ok := p.pools[size]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		if pool, ok = p.pools[size]; !ok {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
				},
			}
			p.pools[size] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) {
		return
	}
	p.mu.RLock()
	pool, ok := p.pools[img.Rect.Size()]
	p.mu.RUnlock()

	if ok {
		pool.Put(img)
	}
}
