package system

import (
	"image"
	"sync"
)

// FramePool recycles RGBA buffers of one fixed size. A composition
// renders every frame into the same rectangle, so a single-size pool
// keeps repeated composition off the garbage collector without
// tracking buffers it will never hand out again.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

// NewFramePool builds a pool for buffers with the given bounds.
func NewFramePool(rect image.Rectangle) *FramePool {
	p := &FramePool{rect: rect}
	p.pool.New = func() interface{} {
		return image.NewRGBA(rect)
	}
	return p
}

// Get returns a buffer with the pool's bounds, allocating when none is
// free. The contents are whatever the previous user left behind.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put hands a buffer back for reuse. Buffers with foreign bounds and
// nil are dropped.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
