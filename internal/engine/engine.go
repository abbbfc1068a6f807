// Package engine composes layers into frames: an ordered layer stack,
// per-layer animated transforms, and parallel asset preloading.
package engine

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Suv00m/movis/internal/compose"
	"github.com/Suv00m/movis/internal/layer"
	"github.com/Suv00m/movis/internal/system"
)

// Item is one entry of the layer stack: a layer plus the transform that
// places it.
type Item struct {
	Name      string
	Layer     layer.Layer
	Transform *Transform
}

// Composition owns an ordered stack of items and composites them
// bottom-up onto an opaque background.
type Composition struct {
	width    int
	height   int
	duration float64
	bg       color.Color
	items    []*Item
	closers  []io.Closer
	frames   *system.FramePool
	log      zerolog.Logger
}

type Option func(*Composition)

// WithBackground sets the frame background color (default opaque black).
func WithBackground(c color.Color) Option {
	return func(cmp *Composition) { cmp.bg = c }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(cmp *Composition) { cmp.log = log }
}

func New(width, height int, duration float64, opts ...Option) *Composition {
	cmp := &Composition{
		width:    width,
		height:   height,
		duration: duration,
		bg:       color.Black,
		frames:   system.NewFramePool(image.Rect(0, 0, width, height)),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cmp)
	}
	return cmp
}

func (c *Composition) Size() (w, h int)  { return c.width, c.height }
func (c *Composition) Duration() float64 { return c.duration }
func (c *Composition) Items() []*Item    { return c.items }

// Add appends an item on top of the stack. A nil transform centers the
// layer in the composition.
func (c *Composition) Add(name string, l layer.Layer, tr *Transform) *Item {
	if tr == nil {
		tr = NewTransform(float64(c.width)/2, float64(c.height)/2)
	}
	item := &Item{Name: name, Layer: l, Transform: tr}
	c.items = append(c.items, item)
	return item
}

// AddCloser registers a resource (typically a layer's source) to be
// released by Close.
func (c *Composition) AddCloser(cl io.Closer) {
	c.closers = append(c.closers, cl)
}

// Close releases every registered resource.
func (c *Composition) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CompositeFrame renders the frame at time. Layers inactive at that
// time are skipped; a time inside no layer's segments yields the bare
// background. The returned buffer comes from the composition's frame
// pool and may be handed back with ReleaseFrame once encoded.
func (c *Composition) CompositeFrame(time float64) (*image.RGBA, error) {
	frame := c.frames.Get()
	draw.Draw(frame, frame.Bounds(), image.NewUniform(c.bg), image.Point{}, draw.Src)

	for _, item := range c.items {
		img, err := item.Layer.Frame(time)
		if err != nil {
			return nil, fmt.Errorf("engine: layer %q: %w", item.Name, err)
		}
		if img == nil {
			continue
		}
		pl, err := item.Transform.at(time)
		if err != nil {
			return nil, fmt.Errorf("engine: layer %q: %w", item.Name, err)
		}
		if pl.opacity <= 0 {
			continue
		}
		if pl.sx != 1 || pl.sy != 1 {
			if pl.sx <= 0 || pl.sy <= 0 {
				continue
			}
			img = compose.Resize(img, pl.sx, pl.sy)
		}
		pos := image.Point{
			X: int(math.Round(pl.x - float64(img.Bounds().Dx())/2)),
			Y: int(math.Round(pl.y - float64(img.Bounds().Dy())/2)),
		}
		compose.Over(frame, img, pos, pl.opacity)
		c.log.Trace().Str("layer", item.Name).Float64("time", time).Msg("composited")
	}
	return frame, nil
}

// ReleaseFrame recycles a buffer returned by CompositeFrame. The buffer
// must not be used afterwards.
func (c *Composition) ReleaseFrame(frame *image.RGBA) {
	c.frames.Put(frame)
}

// Preload decodes every layer's assets up front, in parallel, with the
// worker count sized against CPU count and memory headroom for frames
// of this composition's size.
func (c *Composition) Preload(ctx context.Context) error {
	type preloader interface {
		Preload(ctx context.Context) error
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(system.Workers(uint64(c.width) * uint64(c.height) * 4))
	for _, item := range c.items {
		p, ok := item.Layer.(preloader)
		if !ok {
			continue
		}
		name := item.Name
		g.Go(func() error {
			if err := p.Preload(ctx); err != nil {
				return fmt.Errorf("engine: preload %q: %w", name, err)
			}
			c.log.Debug().Str("layer", name).Msg("preloaded")
			return nil
		})
	}
	return g.Wait()
}
