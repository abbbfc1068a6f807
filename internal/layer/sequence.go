package layer

import (
	"context"
	"fmt"
	"image"

	"github.com/Suv00m/movis/internal/source"
	"github.com/Suv00m/movis/internal/timeline"
)

// Sequence maps timeline segments to source frames: segment i shows
// frame frames[i]. Outside all segments the layer is inactive.
type Sequence struct {
	index  *timeline.Index
	frames []int
	src    source.Source
}

// NewSequence builds a Sequence over parallel segment and frame arrays.
func NewSequence(src source.Source, starts, ends []float64, frames []int) (*Sequence, error) {
	idx, err := timeline.NewIndex(starts, ends)
	if err != nil {
		return nil, err
	}
	if len(frames) != idx.Len() {
		return nil, fmt.Errorf("%w: %d segments, %d frames", timeline.ErrLengthMismatch, idx.Len(), len(frames))
	}
	return &Sequence{index: idx, frames: append([]int(nil), frames...), src: src}, nil
}

// NewSlide builds a Sequence from a page-advance counter, the way slide
// decks are scripted: counter[i] pages are turned entering segment i,
// so the shown page is the running total.
func NewSlide(src source.Source, starts, ends []float64, counter []int) (*Sequence, error) {
	frames := make([]int, len(counter))
	page := 0
	for i, c := range counter {
		page += c
		frames[i] = page
	}
	return NewSequence(src, starts, ends, frames)
}

// Key returns the frame index active at time, or -1 outside all
// segments. Useful as a render-cache key.
func (l *Sequence) Key(time float64) int {
	i := l.index.Resolve(time)
	if i < 0 {
		return -1
	}
	return l.frames[i]
}

// Duration is the end of the last segment.
func (l *Sequence) Duration() float64 { return l.index.Duration() }

func (l *Sequence) Frame(time float64) (*image.RGBA, error) {
	i := l.index.Resolve(time)
	if i < 0 {
		return nil, nil
	}
	return l.src.Frame(l.frames[i])
}

// Preload decodes every referenced frame ahead of rendering.
func (l *Sequence) Preload(ctx context.Context) error {
	seen := make(map[int]bool, len(l.frames))
	for _, f := range l.frames {
		if seen[f] {
			continue
		}
		seen[f] = true
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := l.src.Frame(f); err != nil {
			return err
		}
	}
	return nil
}
