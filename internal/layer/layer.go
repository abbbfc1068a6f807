// Package layer contains the visual entities placed on a composition
// timeline: still images, slide sequences, and characters. A layer
// decides which discrete asset is active at a time and returns its
// pixels; continuous parameters (position, opacity) live in the
// engine's transforms, not here.
package layer

import (
	"context"
	"image"

	"github.com/Suv00m/movis/internal/source"
)

// Layer produces the RGBA frame for a point in time. A (nil, nil)
// return means the layer is inactive at that time. Duration reports
// how long the layer has content to show; 0 means no intrinsic
// duration, in which case the composition's duration governs.
type Layer interface {
	Frame(time float64) (*image.RGBA, error)
	Duration() float64
}

// Still shows one source frame for the whole composition.
type Still struct {
	src   source.Source
	index int
	dur   float64
}

func NewStill(src source.Source, index int) *Still {
	return &Still{src: src, index: index}
}

func (l *Still) Frame(time float64) (*image.RGBA, error) {
	return l.src.Frame(l.index)
}

// SetDuration pins the layer to an explicit duration. A still has no
// intrinsic one, so Duration reports 0 until set.
func (l *Still) SetDuration(d float64) { l.dur = d }

func (l *Still) Duration() float64 { return l.dur }

// Preload decodes the frame ahead of rendering.
func (l *Still) Preload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := l.src.Frame(l.index)
	return err
}
