// Package source provides the image-decode side of the engine: anything
// that can turn a frame index into an RGBA buffer.
package source

import (
	"errors"
	"fmt"
	"image"
)

var ErrFrameRange = errors.New("source: frame index out of range")

// Source decodes frames addressed by index. Implementations cache
// decoded frames, so Frame is cheap after the first access for a given
// index.
type Source interface {
	Count() int
	Frame(index int) (*image.RGBA, error)
	Close() error
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d of %d", ErrFrameRange, index, count)
	}
	return nil
}
