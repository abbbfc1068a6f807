package engine

import (
	"fmt"

	"github.com/Suv00m/movis/internal/motion"
)

// Transform animates the placement of one layer inside a composition:
// position of the layer's center in composition pixels, scale, and
// opacity. Each parameter is a keyframe curve with a constant default,
// so an untouched Transform just pins the layer in place.
type Transform struct {
	Position *motion.Motion
	Scale    *motion.Motion
	Opacity  *motion.Motion
}

// NewTransform places a layer's center at (x, y) with scale 1 and full
// opacity.
func NewTransform(x, y float64) *Transform {
	return &Transform{
		Position: motion.NewWithDefault(motion.Point(x, y)),
		Scale:    motion.NewWithDefault(motion.Scalar(1)),
		Opacity:  motion.NewWithDefault(motion.Scalar(1)),
	}
}

// placement is a Transform evaluated at one point in time.
type placement struct {
	x, y    float64
	sx, sy  float64
	opacity float64
}

func (tr *Transform) at(time float64) (placement, error) {
	pos, err := tr.Position.Evaluate(time)
	if err != nil {
		return placement{}, fmt.Errorf("position: %w", err)
	}
	if len(pos) != 2 {
		return placement{}, fmt.Errorf("position: %w: want 2 components, have %d", motion.ErrShapeMismatch, len(pos))
	}
	scale, err := tr.Scale.Evaluate(time)
	if err != nil {
		return placement{}, fmt.Errorf("scale: %w", err)
	}
	sx := scale[0]
	sy := scale[0]
	if len(scale) == 2 {
		sy = scale[1]
	}
	op, err := tr.Opacity.Evaluate(time)
	if err != nil {
		return placement{}, fmt.Errorf("opacity: %w", err)
	}
	return placement{x: pos[0], y: pos[1], sx: sx, sy: sy, opacity: op[0]}, nil
}
