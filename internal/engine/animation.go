package engine

import (
	"fmt"
	"math"

	"github.com/Suv00m/movis/internal/motion"
	"github.com/Suv00m/movis/internal/timeline"
)

// Animation appends keyframes to a transform over [start, start+duration].
type Animation func(tr *Transform, start, duration float64)

// FadeIn ramps opacity from 0 to 1.
func FadeIn(tr *Transform, start, duration float64) {
	tr.Opacity.
		Append(start, motion.Scalar(0), motion.Linear).
		Append(start+duration, motion.Scalar(1), motion.Linear)
}

// FadeOut ramps opacity from 1 to 0.
func FadeOut(tr *Transform, start, duration float64) {
	tr.Opacity.
		Append(start, motion.Scalar(1), motion.Linear).
		Append(start+duration, motion.Scalar(0), motion.Linear)
}

// BounceUp lifts the layer by height pixels and drops it back, easing
// out on the way up and in on the way down.
func BounceUp(tr *Transform, start, duration, height float64) {
	base := basePosition(tr)
	tr.Position.
		Append(start, base, motion.EaseOut).
		Append(start+duration/2, motion.Point(base[0], base[1]-height), motion.EaseIn).
		Append(start+duration, base, motion.Linear)
}

// HorizontalShake oscillates the layer left and right around its base
// position for the given number of cycles.
func HorizontalShake(tr *Transform, start, duration, amplitude float64, cycles int) {
	shake(tr, start, duration, amplitude, cycles, true)
}

// VerticalShake oscillates the layer up and down around its base
// position for the given number of cycles.
func VerticalShake(tr *Transform, start, duration, amplitude float64, cycles int) {
	shake(tr, start, duration, amplitude, cycles, false)
}

func shake(tr *Transform, start, duration, amplitude float64, cycles int, horizontal bool) {
	if cycles < 1 {
		cycles = 1
	}
	base := basePosition(tr)
	steps := cycles * 2
	tr.Position.Append(start, base, motion.EaseInOut)
	for i := 1; i < steps; i++ {
		offset := amplitude
		if i%2 == 0 {
			offset = -amplitude
		}
		at := append(motion.Value(nil), base...)
		if horizontal {
			at[0] += offset
		} else {
			at[1] += offset
		}
		tr.Position.Append(start+duration*float64(i)/float64(steps), at, motion.EaseInOut)
	}
	tr.Position.Append(start+duration, base, motion.EaseInOut)
}

func basePosition(tr *Transform) motion.Value {
	if def, ok := tr.Position.Default(); ok {
		return def
	}
	if v, err := tr.Position.Evaluate(math.Inf(-1)); err == nil {
		return v
	}
	return motion.Point(0, 0)
}

// ParseAnimation resolves an animation by its config name, with stock
// magnitudes for the positional ones.
func ParseAnimation(name string) (Animation, error) {
	switch name {
	case "fade_in":
		return FadeIn, nil
	case "fade_out":
		return FadeOut, nil
	case "bounce_up":
		return func(tr *Transform, start, duration float64) {
			BounceUp(tr, start, duration, 40)
		}, nil
	case "horizontal_shake":
		return func(tr *Transform, start, duration float64) {
			HorizontalShake(tr, start, duration, 10, 4)
		}, nil
	case "vertical_shake":
		return func(tr *Transform, start, duration float64) {
			VerticalShake(tr, start, duration, 10, 4)
		}, nil
	default:
		return nil, fmt.Errorf("engine: unknown animation %q", name)
	}
}

// AnimateFromTimeline applies named animations at the segments of a
// timeline: names[i] runs over segment i, empty names are skipped.
func AnimateFromTimeline(tr *Transform, idx *timeline.Index, names []string) error {
	if len(names) != idx.Len() {
		return fmt.Errorf("%w: %d segments, %d animations", timeline.ErrLengthMismatch, idx.Len(), len(names))
	}
	for i, name := range names {
		if name == "" {
			continue
		}
		anim, err := ParseAnimation(name)
		if err != nil {
			return err
		}
		anim(tr, idx.Start(i), idx.End(i)-idx.Start(i))
	}
	return nil
}
