// Package motion implements piecewise keyframe interpolation: ordered
// (time, value, easing) triples evaluated to a smoothly interpolated
// value at any query time, clamping outside the keyframed range.
package motion

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownEasing  = errors.New("motion: unknown easing")
	ErrLengthMismatch = errors.New("motion: keyframe argument lengths differ")
	ErrNoKeyframes    = errors.New("motion: no keyframes and no default value")
	ErrShapeMismatch  = errors.New("motion: bracketing values have different shapes")
)

// Value is a fixed-length vector of float components: one component for
// scalar parameters (opacity, scale), two for points (position). One
// interpolation routine covers both shapes.
type Value []float64

// Scalar wraps a single float as a Value.
func Scalar(v float64) Value { return Value{v} }

// Point wraps an (x, y) pair as a Value.
func Point(x, y float64) Value { return Value{x, y} }

func (v Value) clone() Value { return append(Value(nil), v...) }

// Motion is a keyframe curve. Keyframes stay sorted ascending by time
// through every mutation; duplicate times are allowed. The curve only
// grows, via Append or Extend, and is evaluated without mutation.
type Motion struct {
	keyframes []float64
	values    []Value
	easings   []Easing
	def       Value
}

// New returns an empty curve. Evaluating it fails until a keyframe is
// appended.
func New() *Motion { return &Motion{} }

// NewWithDefault returns an empty curve that evaluates to def until the
// first keyframe is appended.
func NewWithDefault(def Value) *Motion { return &Motion{def: def.clone()} }

// Len returns the number of keyframes.
func (m *Motion) Len() int { return len(m.keyframes) }

// Default returns the default value, if one was set.
func (m *Motion) Default() (Value, bool) {
	if m.def == nil {
		return nil, false
	}
	return m.def.clone(), true
}

// Keyframes returns a copy of the keyframe times in order.
func (m *Motion) Keyframes() []float64 {
	return append([]float64(nil), m.keyframes...)
}

// Values returns a copy of the keyframe values, aligned with Keyframes.
func (m *Motion) Values() []Value {
	out := make([]Value, len(m.values))
	for i, v := range m.values {
		out[i] = v.clone()
	}
	return out
}

// Easings returns the easing kinds, aligned with Keyframes.
func (m *Motion) Easings() []Easing {
	return append([]Easing(nil), m.easings...)
}

// Append inserts one keyframe, keeping time order. A keyframe with a
// time equal to an existing one lands after it. Returns m for chaining.
func (m *Motion) Append(keyframe float64, value Value, easing Easing) *Motion {
	i := sort.Search(len(m.keyframes), func(j int) bool { return m.keyframes[j] > keyframe })
	m.keyframes = append(m.keyframes, 0)
	copy(m.keyframes[i+1:], m.keyframes[i:])
	m.keyframes[i] = keyframe

	m.values = append(m.values, nil)
	copy(m.values[i+1:], m.values[i:])
	m.values[i] = value.clone()

	m.easings = append(m.easings, Linear)
	copy(m.easings[i+1:], m.easings[i:])
	m.easings[i] = easing
	return m
}

// AppendNamed is Append with the easing selected by name. The curve is
// left untouched when the name is unknown.
func (m *Motion) AppendNamed(keyframe float64, value Value, easingName string) error {
	e, err := ParseEasing(easingName)
	if err != nil {
		return err
	}
	m.Append(keyframe, value, e)
	return nil
}

// Extend bulk-merges new keyframes into the curve. A nil easingNames
// defaults every new entry to linear. The merge is a stable sort keyed
// by time only: among equal times, existing keyframes come before new
// ones, and new ones keep their argument order. The curve is left
// untouched on any error.
func (m *Motion) Extend(keyframes []float64, values []Value, easingNames []string) error {
	if len(keyframes) != len(values) {
		return fmt.Errorf("%w: %d keyframes, %d values", ErrLengthMismatch, len(keyframes), len(values))
	}
	if easingNames != nil && len(easingNames) != len(keyframes) {
		return fmt.Errorf("%w: %d keyframes, %d easings", ErrLengthMismatch, len(keyframes), len(easingNames))
	}
	easings := make([]Easing, len(keyframes))
	for i := range keyframes {
		name := ""
		if easingNames != nil {
			name = easingNames[i]
		}
		e, err := ParseEasing(name)
		if err != nil {
			return err
		}
		easings[i] = e
	}

	type entry struct {
		t float64
		v Value
		e Easing
	}
	merged := make([]entry, 0, len(m.keyframes)+len(keyframes))
	for i := range m.keyframes {
		merged = append(merged, entry{m.keyframes[i], m.values[i], m.easings[i]})
	}
	for i := range keyframes {
		merged = append(merged, entry{keyframes[i], values[i].clone(), easings[i]})
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].t < merged[j].t })

	m.keyframes = make([]float64, len(merged))
	m.values = make([]Value, len(merged))
	m.easings = make([]Easing, len(merged))
	for i, en := range merged {
		m.keyframes[i] = en.t
		m.values[i] = en.v
		m.easings[i] = en.e
	}
	return nil
}

// Evaluate returns the interpolated value at time. Queries before the
// first keyframe clamp to the first value, queries at or after the last
// keyframe clamp to the last. In between, the bracketing pair is found
// by binary search and each component is interpolated with the eased
// normalized progress; the easing of the left keyframe governs the span.
func (m *Motion) Evaluate(time float64) (Value, error) {
	switch len(m.keyframes) {
	case 0:
		if m.def != nil {
			return m.def.clone(), nil
		}
		return nil, ErrNoKeyframes
	case 1:
		return m.values[0].clone(), nil
	}

	if time < m.keyframes[0] {
		return m.values[0].clone(), nil
	}
	last := len(m.keyframes) - 1
	if time >= m.keyframes[last] {
		return m.values[last].clone(), nil
	}

	i := sort.Search(len(m.keyframes), func(j int) bool { return m.keyframes[j] > time })
	lo, hi := m.values[i-1], m.values[i]
	if len(lo) != len(hi) {
		return nil, fmt.Errorf("%w: %d and %d components", ErrShapeMismatch, len(lo), len(hi))
	}
	t := (time - m.keyframes[i-1]) / (m.keyframes[i] - m.keyframes[i-1])
	t = m.easings[i-1].Apply(t)
	out := make(Value, len(lo))
	for c := range lo {
		out[c] = lo[c] + (hi[c]-lo[c])*t
	}
	return out, nil
}
