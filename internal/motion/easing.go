package motion

import (
	"fmt"
	"math"
)

// Easing shapes the normalized progress between two keyframes. The set
// is closed; new kinds are added here, not registered at runtime.
type Easing int

const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseInCubic
	EaseOutCubic
	EaseInExpo
	EaseOutExpo
)

var easingNames = map[string]Easing{
	"linear":         Linear,
	"ease_in":        EaseIn,
	"ease_out":       EaseOut,
	"ease_in_out":    EaseInOut,
	"ease_in_cubic":  EaseInCubic,
	"ease_out_cubic": EaseOutCubic,
	"ease_in_expo":   EaseInExpo,
	"ease_out_expo":  EaseOutExpo,
}

// ParseEasing maps an easing name to its kind. The empty string means
// linear, so config files can omit the field.
func ParseEasing(name string) (Easing, error) {
	if name == "" {
		return Linear, nil
	}
	e, ok := easingNames[name]
	if !ok {
		return Linear, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return e, nil
}

func (e Easing) String() string {
	for name, kind := range easingNames {
		if kind == e {
			return name
		}
	}
	return "linear"
}

// Apply evaluates the easing at normalized progress t in [0,1].
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		u := 1 - t
		return 1 - u*u
	case EaseInOut:
		return t * t * (3 - 2*t)
	case EaseInCubic:
		return t * t * t
	case EaseOutCubic:
		u := 1 - t
		return 1 - u*u*u
	case EaseInExpo:
		return math.Exp(-10 * (1 - t))
	case EaseOutExpo:
		return 1 - math.Exp(-10*t)
	default:
		return t
	}
}
