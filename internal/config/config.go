// Package config defines the yaml composition document and its
// validation. A document describes the canvas plus a layer stack;
// loading one is the only file-format surface of the engine.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Suv00m/movis/internal/motion"
)

// Composition is the root document.
type Composition struct {
	Version  string  `yaml:"version"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Duration float64 `yaml:"duration"`
	Layers   []Layer `yaml:"layers"`
}

// Layer describes one stack entry. Kind selects the interpretation of
// the remaining fields.
type Layer struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // "still", "slide", "character", "qr"

	// still/slide: image file, directory, or PDF. character: asset dir.
	Path string `yaml:"path,omitempty"`
	DPI  int    `yaml:"dpi,omitempty"`

	// qr only.
	Content string `yaml:"content,omitempty"`
	Size    int    `yaml:"size,omitempty"`

	// character only.
	Character string  `yaml:"character,omitempty"`
	BlinkRate float64 `yaml:"blink_rate,omitempty"`

	Segments []Segment  `yaml:"segments,omitempty"`
	Position []Keyframe `yaml:"position,omitempty"`
	Scale    []Keyframe `yaml:"scale,omitempty"`
	Opacity  []Keyframe `yaml:"opacity,omitempty"`
}

// Segment is one timeline interval of a layer.
type Segment struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`

	// slide: pages turned entering this segment.
	Pages int `yaml:"pages,omitempty"`

	// character: who speaks and how they look.
	Speaker string `yaml:"speaker,omitempty"`
	Emotion string `yaml:"emotion,omitempty"`

	// optional transform animation over this segment.
	Animation string `yaml:"animation,omitempty"`
}

// Keyframe is one control point of a transform curve. Value carries one
// component for scalar curves, two for points.
type Keyframe struct {
	Time   float64   `yaml:"time"`
	Value  []float64 `yaml:"value"`
	Easing string    `yaml:"easing,omitempty"`
}

var layerKinds = map[string]bool{
	"still":     true,
	"slide":     true,
	"character": true,
	"qr":        true,
}

// Validate checks everything that can fail before any asset is opened.
func (c *Composition) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: size %dx%d is not positive", c.Width, c.Height)
	}
	for i, l := range c.Layers {
		if !layerKinds[l.Kind] {
			return fmt.Errorf("config: layer %d (%q): unknown kind %q", i, l.Name, l.Kind)
		}
		curves := []struct {
			name     string
			kfs      []Keyframe
			min, max int
		}{
			{"position", l.Position, 2, 2},
			{"scale", l.Scale, 1, 2},
			{"opacity", l.Opacity, 1, 1},
		}
		for _, curve := range curves {
			for _, kf := range curve.kfs {
				if _, err := motion.ParseEasing(kf.Easing); err != nil {
					return fmt.Errorf("config: layer %d (%q): %w", i, l.Name, err)
				}
				if n := len(kf.Value); n < curve.min || n > curve.max {
					return fmt.Errorf("config: layer %d (%q): %s keyframe at %v has %d components, want %d..%d",
						i, l.Name, curve.name, kf.Time, n, curve.min, curve.max)
				}
			}
		}
		for j, s := range l.Segments {
			if s.End <= s.Start {
				return fmt.Errorf("config: layer %d (%q): segment %d is [%v, %v)", i, l.Name, j, s.Start, s.End)
			}
		}
	}
	return nil
}

// Load reads and validates a composition document.
func Load(path string) (*Composition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Composition
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes a composition document.
func Save(c *Composition, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
