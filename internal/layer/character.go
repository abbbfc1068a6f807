package layer

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Suv00m/movis/internal/compose"
	"github.com/Suv00m/movis/internal/motion"
	"github.com/Suv00m/movis/internal/source"
	"github.com/Suv00m/movis/internal/timeline"
)

const (
	defaultInitialEmotion = "n"
	defaultBlinkPerMin    = 3.0
	defaultBlinkDuration  = 0.2
)

// portrait is a lazily decoded image asset: a path until first use, a
// decoded buffer afterwards.
type portrait struct {
	path string
	img  *image.RGBA
}

func (p *portrait) load() (*image.RGBA, error) {
	if p.img == nil {
		img, err := source.DecodeImage(p.path)
		if err != nil {
			return nil, err
		}
		p.img = img
	}
	return p.img, nil
}

// Character renders a named character's portrait over a dialogue
// timeline. Each segment names a speaker and an emotion; the character
// holds its last emotion while others speak. Emotions with eye frames
// on disk blink, driven by a deterministic hash of time so repeated
// renders are identical.
//
// Assets are scanned from dir: <emotion>.png for the base portrait,
// <emotion>.eye.png for open eyes, and <emotion>.eye.<n>.png for the
// blink frames in between.
type Character struct {
	name     string
	index    *timeline.Index
	emotions []string

	portraits map[string]*portrait
	eyes      map[string][]*portrait

	initial       string
	blinkPerMin   float64
	blinkDuration float64
}

type CharacterOption func(*Character)

// WithInitialEmotion sets the emotion shown before the character first
// speaks.
func WithInitialEmotion(emotion string) CharacterOption {
	return func(c *Character) { c.initial = emotion }
}

// WithBlinkRate sets the expected blinks per minute.
func WithBlinkRate(perMinute float64) CharacterOption {
	return func(c *Character) { c.blinkPerMin = perMinute }
}

// WithBlinkDuration sets the length of one blink in seconds.
func WithBlinkDuration(seconds float64) CharacterOption {
	return func(c *Character) { c.blinkDuration = seconds }
}

// NewCharacter builds a Character named name from the assets in dir.
// speakers and emotions describe every segment of the dialogue, aligned
// with starts/ends; segments spoken by other characters only carry the
// last emotion forward.
func NewCharacter(dir, name string, starts, ends []float64, speakers, emotions []string, opts ...CharacterOption) (*Character, error) {
	if len(starts) != len(speakers) || len(speakers) != len(emotions) {
		return nil, fmt.Errorf("%w: %d segments, %d speakers, %d emotions",
			timeline.ErrLengthMismatch, len(starts), len(speakers), len(emotions))
	}
	idx, err := timeline.NewIndex(starts, ends)
	if err != nil {
		return nil, err
	}

	c := &Character{
		name:          name,
		index:         idx,
		portraits:     make(map[string]*portrait),
		eyes:          make(map[string][]*portrait),
		initial:       defaultInitialEmotion,
		blinkPerMin:   defaultBlinkPerMin,
		blinkDuration: defaultBlinkDuration,
	}
	for _, opt := range opts {
		opt(c)
	}

	used := map[string]bool{c.initial: true}
	for i, speaker := range speakers {
		if speaker == name {
			used[emotions[i]] = true
		}
	}
	for emotion := range used {
		c.portraits[emotion] = &portrait{path: filepath.Join(dir, emotion+".png")}
		frames, err := scanEyeFrames(dir, emotion)
		if err != nil {
			return nil, err
		}
		if len(frames) > 0 {
			c.eyes[emotion] = frames
		}
	}

	status := c.initial
	c.emotions = make([]string, 0, len(speakers))
	for i, speaker := range speakers {
		if speaker == name {
			status = emotions[i]
		}
		c.emotions = append(c.emotions, status)
	}
	return c, nil
}

// scanEyeFrames collects <emotion>.eye.png plus any numbered
// <emotion>.eye.<n>.png frames, in filename order. An emotion without
// an eye base image has no blink animation.
func scanEyeFrames(dir, emotion string) ([]*portrait, error) {
	base := filepath.Join(dir, emotion+".eye.png")
	if _, err := os.Stat(base); err != nil {
		return nil, nil
	}
	frames := []*portrait{{path: base}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	prefix := emotion + ".eye."
	var numbered []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if len(strings.Split(name, ".")) == 4 {
			numbered = append(numbered, name)
		}
	}
	sort.Strings(numbered)
	for _, name := range numbered {
		frames = append(frames, &portrait{path: filepath.Join(dir, name)})
	}
	return frames, nil
}

// Duration is the end of the last dialogue segment.
func (c *Character) Duration() float64 { return c.index.Duration() }

// EyeState returns the blink frame index active at time for the current
// emotion: 0 for open eyes, 1..n-1 while a blink runs, -1 when the
// emotion has no eye frames at all.
func (c *Character) EyeState(time float64) int {
	i := c.index.Resolve(time)
	if i < 0 {
		return -1
	}
	frames := c.eyes[c.emotions[i]]
	switch len(frames) {
	case 0:
		return -1
	case 1:
		return 0
	}
	threshold := c.blinkPerMin * c.blinkDuration / 60
	return motion.BlinkFrame(c.name, time, c.blinkDuration, threshold, len(frames))
}

// Key identifies the exact visual state at time: the emotion and the
// blink frame. Inactive times yield ("", -1).
func (c *Character) Key(time float64) (string, int) {
	i := c.index.Resolve(time)
	if i < 0 {
		return "", -1
	}
	return c.emotions[i], c.EyeState(time)
}

func (c *Character) Frame(time float64) (*image.RGBA, error) {
	i := c.index.Resolve(time)
	if i < 0 {
		return nil, nil
	}
	emotion := c.emotions[i]
	p, ok := c.portraits[emotion]
	if !ok {
		return nil, fmt.Errorf("layer: character %q has no portrait for emotion %q", c.name, emotion)
	}
	base, err := p.load()
	if err != nil {
		return nil, err
	}
	frames := c.eyes[emotion]
	if len(frames) == 0 {
		return base, nil
	}
	eye, err := frames[c.EyeState(time)].load()
	if err != nil {
		return nil, err
	}
	return compose.AlphaComposite(base, eye, image.Point{}, 1), nil
}

// Preload decodes every portrait and eye frame ahead of rendering.
func (c *Character) Preload(ctx context.Context) error {
	for _, p := range c.portraits {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := p.load(); err != nil {
			return err
		}
	}
	for _, frames := range c.eyes {
		for _, p := range frames {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := p.load(); err != nil {
				return err
			}
		}
	}
	return nil
}
