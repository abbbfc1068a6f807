package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Suv00m/movis/internal/config"
	"github.com/Suv00m/movis/internal/layer"
	"github.com/Suv00m/movis/internal/motion"
	"github.com/Suv00m/movis/internal/source"
	"github.com/Suv00m/movis/internal/timeline"
)

// Build turns a validated composition document into a live Composition,
// opening every layer's source. The caller owns the result and should
// Close it.
func Build(cfg *config.Composition, log zerolog.Logger) (*Composition, error) {
	cmp := New(cfg.Width, cfg.Height, cfg.Duration, WithLogger(log))
	for i, lc := range cfg.Layers {
		if err := buildLayer(cmp, lc); err != nil {
			cmp.Close()
			return nil, fmt.Errorf("engine: layer %d (%q): %w", i, lc.Name, err)
		}
	}
	return cmp, nil
}

func buildLayer(cmp *Composition, lc config.Layer) error {
	var (
		l   layer.Layer
		err error
	)
	switch lc.Kind {
	case "still":
		src, err := openFrameSource(lc.Path, lc.DPI)
		if err != nil {
			return err
		}
		cmp.AddCloser(src)
		still := layer.NewStill(src, 0)
		still.SetDuration(cmp.Duration())
		l = still

	case "slide":
		src, err := openFrameSource(lc.Path, lc.DPI)
		if err != nil {
			return err
		}
		cmp.AddCloser(src)
		starts, ends := segmentTimes(lc.Segments)
		counter := make([]int, len(lc.Segments))
		for i, s := range lc.Segments {
			counter[i] = s.Pages
		}
		l, err = layer.NewSlide(src, starts, ends, counter)
		if err != nil {
			return err
		}

	case "character":
		starts, ends := segmentTimes(lc.Segments)
		speakers := make([]string, len(lc.Segments))
		emotions := make([]string, len(lc.Segments))
		for i, s := range lc.Segments {
			speakers[i] = s.Speaker
			emotions[i] = s.Emotion
		}
		var opts []layer.CharacterOption
		if lc.BlinkRate > 0 {
			opts = append(opts, layer.WithBlinkRate(lc.BlinkRate))
		}
		l, err = layer.NewCharacter(lc.Path, lc.Character, starts, ends, speakers, emotions, opts...)
		if err != nil {
			return err
		}

	case "qr":
		src := source.NewQR(lc.Content, lc.Size)
		cmp.AddCloser(src)
		still := layer.NewStill(src, 0)
		still.SetDuration(cmp.Duration())
		l = still

	default:
		return fmt.Errorf("unknown kind %q", lc.Kind)
	}

	tr, err := buildTransform(cmp, lc)
	if err != nil {
		return err
	}
	cmp.Add(lc.Name, l, tr)
	return nil
}

func segmentTimes(segments []config.Segment) (starts, ends []float64) {
	starts = make([]float64, len(segments))
	ends = make([]float64, len(segments))
	for i, s := range segments {
		starts[i] = s.Start
		ends[i] = s.End
	}
	return starts, ends
}

func openFrameSource(path string, dpi int) (source.Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return source.OpenPDF(path, dpi)
	}
	return source.OpenDir(path)
}

func buildTransform(cmp *Composition, lc config.Layer) (*Transform, error) {
	tr := NewTransform(float64(cmp.width)/2, float64(cmp.height)/2)
	for _, curve := range []struct {
		m   *motion.Motion
		kfs []config.Keyframe
	}{
		{tr.Position, lc.Position},
		{tr.Scale, lc.Scale},
		{tr.Opacity, lc.Opacity},
	} {
		if len(curve.kfs) == 0 {
			continue
		}
		times := make([]float64, len(curve.kfs))
		values := make([]motion.Value, len(curve.kfs))
		easings := make([]string, len(curve.kfs))
		for i, kf := range curve.kfs {
			times[i] = kf.Time
			values[i] = motion.Value(kf.Value)
			easings[i] = kf.Easing
		}
		if err := curve.m.Extend(times, values, easings); err != nil {
			return nil, err
		}
	}

	if err := applySegmentAnimations(tr, lc.Segments); err != nil {
		return nil, err
	}
	return tr, nil
}

func applySegmentAnimations(tr *Transform, segments []config.Segment) error {
	var (
		starts, ends []float64
		names        []string
		any          bool
	)
	for _, s := range segments {
		starts = append(starts, s.Start)
		ends = append(ends, s.End)
		names = append(names, s.Animation)
		if s.Animation != "" {
			any = true
		}
	}
	if !any {
		return nil
	}
	idx, err := timeline.NewIndex(starts, ends)
	if err != nil {
		return err
	}
	return AnimateFromTimeline(tr, idx, names)
}
