package layer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suv00m/movis/internal/timeline"
)

// fakeSource serves generated solid-color frames and counts decodes.
type fakeSource struct {
	count   int
	decodes map[int]int
}

func newFakeSource(count int) *fakeSource {
	return &fakeSource{count: count, decodes: make(map[int]int)}
}

func (s *fakeSource) Count() int { return s.count }

func (s *fakeSource) Frame(index int) (*image.RGBA, error) {
	if index < 0 || index >= s.count {
		return nil, fmt.Errorf("frame %d out of range", index)
	}
	s.decodes[index]++
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: uint8(index), A: 255})
	return img, nil
}

func (s *fakeSource) Close() error { return nil }

func TestSequenceFrame(t *testing.T) {
	src := newFakeSource(3)
	seq, err := NewSequence(src,
		[]float64{0, 2, 5},
		[]float64{2, 4, 6},
		[]int{0, 2, 1},
	)
	require.NoError(t, err)

	frame, err := seq.Frame(3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, frame.RGBAAt(0, 0).R)

	// Gap between segments: inactive, no error.
	frame, err = seq.Frame(4.5)
	require.NoError(t, err)
	assert.Nil(t, frame)

	frame, err = seq.Frame(-1)
	require.NoError(t, err)
	assert.Nil(t, frame)
}

func TestSequenceKey(t *testing.T) {
	seq, err := NewSequence(newFakeSource(3),
		[]float64{0, 2},
		[]float64{2, 4},
		[]int{1, 2},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, seq.Key(0.5))
	assert.Equal(t, 2, seq.Key(2))
	assert.Equal(t, -1, seq.Key(10))
}

func TestSequenceValidation(t *testing.T) {
	_, err := NewSequence(newFakeSource(1), []float64{0}, []float64{1}, []int{0, 1})
	assert.ErrorIs(t, err, timeline.ErrLengthMismatch)

	_, err = NewSequence(newFakeSource(1), []float64{0, 1}, []float64{1}, []int{0})
	assert.ErrorIs(t, err, timeline.ErrLengthMismatch)
}

func TestSlideCounter(t *testing.T) {
	src := newFakeSource(4)
	// Page advances: start on page 0, turn one page entering the third
	// segment and another entering the fourth.
	slide, err := NewSlide(src,
		[]float64{0, 1, 2, 3},
		[]float64{1, 2, 3, 4},
		[]int{0, 0, 1, 1},
	)
	require.NoError(t, err)

	assert.Equal(t, 0, slide.Key(0.5))
	assert.Equal(t, 0, slide.Key(1.5))
	assert.Equal(t, 1, slide.Key(2.5))
	assert.Equal(t, 2, slide.Key(3.5))
}

func TestSequencePreload(t *testing.T) {
	src := newFakeSource(3)
	seq, err := NewSequence(src,
		[]float64{0, 1, 2},
		[]float64{1, 2, 3},
		[]int{0, 2, 0},
	)
	require.NoError(t, err)

	require.NoError(t, seq.Preload(context.Background()))
	// Each distinct frame decoded once; frame 1 never referenced.
	assert.Equal(t, 1, src.decodes[0])
	assert.Equal(t, 0, src.decodes[1])
	assert.Equal(t, 1, src.decodes[2])
}

func TestStill(t *testing.T) {
	still := NewStill(newFakeSource(1), 0)
	frame, err := still.Frame(123.4)
	require.NoError(t, err)
	assert.NotNil(t, frame)
	require.NoError(t, still.Preload(context.Background()))
}

func TestDurations(t *testing.T) {
	seq, err := NewSequence(newFakeSource(2),
		[]float64{0, 1.5},
		[]float64{1.5, 4.25},
		[]int{0, 1},
	)
	require.NoError(t, err)
	assert.Equal(t, 4.25, seq.Duration())

	// A still has no intrinsic duration until one is pinned on it.
	still := NewStill(newFakeSource(1), 0)
	assert.Equal(t, 0.0, still.Duration())
	still.SetDuration(12)
	assert.Equal(t, 12.0, still.Duration())
}
