package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexValidation(t *testing.T) {
	_, err := NewIndex([]float64{0, 1}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewIndex([]float64{0, 2}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidInterval)

	idx, err := NewIndex(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, -1, idx.Resolve(0))
}

func TestResolve(t *testing.T) {
	idx, err := NewIndex(
		[]float64{0, 1, 3},
		[]float64{1, 2, 4},
	)
	require.NoError(t, err)

	tests := []struct {
		time float64
		want int
	}{
		{-0.5, -1},
		{0, 0},
		{0.99, 0},
		{1, 1},
		{1.5, 1},
		{2, -1}, // gap between segments
		{2.5, -1},
		{3, 2},
		{3.99, 2},
		{4, -1}, // end is exclusive
		{100, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.Resolve(tt.time), "time %v", tt.time)
	}
}

func TestResolveIdempotent(t *testing.T) {
	idx, err := NewIndex([]float64{0, 5}, []float64{5, 10})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, idx.Resolve(7.5))
	}
	// The memo must not leak across different query times.
	assert.Equal(t, 0, idx.Resolve(2.5))
	assert.Equal(t, 1, idx.Resolve(7.5))
}

func TestAccessors(t *testing.T) {
	idx, err := NewIndex([]float64{1, 4}, []float64{3, 6})
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 1.0, idx.Start(0))
	assert.Equal(t, 6.0, idx.End(1))
	assert.Equal(t, 6.0, idx.Duration())
}

func TestDuration(t *testing.T) {
	// The latest end wins even when a later segment ends earlier.
	idx, err := NewIndex([]float64{0, 1, 8}, []float64{10, 2, 9})
	require.NoError(t, err)
	assert.Equal(t, 10.0, idx.Duration())

	empty, err := NewIndex(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.Duration())
}
