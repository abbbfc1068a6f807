package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlinkFrameDeterministic(t *testing.T) {
	for _, time := range []float64{0, 0.07, 1.33, 59.9, 3600} {
		a := BlinkFrame("zundamon", time, 0.2, 0.01, 4)
		b := BlinkFrame("zundamon", time, 0.2, 0.01, 4)
		assert.Equal(t, a, b, "time %v", time)
	}
}

func TestBlinkFrameThresholds(t *testing.T) {
	// threshold 0: no bucket is ever active.
	for time := 0.0; time < 10; time += 0.05 {
		assert.Equal(t, 0, BlinkFrame("metan", time, 0.2, 0, 4))
	}

	// threshold 1: every bucket is active and the elapsed time inside
	// the bucket walks the frames 1..frameCount-1.
	assert.Equal(t, 1, BlinkFrame("metan", 0.00, 0.3, 1, 4))
	assert.Equal(t, 1, BlinkFrame("metan", 0.05, 0.3, 1, 4))
	assert.Equal(t, 2, BlinkFrame("metan", 0.15, 0.3, 1, 4))
	assert.Equal(t, 3, BlinkFrame("metan", 0.25, 0.3, 1, 4))
	// next bucket starts over
	assert.Equal(t, 1, BlinkFrame("metan", 0.31, 0.3, 1, 4))
}

func TestBlinkFrameRange(t *testing.T) {
	for time := 0.0; time < 30; time += 0.013 {
		frame := BlinkFrame("zundamon", time, 0.2, 0.5, 3)
		assert.GreaterOrEqual(t, frame, 0)
		assert.LessOrEqual(t, frame, 2)
	}
}

func TestBlinkFrameDegenerate(t *testing.T) {
	assert.Equal(t, 0, BlinkFrame("x", 1, 0.2, 1, 1), "single frame never blinks")
	assert.Equal(t, 0, BlinkFrame("x", 1, 0.2, 1, 0))
	assert.Equal(t, 0, BlinkFrame("x", 1, 0, 1, 4), "zero period never blinks")
}

func TestBlinkFrameSeedSensitive(t *testing.T) {
	// With a 50% threshold two seeds should disagree on at least one of
	// many buckets; identical outputs would mean the seed is ignored.
	differ := false
	for bucket := 0; bucket < 64; bucket++ {
		time := float64(bucket) * 0.2
		if BlinkFrame("a", time, 0.2, 0.5, 3) != BlinkFrame("b", time, 0.2, 0.5, 3) {
			differ = true
			break
		}
	}
	assert.True(t, differ)
}
