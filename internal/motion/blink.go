package motion

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
)

// BlinkFrame derives a discrete animation frame from a hash of the seed
// and the current time bucket, standing in for persisted random state:
// identical (seed, time) always yields the identical frame, across runs
// and processes.
//
// Time is split into buckets of period seconds. The seed and bucket
// number are hashed, the digest is mapped to a draw in [0,1), and the
// bucket is "active" when the draw falls below threshold. In an active
// bucket the elapsed time within the bucket selects a frame in
// [1, frameCount-1]; inactive buckets (and times past the frame window)
// return frame 0.
func BlinkFrame(seed string, time, period, threshold float64, frameCount int) int {
	if frameCount <= 1 || period <= 0 {
		return 0
	}
	bucket := int64(math.Floor(time / period))
	if hashDraw(fmt.Sprintf("%s:%d", seed, bucket)) >= threshold {
		return 0
	}
	frameDur := period / float64(frameCount-1)
	elapsed := time - float64(bucket)*period
	frame := int(elapsed/frameDur) + 1
	if frame > frameCount-1 {
		frame = frameCount - 1
	}
	return frame
}

// hashDraw maps a string to a reproducible draw in [0,1): the top 53
// bits of the first eight digest bytes, normalized.
func hashDraw(s string) float64 {
	sum := sha256.Sum256([]byte(s))
	u := binary.BigEndian.Uint64(sum[:8])
	return float64(u>>11) / (1 << 53)
}
