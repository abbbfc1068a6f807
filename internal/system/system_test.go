package system

import (
	"image"
	"testing"
)

func TestWorkers(t *testing.T) {
	if n := Workers(0); n < 1 {
		t.Errorf("Workers(0) = %d, want at least 1", n)
	}
	// An absurd per-task footprint must still leave one worker.
	if n := Workers(1 << 62); n != 1 {
		t.Errorf("Workers(huge) = %d, want 1", n)
	}
	if small, zero := Workers(1024), Workers(0); small > zero {
		t.Errorf("memory cap raised the worker count: %d > %d", small, zero)
	}
}

func TestFramePool(t *testing.T) {
	rect := image.Rect(0, 0, 13, 7)
	pool := NewFramePool(rect)

	img := pool.Get()
	if img.Bounds() != rect {
		t.Fatalf("bounds %v, want %v", img.Bounds(), rect)
	}
	pool.Put(img)

	again := pool.Get()
	if again.Bounds() != rect {
		t.Fatalf("bounds %v after reuse, want %v", again.Bounds(), rect)
	}

	// Foreign-size buffers and nil are dropped, not panicked on.
	pool.Put(image.NewRGBA(image.Rect(0, 0, 99, 99)))
	pool.Put(nil)
	if got := pool.Get().Bounds(); got != rect {
		t.Fatalf("pool handed out a foreign buffer with bounds %v", got)
	}
}
