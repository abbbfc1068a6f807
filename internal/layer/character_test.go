package layer

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAsset(t *testing.T, dir, name string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func characterDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeAsset(t, dir, "n.png", color.RGBA{R: 10, A: 255})
	writeAsset(t, dir, "n.eye.png", color.RGBA{G: 10, A: 255})
	writeAsset(t, dir, "n.eye.1.png", color.RGBA{G: 20, A: 255})
	writeAsset(t, dir, "n.eye.2.png", color.RGBA{G: 30, A: 255})
	writeAsset(t, dir, "h.png", color.RGBA{R: 20, A: 255})
	return dir
}

func testCharacter(t *testing.T, opts ...CharacterOption) *Character {
	t.Helper()
	c, err := NewCharacter(characterDir(t), "zunda",
		[]float64{0, 2, 4},
		[]float64{2, 4, 6},
		[]string{"zunda", "metan", "zunda"},
		[]string{"n", "h", "h"},
		opts...,
	)
	require.NoError(t, err)
	return c
}

func TestCharacterEmotionTimeline(t *testing.T) {
	c := testCharacter(t)

	// Own segment sets the emotion; another speaker's segment carries
	// the previous one forward.
	assert.Equal(t, 6.0, c.Duration())

	emotion, _ := c.Key(1)
	assert.Equal(t, "n", emotion)
	emotion, _ = c.Key(3)
	assert.Equal(t, "n", emotion, "metan's emotion must not leak onto zunda")
	emotion, _ = c.Key(5)
	assert.Equal(t, "h", emotion)

	emotion, eye := c.Key(10)
	assert.Equal(t, "", emotion)
	assert.Equal(t, -1, eye)
}

func TestCharacterValidation(t *testing.T) {
	_, err := NewCharacter(t.TempDir(), "zunda",
		[]float64{0}, []float64{1},
		[]string{"zunda", "metan"}, []string{"n"},
	)
	assert.Error(t, err)
}

func TestCharacterEyeState(t *testing.T) {
	c := testCharacter(t)

	// "n" has eye frames, "h" has none.
	assert.Equal(t, -1, c.EyeState(5), "emotion without eye assets")
	assert.Equal(t, -1, c.EyeState(100), "inactive time")

	for time := 0.0; time < 2; time += 0.05 {
		eye := c.EyeState(time)
		assert.GreaterOrEqual(t, eye, 0, "time %v", time)
		assert.LessOrEqual(t, eye, 2, "time %v", time)
	}
}

func TestCharacterFrameDeterministic(t *testing.T) {
	a := testCharacter(t, WithBlinkRate(30))
	b := testCharacter(t, WithBlinkRate(30))

	for time := 0.0; time < 2; time += 0.11 {
		fa, err := a.Frame(time)
		require.NoError(t, err)
		fb, err := b.Frame(time)
		require.NoError(t, err)
		assert.Equal(t, fa.Pix, fb.Pix, "time %v", time)
	}
}

func TestCharacterFrameCompositesEyes(t *testing.T) {
	c := testCharacter(t)

	frame, err := c.Frame(1)
	require.NoError(t, err)
	got := frame.RGBAAt(0, 0)
	// Opaque eye frame drawn over the portrait.
	assert.NotZero(t, got.G)

	frame, err = c.Frame(5)
	require.NoError(t, err)
	assert.EqualValues(t, 20, frame.RGBAAt(0, 0).R, "plain portrait when no eye assets")

	frame, err = c.Frame(50)
	require.NoError(t, err)
	assert.Nil(t, frame, "inactive outside the timeline")
}

func TestCharacterPreload(t *testing.T) {
	c := testCharacter(t)
	require.NoError(t, c.Preload(context.Background()))

	for emotion, p := range c.portraits {
		assert.NotNil(t, p.img, "portrait %q not decoded", emotion)
	}
	for emotion, frames := range c.eyes {
		for i, p := range frames {
			assert.NotNil(t, p.img, "eye %q frame %d not decoded", emotion, i)
		}
	}
}
