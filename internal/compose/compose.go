// Package compose holds the pixel-level primitives the layers are built
// on: RGBA normalization, resampling, and alpha compositing.
package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ToRGBA returns img as a zero-origin *image.RGBA, copying only when the
// input is not already in that form.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Clone returns a deep copy of img.
func Clone(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}

// Resize scales img by independent x/y factors using Catmull-Rom
// resampling. The result is never smaller than one pixel per axis.
func Resize(img *image.RGBA, sx, sy float64) *image.RGBA {
	w := int(math.Round(float64(img.Bounds().Dx()) * sx))
	h := int(math.Round(float64(img.Bounds().Dy()) * sy))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Over draws overlay onto dst in place, source-over, with its top-left
// corner at pos. Opacity scales the overlay's alpha; values outside
// [0,1] are clamped.
func Over(dst, overlay *image.RGBA, pos image.Point, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	r := image.Rectangle{Min: pos, Max: pos.Add(overlay.Bounds().Size())}
	if opacity >= 1 {
		draw.Draw(dst, r, overlay, overlay.Bounds().Min, draw.Over)
		return
	}
	a := uint8(math.Round(opacity * 255))
	mask := image.NewUniform(color.Alpha{A: a})
	draw.DrawMask(dst, r, overlay, overlay.Bounds().Min, mask, image.Point{}, draw.Over)
}

// AlphaComposite returns overlay drawn over base at pos, leaving both
// inputs untouched.
func AlphaComposite(base, overlay *image.RGBA, pos image.Point, opacity float64) *image.RGBA {
	out := Clone(base)
	Over(out, overlay, pos, opacity)
	return out
}
