package overlay

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Rasterize draws s in opaque white on a transparent image. The image spans
// the advance width of s and the ascent plus descent of face, with the
// baseline at the ascent. An empty string yields a 1×1 transparent image.
//
func Rasterize(face font.Face, s string) *image.NRGBA {
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{Y: fixed.I(m.Ascent.Ceil())},
	}
	d.DrawString(s)
	return dst
}
