package renderer

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// textSize returns the width of s when rendered height pixels tall, capped at maxWidth.
func textSize(s string, height, maxWidth int) (w, h int) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	rawW := d.MeasureString(s).Ceil()
	rawH := face.Metrics().Height.Ceil()
	if rawW == 0 || rawH == 0 || height <= 0 {
		return 0, 0
	}

	scale := float64(height) / float64(rawH)
	if maxWidth > 0 && float64(rawW)*scale > float64(maxWidth) {
		scale = float64(maxWidth) / float64(rawW)
	}
	return int(float64(rawW) * scale), int(float64(rawH) * scale)
}

// drawText renders s centered on center. The bitmap face is drawn at its
// native size and scaled up, which keeps the renderer free of font files.
func drawText(dst xdraw.Image, s string, center image.Point, height, maxWidth int, c color.NRGBA) image.Rectangle {
	w, h := textSize(s, height, maxWidth)
	if w == 0 || h == 0 || c.A == 0 {
		return image.Rectangle{}
	}

	face := basicfont.Face7x13
	m := face.Metrics()
	d := &font.Drawer{Face: face}
	glyphs := image.NewRGBA(image.Rect(0, 0, d.MeasureString(s).Ceil(), m.Height.Ceil()))
	d.Dst = glyphs
	d.Src = image.NewUniform(c)
	d.Dot = fixed.P(0, m.Ascent.Ceil())
	d.DrawString(s)

	target := image.Rect(center.X-w/2, center.Y-h/2, center.X-w/2+w, center.Y-h/2+h)
	xdraw.ApproxBiLinear.Scale(dst, target, glyphs, glyphs.Bounds(), xdraw.Over, nil)
	return target
}
