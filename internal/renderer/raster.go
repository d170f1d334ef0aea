package renderer

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"strconv"
	"sync"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/pdfstudio/internal/system"
)

// ImageLoader resolves an opaque asset reference.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

var (
	cardColor        = color.NRGBA{R: 255, G: 255, B: 255, A: 242}
	titleColor       = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 255}
	badgeColor       = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	captionBoxColor  = color.NRGBA{A: 160}
	placeholderColor = color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 255}
)

// Rasterizer paints Frame descriptions into RGBA images. It is safe for concurrent use.
type Rasterizer struct {
	Width, Height int
	Loader        ImageLoader

	qr      image.Image
	warned  sync.Map
	blurred sync.Map // ref -> softened background
}

// NewRasterizer prepares a rasterizer. A non-empty shareURL adds a QR code in the lower-left corner.
func NewRasterizer(width, height int, loader ImageLoader, shareURL string) (*Rasterizer, error) {
	r := &Rasterizer{Width: width, Height: height, Loader: loader}
	if shareURL != "" {
		q, err := qrcode.New(shareURL, qrcode.Medium)
		if err != nil {
			return nil, err
		}
		q.DisableBorder = true
		r.qr = q.Image(r.unit(150))
	}
	return r, nil
}

// Render draws fr into a pooled buffer. Release it with system.PutFrame when done.
func (r *Rasterizer) Render(ctx context.Context, fr Frame) *image.RGBA {
	dst := system.GetFrame(r.Width, r.Height)
	r.Draw(ctx, dst, fr)
	return dst
}

// Draw paints fr onto dst. Missing or broken assets are replaced by placeholders.
func (r *Rasterizer) Draw(ctx context.Context, dst *image.RGBA, fr Frame) {
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	if fr.Blank {
		return
	}

	if fr.Background != nil {
		r.drawBackground(ctx, dst, fr.Background)
	}
	if fr.Content != nil {
		r.drawCard(ctx, dst, fr.Content)
	}
	if fr.Caption != nil {
		r.drawCaption(dst, fr.Caption)
	}
	if r.qr != nil {
		size := r.qr.Bounds().Size()
		margin := r.unit(40)
		at := image.Rect(margin, r.Height-margin-size.Y, margin+size.X, r.Height-margin)
		draw.Draw(dst, at, r.qr, r.qr.Bounds().Min, draw.Src)
	}
}

// unit scales a length given for a 1080-pixel-high composition.
func (r *Rasterizer) unit(v float64) int {
	return int(math.Round(v * float64(r.Height) / 1080))
}

func (r *Rasterizer) load(ctx context.Context, ref string) image.Image {
	if r.Loader == nil {
		return nil
	}
	img, err := r.Loader.Load(ctx, ref)
	if err != nil {
		if _, seen := r.warned.LoadOrStore(ref, true); !seen {
			log.Printf("[!] Ассет недоступен, используется заглушка: %v", err)
		}
		return nil
	}
	return img
}

func alphaMask(opacity float64) *image.Uniform {
	return image.NewUniform(color.Alpha16{A: uint16(math.Round(clamp01(opacity) * 0xffff))})
}

func fill(dst draw.Image, rect image.Rectangle, c color.NRGBA, opacity float64) {
	c.A = uint8(math.Round(float64(c.A) * clamp01(opacity)))
	if c.A == 0 {
		return
	}
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Rasterizer) drawBackground(ctx context.Context, dst *image.RGBA, bg *BackgroundLayer) {
	if bg.Opacity <= 0 {
		return
	}
	bounds := dst.Bounds()
	img := r.load(ctx, bg.ImageRef)
	if img == nil {
		fill(dst, bounds, placeholderColor, bg.Opacity)
	} else {
		target := coverRect(img.Bounds().Size(), bounds)
		soft, ok := r.blurred.Load(bg.ImageRef)
		if !ok {
			soft, _ = r.blurred.LoadOrStore(bg.ImageRef, soften(img, target.Size(), max(1, r.unit(blurRadius))))
		}
		src := soft.(image.Image)
		xdraw.ApproxBiLinear.Scale(dst, target, src, src.Bounds(), xdraw.Over, &xdraw.Options{SrcMask: alphaMask(bg.Opacity)})
	}
	// brightness(0.6)
	fill(dst, bounds, color.NRGBA{A: 102}, bg.Opacity)
}

// blurRadius is the background blur for a 1080-pixel-high composition.
const blurRadius = 3

// soften blurs img as it will appear when scaled to size: it is resampled
// down to one pixel per 2*radius output pixels and stretched back by the caller.
func soften(img image.Image, size image.Point, radius int) image.Image {
	w, h := size.X/(2*radius), size.Y/(2*radius)
	src := img.Bounds().Size()
	if w < 1 || h < 1 || (w >= src.X && h >= src.Y) {
		return img
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return small
}

func (r *Rasterizer) drawCard(ctx context.Context, dst *image.RGBA, card *ContentLayer) {
	if card.Opacity <= 0 {
		return
	}
	w, h := r.Width*8/10, r.Height*8/10
	x0 := (r.Width - w) / 2
	y0 := (r.Height-h)/2 + int(math.Round(card.OffsetY*float64(r.Height)/1080))
	rect := image.Rect(x0, y0, x0+w, y0+h)
	fill(dst, rect, cardColor, card.Opacity)

	pad := r.unit(60)
	inner := rect.Inset(pad)

	if card.Title != "" {
		c := titleColor
		c.A = uint8(math.Round(255 * clamp01(card.Opacity)))
		th := r.unit(56)
		drawText(dst, card.Title, image.Pt(inner.Min.X+inner.Dx()/2, inner.Min.Y+th/2), th, inner.Dx(), c)
		inner.Min.Y += th + r.unit(30)
	}

	if n := len(card.ImageRefs); n > 0 && !inner.Empty() {
		gap := r.unit(20)
		cellW := (inner.Dx() - gap*(n-1)) / n
		for i, ref := range card.ImageRefs {
			cell := image.Rect(inner.Min.X+i*(cellW+gap), inner.Min.Y, inner.Min.X+i*(cellW+gap)+cellW, inner.Max.Y)
			img := r.load(ctx, ref)
			if img == nil {
				fill(dst, cell.Inset(cell.Dx()/8), placeholderColor, card.Opacity*0.3)
				continue
			}
			target := containRect(img.Bounds().Size(), cell)
			xdraw.ApproxBiLinear.Scale(dst, target, img, img.Bounds(), xdraw.Over, &xdraw.Options{SrcMask: alphaMask(card.Opacity)})
		}
	}

	badge := strconv.Itoa(card.PageNumber)
	bh := r.unit(48)
	bw := r.unit(40) + bh/2*len(badge)
	br := image.Rect(rect.Max.X-r.unit(20)-bw, rect.Min.Y+r.unit(20), rect.Max.X-r.unit(20), rect.Min.Y+r.unit(20)+bh)
	fill(dst, br, badgeColor, card.Opacity)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(255 * clamp01(card.Opacity)))}
	drawText(dst, badge, image.Pt(br.Min.X+br.Dx()/2, br.Min.Y+br.Dy()/2), r.unit(24), br.Dx(), white)
}

func (r *Rasterizer) drawCaption(dst *image.RGBA, c *CaptionLayer) {
	if c.Opacity <= 0 || c.Text == "" {
		return
	}
	height := int(math.Round(float64(r.unit(48)) * c.Scale))
	center := image.Pt(r.Width/2, r.Height*88/100)
	w, h := textSize(c.Text, height, r.Width*9/10)
	if w == 0 {
		return
	}
	pad := r.unit(18)
	box := image.Rect(center.X-w/2-pad, center.Y-h/2-pad/2, center.X+w/2+pad, center.Y+h/2+pad/2)
	fill(dst, box, captionBoxColor, c.Opacity)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(255 * clamp01(c.Opacity)))}
	drawText(dst, c.Text, center, height, r.Width*9/10, white)
}

// coverRect scales size to fill bounds completely, cropping the overflow.
func coverRect(size image.Point, bounds image.Rectangle) image.Rectangle {
	return fitRect(size, bounds, math.Max)
}

// containRect scales size to fit inside bounds.
func containRect(size image.Point, bounds image.Rectangle) image.Rectangle {
	return fitRect(size, bounds, math.Min)
}

func fitRect(size image.Point, bounds image.Rectangle, pick func(a, b float64) float64) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}
	}
	s := pick(float64(bounds.Dx())/float64(size.X), float64(bounds.Dy())/float64(size.Y))
	w, h := int(math.Round(float64(size.X)*s)), int(math.Round(float64(size.Y)*s))
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
