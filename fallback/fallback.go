// Package fallback composites pictures in software when the engine
// declines an operation.
//
// Pixels are read and written straight through the CPU mapping of the
// framebuffer, so every transfer touching the pictures must have retired
// first (see exa.Engine.WaitMarker). Color values are treated as
// premultiplied, as in the X Render extension; formats without alpha read
// as opaque.
package fallback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/exa"
	"github.com/gogpu/exa/blend"
	"github.com/gogpu/exa/format"
	"github.com/gogpu/exa/internal/parallel"
)

// ErrUnsupported is returned for operators or pictures the software path
// cannot handle.
var ErrUnsupported = errors.New("fallback: unsupported composite")

// Composites of at least parallelPixels pixels are split into bands of at
// least bandRows rows run on a shared pool.
const (
	parallelPixels = 128 * 128
	bandRows       = 16
)

var pool = sync.OnceValue(func() *parallel.Pool { return parallel.NewPool(0) })

type rgba struct{ r, g, b, a byte }

// Composite draws op from src through the optional mask onto the w x h
// rectangle of dst at (dstX, dstY). Source and mask pixels outside a
// non-repeating picture read as transparent.
func Composite(fb []byte, op blend.Op, src, mask, dst *exa.Picture,
	srcX, srcY, maskX, maskY, dstX, dstY, w, h int) error {
	f := blend.FuncFor(op)
	if f == nil {
		return fmt.Errorf("%w: operator %v", ErrUnsupported, op)
	}
	if src == nil || dst == nil {
		return exa.ErrNilPicture
	}
	for _, p := range []*exa.Picture{src, mask, dst} {
		if err := check(p); err != nil {
			return err
		}
	}
	if dst.Repeat {
		return fmt.Errorf("%w: repeating destination", ErrUnsupported)
	}

	rows := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				s := sample(fb, src, srcX+x, srcY+y)
				if mask != nil {
					m := sample(fb, mask, maskX+x, maskY+y).a
					s = rgba{
						blend.MulDiv255(s.r, m),
						blend.MulDiv255(s.g, m),
						blend.MulDiv255(s.b, m),
						blend.MulDiv255(s.a, m),
					}
				}
				dx, dy := dstX+x, dstY+y
				if dx < 0 || dy < 0 || dx >= dst.Drawable.Width() || dy >= dst.Drawable.Height() {
					continue
				}
				d := decode(dst.Drawable.Pixel(fb, dx, dy), dst.Format)
				var out rgba
				out.r, out.g, out.b, out.a = f(s.r, s.g, s.b, s.a, d.r, d.g, d.b, d.a)
				dst.Drawable.SetPixel(fb, dx, dy, encode(out, dst.Format))
			}
		}
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	if w*h < parallelPixels {
		rows(0, h)
		return nil
	}
	pool().Rows(h, bandRows, rows)
	return nil
}

// check reports whether p can be read and written here. A nil p is a
// missing mask.
func check(p *exa.Picture) error {
	if p == nil {
		return nil
	}
	if p.Drawable == nil {
		return exa.ErrNilPicture
	}
	if p.Transform != nil {
		return fmt.Errorf("%w: transformed picture", ErrUnsupported)
	}
	switch p.Drawable.BitsPerPixel() {
	case 4, 8, 16, 32:
	default:
		return fmt.Errorf("%w: %d bpp", ErrUnsupported, p.Drawable.BitsPerPixel())
	}
	switch {
	case p.Format.IsColor():
	case p.Format.IsAlphaOnly() && p.Format.A() > 0 && p.Format.A() <= 8:
	default:
		return fmt.Errorf("%w: format %v", ErrUnsupported, p.Format)
	}
	return nil
}

func sample(fb []byte, p *exa.Picture, x, y int) rgba {
	pm := p.Drawable
	w, h := pm.Width(), pm.Height()
	if p.Repeat {
		if w <= 0 || h <= 0 {
			return rgba{}
		}
		x, y = wrap(x, w), wrap(y, h)
	} else if x < 0 || y < 0 || x >= w || y >= h {
		return rgba{}
	}
	return decode(pm.Pixel(fb, x, y), p.Format)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func decode(v uint32, f format.ID) rgba {
	if f.IsAlphaOnly() {
		bits := f.A()
		a := v & (1<<uint(bits) - 1)
		// Replicate the alpha bits up to 8.
		out := a << uint(8-bits)
		for n := bits; n < 8; n <<= 1 {
			out |= out >> uint(n)
		}
		return rgba{a: byte(out)}
	}
	r, g, b, a, _ := format.RGBAFromPixel(v, f)
	return rgba{byte(r >> 8), byte(g >> 8), byte(b >> 8), byte(a >> 8)}
}

func encode(c rgba, f format.ID) uint32 {
	if f.IsAlphaOnly() {
		return uint32(c.a) >> uint(8-f.A())
	}
	p, _ := format.PixelFromRGBA(uint16(c.r)*0x101, uint16(c.g)*0x101, uint16(c.b)*0x101, uint16(c.a)*0x101, f)
	return p
}
