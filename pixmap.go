package exa

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/exa/format"
)

// Pixmap is a rectangle of pixels resident in the framebuffer.
type Pixmap struct {
	offset uint32
	width  int
	height int
	bpp    int
	pitch  int
	format format.ID
}

var _ gpucontext.Texture = (*Pixmap)(nil)

// NewPixmap describes a pixmap at offset in the framebuffer. bpp is the
// storage depth in bits (4, 8, 16 or 32) and pitch the row stride in bytes.
func NewPixmap(offset uint32, width, height, bpp, pitch int, f format.ID) *Pixmap {
	return &Pixmap{
		offset: offset,
		width:  width,
		height: height,
		bpp:    bpp,
		pitch:  pitch,
		format: f,
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Offset returns the framebuffer offset of the first pixel.
func (p *Pixmap) Offset() uint32 { return p.offset }

// Pitch returns the row stride in bytes.
func (p *Pixmap) Pitch() int { return p.pitch }

// BitsPerPixel returns the storage depth.
func (p *Pixmap) BitsPerPixel() int { return p.bpp }

// Format returns the pixel format of the backing store.
func (p *Pixmap) Format() format.ID { return p.format }

// Size returns the number of framebuffer bytes the pixmap spans.
func (p *Pixmap) Size() int { return p.pitch * p.height }

// PixelOffset returns the framebuffer offset of pixel (x, y). For 4-bit
// pixmaps it is the byte holding the pixel.
func (p *Pixmap) PixelOffset(x, y int) uint32 {
	return p.offset + uint32(p.pitch*y) + uint32(x*p.bpp/8)
}

// Pixel reads pixel (x, y) from fb. Out-of-range reads return 0.
// 4-bit pixmaps hold the left pixel of each byte in the low nibble.
func (p *Pixmap) Pixel(fb []byte, x, y int) uint32 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}
	off := int(p.PixelOffset(x, y))
	n := max(p.bpp/8, 1)
	if off+n > len(fb) {
		return 0
	}
	switch p.bpp {
	case 32:
		return binary.LittleEndian.Uint32(fb[off:])
	case 16:
		return uint32(binary.LittleEndian.Uint16(fb[off:]))
	case 8:
		return uint32(fb[off])
	case 4:
		return uint32(fb[off]>>(4*uint(x&1))) & 0x0f
	}
	return 0
}

// SetPixel writes pixel (x, y) to fb. Out-of-range writes are ignored.
func (p *Pixmap) SetPixel(fb []byte, x, y int, v uint32) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	off := int(p.PixelOffset(x, y))
	n := max(p.bpp/8, 1)
	if off+n > len(fb) {
		return
	}
	switch p.bpp {
	case 32:
		binary.LittleEndian.PutUint32(fb[off:], v)
	case 16:
		binary.LittleEndian.PutUint16(fb[off:], uint16(v))
	case 8:
		fb[off] = byte(v)
	case 4:
		shift := 4 * uint(x&1)
		fb[off] = fb[off]&^(0x0f<<shift) | byte(v&0x0f)<<shift
	}
}

// Fill sets every pixel of p in fb to v.
func (p *Pixmap) Fill(fb []byte, v uint32) {
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			p.SetPixel(fb, x, y, v)
		}
	}
}

// ToImage decodes the pixmap from fb. Alpha-only formats decode as black
// with that alpha; formats without alpha decode as opaque.
func (p *Pixmap) ToImage(fb []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			v := p.Pixel(fb, x, y)
			if p.format.IsAlphaOnly() {
				a := alphaOnly(v, p.format.A())
				img.SetRGBA(x, y, color.RGBA{A: a})
				continue
			}
			r, g, b, a, ok := format.RGBAFromPixel(v, p.format)
			if !ok {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}
	return img
}

// alphaOnly widens an alpha value of bits to 8 bits.
func alphaOnly(v uint32, bits int) uint8 {
	switch bits {
	case 8:
		return uint8(v)
	case 4:
		return uint8(v&0x0f) * 0x11
	case 1:
		return uint8(v&1) * 0xff
	}
	return 0
}

// Filter is a picture sampling filter.
type Filter uint8

// Sampling filters, numbered as in the X Render extension.
const (
	FilterNearest Filter = iota
	FilterBilinear
	FilterFast
	FilterGood
	FilterBest
	FilterConvolution
)

// Transform is a projective picture transform, row-major.
type Transform [3][3]float64

// Picture is a pixmap as seen by a composite.
type Picture struct {
	Drawable *Pixmap
	Format   format.ID
	Repeat   bool
	Filter   Filter

	// Transform is nil for the identity.
	Transform *Transform
}

// NewPicture returns an untransformed, non-repeating picture of p in its
// own format.
func NewPicture(p *Pixmap) *Picture {
	return &Picture{Drawable: p, Format: p.Format()}
}
