package soft

import (
	"github.com/gogpu/exa/format"
	"github.com/gogpu/exa/gp"
)

// color is a decoded pixel with 8-bit channels.
type color struct{ r, g, b, a uint8 }

// layout describes how one side of a transfer is stored.
type layout struct {
	id    format.ID
	bytes int
	bgr   bool
}

// formatFor maps a GP layout code to the pixel format it reads.
func formatFor(f gp.SourceFormat) (format.ID, bool) {
	switch f.Layout() {
	case gp.Source8888:
		return format.A8R8G8B8, true
	case gp.Source565:
		return format.R5G6B5, true
	case gp.Source1555:
		return format.A1R5G5B5, true
	case gp.Source4444:
		return format.A4R4G4B4, true
	case gp.Source332:
		return format.R3G3B2, true
	}
	return 0, false
}

// destLayout returns the destination layout selected by SetBPP.
func destLayout(bpp int) (layout, bool) {
	var f gp.SourceFormat
	switch bpp {
	case 32:
		f = gp.Source8888
	case 16:
		f = gp.Source565
	case 15:
		f = gp.Source1555
	case 12:
		f = gp.Source4444
	case 8:
		f = gp.Source332
	default:
		return layout{}, false
	}
	id, _ := formatFor(f)
	return layout{id: id, bytes: id.BPP() / 8}, true
}

// sourceLayout returns the layout selected by SetSourceFormat.
func sourceLayout(f gp.SourceFormat) (layout, bool) {
	id, ok := formatFor(f)
	if !ok {
		return layout{}, false
	}
	return layout{id: id, bytes: id.BPP() / 8, bgr: f.IsBGR()}, true
}

func (l layout) mask() uint32 {
	if l.bytes >= 4 {
		return ^uint32(0)
	}
	return 1<<(8*uint(l.bytes)) - 1
}

func (l layout) decode(p uint32) color {
	r, g, b, a, _ := format.RGBAFromPixel(p, l.id)
	c := color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	if l.bgr {
		c.r, c.b = c.b, c.r
	}
	return c
}

func (l layout) encode(c color) uint32 {
	p, _ := format.PixelFromRGBA(uint16(c.r)*0x101, uint16(c.g)*0x101, uint16(c.b)*0x101, uint16(c.a)*0x101, l.id)
	return p
}

// load reads a little-endian pixel of n bytes at off. Reads past the end of
// the framebuffer return 0.
func load(fb []byte, off, n int) uint32 {
	if off < 0 || off+n > len(fb) {
		return 0
	}
	switch n {
	case 4:
		return uint32(fb[off]) | uint32(fb[off+1])<<8 | uint32(fb[off+2])<<16 | uint32(fb[off+3])<<24
	case 2:
		return uint32(fb[off]) | uint32(fb[off+1])<<8
	default:
		return uint32(fb[off])
	}
}

// store writes a little-endian pixel of n bytes at off. Writes past the end
// of the framebuffer are dropped.
func store(fb []byte, off, n int, p uint32) bool {
	if off < 0 || off+n > len(fb) {
		return false
	}
	switch n {
	case 4:
		fb[off] = byte(p)
		fb[off+1] = byte(p >> 8)
		fb[off+2] = byte(p >> 16)
		fb[off+3] = byte(p >> 24)
	case 2:
		fb[off] = byte(p)
		fb[off+1] = byte(p >> 8)
	default:
		fb[off] = byte(p)
	}
	return true
}
