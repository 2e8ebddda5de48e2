package format

// layout holds channel widths and shifts of a color format.
type layout struct {
	rbits, gbits, bbits, abits     int
	rshift, gshift, bshift, ashift int
}

func layoutOf(f ID) (layout, bool) {
	if !f.IsColor() {
		return layout{}, false
	}
	l := layout{rbits: f.R(), gbits: f.G(), bbits: f.B(), abits: f.A()}
	if f.Type() == TypeARGB {
		l.bshift = 0
		l.gshift = l.bbits
		l.rshift = l.gshift + l.gbits
		l.ashift = l.rshift + l.rbits
	} else {
		l.rshift = 0
		l.gshift = l.rbits
		l.bshift = l.gshift + l.gbits
		l.ashift = l.bshift + l.bbits
	}
	return l, true
}

// expand extracts a channel and widens it to 16 bits by replicating its top
// bits downward.
func expand(pixel uint32, shift, bits int) uint16 {
	if bits == 0 {
		return 0
	}
	v := uint32(pixel>>uint(shift)) & (1<<uint(bits) - 1)
	v <<= uint(16 - bits)
	for n := bits; n < 16; n <<= 1 {
		v |= v >> uint(n)
	}
	return uint16(v)
}

// narrow truncates a 16-bit channel to bits and moves it into place.
func narrow(c uint16, shift, bits int) uint32 {
	if bits == 0 {
		return 0
	}
	return uint32(c>>uint(16-bits)) << uint(shift)
}

// RGBAFromPixel decodes pixel, stored in format f, into 16-bit channels.
// Formats without alpha decode as opaque. ok is false for formats that are
// not ARGB or ABGR.
func RGBAFromPixel(pixel uint32, f ID) (r, g, b, a uint16, ok bool) {
	l, ok := layoutOf(f)
	if !ok {
		return 0, 0, 0, 0, false
	}
	r = expand(pixel, l.rshift, l.rbits)
	g = expand(pixel, l.gshift, l.gbits)
	b = expand(pixel, l.bshift, l.bbits)
	if l.abits != 0 {
		a = expand(pixel, l.ashift, l.abits)
	} else {
		a = 0xffff
	}
	return r, g, b, a, true
}

// PixelFromRGBA encodes 16-bit channels as a pixel of format f, keeping the
// top bits of each channel.
func PixelFromRGBA(r, g, b, a uint16, f ID) (uint32, bool) {
	l, ok := layoutOf(f)
	if !ok {
		return 0, false
	}
	return narrow(b, l.bshift, l.bbits) |
		narrow(r, l.rshift, l.rbits) |
		narrow(g, l.gshift, l.gbits) |
		narrow(a, l.ashift, l.abits), true
}

// Convert re-encodes pixel from format from into format to.
func Convert(pixel uint32, from, to ID) (uint32, bool) {
	r, g, b, a, ok := RGBAFromPixel(pixel, from)
	if !ok {
		return 0, false
	}
	return PixelFromRGBA(r, g, b, a, to)
}
