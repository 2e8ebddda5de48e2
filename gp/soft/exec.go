package soft

import (
	"github.com/gogpu/exa/blend"
	"github.com/gogpu/exa/gp"
	"github.com/gogpu/exa/rop"
)

func (d *Device) execute(j *job) {
	dl, ok := destLayout(j.regs.bpp)
	if !ok {
		slogger().Warn("soft: transfer with unsupported depth", "kind", j.kind, "bpp", j.regs.bpp)
		return
	}
	d.blts.Add(1)

	switch j.kind {
	case gp.KindPatternFill:
		d.patternFill(j, dl)
	case gp.KindScreenToScreenBlt:
		d.screenToScreen(j, dl, dl)
	case gp.KindScreenToScreenConvert:
		sl, ok := sourceLayout(j.regs.srcFormat)
		if !ok {
			slogger().Warn("soft: convert with unsupported source format", "format", j.regs.srcFormat)
			return
		}
		d.screenToScreen(j, dl, sl)
	case gp.KindBlendMaskBlt:
		d.blendMask(j, dl)
	case gp.KindColorBitmapToScreenBlt:
		d.colorBitmap(j, dl)
	}
}

func (d *Device) write(off int, l layout, p uint32) {
	if store(d.fb, off, l.bytes, p) {
		d.pixels.Add(1)
	} else {
		d.dropped.Add(1)
	}
}

// raster combines a source pixel, already in destination encoding, with the
// pixel at off under the latched raster op.
func (d *Device) raster(r *registers, off int, l layout, src uint32) {
	dst := load(d.fb, off, l.bytes)
	d.write(off, l, rop.Apply(r.rop, r.pattern, src, dst)&l.mask())
}

func (d *Device) patternFill(j *job, dl layout) {
	r := &j.regs
	for y := 0; y < j.height; y++ {
		row := int(j.dst) + y*r.dstStride
		for x := 0; x < j.width; x++ {
			d.raster(r, row+x*dl.bytes, dl, r.source&dl.mask())
		}
	}
}

// screenToScreen walks the rectangle in the order selected by the direction
// flags, so overlapping copies read each pixel before overwriting it.
func (d *Device) screenToScreen(j *job, dl, sl layout) {
	r := &j.regs
	for i := 0; i < j.height; i++ {
		y := i
		if j.dir&gp.NegY != 0 {
			y = j.height - 1 - i
		}
		drow := int(j.dst) + y*r.dstStride
		srow := int(j.src) + y*r.srcStride
		for k := 0; k < j.width; k++ {
			x := k
			if j.dir&gp.NegX != 0 {
				x = j.width - 1 - k
			}
			doff := drow + x*dl.bytes
			sp := load(d.fb, srow+x*sl.bytes, sl.bytes)
			pre := sl.decode(sp)
			if sl != dl {
				sp = dl.encode(pre)
			}
			if r.blending {
				d.blendPixel(r, doff, dl, dl.decode(sp), pre.a)
			} else {
				d.raster(r, doff, dl, sp)
			}
		}
	}
}

func (d *Device) colorBitmap(j *job, dl layout) {
	r := &j.regs
	for y := 0; y < j.height; y++ {
		drow := int(j.dst) + y*r.dstStride
		srow := int(j.src) + y*j.pitch
		for x := 0; x < j.width; x++ {
			d.raster(r, drow+x*dl.bytes, dl, load(j.data, srow+x*dl.bytes, dl.bytes))
		}
	}
}

// blendMask blends the solid source, encoded like the destination, through
// an 8- or 4-bit mask. 4-bit masks hold the left pixel in the low nibble.
func (d *Device) blendMask(j *job, dl layout) {
	r := &j.regs
	solid := dl.decode(r.source & dl.mask())
	for y := 0; y < j.height; y++ {
		drow := int(j.dst) + y*r.dstStride
		mrow := int(j.mask) + y*j.maskStride
		for x := 0; x < j.width; x++ {
			var m uint8
			if j.fourBPP {
				v := load(d.fb, mrow+x/2, 1)
				if x&1 != 0 {
					v >>= 4
				}
				m = uint8(v&0x0f) * 0x11
			} else {
				m = uint8(load(d.fb, mrow+x, 1))
			}
			doff := drow + x*dl.bytes
			dst := dl.decode(load(d.fb, doff, dl.bytes))
			d.write(doff, dl, dl.encode(combine(j.maskOp, m, solid, dst)))
		}
	}
}

// blendPixel runs the latched alpha operation on src and the pixel at off.
// srcAlpha is the source alpha before conversion to the destination depth.
func (d *Device) blendPixel(r *registers, off int, dl layout, src color, srcAlpha uint8) {
	dst := dl.decode(load(d.fb, off, dl.bytes))
	a, b := src, dst
	if r.channel == gp.ChannelADest {
		a, b = dst, src
	}
	alpha := alphaOf(r, a, b)
	if r.mode == gp.ConvertedAlpha && r.channel == gp.ChannelASource {
		alpha = srcAlpha
	}
	out := combine(r.alphaOp, alpha, a, b)
	if r.apply&gp.ApplyRGB == 0 {
		out.r, out.g, out.b = dst.r, dst.g, dst.b
	}
	if r.apply&gp.ApplyAlpha == 0 {
		out.a = dst.a
	}
	d.write(off, dl, dl.encode(out))
}

func alphaOf(r *registers, a, b color) uint8 {
	switch r.mode {
	case gp.ChannelAAlpha, gp.ConvertedAlpha:
		return a.a
	case gp.ConstantAlpha:
		return r.alpha
	case gp.AlphaEqualsOne:
		return 0xff
	case gp.AlphaFromRGBA:
		return intensity(a)
	case gp.AlphaFromRGBB:
		return intensity(b)
	case gp.ChannelBAlpha:
		return b.a
	}
	return 0
}

func intensity(c color) uint8 {
	return uint8((uint16(c.r) + uint16(c.g) + uint16(c.b)) / 3)
}

// combine evaluates the blender arithmetic on every channel; beta is
// 1 - alpha.
func combine(op gp.AlphaOp, alpha uint8, a, b color) color {
	beta := 0xff - alpha
	ch := func(x, y uint8) uint8 {
		switch op {
		case gp.AlphaTimesA:
			return blend.MulDiv255(alpha, x)
		case gp.BetaTimesB:
			return blend.MulDiv255(beta, y)
		case gp.APlusBetaB:
			return sat(uint16(x) + uint16(blend.MulDiv255(beta, y)))
		default:
			return sat(uint16(blend.MulDiv255(alpha, x)) + uint16(blend.MulDiv255(beta, y)))
		}
	}
	return color{ch(a.r, b.r), ch(a.g, b.g), ch(a.b, b.b), ch(a.a, b.a)}
}

func sat(v uint16) uint8 {
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}
