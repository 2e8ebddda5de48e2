package exa

import (
	"github.com/gogpu/exa/gp"
	"github.com/gogpu/exa/rop"
)

// CopySession copies rectangles from one pixmap to another.
type CopySession struct {
	e    *Engine
	src  *Pixmap
	dst  *Pixmap
	code uint8
	done bool
}

// PrepareCopy loads the raster op for alu under planemask. The direction of
// each copy is derived from its coordinates, so dx and dy are advisory.
func (e *Engine) PrepareCopy(src, dst *Pixmap, dx, dy int, alu rop.ALU, planemask uint32) (*CopySession, error) {
	if src == nil || dst == nil {
		return nil, ErrNilPicture
	}
	if !depthSupported(dst.BitsPerPixel()) || src.BitsPerPixel() != dst.BitsPerPixel() {
		return nil, reject(ErrUnsupportedFormat, "copy from %d bpp to %d bpp",
			src.BitsPerPixel(), dst.BitsPerPixel())
	}
	code, err := resolveALU(alu, planemask)
	if err != nil {
		return nil, err
	}

	e.q.DeclareBlt(0)
	e.q.SetBPP(dst.BitsPerPixel())
	e.q.SetRasterOp(code)
	if rop.IsPlaneMasked(planemask) {
		e.q.SetSolidPattern(planemask)
	}
	e.q.SetStrides(dst.Pitch(), src.Pitch())
	return &CopySession{e: e, src: src, dst: dst, code: code}, nil
}

// Copy copies a w x h rectangle from (srcX, srcY) to (dstX, dstY). Copies
// to the right or downwards walk backwards so overlapping rectangles in
// the same pixmap come out right.
func (s *CopySession) Copy(srcX, srcY, dstX, dstY, w, h int) {
	if s.done {
		Logger().Warn("exa: Copy on a finished session")
		return
	}
	if w <= 0 || h <= 0 {
		return
	}
	s.e.q.DeclareBlt(s.e.hazard.Copy(srcX, srcY, dstX, dstY, w, h, s.code))

	var dir gp.Direction
	if dstX > srcX {
		dir |= gp.NegX
	}
	if dstY > srcY {
		dir |= gp.NegY
	}
	s.e.q.ScreenToScreenBlt(s.dst.PixelOffset(dstX, dstY), s.src.PixelOffset(srcX, srcY), w, h, dir)
}

// Done finishes the session.
func (s *CopySession) Done() { s.done = true }
