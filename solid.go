package exa

import "github.com/gogpu/exa/rop"

// SolidSession fills rectangles of one pixmap with a solid color.
type SolidSession struct {
	e    *Engine
	dst  *Pixmap
	code uint8
	done bool
}

// resolveALU validates alu and returns the ROP3 code for it.
func resolveALU(alu rop.ALU, planemask uint32) (uint8, error) {
	if alu > rop.GXset {
		return 0, reject(ErrUnsupportedOperator, "alu %d", alu)
	}
	return rop.Resolve(alu, planemask), nil
}

// PrepareSolid loads the raster op for alu under planemask and the fill
// color fg. Plane-masked fills load planemask as the solid pattern.
func (e *Engine) PrepareSolid(dst *Pixmap, alu rop.ALU, planemask, fg uint32) (*SolidSession, error) {
	if dst == nil {
		return nil, ErrNilPicture
	}
	if !depthSupported(dst.BitsPerPixel()) {
		return nil, reject(ErrUnsupportedFormat, "fill of %d bpp", dst.BitsPerPixel())
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
	e.q.SetSolidSource(fg)
	e.q.SetStrides(dst.Pitch(), dst.Pitch())
	return &SolidSession{e: e, dst: dst, code: code}, nil
}

// Solid fills the rectangle from (x1, y1) inclusive to (x2, y2) exclusive.
func (s *SolidSession) Solid(x1, y1, x2, y2 int) {
	if s.done {
		Logger().Warn("exa: Solid on a finished session")
		return
	}
	w, h := x2-x1, y2-y1
	if w <= 0 || h <= 0 {
		return
	}
	s.e.q.DeclareBlt(s.e.hazard.Fill(x1, y1, w, h, s.code))
	s.e.q.PatternFill(s.dst.PixelOffset(x1, y1), w, h)
}

// Done finishes the session.
func (s *SolidSession) Done() { s.done = true }
