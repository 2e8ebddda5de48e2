package exa

import (
	"github.com/gogpu/exa/blend"
	"github.com/gogpu/exa/format"
	"github.com/gogpu/exa/gp"
	"github.com/gogpu/exa/rop"
)

// sourceFormat returns the source format code to load when converting from
// src to dst. The GP swaps red and blue when the BGR bit is set, so the bit
// is set exactly when the two sides disagree on channel order.
func sourceFormat(src, dst gp.SourceFormat) gp.SourceFormat {
	return src.WithBGR(src.IsBGR() != dst.IsBGR())
}

// alphaMode keeps the source alpha through a depth conversion when the
// blend reads channel A's alpha and the two formats store it differently.
func alphaMode(src, dst format.Descriptor, mode gp.AlphaMode) gp.AlphaMode {
	if mode == gp.ChannelAAlpha && src.AlphaBits != dst.AlphaBits {
		return gp.ConvertedAlpha
	}
	return mode
}

func applyScope(withAlpha bool) gp.ApplyScope {
	if withAlpha {
		return gp.ApplyAll
	}
	return gp.ApplyRGB
}

// Composite draws the w x h rectangle at (dstX, dstY), reading the source
// at (srcX, srcY) and the mask at (maskX, maskY).
//
// The operation is clamped to the size of the source, or of the mask for
// masked composites. Repeating sources are tiled left to right, top to
// bottom until the rectangle is covered; otherwise only the clamped
// rectangle is drawn.
func (s *CompositeSession) Composite(srcX, srcY, maskX, maskY, dstX, dstY, w, h int) {
	if s.done {
		Logger().Warn("exa: Composite on a finished session", "op", s.op)
		return
	}
	read := s.plan.read()
	if w <= 0 || h <= 0 || read.width <= 0 || read.height <= 0 {
		return
	}

	var srcOffset uint32
	if _, ok := s.plan.(*maskPlan); ok {
		srcOffset = read.at(maskX, maskY)
	} else {
		srcOffset = read.at(srcX, srcY)
	}

	opX, opY := dstX, dstY
	opW, opH := min(w, read.width), min(h, read.height)
	for {
		s.tile(opX, opY, srcOffset, opW, opH)

		if !s.repeat {
			break
		}
		opX += opW
		if opX >= dstX+w {
			opX = dstX
			opY += opH
			if opY >= dstY+h {
				break
			}
		}
		opW = min(dstX+w-opX, read.width)
		opH = min(dstY+h-opY, read.height)
	}
}

func (s *CompositeSession) tile(x, y int, srcOffset uint32, w, h int) {
	switch p := s.plan.(type) {
	case *maskPlan:
		target := s.target
		if p.reverse {
			target = p.target
		}
		s.compositeMask(p, target, target.PixelOffset(x, y), srcOffset, w, h)
	case *onePassPlan:
		s.compositeOnePass(p, s.target.PixelOffset(x, y), srcOffset, w, h)
	case *twoPassPlan:
		s.compositeTwoPass(p, s.target.PixelOffset(x, y), srcOffset, w, h)
	}
}

// compositeMask submits one masked blend of the staged color into target.
func (s *CompositeSession) compositeMask(p *maskPlan, target *Pixmap, dstOffset, maskOffset uint32, w, h int) {
	q := s.e.q
	written := s.dst
	if p.reverse {
		written = s.src
	}

	q.DeclareBlt(0)
	q.SetSourceFormat(s.src.Source)
	q.SetStrides(target.Pitch(), p.mask.pitch)
	q.SetBPP(written.Source.BPP())
	q.SetSolidSource(p.color)
	q.BlendMaskBlt(dstOffset, 0, w, h, maskOffset, p.mask.pitch, blend.First(s.op).Operation, p.fourBPP)
}

// compositeOnePass submits one converting blend from the source.
func (s *CompositeSession) compositeOnePass(p *onePassPlan, dstOffset, srcOffset uint32, w, h int) {
	q := s.e.q
	pass := blend.First(s.op)

	q.DeclareBlt(0)
	q.SetBPP(s.dst.Source.BPP())
	q.SetStrides(s.target.Pitch(), p.src.pitch)
	q.SetSourceFormat(sourceFormat(s.src.Source, s.dst.Source))
	q.SetAlphaOperation(pass.Operation, alphaMode(s.src, s.dst, pass.Mode), pass.Channel,
		applyScope(s.src.HasAlpha() && s.dst.HasAlpha()), 0)
	q.ScreenToScreenConvert(dstOffset, srcOffset, w, h, 0)
}

// compositeTwoPass copies the destination into the scratch buffer in the
// source format, blends the source into it with the first pass, then
// blends it back into the destination with the second. The scratch rows
// use the source pitch.
func (s *CompositeSession) compositeTwoPass(p *twoPassPlan, dstOffset, srcOffset uint32, w, h int) {
	q := s.e.q
	first, second := blend.First(s.op), blend.Second(s.op)
	srcBPP := s.src.Source.BPP()

	// The scratch buffer may still be read by the previous composite.
	q.WaitUntilIdle()

	q.DeclareBlt(0)
	q.SetBPP(srcBPP)
	q.SetSourceFormat(sourceFormat(s.dst.Source, s.src.Source))
	q.SetRasterOp(rop.Copy)
	q.SetStrides(p.src.pitch, s.target.Pitch())
	q.ScreenToScreenConvert(p.scratch, dstOffset, w, h, 0)

	q.DeclareBlt(gp.BltHazard)
	q.SetBPP(srcBPP)
	q.SetSourceFormat(s.src.Source)
	q.SetStrides(p.src.pitch, p.src.pitch)
	q.SetAlphaOperation(first.Operation, first.Mode, first.Channel, applyScope(s.src.HasAlpha()), 0)
	q.ScreenToScreenBlt(p.scratch, srcOffset, w, h, 0)

	q.DeclareBlt(gp.BltHazard)
	q.SetBPP(s.dst.Source.BPP())
	q.SetSourceFormat(sourceFormat(s.src.Source, s.dst.Source))
	q.SetStrides(s.target.Pitch(), p.src.pitch)
	q.SetAlphaOperation(second.Operation, alphaMode(s.src, s.dst, second.Mode), second.Channel,
		applyScope(s.dst.HasAlpha()), 0)
	q.ScreenToScreenConvert(dstOffset, p.scratch, w, h, 0)
}
