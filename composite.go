package exa

import (
	"fmt"

	"github.com/gogpu/exa/blend"
	"github.com/gogpu/exa/format"
	"github.com/gogpu/exa/gp"
)

// Strategy is the way a composite session drives the GP.
type Strategy uint8

const (
	// StrategyMask blends a solid color through an alpha mask.
	StrategyMask Strategy = iota
	// StrategyOnePass blends the source into the destination in one
	// converting transfer.
	StrategyOnePass
	// StrategyTwoPass blends through the scratch buffer.
	StrategyTwoPass
)

func (s Strategy) String() string {
	switch s {
	case StrategyMask:
		return "Mask"
	case StrategyOnePass:
		return "OnePass"
	case StrategyTwoPass:
		return "TwoPass"
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// surface is the staged geometry of a pixmap read by the executor.
type surface struct {
	offset uint32
	pitch  int
	bpp    int
	width  int
	height int
}

func surfaceOf(p *Pixmap) surface {
	return surface{
		offset: p.Offset(),
		pitch:  p.Pitch(),
		bpp:    p.BitsPerPixel(),
		width:  p.Width(),
		height: p.Height(),
	}
}

func (s surface) at(x, y int) uint32 {
	return s.offset + uint32(s.pitch*y) + uint32(x*s.bpp/8)
}

// plan is the strategy-specific payload of a session.
type plan interface {
	strategy() Strategy
	// read is the surface the executor tiles over.
	read() surface
}

// maskPlan paints color through mask. When reverse is set the operator
// feeds from the destination, so the blend writes into target, the source
// pixmap, and color was sampled from the destination.
type maskPlan struct {
	mask    surface
	fourBPP bool
	color   uint32
	reverse bool
	target  *Pixmap
}

func (*maskPlan) strategy() Strategy { return StrategyMask }
func (p *maskPlan) read() surface    { return p.mask }

type onePassPlan struct {
	src surface
}

func (*onePassPlan) strategy() Strategy { return StrategyOnePass }
func (p *onePassPlan) read() surface    { return p.src }

type twoPassPlan struct {
	src     surface
	scratch uint32
}

func (*twoPassPlan) strategy() Strategy { return StrategyTwoPass }
func (p *twoPassPlan) read() surface    { return p.src }

// CompositeSession is a planned composite. It is created by
// PrepareComposite, drawn with Composite and finished with Done.
type CompositeSession struct {
	e      *Engine
	op     blend.Op
	src    format.Descriptor
	dst    format.Descriptor
	target *Pixmap
	repeat bool
	plan   plan
	done   bool
}

// Strategy returns the chosen strategy.
func (s *CompositeSession) Strategy() Strategy { return s.plan.strategy() }

// Op returns the operator being composited.
func (s *CompositeSession) Op() blend.Op { return s.op }

// SourceFormat returns the resolved source format.
func (s *CompositeSession) SourceFormat() format.Descriptor { return s.src }

// DestinationFormat returns the resolved destination format.
func (s *CompositeSession) DestinationFormat() format.Descriptor { return s.dst }

// Color returns the pre-sampled solid color of a masked composite, encoded
// in the format of the pixmap the blend writes.
func (s *CompositeSession) Color() (uint32, bool) {
	if p, ok := s.plan.(*maskPlan); ok {
		return p.color, true
	}
	return 0, false
}

// Done finishes the session. Drawing with it afterwards is a no-op.
func (s *CompositeSession) Done() { s.done = true }

// acceptedFilter reports whether the GP samples like filter. It only does
// point sampling; Fast, Good and Best leave the choice to the driver.
func acceptedFilter(f Filter) bool {
	switch f {
	case FilterNearest, FilterFast, FilterGood, FilterBest:
		return true
	}
	return false
}

// check applies the tests that need no format lookup.
func (e *Engine) check(op blend.Op, src, mask, dst *Picture) error {
	if src == nil || dst == nil || src.Drawable == nil || dst.Drawable == nil {
		return ErrNilPicture
	}
	if mask != nil && mask.Drawable == nil {
		return ErrNilPicture
	}
	if !op.Valid() {
		return reject(ErrUnsupportedOperator, "operator %d", uint8(op))
	}
	if blend.UsesPasses(op) {
		if mask != nil {
			return reject(ErrUnsupportedOperator, "%v with a mask", op)
		}
		if e.scratch == 0 {
			return reject(ErrUnsupportedOperator, "%v without a scratch buffer", op)
		}
	}
	if !acceptedFilter(src.Filter) {
		return reject(ErrUnsupportedTransformOrFilter, "filter %d", src.Filter)
	}
	if src.Transform != nil {
		return reject(ErrUnsupportedTransformOrFilter, "source transform")
	}
	if src.Format == format.A8 || dst.Format == format.A8 {
		return reject(ErrUnsupportedFormat, "a8 source or destination")
	}
	return nil
}

// CheckComposite reports whether op over these pictures may be
// accelerated. A true result can still be refused by PrepareComposite,
// which also looks at formats and geometry.
func (e *Engine) CheckComposite(op blend.Op, src, mask, dst *Picture) bool {
	return e.check(op, src, mask, dst) == nil
}

// PrepareComposite plans op from src through the optional mask onto dst.
// No command is submitted. Rejections wrap ErrFallback and one of the
// ErrUnsupported reasons.
//
// Masked composites read the source color from the framebuffer, so
// transfers writing it must have retired, see WaitMarker.
func (e *Engine) PrepareComposite(op blend.Op, src, mask, dst *Picture) (*CompositeSession, error) {
	if err := e.check(op, src, mask, dst); err != nil {
		return nil, err
	}

	srcFmt, ok := format.Lookup(src.Format)
	if !ok {
		return nil, reject(ErrUnsupportedFormat, "source %v", src.Format)
	}
	dstFmt, ok := format.Lookup(dst.Format)
	if !ok {
		return nil, reject(ErrUnsupportedFormat, "destination %v", dst.Format)
	}

	// A mask supplies the alpha when present. Two-pass operators get their
	// alpha through the scratch buffer, which holds the destination in the
	// source format.
	if mask == nil && !blend.UsesPasses(op) {
		if !srcFmt.HasAlpha() && blend.UsesSrcAlpha(op) {
			return nil, reject(ErrUnsupportedAlphaCombination, "%v needs source alpha, %v has none", op, src.Format)
		}
		if !dstFmt.HasAlpha() && blend.UsesDstAlpha(op) {
			return nil, reject(ErrUnsupportedAlphaCombination, "%v needs destination alpha, %v has none", op, dst.Format)
		}
	}
	if !srcFmt.HasAlpha() && dstFmt.HasAlpha() {
		return nil, reject(ErrUnsupportedAlphaCombination, "cannot add alpha from %v to %v", src.Format, dst.Format)
	}

	s := &CompositeSession{
		e:      e,
		op:     op,
		src:    srcFmt,
		dst:    dstFmt,
		target: dst.Drawable,
		repeat: src.Repeat,
	}

	if mask != nil && op != blend.Clear {
		p, err := e.planMask(op, src, mask, dst)
		if err != nil {
			return nil, err
		}
		s.plan = p
		return s, nil
	}

	if blend.UsesPasses(op) {
		s.plan = &twoPassPlan{src: surfaceOf(src.Drawable), scratch: e.scratch}
	} else {
		s.plan = &onePassPlan{src: surfaceOf(src.Drawable)}
	}
	return s, nil
}

// planMask stages a solid color painted through mask. The side feeding the
// blend, chosen by the first pass's channel selector, must be at least
// 16 bpp, and the source must be a single pixel.
func (e *Engine) planMask(op blend.Op, src, mask, dst *Picture) (*maskPlan, error) {
	if mask.Format != format.A8 && mask.Format != format.A4 {
		return nil, reject(ErrUnsupportedMask, "mask format %v", mask.Format)
	}

	reverse := blend.First(op).Channel == gp.ChannelADest
	feed := src.Drawable
	if reverse {
		feed = dst.Drawable
	}
	if feed.BitsPerPixel() < 16 {
		return nil, reject(ErrUnsupportedMask, "mask blending from %d bpp", feed.BitsPerPixel())
	}
	if src.Drawable.Width() != 1 || src.Drawable.Height() != 1 {
		return nil, reject(ErrUnsupportedMask, "source is %dx%d, not a solid color",
			src.Drawable.Width(), src.Drawable.Height())
	}
	if e.fb == nil {
		return nil, reject(ErrUnsupportedMask, "framebuffer is not mapped")
	}

	from, to := src, dst
	if reverse {
		from, to = dst, src
	}
	color, ok := format.Convert(from.Drawable.Pixel(e.fb, 0, 0), from.Format, to.Format)
	if !ok {
		return nil, reject(ErrUnsupportedFormat, "cannot sample %v into %v", from.Format, to.Format)
	}

	p := &maskPlan{
		mask:    surfaceOf(mask.Drawable),
		fourBPP: mask.Drawable.BitsPerPixel() == 4,
		color:   color,
		reverse: reverse,
	}
	if reverse {
		p.target = src.Drawable
	}
	return p, nil
}
