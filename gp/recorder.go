package gp

import (
	"fmt"
	"log/slog"
	"sync"
)

// Kind identifies a Queue method.
type Kind uint8

// Command kinds, one per Queue method.
const (
	KindDeclareBlt Kind = iota + 1
	KindSetBPP
	KindSetStrides
	KindSetRasterOp
	KindSetSolidPattern
	KindSetSolidSource
	KindSetSourceFormat
	KindSetAlphaOperation
	KindPatternFill
	KindScreenToScreenBlt
	KindScreenToScreenConvert
	KindBlendMaskBlt
	KindColorBitmapToScreenBlt
	KindWaitUntilIdle
)

var kindNames = [...]string{
	KindDeclareBlt:             "DeclareBlt",
	KindSetBPP:                 "SetBPP",
	KindSetStrides:             "SetStrides",
	KindSetRasterOp:            "SetRasterOp",
	KindSetSolidPattern:        "SetSolidPattern",
	KindSetSolidSource:         "SetSolidSource",
	KindSetSourceFormat:        "SetSourceFormat",
	KindSetAlphaOperation:      "SetAlphaOperation",
	KindPatternFill:            "PatternFill",
	KindScreenToScreenBlt:      "ScreenToScreenBlt",
	KindScreenToScreenConvert:  "ScreenToScreenConvert",
	KindBlendMaskBlt:           "BlendMaskBlt",
	KindColorBitmapToScreenBlt: "ColorBitmapToScreenBlt",
	KindWaitUntilIdle:          "WaitUntilIdle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsPrimitive reports whether k submits a transfer.
func (k Kind) IsPrimitive() bool {
	return k >= KindPatternFill && k <= KindColorBitmapToScreenBlt
}

// Command is one recorded Queue call. Only the fields of its Kind are set.
type Command struct {
	Kind Kind

	Flags BltFlags // DeclareBlt
	BPP   int      // SetBPP

	DstStride, SrcStride int // SetStrides

	Code   uint8        // SetRasterOp
	Color  uint32       // SetSolidPattern, SetSolidSource
	Source SourceFormat // SetSourceFormat

	// SetAlphaOperation; Operation is also set for BlendMaskBlt.
	Operation AlphaOp
	Mode      AlphaMode
	Channel   Channel
	Apply     ApplyScope
	Alpha     uint8

	// Primitives.
	Dst, Src      uint32
	Width, Height int
	Dir           Direction
	Mask          uint32
	MaskStride    int
	FourBPP       bool
	Data          []byte
	Pitch         int
}

// Recorder is a Queue that records every call and forwards it to an
// optional next Queue. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	next     Queue
	commands []Command
}

var _ Queue = (*Recorder)(nil)

// NewRecorder returns a Recorder forwarding to next, which may be nil.
func NewRecorder(next Queue) *Recorder {
	return &Recorder{next: next}
}

// Next returns the queue the recorder forwards to.
func (r *Recorder) Next() Queue { return r.next }

func (r *Recorder) record(c Command) {
	r.mu.Lock()
	r.commands = append(r.commands, c)
	r.mu.Unlock()
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Primitives returns the recorded transfers, in order.
func (r *Recorder) Primitives() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Command
	for _, c := range r.commands {
		if c.Kind.IsPrimitive() {
			out = append(out, c)
		}
	}
	return out
}

// Reset discards the recorded commands.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.commands = r.commands[:0]
	r.mu.Unlock()
}

// SetLogger forwards l to the next queue when it accepts a logger.
func (r *Recorder) SetLogger(l *slog.Logger) {
	if s, ok := r.next.(interface{ SetLogger(*slog.Logger) }); ok {
		s.SetLogger(l)
	}
}

func (r *Recorder) DeclareBlt(flags BltFlags) {
	r.record(Command{Kind: KindDeclareBlt, Flags: flags})
	if r.next != nil {
		r.next.DeclareBlt(flags)
	}
}

func (r *Recorder) SetBPP(bpp int) {
	r.record(Command{Kind: KindSetBPP, BPP: bpp})
	if r.next != nil {
		r.next.SetBPP(bpp)
	}
}

func (r *Recorder) SetStrides(dst, src int) {
	r.record(Command{Kind: KindSetStrides, DstStride: dst, SrcStride: src})
	if r.next != nil {
		r.next.SetStrides(dst, src)
	}
}

func (r *Recorder) SetRasterOp(code uint8) {
	r.record(Command{Kind: KindSetRasterOp, Code: code})
	if r.next != nil {
		r.next.SetRasterOp(code)
	}
}

func (r *Recorder) SetSolidPattern(color uint32) {
	r.record(Command{Kind: KindSetSolidPattern, Color: color})
	if r.next != nil {
		r.next.SetSolidPattern(color)
	}
}

func (r *Recorder) SetSolidSource(color uint32) {
	r.record(Command{Kind: KindSetSolidSource, Color: color})
	if r.next != nil {
		r.next.SetSolidSource(color)
	}
}

func (r *Recorder) SetSourceFormat(f SourceFormat) {
	r.record(Command{Kind: KindSetSourceFormat, Source: f})
	if r.next != nil {
		r.next.SetSourceFormat(f)
	}
}

func (r *Recorder) SetAlphaOperation(op AlphaOp, mode AlphaMode, ch Channel, apply ApplyScope, alpha uint8) {
	r.record(Command{
		Kind:      KindSetAlphaOperation,
		Operation: op,
		Mode:      mode,
		Channel:   ch,
		Apply:     apply,
		Alpha:     alpha,
	})
	if r.next != nil {
		r.next.SetAlphaOperation(op, mode, ch, apply, alpha)
	}
}

func (r *Recorder) PatternFill(dst uint32, width, height int) {
	r.record(Command{Kind: KindPatternFill, Dst: dst, Width: width, Height: height})
	if r.next != nil {
		r.next.PatternFill(dst, width, height)
	}
}

func (r *Recorder) ScreenToScreenBlt(dst, src uint32, width, height int, dir Direction) {
	r.record(Command{Kind: KindScreenToScreenBlt, Dst: dst, Src: src, Width: width, Height: height, Dir: dir})
	if r.next != nil {
		r.next.ScreenToScreenBlt(dst, src, width, height, dir)
	}
}

func (r *Recorder) ScreenToScreenConvert(dst, src uint32, width, height int, dir Direction) {
	r.record(Command{Kind: KindScreenToScreenConvert, Dst: dst, Src: src, Width: width, Height: height, Dir: dir})
	if r.next != nil {
		r.next.ScreenToScreenConvert(dst, src, width, height, dir)
	}
}

func (r *Recorder) BlendMaskBlt(dst, src uint32, width, height int, mask uint32, maskStride int, op AlphaOp, fourBPP bool) {
	r.record(Command{
		Kind:       KindBlendMaskBlt,
		Dst:        dst,
		Src:        src,
		Width:      width,
		Height:     height,
		Mask:       mask,
		MaskStride: maskStride,
		Operation:  op,
		FourBPP:    fourBPP,
	})
	if r.next != nil {
		r.next.BlendMaskBlt(dst, src, width, height, mask, maskStride, op, fourBPP)
	}
}

func (r *Recorder) ColorBitmapToScreenBlt(dst, srcOffset uint32, width, height int, data []byte, pitch int) {
	r.record(Command{
		Kind:   KindColorBitmapToScreenBlt,
		Dst:    dst,
		Src:    srcOffset,
		Width:  width,
		Height: height,
		Data:   append([]byte(nil), data...),
		Pitch:  pitch,
	})
	if r.next != nil {
		r.next.ColorBitmapToScreenBlt(dst, srcOffset, width, height, data, pitch)
	}
}

func (r *Recorder) WaitUntilIdle() {
	r.record(Command{Kind: KindWaitUntilIdle})
	if r.next != nil {
		r.next.WaitUntilIdle()
	}
}

// Replay issues cmds to q in order.
func Replay(q Queue, cmds []Command) {
	for i := range cmds {
		c := &cmds[i]
		switch c.Kind {
		case KindDeclareBlt:
			q.DeclareBlt(c.Flags)
		case KindSetBPP:
			q.SetBPP(c.BPP)
		case KindSetStrides:
			q.SetStrides(c.DstStride, c.SrcStride)
		case KindSetRasterOp:
			q.SetRasterOp(c.Code)
		case KindSetSolidPattern:
			q.SetSolidPattern(c.Color)
		case KindSetSolidSource:
			q.SetSolidSource(c.Color)
		case KindSetSourceFormat:
			q.SetSourceFormat(c.Source)
		case KindSetAlphaOperation:
			q.SetAlphaOperation(c.Operation, c.Mode, c.Channel, c.Apply, c.Alpha)
		case KindPatternFill:
			q.PatternFill(c.Dst, c.Width, c.Height)
		case KindScreenToScreenBlt:
			q.ScreenToScreenBlt(c.Dst, c.Src, c.Width, c.Height, c.Dir)
		case KindScreenToScreenConvert:
			q.ScreenToScreenConvert(c.Dst, c.Src, c.Width, c.Height, c.Dir)
		case KindBlendMaskBlt:
			q.BlendMaskBlt(c.Dst, c.Src, c.Width, c.Height, c.Mask, c.MaskStride, c.Operation, c.FourBPP)
		case KindColorBitmapToScreenBlt:
			q.ColorBitmapToScreenBlt(c.Dst, c.Src, c.Width, c.Height, c.Data, c.Pitch)
		case KindWaitUntilIdle:
			q.WaitUntilIdle()
		}
	}
}
