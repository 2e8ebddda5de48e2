// Package gp defines the command interface of the graphics processor (GP),
// the asynchronous block-transfer engine that executes fills, copies and
// alpha blends against the shared framebuffer.
//
// The engine talks to the device only through Queue. Register state set by
// the Set* methods persists until it is changed; DeclareBlt starts a new
// transfer and the primitive methods (PatternFill, ScreenToScreenBlt,
// ScreenToScreenConvert, BlendMaskBlt, ColorBitmapToScreenBlt) submit it.
// Submission never blocks. WaitUntilIdle is the only synchronization point.
//
// Backends are selected by name through the package registry, see Register
// and Open.
package gp

// BltFlags qualify a declared transfer.
type BltFlags uint32

const (
	// BltHazard makes the transfer wait for the previous one to retire
	// instead of prefetching memory it may still be writing.
	BltHazard BltFlags = 1 << 2
)

// Direction selects the walk order of a screen-to-screen transfer.
type Direction uint32

const (
	// NegX walks each row right to left.
	NegX Direction = 1 << 0
	// NegY walks rows bottom to top.
	NegY Direction = 1 << 1
)

// SourceFormat is the GP encoding of a source pixel layout.
type SourceFormat uint8

// Source formats. The BGR variants carry SourceBGR.
const (
	Source332      SourceFormat = 0x00
	Source4444     SourceFormat = 0x04
	Source1555     SourceFormat = 0x05
	Source565      SourceFormat = 0x06
	Source8888     SourceFormat = 0x08
	Source12BPPBGR SourceFormat = 0x14
	Source15BPPBGR SourceFormat = 0x15
	Source16BPPBGR SourceFormat = 0x16
	Source32BPPBGR SourceFormat = 0x18

	// SourceBGR swaps red and blue relative to the destination.
	SourceBGR SourceFormat = 0x10
)

// IsBGR reports whether f has the BGR bit set.
func (f SourceFormat) IsBGR() bool { return f&SourceBGR != 0 }

// WithBGR returns f with the BGR bit set or cleared.
func (f SourceFormat) WithBGR(on bool) SourceFormat {
	if on {
		return f | SourceBGR
	}
	return f &^ SourceBGR
}

// Layout returns f without the BGR bit.
func (f SourceFormat) Layout() SourceFormat { return f &^ SourceBGR }

// BPP returns the value SetBPP expects for a destination in layout f.
// 4444 and 1555 are distinguished from 565 by the depths 12 and 15.
func (f SourceFormat) BPP() int {
	switch f.Layout() {
	case Source8888:
		return 32
	case Source4444:
		return 12
	case Source565:
		return 16
	case Source1555:
		return 15
	case Source332:
		return 8
	}
	return 0
}

// AlphaOp is the arithmetic of an alpha blend. A and B are the two channels
// selected by Channel, alpha comes from AlphaMode and beta is 1 - alpha.
type AlphaOp uint8

const (
	AlphaTimesA     AlphaOp = iota // alpha*A
	BetaTimesB                     // beta*B
	APlusBetaB                     // A + beta*B
	AlphaAPlusBetaB                // alpha*A + beta*B
)

// AlphaMode selects where alpha comes from.
type AlphaMode uint8

const (
	ChannelAAlpha  AlphaMode = iota // alpha of channel A
	ConstantAlpha                   // the constant passed to SetAlphaOperation
	AlphaEqualsOne                  // 1
	AlphaFromRGBA                   // RGB intensity of channel A
	AlphaFromRGBB                   // RGB intensity of channel B
	ConvertedAlpha                  // channel A alpha captured before format conversion
	ChannelBAlpha                   // alpha of channel B
)

// Channel selects which operand plays channel A.
type Channel uint8

const (
	ChannelASource Channel = iota // A is the source, B the destination
	ChannelADest                  // A is the destination, B the source
)

// ApplyScope limits which channels a blend writes.
type ApplyScope uint8

const (
	ApplyRGB   ApplyScope = 1
	ApplyAlpha ApplyScope = 2
	ApplyAll   ApplyScope = ApplyRGB | ApplyAlpha
)

// Queue is the GP command queue.
//
// Offsets are byte offsets into the framebuffer, strides are bytes per row
// and sizes are in pixels. Implementations must execute transfers in
// submission order; BltHazard tells them when a transfer reads memory the
// previous one may still be writing.
type Queue interface {
	// DeclareBlt starts a new transfer.
	DeclareBlt(flags BltFlags)

	// SetBPP sets the destination depth: 32, 16, 15, 12 or 8.
	SetBPP(bpp int)

	// SetStrides sets the destination and source strides.
	SetStrides(dst, src int)

	// SetRasterOp selects a ROP3 code and disables alpha blending.
	SetRasterOp(code uint8)

	// SetSolidPattern loads a solid pattern color.
	SetSolidPattern(color uint32)

	// SetSolidSource loads a solid source color.
	SetSolidSource(color uint32)

	// SetSourceFormat sets the source pixel layout for conversions.
	SetSourceFormat(f SourceFormat)

	// SetAlphaOperation selects an alpha blend and disables the raster op.
	SetAlphaOperation(op AlphaOp, mode AlphaMode, ch Channel, apply ApplyScope, alpha uint8)

	// PatternFill fills a rectangle with the current raster op.
	PatternFill(dst uint32, width, height int)

	// ScreenToScreenBlt copies within the framebuffer at the destination depth.
	ScreenToScreenBlt(dst, src uint32, width, height int, dir Direction)

	// ScreenToScreenConvert copies within the framebuffer, converting from
	// the source format to the destination depth.
	ScreenToScreenConvert(dst, src uint32, width, height int, dir Direction)

	// BlendMaskBlt blends the solid source into the destination using a
	// 4- or 8-bit alpha mask as per-pixel alpha.
	BlendMaskBlt(dst, src uint32, width, height int, mask uint32, maskStride int, op AlphaOp, fourBPP bool)

	// ColorBitmapToScreenBlt copies host memory into the framebuffer.
	ColorBitmapToScreenBlt(dst, srcOffset uint32, width, height int, data []byte, pitch int)

	// WaitUntilIdle blocks until every submitted transfer has retired.
	WaitUntilIdle()
}
