// Package format describes the pixel formats the composition engine can read
// and write.
//
// Formats are identified by PICT-style packed ids, as used by the X Render
// extension:
//
//	bpp<<24 | type<<16 | a<<12 | r<<8 | g<<4 | b
//
// where type is one of the Type constants and a, r, g, b are channel widths
// in bits.
package format

import "fmt"

// ID is a packed pixel format id.
type ID uint32

// Type is the channel layout family of a format.
type Type uint8

// Channel layout families.
const (
	TypeOther Type = iota
	TypeA
	TypeARGB
	TypeABGR
	TypeColor
	TypeGray
)

// Make packs a format id.
func Make(bpp int, typ Type, a, r, g, b int) ID {
	return ID(bpp<<24 | int(typ)<<16 | a<<12 | r<<8 | g<<4 | b)
}

// Formats known to the engine or its callers.
var (
	A8R8G8B8 = Make(32, TypeARGB, 8, 8, 8, 8)
	X8R8G8B8 = Make(32, TypeARGB, 0, 8, 8, 8)
	A8B8G8R8 = Make(32, TypeABGR, 8, 8, 8, 8)
	X8B8G8R8 = Make(32, TypeABGR, 0, 8, 8, 8)
	A4R4G4B4 = Make(16, TypeARGB, 4, 4, 4, 4)
	A1R5G5B5 = Make(16, TypeARGB, 1, 5, 5, 5)
	R5G6B5   = Make(16, TypeARGB, 0, 5, 6, 5)
	B5G6R5   = Make(16, TypeABGR, 0, 5, 6, 5)
	X1R5G5B5 = Make(16, TypeARGB, 0, 5, 5, 5)
	X1B5G5R5 = Make(16, TypeABGR, 0, 5, 5, 5)
	R3G3B2   = Make(8, TypeARGB, 0, 3, 3, 2)
	A8       = Make(8, TypeA, 8, 0, 0, 0)
	A4       = Make(4, TypeA, 4, 0, 0, 0)
	A1       = Make(1, TypeA, 1, 0, 0, 0)
)

// BPP returns the bits per pixel of f.
func (f ID) BPP() int { return int(f>>24) & 0xff }

// Type returns the layout family of f.
func (f ID) Type() Type { return Type(f>>16) & 0xff }

// A returns the alpha width of f.
func (f ID) A() int { return int(f>>12) & 0x0f }

// R returns the red width of f.
func (f ID) R() int { return int(f>>8) & 0x0f }

// G returns the green width of f.
func (f ID) G() int { return int(f>>4) & 0x0f }

// B returns the blue width of f.
func (f ID) B() int { return int(f) & 0x0f }

// IsColor reports whether f carries RGB channels in ARGB or ABGR order.
func (f ID) IsColor() bool {
	t := f.Type()
	return t == TypeARGB || t == TypeABGR
}

// IsAlphaOnly reports whether f is an alpha-only (mask) format.
func (f ID) IsAlphaOnly() bool { return f.Type() == TypeA }

func (f ID) String() string {
	switch f {
	case A8R8G8B8:
		return "a8r8g8b8"
	case X8R8G8B8:
		return "x8r8g8b8"
	case A8B8G8R8:
		return "a8b8g8r8"
	case X8B8G8R8:
		return "x8b8g8r8"
	case A4R4G4B4:
		return "a4r4g4b4"
	case A1R5G5B5:
		return "a1r5g5b5"
	case R5G6B5:
		return "r5g6b5"
	case B5G6R5:
		return "b5g6r5"
	case X1R5G5B5:
		return "x1r5g5b5"
	case X1B5G5R5:
		return "x1b5g5r5"
	case R3G3B2:
		return "r3g3b2"
	case A8:
		return "a8"
	case A4:
		return "a4"
	case A1:
		return "a1"
	}
	return fmt.Sprintf("format(%#08x)", uint32(f))
}
