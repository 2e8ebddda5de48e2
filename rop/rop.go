// Package rop describes the raster operations understood by the blt engine.
//
// Raster operations are ROP3 codes: an 8-bit truth table indexed by the
// pattern, source and destination bits of each pixel, with the pattern as
// the most significant selector. 0xCC copies the source, 0xF0 copies the
// pattern and 0xAA leaves the destination untouched.
//
// The host describes raster operations with X11 GX function codes (ALU).
// Resolve maps an ALU and plane mask to the ROP3 code the engine loads.
package rop

// ALU is an X11 GX function code.
type ALU uint8

// X11 GX function codes.
const (
	GXclear        ALU = iota // 0
	GXand                     // src AND dst
	GXandReverse              // src AND NOT dst
	GXcopy                    // src
	GXandInverted             // NOT src AND dst
	GXnoop                    // dst
	GXxor                     // src XOR dst
	GXor                      // src OR dst
	GXnor                     // NOT src AND NOT dst
	GXequiv                   // NOT src XOR dst
	GXinvert                  // NOT dst
	GXorReverse               // src OR NOT dst
	GXcopyInverted            // NOT src
	GXorInverted              // NOT src OR dst
	GXnand                    // NOT src OR NOT dst
	GXset                     // 1
)

// Well-known ROP3 codes.
const (
	// Copy writes the source unchanged.
	Copy uint8 = 0xCC
	// Pattern writes the pattern unchanged.
	Pattern uint8 = 0xF0
	// Noop leaves the destination unchanged.
	Noop uint8 = 0xAA
)

// FullPlaneMask selects every bit plane. Any other plane mask routes the
// operation through the plane-masked table, with the mask loaded as the
// solid pattern.
const FullPlaneMask = ^uint32(0)

// source/destination functions with the pattern ignored
var plain = [16]uint8{
	0x00, 0x88, 0x44, 0xCC, 0x22, 0xAA, 0x66, 0xEE,
	0x11, 0x99, 0x55, 0xDD, 0x33, 0xBB, 0x77, 0xFF,
}

// same functions, applied only where the pattern (plane mask) bit is set
var planeMasked = [16]uint8{
	0x0A, 0x8A, 0x4A, 0xCA, 0x2A, 0xAA, 0x6A, 0xEA,
	0x1A, 0x9A, 0x5A, 0xDA, 0x3A, 0xBA, 0x7A, 0xFA,
}

// Resolve returns the ROP3 code for alu under planemask.
func Resolve(alu ALU, planemask uint32) uint8 {
	if planemask == FullPlaneMask {
		return plain[alu&0x0f]
	}
	return planeMasked[alu&0x0f]
}

// IsPlaneMasked reports whether planemask needs the plane-masked table.
func IsPlaneMasked(planemask uint32) bool {
	return planemask != FullPlaneMask
}

// DependsOnDestination reports whether code reads the destination, that is
// whether flipping only the destination bit of some minterm changes the
// result.
func DependsOnDestination(code uint8) bool {
	return (code^(code>>1))&0x55 != 0
}

// DependsOnSource reports whether code reads the source.
func DependsOnSource(code uint8) bool {
	return (code^(code>>2))&0x33 != 0
}

// DependsOnPattern reports whether code reads the pattern.
func DependsOnPattern(code uint8) bool {
	return (code^(code>>4))&0x0F != 0
}

// Apply evaluates code bitwise over pattern, source and destination.
func Apply(code uint8, pattern, source, dest uint32) uint32 {
	var out uint32
	for minterm := uint(0); minterm < 8; minterm++ {
		if code&(1<<minterm) == 0 {
			continue
		}
		m := ^uint32(0)
		if minterm&4 != 0 {
			m &= pattern
		} else {
			m &^= pattern
		}
		if minterm&2 != 0 {
			m &= source
		} else {
			m &^= source
		}
		if minterm&1 != 0 {
			m &= dest
		} else {
			m &^= dest
		}
		out |= m
	}
	return out
}
