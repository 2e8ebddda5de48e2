// Package blend defines the Porter-Duff operators the composition engine
// accepts, how each one maps onto the graphics processor's fixed-function
// alpha blender, and a software reference for each.
//
// Operators are numbered like X Render PictOps so host values can be
// converted directly.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - X Rendering Extension protocol, "Composite" request
package blend

import "fmt"

// Op is a Porter-Duff compositing operator.
type Op uint8

const (
	Clear       Op = iota // 0
	Src                   // S
	Dst                   // D
	Over                  // S + D*(1-Sa)
	OverReverse           // S*(1-Da) + D
	In                    // S*Da
	InReverse             // D*Sa
	Out                   // S*(1-Da)
	OutReverse            // D*(1-Sa)
	Atop                  // S*Da + D*(1-Sa)
	AtopReverse           // S*(1-Da) + D*Sa
	Xor                   // S*(1-Da) + D*(1-Sa)
)

// NumOps is the number of operators the engine knows about. PictOpAdd and
// later host operators have no blender mapping and are not valid.
const NumOps = int(Xor) + 1

var opNames = [NumOps]string{
	"Clear", "Src", "Dst", "Over", "OverReverse", "In", "InReverse",
	"Out", "OutReverse", "Atop", "AtopReverse", "Xor",
}

// Valid reports whether op is a known operator.
func (op Op) Valid() bool { return int(op) < NumOps }

func (op Op) String() string {
	if op.Valid() {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

const (
	passesMask uint16 = 1<<Atop | 1<<AtopReverse | 1<<Xor

	srcAlphaMask uint16 = 1<<Over | 1<<InReverse | 1<<OutReverse |
		1<<Atop | 1<<AtopReverse | 1<<Xor

	dstAlphaMask uint16 = 1<<OverReverse | 1<<In | 1<<Out |
		1<<Atop | 1<<AtopReverse | 1<<Xor
)

// UsesPasses reports whether op needs two blender passes.
func UsesPasses(op Op) bool { return op.Valid() && passesMask>>op&1 != 0 }

// UsesSrcAlpha reports whether the result of op depends on source alpha.
func UsesSrcAlpha(op Op) bool { return op.Valid() && srcAlphaMask>>op&1 != 0 }

// UsesDstAlpha reports whether the result of op depends on destination alpha.
func UsesDstAlpha(op Op) bool { return op.Valid() && dstAlphaMask>>op&1 != 0 }
