package exa

import (
	"github.com/gogpu/exa/blend"
	"github.com/gogpu/exa/rop"
)

// Driver is the set of acceleration hooks the host windowing system calls.
//
// Every Prepare method either returns a session, or an error wrapping
// ErrFallback, in which case the host performs the operation in software.
// Sessions are drawn with one or more calls and finished with Done.
type Driver interface {
	// CheckComposite reports whether a composite may be accelerated,
	// judging operator, filters, transforms and formats only.
	CheckComposite(op blend.Op, src, mask, dst *Picture) bool

	// PrepareComposite plans a composite; mask may be nil.
	PrepareComposite(op blend.Op, src, mask, dst *Picture) (*CompositeSession, error)

	// PrepareSolid sets up solid fills of dst with fg.
	PrepareSolid(dst *Pixmap, alu rop.ALU, planemask, fg uint32) (*SolidSession, error)

	// PrepareCopy sets up copies from src to dst. dx and dy give the sign
	// of the overall copy direction.
	PrepareCopy(src, dst *Pixmap, dx, dy int, alu rop.ALU, planemask uint32) (*CopySession, error)

	// UploadToScreen copies host memory into a rectangle of dst.
	UploadToScreen(dst *Pixmap, x, y, w, h int, src []byte, srcPitch int) error

	// WaitMarker blocks until the GP has retired the work before marker.
	WaitMarker(marker int)
}

var _ Driver = (*Engine)(nil)
