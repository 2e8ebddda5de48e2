// Package hazard decides when a new GP transfer must wait for the previous
// one to retire.
//
// The GP prefetches the memory a transfer reads while the previous transfer
// is still writing. A Tracker remembers the rectangle most recently written
// and flags a new fill or copy as hazardous when its raster op reads memory
// that may overlap it. The test is deliberately coarse: one rectangle, no
// queue depth, no exact address ranges.
//
// Coordinates are pixmap-local, the same values the caller passes to the
// fill or copy hook.
package hazard

import (
	"github.com/gogpu/exa/gp"
	"github.com/gogpu/exa/rop"
)

// Tracker is not safe for concurrent use. The zero value has nothing live.
type Tracker struct {
	x0, y0, x1, y1 int
	live           bool
}

// disjoint reports whether [x0,x1)x[y0,y1) misses the live rectangle.
func (t *Tracker) disjoint(x0, y0, x1, y1 int) bool {
	if !t.live {
		return true
	}
	return x0 >= t.x1 || y0 >= t.y1 || x1 <= t.x0 || y1 <= t.y0
}

func (t *Tracker) remember(x0, y0, x1, y1 int) {
	t.x0, t.y0, t.x1, t.y1 = x0, y0, x1, y1
	t.live = true
}

// Fill returns the flags for a pattern fill of w x h pixels at (x0, y0)
// with raster op code, and records the rectangle.
func (t *Tracker) Fill(x0, y0, w, h int, code uint8) gp.BltFlags {
	x1, y1 := x0+w, y0+h

	var flags gp.BltFlags
	if rop.DependsOnDestination(code) && !t.disjoint(x0, y0, x1, y1) {
		flags = gp.BltHazard
	}
	t.remember(x0, y0, x1, y1)
	return flags
}

// Copy returns the flags for a screen-to-screen copy of w x h pixels from
// (srcX, srcY) to (dstX, dstY) with raster op code, and records the
// destination rectangle.
func (t *Tracker) Copy(srcX, srcY, dstX, dstY, w, h int, code uint8) gp.BltFlags {
	dx1, dy1 := dstX+w, dstY+h

	dstClear := !rop.DependsOnDestination(code) || t.disjoint(dstX, dstY, dx1, dy1)
	srcClear := !rop.DependsOnSource(code) || t.disjoint(srcX, srcY, srcX+w, srcY+h)

	var flags gp.BltFlags
	if !dstClear || !srcClear {
		flags = gp.BltHazard
	}
	t.remember(dstX, dstY, dx1, dy1)
	return flags
}

