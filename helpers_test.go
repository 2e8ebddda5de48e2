package exa

import (
	"testing"

	"github.com/gogpu/exa/format"
	"github.com/gogpu/exa/gp"
)

// testFB is the framebuffer size used by engine tests.
const testFB = 1 << 16

// newTestEngine returns an engine recording into a fresh Recorder.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *gp.Recorder, []byte) {
	t.Helper()
	fb := make([]byte, testFB)
	rec := gp.NewRecorder(nil)
	e := New(rec, append([]Option{WithFramebuffer(fb)}, opts...)...)
	t.Cleanup(e.Close)
	return e, rec, fb
}

// pixmapAt lays out a w x h pixmap of f at offset with rows padded to
// 8 bytes.
func pixmapAt(offset uint32, w, h int, f format.ID) *Pixmap {
	bpp := f.BPP()
	pitch := (w*bpp + 63) / 64 * 8
	return NewPixmap(offset, w, h, bpp, pitch, f)
}

func pictureAt(offset uint32, w, h int, f format.ID) *Picture {
	return NewPicture(pixmapAt(offset, w, h, f))
}

// kinds returns the kinds of cmds.
func kinds(cmds []gp.Command) []gp.Kind {
	out := make([]gp.Kind, len(cmds))
	for i, c := range cmds {
		out[i] = c.Kind
	}
	return out
}

func kindsEqual(a, b []gp.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// last returns the last recorded command of kind k before index end.
func last(cmds []gp.Command, k gp.Kind, end int) (gp.Command, bool) {
	for i := end - 1; i >= 0; i-- {
		if cmds[i].Kind == k {
			return cmds[i], true
		}
	}
	return gp.Command{}, false
}

// indexOf returns the index of the n-th primitive in cmds.
func indexOf(cmds []gp.Command, n int) int {
	for i, c := range cmds {
		if c.Kind.IsPrimitive() {
			if n == 0 {
				return i
			}
			n--
		}
	}
	return -1
}
