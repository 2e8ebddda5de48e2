package exa

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/exa/format"
	"github.com/gogpu/exa/gp"
	"github.com/gogpu/exa/rop"
)

func TestPrepareSolid(t *testing.T) {
	tests := []struct {
		name      string
		alu       rop.ALU
		planemask uint32
		kinds     []gp.Kind
		code      uint8
	}{
		{
			name:      "copy",
			alu:       rop.GXcopy,
			planemask: rop.FullPlaneMask,
			kinds: []gp.Kind{
				gp.KindDeclareBlt, gp.KindSetBPP, gp.KindSetRasterOp,
				gp.KindSetSolidSource, gp.KindSetStrides,
			},
			code: 0xCC,
		},
		{
			name:      "plane masked copy",
			alu:       rop.GXcopy,
			planemask: 0x00FFFFFF,
			kinds: []gp.Kind{
				gp.KindDeclareBlt, gp.KindSetBPP, gp.KindSetRasterOp, gp.KindSetSolidPattern,
				gp.KindSetSolidSource, gp.KindSetStrides,
			},
			code: 0xCA,
		},
		{
			name:      "xor",
			alu:       rop.GXxor,
			planemask: rop.FullPlaneMask,
			kinds: []gp.Kind{
				gp.KindDeclareBlt, gp.KindSetBPP, gp.KindSetRasterOp,
				gp.KindSetSolidSource, gp.KindSetStrides,
			},
			code: 0x66,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec, _ := newTestEngine(t)
			dst := pixmapAt(0x1000, 16, 16, format.A8R8G8B8)

			s, err := e.PrepareSolid(dst, tt.alu, tt.planemask, 0xFF00FF00)
			if err != nil {
				t.Fatalf("PrepareSolid() = %v", err)
			}
			s.Done()

			cmds := rec.Commands()
			if got := kinds(cmds); !kindsEqual(got, tt.kinds) {
				t.Fatalf("commands = %v, want %v", got, tt.kinds)
			}
			end := len(cmds)
			if c, _ := last(cmds, gp.KindSetBPP, end); c.BPP != 32 {
				t.Errorf("SetBPP = %d, want 32", c.BPP)
			}
			if c, _ := last(cmds, gp.KindSetRasterOp, end); c.Code != tt.code {
				t.Errorf("SetRasterOp = %#x, want %#x", c.Code, tt.code)
			}
			if c, _ := last(cmds, gp.KindSetSolidSource, end); c.Color != 0xFF00FF00 {
				t.Errorf("SetSolidSource = %#x, want 0xff00ff00", c.Color)
			}
			if c, ok := last(cmds, gp.KindSetSolidPattern, end); ok && c.Color != tt.planemask {
				t.Errorf("SetSolidPattern = %#x, want %#x", c.Color, tt.planemask)
			}
			if c, _ := last(cmds, gp.KindSetStrides, end); c.DstStride != 64 || c.SrcStride != 64 {
				t.Errorf("SetStrides = (%d, %d), want (64, 64)", c.DstStride, c.SrcStride)
			}
		})
	}
}

func TestSolidHazards(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	dst := pixmapAt(0x1000, 16, 16, format.A8R8G8B8)

	steps := []struct {
		alu            rop.ALU
		x1, y1, x2, y2 int
		flags          gp.BltFlags
	}{
		{rop.GXcopy, 0, 0, 4, 4, 0},
		{rop.GXxor, 2, 2, 6, 6, gp.BltHazard},
		{rop.GXxor, 6, 6, 8, 8, 0},
		{rop.GXcopy, 6, 6, 8, 8, 0},
		{rop.GXinvert, 7, 7, 9, 9, gp.BltHazard},
		{rop.GXclear, 7, 7, 9, 9, 0},
	}
	for i, st := range steps {
		s, err := e.PrepareSolid(dst, st.alu, rop.FullPlaneMask, 0)
		if err != nil {
			t.Fatalf("step %d: PrepareSolid() = %v", i, err)
		}
		rec.Reset()
		s.Solid(st.x1, st.y1, st.x2, st.y2)
		s.Done()

		cmds := rec.Commands()
		if len(cmds) != 2 || cmds[0].Kind != gp.KindDeclareBlt || cmds[1].Kind != gp.KindPatternFill {
			t.Fatalf("step %d: commands = %v", i, kinds(cmds))
		}
		if cmds[0].Flags != st.flags {
			t.Errorf("step %d: flags = %v, want %v", i, cmds[0].Flags, st.flags)
		}
		f := cmds[1]
		if f.Dst != dst.PixelOffset(st.x1, st.y1) || f.Width != st.x2-st.x1 || f.Height != st.y2-st.y1 {
			t.Errorf("step %d: PatternFill = %+v", i, f)
		}
	}
}

func TestSolidNoop(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	s, err := e.PrepareSolid(pixmapAt(0x1000, 8, 8, format.R5G6B5), rop.GXcopy, rop.FullPlaneMask, 0)
	if err != nil {
		t.Fatalf("PrepareSolid() = %v", err)
	}
	rec.Reset()
	s.Solid(4, 4, 4, 8)
	s.Solid(4, 4, 2, 8)
	s.Done()
	s.Solid(0, 0, 8, 8)
	if n := len(rec.Commands()); n != 0 {
		t.Errorf("submitted %d commands, want 0", n)
	}
}

func TestPrepareSolidRejects(t *testing.T) {
	tests := []struct {
		name   string
		dst    *Pixmap
		alu    rop.ALU
		reason error
	}{
		{"alu out of range", pixmapAt(0x1000, 8, 8, format.A8R8G8B8), rop.ALU(16), ErrUnsupportedOperator},
		{"24 bpp", pixmapAt(0x1000, 8, 8, format.Make(24, format.TypeARGB, 0, 8, 8, 8)), rop.GXcopy, ErrUnsupportedFormat},
		{"4 bpp", pixmapAt(0x1000, 8, 8, format.A4), rop.GXcopy, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec, _ := newTestEngine(t)
			_, err := e.PrepareSolid(tt.dst, tt.alu, rop.FullPlaneMask, 0)
			if !errors.Is(err, ErrFallback) || !errors.Is(err, tt.reason) {
				t.Errorf("err = %v, want a fallback wrapping %v", err, tt.reason)
			}
			if n := len(rec.Commands()); n != 0 {
				t.Errorf("rejection submitted %d commands", n)
			}
		})
	}

	e, _, _ := newTestEngine(t)
	if _, err := e.PrepareSolid(nil, rop.GXcopy, rop.FullPlaneMask, 0); !errors.Is(err, ErrNilPicture) {
		t.Errorf("nil pixmap: err = %v, want ErrNilPicture", err)
	}
}

func TestCopyDirection(t *testing.T) {
	tests := []struct {
		name                   string
		srcX, srcY, dstX, dstY int
		dir                    gp.Direction
	}{
		{"right", 0, 0, 2, 0, gp.NegX},
		{"left", 2, 0, 0, 0, 0},
		{"down", 0, 0, 0, 3, gp.NegY},
		{"up", 0, 3, 0, 0, 0},
		{"down right", 0, 0, 2, 2, gp.NegX | gp.NegY},
		{"in place", 5, 5, 5, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec, _ := newTestEngine(t)
			pm := pixmapAt(0x1000, 16, 16, format.A8R8G8B8)

			s, err := e.PrepareCopy(pm, pm, tt.dstX-tt.srcX, tt.dstY-tt.srcY, rop.GXcopy, rop.FullPlaneMask)
			if err != nil {
				t.Fatalf("PrepareCopy() = %v", err)
			}
			s.Copy(tt.srcX, tt.srcY, tt.dstX, tt.dstY, 4, 4)
			s.Done()

			prims := rec.Primitives()
			if len(prims) != 1 {
				t.Fatalf("primitives = %d, want 1", len(prims))
			}
			p := prims[0]
			if p.Kind != gp.KindScreenToScreenBlt {
				t.Errorf("kind = %v, want ScreenToScreenBlt", p.Kind)
			}
			if p.Dir != tt.dir {
				t.Errorf("direction = %v, want %v", p.Dir, tt.dir)
			}
			if p.Dst != pm.PixelOffset(tt.dstX, tt.dstY) || p.Src != pm.PixelOffset(tt.srcX, tt.srcY) {
				t.Errorf("offsets = dst %#x src %#x", p.Dst, p.Src)
			}
		})
	}
}

func TestPrepareCopy(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	src := pixmapAt(0x1000, 8, 8, format.R5G6B5)
	dst := pixmapAt(0x2000, 32, 8, format.R5G6B5)

	if _, err := e.PrepareCopy(src, dst, 0, 0, rop.GXand, 0x0000FF00); err != nil {
		t.Fatalf("PrepareCopy() = %v", err)
	}
	cmds := rec.Commands()
	want := []gp.Kind{
		gp.KindDeclareBlt, gp.KindSetBPP, gp.KindSetRasterOp, gp.KindSetSolidPattern, gp.KindSetStrides,
	}
	if got := kinds(cmds); !kindsEqual(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	if cmds[1].BPP != 16 {
		t.Errorf("SetBPP = %d, want 16", cmds[1].BPP)
	}
	if cmds[2].Code != 0x8A {
		t.Errorf("SetRasterOp = %#x, want 0x8a", cmds[2].Code)
	}
	if cmds[3].Color != 0x0000FF00 {
		t.Errorf("SetSolidPattern = %#x, want 0xff00", cmds[3].Color)
	}
	if cmds[4].DstStride != 64 || cmds[4].SrcStride != 16 {
		t.Errorf("SetStrides = (%d, %d), want (64, 16)", cmds[4].DstStride, cmds[4].SrcStride)
	}
}

func TestCopyHazards(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	pm := pixmapAt(0x1000, 16, 16, format.A8R8G8B8)
	s, err := e.PrepareCopy(pm, pm, 0, 0, rop.GXcopy, rop.FullPlaneMask)
	if err != nil {
		t.Fatalf("PrepareCopy() = %v", err)
	}
	rec.Reset()

	steps := []struct {
		srcX, srcY, dstX, dstY int
		flags                  gp.BltFlags
	}{
		{0, 0, 8, 0, 0},
		{8, 0, 0, 8, gp.BltHazard},
		{0, 0, 4, 4, 0},
		{4, 4, 12, 12, gp.BltHazard},
		{12, 12, 0, 0, gp.BltHazard},
	}
	for i, st := range steps {
		s.Copy(st.srcX, st.srcY, st.dstX, st.dstY, 4, 4)
		decl, _ := last(rec.Commands(), gp.KindDeclareBlt, len(rec.Commands()))
		if decl.Flags != st.flags {
			t.Errorf("step %d: flags = %v, want %v", i, decl.Flags, st.flags)
		}
	}
}

func TestPrepareCopyRejects(t *testing.T) {
	e, _, _ := newTestEngine(t)
	argb := pixmapAt(0x1000, 8, 8, format.A8R8G8B8)
	rgb16 := pixmapAt(0x2000, 8, 8, format.R5G6B5)

	if _, err := e.PrepareCopy(argb, rgb16, 0, 0, rop.GXcopy, rop.FullPlaneMask); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("mixed depths: err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := e.PrepareCopy(argb, argb, 0, 0, rop.ALU(99), rop.FullPlaneMask); !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("bad alu: err = %v, want ErrUnsupportedOperator", err)
	}
	if _, err := e.PrepareCopy(nil, argb, 0, 0, rop.GXcopy, rop.FullPlaneMask); !errors.Is(err, ErrNilPicture) {
		t.Errorf("nil source: err = %v, want ErrNilPicture", err)
	}
}

func TestUploadToScreen(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	dst := pixmapAt(0x1000, 16, 16, format.R5G6B5)
	data := bytes.Repeat([]byte{0xAB}, 3*12+8)

	if err := e.UploadToScreen(dst, 2, 3, 4, 4, data, 12); err != nil {
		t.Fatalf("UploadToScreen() = %v", err)
	}

	cmds := rec.Commands()
	want := []gp.Kind{
		gp.KindDeclareBlt, gp.KindSetBPP, gp.KindSetRasterOp, gp.KindSetStrides,
		gp.KindSetSolidPattern, gp.KindColorBitmapToScreenBlt,
	}
	if got := kinds(cmds); !kindsEqual(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	if cmds[2].Code != rop.Copy {
		t.Errorf("SetRasterOp = %#x, want copy", cmds[2].Code)
	}
	if cmds[3].DstStride != 32 || cmds[3].SrcStride != 12 {
		t.Errorf("SetStrides = (%d, %d), want (32, 12)", cmds[3].DstStride, cmds[3].SrcStride)
	}
	b := cmds[5]
	if b.Dst != dst.PixelOffset(2, 3) || b.Width != 4 || b.Height != 4 || b.Pitch != 12 || !bytes.Equal(b.Data, data) {
		t.Errorf("ColorBitmapToScreenBlt = %+v", b)
	}
}

func TestUploadToScreenRejects(t *testing.T) {
	e, rec, _ := newTestEngine(t)

	err := e.UploadToScreen(pixmapAt(0x1000, 8, 8, format.A8R8G8B8), 0, 0, 4, 4, make([]byte, 15), 4)
	if !errors.Is(err, ErrShortBuffer) {
		t.Errorf("short buffer: err = %v, want ErrShortBuffer", err)
	}
	err = e.UploadToScreen(pixmapAt(0x1000, 8, 8, format.A4), 0, 0, 4, 4, make([]byte, 64), 4)
	if !errors.Is(err, ErrFallback) {
		t.Errorf("4 bpp: err = %v, want ErrFallback", err)
	}
	if err := e.UploadToScreen(nil, 0, 0, 4, 4, nil, 0); !errors.Is(err, ErrNilPicture) {
		t.Errorf("nil: err = %v, want ErrNilPicture", err)
	}
	if err := e.UploadToScreen(pixmapAt(0x1000, 8, 8, format.A8R8G8B8), 0, 0, 0, 4, nil, 0); err != nil {
		t.Errorf("empty: err = %v, want nil", err)
	}
	if n := len(rec.Commands()); n != 0 {
		t.Errorf("submitted %d commands, want 0", n)
	}
}

func TestWaitMarker(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	e.WaitMarker(0)
	e.WaitMarker(42)

	cmds := rec.Commands()
	if len(cmds) != 2 || cmds[0].Kind != gp.KindWaitUntilIdle || cmds[1].Kind != gp.KindWaitUntilIdle {
		t.Errorf("commands = %v, want two idle waits", kinds(cmds))
	}
}

func TestEngineQueue(t *testing.T) {
	rec := gp.NewRecorder(nil)
	e := New(rec)
	t.Cleanup(e.Close)
	if e.Queue() != rec {
		t.Error("Queue() did not return the queue passed to New")
	}
}

func BenchmarkSolid(b *testing.B) {
	e := New(gp.NewRecorder(nil))
	b.Cleanup(e.Close)
	dst := pixmapAt(0x1000, 64, 64, format.A8R8G8B8)
	s, _ := e.PrepareSolid(dst, rop.GXxor, rop.FullPlaneMask, 0)
	b.ReportAllocs()
	for b.Loop() {
		s.Solid(0, 0, 8, 8)
	}
}
