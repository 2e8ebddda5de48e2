package main

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/gogpu/exa"
	"github.com/gogpu/exa/blend"
	"github.com/gogpu/exa/fallback"
	"github.com/gogpu/exa/format"
	"github.com/gogpu/exa/rop"
)

// Framebuffer layout of the scene.
const (
	screenW, screenH = 64, 48
	spriteSize       = 16

	screenOffset  = 0x0000
	spriteOffset  = 0x4000
	glassOffset   = 0x5000
	colorOffset   = 0x6000
	maskOffset    = 0x6100
	checkerOffset = 0x6400
	rgb16Offset   = 0x6800
)

type scene struct {
	e  *exa.Engine
	fb []byte

	screen  *exa.Pixmap
	sprite  *exa.Pixmap // opaque gradient
	glass   *exa.Pixmap // translucent gradient
	color   *exa.Pixmap // 1x1 solid
	mask    *exa.Pixmap // a8 disc
	checker *exa.Pixmap // 4x4 tile
	rgb16   *exa.Pixmap // r5g6b5 copy of the sprite

	accelerated int
	fallbacks   int
}

func newScene(e *exa.Engine, fb []byte) (*scene, error) {
	if len(fb) < rgb16Offset+spriteSize*spriteSize*2 {
		return nil, errors.New("exademo: framebuffer too small for the scene")
	}
	return &scene{
		e:       e,
		fb:      fb,
		screen:  exa.NewPixmap(screenOffset, screenW, screenH, 32, screenW*4, format.A8R8G8B8),
		sprite:  exa.NewPixmap(spriteOffset, spriteSize, spriteSize, 32, spriteSize*4, format.A8R8G8B8),
		glass:   exa.NewPixmap(glassOffset, spriteSize, spriteSize, 32, spriteSize*4, format.A8R8G8B8),
		color:   exa.NewPixmap(colorOffset, 1, 1, 32, 4, format.A8R8G8B8),
		mask:    exa.NewPixmap(maskOffset, spriteSize, spriteSize, 8, spriteSize, format.A8),
		checker: exa.NewPixmap(checkerOffset, 4, 4, 32, 16, format.A8R8G8B8),
		rgb16:   exa.NewPixmap(rgb16Offset, spriteSize, spriteSize, 16, spriteSize*2, format.R5G6B5),
	}, nil
}

func (s *scene) draw() error {
	steps := []func() error{
		s.background,
		s.upload,
		s.blits,
		s.composites,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// background fills the screen, draws a square and inverts the color
// planes of an overlapping one.
func (s *scene) background() error {
	fill := func(alu rop.ALU, planemask, fg uint32, x1, y1, x2, y2 int) error {
		ss, err := s.e.PrepareSolid(s.screen, alu, planemask, fg)
		if err != nil {
			return err
		}
		ss.Solid(x1, y1, x2, y2)
		ss.Done()
		return nil
	}
	if err := fill(rop.GXcopy, rop.FullPlaneMask, 0xFF202040, 0, 0, screenW, screenH); err != nil {
		return err
	}
	if err := fill(rop.GXcopy, rop.FullPlaneMask, 0xFFD03020, 4, 4, 20, 20); err != nil {
		return err
	}
	return fill(rop.GXinvert, 0x00FFFFFF, 0, 12, 12, 28, 28)
}

// upload moves the host-generated images into the framebuffer.
func (s *scene) upload() error {
	sprite := hostImage(spriteSize, spriteSize, 4, func(x, y int) uint32 {
		return 0xFF000000 | uint32(x*16)<<16 | uint32(y*16)<<8 | 0x80
	})
	glass := hostImage(spriteSize, spriteSize, 4, func(x, y int) uint32 {
		a := uint32(x*16 + 15)
		return a<<24 | a<<8 // premultiplied green
	})
	disc := hostImage(spriteSize, spriteSize, 1, func(x, y int) uint32 {
		d := math.Hypot(float64(x)-7.5, float64(y)-7.5)
		return uint32(255 * math.Max(0, math.Min(1, 7.5-d)))
	})
	checker := hostImage(4, 4, 4, func(x, y int) uint32 {
		if (x/2+y/2)%2 == 0 {
			return 0xFFFFFFFF
		}
		return 0xFF000000
	})

	uploads := []struct {
		dst  *exa.Pixmap
		data []byte
	}{
		{s.sprite, sprite},
		{s.glass, glass},
		{s.mask, disc},
		{s.checker, checker},
	}
	for _, u := range uploads {
		bpp := u.dst.BitsPerPixel() / 8
		if err := s.e.UploadToScreen(u.dst, 0, 0, u.dst.Width(), u.dst.Height(), u.data, u.dst.Width()*bpp); err != nil {
			return err
		}
	}
	color := hostImage(1, 1, 4, func(int, int) uint32 { return 0xFF30C0F0 })
	return s.e.UploadToScreen(s.color, 0, 0, 1, 1, color, 4)
}

// blits copies the sprite to the screen and slides part of it right
// within the screen.
func (s *scene) blits() error {
	c, err := s.e.PrepareCopy(s.sprite, s.screen, 0, 0, rop.GXcopy, rop.FullPlaneMask)
	if err != nil {
		return err
	}
	c.Copy(0, 0, 36, 4, spriteSize, spriteSize)
	c.Done()

	c, err = s.e.PrepareCopy(s.screen, s.screen, 4, 0, rop.GXcopy, rop.FullPlaneMask)
	if err != nil {
		return err
	}
	c.Copy(36, 4, 40, 4, 8, 8)
	c.Done()
	return nil
}

func (s *scene) composites() error {
	pic := exa.NewPicture
	tile := pic(s.checker)
	tile.Repeat = true
	smooth := pic(s.glass)
	smooth.Filter = exa.FilterBilinear

	steps := []struct {
		op             blend.Op
		src, mask, dst *exa.Picture
		sx, sy         int
		dx, dy, w, h   int
	}{
		// Converting copy into a 16-bit pixmap, then back over the screen.
		{blend.Src, pic(s.sprite), nil, pic(s.rgb16), 0, 0, 0, 0, spriteSize, spriteSize},
		{blend.Src, pic(s.rgb16), nil, pic(s.screen), 0, 0, 4, 28, spriteSize, spriteSize},
		{blend.Over, pic(s.glass), nil, pic(s.screen), 0, 0, 36, 24, spriteSize, spriteSize},
		{blend.Over, pic(s.color), pic(s.mask), pic(s.screen), 0, 0, 24, 28, spriteSize, spriteSize},
		{blend.Xor, pic(s.glass), nil, pic(s.screen), 0, 0, 44, 28, spriteSize, spriteSize},
		{blend.Src, tile, nil, pic(s.screen), 0, 0, 0, 44, screenW, 4},
		// Bilinear filtering is not accelerated.
		{blend.Over, smooth, nil, pic(s.screen), 0, 0, 20, 0, spriteSize, 4},
	}
	for _, st := range steps {
		if err := s.composite(st.op, st.src, st.mask, st.dst, st.sx, st.sy, st.dx, st.dy, st.w, st.h); err != nil {
			return err
		}
	}
	return nil
}

// composite draws one composite on the engine, or in software when the
// engine declines it.
func (s *scene) composite(op blend.Op, src, mask, dst *exa.Picture, sx, sy, dx, dy, w, h int) error {
	// Masked composites sample the source color from memory.
	if mask != nil {
		s.e.WaitMarker(0)
	}
	cs, err := s.e.PrepareComposite(op, src, mask, dst)
	if errors.Is(err, exa.ErrFallback) {
		s.e.WaitMarker(0)
		s.fallbacks++
		return fallback.Composite(s.fb, op, src, mask, dst, sx, sy, 0, 0, dx, dy, w, h)
	}
	if err != nil {
		return err
	}
	cs.Composite(sx, sy, 0, 0, dx, dy, w, h)
	cs.Done()
	s.accelerated++
	return nil
}

// hostImage lays out a w x h image in host memory, bytes per pixel wide.
func hostImage(w, h, bytes int, pixel func(x, y int) uint32) []byte {
	buf := make([]byte, w*h*bytes)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * bytes
			v := pixel(x, y)
			switch bytes {
			case 4:
				binary.LittleEndian.PutUint32(buf[off:], v)
			case 2:
				binary.LittleEndian.PutUint16(buf[off:], uint16(v))
			default:
				buf[off] = byte(v)
			}
		}
	}
	return buf
}
