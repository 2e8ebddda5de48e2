// Package soft emulates the GP blt engine in software.
//
// A Device executes Queue commands against a byte-slice framebuffer on a
// worker goroutine. Register writes are latched on the calling goroutine
// and each primitive is queued together with a snapshot of the registers,
// so the caller may reprogram the device while earlier transfers are still
// running, exactly as with the hardware. Only WaitUntilIdle synchronizes.
//
// The framebuffer must not be touched by the caller between a submission
// and the next WaitUntilIdle.
package soft

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/exa/gp"
)

// ErrNoFramebuffer is returned by the backend when opened without memory.
var ErrNoFramebuffer = errors.New("soft: framebuffer is empty")

// queueDepth is the number of transfers that may be in flight before
// submission blocks.
const queueDepth = 256

// registers is the latched device state a transfer executes with.
type registers struct {
	flags     gp.BltFlags
	bpp       int
	dstStride int
	srcStride int
	pattern   uint32
	source    uint32
	srcFormat gp.SourceFormat

	// blending selects the alpha blender instead of the raster op.
	blending bool
	rop      uint8
	alphaOp  gp.AlphaOp
	mode     gp.AlphaMode
	channel  gp.Channel
	apply    gp.ApplyScope
	alpha    uint8
}

// job is one submitted transfer.
type job struct {
	regs registers
	kind gp.Kind

	dst, src      uint32
	width, height int
	dir           gp.Direction

	mask       uint32
	maskStride int
	maskOp     gp.AlphaOp
	fourBPP    bool

	data  []byte
	pitch int
}

// Stats counts device activity since creation.
type Stats struct {
	Blts      uint64 // primitives executed
	Hazards   uint64 // transfers declared with gp.BltHazard
	IdleWaits uint64 // WaitUntilIdle calls
	Pixels    uint64 // pixels written
	Dropped   uint64 // pixel accesses outside the framebuffer
}

// Device is a software GP. Queue methods must be called from one goroutine
// at a time.
type Device struct {
	fb []byte

	mu     sync.Mutex
	regs   registers
	closed bool

	jobs    chan job
	pending sync.WaitGroup
	done    chan struct{}

	blts, hazards, idleWaits, pixels, dropped atomic.Uint64
}

var _ gp.Queue = (*Device)(nil)

// New starts a device executing against fb.
func New(fb []byte) *Device {
	d := &Device{
		fb:   fb,
		jobs: make(chan job, queueDepth),
		done: make(chan struct{}),
	}
	go d.run()
	slogger().Info("soft: device started", "framebuffer", len(fb))
	return d
}

func (d *Device) run() {
	defer close(d.done)
	for j := range d.jobs {
		d.execute(&j)
		d.pending.Done()
	}
}

// Close drains the queue and stops the worker. It is safe to call twice.
func (d *Device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	close(d.jobs)
	<-d.done
	s := d.Stats()
	slogger().Info("soft: device stopped", "blts", s.Blts, "hazards", s.Hazards)
	return nil
}

// SetLogger sets the logger of the package. Passing nil silences it.
func (d *Device) SetLogger(l *slog.Logger) { setLogger(l) }

// Stats returns a snapshot of the device counters.
func (d *Device) Stats() Stats {
	return Stats{
		Blts:      d.blts.Load(),
		Hazards:   d.hazards.Load(),
		IdleWaits: d.idleWaits.Load(),
		Pixels:    d.pixels.Load(),
		Dropped:   d.dropped.Load(),
	}
}

// Framebuffer returns the memory the device executes against.
func (d *Device) Framebuffer() []byte { return d.fb }

func (d *Device) set(f func(r *registers)) {
	d.mu.Lock()
	f(&d.regs)
	d.mu.Unlock()
}

func (d *Device) submit(j job) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		slogger().Warn("soft: transfer submitted after Close", "kind", j.kind)
		return
	}
	j.regs = d.regs
	d.pending.Add(1)
	d.jobs <- j
	d.mu.Unlock()
}

func (d *Device) DeclareBlt(flags gp.BltFlags) {
	if flags&gp.BltHazard != 0 {
		d.hazards.Add(1)
	}
	d.set(func(r *registers) { r.flags = flags })
}

func (d *Device) SetBPP(bpp int) {
	d.set(func(r *registers) { r.bpp = bpp })
}

func (d *Device) SetStrides(dst, src int) {
	d.set(func(r *registers) { r.dstStride, r.srcStride = dst, src })
}

func (d *Device) SetRasterOp(code uint8) {
	d.set(func(r *registers) { r.rop, r.blending = code, false })
}

func (d *Device) SetSolidPattern(color uint32) {
	d.set(func(r *registers) { r.pattern = color })
}

func (d *Device) SetSolidSource(color uint32) {
	d.set(func(r *registers) { r.source = color })
}

func (d *Device) SetSourceFormat(f gp.SourceFormat) {
	d.set(func(r *registers) { r.srcFormat = f })
}

func (d *Device) SetAlphaOperation(op gp.AlphaOp, mode gp.AlphaMode, ch gp.Channel, apply gp.ApplyScope, alpha uint8) {
	d.set(func(r *registers) {
		r.blending = true
		r.alphaOp, r.mode, r.channel, r.apply, r.alpha = op, mode, ch, apply, alpha
	})
}

func (d *Device) PatternFill(dst uint32, width, height int) {
	d.submit(job{kind: gp.KindPatternFill, dst: dst, width: width, height: height})
}

func (d *Device) ScreenToScreenBlt(dst, src uint32, width, height int, dir gp.Direction) {
	d.submit(job{kind: gp.KindScreenToScreenBlt, dst: dst, src: src, width: width, height: height, dir: dir})
}

func (d *Device) ScreenToScreenConvert(dst, src uint32, width, height int, dir gp.Direction) {
	d.submit(job{kind: gp.KindScreenToScreenConvert, dst: dst, src: src, width: width, height: height, dir: dir})
}

func (d *Device) BlendMaskBlt(dst, src uint32, width, height int, mask uint32, maskStride int, op gp.AlphaOp, fourBPP bool) {
	d.submit(job{
		kind:       gp.KindBlendMaskBlt,
		dst:        dst,
		src:        src,
		width:      width,
		height:     height,
		mask:       mask,
		maskStride: maskStride,
		maskOp:     op,
		fourBPP:    fourBPP,
	})
}

// ColorBitmapToScreenBlt copies data before returning, so the caller may
// reuse it immediately.
func (d *Device) ColorBitmapToScreenBlt(dst, srcOffset uint32, width, height int, data []byte, pitch int) {
	d.submit(job{
		kind:   gp.KindColorBitmapToScreenBlt,
		dst:    dst,
		src:    srcOffset,
		width:  width,
		height: height,
		data:   append([]byte(nil), data...),
		pitch:  pitch,
	})
}

func (d *Device) WaitUntilIdle() {
	d.idleWaits.Add(1)
	d.pending.Wait()
}
