package exa

import (
	"github.com/gogpu/exa/gp"
	"github.com/gogpu/exa/internal/hazard"
	"github.com/gogpu/exa/rop"
)

// Engine drives one GP queue on behalf of the host.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	q       gp.Queue
	fb      []byte
	scratch uint32
	hazard  hazard.Tracker
}

// New returns an engine submitting to q.
func New(q gp.Queue, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{
		q:       q,
		fb:      o.fb,
		scratch: o.scratch,
	}
	trackEngine(e)
	Logger().Info("exa: engine ready",
		"scratch", o.scratch,
		"framebuffer", len(o.fb))
	return e
}

// Close detaches the engine from logger propagation. The queue is owned by
// the caller and stays open.
func (e *Engine) Close() {
	untrackEngine(e)
}

// Queue returns the queue the engine submits to.
func (e *Engine) Queue() gp.Queue { return e.q }

// WaitMarker blocks until every submitted transfer has retired. The GP has
// a single queue, so every marker is the latest one.
func (e *Engine) WaitMarker(marker int) {
	e.q.WaitUntilIdle()
}

// UploadToScreen copies a w x h rectangle of host memory, rows srcPitch
// bytes apart, to (x, y) in dst.
func (e *Engine) UploadToScreen(dst *Pixmap, x, y, w, h int, src []byte, srcPitch int) error {
	if dst == nil {
		return ErrNilPicture
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	if !depthSupported(dst.BitsPerPixel()) {
		return reject(ErrUnsupportedFormat, "upload to %d bpp", dst.BitsPerPixel())
	}
	if need := (h-1)*srcPitch + w*dst.BitsPerPixel()/8; len(src) < need {
		return ErrShortBuffer
	}

	e.q.DeclareBlt(0)
	e.q.SetBPP(dst.BitsPerPixel())
	e.q.SetRasterOp(rop.Copy)
	e.q.SetStrides(dst.Pitch(), srcPitch)
	e.q.SetSolidPattern(0)
	e.q.ColorBitmapToScreenBlt(dst.PixelOffset(x, y), 0, w, h, src, srcPitch)
	return nil
}

// depthSupported reports whether the GP can write pixmaps of bpp bits.
func depthSupported(bpp int) bool {
	return bpp == 8 || bpp == 16 || bpp == 32
}
