// Package exa accelerates 2D composition on a fixed-function blt engine.
//
// # Overview
//
// exa implements the acceleration hooks a windowing system calls for
// solid fills, pixmap copies and Porter-Duff composites, and turns each one
// into command sequences for the graphics processor (GP) behind a
// [gp.Queue]. The GP has no shaders: every composite must map onto its
// alpha blender, possibly in two passes through a scratch buffer, or be
// rejected so the host falls back to software.
//
// # Quick Start
//
//	fb := make([]byte, 4<<20)
//	dev := soft.New(fb)
//	e := exa.New(dev, exa.WithFramebuffer(fb), exa.WithScratchBuffer(3<<20))
//	defer e.Close()
//
//	s, err := e.PrepareComposite(blend.Over, src, nil, dst)
//	if errors.Is(err, exa.ErrFallback) {
//	    // composite in software
//	}
//	s.Composite(0, 0, 0, 0, 0, 0, 64, 64)
//	s.Done()
//	e.WaitMarker(0)
//
// # Strategies
//
// PrepareComposite picks one of three strategies:
//   - Mask: a 1x1 color painted through an a8 or a4 mask in one masked blend
//   - OnePass: one converting blend from source to destination
//   - TwoPass: Atop, AtopReverse and Xor, which need the destination copied
//     into the scratch buffer, blended there, and blended back
//
// # Concurrency
//
// An Engine and its sessions are single-threaded: one composite session at
// a time, Prepare, then any number of Composite calls, then Done. The GP
// runs asynchronously; hazard flags order dependent transfers and
// WaitMarker is the only point where the caller blocks.
package exa
