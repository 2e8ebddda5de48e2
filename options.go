package exa

// Option configures an Engine during creation.
//
// Example:
//
//	e := exa.New(q,
//	    exa.WithFramebuffer(fb),
//	    exa.WithScratchBuffer(scratchOffset),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	scratch uint32
	fb      []byte
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		scratch: 0,   // no scratch buffer: two-pass operators fall back
		fb:      nil, // no CPU mapping: masked composites fall back
	}
}

// WithScratchBuffer sets the framebuffer offset of the scratch area used by
// two-pass composites. The area must hold one source-format tile of the
// largest composite. Offset 0 disables two-pass composites.
func WithScratchBuffer(offset uint32) Option {
	return func(o *options) {
		o.scratch = offset
	}
}

// WithFramebuffer gives the engine a CPU mapping of the framebuffer. It is
// needed to sample the color of a 1x1 source for masked composites.
func WithFramebuffer(fb []byte) Option {
	return func(o *options) {
		o.fb = fb
	}
}
