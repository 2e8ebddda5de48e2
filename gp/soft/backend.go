package soft

import "github.com/gogpu/exa/gp"

func init() {
	gp.Register(gp.BackendSoft, func() gp.Backend { return backend{} })
}

type backend struct{}

func (backend) Name() string { return gp.BackendSoft }

func (backend) Open(fb []byte) (gp.Queue, error) {
	if len(fb) == 0 {
		return nil, ErrNoFramebuffer
	}
	return New(fb), nil
}
