// Package parallel runs row bands of a software composite on a pool of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of workers, each with its own queue. An idle worker
// steals from the other queues before blocking on its own.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool of workers goroutines. If workers is 0 or
// negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	depth := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run calls fn for every item and waits for all of them. Items are dealt
// to the workers round-robin. After Close, Run calls fn on the caller's
// goroutine.
func (p *Pool) Run(items []func()) {
	if len(items) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range items {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(items))
	for i, fn := range items {
		job := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- job:
		case <-p.done:
			job()
		}
	}
	wg.Wait()
}

// Rows splits rows [0, h) into bands of at least minRows rows, one or more
// per worker, and calls fn for each band [y0, y1) on the pool.
func (p *Pool) Rows(h, minRows int, fn func(y0, y1 int)) {
	if h <= 0 {
		return
	}
	minRows = max(minRows, 1)
	bands := min(p.workers, (h+minRows-1)/minRows)
	if bands <= 1 {
		fn(0, h)
		return
	}

	step := (h + bands - 1) / bands
	items := make([]func(), 0, bands)
	for y0 := 0; y0 < h; y0 += step {
		y1 := min(y0+step, h)
		items = append(items, func() { fn(y0, y1) })
	}
	p.Run(items)
}

// Close stops the workers after the queued work has run. It is safe to
// call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.workers }
