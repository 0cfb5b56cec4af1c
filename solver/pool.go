// SPDX-License-Identifier: MIT

package solver

import (
	"sync"
	"sync/atomic"
)

// Pool runs one task per worker per Run on persistent goroutines.
//
// Protocol per Run: the caller and all workers meet at the start barrier,
// each worker runs task(id), then everybody meets at the done barrier.
// Both barriers count workers+1. Writes made by the caller before Run are
// visible to the tasks, and task writes are visible to the caller after
// Run returns.
type Pool struct {
	workers int
	task    func(id int)
	start   *Barrier
	done    *Barrier
	stop    atomic.Bool
	wg      sync.WaitGroup
	once    sync.Once
}

// NewPool starts workers goroutines and returns once all of them are
// parked at the start barrier. Panics if workers <= 0 or task is nil.
func NewPool(workers int, task func(id int)) *Pool {
	if workers <= 0 || task == nil {
		panic("solver: NewPool requires workers > 0 and a task")
	}
	p := &Pool{
		workers: workers,
		task:    task,
		start:   NewBarrier(workers + 1),
		done:    NewBarrier(workers + 1),
	}
	ready := NewLatch(workers)
	p.wg.Add(workers)
	for id := 0; id < workers; id++ {
		go p.loop(id, ready)
	}
	ready.Wait()

	return p
}

func (p *Pool) loop(id int, ready *Latch) {
	defer p.wg.Done()
	ready.CountDown()
	for {
		p.start.Wait()
		if p.stop.Load() {
			return
		}
		p.task(id)
		p.done.Wait()
	}
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// Run executes one round and blocks until every worker has finished.
// It returns ErrClosed after Close.
func (p *Pool) Run() error {
	if p.stop.Load() {
		return ErrClosed
	}
	p.start.Wait()
	p.done.Wait()

	return nil
}

// Close sets the stop flag, releases the workers through the start
// barrier and joins them. Safe to call more than once; must not race Run.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.stop.Store(true)
		p.start.Wait()
		p.wg.Wait()
	})
}
