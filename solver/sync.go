// SPDX-License-Identifier: MIT

package solver

import "sync"

// Barrier is a reusable rendezvous for a fixed number of parties. Each
// Wait blocks until all parties of the current generation have arrived.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	gen     uint64
}

// NewBarrier builds a barrier for n parties. Panics if n <= 0.
func NewBarrier(n int) *Barrier {
	if n <= 0 {
		panic("solver: NewBarrier requires n > 0")
	}
	b := &Barrier{parties: n}
	b.cond = sync.NewCond(&b.mu)

	return b
}

// Wait arrives at the barrier and blocks until the generation completes.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.gen
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.gen++
		b.cond.Broadcast()

		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
}

// Latch is a one-shot countdown gate: Wait blocks until CountDown has been
// called count times. Extra CountDown calls are ignored.
type Latch struct {
	mu    sync.Mutex
	count int
	done  chan struct{}
}

// NewLatch builds a latch; a count of 0 starts open.
func NewLatch(count int) *Latch {
	l := &Latch{count: count, done: make(chan struct{})}
	if count <= 0 {
		close(l.done)
	}

	return l
}

// CountDown decrements the counter, opening the gate at zero.
func (l *Latch) CountDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count <= 0 {
		return
	}
	l.count--
	if l.count == 0 {
		close(l.done)
	}
}

// Wait blocks until the gate opens.
func (l *Latch) Wait() { <-l.done }
