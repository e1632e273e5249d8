// Package bufpool recycles fixed-capacity byte buffers.
//
// A Pool never blocks: Get falls back to a fresh allocation when no
// recycled buffer is available, and Done drops the buffer when the pool
// is already full. Recycled buffers keep their previous contents, so
// callers that must not observe stale bytes have to clear them.
package bufpool

import (
	"go.uber.org/atomic"
)

type Pool struct {
	allocated  atomic.Int64
	bufferSize int
	buffers    chan *Buffer
}

type Buffer struct {
	Data []byte
	pool *Pool
}

// New returns a pool of buffers with capacity bufferSize each, holding at
// most maxIdle recycled buffers at a time.
func New(bufferSize, maxIdle int) *Pool {
	if maxIdle < 1 {
		maxIdle = 1
	}
	return &Pool{
		bufferSize: bufferSize,
		buffers:    make(chan *Buffer, maxIdle),
	}
}

// BufferSize is the capacity of every buffer served by this pool.
func (p *Pool) BufferSize() int {
	return p.bufferSize
}

// Allocated reports how many buffers this pool has created so far.
func (p *Pool) Allocated() int64 {
	return p.allocated.Load()
}

// Get returns a recycled buffer if one is idle, a fresh one otherwise.
func (p *Pool) Get() *Buffer {
	select {
	case buf := <-p.buffers:
		return buf
	default:
		p.allocated.Inc()
		return &Buffer{
			Data: make([]byte, p.bufferSize),
			pool: p,
		}
	}
}

// Done returns b to its pool for reuse. If the pool is full, b is left for
// the garbage collector instead.
func (b *Buffer) Done() {
	select {
	case b.pool.buffers <- b:
	default:
	}
}
