// SPDX-License-Identifier: EPL-2.0

// Package ringbuf is a fixed-capacity single producer, single consumer ring
// buffer that needs no locks. Each half is owned by one goroutine; the only
// shared state is a pair of atomic counters and the abandoned flags.
//
//	p, c := ringbuf.New[float32](4096)
//	go func() {
//	    defer p.Close()
//	    p.Push(samples)
//	}()
//	n := c.Pop(buf)
package ringbuf

import (
	"fmt"
	"sync/atomic"
)

type ring[T any] struct {
	buf []T

	// read and write count slots since creation, write-read is the fill.
	read  atomic.Uint64
	write atomic.Uint64

	producerGone atomic.Bool
	consumerGone atomic.Bool
}

func (r *ring[T]) fill() int {
	return int(r.write.Load() - r.read.Load())
}

// chunks returns up to n slots starting at counter pos, split where the
// storage wraps around.
func (r *ring[T]) chunks(pos uint64, n int) ([]T, []T) {
	start := int(pos % uint64(len(r.buf)))

	first := min(n, len(r.buf)-start)

	return r.buf[start : start+first], r.buf[:n-first]
}

// New allocates a ring of capacity slots and returns its two halves. It
// panics if capacity is not positive.
func New[T any](capacity int) (*Producer[T], *Consumer[T]) {
	if capacity <= 0 {
		panic(fmt.Sprintf("ringbuf: capacity %d", capacity))
	}

	r := &ring[T]{buf: make([]T, capacity)}

	return &Producer[T]{r: r}, &Consumer[T]{r: r}
}

// Producer is the writing half.
type Producer[T any] struct {
	r *ring[T]
}

func (p *Producer[T]) Cap() int { return len(p.r.buf) }

// Slots is the number of free slots.
func (p *Producer[T]) Slots() int { return len(p.r.buf) - p.r.fill() }

// Chunks returns up to n free slots as two slices, the second one non-empty
// only when the free region wraps around. Data written there becomes visible
// to the consumer after Commit.
func (p *Producer[T]) Chunks(n int) ([]T, []T) {
	return p.r.chunks(p.r.write.Load(), min(n, p.Slots()))
}

// Commit publishes n slots filled through Chunks.
func (p *Producer[T]) Commit(n int) {
	if n < 0 || n > p.Slots() {
		panic(fmt.Sprintf("ringbuf: commit of %d slots with %d free", n, p.Slots()))
	}

	p.r.write.Add(uint64(n))
}

// Push copies as much of src as fits and returns how many items it took.
func (p *Producer[T]) Push(src []T) int {
	a, b := p.Chunks(len(src))

	n := copy(a, src)
	n += copy(b, src[n:])
	p.Commit(n)

	return n
}

// Abandoned reports whether the consumer was closed.
func (p *Producer[T]) Abandoned() bool { return p.r.consumerGone.Load() }

// Close marks the producer as gone. The consumer can still drain what was
// committed.
func (p *Producer[T]) Close() { p.r.producerGone.Store(true) }

// Consumer is the reading half.
type Consumer[T any] struct {
	r *ring[T]
}

func (c *Consumer[T]) Cap() int { return len(c.r.buf) }

// Slots is the number of filled slots.
func (c *Consumer[T]) Slots() int { return c.r.fill() }

// Chunks returns up to n filled slots as two slices. They stay valid until
// Release.
func (c *Consumer[T]) Chunks(n int) ([]T, []T) {
	return c.r.chunks(c.r.read.Load(), min(n, c.Slots()))
}

// Release hands n consumed slots back to the producer.
func (c *Consumer[T]) Release(n int) {
	if n < 0 || n > c.Slots() {
		panic(fmt.Sprintf("ringbuf: release of %d slots with %d filled", n, c.Slots()))
	}

	c.r.read.Add(uint64(n))
}

// Pop moves as many items as are available into dst.
func (c *Consumer[T]) Pop(dst []T) int {
	a, b := c.Chunks(len(dst))

	n := copy(dst, a)
	n += copy(dst[n:], b)
	c.Release(n)

	return n
}

// Abandoned reports whether the producer was closed.
func (c *Consumer[T]) Abandoned() bool { return c.r.producerGone.Load() }

// Close marks the consumer as gone; further writes are pointless.
func (c *Consumer[T]) Close() { c.r.consumerGone.Store(true) }
