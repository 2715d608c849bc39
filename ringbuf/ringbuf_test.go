// SPDX-License-Identifier: EPL-2.0

package ringbuf_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/phonic/ringbuf"
)

func TestNew_InvalidCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { ringbuf.New[int](0) })
}

func TestPushPop(t *testing.T) {
	t.Parallel()

	p, c := ringbuf.New[int](4)

	assert.Equal(t, 4, p.Cap())
	assert.Equal(t, 4, p.Slots())
	assert.Zero(t, c.Slots())

	assert.Equal(t, 3, p.Push([]int{1, 2, 3}))
	assert.Equal(t, 1, p.Slots())
	assert.Equal(t, 3, c.Slots())

	assert.Equal(t, 1, p.Push([]int{4, 5}), "only the free slot is taken")
	assert.Zero(t, p.Push([]int{6}))

	buf := make([]int, 3)
	require.Equal(t, 3, c.Pop(buf))
	assert.Equal(t, []int{1, 2, 3}, buf)

	assert.Equal(t, 3, p.Push([]int{5, 6, 7}), "wraps around")

	buf = make([]int, 8)
	n := c.Pop(buf)
	assert.Equal(t, []int{4, 5, 6, 7}, buf[:n])
	assert.Zero(t, c.Pop(buf))
}

func TestChunks_WrapAround(t *testing.T) {
	t.Parallel()

	p, c := ringbuf.New[int](5)

	p.Push([]int{1, 2, 3, 4})
	c.Pop(make([]int, 3))

	a, b := p.Chunks(10)
	assert.Len(t, a, 1, "up to the end of the storage")
	assert.Len(t, b, 3)

	a[0], b[0], b[1] = 5, 6, 7
	p.Commit(3)

	a, b = c.Chunks(10)
	assert.Equal(t, []int{4, 5}, a)
	assert.Equal(t, []int{6, 7}, b)

	c.Release(4)
	assert.Zero(t, c.Slots())

	assert.Panics(t, func() { c.Release(1) })
	assert.Panics(t, func() { p.Commit(6) })
}

func TestAbandoned(t *testing.T) {
	t.Parallel()

	p, c := ringbuf.New[byte](2)

	assert.False(t, p.Abandoned())
	assert.False(t, c.Abandoned())

	p.Push([]byte{1})
	p.Close()
	assert.True(t, c.Abandoned())
	assert.Equal(t, 1, c.Pop(make([]byte, 2)), "committed data survives the producer")

	c.Close()
	assert.True(t, p.Abandoned())
}

func TestConcurrent(t *testing.T) {
	t.Parallel()

	const total = 100_000

	p, c := ringbuf.New[int](64)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		defer p.Close()

		next := 0
		chunk := make([]int, 17)

		for next < total {
			k := 0
			for ; k < len(chunk) && next+k < total; k++ {
				chunk[k] = next + k
			}

			next += p.Push(chunk[:k])
		}
	}()

	got := make([]int, 0, total)
	buf := make([]int, 23)

	for {
		n := c.Pop(buf)
		got = append(got, buf[:n]...)

		if n == 0 && c.Abandoned() && c.Slots() == 0 {
			break
		}
	}

	wg.Wait()

	require.Len(t, got, total)

	for i, v := range got {
		if v != i {
			t.Fatalf("item %d is %d", i, v)
		}
	}
}
