// SPDX-License-Identifier: EPL-2.0

package mux

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(q *PosQueue) []uint64 {
	var out []uint64
	for _, c := range q.Cursors() {
		out = append(out, c.Pos)
	}

	return out
}

func TestNewPosQueue(t *testing.T) {
	t.Parallel()

	q := NewPosQueue(
		PosCursor{Pos: 30, Index: 0},
		PosCursor{Pos: 10, Index: 1},
		PosCursor{Pos: 30, Index: 2},
		PosCursor{Pos: 0, Index: 3},
	)

	assert.Equal(t, 4, q.Len())
	assert.Equal(t, []PosCursor{{0, 3}, {10, 1}, {30, 0}, {30, 2}}, q.Cursors())

	front, ok := q.Front()
	require.True(t, ok)
	assert.Equal(t, PosCursor{Pos: 0, Index: 3}, front)
}

func TestPosQueue_Empty(t *testing.T) {
	t.Parallel()

	q := NewPosQueue()

	_, ok := q.Front()
	assert.False(t, ok)

	_, ok = q.PopFront()
	assert.False(t, ok)

	q.CommitFront(10)
	assert.Zero(t, q.Len())
}

func TestPosQueue_Insert(t *testing.T) {
	t.Parallel()

	q := NewPosQueue(PosCursor{Pos: 10, Index: 0}, PosCursor{Pos: 20, Index: 1})

	q.Insert(PosCursor{Pos: 15, Index: 2})
	q.Insert(PosCursor{Pos: 5, Index: 3})
	q.Insert(PosCursor{Pos: 20, Index: 4})

	assert.Equal(t, []PosCursor{{5, 3}, {10, 0}, {15, 2}, {20, 1}, {20, 4}}, q.Cursors())
}

func TestPosQueue_CommitFront(t *testing.T) {
	t.Parallel()

	q := NewPosQueue(PosCursor{Pos: 0, Index: 0}, PosCursor{Pos: 10, Index: 1}, PosCursor{Pos: 20, Index: 2})

	q.CommitFront(5)
	assert.Equal(t, []PosCursor{{5, 0}, {10, 1}, {20, 2}}, q.Cursors(), "no cursor passed")

	q.CommitFront(5)
	assert.Equal(t, []PosCursor{{10, 1}, {10, 0}, {20, 2}}, q.Cursors(), "ties go behind")

	q.CommitFront(100)
	assert.Equal(t, []PosCursor{{10, 0}, {20, 2}, {110, 1}}, q.Cursors())

	c, ok := q.PopFront()
	require.True(t, ok)
	assert.Equal(t, PosCursor{Pos: 10, Index: 0}, c)
	assert.Equal(t, []uint64{20, 110}, positions(q))
}

func TestPosQueue_StaysSorted(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	q := NewPosQueue()
	for i := range 8 {
		q.Insert(PosCursor{Pos: rng.Uint64N(100), Index: i})
	}

	for i := range 1000 {
		switch rng.IntN(3) {
		case 0:
			q.Insert(PosCursor{Pos: rng.Uint64N(1000), Index: 8 + i})
		default:
			q.CommitFront(rng.Uint64N(50))
		}

		require.True(t, slices.IsSorted(positions(q)), "step %d: %v", i, positions(q))
	}
}
