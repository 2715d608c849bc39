// SPDX-License-Identifier: EPL-2.0

package mux

import "slices"

// PosCursor tracks the frame position of one bus track.
type PosCursor struct {
	Pos   uint64
	Index int
}

// PosQueue keeps cursors ordered by Pos, lowest first. Cursors with equal
// positions keep their insertion order. Insert and CommitFront only move
// the cursors they displace, which is cheap when the tracks stay close to
// each other.
type PosQueue struct {
	cursors []PosCursor
}

// NewPosQueue builds a queue from a snapshot of cursors.
func NewPosQueue(cursors ...PosCursor) *PosQueue {
	q := &PosQueue{cursors: make([]PosCursor, 0, len(cursors))}
	for _, c := range cursors {
		q.Insert(c)
	}

	return q
}

func (q *PosQueue) Len() int { return len(q.cursors) }

// Front returns the cursor with the lowest position.
func (q *PosQueue) Front() (PosCursor, bool) {
	if len(q.cursors) == 0 {
		return PosCursor{}, false
	}

	return q.cursors[0], true
}

// Cursors returns the cursors in queue order.
func (q *PosQueue) Cursors() []PosCursor { return slices.Clone(q.cursors) }

// Insert adds c after every cursor at or before its position.
func (q *PosQueue) Insert(c PosCursor) {
	q.cursors = append(q.cursors, c)

	i := len(q.cursors) - 1
	for ; i > 0 && q.cursors[i-1].Pos > c.Pos; i-- {
		q.cursors[i] = q.cursors[i-1]
	}

	q.cursors[i] = c
}

// CommitFront advances the front cursor by frames and moves it behind every
// cursor it reached or passed.
func (q *PosQueue) CommitFront(frames uint64) {
	if len(q.cursors) == 0 {
		return
	}

	c := q.cursors[0]
	c.Pos += frames

	i := 0
	for ; i+1 < len(q.cursors) && q.cursors[i+1].Pos <= c.Pos; i++ {
		q.cursors[i] = q.cursors[i+1]
	}

	q.cursors[i] = c
}

// PopFront removes and returns the front cursor.
func (q *PosQueue) PopFront() (PosCursor, bool) {
	c, ok := q.Front()
	if ok {
		q.cursors = q.cursors[1:]
	}

	return c, ok
}
