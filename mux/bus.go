// SPDX-License-Identifier: EPL-2.0

package mux

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ik5/phonic/audio"
)

// Bus is a Writer that distributes each write to its tracks according to
// their positions. Tracks must be Indexed, directly or through Unwrap.
// Their positions are read once, when the bus is created; from then on the
// bus tracks them itself. A track that reports exhaustion is not written
// again.
type Bus[T audio.Sample] struct {
	spec   audio.SignalSpec
	tracks []audio.Writer[T]
	queue  *PosQueue
	pos    uint64 // frame the next write starts at
	log    *zap.Logger
}

// NewBus creates a bus over tracks, which must share one spec.
func NewBus[T audio.Sample](tracks []audio.Writer[T], opts ...Option) (*Bus[T], error) {
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: bus without tracks", audio.ErrMissingData)
	}

	spec := tracks[0].Spec()
	if spec.Channels.Count == 0 {
		return nil, fmt.Errorf("%w: track without channels", audio.ErrInvalidData)
	}

	q := NewPosQueue()

	for i, t := range tracks {
		if t.Spec() != spec {
			return nil, fmt.Errorf("%w: track %d is %s, bus is %s", audio.ErrSignalMismatch, i, t.Spec(), spec)
		}

		p, ok := audio.PosOf(t)
		if !ok {
			return nil, fmt.Errorf("%w: track %d (%T) does not report its position", audio.ErrUnsupported, i, t)
		}

		q.Insert(PosCursor{Pos: p, Index: i})
	}

	front, _ := q.Front()
	o := newOptions(opts)

	return &Bus[T]{
		spec:   spec,
		tracks: tracks,
		queue:  q,
		pos:    front.Pos,
		log:    o.log,
	}, nil
}

func (b *Bus[T]) Spec() audio.SignalSpec { return b.spec }

// Tracks returns the tracks in the order they were given.
func (b *Bus[T]) Tracks() []audio.Writer[T] { return b.tracks }

// Live returns the cursors of the tracks that are not exhausted, lowest
// position first.
func (b *Bus[T]) Live() []PosCursor { return b.queue.Cursors() }

// Pos is the frame the next write starts at. It begins at the lowest track
// position and advances by what each write reports.
func (b *Bus[T]) Pos() uint64 { return b.pos }

// Len is the highest track length; tracks that are not Finite count as 0.
func (b *Bus[T]) Len() uint64 {
	var hi uint64

	for _, t := range b.tracks {
		if n, ok := audio.LenOf(t); ok {
			hi = max(hi, n)
		}
	}

	return hi
}

// Flush flushes every track and combines their errors.
func (b *Bus[T]) Flush() error {
	var err error

	for _, t := range b.tracks {
		err = multierr.Append(err, t.Flush())
	}

	return err
}

// WriteSamples writes buf, which starts at frame Pos, to every live track
// from that track's own position. The result is the number of samples that
// every track written during the call has consumed; tracks that finished
// during the call count with what they took before finishing. (0, nil)
// means every track is exhausted.
//
// An error from a track is returned only when nothing was written yet;
// otherwise the write stops and reports what was written so far. A track
// that accepts part of a frame is audio.ErrSignalMismatch.
func (b *Bus[T]) WriteSamples(buf []T) (int, error) {
	ch := int(b.spec.Channels.Count)

	if len(buf) < ch {
		if len(buf) == 0 {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: buffer of %d samples is shorter than one frame", audio.ErrSignalMismatch, len(buf))
	}

	buf = buf[:len(buf)-len(buf)%ch]

	if b.queue.Len() == 0 {
		return 0, nil
	}

	var (
		took = make([]bool, len(b.tracks))
		done = len(buf) // lowest end among tracks that left the queue
		err  error
	)

	for {
		c, ok := b.queue.Front()
		if !ok {
			break
		}

		start := int(c.Pos-b.pos) * ch
		if start >= len(buf) {
			break
		}

		var n int

		n, err = b.tracks[c.Index].WriteSamples(buf[start:])
		if rest := n % ch; rest != 0 {
			n -= rest
			err = multierr.Append(err, fmt.Errorf("%w: track %d took %d samples of a %d channel frame",
				audio.ErrSignalMismatch, c.Index, rest, ch))
		}

		if n > 0 {
			took[c.Index] = true
			b.queue.CommitFront(uint64(n / ch))
		}

		if err != nil {
			break
		}

		if n == 0 {
			b.queue.PopFront()

			if took[c.Index] {
				done = min(done, start)
			}

			b.log.Debug("bus: track exhausted", zap.Int("track", c.Index), zap.Uint64("pos", c.Pos))
		}
	}

	// queued tracks end where their cursor stands, capped by the buffer
	end := done
	if c, ok := b.queue.Front(); ok {
		end = min(end, int(c.Pos-b.pos)*ch)
	} else if !slices.Contains(took, true) {
		return 0, err
	}

	if end == 0 {
		return 0, err
	}

	b.pos += uint64(end / ch)

	return end, nil
}
