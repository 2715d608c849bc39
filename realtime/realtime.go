// SPDX-License-Identifier: EPL-2.0

package realtime

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/ringbuf"
)

// New creates a ring holding frames frames of spec and returns both ends.
func New[T audio.Sample](spec audio.SignalSpec, frames int, opts ...Option) (*Sink[T], *Source[T], error) {
	if spec.Channels.Count == 0 || spec.SampleRate == 0 {
		return nil, nil, fmt.Errorf("%w: %s", audio.ErrInvalidData, spec)
	}

	if frames <= 0 {
		return nil, nil, fmt.Errorf("%w: ring of %d frames", audio.ErrUnsupported, frames)
	}

	p, c := ringbuf.New[T](spec.Samples(frames))

	return Wrap(spec, p, c, opts...)
}

// Wrap builds the pair over an existing ring. The ring capacity must be a
// whole number of frames and nothing may have been pushed yet.
func Wrap[T audio.Sample](spec audio.SignalSpec, p *ringbuf.Producer[T], c *ringbuf.Consumer[T], opts ...Option) (*Sink[T], *Source[T], error) {
	ch := int(spec.Channels.Count)
	if ch == 0 || spec.SampleRate == 0 {
		return nil, nil, fmt.Errorf("%w: %s", audio.ErrInvalidData, spec)
	}

	if p.Cap()%ch != 0 {
		return nil, nil, fmt.Errorf("%w: ring of %d slots for %s", audio.ErrSignalMismatch, p.Cap(), spec)
	}

	o := newOptions(opts)
	if o.poll <= 0 {
		o.poll = max(spec.Duration(uint64(p.Cap()/ch))/4, time.Millisecond)
	}

	return &Sink[T]{spec: spec, p: p, poll: o.poll, log: o.log},
		&Source[T]{spec: spec, c: c, log: o.log},
		nil
}

// Source reads from the consumer half of the ring. Every read fills the
// whole caller buffer, padding with silence when the ring runs dry. It is
// exhausted once the Sink is closed and the ring is drained.
type Source[T audio.Sample] struct {
	spec      audio.SignalSpec
	c         *ringbuf.Consumer[T]
	log       *zap.Logger
	underruns atomic.Uint64
}

func (s *Source[T]) Spec() audio.SignalSpec { return s.spec }

// Underruns counts reads that had to be padded with silence.
func (s *Source[T]) Underruns() uint64 { return s.underruns.Load() }

// Close tells the Sink nobody reads anymore.
func (s *Source[T]) Close() error {
	s.c.Close()
	return nil
}

func (s *Source[T]) ReadSamples(buf []T) (int, error) {
	ch := int(s.spec.Channels.Count)

	if len(buf) < ch {
		if len(buf) == 0 {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: buffer of %d samples is shorter than one frame", audio.ErrSignalMismatch, len(buf))
	}

	buf = buf[:len(buf)-len(buf)%ch]

	// the flag first: anything pushed before Close is counted below
	gone := s.c.Abandoned()

	avail := s.c.Slots()
	if avail == 0 && gone {
		return 0, nil
	}

	n := s.c.Pop(buf[:min(len(buf), avail-avail%ch)])
	if n < len(buf) {
		audio.Silence(buf[n:])

		if s.underruns.Add(1) == 1 {
			s.log.Debug("realtime: first underrun", zap.Int("missing", len(buf)-n))
		}
	}

	return len(buf), nil
}

// Sink writes into the producer half of the ring.
type Sink[T audio.Sample] struct {
	spec audio.SignalSpec
	p    *ringbuf.Producer[T]
	poll time.Duration
	log  *zap.Logger
}

func (s *Sink[T]) Spec() audio.SignalSpec { return s.spec }

// Flush does nothing, samples are visible to the Source once written.
func (s *Sink[T]) Flush() error { return nil }

// Close tells the Source no more data is coming.
func (s *Sink[T]) Close() error {
	s.p.Close()
	return nil
}

// Block sleeps for the poll interval, giving the consumer time to drain.
func (s *Sink[T]) Block() { time.Sleep(s.poll) }

// WriteSamples pushes the whole frames of buf that fit. A full ring is
// audio.ErrNotReady. Once the Source is closed, writes accept nothing and
// report (0, nil) so the writing side can wind down.
func (s *Sink[T]) WriteSamples(buf []T) (int, error) {
	if s.p.Abandoned() {
		return 0, nil
	}

	ch := int(s.spec.Channels.Count)

	if len(buf) < ch {
		if len(buf) == 0 {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: buffer of %d samples is shorter than one frame", audio.ErrSignalMismatch, len(buf))
	}

	free := s.p.Slots()
	free -= free % ch

	if free == 0 {
		return 0, audio.ErrNotReady
	}

	want := min(len(buf)-len(buf)%ch, free)

	return s.p.Push(buf[:want]), nil
}

// CopyN moves exactly frames frames from src into the ring, reading straight
// into the free slots. It blocks while the ring is full and returns early,
// without error, when the Source is closed. src ending first is
// audio.ErrEndOfStream.
func (s *Sink[T]) CopyN(src audio.Reader[T], frames uint64) error {
	if src.Spec() != s.spec {
		return fmt.Errorf("%w: %s vs %s", audio.ErrSignalMismatch, src.Spec(), s.spec)
	}

	ch := uint64(s.spec.Channels.Count)
	left := frames * ch

	for left > 0 {
		if s.p.Abandoned() {
			s.log.Debug("realtime: source closed during copy", zap.Uint64("frames_left", left/ch))
			return nil
		}

		free := uint64(s.p.Slots())
		free = min(free-free%ch, left)

		if free == 0 {
			s.Block()
			continue
		}

		a, b := s.p.Chunks(int(free))

		for _, part := range [][]T{a, b} {
			if len(part) == 0 {
				continue
			}

			if err := audio.ReadExact(src, part); err != nil {
				return err
			}

			s.p.Commit(len(part))
		}

		left -= free
	}

	return nil
}
