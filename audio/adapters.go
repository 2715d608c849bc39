// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// ObserveFunc is called after every read or write with the caller buffer,
// the number of samples moved and the returned error.
type ObserveFunc[T Sample] func(buf []T, n int, err error)

// ReadObserver reports every ReadSamples call of the wrapped reader. All
// other capabilities of the inner reader stay reachable through Unwrap.
type ReadObserver[T Sample] struct {
	inner Reader[T]
	fn    ObserveFunc[T]
}

// ObserveReader wraps r.
func ObserveReader[T Sample](r Reader[T], fn ObserveFunc[T]) *ReadObserver[T] {
	return &ReadObserver[T]{inner: r, fn: fn}
}

func (o *ReadObserver[T]) Spec() SignalSpec { return o.inner.Spec() }
func (o *ReadObserver[T]) Unwrap() any      { return o.inner }

// IntoInner returns the wrapped reader.
func (o *ReadObserver[T]) IntoInner() Reader[T] { return o.inner }

func (o *ReadObserver[T]) ReadSamples(buf []T) (int, error) {
	n, err := o.inner.ReadSamples(buf)
	o.fn(buf, n, err)

	return n, err
}

// WriteObserver is the Writer counterpart of ReadObserver.
type WriteObserver[T Sample] struct {
	inner Writer[T]
	fn    ObserveFunc[T]
}

// ObserveWriter wraps w.
func ObserveWriter[T Sample](w Writer[T], fn ObserveFunc[T]) *WriteObserver[T] {
	return &WriteObserver[T]{inner: w, fn: fn}
}

func (o *WriteObserver[T]) Spec() SignalSpec     { return o.inner.Spec() }
func (o *WriteObserver[T]) Unwrap() any          { return o.inner }
func (o *WriteObserver[T]) Flush() error         { return o.inner.Flush() }
func (o *WriteObserver[T]) IntoInner() Writer[T] { return o.inner }

func (o *WriteObserver[T]) WriteSamples(buf []T) (int, error) {
	n, err := o.inner.WriteSamples(buf)
	o.fn(buf, n, err)

	return n, err
}

// Limit caps a reader to a number of frames counted from where it was
// wrapped. Pos, Len and Seek are relative to that starting point.
type Limit[T Sample] struct {
	inner Reader[T]
	limit uint64
	pos   uint64
}

// NewLimit wraps r so that at most frames frames are read.
func NewLimit[T Sample](r Reader[T], frames uint64) *Limit[T] {
	return &Limit[T]{inner: r, limit: frames}
}

func (l *Limit[T]) Spec() SignalSpec     { return l.inner.Spec() }
func (l *Limit[T]) Unwrap() any          { return l.inner }
func (l *Limit[T]) IntoInner() Reader[T] { return l.inner }
func (l *Limit[T]) Pos() uint64          { return l.pos }
func (l *Limit[T]) Len() uint64          { return l.limit }

func (l *Limit[T]) ReadSamples(buf []T) (int, error) {
	spec := l.inner.Spec()

	left := l.limit - l.pos
	if left == 0 {
		return 0, nil
	}

	if samples := uint64(spec.Samples(1)) * left; uint64(len(buf)) > samples {
		buf = buf[:samples]
	}

	n, err := l.inner.ReadSamples(buf)
	l.pos += uint64(spec.Frames(n))

	return n, err
}

func (l *Limit[T]) Seek(offset int64) error {
	target := int64(l.pos) + offset
	if target < 0 || target > int64(l.limit) {
		return fmt.Errorf("%w: seek to frame %d outside [0, %d]", ErrUnsupported, target, l.limit)
	}

	s, ok := SeekerOf(l.inner)
	if !ok {
		return fmt.Errorf("%w: %T cannot seek", ErrUnsupported, l.inner)
	}

	if err := s.Seek(offset); err != nil {
		return err
	}

	l.pos = uint64(target)

	return nil
}

// Forever makes Repeat loop without end.
const Forever = 0

// Repeat replays a seekable, finite reader a number of times. Pos, Len and
// Seek span all repetitions; seeking lands in whichever repetition contains
// the target frame.
type Repeat[T Sample] struct {
	inner  Reader[T]
	seeker Seeker
	times  uint64
	period uint64
	rep    uint64
}

// NewRepeat wraps r, which must be positioned at its start and be seekable
// and finite (directly or through its Unwrap chain). times == Forever loops
// without end.
func NewRepeat[T Sample](r Reader[T], times uint64) (*Repeat[T], error) {
	s, ok := SeekerOf(r)
	if !ok {
		return nil, fmt.Errorf("%w: repeat needs a seekable reader", ErrUnsupported)
	}

	period, ok := LenOf(r)
	if !ok {
		return nil, fmt.Errorf("%w: repeat needs a finite reader", ErrUnsupported)
	}

	if _, ok := PosOf(r); !ok {
		return nil, fmt.Errorf("%w: repeat needs an indexed reader", ErrUnsupported)
	}

	return &Repeat[T]{inner: r, seeker: s, times: times, period: period}, nil
}

func (r *Repeat[T]) Spec() SignalSpec     { return r.inner.Spec() }
func (r *Repeat[T]) Unwrap() any          { return r.inner }
func (r *Repeat[T]) IntoInner() Reader[T] { return r.inner }

// Repetition is the zero based index of the repetition being read.
func (r *Repeat[T]) Repetition() uint64 { return r.rep }

func (r *Repeat[T]) innerPos() uint64 {
	p, _ := PosOf(r.inner)
	return p
}

func (r *Repeat[T]) Pos() uint64 { return r.rep*r.period + r.innerPos() }

// Len is the total number of frames, math.MaxUint64 when looping forever.
func (r *Repeat[T]) Len() uint64 {
	if r.times == Forever {
		return math.MaxUint64
	}

	return r.times * r.period
}

func (r *Repeat[T]) ReadSamples(buf []T) (int, error) {
	if r.period == 0 || len(buf) == 0 {
		return 0, nil
	}

	for {
		n, err := r.inner.ReadSamples(buf)
		if n > 0 || err != nil {
			return n, err
		}

		if r.times != Forever && r.rep+1 >= r.times {
			return 0, nil
		}

		if err := r.seeker.Seek(-int64(r.innerPos())); err != nil {
			return 0, err
		}

		r.rep++
	}
}

func (r *Repeat[T]) Seek(offset int64) error {
	target := int64(r.Pos()) + offset
	if target < 0 || (r.times != Forever && uint64(target) > r.Len()) {
		return fmt.Errorf("%w: seek to frame %d outside [0, %d]", ErrUnsupported, target, r.Len())
	}

	if r.period == 0 {
		return nil
	}

	rep, within := uint64(target)/r.period, uint64(target)%r.period
	if r.times != Forever && rep == r.times {
		rep, within = r.times-1, r.period
	}

	if err := r.seeker.Seek(int64(within) - int64(r.innerPos())); err != nil {
		return err
	}

	r.rep = rep

	return nil
}
