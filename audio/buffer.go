// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Buffer is a fixed-size in-memory signal. It can be read, written, sought,
// and reports its position and length in frames.
type Buffer[T Sample] struct {
	spec SignalSpec
	data []T
	pos  int // in samples, always frame aligned
}

// NewBuffer wraps data, trimmed to whole frames. The buffer does not copy.
func NewBuffer[T Sample](spec SignalSpec, data []T) *Buffer[T] {
	ch := max(int(spec.Channels.Count), 1)

	return &Buffer[T]{spec: spec, data: data[:len(data)-len(data)%ch]}
}

// NewSilentBuffer allocates a buffer of the given number of frames filled
// with the origin of T.
func NewSilentBuffer[T Sample](spec SignalSpec, frames int) *Buffer[T] {
	data := make([]T, spec.Samples(frames))
	Silence(data)

	return NewBuffer(spec, data)
}

func (b *Buffer[T]) Spec() SignalSpec { return b.spec }

// Samples returns the backing slice.
func (b *Buffer[T]) Samples() []T { return b.data }

func (b *Buffer[T]) Pos() uint64 { return uint64(b.spec.Frames(b.pos)) }

func (b *Buffer[T]) Len() uint64 { return uint64(b.spec.Frames(len(b.data))) }

func (b *Buffer[T]) ReadSamples(buf []T) (int, error) {
	n, err := b.span(len(buf))
	if n <= 0 {
		return 0, err
	}

	copy(buf, b.data[b.pos:b.pos+n])
	b.pos += n

	return n, nil
}

func (b *Buffer[T]) WriteSamples(buf []T) (int, error) {
	n, err := b.span(len(buf))
	if n <= 0 {
		return 0, err
	}

	copy(b.data[b.pos:b.pos+n], buf)
	b.pos += n

	return n, nil
}

func (b *Buffer[T]) Flush() error { return nil }

// Seek moves by offset frames relative to the current position.
func (b *Buffer[T]) Seek(offset int64) error {
	target := int64(b.Pos()) + offset
	if target < 0 || target > int64(b.Len()) {
		return fmt.Errorf("%w: seek to frame %d outside [0, %d]", ErrUnsupported, target, b.Len())
	}

	b.pos = b.spec.Samples(int(target))

	return nil
}

// span returns how many samples an operation on n caller samples moves.
func (b *Buffer[T]) span(n int) (int, error) {
	left := len(b.data) - b.pos
	if n == 0 || left == 0 {
		return 0, nil
	}

	ch := max(int(b.spec.Channels.Count), 1)
	span := min(n, left)
	span -= span % ch

	if span == 0 {
		return 0, fmt.Errorf("%w: buffer of %d samples is shorter than one frame", ErrSignalMismatch, n)
	}

	return span, nil
}
