// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/phonic/audio"
)

// Encoder writes samples of type T to a PCM byte stream.
type Encoder[T audio.Sample, C audio.CodecTag] struct {
	inner   audio.StreamWriter[C]
	spec    audio.StreamSpec[C]
	endian  Endian
	frame   int
	size    int
	scratch []byte
	// pending holds the tail of a frame the stream accepted only partly.
	pending []byte
	pos     uint64
}

// NewEncoder wraps s with the same requirements as NewDecoder.
func NewEncoder[T audio.Sample, C audio.CodecTag](s audio.StreamWriter[C], endian Endian) (*Encoder[T, C], error) {
	spec := s.StreamSpec()

	frame, err := check[T](spec)
	if err != nil {
		return nil, err
	}

	e := &Encoder[T, C]{
		inner:  s,
		spec:   spec,
		endian: endian,
		frame:  frame,
		size:   spec.SampleType.Size(),
	}

	if p, ok := audio.PosOf(s); ok {
		e.pos = p / uint64(frame)
	}

	return e, nil
}

func (e *Encoder[T, C]) Spec() audio.SignalSpec           { return e.spec.Decoded }
func (e *Encoder[T, C]) StreamSpec() audio.StreamSpec[C] { return e.spec }
func (e *Encoder[T, C]) Unwrap() any                      { return e.inner }
func (e *Encoder[T, C]) IntoInner() audio.StreamWriter[C] { return e.inner }
func (e *Encoder[T, C]) Pos() uint64                      { return e.pos }

func (e *Encoder[T, C]) WriteSamples(buf []T) (int, error) {
	ch := int(e.spec.Decoded.Channels.Count)

	buf = buf[:len(buf)-len(buf)%ch]
	if len(buf) == 0 {
		return 0, nil
	}

	if ok, err := e.drain(); !ok {
		return 0, err
	}

	out := asBytes(buf)
	if !e.endian.IsNative() {
		e.scratch = append(e.scratch[:0], out...)
		swap(e.scratch, e.size)
		out = e.scratch
	}

	m, err := e.inner.Write(out)
	if m == 0 {
		return 0, err
	}

	frames := (m + e.frame - 1) / e.frame
	if end := frames * e.frame; end > m {
		e.pending = append(e.pending[:0], out[m:end]...)
	}

	e.pos += uint64(frames)

	// the error, if any, is reported again by the next call
	return frames * ch, nil
}

// Flush writes any buffered partial frame and flushes the stream.
func (e *Encoder[T, C]) Flush() error {
	ok, err := e.drain()
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%w: %d bytes of a frame were not accepted", audio.ErrSignalMismatch, len(e.pending))
	}

	return e.inner.Flush()
}

// drain writes e.pending and reports whether it is now empty.
func (e *Encoder[T, C]) drain() (bool, error) {
	for len(e.pending) > 0 {
		m, err := e.inner.Write(e.pending)
		e.pending = e.pending[m:]

		if err != nil {
			return false, err
		}

		if m == 0 {
			return false, nil
		}
	}

	return true, nil
}
