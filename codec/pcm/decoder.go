// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/phonic/audio"
)

// Decoder reads samples of type T from a PCM byte stream. It is seekable,
// indexed and finite whenever the stream is, in frames.
type Decoder[T audio.Sample, C audio.CodecTag] struct {
	inner   audio.StreamReader[C]
	spec    audio.StreamSpec[C]
	endian  Endian
	frame   int
	size    int
	pending []byte
	pos     uint64
}

// NewDecoder wraps s. The stream spec must be complete, carry T and a codec
// that converts to audio.CodecPCM.
func NewDecoder[T audio.Sample, C audio.CodecTag](s audio.StreamReader[C], endian Endian) (*Decoder[T, C], error) {
	spec := s.StreamSpec()

	frame, err := check[T](spec)
	if err != nil {
		return nil, err
	}

	d := &Decoder[T, C]{
		inner:  s,
		spec:   spec,
		endian: endian,
		frame:  frame,
		size:   spec.SampleType.Size(),
	}

	if p, ok := audio.PosOf(s); ok {
		d.pos = p / uint64(frame)
	}

	return d, nil
}

func (d *Decoder[T, C]) Spec() audio.SignalSpec { return d.spec.Decoded }

// StreamSpec is the spec of the underlying stream.
func (d *Decoder[T, C]) StreamSpec() audio.StreamSpec[C] { return d.spec }

func (d *Decoder[T, C]) Unwrap() any { return d.inner }

// IntoInner returns the byte stream. Buffered bytes of a partial frame are
// dropped.
func (d *Decoder[T, C]) IntoInner() audio.StreamReader[C] { return d.inner }

func (d *Decoder[T, C]) Pos() uint64 { return d.pos }

// Len is the stream length in frames, 0 when the stream length is unknown.
func (d *Decoder[T, C]) Len() uint64 {
	n, _ := audio.LenOf(d.inner)
	return n / uint64(d.frame)
}

func (d *Decoder[T, C]) ReadSamples(buf []T) (int, error) {
	view := asBytes(buf)
	view = view[:len(view)-len(view)%d.frame]

	if len(view) == 0 {
		if len(buf) == 0 {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: buffer of %d samples is shorter than one frame", audio.ErrSignalMismatch, len(buf))
	}

	n := copy(view, d.pending)
	d.pending = d.pending[:0]

	for n < d.frame {
		m, err := d.inner.Read(view[n:])
		n += m

		if err != nil {
			if n >= d.frame {
				// deliver the whole frames, the stream repeats the error
				break
			}

			d.pending = append(d.pending, view[:n]...)

			return 0, err
		}

		if m == 0 {
			if n > 0 {
				return 0, fmt.Errorf("%w: stream ends %d bytes into a frame of %d", audio.ErrSignalMismatch, n, d.frame)
			}

			return 0, nil
		}
	}

	whole := n - n%d.frame
	d.pending = append(d.pending, view[whole:n]...)

	if !d.endian.IsNative() {
		swap(view[:whole], d.size)
	}

	d.pos += uint64(whole / d.frame)

	return whole / d.size, nil
}

// Seek moves by offset frames. The underlying stream must be seekable.
func (d *Decoder[T, C]) Seek(offset int64) error {
	target := int64(d.pos) + offset
	if target < 0 {
		return fmt.Errorf("%w: seek to frame %d", audio.ErrUnsupported, target)
	}

	s, ok := audio.SeekerOf(d.inner)
	if !ok {
		return fmt.Errorf("%w: %T cannot seek", audio.ErrUnsupported, d.inner)
	}

	if err := s.Seek(offset*int64(d.frame) - int64(len(d.pending))); err != nil {
		return err
	}

	d.pending = d.pending[:0]
	d.pos = uint64(target)

	return nil
}
