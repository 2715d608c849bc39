// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/phonic/audio"
)

// Extensions and MIME types a registry maps to this package.
var (
	Extensions = []string{"aif", "aiff"}
	MIMETypes  = []string{"audio/aiff", "audio/x-aiff"}
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type intSample interface {
	int8 | int16 | int32
}

// source exposes the integer PCM of an aiff.Decoder as a signal of T.
type source[T intSample] struct {
	dec    aiffReader
	spec   audio.SignalSpec
	shift  uint
	frames uint64
	pos    uint64
	intBuf *goaudio.IntBuffer
}

func newSource[T intSample](dec aiffReader, spec audio.SignalSpec, shift uint, frames uint64) *source[T] {
	return &source[T]{dec: dec, spec: spec, shift: shift, frames: frames}
}

func (s *source[T]) Spec() audio.SignalSpec { return s.spec }
func (s *source[T]) Pos() uint64            { return s.pos }
func (s *source[T]) Len() uint64            { return s.frames }

func (s *source[T]) ReadSamples(dst []T) (int, error) {
	ch := int(s.spec.Channels.Count)

	want := len(dst) - len(dst)%ch
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: buffer of %d samples is shorter than one frame", audio.ErrSignalMismatch, len(dst))
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:want]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return 0, nil
		}

		return 0, audio.WrapIO(err)
	}

	// a truncated file can end inside a frame
	n -= n % ch

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = T(v << s.shift)
	}

	s.pos += uint64(n / ch)

	return n, nil
}

type Decoder struct{}

// Decode returns an int8, int16 or int32 signal depending on the bit depth.
// 24-bit samples are widened to the full int32 range.
func (Decoder) Decode(r io.Reader) (audio.TaggedSignal, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", audio.WrapIO(err))
		}

		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	spec := audio.NewSignalSpec(uint32(format.SampleRate), uint32(format.NumChannels))
	frames := uint64(dec.NumSampleFrames)

	switch dec.BitDepth {
	case 8:
		return audio.Tag[int8](newSource[int8](dec, spec, 0, frames)), nil
	case 16:
		return audio.Tag[int16](newSource[int16](dec, spec, 0, frames)), nil
	case 24:
		return audio.Tag[int32](newSource[int32](dec, spec, 8, frames)), nil
	case 32:
		return audio.Tag[int32](newSource[int32](dec, spec, 0, frames)), nil
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	}
}
