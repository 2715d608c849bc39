// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/phonic/audio"
)

// Extensions and MIME types a registry maps to this package.
var (
	Extensions = []string{"ogg", "oga"}
	MIMETypes  = []string{"audio/ogg", "audio/vorbis", "application/ogg"}
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read decodes interleaved samples into p and returns how many were
	// stored.
	Read(p []float32) (int, error)
	// Length is the number of frames, 0 when unknown.
	Length() int64
}

// positioner is implemented by oggvorbis.Reader. SetPosition only works
// when the input is an io.Seeker.
type positioner interface {
	SetPosition(pos int64) error
}

// source exposes an oggvorbis.Reader as a float32 signal.
type source struct {
	dec  oggReader
	spec audio.SignalSpec
	pos  uint64
}

func newSource(dec oggReader) (*source, error) {
	if dec.Channels() <= 0 || dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", audio.ErrUnsupported, dec.Channels(), dec.SampleRate())
	}

	return &source{
		dec:  dec,
		spec: audio.NewSignalSpec(uint32(dec.SampleRate()), uint32(dec.Channels())),
	}, nil
}

func (s *source) Spec() audio.SignalSpec { return s.spec }
func (s *source) Pos() uint64            { return s.pos }

// Len is the length in frames, 0 when the stream does not declare it.
func (s *source) Len() uint64 {
	if n := s.dec.Length(); n > 0 {
		return uint64(n)
	}

	return 0
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	ch := int(s.spec.Channels.Count)

	want := len(dst) - len(dst)%ch
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: buffer of %d samples is shorter than one frame", audio.ErrSignalMismatch, len(dst))
	}

	n, err := s.dec.Read(dst[:want])

	// complete a frame the decoder split
	for err == nil && n%ch != 0 {
		var m int

		m, err = s.dec.Read(dst[n : n+ch-n%ch])
		n += m

		if m == 0 && err == nil {
			err = io.ErrUnexpectedEOF
		}
	}

	switch {
	case n%ch != 0:
		return 0, fmt.Errorf("%w: stream ends inside a frame", audio.ErrSignalMismatch)
	case n > 0:
		// a terminal error comes back on the next call
		s.pos += uint64(n / ch)
		return n, nil
	case err == nil, errors.Is(err, io.EOF):
		return 0, nil
	default:
		return 0, audio.WrapIO(err)
	}
}

// Seek moves by offset frames. It needs a seekable input.
func (s *source) Seek(offset int64) error {
	p, ok := s.dec.(positioner)
	if !ok {
		return fmt.Errorf("%w: %T cannot seek", audio.ErrUnsupported, s.dec)
	}

	target := int64(s.pos) + offset
	if target < 0 || (s.Len() > 0 && uint64(target) > s.Len()) {
		return fmt.Errorf("%w: seek to frame %d", audio.ErrUnsupported, target)
	}

	if err := p.SetPosition(target); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrUnsupported, err)
	}

	s.pos = uint64(target)

	return nil
}

type Decoder struct{}

// Decode returns a float32 signal in the range [-1, 1].
func (Decoder) Decode(r io.Reader) (audio.TaggedSignal, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	src, err := newSource(dec)
	if err != nil {
		return nil, err
	}

	return audio.Tag[float32](src), nil
}
