// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ioStream adapts a plain io.Reader or io.Writer to the stream interfaces.
// io.EOF becomes the (0, nil) exhaustion result and other failures are
// classified with WrapIO.
type ioStream[C CodecTag] struct {
	spec StreamSpec[C]
	r    io.Reader
	w    io.Writer
	pos  uint64
	size uint64
	// failure that arrived together with data, reported by the next Read
	pending error
}

// StreamFromReader exposes r as a StreamReader with the given spec. When r
// is an io.Seeker the stream is seekable, in bytes relative to the current
// position.
func StreamFromReader[C CodecTag](r io.Reader, spec StreamSpec[C]) StreamReader[C] {
	return &ioStream[C]{spec: spec, r: r}
}

// SizedStreamFromReader is StreamFromReader for input of a known byte size.
// The returned stream reports it through Len.
func SizedStreamFromReader[C CodecTag](r io.Reader, spec StreamSpec[C], size uint64) StreamReader[C] {
	return &sizedStream[C]{ioStream: ioStream[C]{spec: spec, r: r, size: size}}
}

// StreamToWriter exposes w as a StreamWriter with the given spec. Flush
// forwards to w when it has a Flush() error method.
func StreamToWriter[C CodecTag](w io.Writer, spec StreamSpec[C]) StreamWriter[C] {
	return &ioStream[C]{spec: spec, w: w}
}

func (s *ioStream[C]) StreamSpec() StreamSpec[C] { return s.spec }
func (s *ioStream[C]) Pos() uint64               { return s.pos }

func (s *ioStream[C]) Unwrap() any {
	if s.r != nil {
		return s.r
	}

	return s.w
}

func (s *ioStream[C]) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	if err := s.pending; err != nil {
		s.pending = nil
		return 0, err
	}

	n, err := s.r.Read(buf)
	s.pos += uint64(n)

	switch {
	case errors.Is(err, io.EOF):
		return n, nil
	case err != nil && n > 0:
		s.pending = WrapIO(err)
		return n, nil
	}

	return n, WrapIO(err)
}

func (s *ioStream[C]) Write(buf []byte) (int, error) {
	n, err := s.w.Write(buf)
	s.pos += uint64(n)

	return n, WrapIO(err)
}

func (s *ioStream[C]) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return WrapIO(f.Flush())
	}

	return nil
}

func (s *ioStream[C]) Seek(offset int64) error {
	var seeker io.Seeker

	if s.r != nil {
		seeker, _ = s.r.(io.Seeker)
	} else {
		seeker, _ = s.w.(io.Seeker)
	}

	if seeker == nil {
		return fmt.Errorf("%w: underlying %T cannot seek", ErrUnsupported, s.Unwrap())
	}

	target := int64(s.pos) + offset
	if target < 0 {
		return fmt.Errorf("%w: seek to byte %d", ErrUnsupported, target)
	}

	if _, err := seeker.Seek(offset, io.SeekCurrent); err != nil {
		return WrapIO(err)
	}

	s.pos = uint64(target)

	return nil
}

type sizedStream[C CodecTag] struct {
	ioStream[C]
}

func (s *sizedStream[C]) Len() uint64 { return s.size }
