// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
	"go.uber.org/zap"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/codec/pcm"
)

// unknownSize is the data chunk size written while the length is not known.
const unknownSize = math.MaxUint32

// maxFmtSize bounds the fmt chunk we are willing to buffer.
const maxFmtSize = 1 << 12

// Reader demultiplexes the single PCM stream of a WAVE file. It is a
// StreamReader of the data chunk: Pos, Len and Seek are in bytes relative to
// the start of the samples.
type Reader struct {
	r    io.Reader
	log  *zap.Logger
	data audio.FormatData[Format, Codec]
	fmt  fmtChunk

	align   uint64
	dataLen uint64 // unknownSize when the writer did not patch it
	pos     uint64
}

// NewReader parses the RIFF header and walks the chunks up to the start of
// the data chunk. Chunks other than fmt and data are skipped.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	o := newOptions(opts)

	if len(o.expected.Streams) > 1 {
		return nil, fmt.Errorf("%w: WAVE holds one stream, %d requested", audio.ErrUnsupported, len(o.expected.Streams))
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	rd := &Reader{r: r, log: o.log}

	var haveFmt bool

	for {
		id, size, err := p.IDnSize()
		if err != nil {
			return nil, fmt.Errorf("%w: no data chunk: %w", ErrUnsupportedWavChunks, audio.WrapIO(err))
		}

		switch id {
		case riff.FmtID:
			if size > maxFmtSize {
				return nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavChunks, size)
			}

			buf := make([]byte, size+size&1)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: fmt chunk: %w", ErrUnsupportedWavChunks, audio.WrapIO(err))
			}

			if rd.fmt, err = decodeFmt(buf[:size]); err != nil {
				return nil, err
			}

			haveFmt = true
		case riff.DataFormatID:
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedWavChunks)
			}

			rd.dataLen = uint64(size)

			if err := rd.negotiate(o.expected); err != nil {
				return nil, err
			}

			rd.log.Debug("wav: data chunk",
				zap.Stringer("spec", rd.data.Streams[0]),
				zap.Uint32("size", size))

			return rd, nil
		default:
			rd.log.Debug("wav: skipping chunk", zap.ByteString("id", id[:]), zap.Uint32("size", size))

			if _, err := io.CopyN(io.Discard, r, int64(size)+int64(size&1)); err != nil {
				return nil, fmt.Errorf("%w: chunk %q: %w", ErrUnsupportedWavChunks, id[:], audio.WrapIO(err))
			}
		}
	}
}

func (rd *Reader) negotiate(expected audio.FormatDataBuilder[Format, Codec]) error {
	stream, err := rd.fmt.streamSpec()
	if err != nil {
		return err
	}

	if err := pcm.InferSpec(&stream); err != nil {
		return fmt.Errorf("%w: inconsistent fmt chunk: %w", audio.ErrInvalidData, err)
	}

	b := audio.NewFormatDataBuilder(Wave, stream)
	if err := b.Merge(expected); err != nil {
		return fmt.Errorf("%w: file does not match the expected format: %w", audio.ErrInvalidData, err)
	}

	if rd.data, err = b.Build(); err != nil {
		return err
	}

	rd.align = uint64(rd.data.Streams[0].BlockAlign)

	return nil
}

func (rd *Reader) FormatData() audio.FormatData[Format, Codec] { return rd.data }

// StreamSpec is the spec of the only stream.
func (rd *Reader) StreamSpec() audio.StreamSpec[Codec] { return rd.data.Streams[0] }

func (rd *Reader) Unwrap() any { return rd.r }

func (rd *Reader) Pos() uint64 { return rd.pos }

// Len is the size of the data chunk in bytes, 0 if the file was written
// without a known length.
func (rd *Reader) Len() uint64 {
	if rd.dataLen == unknownSize {
		return 0
	}

	return rd.dataLen
}

// Read reads whole frames of the data chunk. A non-empty buf shorter than one
// frame is audio.ErrSignalMismatch.
func (rd *Reader) Read(buf []byte) (int, error) {
	want := uint64(len(buf))
	if rd.dataLen != unknownSize {
		want = min(want, rd.dataLen-rd.pos)
	}

	want -= want % rd.align

	if want == 0 {
		if len(buf) == 0 || rd.pos == rd.dataLen {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: buffer of %d bytes is shorter than a %d byte frame", audio.ErrSignalMismatch, len(buf), rd.align)
	}

	n, err := io.ReadAtLeast(rd.r, buf[:want], int(rd.align))
	if rest := uint64(n) % rd.align; err == nil && rest != 0 {
		var m int

		m, err = io.ReadFull(rd.r, buf[n:uint64(n)+rd.align-rest])
		n += m

		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
	}

	switch {
	case errors.Is(err, io.EOF):
		if rd.dataLen != unknownSize {
			rd.log.Debug("wav: data chunk truncated", zap.Uint64("pos", rd.pos), zap.Uint64("declared", rd.dataLen))
		}

		return 0, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		rd.pos += uint64(n)
		return 0, fmt.Errorf("%w: data ends inside a frame", audio.ErrSignalMismatch)
	case err != nil:
		rd.pos += uint64(n)
		return 0, audio.WrapIO(err)
	}

	rd.pos += uint64(n)

	return n, nil
}

// ReadFormat reads from the only stream.
func (rd *Reader) ReadFormat(buf []byte) (int, int, error) {
	n, err := rd.Read(buf)
	return 0, n, err
}

// Seek moves by offset bytes, which must be a whole number of frames. The
// underlying reader must be an io.Seeker.
func (rd *Reader) Seek(offset int64) error {
	if offset%int64(rd.align) != 0 {
		return fmt.Errorf("%w: seek by %d bytes with %d byte frames", audio.ErrSignalMismatch, offset, rd.align)
	}

	target := int64(rd.pos) + offset
	if target < 0 || (rd.dataLen != unknownSize && uint64(target) > rd.dataLen) {
		return fmt.Errorf("%w: seek to byte %d of the data chunk", audio.ErrUnsupported, target)
	}

	s, ok := rd.r.(io.Seeker)
	if !ok {
		return fmt.Errorf("%w: %T cannot seek", audio.ErrUnsupported, rd.r)
	}

	if _, err := s.Seek(offset, io.SeekCurrent); err != nil {
		return audio.WrapIO(err)
	}

	rd.pos = uint64(target)

	return nil
}

// Signal decodes the stream into samples of the type declared by the file.
func (rd *Reader) Signal() (audio.TaggedSignal, error) {
	return pcm.NewTaggedDecoder[Codec](rd, pcm.Little)
}
