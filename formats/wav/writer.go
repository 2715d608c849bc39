// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/codec/pcm"
)

// Writer multiplexes exactly one PCM stream into a WAVE file. The header is
// written by NewWriter; the chunk sizes are final from the start when the
// data length is declared with WithDataLen, otherwise they are written as
// 0xFFFFFFFF and patched by Finalize when the output is an io.WriteSeeker.
type Writer struct {
	w     io.Writer
	log   *zap.Logger
	data  audio.FormatData[Format, Codec]
	align uint64

	declared *uint64
	written  uint64

	start     int64 // offset of the RIFF header in a seekable output
	seekable  bool
	fmtLen    int
	finalized bool
}

// NewWriter validates format, which must hold one stream, infers the
// derived fields, and writes the header. A missing codec is chosen with
// CodecFor.
func NewWriter(w io.Writer, format audio.FormatDataBuilder[Format, Codec], opts ...Option) (*Writer, error) {
	o := newOptions(opts)

	switch n := len(format.Streams); {
	case n == 0:
		return nil, fmt.Errorf("%w: WAVE needs one stream", audio.ErrMissingData)
	case n > 1:
		return nil, fmt.Errorf("%w: WAVE holds one stream, %d given", audio.ErrUnsupported, n)
	}

	if format.Format != nil && *format.Format != Wave {
		return nil, fmt.Errorf("%w: format %s", audio.ErrUnsupported, *format.Format)
	}

	stream := format.Streams[0].Clone()
	if stream.Codec == nil && stream.SampleType != nil && stream.Decoded.Channels != nil {
		stream.SetCodec(CodecFor(*stream.SampleType, *stream.Decoded.Channels))
	}

	if err := pcm.InferSpec(&stream); err != nil {
		return nil, err
	}

	spec, err := stream.Build()
	if err != nil {
		return nil, err
	}

	f, err := fmtFromSpec(spec)
	if err != nil {
		return nil, err
	}

	wr := &Writer{
		w:        w,
		log:      o.log,
		data:     audio.FormatData[Format, Codec]{Format: Wave, Streams: []audio.StreamSpec[Codec]{spec}},
		align:    uint64(spec.BlockAlign),
		declared: o.dataLen,
	}

	if ws, ok := w.(io.WriteSeeker); ok {
		if wr.start, err = ws.Seek(0, io.SeekCurrent); err == nil {
			wr.seekable = true
		}
	}

	fmtBytes := f.encode()
	wr.fmtLen = len(fmtBytes)

	if d := wr.declared; d != nil {
		if *d%wr.align != 0 {
			return nil, fmt.Errorf("%w: %d data bytes with %d byte frames", audio.ErrSignalMismatch, *d, wr.align)
		}

		if *d > wr.maxData() {
			return nil, fmt.Errorf("%w: %d data bytes exceed the WAVE limit", audio.ErrUnsupported, *d)
		}
	}

	if err := wr.writeHeader(fmtBytes); err != nil {
		return nil, err
	}

	wr.log.Debug("wav: header written", zap.Stringer("spec", spec), zap.Bool("seekable", wr.seekable))

	return wr, nil
}

// NewWriterFor starts a writer from a stream description in the module-wide
// codec tags. The WAVE codec is picked from the sample type and channel
// layout, both of which must be set.
func NewWriterFor(w io.Writer, stream audio.StreamSpecBuilder[audio.KnownCodec], opts ...Option) (*Writer, error) {
	if stream.SampleType == nil || stream.Decoded.Channels == nil {
		return nil, fmt.Errorf("%w: sample type and channels pick the WAVE codec", audio.ErrMissingData)
	}

	st, ch := *stream.SampleType, *stream.Decoded.Channels

	b, err := audio.MapStreamSpecBuilder(stream, func(k audio.KnownCodec) (Codec, error) {
		return FromKnown(k, st, ch)
	})
	if err != nil {
		return nil, err
	}

	return NewWriter(w, audio.NewFormatDataBuilder(Wave, b), opts...)
}

func (w *Writer) headerLen() uint64 { return 12 + 8 + uint64(w.fmtLen) + 8 }

func (w *Writer) maxData() uint64 {
	limit := unknownSize - 1 - (w.headerLen() - 8)
	return limit - limit%w.align
}

// sizes returns the RIFF and data chunk size fields for n data bytes.
func (w *Writer) sizes(n uint64) (uint32, uint32) {
	return uint32(w.headerLen() - 8 + n + n&1), uint32(n)
}

func (w *Writer) writeHeader(fmtBytes []byte) error {
	riffSize, dataSize := uint32(unknownSize), uint32(unknownSize)
	if w.declared != nil {
		riffSize, dataSize = w.sizes(*w.declared)
	}

	le := binary.LittleEndian

	h := make([]byte, 0, w.headerLen())
	h = append(h, riff.RiffID[:]...)
	h = le.AppendUint32(h, riffSize)
	h = append(h, riff.WavFormatID[:]...)
	h = append(h, riff.FmtID[:]...)
	h = le.AppendUint32(h, uint32(len(fmtBytes)))
	h = append(h, fmtBytes...)
	h = append(h, riff.DataFormatID[:]...)
	h = le.AppendUint32(h, dataSize)

	if _, err := w.w.Write(h); err != nil {
		return audio.WrapIO(err)
	}

	return nil
}

func (w *Writer) FormatData() audio.FormatData[Format, Codec] { return w.data }
func (w *Writer) StreamSpec() audio.StreamSpec[Codec]         { return w.data.Streams[0] }
func (w *Writer) Unwrap() any                                 { return w.w }

// Pos is the number of data bytes written.
func (w *Writer) Pos() uint64 { return w.written }

// Len is the declared data length, or what was written so far.
func (w *Writer) Len() uint64 {
	if w.declared != nil {
		return *w.declared
	}

	return w.written
}

// Write appends whole frames to the data chunk. Once the declared length is
// reached it accepts nothing and returns (0, nil).
func (w *Writer) Write(buf []byte) (int, error) {
	if w.finalized {
		return 0, ErrFinalized
	}

	n := uint64(len(buf)) - uint64(len(buf))%w.align

	if w.declared != nil {
		n = min(n, *w.declared-w.written)
	} else if w.written+n > w.maxData() {
		return 0, fmt.Errorf("%w: data chunk would exceed the WAVE limit", audio.ErrUnsupported)
	}

	if n == 0 {
		if len(buf) == 0 || (w.declared != nil && w.written == *w.declared) {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: %d bytes do not form a %d byte frame", audio.ErrSignalMismatch, len(buf), w.align)
	}

	m, err := w.w.Write(buf[:n])
	w.written += uint64(m)

	return m, audio.WrapIO(err)
}

// WriteFormat writes to the only stream, 0.
func (w *Writer) WriteFormat(stream int, buf []byte) (int, error) {
	if stream != 0 {
		return 0, fmt.Errorf("%w: stream %d", audio.ErrNotFound, stream)
	}

	return w.Write(buf)
}

// Flush flushes the output if it has a Flush() error method.
func (w *Writer) Flush() error {
	if f, ok := w.w.(interface{ Flush() error }); ok {
		return audio.WrapIO(f.Flush())
	}

	return nil
}

// Finalize pads the data chunk to an even size and writes the final chunk
// sizes. It is a no-op after the first call. With a declared length that was
// not reached it fails with audio.ErrMissingData.
func (w *Writer) Finalize() error {
	if w.finalized {
		return nil
	}

	w.finalized = true

	if w.written&1 == 1 {
		if _, err := w.w.Write([]byte{0}); err != nil {
			return audio.WrapIO(err)
		}
	}

	switch {
	case w.declared != nil:
		if w.written != *w.declared {
			return fmt.Errorf("%w: declared %d data bytes, wrote %d", audio.ErrMissingData, *w.declared, w.written)
		}
	case w.seekable:
		if err := w.patch(); err != nil {
			return err
		}
	default:
		w.log.Debug("wav: output not seekable, chunk sizes left unknown", zap.Uint64("written", w.written))
		return w.Flush()
	}

	w.log.Debug("wav: finalized", zap.Uint64("written", w.written))

	return w.Flush()
}

func (w *Writer) patch() error {
	ws := w.w.(io.WriteSeeker)
	riffSize, dataSize := w.sizes(w.written)

	put := func(off int64, v uint32) error {
		if _, err := ws.Seek(w.start+off, io.SeekStart); err != nil {
			return err
		}

		_, err := ws.Write(binary.LittleEndian.AppendUint32(nil, v))

		return err
	}

	err := put(4, riffSize)
	if err == nil {
		err = put(int64(w.headerLen())-4, dataSize)
	}

	if err == nil {
		_, err = ws.Seek(0, io.SeekEnd)
	}

	return audio.WrapIO(err)
}

// Close finalizes the file and closes the output when it is an io.Closer.
func (w *Writer) Close() error {
	err := w.Finalize()

	if c, ok := w.w.(io.Closer); ok {
		err = multierr.Append(err, audio.WrapIO(c.Close()))
	}

	return err
}

// Encoder returns a Writer of samples of the stream's sample type.
func (w *Writer) Encoder() (audio.TaggedSignal, error) {
	return pcm.NewTaggedEncoder[Codec](w, pcm.Little)
}
