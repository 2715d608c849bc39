// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/multierr"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/codec/pcm"
)

// Extensions and MIME types a registry maps to this package.
var (
	Extensions = []string{"wav", "wave"}
	MIMETypes  = []string{"audio/wav", "audio/x-wav", "audio/vnd.wave", "audio/wave"}
)

// Decoder opens WAVE files for a registry.
type Decoder struct {
	Options []Option
}

// Decode parses the header of r and returns a signal of the sample type the
// file declares.
func (d Decoder) Decode(r io.Reader) (audio.TaggedSignal, error) {
	rd, err := NewReader(r, d.Options...)
	if err != nil {
		return nil, err
	}

	return rd.Signal()
}

// Encoder writes WAVE files for a registry.
type Encoder struct {
	Options []Option
	// BufferFrames is the copy buffer size, 4096 frames when zero.
	BufferFrames int
}

// Encode writes every sample of src to w and finalizes the file. When src
// reports a non-zero finite length the header is written once with the final
// sizes; otherwise w should be an io.WriteSeeker.
//
// WAVE has no signed 8-bit layout; int8 signals are stored as uint8 with the
// origin moved to 128.
func (e Encoder) Encode(w io.Writer, src audio.TaggedSignal) error {
	if src.SampleType() == audio.Int8 {
		r, err := audio.TaggedReaderAs[int8](src)
		if err != nil {
			return err
		}

		src = audio.Tag[uint8](&offsetInt8{inner: r})
	}

	spec := src.Spec()
	st := src.SampleType()

	b := audio.NewStreamSpecBuilder(audio.CodecPCM, st, spec)
	if err := pcm.InferSpec(&b); err != nil {
		return err
	}

	opts := e.Options

	if frames, ok := audio.LenOf(src); ok && frames > 0 && frames != math.MaxUint64 {
		if pos, ok := audio.PosOf(src); ok && pos <= frames {
			opts = append(opts[:len(opts):len(opts)], WithDataLen((frames-pos)*uint64(*b.BlockAlign)))
		}
	}

	wr, err := NewWriterFor(w, b, opts...)
	if err != nil {
		return err
	}

	bufFrames := e.BufferFrames
	if bufFrames <= 0 {
		bufFrames = 4096
	}

	_, err = pcm.Encode[Codec](wr, src, pcm.Little, bufFrames)

	return multierr.Append(err, wr.Finalize())
}

// offsetInt8 reads a signed 8-bit signal as unsigned samples.
type offsetInt8 struct {
	inner   audio.Reader[int8]
	scratch []int8
}

func (o *offsetInt8) Spec() audio.SignalSpec { return o.inner.Spec() }
func (o *offsetInt8) Unwrap() any            { return o.inner }

func (o *offsetInt8) ReadSamples(buf []uint8) (int, error) {
	if cap(o.scratch) < len(buf) {
		o.scratch = make([]int8, len(buf))
	}

	in := o.scratch[:len(buf)]

	n, err := o.inner.ReadSamples(in)
	for i, v := range in[:n] {
		buf[i] = uint8(v) ^ 0x80
	}

	return n, err
}

// WriteSamples writes a complete WAVE file holding samples.
func WriteSamples[T audio.Sample](w io.Writer, spec audio.SignalSpec, samples []T) error {
	if spec.Channels.Count == 0 || len(samples)%int(spec.Channels.Count) != 0 {
		return fmt.Errorf("%w: %d samples for %s", audio.ErrSignalMismatch, len(samples), spec.Channels)
	}

	return Encoder{}.Encode(w, audio.Tag[T](audio.NewBuffer(spec, samples)))
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	return WriteSamples(w, audio.NewSignalSpec(uint32(sampleRate), 1), samples)
}
