// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/gen"
)

func streamOf(st audio.SampleType, spec audio.SignalSpec) audio.FormatDataBuilder[Format, Codec] {
	var s audio.StreamSpecBuilder[Codec]
	s.SetSampleType(st)
	s.Decoded = spec.Builder()

	return audio.NewFormatDataBuilder(Wave, s)
}

func TestWriter_RoundTripSeekable(t *testing.T) {
	t.Parallel()

	spec := audio.NewSignalSpec(48000, 1)
	path := filepath.Join(t.TempDir(), "sine.wav")

	f, err := os.Create(path)
	require.NoError(t, err)

	w, err := NewWriter(f, streamOf(audio.Float32, spec))
	require.NoError(t, err)
	assert.Equal(t, CodecFloat, w.StreamSpec().Codec)

	enc, err := w.Encoder()
	require.NoError(t, err)

	frames, err := audio.CopyTagged(enc, audio.Tag[float32](gen.SineSeconds[float32](spec, 1, 440, 0.6)), 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(48000), frames)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 12+8+18+8+48000*4)
	assert.Equal(t, uint32(len(data)-8), binary.LittleEndian.Uint32(data[4:8]))

	sig, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, spec, sig.Spec())

	r, err := audio.TaggedReaderAs[float32](sig)
	require.NoError(t, err)

	got, err := audio.ReadAll(r)
	require.NoError(t, err)

	want, err := audio.ReadAll[float32](gen.SineSeconds[float32](spec, 1, 440, 0.6))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriter_StreamingPlaceholder(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	w, err := NewWriter(&out, streamOf(audio.Int16, audio.NewSignalSpec(8000, 2)))
	require.NoError(t, err)

	n, err := w.Write([]byte{1, 0, 2, 0, 3, 0, 4, 0, 9})
	require.NoError(t, err)
	assert.Equal(t, 8, n, "writes are trimmed to whole frames")
	require.NoError(t, w.Finalize())

	data := out.Bytes()
	assert.Equal(t, uint32(unknownSize), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(unknownSize), binary.LittleEndian.Uint32(data[40:44]))

	rd, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	got := make([]byte, 16)
	n, err = rd.Read(got)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 2, 0, 3, 0, 4, 0}, got[:n])
}

func TestWriter_DeclaredLength(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	w, err := NewWriter(&out, streamOf(audio.Uint8, audio.NewSignalSpec(8000, 1)), WithDataLen(3))
	require.NoError(t, err)

	n, err := w.Write([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = w.Write([]byte{6})
	require.NoError(t, err)
	assert.Zero(t, n, "a full data chunk accepts nothing")

	require.NoError(t, w.Close())
	require.NoError(t, w.Finalize(), "finalize is idempotent")

	data := out.Bytes()
	assert.Len(t, data, 44+4, "odd data is padded")
	assert.Equal(t, uint32(40), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[40:44]))

	_, err = w.Write([]byte{1})
	require.ErrorIs(t, err, ErrFinalized)
}

func TestWriter_DeclaredLengthNotReached(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(io.Discard, streamOf(audio.Int16, audio.NewSignalSpec(8000, 1)), WithDataLen(4))
	require.NoError(t, err)

	_, err = w.Write([]byte{1, 2})
	require.NoError(t, err)
	require.ErrorIs(t, w.Finalize(), audio.ErrMissingData)

	_, err = NewWriter(io.Discard, streamOf(audio.Int16, audio.NewSignalSpec(8000, 1)), WithDataLen(3))
	require.ErrorIs(t, err, audio.ErrSignalMismatch)
}

func TestNewWriter_Validation(t *testing.T) {
	t.Parallel()

	mono := audio.NewSignalSpec(8000, 1)

	withCodec := func(c Codec, st audio.SampleType, spec audio.SignalSpec) audio.FormatDataBuilder[Format, Codec] {
		return audio.NewFormatDataBuilder(Wave, audio.NewStreamSpecBuilder(c, st, spec))
	}

	tests := []struct {
		name    string
		format  audio.FormatDataBuilder[Format, Codec]
		wantErr error
	}{
		{"no stream", audio.FormatDataBuilder[Format, Codec]{}, audio.ErrMissingData},
		{"two streams", func() audio.FormatDataBuilder[Format, Codec] {
			b := streamOf(audio.Int16, mono)
			b.Streams = append(b.Streams, b.Streams[0])

			return b
		}(), audio.ErrUnsupported},
		{"incomplete stream", audio.NewFormatDataBuilder(Wave, audio.StreamSpecBuilder[Codec]{SampleType: audio.Ptr(audio.Int16)}), audio.ErrMissingData},
		{"int8", streamOf(audio.Int8, mono), audio.ErrUnsupported},
		{"uint16", streamOf(audio.Uint16, mono), audio.ErrUnsupported},
		{"float codec with ints", withCodec(CodecFloat, audio.Int16, mono), audio.ErrUnsupported},
		{"mask without extensible", withCodec(CodecPCM, audio.Int16, audio.SignalSpec{SampleRate: 8000, Channels: audio.Channels{Count: 2, Mask: 3}}), audio.ErrUnsupported},
		{"foreign codec", withCodec(Codec(0x55), audio.Int16, mono), audio.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			_, err := NewWriter(&out, tt.format)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, out.Len(), "nothing is written for a rejected stream")
		})
	}
}

func TestNewWriter_ExtensibleChosen(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	spec := audio.SignalSpec{SampleRate: 48000, Channels: audio.Channels{Count: 6, Mask: 0x3f}}

	w, err := NewWriter(&out, streamOf(audio.Int32, spec))
	require.NoError(t, err)
	assert.Equal(t, CodecExtensible, w.StreamSpec().Codec)
	require.NoError(t, w.Finalize())

	rd, err := NewReader(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, spec, rd.StreamSpec().Decoded)
	assert.Equal(t, audio.Int32, rd.StreamSpec().SampleType)
}

func TestWriteFormat(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(io.Discard, streamOf(audio.Uint8, audio.NewSignalSpec(8000, 1)))
	require.NoError(t, err)

	_, err = w.WriteFormat(1, []byte{1})
	require.ErrorIs(t, err, audio.ErrNotFound)

	n, err := w.WriteFormat(0, []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(2), w.Pos())
	assert.Equal(t, uint64(2), w.Len())
}

func TestWriteWAV16(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 1000)
	for i := range samples {
		samples[i] = int16((i % 100) * 100)
	}

	var out bytes.Buffer
	require.NoError(t, WriteWAV16(&out, 8000, samples))

	data := out.Bytes()
	require.Len(t, data, 2044)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(2036), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, "WAVEfmt ", string(data[8:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[20:22]))
	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(data[28:32]))
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(2000), binary.LittleEndian.Uint32(data[40:44]))

	require.ErrorIs(t, WriteSamples(&out, audio.NewSignalSpec(8000, 2), []int16{1}), audio.ErrSignalMismatch)
}

func TestEncoder_Int8StoredAsUint8(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, WriteSamples(&out, audio.NewSignalSpec(8000, 1), []int8{-128, -1, 0, 127}))

	sig, err := Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, audio.Uint8, sig.SampleType())

	r, err := audio.TaggedReaderAs[uint8](sig)
	require.NoError(t, err)

	got, err := audio.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 127, 128, 255}, got)
}

func TestNewWriterFor(t *testing.T) {
	t.Parallel()

	surround := audio.SignalSpec{SampleRate: 48000, Channels: audio.Channels{Count: 6, Mask: 0x3f}}

	tests := []struct {
		name    string
		stream  audio.StreamSpecBuilder[audio.KnownCodec]
		codec   Codec
		wantErr error
	}{
		{"float", audio.NewStreamSpecBuilder(audio.CodecPCM, audio.Float32, audio.NewSignalSpec(8000, 2)), CodecFloat, nil},
		{"integer", audio.NewStreamSpecBuilder(audio.CodecPCM, audio.Int16, audio.NewSignalSpec(8000, 1)), CodecPCM, nil},
		{"surround", audio.NewStreamSpecBuilder(audio.CodecPCM, audio.Int32, surround), CodecExtensible, nil},
		{"unknown codec", audio.NewStreamSpecBuilder(audio.KnownCodec(9), audio.Int16, audio.NewSignalSpec(8000, 1)), 0, audio.ErrUnsupported},
		{"no sample type", audio.StreamSpecBuilder[audio.KnownCodec]{Decoded: audio.NewSignalSpec(8000, 1).Builder()}, 0, audio.ErrMissingData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := NewWriterFor(io.Discard, tt.stream)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.codec, w.StreamSpec().Codec)
			assert.Equal(t, *tt.stream.Decoded.Channels, w.StreamSpec().Decoded.Channels)
		})
	}
}
