// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/internal/audiotest"
)

func streamSpec(st audio.SampleType, channels uint32) audio.StreamSpec[audio.KnownCodec] {
	b := audio.NewStreamSpecBuilder(audio.CodecPCM, st, audio.NewSignalSpec(8000, channels))
	if err := InferSpec(&b); err != nil {
		panic(err)
	}

	s, err := b.Build()
	if err != nil {
		panic(err)
	}

	return s
}

func TestInferSpec(t *testing.T) {
	t.Parallel()

	b := audio.NewStreamSpecBuilder(audio.CodecPCM, audio.Int16, audio.NewSignalSpec(48000, 2))

	require.NoError(t, InferSpec(&b))
	assert.Equal(t, uint16(4), *b.BlockAlign)
	assert.Equal(t, uint32(192000), *b.AvgByteRate)

	once := b.Clone()
	require.NoError(t, InferSpec(&b), "inferring twice is a no-op")
	assert.Equal(t, once, b)
}

func TestInferSpec_Partial(t *testing.T) {
	t.Parallel()

	b := audio.StreamSpecBuilder[audio.KnownCodec]{SampleType: audio.Ptr(audio.Float64)}
	b.Decoded.SetChannels(audio.Mono)

	require.NoError(t, InferSpec(&b))
	assert.Equal(t, uint16(8), *b.BlockAlign)
	assert.Nil(t, b.AvgByteRate)
}

func TestInferSpec_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		build   func() audio.StreamSpecBuilder[audio.KnownCodec]
		wantErr error
	}{
		{
			name: "missing sample type",
			build: func() audio.StreamSpecBuilder[audio.KnownCodec] {
				return audio.StreamSpecBuilder[audio.KnownCodec]{}
			},
			wantErr: audio.ErrMissingData,
		},
		{
			name: "conflicting block align",
			build: func() audio.StreamSpecBuilder[audio.KnownCodec] {
				b := audio.NewStreamSpecBuilder(audio.CodecPCM, audio.Int32, audio.NewSignalSpec(8000, 2))
				b.SetBlockAlign(4)

				return b
			},
			wantErr: audio.ErrUnsupported,
		},
		{
			name: "conflicting byte rate",
			build: func() audio.StreamSpecBuilder[audio.KnownCodec] {
				b := audio.NewStreamSpecBuilder(audio.CodecPCM, audio.Uint8, audio.NewSignalSpec(8000, 1))
				b.SetAvgByteRate(16000)

				return b
			},
			wantErr: audio.ErrUnsupported,
		},
		{
			name: "codec without pcm equivalent",
			build: func() audio.StreamSpecBuilder[audio.KnownCodec] {
				return audio.NewStreamSpecBuilder(audio.KnownCodec(42), audio.Int16, audio.NewSignalSpec(8000, 1))
			},
			wantErr: audio.ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := tt.build()
			before := b.Clone()

			require.ErrorIs(t, InferSpec(&b), tt.wantErr)
			assert.Equal(t, before, b, "builder must be untouched on failure")
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, st := range audio.SampleTypes {
		for _, endian := range []Endian{Little, Big} {
			t.Run(st.String()+"/"+endian.String(), func(t *testing.T) {
				t.Parallel()

				roundTrip(t, st, endian)
			})
		}
	}
}

func roundTrip(t *testing.T, st audio.SampleType, endian Endian) {
	t.Helper()

	switch st {
	case audio.Int8:
		checkRoundTrip[int8](t, endian)
	case audio.Int16:
		checkRoundTrip[int16](t, endian)
	case audio.Int32:
		checkRoundTrip[int32](t, endian)
	case audio.Int64:
		checkRoundTrip[int64](t, endian)
	case audio.Uint8:
		checkRoundTrip[uint8](t, endian)
	case audio.Uint16:
		checkRoundTrip[uint16](t, endian)
	case audio.Uint32:
		checkRoundTrip[uint32](t, endian)
	case audio.Uint64:
		checkRoundTrip[uint64](t, endian)
	case audio.Float32:
		checkRoundTrip[float32](t, endian)
	case audio.Float64:
		checkRoundTrip[float64](t, endian)
	}
}

func checkRoundTrip[T audio.Sample](t *testing.T, endian Endian) {
	t.Helper()

	spec := streamSpec(audio.SampleTypeOf[T](), 2)

	want := make([]T, 2*37)
	for i, p := 0, asBytes(want); i < len(p); i++ {
		p[i] = byte(i*37 + 11)
	}

	// odd chunks force partial frames on both sides
	out := audiotest.NewByteStream(spec, nil, 3)

	enc, err := NewEncoder[T](audio.StreamWriter[audio.KnownCodec](out), endian)
	require.NoError(t, err)

	frames, err := audio.Copy[T](enc, audio.NewBuffer(spec.Decoded, append([]T(nil), want...)), make([]T, 10))
	require.NoError(t, err)
	assert.Equal(t, uint64(37), frames)
	assert.Len(t, out.Data, len(want)*audio.SampleTypeOf[T]().Size())

	in := audiotest.NewByteStream(spec, out.Data, 5)

	dec, err := NewDecoder[T](audio.StreamReader[audio.KnownCodec](in), endian)
	require.NoError(t, err)
	assert.Equal(t, uint64(37), dec.Len())

	got, err := audio.ReadAll[T](dec)
	require.NoError(t, err)
	assert.Equal(t, asBytes(want), asBytes(got))
}

func TestEncoder_ByteOrder(t *testing.T) {
	t.Parallel()

	spec := streamSpec(audio.Int16, 1)

	tests := []struct {
		endian Endian
		want   []byte
	}{
		{Little, []byte{0x02, 0x01, 0xfe, 0xff}},
		{Big, []byte{0x01, 0x02, 0xff, 0xfe}},
	}

	for _, tt := range tests {
		t.Run(tt.endian.String(), func(t *testing.T) {
			t.Parallel()

			out := audiotest.NewByteStream(spec, nil, 0)

			enc, err := NewEncoder[int16](audio.StreamWriter[audio.KnownCodec](out), tt.endian)
			require.NoError(t, err)

			samples := []int16{0x0102, -2}
			require.NoError(t, audio.WriteExact[int16](enc, samples))
			require.NoError(t, enc.Flush())

			assert.Equal(t, tt.want, out.Data)
			assert.Equal(t, []int16{0x0102, -2}, samples, "caller buffer must not be swapped")
			assert.Equal(t, uint64(2), enc.Pos())
		})
	}
}

func TestDecoder_PartialTrailingFrame(t *testing.T) {
	t.Parallel()

	spec := streamSpec(audio.Int16, 1)
	in := audiotest.NewByteStream(spec, []byte{1, 0, 2}, 1)

	dec, err := NewDecoder[int16](audio.StreamReader[audio.KnownCodec](in), Little)
	require.NoError(t, err)

	buf := make([]int16, 4)

	n, err := dec.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, []int16{1}, buf[:n])

	_, err = dec.ReadSamples(buf)
	require.ErrorIs(t, err, audio.ErrSignalMismatch)
}

func TestDecoder_ShortBuffer(t *testing.T) {
	t.Parallel()

	spec := streamSpec(audio.Float32, 2)

	dec, err := NewDecoder[float32](audio.StreamReader[audio.KnownCodec](audiotest.NewByteStream(spec, make([]byte, 16), 0)), Native)
	require.NoError(t, err)

	_, err = dec.ReadSamples(make([]float32, 1))
	require.ErrorIs(t, err, audio.ErrSignalMismatch)
}

func TestDecoder_Seek(t *testing.T) {
	t.Parallel()

	spec := streamSpec(audio.Uint16, 1)
	in := audiotest.NewByteStream(spec, []byte{0, 1, 0, 2, 0, 3, 0, 4}, 3)

	dec, err := NewDecoder[uint16](audio.StreamReader[audio.KnownCodec](in), Big)
	require.NoError(t, err)

	buf := make([]uint16, 2)

	n, err := dec.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1}, buf[:n], "the third byte stays buffered")
	assert.Equal(t, uint64(1), dec.Pos())

	require.NoError(t, dec.Seek(2))
	assert.Equal(t, uint64(3), dec.Pos())

	n, err = dec.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, []uint16{4}, buf[:n])

	require.NoError(t, dec.Seek(-4))
	require.ErrorIs(t, dec.Seek(-1), audio.ErrUnsupported)

	got, err := audio.ReadAll[uint16](dec)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3, 4}, got)
}

func TestNewDecoder_Validation(t *testing.T) {
	t.Parallel()

	spec := streamSpec(audio.Int16, 1)
	in := audio.StreamReader[audio.KnownCodec](audiotest.NewByteStream(spec, nil, 0))

	_, err := NewDecoder[float32](in, Little)
	require.ErrorIs(t, err, audio.ErrSignalMismatch)

	bad := spec
	bad.BlockAlign = 3
	_, err = NewDecoder[int16](audio.StreamReader[audio.KnownCodec](audiotest.NewByteStream(bad, nil, 0)), Little)
	require.ErrorIs(t, err, audio.ErrUnsupported)

	bad = spec
	bad.Codec = 7
	_, err = NewDecoder[int16](audio.StreamReader[audio.KnownCodec](audiotest.NewByteStream(bad, nil, 0)), Little)
	require.ErrorIs(t, err, audio.ErrUnsupported)
}

func TestNewTaggedDecoder(t *testing.T) {
	t.Parallel()

	for _, st := range audio.SampleTypes {
		t.Run(st.String(), func(t *testing.T) {
			t.Parallel()

			spec := streamSpec(st, 1)

			sig, err := NewTaggedDecoder[audio.KnownCodec](audiotest.NewByteStream(spec, nil, 0), Little)
			require.NoError(t, err)
			assert.Equal(t, st, sig.SampleType())
			assert.Equal(t, spec.Decoded, sig.Spec())

			enc, err := NewTaggedEncoder[audio.KnownCodec](audiotest.NewByteStream(spec, nil, 0), Little)
			require.NoError(t, err)
			assert.Equal(t, st, enc.SampleType())
		})
	}

	bad := streamSpec(audio.Int16, 1)
	bad.SampleType = 0

	_, err := NewTaggedDecoder[audio.KnownCodec](audiotest.NewByteStream(bad, nil, 0), Little)
	require.ErrorIs(t, err, audio.ErrUnsupported)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	spec := streamSpec(audio.Float32, 1)
	out := audiotest.NewByteStream(spec, nil, 0)
	src := audio.Tag[float32](audio.NewBuffer(spec.Decoded, []float32{0.5, -0.25}))

	frames, err := Encode[audio.KnownCodec](out, src, Little, 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), frames)
	assert.Equal(t, []byte{0, 0, 0, 0x3f, 0, 0, 0x80, 0xbe}, out.Data)

	_, err = Encode[audio.KnownCodec](out, audio.Tag[int16](audio.NewSilentBuffer[int16](spec.Decoded, 1)), Little, 16)
	require.ErrorIs(t, err, audio.ErrSignalMismatch)
}

func TestSwap(t *testing.T) {
	t.Parallel()

	b := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	swap(b, 4)
	assert.Equal(t, []byte{4, 3, 2, 1, 8, 7, 6, 5}, b)

	swap(b, 1)
	assert.Equal(t, []byte{4, 3, 2, 1, 8, 7, 6, 5}, b)
}
