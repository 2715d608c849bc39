// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/phonic/audio"
)

// NewTaggedDecoder picks the Decoder instantiation matching the sample type
// declared by the stream.
func NewTaggedDecoder[C audio.CodecTag](s audio.StreamReader[C], endian Endian) (audio.TaggedSignal, error) {
	switch st := s.StreamSpec().SampleType; st {
	case audio.Int8:
		return decoderOf[int8](s, endian)
	case audio.Int16:
		return decoderOf[int16](s, endian)
	case audio.Int32:
		return decoderOf[int32](s, endian)
	case audio.Int64:
		return decoderOf[int64](s, endian)
	case audio.Uint8:
		return decoderOf[uint8](s, endian)
	case audio.Uint16:
		return decoderOf[uint16](s, endian)
	case audio.Uint32:
		return decoderOf[uint32](s, endian)
	case audio.Uint64:
		return decoderOf[uint64](s, endian)
	case audio.Float32:
		return decoderOf[float32](s, endian)
	case audio.Float64:
		return decoderOf[float64](s, endian)
	default:
		return nil, fmt.Errorf("%w: sample type %s", audio.ErrUnsupported, st)
	}
}

// NewTaggedEncoder is the Encoder counterpart of NewTaggedDecoder. The
// result is a Writer of the stream's sample type.
func NewTaggedEncoder[C audio.CodecTag](s audio.StreamWriter[C], endian Endian) (audio.TaggedSignal, error) {
	switch st := s.StreamSpec().SampleType; st {
	case audio.Int8:
		return encoderOf[int8](s, endian)
	case audio.Int16:
		return encoderOf[int16](s, endian)
	case audio.Int32:
		return encoderOf[int32](s, endian)
	case audio.Int64:
		return encoderOf[int64](s, endian)
	case audio.Uint8:
		return encoderOf[uint8](s, endian)
	case audio.Uint16:
		return encoderOf[uint16](s, endian)
	case audio.Uint32:
		return encoderOf[uint32](s, endian)
	case audio.Uint64:
		return encoderOf[uint64](s, endian)
	case audio.Float32:
		return encoderOf[float32](s, endian)
	case audio.Float64:
		return encoderOf[float64](s, endian)
	default:
		return nil, fmt.Errorf("%w: sample type %s", audio.ErrUnsupported, st)
	}
}

// Encode writes every sample of src to s and flushes it. The stream must
// declare the sample type src carries.
func Encode[C audio.CodecTag](s audio.StreamWriter[C], src audio.TaggedSignal, endian Endian, bufFrames int) (uint64, error) {
	if st := s.StreamSpec().SampleType; st != src.SampleType() {
		return 0, fmt.Errorf("%w: stream expects %s, signal is %s", audio.ErrSignalMismatch, st, src.SampleType())
	}

	enc, err := NewTaggedEncoder(s, endian)
	if err != nil {
		return 0, err
	}

	return audio.CopyTagged(enc, src, bufFrames)
}

func decoderOf[T audio.Sample, C audio.CodecTag](s audio.StreamReader[C], endian Endian) (audio.TaggedSignal, error) {
	d, err := NewDecoder[T](s, endian)
	if err != nil {
		return nil, err
	}

	return audio.Tag[T](d), nil
}

func encoderOf[T audio.Sample, C audio.CodecTag](s audio.StreamWriter[C], endian Endian) (audio.TaggedSignal, error) {
	e, err := NewEncoder[T](s, endian)
	if err != nil {
		return nil, err
	}

	return audio.Tag[T](e), nil
}
