// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/phonic/audio"
)

// Codec is the wFormatTag of a WAVE fmt chunk.
type Codec uint16

const (
	CodecPCM        Codec = 0x0001
	CodecFloat      Codec = 0x0003
	CodecExtensible Codec = 0xFFFE
)

func (c Codec) String() string {
	switch c {
	case CodecPCM:
		return "WAVE_FORMAT_PCM"
	case CodecFloat:
		return "WAVE_FORMAT_IEEE_FLOAT"
	case CodecExtensible:
		return "WAVE_FORMAT_EXTENSIBLE"
	default:
		return fmt.Sprintf("WAVE_FORMAT(%#04x)", uint16(c))
	}
}

// Known maps every supported tag to linear PCM.
func (c Codec) Known() (audio.KnownCodec, error) {
	switch c {
	case CodecPCM, CodecFloat, CodecExtensible:
		return audio.CodecPCM, nil
	default:
		return 0, fmt.Errorf("%w: %s", audio.ErrUnsupported, c)
	}
}

// CodecFor picks the tag a writer uses for a sample type and channel layout:
// WAVE_FORMAT_EXTENSIBLE for more than two channels or an explicit mask,
// otherwise integer PCM or IEEE float.
func CodecFor(st audio.SampleType, ch audio.Channels) Codec {
	switch {
	case ch.Count > 2 || ch.Mask != 0:
		return CodecExtensible
	case st.IsFloat():
		return CodecFloat
	default:
		return CodecPCM
	}
}

// FromKnown converts a generic codec for the given sample type and layout.
func FromKnown(k audio.KnownCodec, st audio.SampleType, ch audio.Channels) (Codec, error) {
	if _, err := k.Known(); err != nil {
		return 0, err
	}

	return CodecFor(st, ch), nil
}

// Format is the container tag of this package. WAVE has a single value.
type Format uint8

// Wave is the only Format value.
const Wave Format = 1

func (Format) String() string { return "wave" }

func (f Format) Known() (audio.KnownFormat, error) {
	if f != Wave {
		return 0, fmt.Errorf("%w: format %d", audio.ErrUnsupported, uint8(f))
	}

	return audio.FormatWave, nil
}

// sampleTypeOf resolves the sample type stored by a linear codec with the
// given container size in bits.
func sampleTypeOf(c Codec, bits uint16) (audio.SampleType, error) {
	switch {
	case c == CodecPCM && bits == 8:
		return audio.Uint8, nil
	case c == CodecPCM && bits == 16:
		return audio.Int16, nil
	case c == CodecPCM && bits == 32:
		return audio.Int32, nil
	case c == CodecPCM && bits == 64:
		return audio.Int64, nil
	case c == CodecFloat && bits == 32:
		return audio.Float32, nil
	case c == CodecFloat && bits == 64:
		return audio.Float64, nil
	}

	return 0, fmt.Errorf("%w: %s with %d bits per sample", ErrUnsupportedWavLayout, c, bits)
}

// linearCodec is the inverse of sampleTypeOf.
func linearCodec(st audio.SampleType) (Codec, error) {
	switch st {
	case audio.Uint8, audio.Int16, audio.Int32, audio.Int64:
		return CodecPCM, nil
	case audio.Float32, audio.Float64:
		return CodecFloat, nil
	default:
		return 0, fmt.Errorf("%w: WAVE cannot store %s samples", ErrUnsupportedWavLayout, st)
	}
}
