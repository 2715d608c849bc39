// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ik5/phonic/audio"
)

const (
	fmtSizePCM        = 16
	fmtSizeEx         = 18
	fmtSizeExtensible = 40
	extensibleCbSize  = 22
)

// guidTail is the part shared by the KSDATAFORMAT_SUBTYPE_* GUIDs after the
// two byte format code.
var guidTail = [14]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

type fmtChunk struct {
	Codec         Codec
	Channels      uint16
	SampleRate    uint32
	AvgByteRate   uint32
	BlockAlign    uint16
	BitsPerSample uint16
	// Extensible only.
	ValidBits   uint16
	ChannelMask uint32
	SubFormat   Codec
}

// linear is the codec that describes the sample encoding.
func (f fmtChunk) linear() Codec {
	if f.Codec == CodecExtensible {
		return f.SubFormat
	}

	return f.Codec
}

func decodeFmt(b []byte) (fmtChunk, error) {
	var f fmtChunk

	if len(b) < fmtSizePCM {
		return f, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavChunks, len(b))
	}

	le := binary.LittleEndian

	f.Codec = Codec(le.Uint16(b[0:2]))
	f.Channels = le.Uint16(b[2:4])
	f.SampleRate = le.Uint32(b[4:8])
	f.AvgByteRate = le.Uint32(b[8:12])
	f.BlockAlign = le.Uint16(b[12:14])
	f.BitsPerSample = le.Uint16(b[14:16])

	if f.Codec != CodecExtensible {
		return f, nil
	}

	if len(b) < fmtSizeExtensible || le.Uint16(b[16:18]) < extensibleCbSize {
		return f, fmt.Errorf("%w: short WAVE_FORMAT_EXTENSIBLE fmt chunk", ErrUnsupportedWavChunks)
	}

	f.ValidBits = le.Uint16(b[18:20])
	f.ChannelMask = le.Uint32(b[20:24])
	f.SubFormat = Codec(le.Uint16(b[24:26]))

	if !bytes.Equal(b[26:40], guidTail[:]) {
		return f, fmt.Errorf("%w: unknown sub-format GUID % x", ErrUnsupportedWavLayout, b[24:40])
	}

	if f.ValidBits > f.BitsPerSample {
		return f, fmt.Errorf("%w: %d valid bits in a %d bit container", audio.ErrInvalidData, f.ValidBits, f.BitsPerSample)
	}

	return f, nil
}

func (f fmtChunk) encode() []byte {
	size := fmtSizePCM

	switch f.Codec {
	case CodecPCM:
	case CodecExtensible:
		size = fmtSizeExtensible
	default:
		size = fmtSizeEx
	}

	b := make([]byte, size)
	le := binary.LittleEndian

	le.PutUint16(b[0:2], uint16(f.Codec))
	le.PutUint16(b[2:4], f.Channels)
	le.PutUint32(b[4:8], f.SampleRate)
	le.PutUint32(b[8:12], f.AvgByteRate)
	le.PutUint16(b[12:14], f.BlockAlign)
	le.PutUint16(b[14:16], f.BitsPerSample)

	if f.Codec == CodecExtensible {
		le.PutUint16(b[16:18], extensibleCbSize)
		le.PutUint16(b[18:20], f.ValidBits)
		le.PutUint32(b[20:24], f.ChannelMask)
		le.PutUint16(b[24:26], uint16(f.SubFormat))
		copy(b[26:40], guidTail[:])
	}

	return b
}

// streamSpec describes the chunk as a stream builder.
func (f fmtChunk) streamSpec() (audio.StreamSpecBuilder[Codec], error) {
	st, err := sampleTypeOf(f.linear(), f.BitsPerSample)
	if err != nil {
		return audio.StreamSpecBuilder[Codec]{}, err
	}

	if f.Channels == 0 {
		return audio.StreamSpecBuilder[Codec]{}, fmt.Errorf("%w: zero channels", audio.ErrInvalidData)
	}

	spec := audio.SignalSpec{
		SampleRate: f.SampleRate,
		Channels:   audio.Channels{Count: uint32(f.Channels), Mask: f.ChannelMask},
	}

	b := audio.NewStreamSpecBuilder(f.Codec, st, spec)
	b.SetAvgByteRate(f.AvgByteRate).SetBlockAlign(f.BlockAlign)

	return b, nil
}

// fmtFromSpec is the inverse of fmtChunk.streamSpec.
func fmtFromSpec(s audio.StreamSpec[Codec]) (fmtChunk, error) {
	linear, err := linearCodec(s.SampleType)
	if err != nil {
		return fmtChunk{}, err
	}

	switch {
	case s.Codec == CodecExtensible:
	case s.Codec != linear:
		return fmtChunk{}, fmt.Errorf("%w: %s cannot carry %s samples", ErrUnsupportedWavLayout, s.Codec, s.SampleType)
	case s.Decoded.Channels.Mask != 0:
		return fmtChunk{}, fmt.Errorf("%w: a channel mask needs %s", ErrUnsupportedWavLayout, CodecExtensible)
	}

	if s.Decoded.Channels.Count == 0 || s.Decoded.Channels.Count > 0xFFFF {
		return fmtChunk{}, fmt.Errorf("%w: %d channels", audio.ErrUnsupported, s.Decoded.Channels.Count)
	}

	bits := uint16(s.SampleType.Bits())

	f := fmtChunk{
		Codec:         s.Codec,
		Channels:      uint16(s.Decoded.Channels.Count),
		SampleRate:    s.Decoded.SampleRate,
		AvgByteRate:   s.AvgByteRate,
		BlockAlign:    s.BlockAlign,
		BitsPerSample: bits,
	}

	if s.Codec == CodecExtensible {
		f.ValidBits = bits
		f.ChannelMask = s.Decoded.Channels.Mask
		f.SubFormat = linear
	}

	return f, nil
}
