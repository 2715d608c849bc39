// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/codec/pcm"
)

// Extensions and MIME types a registry maps to this package.
var (
	Extensions = []string{"mp3"}
	MIMETypes  = []string{"audio/mpeg", "audio/mp3", "audio/mpeg3", "audio/x-mpeg-3"}
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	io.Reader
	SampleRate() int
	// Length is the decoded size in bytes, -1 when unknown.
	Length() int64
}

type Decoder struct{}

// Decode returns an int16 stereo signal. It is finite when r is an
// io.Seeker and seekable (in frames) as well.
func (Decoder) Decode(r io.Reader) (audio.TaggedSignal, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return newSignal(dec)
}

// StreamSpec is the PCM stream go-mp3 produces at the given rate.
func StreamSpec(sampleRate int) (audio.StreamSpec[audio.KnownCodec], error) {
	b := audio.NewStreamSpecBuilder(audio.CodecPCM, audio.Int16, audio.NewSignalSpec(uint32(sampleRate), channels))
	if err := pcm.InferSpec(&b); err != nil {
		return audio.StreamSpec[audio.KnownCodec]{}, err
	}

	return b.Build()
}

func newSignal(dec mp3Reader) (audio.TaggedSignal, error) {
	spec, err := StreamSpec(dec.SampleRate())
	if err != nil {
		return nil, err
	}

	var s audio.StreamReader[audio.KnownCodec]
	if n := dec.Length(); n > 0 {
		s = audio.SizedStreamFromReader(dec, spec, uint64(n))
	} else {
		s = audio.StreamFromReader(dec, spec)
	}

	d, err := pcm.NewDecoder[int16](s, pcm.Little)
	if err != nil {
		return nil, err
	}

	return audio.Tag[int16](d), nil
}
