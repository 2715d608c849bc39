// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// CodecTag identifies the codec of a stream. Containers define their own tag
// sets and convert them to the module-wide KnownCodec when possible.
type CodecTag interface {
	comparable
	fmt.Stringer
	// Known converts the tag to a KnownCodec, failing with ErrUnsupported
	// when there is no equivalent.
	Known() (KnownCodec, error)
}

// FormatTag identifies a container format.
type FormatTag interface {
	comparable
	fmt.Stringer
	Known() (KnownFormat, error)
}

// KnownCodec is the set of codecs this module can decode and encode.
type KnownCodec uint8

const (
	// CodecPCM is uncompressed linear PCM of any Sample type.
	CodecPCM KnownCodec = iota + 1
)

func (c KnownCodec) String() string {
	switch c {
	case CodecPCM:
		return "pcm"
	default:
		return fmt.Sprintf("KnownCodec(%d)", uint8(c))
	}
}

func (c KnownCodec) Known() (KnownCodec, error) {
	if c != CodecPCM {
		return 0, fmt.Errorf("%w: codec %s", ErrUnsupported, c)
	}

	return c, nil
}

// KnownFormat is the set of container formats the module knows about.
type KnownFormat uint8

const (
	FormatWave KnownFormat = iota + 1
	FormatAIFF
	FormatMP3
	FormatVorbis
)

// KnownFormats lists every known format in declaration order.
var KnownFormats = [...]KnownFormat{FormatWave, FormatAIFF, FormatMP3, FormatVorbis}

func (f KnownFormat) String() string {
	switch f {
	case FormatWave:
		return "wave"
	case FormatAIFF:
		return "aiff"
	case FormatMP3:
		return "mp3"
	case FormatVorbis:
		return "vorbis"
	default:
		return fmt.Sprintf("KnownFormat(%d)", uint8(f))
	}
}

func (f KnownFormat) Known() (KnownFormat, error) {
	if f < FormatWave || f > FormatVorbis {
		return 0, fmt.Errorf("%w: format %s", ErrUnsupported, f)
	}

	return f, nil
}
