// SPDX-License-Identifier: EPL-2.0

package phonic

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/codec/pcm"
	"github.com/ik5/phonic/formats/aiff"
	"github.com/ik5/phonic/formats/mp3"
	"github.com/ik5/phonic/formats/vorbis"
	"github.com/ik5/phonic/formats/wav"
)

// NewRegistry returns a registry holding every format of this module. Only
// WAVE can be encoded.
func NewRegistry(opts ...wav.Option) *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register(audio.FormatInfo{
		Format:     audio.FormatWave,
		Extensions: wav.Extensions,
		MIMETypes:  wav.MIMETypes,
		Decoder:    wav.Decoder{Options: opts},
		Encoder:    wav.Encoder{Options: opts},
	})
	reg.Register(audio.FormatInfo{
		Format:     audio.FormatAIFF,
		Extensions: aiff.Extensions,
		MIMETypes:  aiff.MIMETypes,
		Decoder:    aiff.Decoder{},
	})
	reg.Register(audio.FormatInfo{
		Format:     audio.FormatMP3,
		Extensions: mp3.Extensions,
		MIMETypes:  mp3.MIMETypes,
		Decoder:    mp3.Decoder{},
	})
	reg.Register(audio.FormatInfo{
		Format:     audio.FormatVorbis,
		Extensions: vorbis.Extensions,
		MIMETypes:  vorbis.MIMETypes,
		Decoder:    vorbis.Decoder{},
	})

	return reg
}

// File is a decoded audio file. The signal reads from the open file, so
// Close it once the signal is no longer used.
type File struct {
	Signal audio.TaggedSignal
	Format audio.KnownFormat

	f *os.File
}

func (f *File) Close() error { return f.f.Close() }

// Open decodes the file at path, picking the format from its extension.
func Open(reg *audio.Registry, path string) (*File, error) {
	format, err := reg.ByPath(path)
	if err != nil {
		return nil, err
	}

	info, err := reg.Get(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, audio.WrapIO(err))
	}

	sig, err := info.Decoder.Decode(f)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("decoding %s: %w", path, err), f.Close())
	}

	return &File{Signal: sig, Format: format, f: f}, nil
}

// Decode decodes r with the format registered for a MIME type such as a
// Content-Type header value.
func Decode(reg *audio.Registry, r io.Reader, mime string) (audio.TaggedSignal, audio.KnownFormat, error) {
	format, err := reg.ByMIME(mime)
	if err != nil {
		return nil, 0, err
	}

	info, err := reg.Get(format)
	if err != nil {
		return nil, 0, err
	}

	sig, err := info.Decoder.Decode(r)

	return sig, format, err
}

// ErrNoEncoder is returned when the format of a path can only be decoded.
var ErrNoEncoder = fmt.Errorf("%w: format cannot be encoded", audio.ErrUnsupported)

// Create encodes src into a new file at path, picking the format from the
// extension. A file that could not be completely written is removed.
func Create(reg *audio.Registry, path string, src audio.TaggedSignal) (err error) {
	format, err := reg.ByPath(path)
	if err != nil {
		return err
	}

	info, err := reg.Get(format)
	if err != nil {
		return err
	}

	if info.Encoder == nil {
		return fmt.Errorf("%w: %s", ErrNoEncoder, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, audio.WrapIO(err))
	}

	defer func() {
		err = multierr.Append(err, audio.WrapIO(f.Close()))
		if err != nil {
			err = multierr.Append(err, removeIfExists(path))
		}
	}()

	if err := info.Encoder.Encode(f, src); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return audio.WrapIO(err)
	}

	return nil
}

// DecodeStream turns a stream of any codec tag set into a signal of the
// sample type the stream declares. PCM is the only codec that can be
// decoded; byte order is given by endian.
func DecodeStream[C audio.CodecTag](s audio.StreamReader[C], endian pcm.Endian) (audio.TaggedSignal, error) {
	codec, err := s.StreamSpec().Codec.Known()
	if err != nil {
		return nil, err
	}

	switch codec {
	case audio.CodecPCM:
		return pcm.NewTaggedDecoder(s, endian)
	default:
		return nil, fmt.Errorf("%w: codec %s", audio.ErrUnreachable, codec)
	}
}

// EncodeStream is the writer counterpart of DecodeStream. The result is a
// Writer of the stream's sample type.
func EncodeStream[C audio.CodecTag](s audio.StreamWriter[C], endian pcm.Endian) (audio.TaggedSignal, error) {
	codec, err := s.StreamSpec().Codec.Known()
	if err != nil {
		return nil, err
	}

	switch codec {
	case audio.CodecPCM:
		return pcm.NewTaggedEncoder(s, endian)
	default:
		return nil, fmt.Errorf("%w: codec %s", audio.ErrUnreachable, codec)
	}
}
