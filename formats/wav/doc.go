// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAVE (RIFF) files holding linear PCM.
//
// # Supported layouts
//
//   - WAVE_FORMAT_PCM: unsigned 8-bit, signed 16/32/64-bit
//   - WAVE_FORMAT_IEEE_FLOAT: 32/64-bit float
//   - WAVE_FORMAT_EXTENSIBLE with a PCM or IEEE float sub-format, carrying
//     the speaker mask in audio.Channels.Mask
//
// 24-bit integer and compressed codecs are rejected with
// ErrUnsupportedWavLayout. Chunks other than fmt and data (LIST, fact, ...)
// are skipped.
//
// # Reading
//
//	rd, err := wav.NewReader(f)
//	if err != nil {
//	    return err
//	}
//
//	sig, err := rd.Signal() // audio.Tagged[T] for the file's sample type
//
// The Reader itself is the byte stream of the data chunk. It seeks in whole
// frames when the input is an io.Seeker.
//
// # Writing
//
//	b := audio.NewFormatDataBuilder(wav.Wave,
//	    audio.NewStreamSpecBuilder(wav.CodecFloat, audio.Float32, audio.NewSignalSpec(48000, 1)))
//
//	w, err := wav.NewWriter(f, b)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
// The header is written at once. If the data length is not declared with
// WithDataLen the sizes are placeholders that Finalize (called by Close)
// patches on seekable outputs; on other outputs they stay 0xFFFFFFFF, which
// Reader understands as "until end of file".
//
// Go has no destructors: a Writer that is never finalized leaves the
// placeholders in place. Finalize and Close report their errors.
package wav
