// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// # Decoding Vorbis Files
//
//	file, _ := os.Open("audio.ogg")
//	sig, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, vorbis.ErrNotVorbisFile)
//	}
//
//	r, _ := audio.TaggedReaderAs[float32](sig)
//	buf := make([]float32, 4096)
//	n, err := r.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: depends on file, interleaved [L0, R0, L1, R1, ...]
//   - Sample rate: depends on file (commonly 44.1kHz or 48kHz)
//
// Reads always return whole frames. The signal reports its length when the
// stream declares it and seeks in frames when the input is an io.Seeker.
//
// Vorbis encoding is not supported.
package vorbis
