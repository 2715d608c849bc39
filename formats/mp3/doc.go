// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files. The
// decoder output is 16-bit little-endian stereo PCM, which is read through
// codec/pcm, so the result is an audio.TaggedSignal carrying int16 samples.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	sig, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, mp3.ErrNotMP3File)
//	}
//
//	r, _ := audio.TaggedReaderAs[int16](sig)
//	buf := make([]int16, 4096)
//	n, err := r.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: int16
//   - Channels: 2 (mono files are duplicated by go-mp3)
//   - Sample rate: depends on the file (typically 44.1kHz or 48kHz)
//
// When the input is an io.Seeker the signal reports its length in frames and
// can seek. Otherwise it is a plain forward-only reader.
//
// MP3 writing is not supported.
package mp3
