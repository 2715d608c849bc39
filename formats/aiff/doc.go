// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files and
// exposes the samples as an audio.TaggedSignal of the file's own integer
// type:
//
//   - 8-bit: int8
//   - 16-bit: int16
//   - 24-bit: int32, shifted to the full 32-bit range
//   - 32-bit: int32
//
// Usage:
//
//	file, _ := os.Open("audio.aif")
//	sig, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, aiff.ErrNotAiffFile), ...
//	}
//
//	r, err := audio.TaggedReaderAs[int16](sig)
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory
// first. AIFF-C and writing are not supported.
package aiff
