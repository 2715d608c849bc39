// SPDX-License-Identifier: EPL-2.0

// Package phonic reads and writes audio signals with their exact sample
// type, sample rate and channel layout.
//
// The building blocks live in subpackages:
//   - audio: specs, capability interfaces, tagged signals, errors, helpers
//   - codec/pcm: raw PCM byte streams to typed samples and back
//   - formats/wav: WAVE reader and writer
//   - formats/aiff, formats/mp3, formats/vorbis: decoders
//   - mux: one write fanned out to tracks at different positions
//   - ringbuf, realtime: lock-free hand-off to a device callback
//   - gen: test signal generators
//
// This package ties the formats together.
//
// # Quick Start
//
//	reg := phonic.NewRegistry()
//
//	in, err := phonic.Open(reg, "input.mp3")
//	if err != nil {
//	    return err
//	}
//	defer in.Close()
//
//	fmt.Println(in.Format, in.Signal.SampleType(), in.Signal.Spec())
//
//	// same sample type, rate and channels as the input
//	err = phonic.Create(reg, "output.wav", in.Signal)
//
// To work with the samples, extract the typed reader:
//
//	r, err := audio.TaggedReaderAs[int16](in.Signal)
//	buf := make([]int16, 4096)
//	n, err := r.ReadSamples(buf)
//
// # Errors
//
// Every error wraps one of the audio.Err* sentinels, so callers branch with
// errors.Is:
//
//	_, err := phonic.Open(reg, "notes.txt")
//	errors.Is(err, audio.ErrNotFound) // no format for ".txt"
package phonic
