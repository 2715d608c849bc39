// SPDX-License-Identifier: EPL-2.0

// Package pcm converts between raw linear PCM bytes and typed sample
// buffers.
//
// A Decoder turns a byte stream into a Reader of samples, an Encoder turns a
// Writer of samples into a byte stream. When the declared endianness is the
// machine's native one the conversion is a reinterpretation of the caller
// buffer without copying; otherwise every sample has its bytes swapped.
//
// Usage:
//
//	b := stream.StreamSpec().Builder()
//	if err := pcm.InferSpec(&b); err != nil {
//	    return err
//	}
//
//	dec, err := pcm.NewDecoder[int16, audio.KnownCodec](stream, pcm.Little)
//	if err != nil {
//	    return err
//	}
//
//	buf := make([]int16, dec.Spec().Samples(1024))
//	n, err := dec.ReadSamples(buf)
//
// Partial trailing bytes of a frame are kept for the next call. A stream that
// ends in the middle of a frame fails with audio.ErrSignalMismatch.
package pcm
