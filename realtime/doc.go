// SPDX-License-Identifier: EPL-2.0

// Package realtime bridges signals to a device callback through a lock-free
// ring buffer.
//
// A Sink is the writer side, used from the decoding goroutine. It never
// waits by itself: when the ring is full it returns audio.ErrNotReady and
// the audio helpers call its Block method before retrying. A Source is the
// reader side, used from the device callback. It never fails: missing data
// is replaced by silence so the device keeps playing.
//
//	sink, source, err := realtime.New[float32](spec, 48000/10)
//	go func() {
//	    defer sink.Close()
//	    audio.Copy[float32](sink, decoded, buf)
//	}()
//	// in the device callback
//	source.ReadSamples(out)
package realtime
