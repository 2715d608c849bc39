// SPDX-License-Identifier: EPL-2.0

// Package audio provides the core types shared by every codec and container
// in this module.
//
// # Specifications
//
// A SignalSpec describes an in-memory signal: its sample rate and channel
// layout. A StreamSpec describes an encoded byte stream and the signal it
// decodes to. A FormatData lists the streams of a container. Each has a
// Builder counterpart with optional fields that can be merged:
//
//	b := audio.SignalSpecBuilder{}
//	b.SetSampleRate(48000)
//	err := b.Merge(other) // ErrUnsupported on conflict, b untouched
//	spec, err := b.Build() // ErrMissingData if a field is unset
//
// # Capabilities
//
// Signals are typed by their sample type. A signal advertises what it can do
// by implementing small interfaces independently:
//
//	Reader[T]  ReadSamples([]T) (int, error)
//	Writer[T]  WriteSamples([]T) (int, error), Flush() error
//	Seeker     Seek(offset int64) error
//	Indexed    Pos() uint64
//	Finite     Len() uint64
//	Blocking   Block()
//
// Streams use the same shape with bytes instead of samples. Adapters such
// as Limit, Repeat and the observers expose their inner value through
// Unwrap, so PosOf, LenOf, SeekerOf and BlockingOf find capabilities the
// adapter does not change.
//
// A read or write returning (0, nil) for a non-empty buffer means the
// signal is exhausted. Transient conditions are ErrInterrupted (retry now)
// and ErrNotReady (block, then retry); ReadExact, WriteExact and Copy apply
// that policy.
//
// # Runtime sample types
//
// When the sample type is only known at runtime, decoders return a
// TaggedSignal. It is a closed set of Tagged[T] variants, one per Sample
// type:
//
//	switch s := sig.(type) {
//	case audio.Tagged[int16]:
//	    r, _ := s.Reader()
//	    ...
//	}
//
// # Errors
//
// Every error returned by this module wraps one of the sentinels declared
// in errors.go, so callers branch with errors.Is.
package audio
