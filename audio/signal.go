// SPDX-License-Identifier: EPL-2.0

package audio

// Signal is an in-memory sequence of interleaved samples described by a
// SignalSpec. What a signal can do is expressed by the capability interfaces
// below, each implemented independently.
type Signal interface {
	Spec() SignalSpec
}

// Reader pulls interleaved samples into buf and returns how many were
// written. A result of (0, nil) for a non-empty buf means the signal is
// exhausted; it is never an error by itself.
type Reader[T Sample] interface {
	Signal
	ReadSamples(buf []T) (int, error)
}

// Writer pushes interleaved samples and returns how many were consumed.
// (0, nil) for a non-empty buf means the sink accepts no more data.
type Writer[T Sample] interface {
	Signal
	WriteSamples(buf []T) (int, error)
	Flush() error
}

// Seeker moves relative to the current position. Signals seek in frames,
// streams in bytes.
type Seeker interface {
	Seek(offset int64) error
}

// Indexed reports the current position: frames for signals, bytes for
// streams.
type Indexed interface {
	Pos() uint64
}

// Finite reports the total length in the same unit as Indexed.
type Finite interface {
	Len() uint64
}

// Blocking suspends the calling goroutine until the next Read or Write is
// expected to make progress. It is called by the exact I/O helpers after an
// ErrNotReady.
type Blocking interface {
	Block()
}

// Wrapper is implemented by adapters that own an inner value. Capabilities
// an adapter does not change are reached through Unwrap, see PosOf, LenOf,
// SeekerOf and BlockingOf.
type Wrapper interface {
	Unwrap() any
}

// Stream is a byte stream carrying one encoded signal.
type Stream[C CodecTag] interface {
	StreamSpec() StreamSpec[C]
}

// StreamReader reads encoded bytes with the same (0, nil) exhaustion
// convention as Reader.
type StreamReader[C CodecTag] interface {
	Stream[C]
	Read(buf []byte) (int, error)
}

// StreamWriter writes encoded bytes.
type StreamWriter[C CodecTag] interface {
	Stream[C]
	Write(buf []byte) (int, error)
	Flush() error
}

// Format is a container holding one or more streams.
type Format[F FormatTag, C CodecTag] interface {
	FormatData() FormatData[F, C]
}

// FormatReader reads the next packet of any stream and reports which stream
// it belongs to.
type FormatReader[F FormatTag, C CodecTag] interface {
	Format[F, C]
	ReadFormat(buf []byte) (stream int, n int, err error)
}

// FormatWriter writes a packet to the given stream. Finalize writes the
// trailing metadata once all data is known.
type FormatWriter[F FormatTag, C CodecTag] interface {
	Format[F, C]
	WriteFormat(stream int, buf []byte) (int, error)
	Flush() error
	Finalize() error
}

// PosOf returns the position of v or of the first value in its Unwrap chain
// implementing Indexed.
func PosOf(v any) (uint64, bool) {
	i, ok := find[Indexed](v)
	if !ok {
		return 0, false
	}

	return i.Pos(), true
}

// LenOf is the Finite counterpart of PosOf.
func LenOf(v any) (uint64, bool) {
	f, ok := find[Finite](v)
	if !ok {
		return 0, false
	}

	return f.Len(), true
}

// SeekerOf is the Seeker counterpart of PosOf.
func SeekerOf(v any) (Seeker, bool) { return find[Seeker](v) }

// BlockingOf is the Blocking counterpart of PosOf.
func BlockingOf(v any) (Blocking, bool) { return find[Blocking](v) }

func find[I any](v any) (I, bool) {
	for v != nil {
		if i, ok := v.(I); ok {
			return i, true
		}

		w, ok := v.(Wrapper)
		if !ok {
			break
		}

		v = w.Unwrap()
	}

	var zero I

	return zero, false
}
