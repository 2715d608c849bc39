// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// TaggedSignal is a signal whose sample type is only known at runtime. It is
// a closed union: the only implementations are the Tagged[T] instantiations,
// one per Sample type, and the variant never changes after construction.
type TaggedSignal interface {
	Signal
	SampleType() SampleType
	// Value returns the wrapped signal.
	Value() Signal
	tagged()
}

// Tagged is the TaggedSignal variant holding a signal of sample type T.
type Tagged[T Sample] struct {
	Signal Signal
}

// Tag wraps s in the variant matching T.
func Tag[T Sample](s Signal) TaggedSignal { return Tagged[T]{Signal: s} }

func (t Tagged[T]) Spec() SignalSpec       { return t.Signal.Spec() }
func (t Tagged[T]) SampleType() SampleType { return SampleTypeOf[T]() }
func (t Tagged[T]) Value() Signal          { return t.Signal }
func (t Tagged[T]) Unwrap() any            { return t.Signal }
func (Tagged[T]) tagged()                  {}

// Reader returns the wrapped signal as a Reader, if it is one.
func (t Tagged[T]) Reader() (Reader[T], error) {
	r, ok := t.Signal.(Reader[T])
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a %s reader", ErrUnsupported, t.Signal, SampleTypeOf[T]())
	}

	return r, nil
}

// Writer returns the wrapped signal as a Writer, if it is one.
func (t Tagged[T]) Writer() (Writer[T], error) {
	w, ok := t.Signal.(Writer[T])
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a %s writer", ErrUnsupported, t.Signal, SampleTypeOf[T]())
	}

	return w, nil
}

// Untag extracts the variant for T, failing with ErrSignalMismatch if ts
// holds a different sample type.
func Untag[T Sample](ts TaggedSignal) (Tagged[T], error) {
	t, ok := ts.(Tagged[T])
	if !ok {
		return Tagged[T]{}, fmt.Errorf("%w: want %s signal, have %s", ErrSignalMismatch, SampleTypeOf[T](), ts.SampleType())
	}

	return t, nil
}

// TaggedReaderAs extracts a Reader[T] from ts.
func TaggedReaderAs[T Sample](ts TaggedSignal) (Reader[T], error) {
	t, err := Untag[T](ts)
	if err != nil {
		return nil, err
	}

	return t.Reader()
}

// TaggedWriterAs extracts a Writer[T] from ts.
func TaggedWriterAs[T Sample](ts TaggedSignal) (Writer[T], error) {
	t, err := Untag[T](ts)
	if err != nil {
		return nil, err
	}

	return t.Writer()
}

// CopyTagged copies every sample of src into dst. Both must hold the same
// sample type; it dispatches once over the closed set and then runs the
// statically typed Copy.
func CopyTagged(dst, src TaggedSignal, bufFrames int) (uint64, error) {
	if dst.SampleType() != src.SampleType() {
		return 0, fmt.Errorf("%w: copy %s into %s", ErrSignalMismatch, src.SampleType(), dst.SampleType())
	}

	switch s := src.(type) {
	case Tagged[int8]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[int16]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[int32]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[int64]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[uint8]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[uint16]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[uint32]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[uint64]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[float32]:
		return copyVariant(dst, s, bufFrames)
	case Tagged[float64]:
		return copyVariant(dst, s, bufFrames)
	}

	return 0, fmt.Errorf("%w: unknown tagged variant %T", ErrUnreachable, src)
}

func copyVariant[T Sample](dst TaggedSignal, src Tagged[T], bufFrames int) (uint64, error) {
	r, err := src.Reader()
	if err != nil {
		return 0, err
	}

	w, err := TaggedWriterAs[T](dst)
	if err != nil {
		return 0, err
	}

	return Copy(w, r, make([]T, r.Spec().Samples(max(bufFrames, 1))))
}
