// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StreamSpec describes an encoded byte stream and the signal it decodes to.
type StreamSpec[C CodecTag] struct {
	Codec       C
	SampleType  SampleType
	AvgByteRate uint32
	// BlockAlign is the number of bytes per frame.
	BlockAlign uint16
	Decoded    SignalSpec
}

func (s StreamSpec[C]) String() string {
	return fmt.Sprintf("%s %s %s (%d B/s, align %d)", s.Codec, s.SampleType, s.Decoded, s.AvgByteRate, s.BlockAlign)
}

// Builder converts a complete spec back into a builder.
func (s StreamSpec[C]) Builder() StreamSpecBuilder[C] {
	return StreamSpecBuilder[C]{
		Codec:       Ptr(s.Codec),
		SampleType:  Ptr(s.SampleType),
		AvgByteRate: Ptr(s.AvgByteRate),
		BlockAlign:  Ptr(s.BlockAlign),
		Decoded:     s.Decoded.Builder(),
	}
}

// StreamSpecBuilder is a partial StreamSpec. It embeds the decoded signal
// builder next to the codec specific fields.
type StreamSpecBuilder[C CodecTag] struct {
	Codec       *C
	SampleType  *SampleType
	AvgByteRate *uint32
	BlockAlign  *uint16
	Decoded     SignalSpecBuilder
}

// NewStreamSpecBuilder starts a builder for a stream decoding to a signal
// of sample type st with the given spec.
func NewStreamSpecBuilder[C CodecTag](codec C, st SampleType, spec SignalSpec) StreamSpecBuilder[C] {
	return StreamSpecBuilder[C]{
		Codec:      Ptr(codec),
		SampleType: Ptr(st),
		Decoded:    spec.Builder(),
	}
}

func (b *StreamSpecBuilder[C]) SetCodec(c C) *StreamSpecBuilder[C] {
	b.Codec = Ptr(c)
	return b
}

func (b *StreamSpecBuilder[C]) SetSampleType(t SampleType) *StreamSpecBuilder[C] {
	b.SampleType = Ptr(t)
	return b
}

func (b *StreamSpecBuilder[C]) SetAvgByteRate(r uint32) *StreamSpecBuilder[C] {
	b.AvgByteRate = Ptr(r)
	return b
}

func (b *StreamSpecBuilder[C]) SetBlockAlign(a uint16) *StreamSpecBuilder[C] {
	b.BlockAlign = Ptr(a)
	return b
}

// IsEmpty reports whether no field is set.
func (b StreamSpecBuilder[C]) IsEmpty() bool {
	return b.Codec == nil && b.SampleType == nil && b.AvgByteRate == nil && b.BlockAlign == nil && b.Decoded.IsEmpty()
}

// Clone returns a deep copy, so later merges do not alias b.
func (b StreamSpecBuilder[C]) Clone() StreamSpecBuilder[C] {
	var c StreamSpecBuilder[C]
	c.applyMerge(b)

	return c
}

// Merge has the same all-or-nothing semantics as SignalSpecBuilder.Merge.
func (b *StreamSpecBuilder[C]) Merge(other StreamSpecBuilder[C]) error {
	if err := b.checkMerge(other); err != nil {
		return err
	}

	b.applyMerge(other)

	return nil
}

func (b *StreamSpecBuilder[C]) checkMerge(other StreamSpecBuilder[C]) error {
	if err := checkField("codec", b.Codec, other.Codec); err != nil {
		return err
	}

	if err := checkField("sample type", b.SampleType, other.SampleType); err != nil {
		return err
	}

	if err := checkField("average byte rate", b.AvgByteRate, other.AvgByteRate); err != nil {
		return err
	}

	if err := checkField("block align", b.BlockAlign, other.BlockAlign); err != nil {
		return err
	}

	return b.Decoded.checkMerge(other.Decoded)
}

func (b *StreamSpecBuilder[C]) applyMerge(other StreamSpecBuilder[C]) {
	applyField(&b.Codec, other.Codec)
	applyField(&b.SampleType, other.SampleType)
	applyField(&b.AvgByteRate, other.AvgByteRate)
	applyField(&b.BlockAlign, other.BlockAlign)
	b.Decoded.applyMerge(other.Decoded)
}

// Build fails with ErrMissingData naming the first unset field.
func (b StreamSpecBuilder[C]) Build() (StreamSpec[C], error) {
	var s StreamSpec[C]

	switch {
	case b.Codec == nil:
		return s, fmt.Errorf("%w: codec", ErrMissingData)
	case b.SampleType == nil:
		return s, fmt.Errorf("%w: sample type", ErrMissingData)
	case b.AvgByteRate == nil:
		return s, fmt.Errorf("%w: average byte rate", ErrMissingData)
	case b.BlockAlign == nil:
		return s, fmt.Errorf("%w: block align", ErrMissingData)
	}

	decoded, err := b.Decoded.Build()
	if err != nil {
		return s, err
	}

	s.Codec = *b.Codec
	s.SampleType = *b.SampleType
	s.AvgByteRate = *b.AvgByteRate
	s.BlockAlign = *b.BlockAlign
	s.Decoded = decoded

	return s, nil
}

// MapStreamSpec converts a spec to a sibling codec tag set.
func MapStreamSpec[A, B CodecTag](s StreamSpec[A], conv func(A) (B, error)) (StreamSpec[B], error) {
	c, err := conv(s.Codec)
	if err != nil {
		return StreamSpec[B]{}, err
	}

	return StreamSpec[B]{
		Codec:       c,
		SampleType:  s.SampleType,
		AvgByteRate: s.AvgByteRate,
		BlockAlign:  s.BlockAlign,
		Decoded:     s.Decoded,
	}, nil
}

// MapStreamSpecBuilder converts a builder to a sibling codec tag set. An
// unset codec stays unset.
func MapStreamSpecBuilder[A, B CodecTag](b StreamSpecBuilder[A], conv func(A) (B, error)) (StreamSpecBuilder[B], error) {
	out := StreamSpecBuilder[B]{
		SampleType:  b.SampleType,
		AvgByteRate: b.AvgByteRate,
		BlockAlign:  b.BlockAlign,
		Decoded:     b.Decoded,
	}

	if b.Codec != nil {
		c, err := conv(*b.Codec)
		if err != nil {
			return StreamSpecBuilder[B]{}, err
		}

		out.Codec = Ptr(c)
	}

	return out.Clone(), nil
}

// KnownCodecOf is a conversion usable with MapStreamSpec.
func KnownCodecOf[C CodecTag](c C) (KnownCodec, error) { return c.Known() }
