// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// FormatData describes a container: its format tag and one stream spec per
// logical track. How many streams are allowed is up to the format.
type FormatData[F FormatTag, C CodecTag] struct {
	Format  F
	Streams []StreamSpec[C]
}

// Builder converts complete format data back into a builder.
func (d FormatData[F, C]) Builder() FormatDataBuilder[F, C] {
	b := FormatDataBuilder[F, C]{Format: Ptr(d.Format)}
	for _, s := range d.Streams {
		b.Streams = append(b.Streams, s.Builder())
	}

	return b
}

// FormatDataBuilder is the partial form of FormatData used while negotiating
// a container to open or create.
type FormatDataBuilder[F FormatTag, C CodecTag] struct {
	Format  *F
	Streams []StreamSpecBuilder[C]
}

// NewFormatDataBuilder returns a builder with the given streams.
func NewFormatDataBuilder[F FormatTag, C CodecTag](format F, streams ...StreamSpecBuilder[C]) FormatDataBuilder[F, C] {
	b := FormatDataBuilder[F, C]{Format: Ptr(format)}
	for _, s := range streams {
		b.Streams = append(b.Streams, s.Clone())
	}

	return b
}

// Merge merges the format tag and each stream pairwise. An empty stream
// list on either side adopts the other; lists of different non-zero length
// conflict.
func (b *FormatDataBuilder[F, C]) Merge(other FormatDataBuilder[F, C]) error {
	if err := checkField("format", b.Format, other.Format); err != nil {
		return err
	}

	if len(b.Streams) != 0 && len(other.Streams) != 0 && len(b.Streams) != len(other.Streams) {
		return fmt.Errorf("%w: stream count %d != %d", ErrUnsupported, len(b.Streams), len(other.Streams))
	}

	for i := range other.Streams {
		if i < len(b.Streams) {
			if err := b.Streams[i].checkMerge(other.Streams[i]); err != nil {
				return fmt.Errorf("stream %d: %w", i, err)
			}
		}
	}

	applyField(&b.Format, other.Format)

	if len(b.Streams) == 0 {
		for _, s := range other.Streams {
			b.Streams = append(b.Streams, s.Clone())
		}

		return nil
	}

	for i := range other.Streams {
		b.Streams[i].applyMerge(other.Streams[i])
	}

	return nil
}

// Build fails with ErrMissingData if the format or any stream is incomplete.
func (b FormatDataBuilder[F, C]) Build() (FormatData[F, C], error) {
	var d FormatData[F, C]

	if b.Format == nil {
		return d, fmt.Errorf("%w: format", ErrMissingData)
	}

	d.Format = *b.Format

	for i, sb := range b.Streams {
		s, err := sb.Build()
		if err != nil {
			return FormatData[F, C]{}, fmt.Errorf("stream %d: %w", i, err)
		}

		d.Streams = append(d.Streams, s)
	}

	return d, nil
}
