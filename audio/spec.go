// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Channels describes the channel count of a signal and, optionally, a
// speaker position mask (WAVE_FORMAT_EXTENSIBLE dwChannelMask). A zero mask
// means the layout is unspecified.
type Channels struct {
	Count uint32
	Mask  uint32
}

// Common speaker layouts.
var (
	Mono   = Channels{Count: 1}
	Stereo = Channels{Count: 2}
)

// NewChannels returns a channel description with an unspecified layout.
func NewChannels(n uint32) Channels { return Channels{Count: n} }

func (c Channels) String() string {
	if c.Mask == 0 {
		return fmt.Sprintf("%dch", c.Count)
	}

	return fmt.Sprintf("%dch(mask=%#x)", c.Count, c.Mask)
}

// SignalSpec fully describes an in-memory signal. It is never mutated after
// the signal is constructed; adapters produce a new value.
type SignalSpec struct {
	SampleRate uint32
	Channels   Channels
}

// NewSignalSpec is a shorthand for a spec with an unspecified channel layout.
func NewSignalSpec(sampleRate, channels uint32) SignalSpec {
	return SignalSpec{SampleRate: sampleRate, Channels: NewChannels(channels)}
}

func (s SignalSpec) String() string {
	return fmt.Sprintf("%dHz %s", s.SampleRate, s.Channels)
}

// Frames converts an interleaved sample count into whole frames.
func (s SignalSpec) Frames(samples int) int {
	if s.Channels.Count == 0 {
		return 0
	}

	return samples / int(s.Channels.Count)
}

// Samples converts a frame count into an interleaved sample count.
func (s SignalSpec) Samples(frames int) int { return frames * int(s.Channels.Count) }

// Duration returns the play time of the given number of frames.
func (s SignalSpec) Duration(frames uint64) time.Duration {
	if s.SampleRate == 0 {
		return 0
	}

	return time.Duration(frames) * time.Second / time.Duration(s.SampleRate)
}

// Builder converts a complete spec back into a builder.
func (s SignalSpec) Builder() SignalSpecBuilder {
	return SignalSpecBuilder{SampleRate: Ptr(s.SampleRate), Channels: Ptr(s.Channels)}
}

// SignalSpecBuilder is a partial SignalSpec. Nil fields are unknown.
type SignalSpecBuilder struct {
	SampleRate *uint32
	Channels   *Channels
}

// SetSampleRate sets the sample rate and returns the builder for chaining.
func (b *SignalSpecBuilder) SetSampleRate(rate uint32) *SignalSpecBuilder {
	b.SampleRate = Ptr(rate)
	return b
}

// SetChannels sets the channel description and returns the builder for chaining.
func (b *SignalSpecBuilder) SetChannels(ch Channels) *SignalSpecBuilder {
	b.Channels = Ptr(ch)
	return b
}

// IsEmpty reports whether no field is set.
func (b SignalSpecBuilder) IsEmpty() bool { return b.SampleRate == nil && b.Channels == nil }

// Merge copies every field set in other into b. If any field is set on both
// sides with different values Merge fails with ErrUnsupported and b is left
// untouched.
func (b *SignalSpecBuilder) Merge(other SignalSpecBuilder) error {
	if err := b.checkMerge(other); err != nil {
		return err
	}

	b.applyMerge(other)

	return nil
}

func (b *SignalSpecBuilder) checkMerge(other SignalSpecBuilder) error {
	if err := checkField("sample rate", b.SampleRate, other.SampleRate); err != nil {
		return err
	}

	return checkField("channels", b.Channels, other.Channels)
}

func (b *SignalSpecBuilder) applyMerge(other SignalSpecBuilder) {
	applyField(&b.SampleRate, other.SampleRate)
	applyField(&b.Channels, other.Channels)
}

// Build fails with ErrMissingData if a field is unset.
func (b SignalSpecBuilder) Build() (SignalSpec, error) {
	if b.SampleRate == nil {
		return SignalSpec{}, fmt.Errorf("%w: sample rate", ErrMissingData)
	}

	if b.Channels == nil {
		return SignalSpec{}, fmt.Errorf("%w: channels", ErrMissingData)
	}

	return SignalSpec{SampleRate: *b.SampleRate, Channels: *b.Channels}, nil
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T { return &v }

func checkField[T comparable](name string, dst, src *T) error {
	if dst != nil && src != nil && *dst != *src {
		return fmt.Errorf("%w: conflicting %s: %v != %v", ErrUnsupported, name, *dst, *src)
	}

	return nil
}

func applyField[T comparable](dst **T, src *T) {
	if src != nil && *dst == nil {
		*dst = Ptr(*src)
	}
}

// Set merges a single derived value into an optional field with merge
// semantics: an existing different value is ErrUnsupported, never overwritten.
func Set[T comparable](name string, dst **T, v T) error {
	if err := checkField(name, *dst, &v); err != nil {
		return err
	}

	applyField(dst, &v)

	return nil
}
