// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"math"

	"github.com/ik5/phonic/audio"
)

// InferSpec fills the block alignment and average byte rate of a PCM stream
// builder from its sample type, channel count and sample rate. A value
// already present that disagrees with the computed one is
// audio.ErrUnsupported, and b is left untouched. Calling it again on an
// inferred builder is a no-op.
func InferSpec[C audio.CodecTag](b *audio.StreamSpecBuilder[C]) error {
	if b.Codec != nil {
		k, err := (*b.Codec).Known()
		if err != nil {
			return err
		}

		if k != audio.CodecPCM {
			return fmt.Errorf("%w: codec %s is not pcm", audio.ErrUnsupported, *b.Codec)
		}
	}

	if b.SampleType == nil {
		return fmt.Errorf("%w: sample type", audio.ErrMissingData)
	}

	st := *b.SampleType
	if !st.Valid() {
		return fmt.Errorf("%w: %s", audio.ErrUnsupported, st)
	}

	align, avg := b.BlockAlign, b.AvgByteRate

	if ch := b.Decoded.Channels; ch != nil {
		blk := uint64(ch.Count) * uint64(st.Size())
		if blk > math.MaxUint16 {
			return fmt.Errorf("%w: %d channels of %s do not fit a block", audio.ErrUnsupported, ch.Count, st)
		}

		if err := audio.Set("block align", &align, uint16(blk)); err != nil {
			return err
		}

		if rate := b.Decoded.SampleRate; rate != nil {
			bps := uint64(*rate) * blk
			if bps > math.MaxUint32 {
				return fmt.Errorf("%w: byte rate %d overflows", audio.ErrUnsupported, bps)
			}

			if err := audio.Set("average byte rate", &avg, uint32(bps)); err != nil {
				return err
			}
		}
	}

	b.BlockAlign, b.AvgByteRate = align, avg

	return nil
}

// check validates a complete stream spec for T and returns its frame size in
// bytes.
func check[T audio.Sample, C audio.CodecTag](s audio.StreamSpec[C]) (int, error) {
	if want := audio.SampleTypeOf[T](); s.SampleType != want {
		return 0, fmt.Errorf("%w: stream carries %s, not %s", audio.ErrSignalMismatch, s.SampleType, want)
	}

	if s.Decoded.Channels.Count == 0 {
		return 0, fmt.Errorf("%w: zero channels", audio.ErrInvalidData)
	}

	b := s.Builder()
	if err := InferSpec(&b); err != nil {
		return 0, err
	}

	return int(s.BlockAlign), nil
}
