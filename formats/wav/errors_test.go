// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ik5/phonic/audio"
)

func TestErrors_WrapTaxonomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want error
	}{
		{ErrNotWavFile, audio.ErrInvalidData},
		{ErrUnsupportedWavLayout, audio.ErrUnsupported},
		{ErrUnsupportedWavChunks, audio.ErrInvalidData},
		{ErrFinalized, audio.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()

			assert.ErrorIs(t, tt.err, tt.want)
		})
	}

	assert.False(t, errors.Is(ErrNotWavFile, ErrUnsupportedWavChunks))
}

func TestCodec(t *testing.T) {
	t.Parallel()

	for _, c := range []Codec{CodecPCM, CodecFloat, CodecExtensible} {
		k, err := c.Known()
		assert.NoError(t, err, c.String())
		assert.Equal(t, audio.CodecPCM, k)
	}

	_, err := Codec(0x55).Known()
	assert.ErrorIs(t, err, audio.ErrUnsupported)

	assert.Equal(t, CodecPCM, CodecFor(audio.Int16, audio.Stereo))
	assert.Equal(t, CodecFloat, CodecFor(audio.Float64, audio.Mono))
	assert.Equal(t, CodecExtensible, CodecFor(audio.Int16, audio.NewChannels(4)))
	assert.Equal(t, CodecExtensible, CodecFor(audio.Float32, audio.Channels{Count: 1, Mask: 0x4}))

	c, err := FromKnown(audio.CodecPCM, audio.Float32, audio.Stereo)
	assert.NoError(t, err)
	assert.Equal(t, CodecFloat, c)

	f, err := Wave.Known()
	assert.NoError(t, err)
	assert.Equal(t, audio.FormatWave, f)
}
