// SPDX-License-Identifier: EPL-2.0

package gen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/phonic/audio"
)

func TestSine_Values(t *testing.T) {
	t.Parallel()

	spec := audio.NewSignalSpec(8000, 1)
	g := Sine[float64](spec, 8, 2000, 0.5)

	buf := make([]float64, 8)
	n, err := g.ReadSamples(buf)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	// 2 kHz at 8 kHz is a quarter turn per frame.
	want := []float64{0, 0.5, 0, -0.5, 0, 0.5, 0, -0.5}
	for i := range want {
		assert.InDelta(t, want[i], buf[i], 1e-12, "frame %d", i)
	}
}

func TestGenerator_Exhaustion(t *testing.T) {
	t.Parallel()

	g := Silence[int16](audio.NewSignalSpec(100, 2), 3)
	buf := make([]int16, 4)

	n, err := g.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = g.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = g.ReadSamples(buf)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, uint64(3), g.Pos())
}

func TestGenerator_ShortBuffer(t *testing.T) {
	t.Parallel()

	g := Silence[int16](audio.NewSignalSpec(100, 2), 3)

	_, err := g.ReadSamples(make([]int16, 1))
	require.ErrorIs(t, err, audio.ErrSignalMismatch)
}

func TestSilence_UnsignedOrigin(t *testing.T) {
	t.Parallel()

	g := Silence[uint8](audio.NewSignalSpec(100, 1), 4)
	buf := make([]uint8, 4)

	_, err := g.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, []uint8{128, 128, 128, 128}, buf)
}

func TestGenerator_Seek(t *testing.T) {
	t.Parallel()

	g := Sine[float32](audio.NewSignalSpec(48000, 1), 100, 440, 1)

	require.NoError(t, g.Seek(50))
	assert.Equal(t, uint64(50), g.Pos())
	require.NoError(t, g.Seek(-20))
	assert.Equal(t, uint64(30), g.Pos())
	require.ErrorIs(t, g.Seek(-31), audio.ErrUnsupported)
	require.ErrorIs(t, g.Seek(71), audio.ErrUnsupported)

	buf := make([]float32, 1)
	_, err := g.ReadSamples(buf)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(2*math.Pi*440*30/48000), float64(buf[0]), 1e-6)
}

func TestInfinite(t *testing.T) {
	t.Parallel()

	g := Silence[float32](audio.NewSignalSpec(48000, 1), Infinite)
	require.NoError(t, g.Seek(1<<40))

	n, err := g.ReadSamples(make([]float32, 16))
	require.NoError(t, err)
	assert.Equal(t, 16, n)
}
