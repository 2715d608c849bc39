// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/formats/wav"
)

// Files written here must be readable by go-audio/wav and the other way
// around.

func TestInterop_GoAudioReadsOurFiles(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1000, -1000, 32767, -32768, 42}

	var out bytes.Buffer
	require.NoError(t, wav.WriteSamples(&out, audio.NewSignalSpec(22050, 2), samples))

	d := gowav.NewDecoder(bytes.NewReader(out.Bytes()))
	require.True(t, d.IsValidFile())

	buf, err := d.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 22050, buf.Format.SampleRate)
	assert.Equal(t, 2, buf.Format.NumChannels)
	assert.Equal(t, uint16(16), d.BitDepth)
	assert.Equal(t, []int{0, 1000, -1000, 32767, -32768, 42}, buf.Data)
}

func TestInterop_WeReadGoAudioFiles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "go-audio.wav")

	f, err := os.Create(path)
	require.NoError(t, err)

	e := gowav.NewEncoder(f, 44100, 16, 1, 1)
	require.NoError(t, e.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           []int{5, -5, 300, -300},
		SourceBitDepth: 16,
	}))
	require.NoError(t, e.Close())
	require.NoError(t, f.Close())

	in, err := os.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = in.Close() })

	sig, err := wav.Decoder{}.Decode(in)
	require.NoError(t, err)
	assert.Equal(t, audio.NewSignalSpec(44100, 1), sig.Spec())

	r, err := audio.TaggedReaderAs[int16](sig)
	require.NoError(t, err)

	got, err := audio.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []int16{5, -5, 300, -300}, got)
}
