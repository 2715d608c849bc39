// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/formats/wav"
)

// Example_decoding demonstrates decoding a WAV file.
func Example_decoding() {
	var file bytes.Buffer
	_ = wav.WriteWAV16(&file, 16000, []int16{100, 200, 300, 400, 500})

	sig, err := wav.Decoder{}.Decode(&file)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	fmt.Println(sig.SampleType(), sig.Spec())

	r, _ := audio.TaggedReaderAs[int16](sig)
	samples, _ := audio.ReadAll(r)

	fmt.Println(samples)
	// Output:
	// i16 16000Hz 1ch
	// [100 200 300 400 500]
}

// Example_encoding writes 32-bit float samples with a declared length.
func Example_encoding() {
	var out bytes.Buffer

	b := audio.NewFormatDataBuilder(wav.Wave,
		audio.NewStreamSpecBuilder(wav.CodecFloat, audio.Float32, audio.NewSignalSpec(48000, 2)))

	w, err := wav.NewWriter(&out, b, wav.WithDataLen(8*100))
	if err != nil {
		fmt.Println(err)
		return
	}

	enc, _ := w.Encoder()
	src := audio.NewSilentBuffer[float32](audio.NewSignalSpec(48000, 2), 100)

	if _, err := audio.CopyTagged(enc, audio.Tag[float32](src), 64); err != nil {
		fmt.Println(err)
		return
	}

	if err := w.Close(); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(w.StreamSpec())
	fmt.Printf("Wrote %d bytes\n", out.Len())
	// Output:
	// WAVE_FORMAT_IEEE_FLOAT f32 48000Hz 2ch (384000 B/s, align 8)
	// Wrote 846 bytes
}

// Example_errorNotWAV shows handling of invalid WAV files.
func Example_errorNotWAV() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("This is not a WAV file")))

	fmt.Println(errors.Is(err, wav.ErrNotWavFile), errors.Is(err, audio.ErrInvalidData))
	// Output:
	// true true
}
