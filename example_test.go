// SPDX-License-Identifier: EPL-2.0

package phonic_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/ik5/phonic"
	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/formats/wav"
	"github.com/ik5/phonic/gen"
)

// Example_basicUsage writes a tone as WAVE in memory and decodes it again
// through the registry.
func Example_basicUsage() {
	spec := audio.NewSignalSpec(8000, 1)
	tone := gen.Sine[int16](spec, 800, 440, 0.5)

	var buf bytes.Buffer
	if err := (wav.Encoder{}).Encode(&buf, audio.Tag[int16](tone)); err != nil {
		log.Fatal(err)
	}

	sig, format, err := phonic.Decode(phonic.NewRegistry(), &buf, "audio/wav")
	if err != nil {
		log.Fatal(err)
	}

	frames, _ := audio.LenOf(sig)
	fmt.Println(format, sig.SampleType(), sig.Spec(), frames)
	// Output: wave i16 8000Hz 1ch 800
}

// Example_formats lists what the default registry knows.
func Example_formats() {
	for _, info := range phonic.NewRegistry().Formats() {
		fmt.Println(info.Format, info.Extensions, info.Encoder != nil)
	}

	// Output:
	// wave [wav wave] true
	// aiff [aif aiff] false
	// mp3 [mp3] false
	// vorbis [ogg oga] false
}

// Example_errorHandling shows how a lookup failure is classified.
func Example_errorHandling() {
	_, err := phonic.Open(phonic.NewRegistry(), "notes.txt")

	fmt.Println(errors.Is(err, audio.ErrNotFound))
	// Output: true
}

// Example_convert decodes any registered format and writes it as WAVE with
// the same sample type.
func Example_convert() {
	reg := phonic.NewRegistry()

	in, err := phonic.Open(reg, "input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	if err := phonic.Create(reg, "output.wav", in.Signal); err != nil {
		log.Fatal(err)
	}
}
