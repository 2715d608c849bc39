// SPDX-License-Identifier: EPL-2.0

// Package gen provides synthetic signals of any sample type: sine tones,
// silence, constants and arbitrary waveforms.
package gen

import (
	"fmt"
	"math"

	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/utils"
)

// Infinite makes a generator never run out.
const Infinite = math.MaxUint64

// Waveform returns the normalized value in [-1, 1] of a channel at a frame.
type Waveform func(frame uint64, channel int) float64

// Generator is a finite (or Infinite) reader computing its samples from a
// Waveform. It is seekable, indexed and finite.
type Generator[T audio.Sample] struct {
	spec     audio.SignalSpec
	frames   uint64
	pos      uint64
	waveform Waveform
}

// New creates a generator of the given number of frames.
func New[T audio.Sample](spec audio.SignalSpec, frames uint64, waveform Waveform) *Generator[T] {
	return &Generator[T]{
		spec:     spec,
		frames:   frames,
		waveform: waveform,
	}
}

// Sine generates the same sine tone on every channel.
func Sine[T audio.Sample](spec audio.SignalSpec, frames uint64, frequency, amplitude float64) *Generator[T] {
	step := 2 * math.Pi * frequency / float64(spec.SampleRate)

	return New[T](spec, frames, func(frame uint64, _ int) float64 {
		return amplitude * math.Sin(step*float64(frame))
	})
}

// Silence generates the origin of T.
func Silence[T audio.Sample](spec audio.SignalSpec, frames uint64) *Generator[T] {
	return Constant[T](spec, frames, 0)
}

// Constant generates a fixed normalized value.
func Constant[T audio.Sample](spec audio.SignalSpec, frames uint64, value float64) *Generator[T] {
	return New[T](spec, frames, func(uint64, int) float64 { return value })
}

// SineSeconds is Sine with a length expressed in seconds.
func SineSeconds[T audio.Sample](spec audio.SignalSpec, seconds, frequency, amplitude float64) *Generator[T] {
	return Sine[T](spec, uint64(seconds*float64(spec.SampleRate)), frequency, amplitude)
}

func (g *Generator[T]) Spec() audio.SignalSpec { return g.spec }
func (g *Generator[T]) Pos() uint64            { return g.pos }
func (g *Generator[T]) Len() uint64            { return g.frames }

// Reset rewinds to the first frame.
func (g *Generator[T]) Reset() { g.pos = 0 }

func (g *Generator[T]) ReadSamples(buf []T) (int, error) {
	ch := int(g.spec.Channels.Count)
	if ch == 0 {
		return 0, fmt.Errorf("%w: zero channels", audio.ErrUnsupported)
	}

	frames := uint64(len(buf) / ch)
	if frames == 0 && len(buf) > 0 && g.pos < g.frames {
		return 0, fmt.Errorf("%w: buffer of %d samples is shorter than one frame", audio.ErrSignalMismatch, len(buf))
	}

	frames = min(frames, g.frames-g.pos)

	for f := range frames {
		for c := range ch {
			buf[int(f)*ch+c] = utils.FromUnit[T](g.waveform(g.pos+f, c))
		}
	}

	g.pos += frames

	return int(frames) * ch, nil
}

func (g *Generator[T]) Seek(offset int64) error {
	target := int64(g.pos) + offset
	if target < 0 || (g.frames != Infinite && uint64(target) > g.frames) {
		return fmt.Errorf("%w: seek to frame %d outside [0, %d]", audio.ErrUnsupported, target, g.frames)
	}

	g.pos = uint64(target)

	return nil
}
