// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"math"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/phonic"
	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/gen"
	"github.com/ik5/phonic/utils"
)

func infoCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Aliases:   []string{"i"},
		Usage:     "print the format, sample type and layout of a file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "peak", Usage: "read every sample and print the peak level in [0, 1]"},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return cli.Exit("info needs exactly one file", 2)
			}

			in, err := phonic.Open(e.reg, cCtx.Args().First())
			if err != nil {
				return err
			}
			defer in.Close()

			sig := in.Signal
			spec := sig.Spec()

			w := cCtx.App.Writer
			fmt.Fprintf(w, "format:      %s\n", in.Format)
			fmt.Fprintf(w, "sample type: %s\n", sig.SampleType())
			fmt.Fprintf(w, "sample rate: %d Hz\n", spec.SampleRate)
			fmt.Fprintf(w, "channels:    %s\n", spec.Channels)

			if frames, ok := audio.LenOf(sig); ok && frames > 0 {
				fmt.Fprintf(w, "frames:      %d\n", frames)
				fmt.Fprintf(w, "duration:    %s\n", spec.Duration(frames))
			}

			if cCtx.Bool("peak") {
				p, err := peak(sig)
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "peak:        %.3f\n", p)
			}

			return nil
		},
	}
}

// peak is the highest absolute sample value of sig, scaled to [0, 1].
func peak(sig audio.TaggedSignal) (float64, error) {
	switch sig.SampleType() {
	case audio.Int8:
		return peakOf[int8](sig)
	case audio.Int16:
		return peakOf[int16](sig)
	case audio.Int32:
		return peakOf[int32](sig)
	case audio.Int64:
		return peakOf[int64](sig)
	case audio.Uint8:
		return peakOf[uint8](sig)
	case audio.Uint16:
		return peakOf[uint16](sig)
	case audio.Uint32:
		return peakOf[uint32](sig)
	case audio.Uint64:
		return peakOf[uint64](sig)
	case audio.Float32:
		return peakOf[float32](sig)
	case audio.Float64:
		return peakOf[float64](sig)
	default:
		return 0, fmt.Errorf("%w: sample type %s", audio.ErrUnsupported, sig.SampleType())
	}
}

func peakOf[T audio.Sample](sig audio.TaggedSignal) (float64, error) {
	r, err := audio.TaggedReaderAs[T](sig)
	if err != nil {
		return 0, err
	}

	buf := make([]T, r.Spec().Samples(4096))

	var hi float64

	for {
		n, err := r.ReadSamples(buf)
		if err != nil {
			return 0, err
		}

		if n == 0 {
			return hi, nil
		}

		for _, v := range buf[:n] {
			hi = max(hi, math.Abs(utils.ToUnit(v)))
		}
	}
}

func toneCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "tone",
		Aliases:   []string{"t"},
		Usage:     "write a sine tone",
		ArgsUsage: "<out.wav>",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "rate", Usage: "sample rate in Hz"},
			&cli.UintFlag{Name: "channels", Usage: "channel count"},
			&cli.StringFlag{Name: "type", Usage: "sample type: u8, i16, i32, i64, f32 or f64"},
			&cli.Float64Flag{Name: "frequency", Aliases: []string{"f"}, Usage: "tone frequency in Hz"},
			&cli.Float64Flag{Name: "amplitude", Aliases: []string{"a"}, Usage: "amplitude in [0, 1]"},
			&cli.Float64Flag{Name: "seconds", Aliases: []string{"s"}, Usage: "length in seconds"},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return cli.Exit("tone needs exactly one output file", 2)
			}

			for _, name := range []string{"rate", "channels", "type", "frequency", "amplitude", "seconds"} {
				if cCtx.IsSet(name) {
					e.cfg.Set("tone."+name, cCtx.Value(name))
				}
			}

			st, err := audio.ParseSampleType(e.cfg.GetString("tone.type"))
			if err != nil {
				return err
			}

			spec := audio.NewSignalSpec(e.cfg.GetUint32("tone.rate"), e.cfg.GetUint32("tone.channels"))
			seconds := e.cfg.GetFloat64("tone.seconds")
			freq := e.cfg.GetFloat64("tone.frequency")
			amp := e.cfg.GetFloat64("tone.amplitude")

			if spec.SampleRate == 0 || spec.Channels.Count == 0 || seconds <= 0 {
				return fmt.Errorf("%w: %s for %gs", audio.ErrUnsupported, spec, seconds)
			}

			sig, err := sine(st, spec, seconds, freq, amp)
			if err != nil {
				return err
			}

			out := cCtx.Args().First()

			e.log.Info("writing tone",
				zap.String("file", out),
				zap.Stringer("type", st),
				zap.Stringer("spec", spec),
				zap.Float64("frequency", freq),
				zap.Float64("seconds", seconds))

			return phonic.Create(e.reg, out, sig)
		},
	}
}

func sine(st audio.SampleType, spec audio.SignalSpec, seconds, freq, amp float64) (audio.TaggedSignal, error) {
	switch st {
	case audio.Int8:
		return audio.Tag[int8](gen.SineSeconds[int8](spec, seconds, freq, amp)), nil
	case audio.Int16:
		return audio.Tag[int16](gen.SineSeconds[int16](spec, seconds, freq, amp)), nil
	case audio.Int32:
		return audio.Tag[int32](gen.SineSeconds[int32](spec, seconds, freq, amp)), nil
	case audio.Int64:
		return audio.Tag[int64](gen.SineSeconds[int64](spec, seconds, freq, amp)), nil
	case audio.Uint8:
		return audio.Tag[uint8](gen.SineSeconds[uint8](spec, seconds, freq, amp)), nil
	case audio.Uint16:
		return audio.Tag[uint16](gen.SineSeconds[uint16](spec, seconds, freq, amp)), nil
	case audio.Uint32:
		return audio.Tag[uint32](gen.SineSeconds[uint32](spec, seconds, freq, amp)), nil
	case audio.Uint64:
		return audio.Tag[uint64](gen.SineSeconds[uint64](spec, seconds, freq, amp)), nil
	case audio.Float32:
		return audio.Tag[float32](gen.SineSeconds[float32](spec, seconds, freq, amp)), nil
	case audio.Float64:
		return audio.Tag[float64](gen.SineSeconds[float64](spec, seconds, freq, amp)), nil
	default:
		return nil, fmt.Errorf("%w: sample type %s", audio.ErrUnsupported, st)
	}
}

func convertCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Aliases:   []string{"c"},
		Usage:     "decode any known format and write it as WAVE, keeping the sample type (signed 8-bit is stored as unsigned 8-bit)",
		ArgsUsage: "<in> <out.wav>",
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 2 {
				return cli.Exit("convert needs an input and an output file", 2)
			}

			inPath, outPath := cCtx.Args().Get(0), cCtx.Args().Get(1)

			in, err := phonic.Open(e.reg, inPath)
			if err != nil {
				return err
			}
			defer in.Close()

			e.log.Info("converting",
				zap.String("from", inPath),
				zap.Stringer("format", in.Format),
				zap.Stringer("type", in.Signal.SampleType()),
				zap.Stringer("spec", in.Signal.Spec()),
				zap.String("to", outPath))

			return phonic.Create(e.reg, outPath, in.Signal)
		},
	}
}
