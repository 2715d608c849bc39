// SPDX-License-Identifier: EPL-2.0

// Command phonic inspects, generates and converts audio files.
//
//	phonic info song.mp3
//	phonic tone --seconds 2 --type i16 a440.wav
//	phonic convert song.ogg song.wav
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/phonic"
	"github.com/ik5/phonic/audio"
	"github.com/ik5/phonic/formats/wav"
)

// env is what every command needs, built once the flags are parsed.
type env struct {
	cfg *viper.Viper
	log *zap.Logger
	reg *audio.Registry
}

func newApp() *cli.App {
	e := &env{}

	return &cli.App{
		Name:  "phonic",
		Usage: "inspect, generate and convert audio files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (yaml, toml or json)",
			},
			&cli.StringFlag{
				Name:  "loglevel",
				Usage: "none, error, warn, info or debug",
			},
		},
		Before: func(cCtx *cli.Context) error {
			cfg, err := loadConfig(cCtx.String("config"))
			if err != nil {
				return err
			}

			if cCtx.IsSet("loglevel") {
				cfg.Set("loglevel", cCtx.String("loglevel"))
			}

			log, err := newLogger(cfg.GetString("loglevel"))
			if err != nil {
				return err
			}

			e.cfg = cfg
			e.log = log
			e.reg = phonic.NewRegistry(wav.WithLogger(log))

			// the configured copy buffer applies to WAVE output
			info, err := e.reg.Get(audio.FormatWave)
			if err != nil {
				return err
			}

			info.Encoder = wav.Encoder{
				Options:      []wav.Option{wav.WithLogger(log)},
				BufferFrames: cfg.GetInt("buffer"),
			}
			e.reg.Register(info)

			return nil
		},
		After: func(*cli.Context) error {
			if e.log != nil {
				_ = e.log.Sync()
			}

			return nil
		},
		Commands: []*cli.Command{
			infoCommand(e),
			toneCommand(e),
			convertCommand(e),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "phonic:", err)
		os.Exit(1)
	}
}
