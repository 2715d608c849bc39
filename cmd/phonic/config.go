// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("loglevel", "warn")
	v.SetDefault("buffer", 4096)
	v.SetDefault("tone.rate", 48000)
	v.SetDefault("tone.channels", 1)
	v.SetDefault("tone.type", "f32")
	v.SetDefault("tone.frequency", 440.0)
	v.SetDefault("tone.amplitude", 0.6)
	v.SetDefault("tone.seconds", 1.0)
}

// loadConfig returns the defaults overlaid with path, when given and
// present, and with PHONIC_* environment variables.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("phonic")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}

		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return v, nil
}

// newLogger builds the logger for a level name: none, error, warn, info or
// debug. debug uses the development encoder.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level

	switch level {
	case "none":
		return zap.NewNop(), nil
	case "error":
		lvl = zapcore.ErrorLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "debug":
		return zap.NewDevelopment()
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"

	return cfg.Build()
}
