// SPDX-License-Identifier: EPL-2.0

package mux

import "go.uber.org/zap"

type options struct {
	log *zap.Logger
}

// Option configures a Bus.
type Option func(*options)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
