// SPDX-License-Identifier: EPL-2.0

package realtime

import (
	"time"

	"go.uber.org/zap"
)

type options struct {
	log  *zap.Logger
	poll time.Duration
}

// Option configures a Sink and Source pair.
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

// WithPollInterval sets how long Sink.Block sleeps. The default is a quarter
// of the ring duration, at least one millisecond.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.poll = d }
}

func newOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
