// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"go.uber.org/zap"

	"github.com/ik5/phonic/audio"
)

type options struct {
	log      *zap.Logger
	dataLen  *uint64
	expected audio.FormatDataBuilder[Format, Codec]
}

// Option configures a Reader or a Writer.
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

// WithDataLen declares the size in bytes of the data chunk a Writer is going
// to produce, so the header is final from the start and the output does not
// need to be seekable.
func WithDataLen(n uint64) Option {
	return func(o *options) { o.dataLen = &n }
}

// WithExpected makes a Reader check the file against what the caller
// expects. Any field set in b that disagrees with the file is
// audio.ErrInvalidData.
func WithExpected(b audio.FormatDataBuilder[Format, Codec]) Option {
	return func(o *options) { o.expected = b }
}

func newOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
