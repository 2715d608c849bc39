// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/phonic/audio"
)

var (
	ErrNotWavFile           = fmt.Errorf("%w: not a WAV file", audio.ErrInvalidData)
	ErrUnsupportedWavLayout = fmt.Errorf("%w: unsupported WAV layout", audio.ErrUnsupported)
	ErrUnsupportedWavChunks = fmt.Errorf("%w: malformed WAV chunks", audio.ErrInvalidData)
	ErrFinalized            = fmt.Errorf("%w: WAV writer already finalized", audio.ErrUnsupported)
)
