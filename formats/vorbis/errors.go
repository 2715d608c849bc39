// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"

	"github.com/ik5/phonic/audio"
)

// ErrNotVorbisFile indicates the input is not an Ogg Vorbis stream
var ErrNotVorbisFile = fmt.Errorf("%w: not an Ogg Vorbis file", audio.ErrInvalidData)
