// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"

	"github.com/ik5/phonic/audio"
)

// ErrNotMP3File indicates the input has no decodable MPEG audio frame
var ErrNotMP3File = fmt.Errorf("%w: not an MP3 file", audio.ErrInvalidData)
