// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
)

// Endian is the byte order of the samples in a stream.
type Endian uint8

const (
	Little Endian = iota + 1
	Big
)

// Native is the byte order of the running machine.
var Native = func() Endian {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return Little
	}

	return Big
}()

func (e Endian) String() string {
	switch e {
	case Little:
		return "little"
	case Big:
		return "big"
	default:
		return fmt.Sprintf("Endian(%d)", uint8(e))
	}
}

// IsNative reports whether samples in this byte order can be used in place.
func (e Endian) IsNative() bool { return e == Native }

// ByteOrder returns the encoding/binary order for e.
func (e Endian) ByteOrder() binary.ByteOrder {
	if e == Big {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
