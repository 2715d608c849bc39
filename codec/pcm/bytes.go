// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"unsafe"

	"github.com/ik5/phonic/audio"
)

// asBytes views buf as its underlying bytes. Every Sample type is a plain
// fixed-size number, so any byte pattern is a valid value and the view is
// safe in both directions. The returned slice aliases buf.
func asBytes[T audio.Sample](buf []T) []byte {
	if len(buf) == 0 {
		return nil
	}

	var zero T

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(buf))), len(buf)*int(unsafe.Sizeof(zero)))
}

// swap reverses the byte order of every size-byte word of b in place.
func swap(b []byte, size int) {
	if size == 1 {
		return
	}

	for i := 0; i+size <= len(b); i += size {
		w := b[i : i+size]
		for l, r := 0, size-1; l < r; l, r = l+1, r-1 {
			w[l], w[r] = w[r], w[l]
		}
	}
}
