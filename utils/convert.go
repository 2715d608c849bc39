// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"

	"github.com/ik5/phonic/audio"
)

// FromUnit converts x in [-1, 1] to the full range of T. Values outside the
// range are clamped. Negative values scale by |min| and positive ones by max,
// so -1 and 1 map exactly to the extremes of integer types. Unsigned types
// are offset by their origin.
func FromUnit[T audio.Sample](x float64) T {
	x = clamp(x)

	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(scale(x, math.MinInt8, math.MaxInt8))).(T)
	case int16:
		return any(int16(scale(x, math.MinInt16, math.MaxInt16))).(T)
	case int32:
		return any(int32(scale(x, math.MinInt32, math.MaxInt32))).(T)
	case int64:
		return any(toInt64(x)).(T)
	case uint8:
		return any(uint8(int8(scale(x, math.MinInt8, math.MaxInt8))) ^ 0x80).(T)
	case uint16:
		return any(uint16(int16(scale(x, math.MinInt16, math.MaxInt16))) ^ 0x8000).(T)
	case uint32:
		return any(uint32(int32(scale(x, math.MinInt32, math.MaxInt32))) ^ 0x80000000).(T)
	case uint64:
		return any(uint64(toInt64(x)) ^ (1 << 63)).(T)
	case float32:
		return any(float32(x)).(T)
	default:
		return any(x).(T)
	}
}

// ToUnit is the inverse of FromUnit.
func ToUnit[T audio.Sample](v T) float64 {
	switch s := any(v).(type) {
	case int8:
		return unscale(float64(s), math.MinInt8, math.MaxInt8)
	case int16:
		return unscale(float64(s), math.MinInt16, math.MaxInt16)
	case int32:
		return unscale(float64(s), math.MinInt32, math.MaxInt32)
	case int64:
		return unscale(float64(s), math.MinInt64, math.MaxInt64)
	case uint8:
		return unscale(float64(int8(s^0x80)), math.MinInt8, math.MaxInt8)
	case uint16:
		return unscale(float64(int16(s^0x8000)), math.MinInt16, math.MaxInt16)
	case uint32:
		return unscale(float64(int32(s^0x80000000)), math.MinInt32, math.MaxInt32)
	case uint64:
		return unscale(float64(int64(s^(1<<63))), math.MinInt64, math.MaxInt64)
	case float32:
		return float64(s)
	case float64:
		return s
	}

	return 0
}

func clamp(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}

func scale(x, lo, hi float64) float64 {
	if x < 0 {
		return -x * lo
	}

	return x * hi
}

func unscale(v, lo, hi float64) float64 {
	if v < 0 {
		return -v / lo
	}

	return v / hi
}

// toInt64 avoids the float64 rounding of MaxInt64 up to 2^63, which does not
// fit an int64.
func toInt64(x float64) int64 {
	if x >= 1 {
		return math.MaxInt64
	}

	return int64(scale(x, math.MinInt64, math.MaxInt64))
}
