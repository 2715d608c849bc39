// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Sample is the closed set of numeric sample representations.
// Named types are deliberately excluded so SampleTypeOf stays exhaustive.
type Sample interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// SampleType identifies a Sample type at runtime.
type SampleType uint8

// Known sample types. The zero value is not a valid sample type.
const (
	Int8 SampleType = iota + 1
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

// SampleTypes lists every known sample type in declaration order.
var SampleTypes = [...]SampleType{Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64}

func (t SampleType) String() string {
	switch t {
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Int32:
		return "i32"
	case Int64:
		return "i64"
	case Uint8:
		return "u8"
	case Uint16:
		return "u16"
	case Uint32:
		return "u32"
	case Uint64:
		return "u64"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	default:
		return fmt.Sprintf("SampleType(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the known sample types.
func (t SampleType) Valid() bool { return t >= Int8 && t <= Float64 }

// Size is the byte size of one sample, 0 for an invalid type.
func (t SampleType) Size() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// Bits is Size expressed in bits.
func (t SampleType) Bits() int { return t.Size() * 8 }

func (t SampleType) IsFloat() bool { return t == Float32 || t == Float64 }

func (t SampleType) IsSigned() bool { return t.IsFloat() || (t >= Int8 && t <= Int64) }

// ParseSampleType is the inverse of SampleType.String.
func ParseSampleType(s string) (SampleType, error) {
	for _, t := range SampleTypes {
		if t.String() == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: sample type %q", ErrNotFound, s)
}

// SampleTypeOf returns the runtime tag of T.
func SampleTypeOf[T Sample]() SampleType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	}

	panic("unreachable: Sample type set is closed")
}

// Origin is the representation of silence for T: zero for signed and float
// types, the mid-point for unsigned types.
func Origin[T Sample]() T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return any(uint8(1 << 7)).(T)
	case uint16:
		return any(uint16(1 << 15)).(T)
	case uint32:
		return any(uint32(1 << 31)).(T)
	case uint64:
		return any(uint64(1 << 63)).(T)
	default:
		return zero
	}
}

// Silence fills buf with Origin.
func Silence[T Sample](buf []T) {
	o := Origin[T]()
	for i := range buf {
		buf[i] = o
	}
}
