// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// SampleFormat tags the native encoding a stream was decoded from.
// The zero value is not a valid format.
type SampleFormat uint8

const (
	U8 SampleFormat = iota + 1
	U16
	U24
	U32
	S16
	S24
	S32
	F32
	F64
)

var sampleFormatNames = [...]string{
	U8:  "u8",
	U16: "u16",
	U24: "u24",
	U32: "u32",
	S16: "s16",
	S24: "s24",
	S32: "s32",
	F32: "f32",
	F64: "f64",
}

// Valid reports whether f is one of the defined formats.
func (f SampleFormat) Valid() bool {
	return f >= U8 && f <= F64
}

func (f SampleFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("SampleFormat(%d)", uint8(f))
	}

	return sampleFormatNames[f]
}

// BitsPerSample returns the bit width of one sample.
func (f SampleFormat) BitsPerSample() int {
	switch f {
	case U8:
		return 8
	case U16, S16:
		return 16
	case U24, S24:
		return 24
	case U32, S32, F32:
		return 32
	case F64:
		return 64
	default:
		return 0
	}
}

// SampleSize returns the number of bytes one sample occupies in memory.
// 24-bit formats are stored in 4 bytes.
func (f SampleFormat) SampleSize() int {
	switch f {
	case U8:
		return 1
	case U16, S16:
		return 2
	case U24, U32, S24, S32, F32:
		return 4
	case F64:
		return 8
	default:
		return 0
	}
}

func (f SampleFormat) IsFloat() bool { return f == F32 || f == F64 }

func (f SampleFormat) IsSigned() bool {
	return f == S16 || f == S24 || f == S32 || f.IsFloat()
}

// NativeFormat is the encoding a codec yields before normalization.
// It is every SampleFormat plus signed 8-bit.
type NativeFormat uint8

const (
	NativeU8 NativeFormat = iota + 1
	NativeU16
	NativeU24
	NativeU32
	NativeS8
	NativeS16
	NativeS24
	NativeS32
	NativeF32
	NativeF64
)

func (n NativeFormat) Valid() bool {
	return n >= NativeU8 && n <= NativeF64
}

// SampleFormat maps n to the stream tag. S8 has no tag of its own and
// reports U8.
func (n NativeFormat) SampleFormat() SampleFormat {
	switch n {
	case NativeU8, NativeS8:
		return U8
	case NativeU16:
		return U16
	case NativeU24:
		return U24
	case NativeU32:
		return U32
	case NativeS16:
		return S16
	case NativeS24:
		return S24
	case NativeS32:
		return S32
	case NativeF32:
		return F32
	case NativeF64:
		return F64
	default:
		return 0
	}
}

// Width returns the packed byte width of one sample.
func (n NativeFormat) Width() int {
	switch n {
	case NativeU8, NativeS8:
		return 1
	case NativeU16, NativeS16:
		return 2
	case NativeU24, NativeS24:
		return 3
	case NativeU32, NativeS32, NativeF32:
		return 4
	case NativeF64:
		return 8
	default:
		return 0
	}
}

func (n NativeFormat) String() string {
	if n == NativeS8 {
		return "s8"
	}

	if !n.Valid() {
		return fmt.Sprintf("NativeFormat(%d)", uint8(n))
	}

	return n.SampleFormat().String()
}
