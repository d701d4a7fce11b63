// SPDX-License-Identifier: EPL-2.0

package audio

// Native is decoded audio in the codec's own encoding, one plane per
// channel. The set of implementations is closed; AppendInterleaved
// handles every one of them.
type Native interface {
	Frames() int
	Channels() int
	NativeFormat() NativeFormat

	native()
}

type (
	U8Samples  [][]uint8
	U16Samples [][]uint16
	// U24Samples holds unsigned 24-bit values in the low bits.
	U24Samples [][]uint32
	U32Samples [][]uint32
	S8Samples  [][]int8
	S16Samples [][]int16
	// S24Samples holds sign-extended 24-bit values.
	S24Samples [][]int32
	S32Samples [][]int32
	F32Samples [][]float32
	F64Samples [][]float64
)

// planeFrames is the length of the shortest plane. Samples past it in
// longer planes are not part of any frame.
func planeFrames[T any](planes [][]T) int {
	if len(planes) == 0 {
		return 0
	}

	n := len(planes[0])
	for _, p := range planes[1:] {
		n = min(n, len(p))
	}

	return n
}

func (s U8Samples) Frames() int  { return planeFrames(s) }
func (s U16Samples) Frames() int { return planeFrames(s) }
func (s U24Samples) Frames() int { return planeFrames(s) }
func (s U32Samples) Frames() int { return planeFrames(s) }
func (s S8Samples) Frames() int  { return planeFrames(s) }
func (s S16Samples) Frames() int { return planeFrames(s) }
func (s S24Samples) Frames() int { return planeFrames(s) }
func (s S32Samples) Frames() int { return planeFrames(s) }
func (s F32Samples) Frames() int { return planeFrames(s) }
func (s F64Samples) Frames() int { return planeFrames(s) }

func (s U8Samples) Channels() int  { return len(s) }
func (s U16Samples) Channels() int { return len(s) }
func (s U24Samples) Channels() int { return len(s) }
func (s U32Samples) Channels() int { return len(s) }
func (s S8Samples) Channels() int  { return len(s) }
func (s S16Samples) Channels() int { return len(s) }
func (s S24Samples) Channels() int { return len(s) }
func (s S32Samples) Channels() int { return len(s) }
func (s F32Samples) Channels() int { return len(s) }
func (s F64Samples) Channels() int { return len(s) }

func (U8Samples) NativeFormat() NativeFormat  { return NativeU8 }
func (U16Samples) NativeFormat() NativeFormat { return NativeU16 }
func (U24Samples) NativeFormat() NativeFormat { return NativeU24 }
func (U32Samples) NativeFormat() NativeFormat { return NativeU32 }
func (S8Samples) NativeFormat() NativeFormat  { return NativeS8 }
func (S16Samples) NativeFormat() NativeFormat { return NativeS16 }
func (S24Samples) NativeFormat() NativeFormat { return NativeS24 }
func (S32Samples) NativeFormat() NativeFormat { return NativeS32 }
func (F32Samples) NativeFormat() NativeFormat { return NativeF32 }
func (F64Samples) NativeFormat() NativeFormat { return NativeF64 }

func (U8Samples) native()  {}
func (U16Samples) native() {}
func (U24Samples) native() {}
func (U32Samples) native() {}
func (S8Samples) native()  {}
func (S16Samples) native() {}
func (S24Samples) native() {}
func (S32Samples) native() {}
func (F32Samples) native() {}
func (F64Samples) native() {}

// AppendInterleaved converts n to the canonical [-1, 1] float domain and
// appends it to dst frame by frame. Signed 8-bit input appends nothing.
func AppendInterleaved(dst []float32, n Native) []float32 {
	switch s := n.(type) {
	case U8Samples:
		return interleave(dst, s, func(c uint8) float32 {
			return (float32(c) - 128) / 128
		})
	case U16Samples:
		return interleave(dst, s, func(c uint16) float32 {
			return (float32(c) - 32768) / 32768
		})
	case U24Samples:
		return interleave(dst, s, func(c uint32) float32 {
			return float32(c)/8388608 - 1
		})
	case U32Samples:
		return interleave(dst, s, func(c uint32) float32 {
			return float32(c)/2147483648 - 1
		})
	case S8Samples:
		return dst
	case S16Samples:
		return interleave(dst, s, func(c int16) float32 {
			return float32(c) / 32768
		})
	case S24Samples:
		return interleave(dst, s, func(c int32) float32 {
			return clamp(float32(c) / 8388608)
		})
	case S32Samples:
		return interleave(dst, s, func(c int32) float32 {
			return clamp(float32(c) / 2147483648)
		})
	case F32Samples:
		return interleave(dst, s, func(c float32) float32 { return c })
	case F64Samples:
		return interleave(dst, s, func(c float64) float32 {
			return clamp(float32(c))
		})
	default:
		return dst
	}
}

func interleave[T any](dst []float32, planes [][]T, conv func(T) float32) []float32 {
	frames := planeFrames(planes)
	for f := range frames {
		for _, plane := range planes {
			dst = append(dst, conv(plane[f]))
		}
	}

	return dst
}

func clamp(x float32) float32 {
	if x > 1 {
		return 1
	}

	if x < -1 {
		return -1
	}

	return x
}
