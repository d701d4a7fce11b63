// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

type pcmDecoder struct {
	format   NativeFormat
	order    binary.ByteOrder
	channels int
	width    int
}

// NewPCMDecoder decodes interleaved PCM packets laid out as params
// describes. ByteOrder defaults to little-endian.
func NewPCMDecoder(params CodecParams) (PacketDecoder, error) {
	if !params.NativeFormat.Valid() {
		return nil, fmt.Errorf("pcm: unsupported sample encoding %v", params.NativeFormat)
	}

	if params.Channels == 0 {
		return nil, fmt.Errorf("pcm: channel count is required")
	}

	order := params.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}

	return &pcmDecoder{
		format:   params.NativeFormat,
		order:    order,
		channels: int(params.Channels),
		width:    params.NativeFormat.Width(),
	}, nil
}

func (d *pcmDecoder) Reset() {}

// Decode splits p.Data into planes. A trailing partial frame is ignored.
func (d *pcmDecoder) Decode(p Packet) (Native, error) {
	frameSize := d.width * d.channels
	frames := len(p.Data) / frameSize
	data := p.Data[:frames*frameSize]

	switch d.format {
	case NativeU8:
		return U8Samples(deinterleave(data, d.channels, 1, func(b []byte) uint8 { return b[0] })), nil
	case NativeS8:
		return S8Samples(deinterleave(data, d.channels, 1, func(b []byte) int8 { return int8(b[0]) })), nil
	case NativeU16:
		return U16Samples(deinterleave(data, d.channels, 2, d.order.Uint16)), nil
	case NativeS16:
		return S16Samples(deinterleave(data, d.channels, 2, func(b []byte) int16 {
			return int16(d.order.Uint16(b))
		})), nil
	case NativeU24:
		return U24Samples(deinterleave(data, d.channels, 3, d.uint24)), nil
	case NativeS24:
		return S24Samples(deinterleave(data, d.channels, 3, func(b []byte) int32 {
			// Shift the sign bit into place, then back.
			return int32(d.uint24(b)<<8) >> 8
		})), nil
	case NativeU32:
		return U32Samples(deinterleave(data, d.channels, 4, d.order.Uint32)), nil
	case NativeS32:
		return S32Samples(deinterleave(data, d.channels, 4, func(b []byte) int32 {
			return int32(d.order.Uint32(b))
		})), nil
	case NativeF32:
		return F32Samples(deinterleave(data, d.channels, 4, func(b []byte) float32 {
			return math.Float32frombits(d.order.Uint32(b))
		})), nil
	case NativeF64:
		return F64Samples(deinterleave(data, d.channels, 8, func(b []byte) float64 {
			return math.Float64frombits(d.order.Uint64(b))
		})), nil
	default:
		return nil, fmt.Errorf("pcm: unsupported sample encoding %v", d.format)
	}
}

func (d *pcmDecoder) uint24(b []byte) uint32 {
	if d.order == binary.BigEndian {
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func deinterleave[T any](data []byte, channels, width int, read func([]byte) T) [][]T {
	frames := len(data) / (width * channels)

	planes := make([][]T, channels)
	for c := range planes {
		planes[c] = make([]T, frames)
	}

	off := 0
	for f := range frames {
		for c := range channels {
			planes[c][f] = read(data[off : off+width])
			off += width
		}
	}

	return planes
}

// PutPCM writes the low width bytes of v into b in the given order.
// Container readers use it to repack integer samples into PCM packets.
func PutPCM(b []byte, v int64, width int, order binary.ByteOrder) {
	if order == binary.BigEndian {
		for i := range width {
			b[i] = byte(v >> (8 * (width - 1 - i)))
		}
		return
	}

	for i := range width {
		b[i] = byte(v >> (8 * i))
	}
}
