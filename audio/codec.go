// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"path/filepath"
	"strings"
)

// CodecType identifies the packet codec of a track.
type CodecType string

const (
	// CodecNull marks a track no registered codec can play.
	CodecNull CodecType = ""
	// CodecPCM is interleaved linear PCM described by CodecParams.
	CodecPCM CodecType = "pcm"
)

// TimeBase is the duration of one tick as Numer/Denom seconds.
type TimeBase struct {
	Numer uint32
	Denom uint32
}

// CodecParams describes a track as reported by its container.
// Zero SampleRate, Channels or FrameCount mean unknown.
type CodecParams struct {
	Codec        CodecType
	SampleRate   uint32
	Channels     uint16
	NativeFormat NativeFormat
	ByteOrder    binary.ByteOrder
	FrameCount   uint64
	// TimeBase is nil when the container cannot map time to ticks.
	TimeBase *TimeBase
}

type Track struct {
	ID     uint32
	Params CodecParams
}

// Packet is one unit of encoded data read from a container.
type Packet struct {
	TrackID   uint32
	Timestamp uint64
	Data      []byte
}

// FormatReader demuxes a container into packets.
type FormatReader interface {
	Tracks() []Track
	// NextPacket returns io.EOF once the container is exhausted.
	NextPacket() (Packet, error)
	// Seek moves to the packet boundary at or before ts (in track ticks)
	// and returns the timestamp actually reached.
	Seek(trackID uint32, ts uint64) (uint64, error)
	Close() error
}

// PacketDecoder turns packets of one track into native samples.
type PacketDecoder interface {
	Decode(p Packet) (Native, error)
	// Reset drops any state carried between packets.
	Reset()
}

// CodecConstructor builds a PacketDecoder for a track.
type CodecConstructor func(params CodecParams) (PacketDecoder, error)

// Hint carries out-of-band information used during probing.
type Hint struct {
	// Extension without the leading dot, e.g. "wav".
	Extension string
}

// HintFromPath derives a Hint from a file name.
func HintFromPath(path string) Hint {
	return Hint{Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")}
}
