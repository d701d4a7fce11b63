// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"

	"github.com/ik5/audpipe/audio"
)

// CodecFake is the codec type served by Codec.
const CodecFake audio.CodecType = "fake"

// FormatReader is an in-memory audio.FormatReader over a fixed packet list.
type FormatReader struct {
	TrackList []audio.Track
	Packets   []audio.Packet
	// ReadErr replaces io.EOF once the packets run out.
	ReadErr error
	// SeekErr, when set, fails every Seek.
	SeekErr error

	Closed bool
	Seeks  []uint64
	pos    int
}

func (f *FormatReader) Tracks() []audio.Track { return f.TrackList }

func (f *FormatReader) NextPacket() (audio.Packet, error) {
	if f.pos >= len(f.Packets) {
		if f.ReadErr != nil {
			return audio.Packet{}, f.ReadErr
		}
		return audio.Packet{}, io.EOF
	}

	p := f.Packets[f.pos]
	f.pos++

	return p, nil
}

// Seek lands on the last packet of trackID starting at or before ts.
func (f *FormatReader) Seek(trackID uint32, ts uint64) (uint64, error) {
	f.Seeks = append(f.Seeks, ts)
	if f.SeekErr != nil {
		return 0, f.SeekErr
	}

	pos, landed := 0, uint64(0)
	for i, p := range f.Packets {
		if p.TrackID == trackID && p.Timestamp <= ts {
			pos, landed = i, p.Timestamp
		}
	}
	f.pos = pos

	return landed, nil
}

func (f *FormatReader) Close() error {
	f.Closed = true
	return nil
}

// Codec hands out Natives in order, one per packet.
type Codec struct {
	Natives []audio.Native
	// Err fails every Decode when set.
	Err    error
	Resets int
	pos    int
}

func (c *Codec) Decode(audio.Packet) (audio.Native, error) {
	if c.Err != nil {
		return nil, c.Err
	}

	if c.pos >= len(c.Natives) {
		return audio.F32Samples{}, nil
	}

	n := c.Natives[c.pos]
	c.pos++

	return n, nil
}

// Reset rewinds the native list so a seek replays from the start.
func (c *Codec) Reset() {
	c.Resets++
	c.pos = 0
}

// Registry returns a registry whose CodecFake constructor yields c.
func (c *Codec) Registry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.RegisterCodec(CodecFake, func(audio.CodecParams) (audio.PacketDecoder, error) {
		return c, nil
	})

	return reg
}

// Track returns a fake-codec track with a 1/rate time base.
func Track(id uint32, rate uint32, channels uint16, format audio.NativeFormat) audio.Track {
	return audio.Track{
		ID: id,
		Params: audio.CodecParams{
			Codec:        CodecFake,
			SampleRate:   rate,
			Channels:     channels,
			NativeFormat: format,
			TimeBase:     &audio.TimeBase{Numer: 1, Denom: rate},
		},
	}
}
