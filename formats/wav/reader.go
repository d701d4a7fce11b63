// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audpipe/audio"
)

// WAVE format tags from the fmt chunk.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

const (
	trackID      = 0
	packetFrames = 1024
)

// Container describes WAV for audio.Registry.
func Container() audio.Container {
	return audio.Container{
		Name:       "wav",
		Extensions: []string{"wav", "wave"},
		Sniff:      Sniff,
		Open: func(rs io.ReadSeeker) (audio.FormatReader, error) {
			return Open(rs)
		},
	}
}

// Sniff reports whether header starts with a RIFF/WAVE signature.
func Sniff(header []byte) bool {
	return len(header) >= 12 &&
		bytes.Equal(header[0:4], riff.RiffID[:]) &&
		bytes.Equal(header[8:12], riff.WavFormatID[:])
}

// Reader yields raw PCM packets from the data chunk of a WAV file.
type Reader struct {
	rs         io.ReadSeeker
	track      audio.Track
	dataStart  int64
	dataSize   int64
	offset     int64
	blockAlign int64
	buf        []byte
}

// Open parses the RIFF headers and positions rs at the first sample.
// Encodings other than integer PCM and IEEE float are reported as a
// track without a codec.
func Open(rs io.ReadSeeker) (*Reader, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(rs, header); err != nil || !Sniff(header) {
		return nil, ErrNotWavFile
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()

	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	dataStart, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	params := audio.CodecParams{
		Codec:      audio.CodecNull,
		SampleRate: dec.SampleRate,
		Channels:   dec.NumChans,
		ByteOrder:  binary.LittleEndian,
		TimeBase:   &audio.TimeBase{Numer: 1, Denom: dec.SampleRate},
	}

	// Unplayable tracks are never read; any non-zero stride will do.
	blockAlign := int64(dec.NumChans)

	if nf, ok := nativeFormat(dec.WavAudioFormat, dec.BitDepth); ok {
		params.Codec = audio.CodecPCM
		params.NativeFormat = nf
		blockAlign *= int64(nf.Width())
		params.FrameCount = uint64(int64(dec.PCMSize) / blockAlign)
	}

	return &Reader{
		rs:         rs,
		track:      audio.Track{ID: trackID, Params: params},
		dataStart:  dataStart,
		dataSize:   int64(dec.PCMSize),
		blockAlign: blockAlign,
		buf:        make([]byte, packetFrames*blockAlign),
	}, nil
}

func nativeFormat(wavFormat, bitDepth uint16) (audio.NativeFormat, bool) {
	switch wavFormat {
	case formatPCM, formatExtensible:
		switch bitDepth {
		case 8:
			return audio.NativeU8, true
		case 16:
			return audio.NativeS16, true
		case 24:
			return audio.NativeS24, true
		case 32:
			return audio.NativeS32, true
		}
	case formatIEEEFloat:
		switch bitDepth {
		case 32:
			return audio.NativeF32, true
		case 64:
			return audio.NativeF64, true
		}
	}

	return 0, false
}

func (r *Reader) Tracks() []audio.Track { return []audio.Track{r.track} }

// NextPacket returns up to 1024 frames. Data is only valid until the
// next call.
func (r *Reader) NextPacket() (audio.Packet, error) {
	remaining := r.dataSize - r.offset
	want := min(int64(len(r.buf)), remaining-remaining%r.blockAlign)
	if want <= 0 {
		return audio.Packet{}, io.EOF
	}

	n, err := io.ReadFull(r.rs, r.buf[:want])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return audio.Packet{}, io.EOF
		}
		return audio.Packet{}, fmt.Errorf("%w", err)
	}

	// A truncated file ends on the last whole frame.
	n -= n % int(r.blockAlign)
	if n == 0 {
		r.offset = r.dataSize
		return audio.Packet{}, io.EOF
	}

	pkt := audio.Packet{
		TrackID:   trackID,
		Timestamp: uint64(r.offset / r.blockAlign),
		Data:      r.buf[:n],
	}
	r.offset += int64(n)

	if n < int(want) {
		r.offset = r.dataSize
	}

	return pkt, nil
}

// Seek jumps to frame ts; WAV seeks are sample accurate.
func (r *Reader) Seek(_ uint32, ts uint64) (uint64, error) {
	frames := uint64(r.dataSize / r.blockAlign)
	ts = min(ts, frames)

	off := int64(ts) * r.blockAlign
	if _, err := r.rs.Seek(r.dataStart+off, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	r.offset = off

	return ts, nil
}

func (r *Reader) Close() error { return nil }

var _ audio.FormatReader = (*Reader)(nil)
