// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audpipe/audio"
)

// mockStream hands out pre-built frames of blockSize samples per channel.
type mockStream struct {
	planes    [][]int32
	blockSize int
	offset    int
	err       error
}

func (m *mockStream) ParseNext() (*frame.Frame, error) {
	if m.err != nil {
		return nil, m.err
	}

	if m.offset >= len(m.planes[0]) {
		return nil, io.EOF
	}

	end := min(m.offset+m.blockSize, len(m.planes[0]))
	f := &frame.Frame{}
	for _, p := range m.planes {
		f.Subframes = append(f.Subframes, &frame.Subframe{Samples: p[m.offset:end]})
	}
	m.offset = end

	return f, nil
}

// Seek lands on the enclosing block boundary.
func (m *mockStream) Seek(sampleNum uint64) (uint64, error) {
	landed := int(sampleNum) / m.blockSize * m.blockSize
	m.offset = landed
	return uint64(landed), nil
}

func ramp(n int, scale int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i) * scale
	}
	return out
}

func TestOpen_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("This is not FLAC data")},
		{"empty", nil},
		{"marker only", []byte("fLaC")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Open(bytes.NewReader(tt.data)); !errors.Is(err, ErrNotFlacFile) {
				t.Errorf("Open() error = %v, want ErrNotFlacFile", err)
			}
		})
	}
}

func TestNewReader_Layout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bps     int
		want    audio.NativeFormat
		wantErr bool
	}{
		{bps: 8, want: audio.NativeS8},
		{bps: 12, want: audio.NativeS16},
		{bps: 16, want: audio.NativeS16},
		{bps: 20, want: audio.NativeS24},
		{bps: 24, want: audio.NativeS24},
		{bps: 32, want: audio.NativeS32},
		{bps: 3, wantErr: true},
		{bps: 33, wantErr: true},
	}

	for _, tt := range tests {
		r, err := newReader(&mockStream{}, 44100, 2, tt.bps, 0)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFlacLayout) {
				t.Errorf("newReader(%d bps) error = %v, want ErrUnsupportedFlacLayout", tt.bps, err)
			}
			continue
		}

		if err != nil {
			t.Fatalf("newReader(%d bps) error = %v", tt.bps, err)
		}

		if got := r.Tracks()[0].Params.NativeFormat; got != tt.want {
			t.Errorf("newReader(%d bps) format = %v, want %v", tt.bps, got, tt.want)
		}
	}
}

func TestReader_NextPacket(t *testing.T) {
	t.Parallel()

	left, right := ramp(10, 100), ramp(10, -100)
	r, err := newReader(&mockStream{planes: [][]int32{left, right}, blockSize: 4}, 44100, 2, 16, 10)
	if err != nil {
		t.Fatalf("newReader() error = %v", err)
	}

	var stamps []uint64
	frames := 0
	for {
		p, err := r.NextPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPacket() error = %v", err)
		}

		for i := 0; i < len(p.Data)/4; i++ {
			l := int16(binary.LittleEndian.Uint16(p.Data[4*i:]))
			rr := int16(binary.LittleEndian.Uint16(p.Data[4*i+2:]))
			if int32(l) != left[frames+i] || int32(rr) != right[frames+i] {
				t.Errorf("frame %d = (%d, %d), want (%d, %d)", frames+i, l, rr, left[frames+i], right[frames+i])
			}
		}

		stamps = append(stamps, p.Timestamp)
		frames += len(p.Data) / 4
	}

	if frames != 10 {
		t.Errorf("read %d frames, want 10", frames)
	}

	if len(stamps) != 3 || stamps[1] != 4 || stamps[2] != 8 {
		t.Errorf("timestamps = %v, want [0 4 8]", stamps)
	}
}

func TestReader_ShiftsToWidth(t *testing.T) {
	t.Parallel()

	// 20-bit half scale is 1<<18; as S24 it should read back as 0.5.
	r, err := newReader(&mockStream{planes: [][]int32{{1 << 18, -(1 << 19)}}, blockSize: 4096}, 48000, 1, 20, 2)
	if err != nil {
		t.Fatalf("newReader() error = %v", err)
	}

	dec, err := audio.NewDecoder(r, audio.NewRegistry())
	if err != nil {
		t.Fatalf("NewDecoder() error = %v", err)
	}

	buf, err := dec.NextPacket()
	if err != nil {
		t.Fatalf("NextPacket() error = %v", err)
	}

	if len(buf.Data) != 2 || buf.Data[0] != 0.5 || buf.Data[1] != -1 {
		t.Errorf("NextPacket() = %v, want [0.5 -1]", buf.Data)
	}
}

func TestReader_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("crc mismatch")
	r, _ := newReader(&mockStream{planes: [][]int32{{1}}, blockSize: 1, err: boom}, 8000, 1, 16, 1)

	if _, err := r.NextPacket(); !errors.Is(err, boom) {
		t.Errorf("NextPacket() error = %v, want %v", err, boom)
	}

	// A frame with the wrong number of subframes
	r, _ = newReader(&mockStream{planes: [][]int32{{1}}, blockSize: 1}, 8000, 2, 16, 1)

	if _, err := r.NextPacket(); !errors.Is(err, ErrUnsupportedFlacLayout) {
		t.Errorf("NextPacket() error = %v, want ErrUnsupportedFlacLayout", err)
	}
}

func TestReader_Seek(t *testing.T) {
	t.Parallel()

	r, _ := newReader(&mockStream{planes: [][]int32{ramp(100, 1)}, blockSize: 16}, 8000, 1, 16, 100)

	landed, err := r.Seek(0, 40)
	if err != nil {
		t.Fatalf("Seek() error = %v", err)
	}

	if landed != 32 {
		t.Errorf("Seek(40) landed at %d, want 32", landed)
	}

	p, _ := r.NextPacket()
	if p.Timestamp != 32 || int16(binary.LittleEndian.Uint16(p.Data)) != 32 {
		t.Errorf("packet after seek = ts %d, want 32", p.Timestamp)
	}

	if landed, _ := r.Seek(0, 1000); landed != 96 {
		t.Errorf("Seek past end landed at %d, want 96", landed)
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	if !Sniff([]byte("fLaC\x00\x00\x00\x22")) {
		t.Error("Sniff(fLaC) = false, want true")
	}

	if Sniff([]byte("OggS")) {
		t.Error("Sniff(OggS) = true, want false")
	}
}

func BenchmarkReader_NextPacket(b *testing.B) {
	m := &mockStream{planes: [][]int32{ramp(4096, 1), ramp(4096, -1)}, blockSize: 4096}
	r, _ := newReader(m, 44100, 2, 16, 4096)

	b.ReportAllocs()
	for b.Loop() {
		m.offset = 0
		_, _ = r.NextPacket()
	}
}
