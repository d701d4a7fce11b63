// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audpipe/audio"
)

const headerSize = 44

// WritePCM writes a complete integer PCM WAV file to w. Because the data
// size is known up front, w does not need to support seeking.
//
// samples are interleaved and already scaled to bitDepth (8, 16, 24 or 32).
func WritePCM(w io.Writer, sampleRate, channels, bitDepth int, samples []int) error {
	if channels <= 0 || sampleRate <= 0 {
		return ErrUnsupportedWavLayout
	}

	width := bitDepth / 8
	if bitDepth%8 != 0 || width < 1 || width > 4 {
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupportedWavLayout, bitDepth)
	}

	blockAlign := uint16(channels * width)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(samples) * width)

	// Pre-allocate buffer for entire header (44 bytes)
	header := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitDepth))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	// Write in chunks to bound memory for long files
	const chunkSize = 8192
	buf := make([]byte, min(len(samples), chunkSize)*width)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*width]

		for j, s := range chunk {
			v := int64(s)
			// 8-bit WAV is unsigned
			if width == 1 {
				v += 128
			}
			audio.PutPCM(out[j*width:], v, width, binary.LittleEndian)
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
