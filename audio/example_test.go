// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/internal/audiotest"
)

// Example_decoder demonstrates pulling canonical float32 packets from a
// PCM track.
func Example_decoder() {
	// Two frames of 16-bit little-endian mono PCM
	data := make([]byte, 4)
	binary.LittleEndian.PutUint16(data, 16384)
	binary.LittleEndian.PutUint16(data[2:], 0)

	reader := &audiotest.FormatReader{
		TrackList: []audio.Track{{ID: 1, Params: audio.CodecParams{
			Codec:        audio.CodecPCM,
			SampleRate:   16000,
			Channels:     1,
			NativeFormat: audio.NativeS16,
		}}},
		Packets: []audio.Packet{{TrackID: 1, Data: data}},
	}

	dec, err := audio.NewDecoder(reader, audio.NewRegistry())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer dec.Close()

	fmt.Printf("Stream: %d Hz, %d channel(s), %v\n",
		dec.Stream().SampleRate, dec.Stream().Channels, dec.Stream().SampleFormat)

	for {
		buf, err := dec.NextPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("Packet: %v\n", buf.Data)
	}
	// Output:
	// Stream: 16000 Hz, 1 channel(s), s16
	// Packet: [0.5 0]
}

// Example_appendInterleaved shows the canonical conversion of native samples.
func Example_appendInterleaved() {
	samples := audio.AppendInterleaved(nil, audio.U8Samples{{128, 0}, {255, 64}})

	fmt.Println(samples)
	// Output:
	// [0 0.9921875 -1 -0.5]
}

// Example_closestStandardRate shows snapping an odd rate to a standard one.
func Example_closestStandardRate() {
	fmt.Println(audio.ClosestStandardRate(44000))
	// Output:
	// 44100
}
