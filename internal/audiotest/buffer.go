// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/audpipe/audio"
)

// NewBuffer builds an F32 buffer of frames frames from waveform.
func NewBuffer(sampleRate uint32, channels uint16, frames int, waveform func(frame, channel int) float32) *audio.Buffer {
	data := make([]float32, 0, frames*int(channels))
	for f := range frames {
		for c := range int(channels) {
			data = append(data, waveform(f, c))
		}
	}

	return audio.NewBuffer(data, audio.F32, sampleRate, channels)
}

func SineBuffer(sampleRate uint32, channels uint16, frames int, frequency float64) *audio.Buffer {
	return NewBuffer(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func ConstantBuffer(sampleRate uint32, channels uint16, frames int, value float32) *audio.Buffer {
	return NewBuffer(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func SilentBuffer(sampleRate uint32, channels uint16, frames int) *audio.Buffer {
	return ConstantBuffer(sampleRate, channels, frames, 0)
}
