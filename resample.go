// SPDX-License-Identifier: EPL-2.0

package audpipe

import (
	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/processing"
	"github.com/ik5/audpipe/utils"
)

// ResampleToMono16 is a convenience wrapper for the most common telephony
// and speech use: resample buf to targetRate, fold it to mono and
// quantize it to 16-bit PCM.
//
// The steps are:
//  1. Resample to targetRate with processing.LinearResampler
//  2. Average all channels with processing.ChannelMixer
//  3. Convert float32 samples to int16 with utils.Float32ToInt16
//
// buf is not modified. targetRate must be within
// [processing.MinSampleRate, processing.MaxSampleRate].
//
// Example:
//
//	dec, _ := audpipe.OpenFile("call.wav")
//	buf, _ := audpipe.DecodeAll(dec)
//	pcm16, err := audpipe.ResampleToMono16(buf, 8000)
//	if err != nil {
//	    return err
//	}
//	// pcm16 now contains mono 16-bit PCM at 8kHz
func ResampleToMono16(buf *audio.Buffer, targetRate uint32) ([]int16, error) {
	resampler, err := processing.NewLinearResampler(
		processing.DefaultResamplerConfig().WithTargetSampleRate(targetRate),
	)
	if err != nil {
		return nil, err
	}

	mixer, err := processing.NewChannelMixer(processing.DefaultChannelMixerConfig())
	if err != nil {
		return nil, err
	}

	work := buf.Clone()
	for _, st := range []processing.Processor{resampler, mixer} {
		if err := st.Process(work); err != nil {
			return nil, err
		}
	}

	pcm16 := make([]int16, len(work.Data))
	for i, x := range work.Data {
		pcm16[i] = utils.Float32ToInt16(x)
	}

	return pcm16, nil
}
