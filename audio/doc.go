// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding core: container probing, packet
// decoding and conversion of native samples into canonical float32 PCM.
//
// # Canonical PCM
//
// Every Buffer holds interleaved float32 samples in [-1.0, 1.0], tagged
// with the SampleFormat the stream was decoded from:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Native codec output is modelled by the Native variant (U8Samples,
// S16Samples, F64Samples, ...). AppendInterleaved is the single
// conversion point into the canonical domain. Signed 8-bit input is not
// supported and contributes no samples.
//
// # Containers and Codecs
//
// Containers are registered on a Registry together with sniffing and
// extension rules; codecs are registered by CodecType. The registry
// ships with the PCM codec:
//
//	registry := audio.NewRegistry()
//	registry.Register(wav.Container())
//	dec, err := audio.Open(file, audio.HintFromPath(name), registry)
//
// # Decoding
//
// Decoder.NextPacket returns one Buffer per packet and io.EOF at the
// clean end of the stream. Decoder also implements Source for callers
// that prefer reading into their own buffers:
//
//	for {
//	    buf, err := dec.NextPacket()
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // ErrPacketRead or ErrDecode
//	    }
//	    // Process buf.Data
//	}
//
// # Seeking
//
// Decoder.Seek converts seconds into the track's time base and performs
// a coarse seek; playback resumes at the packet boundary at or before
// the requested time. Tracks without a time base fail with
// ErrNoTimeBase and leave the decoder untouched.
package audio
