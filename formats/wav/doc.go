// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// The reader walks the RIFF chunks with github.com/go-audio/wav and then
// serves the data chunk as raw PCM packets, so decoding is done by the
// generic PCM codec in package audio. Register it with a registry:
//
//	reg := audio.NewRegistry()
//	reg.Register(wav.Container())
//	dec, err := audio.Open(file, audio.Hint{Extension: "wav"}, reg)
//
// # Supported Encodings
//
//   - Integer PCM at 8 (unsigned), 16, 24 and 32 bits
//   - IEEE float at 32 and 64 bits
//   - WAVE_FORMAT_EXTENSIBLE carrying integer PCM
//
// Compressed encodings (ADPCM, mu-law and so on) open successfully but
// expose a track without a codec; audio.Open then fails with
// audio.ErrNoSupportedTrack.
//
// Seeking is sample accurate.
//
// # Writing WAV Files
//
// WritePCM writes a canonical 44-byte header followed by little-endian
// samples. It never seeks, so any io.Writer works:
//
//	err := wav.WritePCM(file, 44100, 2, 24, samples)
package wav
