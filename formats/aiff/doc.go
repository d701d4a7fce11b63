// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// The Reader turns the decoded integers back into big-endian PCM packets so
// package audio's PCM codec handles the float conversion:
//
//	reg := audio.NewRegistry()
//	reg.Register(aiff.Container())
//	dec, err := audio.Open(file, audio.Hint{Extension: "aif"}, reg)
//
// # Supported Formats
//
//   - Signed integer PCM at 16, 24 and 32 bits
//   - Mono and multi-channel
//   - Any sample rate
//
// 8-bit AIFF is signed; those packets are dropped by audio.Decoder with a
// warning. Seeking is not supported and fails with audio.ErrNoTimeBase.
package aiff
