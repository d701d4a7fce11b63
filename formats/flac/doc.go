// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC decoding on top of github.com/mewkiz/flac.
//
// Each FLAC frame becomes one little-endian PCM packet. Bit depths that
// are not a whole number of bytes are shifted up to the next packet width
// (12-bit to S16, 20-bit to S24) so full scale stays at 1.0.
//
//	reg := audio.NewRegistry()
//	reg.Register(flac.Container())
//	dec, err := audio.Open(file, audio.Hint{Extension: "flac"}, reg)
//
// Seeks land on the first sample of the frame that contains the target.
// 8-bit FLAC maps to signed 8-bit PCM, which audio.Decoder drops.
package flac
