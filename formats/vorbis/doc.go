// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder.
// Vorbis decodes to float samples, so the Reader emits little-endian
// float32 PCM packets and package audio passes them through unchanged:
//
//	reg := audio.NewRegistry()
//	reg.Register(vorbis.Container())
//	dec, err := audio.Open(file, audio.Hint{Extension: "ogg"}, reg)
//
// Any channel count the stream declares is supported. Seeking is sample
// accurate when the underlying reader can seek.
package vorbis
