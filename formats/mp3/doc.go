// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files. The
// decoded stream is always 16-bit little-endian stereo, which the Reader
// hands to package audio as PCM packets of one MPEG frame (1152 samples):
//
//	reg := audio.NewRegistry()
//	reg.Register(mp3.Container())
//	dec, err := audio.Open(file, audio.Hint{Extension: "mp3"}, reg)
//
// Mono files come out with the channel duplicated. To get mono back, run
// the processing channel mixer.
//
// Seeking works on the decoded stream and is sample accurate, but go-mp3
// may need to decode from the start of the file to get there.
package mp3
