// SPDX-License-Identifier: EPL-2.0

// Package audpipe decodes audio files into canonical float32 PCM and runs
// them through a configurable DSP pipeline.
//
// This package ties the subpackages together: a registry with every
// bundled container, file helpers, and a one-call conversion to 16-bit
// mono PCM.
//
// # Supported Formats
//
// The default registry decodes:
//   - WAV (8/16/24/32-bit integer and 32/64-bit float PCM) via formats/wav
//   - AIFF (8/16/24/32-bit PCM) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// # Quick Start
//
// The simplest way to process audio is using ResampleToMono16:
//
//	dec, err := audpipe.OpenFile("audio.wav")
//	if err != nil {
//		return err
//	}
//	defer dec.Close()
//
//	buf, err := audpipe.DecodeAll(dec)
//	if err != nil {
//		return err
//	}
//
//	// Resample to 8kHz mono, 16-bit PCM
//	samples, err := audpipe.ResampleToMono16(buf, 8000)
//
// # Processing Pipeline
//
// For more control, build a pipeline from the processing package:
//
//	cfg, err := processing.NewProcessingConfigBuilder().
//		ForPodcast().
//		WithOutputFormat(processing.FormatWav).
//		BuildValidated()
//	if err != nil {
//		return err
//	}
//
//	p, err := processing.NewPipeline(cfg)
//	if err != nil {
//		return err
//	}
//	err = p.Process(buf)
//
// Whole directories are handled by the batch package, which runs files
// through a worker pool and writes the results next to the input or into
// OutputDir.
//
// # Decoding Packet by Packet
//
// Decoders stream one buffer per container packet:
//
//	for {
//		buf, err := dec.NextPacket()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		// Process buf.Data
//	}
//
// See the individual subpackages for more detailed documentation.
package audpipe
