// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"go.uber.org/zap"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/formats/wav"
	"github.com/ik5/audpipe/utils"
)

// wavFormatPCM is the WAVE format tag for integer PCM.
const wavFormatPCM = 1

// OutputStage is the last stage of a pipeline. Process snaps samples to
// the configured bit depth; Encode writes them out.
//
// Only WAV is encoded here. Other formats are handed to external
// encoders, so Encode reports ErrUnsupportedOutputFormat for them.
type OutputStage struct {
	cfg    OutputConfig
	logger *zap.Logger
}

func NewOutputStage(cfg OutputConfig, opts ...Option) (*OutputStage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	return &OutputStage{cfg: cfg, logger: o.logger}, nil
}

// Process quantizes buf in place to the output bit depth, so what a
// caller inspects matches what Encode writes.
func (s *OutputStage) Process(buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	scale := float32(utils.PCMMax(s.cfg.BitDepth))
	for i, v := range buf.Data {
		buf.Data[i] = float32(utils.Float32ToPCM(v, s.cfg.BitDepth)) / scale
	}

	return nil
}

// CanEncode reports whether Encode supports the configured format. Only
// WAV is written; other codecs are left to external encoders.
func (s *OutputStage) CanEncode() error {
	if s.cfg.Format != FormatWav {
		return fmt.Errorf("%w: %w: %s", ErrOutput, ErrUnsupportedOutputFormat, s.cfg.Format)
	}

	return nil
}

// Encode writes buf in the configured format. Seekable writers go through
// the go-audio encoder, which patches the header on Close; anything else
// gets a header computed up front.
func (s *OutputStage) Encode(w io.Writer, buf *audio.Buffer) error {
	if err := s.CanEncode(); err != nil {
		return err
	}

	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	samples := make([]int, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = utils.Float32ToPCM(v, s.cfg.BitDepth)
	}

	var err error
	if ws, ok := w.(io.WriteSeeker); ok {
		err = s.encodeSeekable(ws, buf, samples)
	} else {
		err = wav.WritePCM(w, int(buf.SampleRate), int(buf.Channels), s.cfg.BitDepth, samples)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	s.logger.Debug("encoded",
		zap.Stringer("format", s.cfg.Format),
		zap.Int("bit_depth", s.cfg.BitDepth),
		zap.Int("frames", buf.Frames()),
	)

	return nil
}

func (s *OutputStage) encodeSeekable(w io.WriteSeeker, buf *audio.Buffer, samples []int) error {
	enc := gowav.NewEncoder(w, int(buf.SampleRate), s.cfg.BitDepth, int(buf.Channels), wavFormatPCM)

	ib := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: int(buf.Channels),
			SampleRate:  int(buf.SampleRate),
		},
		Data:           samples,
		SourceBitDepth: s.cfg.BitDepth,
	}

	if err := enc.Write(ib); err != nil {
		_ = enc.Close()
		return err
	}

	return enc.Close()
}

// OutputPath derives the output file name for input: the stem plus the
// filename suffix and the format's extension, placed in OutputDir or next
// to the input.
func (s *OutputStage) OutputPath(input string) string {
	dir := s.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, stem+s.cfg.FilenameSuffix+"."+s.cfg.Format.Extension())
}

func (s *OutputStage) Reset() {}

func (s *OutputStage) Validate() error { return s.cfg.Validate() }

func (s *OutputStage) LatencySamples() int { return 0 }

func (s *OutputStage) Configure(cfg OutputConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = cfg

	return nil
}

func (s *OutputStage) Config() OutputConfig { return s.cfg }
