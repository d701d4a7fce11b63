// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/audpipe"
	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/processing"
)

// FileResult describes one processed file. Durations are in seconds.
type FileResult struct {
	Input          string
	Output         string
	InputDuration  float64
	OutputDuration float64
	Elapsed        time.Duration
}

// FileProcessor decodes a file, runs it through a pipeline built from its
// config and writes the result. It is safe for concurrent use: every call
// builds its own pipeline.
type FileProcessor struct {
	cfg    processing.ProcessingConfig
	reg    *audio.Registry
	output *processing.OutputStage
	logger *zap.Logger
}

// NewFileProcessor validates cfg and fails when the output format cannot
// be encoded. A nil reg uses audpipe.DefaultRegistry.
func NewFileProcessor(cfg processing.ProcessingConfig, reg *audio.Registry, opts ...Option) (*FileProcessor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if reg == nil {
		reg = audpipe.DefaultRegistry()
	}

	o := applyOptions(opts)

	output, err := processing.NewOutputStage(cfg.Output, processing.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	if err := output.CanEncode(); err != nil {
		return nil, err
	}

	return &FileProcessor{
		cfg:    cfg.Clone(),
		reg:    reg,
		output: output,
		logger: o.logger,
	}, nil
}

// OutputPath returns where ProcessFile writes the result for input.
func (p *FileProcessor) OutputPath(input string) string {
	return p.output.OutputPath(input)
}

// ProcessFile processes input into OutputPath(input).
func (p *FileProcessor) ProcessFile(ctx context.Context, input string) (FileResult, error) {
	return p.ProcessFileTo(ctx, input, p.OutputPath(input))
}

// ProcessFileTo processes input into output. An existing output is only
// replaced when the config allows overwriting. The file is written to a
// temporary name first, so a failure never leaves a partial output.
func (p *FileProcessor) ProcessFileTo(ctx context.Context, input, output string) (FileResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}

	if !p.cfg.Output.Overwrite {
		if _, err := os.Stat(output); err == nil {
			return FileResult{}, fmt.Errorf("%w: %s", ErrOutputExists, output)
		}
	}

	buf, err := p.decode(input)
	if err != nil {
		return FileResult{}, err
	}

	inDuration := buf.Duration()

	pipeline, err := processing.NewPipeline(p.cfg, processing.WithLogger(p.logger))
	if err != nil {
		return FileResult{}, err
	}

	if err := pipeline.Process(buf); err != nil {
		return FileResult{}, err
	}

	if err := p.output.Process(buf); err != nil {
		return FileResult{}, err
	}

	// Decoding and DSP are not interruptible; stop before touching disk.
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}

	if err := p.write(output, buf); err != nil {
		return FileResult{}, err
	}

	res := FileResult{
		Input:          input,
		Output:         output,
		InputDuration:  inDuration,
		OutputDuration: buf.Duration(),
		Elapsed:        time.Since(start),
	}

	p.logger.Debug("file written",
		zap.String("input", input),
		zap.String("output", output),
		zap.Strings("stages", pipeline.StageNames()),
	)

	return res, nil
}

func (p *FileProcessor) decode(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	dec, err := audio.Open(f, audio.HintFromPath(path), p.reg,
		audio.WithLogger(p.logger),
		audio.WithCloser(f),
	)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	buf, err := audpipe.DecodeAll(dec)

	return buf, errors.Join(err, dec.Close())
}

func (p *FileProcessor) write(path string, buf *audio.Buffer) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = p.output.Encode(tmp, buf); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	if p.cfg.Output.Overwrite {
		if err = os.Rename(tmp.Name(), path); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrIO, err)
		}

		return nil
	}

	// Link fails if path appeared since the check in ProcessFileTo.
	if err = os.Link(tmp.Name(), path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}

		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	_ = os.Remove(tmp.Name())

	return nil
}
