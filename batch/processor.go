// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/processing"
	"github.com/ik5/audpipe/utils"
)

// FileError is a file that failed to process.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e FileError) Unwrap() error { return e.Err }

// Result collects the outcome of ProcessFiles. Both lists follow the
// order of the input paths.
type Result struct {
	Successful []FileResult
	Failed     []FileError
	TotalTime  time.Duration
}

// Total is the number of files that were attempted.
func (r Result) Total() int { return len(r.Successful) + len(r.Failed) }

// SuccessRate returns the share of successful files as a percentage, or
// 0 when nothing was attempted.
func (r Result) SuccessRate() float64 {
	rate, err := utils.Ratio(len(r.Successful), r.Total())
	if err != nil {
		return 0
	}

	return rate * 100
}

// AverageTime is the wall time per attempted file.
func (r Result) AverageTime() time.Duration {
	if r.Total() == 0 {
		return 0
	}

	return r.TotalTime / time.Duration(r.Total())
}

func (r Result) AllSucceeded() bool { return len(r.Failed) == 0 }

// Err joins every file error, or returns nil when all files succeeded.
func (r Result) Err() error {
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}

	return errors.Join(errs...)
}

// Processor runs many files through a FileProcessor. With EnableParallel
// set, up to NumThreads files (runtime.NumCPU when unset) are processed at
// once; otherwise they run one after the other.
type Processor struct {
	files    *FileProcessor
	workers  int
	parallel bool
	progress ProgressFunc
	logger   *zap.Logger
}

func NewProcessor(cfg processing.ProcessingConfig, reg *audio.Registry, opts ...Option) (*Processor, error) {
	files, err := NewFileProcessor(cfg, reg, opts...)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	workers := runtime.NumCPU()
	if cfg.NumThreads != nil {
		workers = *cfg.NumThreads
	}

	return &Processor{
		files:    files,
		workers:  workers,
		parallel: cfg.EnableParallel,
		progress: o.progress,
		logger:   o.logger,
	}, nil
}

// Files returns the underlying FileProcessor.
func (p *Processor) Files() *FileProcessor { return p.files }

type outcome struct {
	ran    bool
	result FileResult
	err    error
}

// ProcessFiles processes every path. A failing file is recorded in
// Result.Failed and does not stop the others. When ctx is cancelled no new
// files are started, and the partial result is returned with ctx.Err().
func (p *Processor) ProcessFiles(ctx context.Context, paths []string) (Result, error) {
	if len(paths) == 0 {
		return Result{}, ErrNoInput
	}

	start := time.Now()
	outcomes := make([]outcome, len(paths))

	var (
		mtx  sync.Mutex
		done int
	)

	run := func(i int) {
		if ctx.Err() != nil {
			return
		}

		res, err := p.files.ProcessFile(ctx, paths[i])
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return
		}

		outcomes[i] = outcome{ran: true, result: res, err: err}
		p.report(paths[i], res, err)

		mtx.Lock()
		defer mtx.Unlock()

		done++
		if p.progress != nil {
			p.progress(done, len(paths), paths[i])
		}
	}

	if p.parallel {
		var g errgroup.Group
		g.SetLimit(p.workers)

		for i := range paths {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				run(i)
				return nil
			})
		}

		_ = g.Wait()
	} else {
		for i := range paths {
			run(i)
		}
	}

	res := Result{TotalTime: time.Since(start)}
	for i, o := range outcomes {
		switch {
		case !o.ran:
		case o.err != nil:
			res.Failed = append(res.Failed, FileError{Path: paths[i], Err: o.err})
		default:
			res.Successful = append(res.Successful, o.result)
		}
	}

	p.logger.Info("batch finished",
		zap.Int("files", len(paths)),
		zap.Int("successful", len(res.Successful)),
		zap.Int("failed", len(res.Failed)),
		zap.Duration("elapsed", res.TotalTime),
	)

	return res, ctx.Err()
}

func (p *Processor) report(path string, res FileResult, err error) {
	if err != nil {
		p.logger.Error("file failed", zap.String("input", path), zap.Error(err))
		return
	}

	p.logger.Info("file processed",
		zap.String("input", path),
		zap.String("output", res.Output),
		zap.Float64("input_seconds", res.InputDuration),
		zap.Float64("output_seconds", res.OutputDuration),
		zap.Duration("elapsed", res.Elapsed),
	)
}
