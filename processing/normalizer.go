// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ik5/audpipe/audio"
)

// Normalizer scales a buffer so its peak or RMS level lands on the target
// loudness minus the headroom, then limits the result.
type Normalizer struct {
	cfg    NormalizerConfig
	logger *zap.Logger
}

func NewNormalizer(cfg NormalizerConfig, opts ...Option) (*Normalizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	return &Normalizer{cfg: cfg, logger: o.logger}, nil
}

func (n *Normalizer) Process(buf *audio.Buffer) error {
	if len(buf.Data) == 0 {
		return nil
	}

	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrNormalizer, err)
	}

	target := dbToLinear(n.cfg.TargetLoudness) * dbToLinear(-n.cfg.HeadroomDB)

	var level float32
	alg := n.cfg.algorithm()

	switch alg {
	case NormalizePeak:
		level = CalculatePeak(buf.Data)
		// Clipped or silent input is left at its level.
		if level <= 0 || level >= 1 {
			level = 0
		}
	default:
		level = CalculateRMS(buf.Data)
	}

	if level <= 0 {
		n.logger.Debug("normalizer skipped", zap.Stringer("algorithm", alg))
		return nil
	}

	gain := target / level
	ceiling := float32(1)
	if n.cfg.EnableLimiting {
		ceiling = dbToLinear(n.cfg.PeakLevel)
	}

	for i, s := range buf.Data {
		buf.Data[i] = max(-ceiling, min(ceiling, s*gain))
	}

	n.logger.Debug("normalized",
		zap.Stringer("algorithm", alg),
		zap.Float64("gain_db", linearToDB(gain)),
		zap.Float32("level", level),
	)

	return nil
}

// CalculatePeak returns the largest absolute sample value.
func CalculatePeak(data []float32) float32 {
	var peak float32
	for _, s := range data {
		peak = max(peak, float32(math.Abs(float64(s))))
	}

	return peak
}

// CalculateRMS returns the root mean square of data, accumulated in
// float64.
func CalculateRMS(data []float32) float32 {
	if len(data) == 0 {
		return 0
	}

	var sum float64
	for _, s := range data {
		sum += float64(s) * float64(s)
	}

	return float32(math.Sqrt(sum / float64(len(data))))
}

// PeakDB is CalculatePeak in dBFS. Silence is -Inf.
func PeakDB(data []float32) float64 { return linearToDB(CalculatePeak(data)) }

// RMSDB is CalculateRMS in dBFS. Silence is -Inf.
func RMSDB(data []float32) float64 { return linearToDB(CalculateRMS(data)) }

func (n *Normalizer) Reset() {}

func (n *Normalizer) Validate() error { return n.cfg.Validate() }

func (n *Normalizer) LatencySamples() int { return 0 }

func (n *Normalizer) Configure(cfg NormalizerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	n.cfg = cfg

	return nil
}

func (n *Normalizer) Config() NormalizerConfig { return n.cfg }
