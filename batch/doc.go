// SPDX-License-Identifier: EPL-2.0

// Package batch runs audio files through a processing pipeline and writes
// the results to disk.
//
// FileProcessor handles one file: decode, process, quantize and encode.
// Processor spreads a list of files over a bounded worker pool sized by
// ProcessingConfig.NumThreads, or runs them one by one when
// EnableParallel is off. Output formats that OutputStage cannot encode
// are rejected when the processor is built. A failing file is recorded in
// the Result and never stops the batch:
//
//	p, err := batch.NewProcessor(cfg, nil, batch.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	res, err := p.ProcessFiles(ctx, paths)
//	if err != nil {
//		return err // cancelled
//	}
//	fmt.Printf("%.0f%% succeeded\n", res.SuccessRate())
package batch
