// SPDX-License-Identifier: EPL-2.0

package batch_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audpipe/formats/wav"
	"github.com/ik5/audpipe/processing"
)

// writeStereoWAV writes frames of a 16 kHz stereo 16-bit tone to dir/name.
func writeStereoWAV(t *testing.T, dir, name string, frames int) string {
	t.Helper()

	samples := make([]int, frames*2)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 8192
		} else {
			samples[i] = -8192
		}
	}

	var b bytes.Buffer
	require.NoError(t, wav.WritePCM(&b, 16000, 2, 16, samples))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o600))

	return path
}

// testConfig resamples to 8 kHz mono and writes into outDir.
func testConfig(outDir string) processing.ProcessingConfigBuilder {
	return processing.NewProcessingConfigBuilder().
		WithTargetSampleRate(8000).
		WithMono().
		WithOutputDir(outDir)
}
