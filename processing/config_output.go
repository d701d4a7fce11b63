// SPDX-License-Identifier: EPL-2.0

package processing

import "strings"

// OutputConfig describes where and how processed audio is written.
type OutputConfig struct {
	Format   AudioFormat `yaml:"format"`
	BitDepth int         `yaml:"bit_depth"`
	// OutputDir defaults to the directory of the input file.
	OutputDir      string `yaml:"output_dir,omitempty"`
	Overwrite      bool   `yaml:"overwrite"`
	FilenameSuffix string `yaml:"filename_suffix"`
}

func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Format:         FormatWav,
		BitDepth:       16,
		FilenameSuffix: "_processed",
	}
}

// ValidBitDepth reports whether the output stage can quantize to bits.
func ValidBitDepth(bits int) bool {
	return bits == 16 || bits == 24 || bits == 32
}

func (c OutputConfig) Validate() error {
	if strings.TrimSpace(c.FilenameSuffix) == "" {
		return invalidf(ErrOutput, "filename suffix is empty")
	}

	if !ValidBitDepth(c.BitDepth) {
		return invalidf(ErrOutput, "bit depth %d is not one of 16, 24, 32", c.BitDepth)
	}

	if c.Format < FormatWav || c.Format > FormatOgg {
		return invalidf(ErrOutput, "unknown format %d", int(c.Format))
	}

	if c.OutputDir != "" {
		return validateDirectory(ErrOutput, c.OutputDir)
	}

	return nil
}

func (c OutputConfig) WithFormat(f AudioFormat) OutputConfig {
	c.Format = f
	return c
}

func (c OutputConfig) WithBitDepth(bits int) OutputConfig {
	c.BitDepth = bits
	return c
}

func (c OutputConfig) WithFilenameSuffix(s string) OutputConfig {
	c.FilenameSuffix = s
	return c
}

func (c OutputConfig) WithOutputDir(dir string) OutputConfig {
	c.OutputDir = dir
	return c
}
