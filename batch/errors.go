// SPDX-License-Identifier: EPL-2.0

package batch

import "errors"

var (
	ErrNoInput      = errors.New("no input files")
	ErrOutputExists = errors.New("output file already exists")
)
