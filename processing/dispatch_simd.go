// SPDX-License-Identifier: EPL-2.0

//go:build simd && amd64

package processing

import "golang.org/x/sys/cpu"

var resampleKernel kernel = selectKernel()

func selectKernel() kernel {
	if cpu.X86.HasAVX2 {
		return resampleSIMD
	}

	return resampleScalar
}
