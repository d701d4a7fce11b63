// SPDX-License-Identifier: EPL-2.0

//go:build !simd || !amd64

package processing

var resampleKernel kernel = resampleScalar
