// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	ErrIO               = errors.New("i/o error")
	ErrFormatProbe      = errors.New("unrecognized container or codec")
	ErrNoSupportedTrack = errors.New("no supported audio tracks found")
	ErrDecoderCreation  = errors.New("failed to create decoder")
	ErrPacketRead       = errors.New("failed to read packet")
	ErrDecode           = errors.New("failed to decode packet")
	ErrSeek             = errors.New("seek failed")
	ErrNoTimeBase       = fmt.Errorf("%w: no time base available", ErrSeek)

	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidBuffer        = errors.New("invalid audio buffer")
)
