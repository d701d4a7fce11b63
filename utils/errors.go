// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"errors"
	"fmt"
)

// ErrNumericConversion is matched by every *ConversionError.
var ErrNumericConversion = errors.New("numeric conversion failed")

// Bound names the constraint a conversion input violated.
type Bound int

const (
	// BoundNotFinite means the input was NaN or infinite.
	BoundNotFinite Bound = iota + 1
	// BoundNegative means a negative value was given where only
	// non-negative values are meaningful (sample counts, indices).
	BoundNegative
	// BoundOverflow means the value does not fit the destination type.
	BoundOverflow
	// BoundZeroDivisor means a rate or total of zero was used as a divisor.
	BoundZeroDivisor
)

func (b Bound) String() string {
	switch b {
	case BoundNotFinite:
		return "not finite"
	case BoundNegative:
		return "negative"
	case BoundOverflow:
		return "overflow"
	case BoundZeroDivisor:
		return "zero divisor"
	default:
		return fmt.Sprintf("Bound(%d)", int(b))
	}
}

// ConversionError describes a rejected numeric conversion.
type ConversionError struct {
	Func  string
	Value float64
	Bound Bound
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Func, e.Bound, e.Value)
}

// Is reports whether target is ErrNumericConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrNumericConversion
}

func newConversionError(fn string, v float64, b Bound) error {
	return &ConversionError{Func: fn, Value: v, Bound: b}
}
