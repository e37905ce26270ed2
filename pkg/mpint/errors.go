package mpint

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrDivideByZero     = errors.New("mpint: divide by zero")
	ErrUnsupportedRadix = errors.New("mpint: only radix 2 through 16 is supported")
	ErrInvalidDigit     = errors.New("mpint: invalid digit")
	ErrNegativeExponent = errors.New("mpint: negative exponent")
	ErrNegativeSqrt     = errors.New("mpint: square root of negative number")
	ErrNarrowing        = errors.New("mpint: integer overflow")
)

// NarrowingError reports a conversion to a fixed width type that cannot hold
// the value.
type NarrowingError struct {
	Target   string
	Bits     int
	Negative bool
}

func (e *NarrowingError) Error() string {
	if e.Negative {
		return fmt.Sprintf("mpint: cannot cast negative integer to %s", e.Target)
	}
	return fmt.Sprintf("mpint: integer overflow: cannot output %s from an integer that uses %d bits", e.Target, e.Bits)
}

func (e *NarrowingError) Is(target error) bool {
	return target == ErrNarrowing
}
