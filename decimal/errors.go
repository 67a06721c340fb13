package decimal

import (
	"fmt"

	"github.com/ion-core/ionx/ionerr"
)

// Package-local sentinels, each a thin wrapper over the shared ionerr
// kinds: short, specific error values (errDecimalOverflow,
// errInvalidDecimal, ...) kept next to the code that returns them rather
// than exporting the shared kind directly.
var (
	errDecimalOverflow  = fmt.Errorf("decimal overflow: %w", ionerr.ErrNumericOverflow)
	errInvalidDecimal   = fmt.Errorf("invalid decimal: %w", ionerr.ErrInvalidArg)
	errScaleRange       = fmt.Errorf("scale out of range: %w", ionerr.ErrInvalidArg)
	errInvalidOperation = fmt.Errorf("invalid operation: %w", ionerr.ErrInvalidArg)
	errInexactResult    = fmt.Errorf("inexact result: %w", ionerr.ErrNumericOverflow)
	errDivisionByZero   = fmt.Errorf("division by zero: %w", ionerr.ErrInvalidArg)
)

// overflowError reports that an operation's result exceeds the requested
// Context's precision, naming the operands for diagnostics.
func overflowError(op string, args ...any) error {
	return fmt.Errorf("decimal.%s%v: %w", op, args, errDecimalOverflow)
}
