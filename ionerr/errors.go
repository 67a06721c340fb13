// Package ionerr defines the error kinds shared by the decimal engine, the
// path model, the extractor engine, and the event/equivalence package.
//
// Every kind is a sentinel error, discriminated with [errors.Is]: call
// sites wrap a sentinel with context via fmt.Errorf("...: %w", Err...).
package ionerr

import "errors"

// Sentinel errors, one per kind in the error handling design.
var (
	// ErrInvalidArg reports a null required argument, an out-of-range
	// configuration value, a decimal parse of a non-decimal string, a
	// to-integer conversion of a non-integer decimal, or a callback invoked
	// with contradictory arguments.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrInvalidState reports a path append without a start, a path finish
	// with zero components, a reader not at depth 0 when relative matching
	// is disabled, a callback that returned control at the wrong depth, or
	// a path left in progress when Match is called.
	ErrInvalidState = errors.New("invalid state")

	// ErrNoMemory reports an allocation refusal, including exceeding the
	// configured path count of an extractor.
	ErrNoMemory = errors.New("no memory")

	// ErrNumericOverflow reports a decimal lexeme or operation that exceeds
	// the context's precision, or a to-integer conversion that exceeds the
	// target integer width.
	ErrNumericOverflow = errors.New("numeric overflow")

	// ErrUnknown reports a reader tag outside the defined wire-format set.
	ErrUnknown = errors.New("unknown")
)
