/*
Package decimal implements decimal floating-point arithmetic over a hybrid
fixed/arbitrary-precision representation, following the IEEE 754-2008
general decimal arithmetic specification closely enough to share its
vocabulary: [Quad128], [Number], [Context], [Condition].

# Internal Representation

A [Decimal] is a tagged union over two concrete representations:

  - [Quad128]: a fixed 128-bit value, sign + 34-digit coefficient +
    exponent, modeled after the IEEE 754-2008 decimal128 interchange
    format. Add, Sub and Mul try this representation first.
  - [Number]: an arbitrary-precision value, sign + *big.Int coefficient +
    exponent, with no upper bound on digit count.

The numerical value in both cases is -1^sign * coefficient * 10^exponent.
This is the same scale-and-coefficient model the wider Go decimal
ecosystem uses, generalized here to a second, wider tier instead of a
single fixed width: 1, 1.0 and 1.00 remain distinct representations
(different exponents) of the same numeric value.

# Arithmetic Operations

Add, Sub and Mul follow a two-step dispatch; every other operation (Quo,
the division and remainder family, Quantize, ScaleB, Shift, Rotate, the
logical operations and FMA) runs step 2 only:

 1. If every operand is a Quad128 and the [Context]'s precision fits
    inside 34 digits, the operation runs on the fixed-width 128-bit
    coefficient. If the result's coefficient or exponent does not fit,
    this step reports overflow instead of silently truncating.
 2. If step 1 did not apply or overflowed, the operation reruns using
    [Number]'s unbounded *big.Int coefficient, then rounds the exact
    result to the Context's working precision. A rounded result that
    still fits a Quad128 is narrowed back down; Number is never a
    one-way ratchet at the value level, only at the level of a single
    operation's internal dispatch.

Step 1 exists purely for performance: most financial and telemetry values
never approach 34 significant digits, and the fixed-width path avoids a
heap allocation and a *big.Int division on the common case.

# Special Values

This package's Decimal supports Infinity and NaN, in both the Quad128
and Number representations, because the Ion event model built on top of
it (see the ionevent package) needs to round-trip values originating
from a streaming decoder that may itself have encountered them. A NaN
operand makes most arithmetic results NaN and, if the Context traps
InvalidOperation, returns an error alongside it.

# Rounding and Context

Every operation is evaluated under an externally owned [Context], which
carries:

  - Precision: the maximum number of significant digits kept in a result.
  - RoundingMode: the direction used to round an inexact result.
  - Traps: the [Condition] bits that turn into a returned error.
  - Status: the Condition bits every operation run under this Context has
    accumulated, until the caller resets it.

A nil *Context is valid everywhere a Context is accepted and behaves as
the zero Context: [DefaultPrecision] (34, a Quad128's native width),
[RoundHalfEven] rounding, no traps.

# Error Handling

Operations are pure; they never panic on ordinary numeric input. An
operation returns an error only when the Context traps a condition the
operation raised — DivisionByZero, InvalidOperation, Overflow, or
Inexact/Rounded if the caller chose to trap those. Parsing a malformed
decimal lexeme is the one case that always returns an error regardless of
Context, since there is no numeric result to report a condition against.

# Claim and Release

[Number] values are reference counted: a fresh Number returned by Parse
or an arithmetic operation is singly owned, but a consumer that keeps a
Number past the scope that produced it (an [ionevent] Stream
appending a scalar value, an [ionextract] callback storing a field for
later) should call the value's claim semantics explicitly via
[FromNumber], which claims a shared reference rather than copying the
underlying coefficient. Release happens when the owning structure is
discarded; this package does not finalize Numbers automatically.
*/
package decimal
