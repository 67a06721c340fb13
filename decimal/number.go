package decimal

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// numShare is the mutable backing store a Number points at. It is
// reference counted so that claim/release can hand the same coefficient
// to several Numbers without copying, the same way bpool avoids copying
// a *bint that is only ever read. A Number never mutates numShare in
// place unless it is the sole owner (refs == 1); any other mutator first
// calls getBint/putBint to take a private copy, mirroring the self-alias
// guard bint.mul already uses one level down.
type numShare struct {
	coef *bint
	refs int32
}

// Number is the arbitrary-precision side of [Decimal]: a coefficient of
// unbounded digit width together with an exponent, used whenever a value
// or an operation's result would overflow a [Quad128]'s 34-digit budget.
// It generalizes bint from "a big.Int alternative to fint" into a full
// standalone numeric kind with its own exponent and claim/release
// ownership.
type Number struct {
	neg   bool
	kind  quadKind
	exp   int32
	d     int // decimal digit count cached at construction
	share *numShare
}

// claim returns a Number sharing n's coefficient storage and bumps its
// reference count. Call it whenever a Number value crosses into a
// longer-lived arena (an EventStream, an extractor callback's captured
// state) than the scope that produced it, so that the producer's eventual
// release does not free storage the new owner still needs.
func (n Number) claim() Number {
	if n.share != nil {
		atomic.AddInt32(&n.share.refs, 1)
	}
	return n
}

// release drops n's reference to its coefficient storage, returning the
// *bint to bpool once the last owner has let go. release is idempotent
// only in the sense that releasing an already-released Number is a
// programmer error (use-after-release), exactly as in bpool's own
// getBint/putBint discipline.
func (n Number) release() {
	if n.share == nil {
		return
	}
	if atomic.AddInt32(&n.share.refs, -1) == 0 {
		putBint(n.share.coef)
	}
}

// newNumber wraps coef (already owned by the caller) into a fresh,
// singly-referenced Number.
func newNumber(neg bool, coef *bint, exp int32) Number {
	return Number{
		neg:   neg,
		kind:  quadFinite,
		exp:   exp,
		d:     coef.prec(),
		share: &numShare{coef: coef, refs: 1},
	}
}

// own returns a *bint private to the caller: a copy if n's storage is
// shared with another owner, or the storage itself if n is the sole
// owner. Arithmetic that writes into n's coefficient in place must call
// own first, the Number-level analogue of bint.mul's z==x/z==y guard.
func (n Number) own() *bint {
	if n.share == nil {
		return getBint()
	}
	if atomic.LoadInt32(&n.share.refs) == 1 {
		return n.share.coef
	}
	b := getBint()
	b.setBint(n.share.coef)
	return b
}

func (n Number) IsZero() bool   { return n.kind == quadFinite && n.share != nil && n.share.coef.sign() == 0 }
func (n Number) IsNeg() bool    { return n.neg }
func (n Number) IsFinite() bool { return n.kind == quadFinite }
func (n Number) IsInf() bool    { return n.kind == quadInfinite }
func (n Number) IsNaN() bool    { return n.kind == quadQNaN || n.kind == quadSNaN }

func (n Number) Sign() int {
	switch {
	case n.IsZero():
		return 0
	case n.neg:
		return -1
	default:
		return 1
	}
}

// Prec returns the number of significant digits in n's coefficient.
func (n Number) Prec() int {
	if n.d == 0 {
		return 1
	}
	return n.d
}

func (n Number) Exp() int32 { return n.exp }

// Units reports ceil(d/U) for a coefficient of d decimal digits packed U
// digits at a time, U = numberUnitDigits. This is the storage-unit count
// a decNumber-style implementation would need to allocate for n's
// coefficient; this package itself backs the coefficient with *big.Int
// rather than a declet-unit array (see DESIGN.md), so Units here is a
// derived quantity for callers porting unit-budget logic, not a real
// allocation size.
func (n Number) Units() int {
	d := n.Prec()
	const numberUnitDigits = 9
	return (d + numberUnitDigits - 1) / numberUnitDigits
}

// numberFromQuad promotes a Quad128 to a Number, the upgrade an
// overflowing fast-path operation performs. The upgrade is not permanent:
// finishNumber narrows an operation's rounded result back to Quad128
// whenever it fits.
func numberFromQuad(q Quad128) Number {
	switch q.kind {
	case quadInfinite:
		return Number{neg: q.neg, kind: quadInfinite}
	case quadQNaN, quadSNaN:
		return Number{neg: q.neg, kind: q.kind}
	}
	b := (*bint)(q.coef.big())
	return newNumber(q.neg, b, q.exp)
}

func parseNumber(s string) (Number, bool) {
	neg := false
	if s == "" {
		return Number{}, false
	}
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return Number{}, false
	}

	mantissa := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Number{}, false
		}
		exp = e
	}
	intPart, fracPart := mantissa, ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		intPart, fracPart = mantissa[:i], mantissa[i+1:]
	}
	digits := intPart + fracPart
	if digits == "" {
		return Number{}, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return Number{}, false
		}
	}

	// Fold the lexeme nine decimal digits at a time, the same chunk width
	// parseQuad uses: bint.fsa computes coef = coef*10^shift + chunk in
	// one call.
	coef := getBint()
	coef.setInt64(0)
	for i := 0; i < len(digits); i += 9 {
		end := i + 9
		if end > len(digits) {
			end = len(digits)
		}
		chunk := digits[i:end]
		n, err := strconv.ParseUint(chunk, 10, 64)
		if err != nil {
			return Number{}, false
		}
		next := getBint()
		next.fsa(coef, len(chunk), fint(n))
		putBint(coef)
		coef = next
	}

	return newNumber(neg, coef, int32(exp-len(fracPart))), true
}

func (n Number) String() string {
	switch n.kind {
	case quadInfinite:
		if n.neg {
			return "-Infinity"
		}
		return "Infinity"
	case quadQNaN:
		return "NaN"
	case quadSNaN:
		return "sNaN"
	}
	digits := "0"
	if n.share != nil {
		digits = n.share.coef.string()
	}
	var b strings.Builder
	if n.neg {
		b.WriteByte('-')
	}
	switch {
	case n.exp >= 0:
		b.WriteString(digits)
		for i := int32(0); i < n.exp; i++ {
			b.WriteByte('0')
		}
	case -int(n.exp) >= len(digits):
		b.WriteString("0.")
		for i := 0; i < -int(n.exp)-len(digits); i++ {
			b.WriteByte('0')
		}
		b.WriteString(digits)
	default:
		point := len(digits) + int(n.exp)
		b.WriteString(digits[:point])
		b.WriteByte('.')
		b.WriteString(digits[point:])
	}
	return b.String()
}
