package decimal

// Decimal's own doc comment lives in doc.go, alongside the rest of the
// package-level documentation.

import (
	"fmt"
	"math/big"
)

// Decimal is a tagged union over the two representations arithmetic moves
// between. The zero Decimal is the Quad128 zero, so a zero-value Decimal
// is usable without construction.
type Decimal struct {
	isNumber bool
	quad     Quad128
	num      Number
}

// Zero, One and NegOne are frequently used Decimal constants, all held as
// Quad128 (the common case never needs Number's overhead).
var (
	Zero   = Decimal{quad: QuadZero}
	One    = Decimal{quad: QuadOne}
	NegOne = Decimal{quad: QuadOne.negate()}
)

// FromQuad wraps q as a Decimal without promoting it.
func FromQuad(q Quad128) Decimal { return Decimal{quad: q} }

// FromNumber wraps n as a Decimal, claiming n's coefficient storage.
func FromNumber(n Number) Decimal { return Decimal{isNumber: true, num: n.claim()} }

// Parse parses s, preferring the Quad128 fast path and only falling back
// to Number when s carries more than quadMaxDigits significant digits or
// an exponent outside the Quad128 range — try fast, fall back only when
// the fixed width can't hold the value.
func Parse(s string) (Decimal, error) {
	if q, ok := parseQuad(s); ok {
		return Decimal{quad: q}, nil
	}
	if n, ok := parseNumber(s); ok {
		return FromNumber(n), nil
	}
	return Decimal{}, fmt.Errorf("decimal.Parse(%q): %w", s, errInvalidDecimal)
}

// MustParse is like [Parse] but panics on error. Use only for constants.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("decimal.MustParse(%q) failed: %v", s, err))
	}
	return d
}

// IsNumber reports whether d currently holds its value on the Number
// (arbitrary-precision) side rather than as a Quad128.
func (d Decimal) IsNumber() bool { return d.isNumber }

// IsZero, IsNeg, IsFinite, IsInf and IsNaN dispatch to whichever
// representation d currently holds.
func (d Decimal) IsZero() bool {
	if d.isNumber {
		return d.num.IsZero()
	}
	return d.quad.IsZero()
}

func (d Decimal) IsNeg() bool {
	if d.isNumber {
		return d.num.IsNeg()
	}
	return d.quad.IsNeg()
}

func (d Decimal) IsFinite() bool {
	if d.isNumber {
		return d.num.IsFinite()
	}
	return d.quad.IsFinite()
}

func (d Decimal) IsInf() bool {
	if d.isNumber {
		return d.num.IsInf()
	}
	return d.quad.IsInf()
}

func (d Decimal) IsNaN() bool {
	if d.isNumber {
		return d.num.IsNaN()
	}
	return d.quad.IsNaN()
}

// Sign returns -1, 0 or +1, following whichever representation d holds.
func (d Decimal) Sign() int {
	if d.isNumber {
		return d.num.Sign()
	}
	return d.quad.Sign()
}

// Prec returns the number of significant digits in d's coefficient.
func (d Decimal) Prec() int {
	if d.isNumber {
		return d.num.Prec()
	}
	return d.quad.Prec()
}

// Exp returns d's decimal exponent.
func (d Decimal) Exp() int32 {
	if d.isNumber {
		return d.num.Exp()
	}
	return d.quad.Exp()
}

// Radix reports the base this package's arithmetic works in, always
// 10 — decNumber's decNumberRadix, kept as a method so callers
// switching between decimal libraries can probe it generically.
func (d Decimal) Radix() int { return 10 }

// IsCanonical reports whether d's encoding is the canonical one for
// its value. Both of Decimal's representations are plain
// (sign, coefficient, exponent) tuples with no redundant bit patterns
// to normalize, unlike an IEEE-754 interchange format's declet
// encoding, so this is always true.
func (d Decimal) IsCanonical() bool { return true }

// IsInteger reports whether d has no significant fractional digits,
// i.e. its exponent is non-negative.
func (d Decimal) IsInteger() bool {
	return d.IsFinite() && d.Exp() >= 0
}

// SameQuantum reports whether d and e share the same exponent,
// regardless of which representation either currently holds — that is
// the entire definition; it does not compare coefficients or signs.
func (d Decimal) SameQuantum(e Decimal) bool {
	return d.Exp() == e.Exp()
}

// quadAdjExpMin is decQuad's Emin: the smallest adjusted exponent
// (exponent + digits - 1) a normal value may have. A finite, nonzero
// value below it is subnormal.
const quadAdjExpMin = -6143

func adjustedExponent(d Decimal) int64 {
	return int64(d.Exp()) + int64(d.Prec()) - 1
}

// IsNormal reports whether d is finite, nonzero, and not subnormal.
func (d Decimal) IsNormal() bool {
	if !d.IsFinite() || d.IsZero() {
		return false
	}
	return adjustedExponent(d) >= quadAdjExpMin
}

// IsSubnormal reports whether d is finite, nonzero, and has an
// adjusted exponent below quadAdjExpMin — the decimal analogue of a
// subnormal binary float, where the coefficient carries fewer
// significant digits than full precision would allow at that
// magnitude.
func (d Decimal) IsSubnormal() bool {
	if !d.IsFinite() || d.IsZero() {
		return false
	}
	return adjustedExponent(d) < quadAdjExpMin
}

// String renders d in plain decimal notation.
func (d Decimal) String() string {
	if d.isNumber {
		return d.num.String()
	}
	return d.quad.String()
}

// AsNumber returns d's value as a Number, converting a Quad128 into a new
// Number if needed; d itself is unchanged. Used by the arithmetic
// dispatcher's full-Number path
// and by callers who need guaranteed headroom beyond 34 digits.
func (d Decimal) AsNumber() Number {
	if d.isNumber {
		return d.num
	}
	return numberFromQuad(d.quad)
}

// AsQuad attempts to narrow d onto Quad128, returning ok=false if d's
// current value (a Number, possibly one that was never actually promoted
// past the quadMaxDigits budget) does not fit.
func (d Decimal) AsQuad() (Quad128, bool) {
	if !d.isNumber {
		return d.quad, true
	}
	return quadFromNumber(d.num)
}

// quadFromNumber narrows a Number to Quad128 when it fits, used by AsQuad
// and by finishNumber to narrow an operation's result.
func quadFromNumber(n Number) (Quad128, bool) {
	switch n.kind {
	case quadInfinite:
		return Quad128{neg: n.neg, kind: quadInfinite}, true
	case quadQNaN, quadSNaN:
		return Quad128{neg: n.neg, kind: n.kind}, true
	}
	if n.Prec() > quadMaxDigits || n.exp > quadExpMax || n.exp < quadExpMin {
		return Quad128{}, false
	}
	if n.share == nil {
		return Quad128{neg: n.neg, kind: quadFinite}, true
	}
	coef := uint128FromBig((*big.Int)(n.share.coef))
	if coef.cmp(maxQuadCoef) > 0 {
		return Quad128{}, false
	}
	return Quad128{neg: n.neg, kind: quadFinite, exp: n.exp, coef: coef}, true
}

// Equal reports whether d and e compare equal under structural decimal
// equality: same sign, same coefficient and same exponent, regardless of
// which representation each currently holds (10 stored as Quad128 equals
// 10 stored as Number). It is not a numeric comparison: 1.0 and 1.00 are
// not Equal, and neither are 0 and -0; use [Cmp] for numeric order.
func (d Decimal) Equal(e Decimal) bool {
	return Cmp(d, e) == 0 && d.Exp() == e.Exp() && d.IsNeg() == e.IsNeg()
}

// Cmp compares d and e numerically, returning -1, 0 or +1. NaN operands
// make the comparison undefined; Cmp reports them as greater than any
// finite value purely so sorts terminate, keeping the comparison total
// rather than returning an error.
func Cmp(d, e Decimal) int {
	if d.IsNaN() || e.IsNaN() {
		switch {
		case d.IsNaN() && e.IsNaN():
			return 0
		case d.IsNaN():
			return 1
		default:
			return -1
		}
	}
	if !d.isNumber && !e.isNumber {
		return cmpQuad(d.quad, e.quad)
	}
	return cmpNumber(d.AsNumber(), e.AsNumber())
}

func cmpQuad(a, b Quad128) int {
	switch {
	case a.IsInf() || b.IsInf():
		return cmpInfSign(a, b)
	case a.Sign() != b.Sign():
		return a.Sign() - b.Sign()
	case a.Sign() == 0:
		return 0
	case a.neg:
		return -cmpQuadMagnitude(a, b)
	default:
		return cmpQuadMagnitude(a, b)
	}
}

func cmpInfSign(a, b Quad128) int {
	as, bs := signOrInf(a), signOrInf(b)
	switch {
	case as == bs:
		return 0
	case as < bs:
		return -1
	default:
		return 1
	}
}

func signOrInf(q Quad128) int {
	if q.IsInf() {
		if q.neg {
			return -2
		}
		return 2
	}
	return q.Sign()
}

func cmpNumber(a, b Number) int {
	switch {
	case a.IsInf() || b.IsInf():
		return cmpInfSignN(a, b)
	case a.Sign() != b.Sign():
		return a.Sign() - b.Sign()
	case a.Sign() == 0:
		return 0
	}
	aExp, bExp := a.exp, b.exp
	ac, bc := getBint(), getBint()
	defer putBint(ac)
	defer putBint(bc)
	ac.setBint(a.share.coef)
	bc.setBint(b.share.coef)
	switch {
	case aExp > bExp:
		ac.lsh(ac, int(aExp-bExp))
	case bExp > aExp:
		bc.lsh(bc, int(bExp-aExp))
	}
	c := ac.cmp(bc)
	if a.neg {
		return -c
	}
	return c
}

func cmpInfSignN(a, b Number) int {
	as, bs := signOrInfN(a), signOrInfN(b)
	switch {
	case as == bs:
		return 0
	case as < bs:
		return -1
	default:
		return 1
	}
}

func signOrInfN(n Number) int {
	if n.IsInf() {
		if n.neg {
			return -2
		}
		return 2
	}
	return n.Sign()
}
