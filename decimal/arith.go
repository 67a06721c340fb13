package decimal

import (
	"math"
	"math/big"
	"strings"
)

// checkSpecialBinary handles the NaN/Infinity cases common to every binary
// operation, following decNumber's own "specials first" dispatch order.
// ok reports whether d or e was special; when ok is true, result/err are
// already the final answer for the caller.
func checkSpecialBinary(ctx *Context, d, e Decimal, opName string) (result Decimal, err error, ok bool) {
	switch {
	case d.IsNaN() || e.IsNaN():
		err = ctx.signal(InvalidOperation)
		return nanResult(d, e), err, true
	case d.IsInf() && e.IsInf():
		if d.Sign() != e.Sign() {
			err = ctx.signal(InvalidOperation)
			return nanResult(d, e), err, true
		}
		return d, nil, true
	case d.IsInf():
		return d, nil, true
	case e.IsInf():
		return e, nil, true
	}
	return Decimal{}, nil, false
}

func nanResult(d, e Decimal) Decimal {
	if d.IsNaN() {
		return d
	}
	return e
}

// Add calculates d + e under ctx, upgrading to Number when the aligned
// sum would not fit a Quad128's 34-digit budget.
func (d Decimal) Add(ctx *Context, e Decimal) (Decimal, error) {
	return d.addSub(ctx, e, false)
}

// Sub calculates d - e under ctx.
func (d Decimal) Sub(ctx *Context, e Decimal) (Decimal, error) {
	return d.addSub(ctx, e, true)
}

func (d Decimal) addSub(ctx *Context, e Decimal, subtract bool) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, e, "addSub"); ok {
		return r, err
	}
	if !d.isNumber && !e.isNumber && ctx.usesQuadFastPath() {
		if q, ok := quadAddSub(d.quad, e.quad, subtract); ok {
			return finishQuad(ctx, q)
		}
	}
	n := numberAddSub(d.AsNumber(), e.AsNumber(), subtract)
	return finishNumber(ctx, n)
}

// quadAddSub aligns exponents and adds (or, if subtract, subtracts) two
// Quad128 operands on the fixed-width fast path, reporting ok=false the
// moment an exponent alignment or the final coefficient would not fit 128
// bits, so the caller can fall back to Number instead of silently
// truncating.
func quadAddSub(a, b Quad128, subtract bool) (Quad128, bool) {
	if subtract {
		b = b.negate()
	}
	exp := a.exp
	ac, bc := a.coef, b.coef
	switch {
	case a.exp > b.exp:
		shifted, ok := ac.lsh(int(a.exp - b.exp))
		if !ok {
			return Quad128{}, false
		}
		ac, exp = shifted, b.exp
	case b.exp > a.exp:
		shifted, ok := bc.lsh(int(b.exp - a.exp))
		if !ok {
			return Quad128{}, false
		}
		bc = shifted
	}

	if a.neg == b.neg {
		sum, ok := ac.add(bc)
		if !ok || sum.prec() > quadMaxDigits {
			return Quad128{}, false
		}
		return Quad128{neg: a.neg, kind: quadFinite, exp: exp, coef: sum}, true
	}
	switch ac.cmp(bc) {
	case 0:
		return Quad128{kind: quadFinite, exp: exp}, true
	case 1:
		return Quad128{neg: a.neg, kind: quadFinite, exp: exp, coef: ac.sub(bc)}, true
	default:
		return Quad128{neg: b.neg, kind: quadFinite, exp: exp, coef: bc.sub(ac)}, true
	}
}

// numberAddSub is quadAddSub's unbounded counterpart: big.Int has no fixed
// width to overflow, so every alignment and addition always succeeds.
func numberAddSub(a, b Number, subtract bool) Number {
	if subtract {
		b.neg = !b.neg
	}
	aExp, bExp := a.exp, b.exp
	ac, bc := getBint(), getBint()
	ac.setBint(a.share.coef)
	bc.setBint(b.share.coef)
	exp := aExp
	switch {
	case aExp > bExp:
		ac.lsh(ac, int(aExp-bExp))
		exp = bExp
	case bExp > aExp:
		bc.lsh(bc, int(bExp-aExp))
	}

	z := getBint()
	defer putBint(ac)
	defer putBint(bc)
	if a.neg == b.neg {
		z.add(ac, bc)
		return newNumber(a.neg, z, exp)
	}
	switch ac.cmp(bc) {
	case 0:
		z.setInt64(0)
		return newNumber(false, z, exp)
	case 1:
		z.sub(ac, bc)
		return newNumber(a.neg, z, exp)
	default:
		z.sub(bc, ac)
		return newNumber(b.neg, z, exp)
	}
}

// Mul calculates d * e under ctx.
func (d Decimal) Mul(ctx *Context, e Decimal) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, e, "Mul"); ok {
		return r, err
	}
	if !d.isNumber && !e.isNumber && ctx.usesQuadFastPath() {
		if q, ok := quadMul(d.quad, e.quad); ok {
			return finishQuad(ctx, q)
		}
	}
	a, b := d.AsNumber(), e.AsNumber()
	z := getBint()
	z.mul(a.share.coef, b.share.coef)
	n := newNumber(a.neg != b.neg, z, a.exp+b.exp)
	return finishNumber(ctx, n)
}

func quadMul(a, b Quad128) (Quad128, bool) {
	coef, ok := a.coef.mul(b.coef)
	if !ok || coef.prec() > quadMaxDigits {
		return Quad128{}, false
	}
	return Quad128{neg: a.neg != b.neg, kind: quadFinite, exp: a.exp + b.exp, coef: coef}, true
}

// Quo calculates d / e under ctx, rounded to ctx's working precision; a
// quotient that terminates exactly within that precision raises no
// condition, any other quotient raises Inexact (and Rounded).
func (d Decimal) Quo(ctx *Context, e Decimal) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, e, "Quo"); ok {
		return r, err
	}
	if e.IsZero() {
		if d.IsZero() {
			if err := ctx.signal(InvalidOperation); err != nil {
				return Decimal{}, err
			}
			return Decimal{quad: Quad128{kind: quadQNaN}}, nil
		}
		err := ctx.signal(DivisionByZero)
		return Decimal{quad: Quad128{neg: d.IsNeg() != e.IsNeg(), kind: quadInfinite}}, err
	}

	if d.IsZero() {
		a, b := d.AsNumber(), e.AsNumber()
		z := getBint()
		z.setInt64(0)
		return finishNumber(ctx, newNumber(a.neg != b.neg, z, a.exp-b.exp))
	}

	prec := ctx.prec()
	a, b := d.AsNumber(), e.AsNumber()
	quotMag, quotExp, inexact := quoDigits(a, b, prec)
	if !inexact {
		// An exact quotient drops the trailing zeros the scaling added, down
		// to the ideal exponent a.exp-b.exp: 10/4 is 2.5, not 2.500000000.
		m, ten, q, r := (*big.Int)(quotMag), big.NewInt(10), new(big.Int), new(big.Int)
		for quotExp < a.exp-b.exp {
			if q.QuoRem(m, ten, r); r.Sign() != 0 {
				break
			}
			m.Set(q)
			quotExp++
		}
	}
	neg := a.neg != b.neg
	n := newNumber(neg, quotMag, quotExp)
	if inexact {
		if err := ctx.signal(Inexact); err != nil {
			return Decimal{}, err
		}
	}
	return finishNumber(ctx, n)
}

// quoDigits computes the quotient of a/b to prec significant digits using
// long division on scaled big.Int magnitudes, following the shape of
// decNumber's own digit-at-a-time divide: scale the dividend up until the
// integer quotient carries at least prec digits, then quotient/remainder
// once rather than looping a subtract-and-shift per digit.
func quoDigits(a, b Number, prec int) (mag *bint, exp int32, inexact bool) {
	num := new(big.Int).Abs((*big.Int)(a.share.coef))
	den := new(big.Int).Abs((*big.Int)(b.share.coef))

	// Target: num*10^shift / den has >= prec+1 digits, giving a guard
	// digit for the final round-to-prec step in finishNumber.
	shift := 0
	scaled := new(big.Int).Set(num)
	for digitCount(scaled) <= digitCount(den)+prec {
		scaled.Mul(scaled, big.NewInt(10))
		shift++
	}
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(scaled, den, r)
	return (*bint)(q), a.exp - b.exp - int32(shift), r.Sign() != 0
}

func digitCount(b *big.Int) int {
	if b.Sign() == 0 {
		return 1
	}
	return len(b.String())
}

// alignCoefficients scales a's and b's coefficients onto whichever
// exponent is smaller, the same alignment step numberAddSub and
// cmpNumber each perform inline, pulled out here so the divide-family
// operations below can share it. Callers must putBint both returned
// values once done.
func alignCoefficients(a, b Number) (ac, bc *bint, exp int32) {
	ac, bc = getBint(), getBint()
	ac.setBint(a.share.coef)
	bc.setBint(b.share.coef)
	exp = a.exp
	switch {
	case a.exp > b.exp:
		ac.lsh(ac, int(a.exp-b.exp))
		exp = b.exp
	case b.exp > a.exp:
		bc.lsh(bc, int(b.exp-a.exp))
	}
	return ac, bc, exp
}

// DivideInteger calculates the truncated integer quotient of d and e,
// sign(d)*sign(e)*⌊|d/e|⌋, always with exponent 0 — the decimal
// analogue of Go's integer /, not a rounded Quo. Like Quo, it runs
// entirely on the Number path: uint128 has no general division
// primitive for a Quad128 fast path to use.
func (d Decimal) DivideInteger(ctx *Context, e Decimal) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, e, "DivideInteger"); ok {
		return r, err
	}
	if e.IsZero() {
		if d.IsZero() {
			if err := ctx.signal(InvalidOperation); err != nil {
				return Decimal{}, err
			}
			return Decimal{quad: Quad128{kind: quadQNaN}}, nil
		}
		err := ctx.signal(DivisionByZero)
		return Decimal{quad: Quad128{neg: d.IsNeg() != e.IsNeg(), kind: quadInfinite}}, err
	}
	a, b := d.AsNumber(), e.AsNumber()
	ac, bc, _ := alignCoefficients(a, b)
	defer putBint(ac)
	defer putBint(bc)
	z := getBint()
	z.quo(ac, bc)
	if z.prec() > ctx.prec() {
		if err := ctx.signal(InvalidOperation); err != nil {
			return Decimal{}, err
		}
		return Decimal{quad: Quad128{kind: quadQNaN}}, nil
	}
	return finishNumber(ctx, newNumber(a.neg != b.neg, z, 0))
}

// Remainder calculates d - e*DivideInteger(d, e): the remainder left
// after truncated integer division, carrying d's sign and an exponent
// of whichever of d.Exp()/e.Exp() is smaller.
func (d Decimal) Remainder(ctx *Context, e Decimal) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, e, "Remainder"); ok {
		return r, err
	}
	if e.IsZero() {
		if err := ctx.signal(InvalidOperation); err != nil {
			return Decimal{}, err
		}
		return Decimal{quad: Quad128{kind: quadQNaN}}, nil
	}
	a, b := d.AsNumber(), e.AsNumber()
	ac, bc, exp := alignCoefficients(a, b)
	defer putBint(ac)
	defer putBint(bc)
	q, r := getBint(), getBint()
	defer putBint(q)
	q.quoRem(ac, bc, r)
	if r.prec() > ctx.prec() {
		if err := ctx.signal(InvalidOperation); err != nil {
			return Decimal{}, err
		}
		return Decimal{quad: Quad128{kind: quadQNaN}}, nil
	}
	return finishNumber(ctx, newNumber(a.neg, r, exp))
}

// RemainderNear calculates d - e*n, where n is the integer nearest
// d/e, ties rounding to even — IEEE 754's remainder operation, whose
// result (unlike Remainder's) can carry either sign depending on which
// way the nearest multiple of e fell.
func (d Decimal) RemainderNear(ctx *Context, e Decimal) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, e, "RemainderNear"); ok {
		return r, err
	}
	if e.IsZero() {
		if err := ctx.signal(InvalidOperation); err != nil {
			return Decimal{}, err
		}
		return Decimal{quad: Quad128{kind: quadQNaN}}, nil
	}
	a, b := d.AsNumber(), e.AsNumber()
	ac, bc, exp := alignCoefficients(a, b)
	defer putBint(ac)
	defer putBint(bc)

	A := (*big.Int)(ac)
	if a.neg {
		A = new(big.Int).Neg(A)
	}
	B := (*big.Int)(bc)
	if b.neg {
		B = new(big.Int).Neg(B)
	}
	qt, rt := new(big.Int), new(big.Int)
	qt.QuoRem(A, B, rt)

	twice := new(big.Int).Abs(rt)
	twice.Lsh(twice, 1)
	absB := new(big.Int).Abs(B)
	switch twice.Cmp(absB) {
	case 1:
		subtractNearestMultiple(rt, B, A)
	case 0:
		if qt.Bit(0) == 1 {
			subtractNearestMultiple(rt, B, A)
		}
	}

	neg := rt.Sign() < 0
	mag := new(big.Int).Abs(rt)
	if digitCount(mag) > ctx.prec() {
		if err := ctx.signal(InvalidOperation); err != nil {
			return Decimal{}, err
		}
		return Decimal{quad: Quad128{kind: quadQNaN}}, nil
	}
	z := getBint()
	z.setBint((*bint)(mag))
	return finishNumber(ctx, newNumber(neg, z, exp))
}

// subtractNearestMultiple adjusts rt (a truncated remainder of A/B) by
// one multiple of B, signed to match A*B, the round-half-even
// correction RemainderNear applies once the truncated remainder is at
// least halfway to the next multiple.
func subtractNearestMultiple(rt, B, A *big.Int) {
	adj := new(big.Int).Set(B)
	if (A.Sign() < 0) != (B.Sign() < 0) {
		adj.Neg(adj)
	}
	rt.Sub(rt, adj)
}

// Quantize returns d re-expressed with the same exponent as ref,
// rounding off digits (per ctx's rounding mode) if ref's exponent is
// larger, or exactly zero-padding if it is smaller. It signals
// InvalidOperation if the requantized coefficient would need more digits
// than ctx's working precision; the result is then a NaN, or an error if
// ctx traps InvalidOperation.
func (d Decimal) Quantize(ctx *Context, ref Decimal) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, ref, "Quantize"); ok {
		return r, err
	}
	a := d.AsNumber()
	targetExp := ref.Exp()
	shift := int(targetExp - a.exp)
	switch {
	case shift == 0:
		return finishNumber(ctx, a)
	case shift > 0:
		mag := new(big.Int).Abs((*big.Int)(a.share.coef))
		rounded, lost := roundMagnitude(mag, shift, ctx.rounding())
		if digitCount(rounded) > ctx.prec() {
			if err := ctx.signal(InvalidOperation); err != nil {
				return Decimal{}, err
			}
			return Decimal{quad: Quad128{kind: quadQNaN}}, nil
		}
		z := getBint()
		z.setBint((*bint)(rounded))
		n := newNumber(a.neg, z, targetExp)
		if lost {
			if err := ctx.signal(Rounded); err != nil {
				return Decimal{}, err
			}
			if err := ctx.signal(Inexact); err != nil {
				return Decimal{}, err
			}
		}
		return finishNumber(ctx, n)
	default:
		z := getBint()
		z.lsh(a.share.coef, -shift)
		if z.prec() > ctx.prec() {
			if err := ctx.signal(InvalidOperation); err != nil {
				return Decimal{}, err
			}
			return Decimal{quad: Quad128{kind: quadQNaN}}, nil
		}
		return finishNumber(ctx, newNumber(a.neg, z, targetExp))
	}
}

// finishQuad rounds q to ctx's working precision if it carries more
// digits than that, signaling Rounded (and Inexact, if any nonzero digits
// were discarded) exactly as finishNumber does for the Number path.
func finishQuad(ctx *Context, q Quad128) (Decimal, error) {
	if !q.IsFinite() {
		return Decimal{quad: q}, nil
	}
	prec := ctx.prec()
	extra := q.Prec() - prec
	if extra <= 0 {
		return Decimal{quad: q}, nil
	}
	rounded, lost := roundUint128(q.coef, extra, ctx.rounding())
	q.coef = rounded
	q.exp += int32(extra)
	return signalRounding(ctx, Decimal{quad: q}, lost)
}

// finishNumber rounds n to ctx's working precision and, if the result now
// fits Quad128 again (and ctx's precision is within the Quad128 budget),
// narrows it back down — Number is never a one-way upgrade at the value
// level.
func finishNumber(ctx *Context, n Number) (Decimal, error) {
	if !n.IsFinite() {
		return FromNumber(n), nil
	}
	prec := ctx.prec()
	extra := n.Prec() - prec
	lost := false
	if extra > 0 {
		mag := new(big.Int).Abs((*big.Int)(n.share.coef))
		rounded, l := roundMagnitude(mag, extra, ctx.rounding())
		lost = l
		z := getBint()
		z.setBint((*bint)(rounded))
		n = newNumber(n.neg, z, n.exp+int32(extra))
	}
	d := FromNumber(n)
	if ctx.usesQuadFastPath() {
		if q, ok := quadFromNumber(n); ok {
			d = Decimal{quad: q}
		}
	}
	return signalRounding(ctx, d, lost)
}

func signalRounding(ctx *Context, d Decimal, lostDigits bool) (Decimal, error) {
	if !lostDigits {
		return d, nil
	}
	if err := ctx.signal(Rounded); err != nil {
		return Decimal{}, err
	}
	if err := ctx.signal(Inexact); err != nil {
		return Decimal{}, err
	}
	return d, nil
}

// roundUint128 rounds x down by discarding its least-significant `shift`
// decimal digits per mode, reporting whether any discarded digit was
// nonzero (the condition that makes the result Inexact rather than just
// Rounded).
func roundUint128(x uint128, shift int, mode RoundingMode) (uint128, bool) {
	if shift <= 0 {
		return x, false
	}
	lost := !isUint128MultipleOfPow10(x, shift)
	switch mode {
	case RoundDown:
		return x.rshDown(shift), lost
	case RoundUp:
		return x.rshUp(shift), lost
	default:
		return x.rshHalfEven(shift), lost
	}
}

func isUint128MultipleOfPow10(x uint128, shift int) bool {
	if shift > quadMaxDigits {
		return x.isZero()
	}
	return x.cmp(x.rshDown(shift).mustLsh(shift)) == 0
}

func (x uint128) mustLsh(shift int) uint128 {
	z, _ := x.lsh(shift)
	return z
}

// roundMagnitude is roundUint128's unbounded counterpart, operating on a
// non-negative *big.Int coefficient magnitude.
func roundMagnitude(mag *big.Int, shift int, mode RoundingMode) (*big.Int, bool) {
	if shift <= 0 {
		return mag, false
	}
	div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(shift)), nil)
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(mag, div, r)
	lost := r.Sign() != 0
	switch mode {
	case RoundDown:
		return q, lost
	case RoundUp:
		if lost {
			q.Add(q, big.NewInt(1))
		}
		return q, lost
	default: // RoundHalfEven and the remaining modes approximate to it
		twice := new(big.Int).Lsh(r, 1)
		switch twice.Cmp(div) {
		case 1:
			q.Add(q, big.NewInt(1))
		case 0:
			if q.Bit(0) == 1 {
				q.Add(q, big.NewInt(1))
			}
		}
		return q, lost
	}
}

// Neg returns d with its sign flipped.
func (d Decimal) Neg() Decimal {
	if d.isNumber {
		n := d.num
		n.neg = !n.neg
		return FromNumber(n)
	}
	return Decimal{quad: d.quad.negate()}
}

// Abs returns the absolute value of d.
func (d Decimal) Abs() Decimal {
	if d.Sign() < 0 {
		return d.Neg()
	}
	return d
}

// Max returns whichever of d, e compares greater; ties favor d.
func (d Decimal) Max(e Decimal) Decimal {
	if Cmp(e, d) > 0 {
		return e
	}
	return d
}

// Min returns whichever of d, e compares smaller; ties favor d.
func (d Decimal) Min(e Decimal) Decimal {
	if Cmp(e, d) < 0 {
		return e
	}
	return d
}

// MaxMag returns whichever of d, e has the greater magnitude.
func (d Decimal) MaxMag(e Decimal) Decimal {
	if Cmp(e.Abs(), d.Abs()) > 0 {
		return e
	}
	return d
}

// MinMag returns whichever of d, e has the smaller magnitude.
func (d Decimal) MinMag(e Decimal) Decimal {
	if Cmp(e.Abs(), d.Abs()) < 0 {
		return e
	}
	return d
}

// ScaleB returns d with its exponent adjusted by n, an integer
// Decimal, leaving the coefficient untouched — decNumber's scaleb,
// used to move a value between exponent conventions without touching
// its significant digits.
func (d Decimal) ScaleB(ctx *Context, n Decimal) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, n, "ScaleB"); ok {
		return r, err
	}
	shift, err := n.ToInt64()
	if err != nil || shift < math.MinInt32 || shift > math.MaxInt32 {
		if serr := ctx.signal(InvalidOperation); serr != nil {
			return Decimal{}, serr
		}
		return Decimal{quad: Quad128{kind: quadQNaN}}, nil
	}
	a := d.AsNumber()
	newExp := int64(a.exp) + shift
	if newExp > math.MaxInt32 || newExp < math.MinInt32 {
		if serr := ctx.signal(Overflow); serr != nil {
			return Decimal{}, serr
		}
		return Decimal{quad: Quad128{neg: a.neg, kind: quadInfinite}}, nil
	}
	a.exp = int32(newExp)
	return finishNumber(ctx, a)
}

// Shift moves d's coefficient digits left (n > 0) or right (n < 0)
// within a window of ctx's working precision, zero-filling the
// vacated positions; n must fall within [-precision, precision].
func (d Decimal) Shift(ctx *Context, n Decimal) (Decimal, error) {
	return d.shiftOrRotate(ctx, n, false)
}

// Rotate is Shift's circular counterpart: digits pushed off one end of
// the precision window wrap back in at the other, instead of being
// discarded and zero-filled.
func (d Decimal) Rotate(ctx *Context, n Decimal) (Decimal, error) {
	return d.shiftOrRotate(ctx, n, true)
}

func (d Decimal) shiftOrRotate(ctx *Context, n Decimal, rotate bool) (Decimal, error) {
	if r, err, ok := checkSpecialBinary(ctx, d, n, "shiftOrRotate"); ok {
		return r, err
	}
	width := ctx.prec()
	amount, err := n.ToInt64()
	if err != nil || amount < int64(-width) || amount > int64(width) {
		if serr := ctx.signal(InvalidOperation); serr != nil {
			return Decimal{}, serr
		}
		return Decimal{quad: Quad128{kind: quadQNaN}}, nil
	}
	a := d.AsNumber()
	digits := "0"
	if a.share != nil {
		digits = a.share.coef.string()
	}
	shifted := shiftDigits(digits, int(amount), width, rotate)
	mag, _ := new(big.Int).SetString(shifted, 10)
	z := getBint()
	z.setBint((*bint)(mag))
	return finishNumber(ctx, newNumber(a.neg, z, a.exp))
}

// shiftDigits shifts (or, if rotate, circularly rotates) a coefficient's
// decimal digits by amount places within a window of width digits,
// left for a positive amount and right for a negative one, zero-filling
// vacated positions when not rotating.
func shiftDigits(digits string, amount, width int, rotate bool) string {
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	} else if len(digits) > width {
		digits = digits[len(digits)-width:]
	}
	switch {
	case amount == 0:
		return digits
	case amount > 0:
		if rotate {
			amount %= width
			return digits[amount:] + digits[:amount]
		}
		if amount >= width {
			return strings.Repeat("0", width)
		}
		return digits[amount:] + strings.Repeat("0", amount)
	default:
		amount = -amount
		if rotate {
			amount %= width
			return digits[width-amount:] + digits[:width-amount]
		}
		if amount >= width {
			return strings.Repeat("0", width)
		}
		return strings.Repeat("0", amount) + digits[:width-amount]
	}
}

// And, Or and Xor implement decNumber's logical operations: both
// operands must be "logical" (finite, non-negative, exponent zero,
// every coefficient digit 0 or 1 — one bit per decimal digit), and the
// result is computed digit by digit under that same convention.
func (d Decimal) And(ctx *Context, e Decimal) (Decimal, error) {
	return logicalOp(ctx, d, e, func(x, y byte) byte { return x & y })
}

func (d Decimal) Or(ctx *Context, e Decimal) (Decimal, error) {
	return logicalOp(ctx, d, e, func(x, y byte) byte { return x | y })
}

func (d Decimal) Xor(ctx *Context, e Decimal) (Decimal, error) {
	return logicalOp(ctx, d, e, func(x, y byte) byte { return x ^ y })
}

func logicalOp(ctx *Context, d, e Decimal, op func(x, y byte) byte) (Decimal, error) {
	da, ok1 := logicalDigits(d)
	db, ok2 := logicalDigits(e)
	if !ok1 || !ok2 {
		if err := ctx.signal(InvalidOperation); err != nil {
			return Decimal{}, err
		}
		return Decimal{quad: Quad128{kind: quadQNaN}}, nil
	}
	width := len(da)
	if len(db) > width {
		width = len(db)
	}
	da = padLeftZeros(da, width)
	db = padLeftZeros(db, width)
	result := make([]byte, width)
	for i := 0; i < width; i++ {
		result[i] = op(da[i]-'0', db[i]-'0') + '0'
	}
	resultStr := strings.TrimLeft(string(result), "0")
	if resultStr == "" {
		resultStr = "0"
	}
	mag, _ := new(big.Int).SetString(resultStr, 10)
	z := getBint()
	z.setBint((*bint)(mag))
	return finishNumber(ctx, newNumber(false, z, 0))
}

// logicalDigits returns d's coefficient as a string of '0'/'1' digits
// if d qualifies as a logical operand — finite, non-negative, exponent
// zero, every digit 0 or 1 — and ok=false otherwise.
func logicalDigits(d Decimal) (digits string, ok bool) {
	if !d.IsFinite() || d.IsNeg() || d.Exp() != 0 {
		return "", false
	}
	a := d.AsNumber()
	digits = "0"
	if a.share != nil {
		digits = a.share.coef.string()
	}
	for _, c := range digits {
		if c != '0' && c != '1' {
			return "", false
		}
	}
	return digits, true
}

func padLeftZeros(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// FMA computes d*e + f with only the final sum rounded, not the
// intermediate product. It has no Quad128 fast path: the product and sum
// are computed exactly on Number, and the single rounding step at the end
// (finishNumber) narrows the result back to Quad128 when it fits.
func (d Decimal) FMA(ctx *Context, e, f Decimal) (Decimal, error) {
	switch {
	case d.IsNaN() || e.IsNaN() || f.IsNaN():
		if err := ctx.signal(InvalidOperation); err != nil {
			return Decimal{}, err
		}
		return nanResult3(d, e, f), nil
	case d.IsInf() || e.IsInf():
		prod, err := d.Mul(ctx, e)
		if err != nil {
			return prod, err
		}
		return prod.Add(ctx, f)
	case f.IsInf():
		return f, nil
	}
	a, b := d.AsNumber(), e.AsNumber()
	prod := getBint()
	prod.mul(a.share.coef, b.share.coef)
	prodNum := newNumber(a.neg != b.neg, prod, a.exp+b.exp)
	return finishNumber(ctx, numberAddSub(prodNum, f.AsNumber(), false))
}

func nanResult3(d, e, f Decimal) Decimal {
	switch {
	case d.IsNaN():
		return d
	case e.IsNaN():
		return e
	default:
		return f
	}
}
