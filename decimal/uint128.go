package decimal

import (
	"math/big"
	"math/bits"
)

// uint128 is a fixed 128-bit unsigned integer, used as the coefficient of a
// [Quad128]. It holds up to 34 significant decimal digits, the precision of
// a 128-bit IEEE 754-2008 decimal (DECQUAD_Pmax).
//
// uint128 generalizes fint (uint64) to 128 bits, since a Quad
// coefficient does not fit in 64 bits once it reaches ~20 digits.
type uint128 struct {
	hi, lo uint64
}

const quadMaxDigits = 34

var (
	uint128Zero = uint128{}
	uint128One  = uint128{lo: 1}

	// pow10Q128[n] = 10^n, for n in [0, quadMaxDigits].
	pow10Q128 [quadMaxDigits + 1]uint128

	// maxQuadCoef is 10^34 - 1, the largest coefficient a Quad128 can hold.
	maxQuadCoef uint128
)

func init() {
	ten := big.NewInt(10)
	p := big.NewInt(1)
	for n := 0; n <= quadMaxDigits; n++ {
		pow10Q128[n] = uint128FromBig(p)
		p = new(big.Int).Mul(p, ten)
	}
	maxQuadCoef = uint128FromBig(new(big.Int).Sub(p, big.NewInt(1)))
}

func uint128FromBig(b *big.Int) uint128 {
	bs := b.Bits()
	var u uint128
	switch {
	case len(bs) == 0:
		return u
	case bits.UintSize == 64:
		u.lo = uint64(bs[0])
		if len(bs) > 1 {
			u.hi = uint64(bs[1])
		}
	default: // 32-bit hosts: two words per 64 bits
		u.lo = uint64(bs[0])
		if len(bs) > 1 {
			u.lo |= uint64(bs[1]) << 32
		}
		if len(bs) > 2 {
			u.hi = uint64(bs[2])
		}
		if len(bs) > 3 {
			u.hi |= uint64(bs[3]) << 32
		}
	}
	return u
}

func (x uint128) big() *big.Int {
	z := new(big.Int).SetUint64(x.hi)
	z.Lsh(z, 64)
	z.Or(z, new(big.Int).SetUint64(x.lo))
	return z
}

func (x uint128) isZero() bool { return x.hi == 0 && x.lo == 0 }

func (x uint128) cmp(y uint128) int {
	switch {
	case x.hi != y.hi:
		if x.hi < y.hi {
			return -1
		}
		return 1
	case x.lo != y.lo:
		if x.lo < y.lo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// add calculates x + y and reports whether it overflowed 128 bits.
func (x uint128) add(y uint128) (uint128, bool) {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	hi, carry2 := bits.Add64(x.hi, y.hi, carry)
	return uint128{hi: hi, lo: lo}, carry2 == 0
}

// sub calculates x - y, assuming x >= y.
func (x uint128) sub(y uint128) uint128 {
	lo, borrow := bits.Sub64(x.lo, y.lo, 0)
	hi, _ := bits.Sub64(x.hi, y.hi, borrow)
	return uint128{hi: hi, lo: lo}
}

// mulSmall calculates x * y for a one-word multiplier and reports whether
// the 128-bit result overflowed.
func (x uint128) mulSmall(y uint64) (uint128, bool) {
	if y == 0 || x.isZero() {
		return uint128Zero, true
	}
	hiLo, lo := bits.Mul64(x.lo, y)
	hiHi, hiLoAdd := bits.Mul64(x.hi, y)
	hi, carry := bits.Add64(hiLo, hiLoAdd, 0)
	if carry != 0 || hiHi != 0 {
		return uint128Zero, false
	}
	return uint128{hi: hi, lo: lo}, true
}

// mul calculates x * y and reports whether the 128-bit result overflowed.
// Powers of ten above 10^19 don't fit a uint64 multiplier, so lsh needs the
// full 128x128 cross product, not just mulSmall.
func (x uint128) mul(y uint128) (uint128, bool) {
	if x.isZero() || y.isZero() {
		return uint128Zero, true
	}
	if x.hi != 0 && y.hi != 0 {
		return uint128Zero, false
	}
	hi, lo := bits.Mul64(x.lo, y.lo)
	crossHi1, crossLo1 := bits.Mul64(x.hi, y.lo)
	crossHi2, crossLo2 := bits.Mul64(x.lo, y.hi)
	if crossHi1 != 0 || crossHi2 != 0 {
		return uint128Zero, false
	}
	cross, carry := bits.Add64(crossLo1, crossLo2, 0)
	if carry != 0 {
		return uint128Zero, false
	}
	hi2, carry2 := bits.Add64(hi, cross, 0)
	if carry2 != 0 {
		return uint128Zero, false
	}
	return uint128{hi: hi2, lo: lo}, true
}

// fsa (Fused Shift and Add) calculates x * 10^shift + d, for a single digit
// d, and reports overflow, mirroring fint.fsa one tier up in width. parseQuad
// does not call it; it folds nine-digit chunks with lsh and add instead.
func (x uint128) fsa(shift int, d byte) (uint128, bool) {
	z, ok := x.lsh(shift)
	if !ok {
		return uint128Zero, false
	}
	return z.add(uint128{lo: uint64(d)})
}

// lsh (Left Shift) calculates x * 10^shift and reports overflow.
func (x uint128) lsh(shift int) (uint128, bool) {
	switch {
	case shift == 0:
		return x, true
	case shift < 0 || shift > quadMaxDigits:
		return uint128Zero, false
	}
	return x.mul(pow10Q128[shift])
}

// hasPrec reports whether x has at least prec decimal digits.
func (x uint128) hasPrec(prec int) bool {
	switch {
	case prec <= 0:
		return true
	case prec > quadMaxDigits:
		return false
	}
	return x.cmp(pow10Q128[prec-1]) >= 0
}

// prec returns the number of decimal digits in x (0 has 0 digits).
func (x uint128) prec() int {
	left, right := 0, quadMaxDigits+1
	for left < right {
		mid := (left + right) / 2
		if x.cmp(pow10Q128[mid]) < 0 {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

// rshHalfEven calculates round(x / 10^shift), "half to even", via a
// big.Int detour: 128/128-bit division with rounding is not worth hand
// unrolling for a path this rarely hot, and the rest of this package
// falls back to *big.Int (bint) whenever a fast path can't carry an
// operation. See DESIGN.md.
func (x uint128) rshHalfEven(shift int) uint128 {
	if shift <= 0 || x.isZero() {
		return x
	}
	y := pow10Q128[min(shift, quadMaxDigits)].big()
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(x.big(), y, r)
	r2 := new(big.Int).Lsh(r, 1)
	switch r2.Cmp(y) {
	case 1:
		q.Add(q, big.NewInt(1))
	case 0:
		if q.Bit(0) == 1 {
			q.Add(q, big.NewInt(1))
		}
	}
	return uint128FromBig(q)
}

// rshDown calculates trunc(x / 10^shift), rounding towards zero.
func (x uint128) rshDown(shift int) uint128 {
	if shift <= 0 || x.isZero() {
		return x
	}
	y := pow10Q128[min(shift, quadMaxDigits)].big()
	q := new(big.Int).Quo(x.big(), y)
	return uint128FromBig(q)
}

// rshUp calculates ceil(x / 10^shift), rounding away from zero.
func (x uint128) rshUp(shift int) uint128 {
	if shift <= 0 {
		return x
	}
	y := pow10Q128[min(shift, quadMaxDigits)].big()
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(x.big(), y, r)
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return uint128FromBig(q)
}
