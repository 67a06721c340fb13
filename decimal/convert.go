package decimal

import (
	"math"
	"math/big"
)

// FromInt64 builds an exact integer Decimal on the Quad128 fast path.
func FromInt64(v int64) Decimal {
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	return Decimal{quad: Quad128{neg: neg, kind: quadFinite, coef: uint128{lo: u}}}
}

// ToInt64 converts d to an int64, returning an error if d is not an exact
// integer or does not fit the target width — the same failure modes
// ion-c's ion_decimal_to_... helpers report for a non-integral operand.
func (d Decimal) ToInt64() (int64, error) {
	mag, exact := d.toBigInt()
	if !exact {
		return 0, errInvalidOperation
	}
	if !mag.IsInt64() {
		return 0, errDecimalOverflow
	}
	return mag.Int64(), nil
}

// ToUint32 converts d to a uint32, following the same rules as ToInt64.
func (d Decimal) ToUint32() (uint32, error) {
	mag, exact := d.toBigInt()
	if !exact {
		return 0, errInvalidOperation
	}
	if mag.Sign() < 0 || !mag.IsUint64() || mag.Uint64() > math.MaxUint32 {
		return 0, errDecimalOverflow
	}
	return uint32(mag.Uint64()), nil
}

// ToBigInt converts d to a *big.Int, requiring d to be an exact integer.
func (d Decimal) ToBigInt() (*big.Int, error) {
	mag, exact := d.toBigInt()
	if !exact {
		return nil, errInvalidOperation
	}
	return mag, nil
}

// toBigInt reports d's coefficient shifted to an integer, and whether
// that shift was exact (i.e. d has no significant fractional digits).
func (d Decimal) toBigInt() (*big.Int, bool) {
	if !d.IsFinite() {
		return nil, false
	}
	if d.isNumber {
		mag := new(big.Int).Set((*big.Int)(d.num.share.coef))
		return scaleBigInt(mag, d.num.exp, d.num.neg)
	}
	mag := d.quad.coef.big()
	return scaleBigInt(mag, d.quad.exp, d.quad.neg)
}

func scaleBigInt(mag *big.Int, exp int32, neg bool) (*big.Int, bool) {
	switch {
	case exp == 0:
	case exp > 0:
		mag.Mul(mag, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
	default:
		div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-exp)), nil)
		q, r := new(big.Int), new(big.Int)
		q.QuoRem(mag, div, r)
		if r.Sign() != 0 {
			return nil, false
		}
		mag = q
	}
	if neg {
		mag.Neg(mag)
	}
	return mag, true
}

// Float64 converts d to the nearest float64, following the same
// imprecise-by-design contract as big.Float.Float64: this is a lossy
// conversion meant for display and heuristics, never for exact
// comparisons.
func (d Decimal) Float64() (float64, bool) {
	if d.IsNaN() {
		return math.NaN(), true
	}
	if d.IsInf() {
		if d.IsNeg() {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	f, _, err := big.ParseFloat(d.String(), 10, 53, big.ToNearestEven)
	if err != nil {
		return 0, false
	}
	v, _ := f.Float64()
	return v, true
}

// quadFromDigitsAndExponent builds a Quad128 directly from a decimal
// digit string and an exponent, bypassing Parse's sign/lexeme scanning.
// This mirrors ion-c's decQuadFromBCD/decQuadFromString split: callers
// that already hold digits (an Ion reader's decimal-literal scanner, a
// test fixture) skip re-parsing a rendered string.
func quadFromDigitsAndExponent(neg bool, digits string, exp int32) (Quad128, bool) {
	if digits == "" {
		return Quad128{}, false
	}
	coef := uint128Zero
	for i := 0; i < len(digits); i += 9 {
		end := i + 9
		if end > len(digits) {
			end = len(digits)
		}
		chunk := digits[i:end]
		n := uint64(0)
		for _, c := range chunk {
			if c < '0' || c > '9' {
				return Quad128{}, false
			}
			n = n*10 + uint64(c-'0')
		}
		shifted, ok := coef.lsh(len(chunk))
		if !ok {
			return Quad128{}, false
		}
		coef, ok = shifted.add(uint128{lo: n})
		if !ok {
			return Quad128{}, false
		}
	}
	if coef.prec() > quadMaxDigits {
		return Quad128{}, false
	}
	return Quad128{neg: neg, kind: quadFinite, exp: exp, coef: coef}, true
}

// quadToInt64 truncates q towards zero and reports overflow, the
// decQuadToInt64 half of ion-c's conversion pair (the other half,
// quadFromDigitsAndExponent above, builds the Quad instead of consuming
// one).
func quadToInt64(q Quad128) (int64, bool) {
	if !q.IsFinite() {
		return 0, false
	}
	var mag uint128
	if q.exp >= 0 {
		shifted, ok := q.coef.lsh(int(q.exp))
		if !ok {
			return 0, false
		}
		mag = shifted
	} else {
		mag = q.coef.rshDown(int(-q.exp))
	}
	if mag.hi != 0 || mag.lo > math.MaxInt64 {
		return 0, false
	}
	v := int64(mag.lo)
	if q.neg {
		v = -v
	}
	return v, true
}

// quadToDouble converts q to the nearest float64 via its decimal
// rendering, the simplest correct bridge between a coefficient-exponent
// pair and IEEE 754 binary floating point.
func quadToDouble(q Quad128) float64 {
	v, _ := Decimal{quad: q}.Float64()
	return v
}
