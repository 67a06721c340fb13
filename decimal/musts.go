package decimal

import "fmt"

// MustAdd is like [Decimal.Add] but panics if ctx traps the result.
func (d Decimal) MustAdd(ctx *Context, e Decimal) Decimal {
	f, err := d.Add(ctx, e)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", d, err))
	}
	return f
}

// MustSub is like [Decimal.Sub] but panics if ctx traps the result.
func (d Decimal) MustSub(ctx *Context, e Decimal) Decimal {
	f, err := d.Sub(ctx, e)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", d, err))
	}
	return f
}

// MustMul is like [Decimal.Mul] but panics if ctx traps the result.
func (d Decimal) MustMul(ctx *Context, e Decimal) Decimal {
	f, err := d.Mul(ctx, e)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", d, err))
	}
	return f
}

// MustQuo is like [Decimal.Quo] but panics if ctx traps the result.
func (d Decimal) MustQuo(ctx *Context, e Decimal) Decimal {
	f, err := d.Quo(ctx, e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", d, err))
	}
	return f
}
