package decimal

import (
	"fmt"
	"testing"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"-1", "-1"},
		{"1.50", "1.50"},
		{"0.001", "0.001"},
		{"123.456", "123.456"},
		{"1e3", "1000"},
		{"1.5e-2", "0.015"},
		{"+5", "5"},
	}
	for _, tt := range tests {
		d, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.in, err)
		}
		if got := d.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
		if d.IsNumber() {
			t.Errorf("Parse(%q) unexpectedly promoted to Number", tt.in)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "--1", "1e", "."} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestParsePromotesToNumber(t *testing.T) {
	big := "1" + stringsRepeat("0", 40)
	d, err := Parse(big)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", big, err)
	}
	if !d.IsNumber() {
		t.Fatalf("Parse(%q) did not promote to Number", big)
	}
	if got := d.String(); got != big {
		t.Errorf("String() = %q, want %q", got, big)
	}
}

func stringsRepeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

func TestAddSub(t *testing.T) {
	tests := []struct {
		a, b, wantAdd, wantSub string
	}{
		{"1", "2", "3", "-1"},
		{"1.5", "2.25", "3.75", "-0.75"},
		{"10", "-3", "7", "13"},
		{"-5", "-5", "-10", "0"},
		{"0", "0", "0", "0"},
	}
	ctx := &Context{}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		sum, err := a.Add(ctx, b)
		if err != nil {
			t.Fatalf("Add(%s, %s) failed: %v", tt.a, tt.b, err)
		}
		if got := sum.String(); got != tt.wantAdd {
			t.Errorf("Add(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.wantAdd)
		}
		diff, err := a.Sub(ctx, b)
		if err != nil {
			t.Fatalf("Sub(%s, %s) failed: %v", tt.a, tt.b, err)
		}
		if got := diff.String(); got != tt.wantSub {
			t.Errorf("Sub(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.wantSub)
		}
	}
}

func TestMul(t *testing.T) {
	tests := []struct{ a, b, want string }{
		{"2", "3", "6"},
		{"1.5", "2", "3.0"},
		{"-4", "5", "-20"},
		{"0", "99", "0"},
	}
	ctx := &Context{}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		got, err := a.Mul(ctx, b)
		if err != nil {
			t.Fatalf("Mul(%s, %s) failed: %v", tt.a, tt.b, err)
		}
		if s := got.String(); s != tt.want {
			t.Errorf("Mul(%s, %s) = %s, want %s", tt.a, tt.b, s, tt.want)
		}
	}
}

func TestQuoExact(t *testing.T) {
	ctx := &Context{Precision: 10}
	a, b := MustParse("10"), MustParse("4")
	got, err := a.Quo(ctx, b)
	if err != nil {
		t.Fatalf("Quo failed: %v", err)
	}
	if got.String() != "2.5" {
		t.Errorf("Quo(10, 4) = %s, want 2.5", got.String())
	}
}

func TestQuoByZero(t *testing.T) {
	ctx := &Context{}
	a, b := MustParse("1"), Zero
	got, err := a.Quo(ctx, b)
	if err != nil {
		t.Fatalf("Quo by zero under an untrapped Context returned an error: %v", err)
	}
	if !got.IsInf() {
		t.Errorf("Quo(1, 0) = %s, want Infinity", got.String())
	}
	if ctx.Status&DivisionByZero == 0 {
		t.Errorf("Quo(1, 0) did not raise DivisionByZero, status = %v", ctx.Status)
	}
}

func TestQuoByZeroTrapped(t *testing.T) {
	ctx := &Context{Traps: DivisionByZero}
	if _, err := MustParse("1").Quo(ctx, Zero); err == nil {
		t.Errorf("Quo(1, 0) under a trapping Context succeeded, want error")
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1", "1.0", 0},
		{"1", "2", -1},
		{"2", "1", 1},
		{"-1", "1", -1},
		{"0", "-0", 0},
		{"100", "99.999", 1},
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		if got := Cmp(a, b); got != tt.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMaxMinMag(t *testing.T) {
	a, b := MustParse("-5"), MustParse("3")
	if got := a.Max(b); got.String() != "3" {
		t.Errorf("Max(-5, 3) = %s, want 3", got.String())
	}
	if got := a.Min(b); got.String() != "-5" {
		t.Errorf("Min(-5, 3) = %s, want -5", got.String())
	}
	if got := a.MaxMag(b); got.String() != "-5" {
		t.Errorf("MaxMag(-5, 3) = %s, want -5", got.String())
	}
	if got := a.MinMag(b); got.String() != "3" {
		t.Errorf("MinMag(-5, 3) = %s, want 3", got.String())
	}
}

func TestRoundingOnOverflow(t *testing.T) {
	// Adding two 34-nines coefficients at the same exponent carries a
	// 35th digit: the Quad128 fast path reports overflow, the Number
	// fallback computes the exact 35-digit sum, and finishNumber rounds
	// it back down to fit the default (34-digit) Context precision.
	ctx := &Context{}
	nines := "9999999999999999999999999999999999" // 34 nines
	a, b := MustParse(nines), MustParse(nines)
	got, err := a.Add(ctx, b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got.Prec() > quadMaxDigits {
		t.Errorf("Add result kept %d digits, want <= %d", got.Prec(), quadMaxDigits)
	}
	if ctx.Status&Rounded == 0 {
		t.Errorf("Add of two 34-digit operands did not raise Rounded")
	}
}

func TestMustQuoPanicsOnTrap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustQuo(1, 0) under a trapping Context did not panic")
		}
	}()
	ctx := &Context{Traps: DivisionByZero}
	MustParse("1").MustQuo(ctx, Zero)
}

func TestDivideIntegerAndRemainder(t *testing.T) {
	tests := []struct {
		a, b, wantDivInt, wantRem string
	}{
		{"10", "3", "3", "1"},
		{"-10", "3", "-3", "-1"},
		{"10", "-3", "-3", "1"},
		{"2.5", "0.3", "8", "0.1"},
	}
	ctx := &Context{}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		di, err := a.DivideInteger(ctx, b)
		if err != nil {
			t.Fatalf("DivideInteger(%s, %s) failed: %v", tt.a, tt.b, err)
		}
		if got := di.String(); got != tt.wantDivInt {
			t.Errorf("DivideInteger(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.wantDivInt)
		}
		rem, err := a.Remainder(ctx, b)
		if err != nil {
			t.Fatalf("Remainder(%s, %s) failed: %v", tt.a, tt.b, err)
		}
		if got := rem.String(); got != tt.wantRem {
			t.Errorf("Remainder(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.wantRem)
		}
	}
}

func TestRemainderNear(t *testing.T) {
	tests := []struct{ a, b, want string }{
		{"7", "2", "-1"},
		{"-7", "2", "1"},
		{"10", "3", "1"},
	}
	ctx := &Context{}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		got, err := a.RemainderNear(ctx, b)
		if err != nil {
			t.Fatalf("RemainderNear(%s, %s) failed: %v", tt.a, tt.b, err)
		}
		if s := got.String(); s != tt.want {
			t.Errorf("RemainderNear(%s, %s) = %s, want %s", tt.a, tt.b, s, tt.want)
		}
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct{ a, ref, want string }{
		{"2.17", "0.001", "2.170"},
		{"2.17", "0.01", "2.17"},
		{"2.17456", "0.01", "2.17"},
	}
	ctx := &Context{}
	for _, tt := range tests {
		a, ref := MustParse(tt.a), MustParse(tt.ref)
		got, err := a.Quantize(ctx, ref)
		if err != nil {
			t.Fatalf("Quantize(%s, %s) failed: %v", tt.a, tt.ref, err)
		}
		if s := got.String(); s != tt.want {
			t.Errorf("Quantize(%s, %s) = %s, want %s", tt.a, tt.ref, s, tt.want)
		}
	}
}

func TestScaleB(t *testing.T) {
	ctx := &Context{}
	a := MustParse("1.5")
	got, err := a.ScaleB(ctx, FromInt64(2))
	if err != nil {
		t.Fatalf("ScaleB failed: %v", err)
	}
	if got.Exp() != a.Exp()+2 {
		t.Errorf("ScaleB(1.5, 2).Exp() = %d, want %d", got.Exp(), a.Exp()+2)
	}
}

func TestShiftAndRotate(t *testing.T) {
	ctx := &Context{Precision: 9}
	a := MustParse("1234567")
	shifted, err := a.Shift(ctx, FromInt64(2))
	if err != nil {
		t.Fatalf("Shift failed: %v", err)
	}
	if got := shifted.String(); got != "123456700" {
		t.Errorf("Shift(1234567, 2) = %s, want 123456700", got)
	}
	rotated, err := a.Rotate(ctx, FromInt64(2))
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if got := rotated.String(); got != "123456700" {
		t.Errorf("Rotate(1234567, 2) = %s, want 123456700", got)
	}
}

func TestLogicalOps(t *testing.T) {
	ctx := &Context{}
	a, b := MustParse("101"), MustParse("011")
	and, err := a.And(ctx, b)
	if err != nil {
		t.Fatalf("And failed: %v", err)
	}
	if got := and.String(); got != "1" {
		t.Errorf("And(101, 011) = %s, want 1", got)
	}
	or, err := a.Or(ctx, b)
	if err != nil {
		t.Fatalf("Or failed: %v", err)
	}
	if got := or.String(); got != "111" {
		t.Errorf("Or(101, 011) = %s, want 111", got)
	}
	xor, err := a.Xor(ctx, b)
	if err != nil {
		t.Fatalf("Xor failed: %v", err)
	}
	if got := xor.String(); got != "110" {
		t.Errorf("Xor(101, 011) = %s, want 110", got)
	}
}

func TestLogicalOpRejectsNonLogicalOperand(t *testing.T) {
	ctx := &Context{Traps: InvalidOperation}
	if _, err := MustParse("102").And(ctx, MustParse("1")); err == nil {
		t.Errorf("And(102, 1) succeeded, want error for non-logical operand")
	}
}

func TestFMA(t *testing.T) {
	ctx := &Context{}
	a, b, c := MustParse("2"), MustParse("3"), MustParse("4")
	got, err := a.FMA(ctx, b, c)
	if err != nil {
		t.Fatalf("FMA failed: %v", err)
	}
	if s := got.String(); s != "10" {
		t.Errorf("FMA(2, 3, 4) = %s, want 10", s)
	}
}

func TestClassificationPredicates(t *testing.T) {
	one := MustParse("1")
	onePointZero := MustParse("1.0")
	if !one.SameQuantum(one) {
		t.Error("1 is not SameQuantum with itself")
	}
	if one.SameQuantum(onePointZero) {
		t.Error("1 and 1.0 unexpectedly compare SameQuantum")
	}
	if !one.IsInteger() {
		t.Error("1 is not reported as an integer")
	}
	if onePointZero.IsInteger() {
		t.Error("1.0 is unexpectedly reported as an integer")
	}
	if !one.IsCanonical() {
		t.Error("1 is not reported as canonical")
	}
	if one.Radix() != 10 {
		t.Errorf("Radix() = %d, want 10", one.Radix())
	}
	if !one.IsNormal() {
		t.Error("1 is not reported as normal")
	}
	if Zero.IsNormal() {
		t.Error("0 is unexpectedly reported as normal")
	}
}

func ExampleParse() {
	d := MustParse("19.99")
	fmt.Println(d)
	// Output: 19.99
}

func ExampleDecimal_Add() {
	a := MustParse("2.5")
	b := MustParse("0.75")
	sum, _ := a.Add(&Context{}, b)
	fmt.Println(sum)
	// Output: 3.25
}
