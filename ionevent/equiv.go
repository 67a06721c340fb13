package ionevent

import (
	"math"
	"time"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/ion-core/ionx/ionrw"
)

// TimestampEquivalence selects how Comparator.ScalarsEquivalent treats
// two timestamps: compare them as encoded (same precision, same
// displayed offset) or as instants (same point on the UTC timeline
// regardless of how each was written). Ion-c holds this choice in a
// process-wide global set once before a test suite runs; carrying it as
// a field here means two comparisons with different needs can run side
// by side without a shared mutable switch.
type TimestampEquivalence uint8

const (
	FieldWise TimestampEquivalence = iota
	Instant
)

// Comparator implements the equivalence rules of spec §4.4: scalar
// equality per Ion type, order-preserving sequence equality, and
// bag equality for structs.
type Comparator struct {
	TimestampMode TimestampEquivalence
}

// ValuesEquivalent compares two single materialized values, each given as
// its full event span (one Event for a scalar, or a ContainerStart
// through its matching ContainerEnd for a container).
func (c Comparator) ValuesEquivalent(a, b Stream) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	if a[0].Type != b[0].Type {
		return false
	}
	if a[0].Kind == Scalar && b[0].Kind == Scalar {
		return c.ScalarsEquivalent(a[0], b[0])
	}
	if a[0].Kind != ContainerStart || b[0].Kind != ContainerStart {
		return false
	}
	if a[0].Type == ionrw.TypeStruct {
		return c.StructsEquivalent(a, b)
	}
	return c.SequencesEquivalent(a, b)
}

// ScalarsEquivalent compares two Scalar events of the same Ion type.
func (c Comparator) ScalarsEquivalent(a, b Event) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ionrw.TypeNull:
		return true
	case ionrw.TypeBool:
		return a.Value.Bool == b.Value.Bool
	case ionrw.TypeInt:
		if a.Value.HasBigInt != b.Value.HasBigInt {
			return false
		}
		if !a.Value.HasBigInt {
			return true
		}
		return a.Value.BigInt.Cmp(b.Value.BigInt) == 0
	case ionrw.TypeFloat:
		av, bv := a.Value.Float, b.Value.Float
		if math.IsNaN(av) || math.IsNaN(bv) {
			return math.IsNaN(av) && math.IsNaN(bv)
		}
		if av == 0 && bv == 0 {
			return math.Signbit(av) == math.Signbit(bv)
		}
		return av == bv
	case ionrw.TypeDecimal:
		return a.Value.Decimal.Equal(b.Value.Decimal)
	case ionrw.TypeTimestamp:
		return c.timestampsEquivalent(a.Value.Timestamp, b.Value.Timestamp)
	case ionrw.TypeSymbol, ionrw.TypeString:
		return a.Value.HasText == b.Value.HasText && a.Value.Text == b.Value.Text
	case ionrw.TypeClob, ionrw.TypeBlob:
		return bytesEqual(a.Value.Lob, b.Value.Lob)
	default:
		return false
	}
}

func (c Comparator) timestampsEquivalent(a, b ionrw.Timestamp) bool {
	if c.TimestampMode == Instant {
		return toUTCTime(a).Equal(toUTCTime(b))
	}
	if a.Precision != b.Precision || a.OffsetKnown != b.OffsetKnown {
		return false
	}
	if a.OffsetKnown && a.OffsetMinutes != b.OffsetMinutes {
		return false
	}
	if a.Year != b.Year || a.Month != b.Month || a.Day != b.Day {
		return false
	}
	if a.Precision < ionrw.PrecisionMinute {
		return true
	}
	if a.Hour != b.Hour || a.Minute != b.Minute {
		return false
	}
	if a.Precision < ionrw.PrecisionSecond {
		return true
	}
	if a.Second != b.Second {
		return false
	}
	if a.HasFractionalSecond != b.HasFractionalSecond {
		return false
	}
	if a.HasFractionalSecond {
		return a.FractionalSecond.Equal(b.FractionalSecond)
	}
	return true
}

func toUTCTime(ts ionrw.Timestamp) time.Time {
	loc := time.UTC
	minute := ts.Minute
	if ts.OffsetKnown {
		minute -= ts.OffsetMinutes
	}
	t := time.Date(ts.Year, time.Month(maxInt(ts.Month, 1)), maxInt(ts.Day, 1),
		ts.Hour, minute, ts.Second, 0, loc)
	if ts.HasFractionalSecond {
		if f, ok := ts.FractionalSecond.Float64(); ok {
			t = t.Add(time.Duration(f * float64(time.Second)))
		}
	}
	return t
}

func maxInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SequencesEquivalent compares two list or sexp container spans: equal
// length, pairwise equivalent in order.
func (c Comparator) SequencesEquivalent(a, b Stream) bool {
	childrenA := childValues(a)
	childrenB := childValues(b)
	if len(childrenA) != len(childrenB) {
		return false
	}
	for i := range childrenA {
		if !c.ValuesEquivalent(childrenA[i], childrenB[i]) {
			return false
		}
	}
	return true
}

// StructsEquivalent compares two struct container spans by bag
// (multiset) equality of field-name+value pairs: A is equivalent to B
// iff every field in A can be matched, in turn, against a not-yet-used
// field of the same name and equivalent value in B, and the counts come
// out even. A field appearing k times in A therefore requires at least k
// matching fields in B, and vice versa since the lengths must agree.
func (c Comparator) StructsEquivalent(a, b Stream) bool {
	fieldsA := childValues(a)
	fieldsB := childValues(b)
	if len(fieldsA) != len(fieldsB) {
		return false
	}

	remaining := append([]Stream(nil), fieldsB...)
	for _, fa := range fieldsA {
		name := fa[0].FieldName
		_, idx, ok := lo.FindIndexOf(remaining, func(fb Stream) bool {
			return fb[0].FieldName == name && c.ValuesEquivalent(fa, fb)
		})
		if !ok {
			return false
		}
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	return true
}

// childValues splits a container's full event span (ContainerStart
// through its matching ContainerEnd) into one Stream per immediate
// child, each spanning that child's own nested containers in full.
func childValues(span Stream) []Stream {
	if len(span) < 2 {
		return nil
	}
	inner := span[1 : len(span)-1]
	var out []Stream
	for i := 0; i < len(inner); {
		n := ValueLen(inner, i)
		out = append(out, inner[i:i+n])
		i += n
	}
	return out
}
