// Package ionrw defines the Reader and Writer collaborator contracts that
// the extractor and event packages are built against, plus the handful of
// wire-level types (IonType, Symbol, Timestamp) those contracts traffic
// in. This package never implements a binary or text Ion codec itself; it
// exists so ionextract and ionevent can depend on an interface instead of
// a concrete reader, the same separation ion-c draws between
// ion_reader.h and the extractor/event-stream code built on top of it.
package ionrw

import "github.com/ion-core/ionx/decimal"

// IonType identifies an Ion value's type, numbered by the type-descriptor
// nibble ion-c's binary reader dispatches on (0x0 NULL through 0xF
// reserved), so a fixture or test vector that names a type by its nibble
// value lines up directly with this enum.
type IonType uint8

const (
	TypeNull IonType = iota
	TypeBool
	TypeInt
	typeNegInt // nibble 0x3: negative int, surfaced to callers as TypeInt
	TypeFloat
	TypeDecimal
	TypeTimestamp
	TypeSymbol
	TypeString
	TypeClob
	TypeBlob
	TypeList
	TypeSexp
	TypeStruct
	typeAnnotationWrapper // never surfaced to a reader's caller
)

func (t IonType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeDecimal:
		return "decimal"
	case TypeTimestamp:
		return "timestamp"
	case TypeSymbol:
		return "symbol"
	case TypeString:
		return "string"
	case TypeClob:
		return "clob"
	case TypeBlob:
		return "blob"
	case TypeList:
		return "list"
	case TypeSexp:
		return "sexp"
	case TypeStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// IsContainer reports whether t is one of list, sexp or struct — the
// three types a Reader can step_in to.
func (t IonType) IsContainer() bool {
	return t == TypeList || t == TypeSexp || t == TypeStruct
}

// Symbol is an interned Ion symbol: either resolved to text, or a
// symbol-table ID with text unknown to the current context (e.g. $10
// when no shared symbol table supplies it), mirroring ion-c's ION_STRING
// plus SID pair for a symbol value.
type Symbol struct {
	Text    string
	SID     int32
	HasText bool
}

// String renders the symbol's text, unquoted, if known, else the numeric
// identifier in $SID form.
func (s Symbol) String() string {
	if s.HasText {
		return s.Text
	}
	return "$" + itoa(s.SID)
}

func itoa(v int32) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Equal reports whether two symbols denote the same value: by text when
// both carry text, otherwise by symbol ID.
func (s Symbol) Equal(o Symbol) bool {
	if s.HasText && o.HasText {
		return s.Text == o.Text
	}
	return s.SID == o.SID
}

// Timestamp is an Ion timestamp value, precise down to an optional
// fractional-second component carried as a [decimal.Decimal] (Ion allows
// arbitrary-precision fractional seconds, not just nanosecond slices).
type Timestamp struct {
	Year, Month, Day    int
	Hour, Minute        int
	Second              int
	FractionalSecond    decimal.Decimal
	HasFractionalSecond bool
	OffsetKnown         bool
	OffsetMinutes       int
	Precision           TimestampPrecision
}

// TimestampPrecision records how much of a Timestamp's fields were
// actually present in the source lexeme, since Ion timestamps may be
// truncated at year, month or day precision.
type TimestampPrecision uint8

const (
	PrecisionYear TimestampPrecision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionMinute
	PrecisionSecond
	PrecisionFraction
)
