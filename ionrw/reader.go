package ionrw

import (
	"math/big"

	"github.com/ion-core/ionx/decimal"
)

// Reader is the streaming, cursor-based Ion reader contract the extractor
// engine drives via recursive descent. Its method set mirrors ion-c's
// ion_reader.h one-for-one (next/step_in/step_out/is_in_struct/
// get_field_name/...), Go-cased and returning (value, error) instead of
// an out-parameter plus an ion_error_t, so the extractor package never
// needs to know whether it is walking a real decoder or a test fixture.
//
// A Reader is always externally owned: the extractor and event packages
// never construct one, only consume one passed in by the caller.
type Reader interface {
	// Next advances to the next value at the current depth, returning
	// TypeNull's zero value with ok=false at the end of the current
	// container (or stream, at depth 0).
	Next() (t IonType, ok bool, err error)

	// StepIn descends into the container the cursor currently sits on.
	StepIn() error

	// StepOut ascends out of the container currently being walked,
	// positioning the cursor just after the container's closing value.
	StepOut() error

	// Depth reports the current container nesting depth; 0 is the top
	// level.
	Depth() int

	// IsInStruct reports whether the immediately enclosing container is
	// a struct, the condition that makes GetFieldName meaningful.
	IsInStruct() bool

	// GetFieldName returns the current value's field name; valid only
	// when IsInStruct is true.
	GetFieldName() (Symbol, error)

	// Annotations returns the current value's annotation sequence, in
	// source order.
	Annotations() ([]Symbol, error)

	// HasAnnotation reports whether ann appears anywhere in the current
	// value's annotation sequence, by symbol equality.
	HasAnnotation(ann Symbol) (bool, error)

	// IsNull reports whether the current value is an Ion null (including
	// a typed null such as null.string).
	IsNull() bool

	// Type returns the current value's type without consuming it.
	Type() IonType

	ReadBool() (bool, error)
	ReadInt() (int64, error)
	ReadBigInt() (*big.Int, error)
	ReadFloat() (float64, error)
	ReadDecimal() (decimal.Decimal, error)
	ReadTimestamp() (Timestamp, error)
	ReadSymbol() (Symbol, error)
	ReadString() (string, error)

	// ReadLobBytes reads a clob or blob's raw octets.
	ReadLobBytes() ([]byte, error)
}

// Writer is the symmetric streaming Ion writer contract. Nothing in this
// module implements or calls it; the cmd/ionx demo and the tests build
// their fixtures as in-memory Reader trees instead.
type Writer interface {
	WriteNull(t IonType) error
	WriteBool(v bool) error
	WriteInt(v int64) error
	WriteBigInt(v *big.Int) error
	WriteFloat(v float64) error
	WriteDecimal(v decimal.Decimal) error
	WriteTimestamp(v Timestamp) error
	WriteSymbol(v Symbol) error
	WriteString(v string) error
	WriteLobBytes(t IonType, b []byte) error

	StepIn(t IonType) error
	StepOut() error

	SetFieldName(s Symbol) error
	AddAnnotation(s Symbol) error

	// Finish flushes any buffered output, returning an error if the
	// writer was left mid-container.
	Finish() error
}
