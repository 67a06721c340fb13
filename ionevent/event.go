// Package ionevent materializes an [ionrw.Reader] into an in-memory
// event stream and compares two such streams for structural equivalence:
// bag equality for structs, order equality for sequences, byte/value
// equality for scalars. This is the Go shape of ion-c's test-only
// ion_event_stream.h/.c machinery, promoted to a first-class package
// since the event model and the equivalence rules it enables are useful
// independent of any one test harness.
package ionevent

import (
	"math/big"

	"github.com/ion-core/ionx/decimal"
	"github.com/ion-core/ionx/ionrw"
)

// Kind discriminates the four event shapes a materialized stream can
// hold, mirroring ion-c's ION_EVENT_TYPE enum (minus SYMBOL_TABLE, out of
// scope per the Non-goals).
type Kind uint8

const (
	ContainerStart Kind = iota
	ContainerEnd
	Scalar
	StreamEnd
)

func (k Kind) String() string {
	switch k {
	case ContainerStart:
		return "container_start"
	case ContainerEnd:
		return "container_end"
	case Scalar:
		return "scalar"
	case StreamEnd:
		return "stream_end"
	default:
		return "unknown"
	}
}

// Value holds a materialized scalar payload. Exactly one field is
// meaningful, selected by the owning Event's Type.
type Value struct {
	Bool      bool
	Int       int64
	BigInt    *big.Int
	HasBigInt bool
	Float     float64
	Decimal   decimal.Decimal
	Timestamp ionrw.Timestamp
	Text      string
	HasText   bool
	Lob       []byte
}

// Event is one entry of a materialized stream: a container boundary or a
// scalar, carrying the field name and annotations the reader reported at
// that position. Field names and annotation text are copied by value so
// an Event outlives the Reader it was read from.
type Event struct {
	Kind        Kind
	Type        ionrw.IonType
	FieldName   string
	HasField    bool
	Annotations []string
	Depth       int
	Value       Value // meaningful only when Kind == Scalar
}

// Stream is a materialized sequence of Events. A Stream returned by
// Materialize ends in a StreamEnd sentinel; the per-value sub-streams
// sliced out of it (by ValueLen or a container's children) do not.
type Stream []Event

// Materialize walks r from its current position to the end of the
// current container (or to the end of the top-level stream, if r starts
// at depth 0), appending one Event per value encountered: ContainerStart
// followed eventually by a matching ContainerEnd for each container, a
// single Scalar for everything else, and a final StreamEnd once the walk
// completes.
func Materialize(r ionrw.Reader) (Stream, error) {
	var out Stream
	if err := materializeLevel(r, &out); err != nil {
		return nil, err
	}
	out = append(out, Event{Kind: StreamEnd, Depth: r.Depth()})
	return out, nil
}

func materializeLevel(r ionrw.Reader, out *Stream) error {
	for {
		t, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		ev := Event{Type: t, Depth: r.Depth()}
		if r.IsInStruct() {
			fn, err := r.GetFieldName()
			if err != nil {
				return err
			}
			ev.FieldName = fn.String()
			ev.HasField = true
		}
		anns, err := r.Annotations()
		if err != nil {
			return err
		}
		for _, a := range anns {
			ev.Annotations = append(ev.Annotations, a.String())
		}

		if t.IsContainer() && !r.IsNull() {
			ev.Kind = ContainerStart
			*out = append(*out, ev)
			if err := r.StepIn(); err != nil {
				return err
			}
			if err := materializeLevel(r, out); err != nil {
				return err
			}
			if err := r.StepOut(); err != nil {
				return err
			}
			*out = append(*out, Event{Kind: ContainerEnd, Type: t, Depth: ev.Depth})
			continue
		}

		ev.Kind = Scalar
		val, err := readScalar(r, t)
		if err != nil {
			return err
		}
		ev.Value = val
		*out = append(*out, ev)
	}
}

func readScalar(r ionrw.Reader, t ionrw.IonType) (Value, error) {
	if r.IsNull() {
		return Value{}, nil
	}
	switch t {
	case ionrw.TypeBool:
		v, err := r.ReadBool()
		return Value{Bool: v}, err
	case ionrw.TypeInt:
		v, err := r.ReadBigInt()
		if err != nil {
			return Value{}, err
		}
		return Value{BigInt: v, HasBigInt: true}, nil
	case ionrw.TypeFloat:
		v, err := r.ReadFloat()
		return Value{Float: v}, err
	case ionrw.TypeDecimal:
		v, err := r.ReadDecimal()
		return Value{Decimal: v}, err
	case ionrw.TypeTimestamp:
		v, err := r.ReadTimestamp()
		return Value{Timestamp: v}, err
	case ionrw.TypeSymbol:
		v, err := r.ReadSymbol()
		if err != nil {
			return Value{}, err
		}
		return Value{Text: v.String(), HasText: true}, nil
	case ionrw.TypeString:
		v, err := r.ReadString()
		if err != nil {
			return Value{}, err
		}
		return Value{Text: v, HasText: true}, nil
	case ionrw.TypeClob, ionrw.TypeBlob:
		v, err := r.ReadLobBytes()
		return Value{Lob: v}, err
	default:
		return Value{}, nil
	}
}

// ValueLen returns the number of events occupied by the value starting
// at stream[start]: 1 for a Scalar, or the count through the matching
// ContainerEnd (inclusive) for a ContainerStart. It is the skip-step used
// to walk a stream value-by-value without descending into containers
// neither comparator side cares about.
func ValueLen(stream Stream, start int) int {
	ev := stream[start]
	if ev.Kind != ContainerStart {
		return 1
	}
	depth := ev.Depth
	for i := start + 1; i < len(stream); i++ {
		if stream[i].Kind == ContainerEnd && stream[i].Depth == depth {
			return i - start + 1
		}
	}
	return len(stream) - start
}
