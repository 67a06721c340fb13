package ionevent

import (
	"fmt"

	"github.com/ion-core/ionx/ionerr"
	"github.com/ion-core/ionx/ionrw"
)

// Parser re-parses Ion text into a fresh Reader positioned before its
// first top-level value. The embedded-documents test driver needs one to
// re-parse each member string of an embedded_documents set, but this
// package implements no codec of its own (see ionrw's package doc), so
// the caller supplies whichever reader construction it already has.
type Parser func(text string) (ionrw.Reader, error)

// SetMode selects how CheckGroup interprets one outer container: as an
// "equivs" group, where every member must be pairwise equivalent, or a
// "non-equivs" group, where every distinct pair must be pairwise
// non-equivalent. This mirrors the two top-level test-vector directories
// ion-c's conformance suite draws its groups from.
type SetMode uint8

const (
	EquivsMode SetMode = iota
	NonEquivsMode
)

// embeddedDocumentsAnnotation marks an outer container whose members are
// strings to be re-parsed as independent Ion documents and compared as
// materialized values, rather than compared as Ion strings directly. Each
// re-parsed document is compared through its first top-level value only;
// any later top-level values in a member document are not compared.
const embeddedDocumentsAnnotation = "embedded_documents"

// CheckGroup evaluates one outer-container group against mode. group must
// be a container's full materialized span (ContainerStart through its
// matching ContainerEnd, as produced by Materialize or childValues).
//
// If group carries the embedded_documents annotation, every member must
// be a string; each is re-parsed via parse and materialized before
// comparison, supporting encoding-sensitive tests where the same Ion
// value is spelled two different ways. parse may be nil when group is
// known not to carry that annotation.
func CheckGroup(c Comparator, mode SetMode, parse Parser, group Stream) (bool, error) {
	if len(group) == 0 || group[0].Kind != ContainerStart {
		return false, fmt.Errorf("ionevent: CheckGroup requires a container span: %w", ionerr.ErrInvalidArg)
	}

	embedded := false
	for _, ann := range group[0].Annotations {
		if ann == embeddedDocumentsAnnotation {
			embedded = true
			break
		}
	}

	members := childValues(group)
	values := members
	if embedded {
		if parse == nil {
			return false, fmt.Errorf("ionevent: embedded_documents group needs a Parser: %w", ionerr.ErrInvalidArg)
		}
		values = make([]Stream, len(members))
		for i, m := range members {
			if len(m) == 0 || !m[0].Value.HasText {
				return false, fmt.Errorf("ionevent: embedded_documents member %d is not a string: %w", i, ionerr.ErrInvalidArg)
			}
			r, err := parse(m[0].Value.Text)
			if err != nil {
				return false, err
			}
			sub, err := Materialize(r)
			if err != nil {
				return false, err
			}
			values[i] = sub
		}
	}

	switch mode {
	case EquivsMode:
		return allPairwise(c, values, true), nil
	case NonEquivsMode:
		return allPairwise(c, values, false), nil
	default:
		return false, fmt.Errorf("ionevent: unknown set mode %d: %w", mode, ionerr.ErrInvalidArg)
	}
}

// allPairwise reports whether every distinct pair of values agrees with
// wantEquivalent under c.ValuesEquivalent.
func allPairwise(c Comparator, values []Stream, wantEquivalent bool) bool {
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if c.ValuesEquivalent(values[i], values[j]) != wantEquivalent {
				return false
			}
		}
	}
	return true
}

// CheckStream walks every top-level container in r as its own group
// under mode, returning one bool per group in document order. An error
// aborts the whole walk since a malformed test-vector document can't
// produce a meaningful partial result.
func CheckStream(c Comparator, mode SetMode, parse Parser, r ionrw.Reader) ([]bool, error) {
	full, err := Materialize(r)
	if err != nil {
		return nil, err
	}
	// Materialize appends a trailing StreamEnd; the groups are whatever
	// top-level container spans precede it.
	var results []bool
	for i := 0; i < len(full); {
		if full[i].Kind == StreamEnd {
			break
		}
		n := ValueLen(full, i)
		ok, err := CheckGroup(c, mode, parse, full[i:i+n])
		if err != nil {
			return nil, err
		}
		results = append(results, ok)
		i += n
	}
	return results, nil
}
