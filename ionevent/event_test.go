package ionevent

import (
	"math/big"
	"strconv"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ion-core/ionx/decimal"
	"github.com/ion-core/ionx/ionrw"
)

// node/treeReader is the same small in-memory fixture shape ionextract's
// tests use, reproduced here rather than shared since the two packages'
// test trees want slightly different scalar kinds (strings and bools
// here, none of which ionextract's matcher tests needed).
type node struct {
	typ         ionrw.IonType
	fieldName   string
	hasField    bool
	annotations []string
	intVal      int64
	textVal     string
	boolVal     bool
	isNull      bool
	children    []*node
}

func field(name string, n *node) *node {
	n.fieldName = name
	n.hasField = true
	return n
}

func annotated(ann string, n *node) *node {
	n.annotations = append(n.annotations, ann)
	return n
}

func intNode(v int64) *node    { return &node{typ: ionrw.TypeInt, intVal: v} }
func strNode(s string) *node   { return &node{typ: ionrw.TypeString, textVal: s} }
func boolNode(b bool) *node    { return &node{typ: ionrw.TypeBool, boolVal: b} }
func structNode(cs ...*node) *node { return &node{typ: ionrw.TypeStruct, children: cs} }
func listNode(cs ...*node) *node   { return &node{typ: ionrw.TypeList, children: cs} }

type frame struct {
	children      []*node
	idx           int
	containerType ionrw.IonType
}

type treeReader struct {
	stack []*frame
}

func newTreeReader(top ...*node) *treeReader {
	return &treeReader{stack: []*frame{{children: top, idx: -1}}}
}

func (r *treeReader) top() *frame { return r.stack[len(r.stack)-1] }
func (r *treeReader) cur() *node  { f := r.top(); return f.children[f.idx] }

func (r *treeReader) Next() (ionrw.IonType, bool, error) {
	f := r.top()
	f.idx++
	if f.idx >= len(f.children) {
		return ionrw.TypeNull, false, nil
	}
	return r.cur().typ, true, nil
}

func (r *treeReader) StepIn() error {
	cur := r.cur()
	r.stack = append(r.stack, &frame{children: cur.children, idx: -1, containerType: cur.typ})
	return nil
}

func (r *treeReader) StepOut() error {
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

func (r *treeReader) Depth() int           { return len(r.stack) - 1 }
func (r *treeReader) IsInStruct() bool     { return r.top().containerType == ionrw.TypeStruct }
func (r *treeReader) IsNull() bool         { return r.cur().isNull }
func (r *treeReader) Type() ionrw.IonType  { return r.cur().typ }

func (r *treeReader) GetFieldName() (ionrw.Symbol, error) {
	cur := r.cur()
	return ionrw.Symbol{Text: cur.fieldName, HasText: true}, nil
}

func (r *treeReader) Annotations() ([]ionrw.Symbol, error) {
	cur := r.cur()
	out := make([]ionrw.Symbol, len(cur.annotations))
	for i, a := range cur.annotations {
		out[i] = ionrw.Symbol{Text: a, HasText: true}
	}
	return out, nil
}

func (r *treeReader) HasAnnotation(ann ionrw.Symbol) (bool, error) {
	anns, _ := r.Annotations()
	for _, a := range anns {
		if a.Equal(ann) {
			return true, nil
		}
	}
	return false, nil
}

func (r *treeReader) ReadBool() (bool, error)       { return r.cur().boolVal, nil }
func (r *treeReader) ReadInt() (int64, error)       { return r.cur().intVal, nil }
func (r *treeReader) ReadBigInt() (*big.Int, error) { return big.NewInt(r.cur().intVal), nil }
func (r *treeReader) ReadFloat() (float64, error)   { return 0, nil }
func (r *treeReader) ReadDecimal() (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *treeReader) ReadTimestamp() (ionrw.Timestamp, error) { return ionrw.Timestamp{}, nil }
func (r *treeReader) ReadSymbol() (ionrw.Symbol, error)       { return ionrw.Symbol{}, nil }
func (r *treeReader) ReadString() (string, error)             { return r.cur().textVal, nil }
func (r *treeReader) ReadLobBytes() ([]byte, error)           { return nil, nil }

func materializeTree(t *testing.T, n *node) Stream {
	t.Helper()
	s, err := Materialize(newTreeReader(n))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	return s
}

func TestMaterializeShape(t *testing.T) {
	tree := structNode(field("a", intNode(1)))
	s := materializeTree(t, tree)

	var kinds []Kind
	for _, ev := range s {
		kinds = append(kinds, ev.Kind)
	}
	want := []Kind{ContainerStart, Scalar, ContainerEnd, StreamEnd}
	if diff := cmp.Diff(want, kinds, cmpopts.EquateComparable()); diff != "" {
		t.Errorf("materialized kinds mismatch (-want +got):\n%s\nfull dump:\n%s", diff, spew.Sdump(s))
	}
}

// TestStructBagEquality checks that {a:1, a:1} is equivalent to
// {a:1, a:1} but not to {a:1}.
func TestStructBagEquality(t *testing.T) {
	var c Comparator

	aa := materializeTree(t, structNode(field("a", intNode(1)), field("a", intNode(1))))
	aaAgain := materializeTree(t, structNode(field("a", intNode(1)), field("a", intNode(1))))
	aOnly := materializeTree(t, structNode(field("a", intNode(1))))

	if !c.ValuesEquivalent(aa[:len(aa)-1], aaAgain[:len(aaAgain)-1]) {
		t.Error("{a:1, a:1} should be equivalent to {a:1, a:1}")
	}
	if c.ValuesEquivalent(aa[:len(aa)-1], aOnly[:len(aOnly)-1]) {
		t.Error("{a:1, a:1} should not be equivalent to {a:1}")
	}
}

func TestStructEqualityIgnoresFieldOrder(t *testing.T) {
	var c Comparator
	ab := materializeTree(t, structNode(field("a", intNode(1)), field("b", intNode(2))))
	ba := materializeTree(t, structNode(field("b", intNode(2)), field("a", intNode(1))))
	if !c.ValuesEquivalent(ab[:len(ab)-1], ba[:len(ba)-1]) {
		t.Error("struct field order should not affect equivalence")
	}
}

func TestSequenceEqualityRespectsOrder(t *testing.T) {
	var c Comparator
	l1 := materializeTree(t, listNode(intNode(1), intNode(2)))
	l2 := materializeTree(t, listNode(intNode(2), intNode(1)))
	if c.ValuesEquivalent(l1[:len(l1)-1], l2[:len(l2)-1]) {
		t.Error("list order should matter for sequence equivalence")
	}
}

// TestEmbeddedDocumentsSet re-parses each member of
// embedded_documents::["1 ", " 1"] and compares the resulting
// single-scalar streams, which are equivalent despite differing
// whitespace.
func TestEmbeddedDocumentsSet(t *testing.T) {
	// A stand-in for a real Ion text parser: this module implements no
	// codec of its own, so the test supplies the minimal parse behavior
	// needed here — strip surrounding whitespace and parse the remaining
	// digits as an int.
	parse := func(text string) (ionrw.Reader, error) {
		trimmed := text
		for len(trimmed) > 0 && trimmed[0] == ' ' {
			trimmed = trimmed[1:]
		}
		for len(trimmed) > 0 && trimmed[len(trimmed)-1] == ' ' {
			trimmed = trimmed[:len(trimmed)-1]
		}
		v, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, err
		}
		return newTreeReader(intNode(v)), nil
	}

	group := annotated(embeddedDocumentsAnnotation, listNode(strNode("1 "), strNode(" 1")))
	span := materializeTree(t, group)
	span = span[:len(span)-1] // drop the StreamEnd sentinel

	var c Comparator
	ok, err := CheckGroup(c, EquivsMode, parse, span)
	if err != nil {
		t.Fatalf("CheckGroup: %v", err)
	}
	if !ok {
		t.Error("embedded_documents members \"1 \" and \" 1\" should be equivalent")
	}
}

func TestCheckStreamEquivsAndNonEquivs(t *testing.T) {
	var c Comparator
	stream := newTreeReader(
		listNode(intNode(1), intNode(1)),
		listNode(intNode(1), boolNode(true)),
	)
	results, err := CheckStream(c, EquivsMode, nil, stream)
	if err != nil {
		t.Fatalf("CheckStream: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d group results, want 2", len(results))
	}
	if !results[0] {
		t.Error("group 0 (1, 1) should be equivs-valid")
	}
	if results[1] {
		t.Error("group 1 (1, true) should not be equivs-valid")
	}
}
