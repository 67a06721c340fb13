package main

import (
	"math/big"

	"github.com/ion-core/ionx/decimal"
	"github.com/ion-core/ionx/ionrw"
)

// node/treeReader is a tiny in-memory ionrw.Reader fixture, used only by
// this demo CLI to give its subcommands something to walk without a real
// Ion codec — this module implements the library, not a wire-format
// parser (see ionrw's package doc). It is grounded on the same fixture
// shape original_source/test/value_stream.h plays for ion-c's own
// extractor and event-stream unit tests.
type node struct {
	typ         ionrw.IonType
	fieldName   string
	hasField    bool
	annotations []string
	intVal      int64
	textVal     string
	children    []*node
}

func field(name string, n *node) *node {
	n.fieldName = name
	n.hasField = true
	return n
}

func intNode(v int64) *node        { return &node{typ: ionrw.TypeInt, intVal: v} }
func strNode(s string) *node       { return &node{typ: ionrw.TypeString, textVal: s} }
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

func (r *treeReader) Depth() int          { return len(r.stack) - 1 }
func (r *treeReader) IsInStruct() bool    { return r.top().containerType == ionrw.TypeStruct }
func (r *treeReader) IsNull() bool        { return false }
func (r *treeReader) Type() ionrw.IonType { return r.cur().typ }

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

func (r *treeReader) ReadBool() (bool, error)       { return false, nil }
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

// demoTree builds the fixture used by the extract subcommand:
// {abc: def, foo: {bar:[1, 2, 3]}}, the same shape the extractor's field
// and wildcard tests exercise.
func demoTree() *node {
	return structNode(
		field("abc", strNode("def")),
		field("foo", structNode(
			field("bar", listNode(intNode(1), intNode(2), intNode(3))),
		)),
	)
}
