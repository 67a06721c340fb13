package ionextract

import (
	"math/big"
	"testing"

	"github.com/ion-core/ionx/decimal"
	"github.com/ion-core/ionx/ionpath"
	"github.com/ion-core/ionx/ionrw"
)

// node is one value in a tiny in-memory Ion tree, enough to drive the
// matcher's tests without a real codec, the same role ion-c's own
// value_stream.h test fixture plays for its extractor unit tests.
type node struct {
	typ         ionrw.IonType
	fieldName   string
	hasField    bool
	annotations []ionrw.Symbol
	intVal      int64
	isNull      bool
	children    []*node
}

func field(name string, n *node) *node {
	n.fieldName = name
	n.hasField = true
	return n
}

func annotated(ann string, n *node) *node {
	n.annotations = append(n.annotations, ionrw.Symbol{Text: ann, HasText: true})
	return n
}

func intNode(v int64) *node { return &node{typ: ionrw.TypeInt, intVal: v} }

func structNode(children ...*node) *node {
	return &node{typ: ionrw.TypeStruct, children: children}
}

func listNode(children ...*node) *node {
	return &node{typ: ionrw.TypeList, children: children}
}

type frame struct {
	children      []*node
	idx           int
	containerType ionrw.IonType
}

// treeReader implements ionrw.Reader over a fixed node tree. It supports
// exactly the methods the matcher calls plus ReadInt, which is all these
// tests exercise; the rest return a zero value since nothing in this
// package calls them.
type treeReader struct {
	stack []*frame
}

func newTreeReader(top ...*node) *treeReader {
	return &treeReader{stack: []*frame{{children: top, idx: -1}}}
}

func (r *treeReader) top() *frame { return r.stack[len(r.stack)-1] }

func (r *treeReader) cur() *node {
	f := r.top()
	return f.children[f.idx]
}

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

func (r *treeReader) Depth() int { return len(r.stack) - 1 }

func (r *treeReader) IsInStruct() bool {
	return r.top().containerType == ionrw.TypeStruct
}

func (r *treeReader) GetFieldName() (ionrw.Symbol, error) {
	cur := r.cur()
	return ionrw.Symbol{Text: cur.fieldName, HasText: true}, nil
}

func (r *treeReader) Annotations() ([]ionrw.Symbol, error) { return r.cur().annotations, nil }

func (r *treeReader) HasAnnotation(ann ionrw.Symbol) (bool, error) {
	for _, a := range r.cur().annotations {
		if a.Equal(ann) {
			return true, nil
		}
	}
	return false, nil
}

func (r *treeReader) IsNull() bool        { return r.cur().isNull }
func (r *treeReader) Type() ionrw.IonType { return r.cur().typ }

func (r *treeReader) ReadBool() (bool, error)            { return false, nil }
func (r *treeReader) ReadInt() (int64, error)             { return r.cur().intVal, nil }
func (r *treeReader) ReadBigInt() (*big.Int, error)       { return big.NewInt(r.cur().intVal), nil }
func (r *treeReader) ReadFloat() (float64, error)         { return 0, nil }
func (r *treeReader) ReadDecimal() (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *treeReader) ReadTimestamp() (ionrw.Timestamp, error) { return ionrw.Timestamp{}, nil }
func (r *treeReader) ReadSymbol() (ionrw.Symbol, error)       { return ionrw.Symbol{}, nil }
func (r *treeReader) ReadString() (string, error)             { return "", nil }
func (r *treeReader) ReadLobBytes() ([]byte, error)           { return nil, nil }

func mustPath(t *testing.T, fn func(b *ionpath.Builder) error) ionpath.Path {
	t.Helper()
	var b ionpath.Builder
	b.Start()
	if err := fn(&b); err != nil {
		t.Fatalf("building path: %v", err)
	}
	p, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return p
}

// TestFieldAtDepth3 registers (foo bar 2) against
// {abc: def, foo: {bar:[1, 2, 3]}}; the callback must fire exactly once,
// positioned on the scalar integer 3.
func TestFieldAtDepth3(t *testing.T) {
	tree := structNode(
		field("abc", &node{typ: ionrw.TypeSymbol}),
		field("foo", structNode(
			field("bar", listNode(intNode(1), intNode(2), intNode(3))),
		)),
	)

	ex, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := mustPath(t, func(b *ionpath.Builder) error {
		if err := b.AppendField("foo"); err != nil {
			return err
		}
		if err := b.AppendField("bar"); err != nil {
			return err
		}
		return b.AppendOrdinal(2)
	})

	var fired int
	var got int64
	if _, err := ex.AddPath(path, func(r ionrw.Reader, _ ionpath.Path) (ControlDirective, error) {
		fired++
		v, err := r.ReadInt()
		got = v
		return Next, err
	}); err != nil {
		t.Fatal(err)
	}

	r := newTreeReader(tree)
	if err := ex.Match(r); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
	if got != 3 {
		t.Fatalf("callback saw %d, want 3", got)
	}
}

// TestWildcardFanOut registers (foo bar $ion_wildcard::'*') against the
// same input; it fires 3 times, reading 1, 2, 3 in order.
func TestWildcardFanOut(t *testing.T) {
	tree := structNode(
		field("abc", &node{typ: ionrw.TypeSymbol}),
		field("foo", structNode(
			field("bar", listNode(intNode(1), intNode(2), intNode(3))),
		)),
	)

	ex, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := mustPath(t, func(b *ionpath.Builder) error {
		if err := b.AppendField("foo"); err != nil {
			return err
		}
		if err := b.AppendField("bar"); err != nil {
			return err
		}
		return b.AppendWildcard()
	})

	var got []int64
	if _, err := ex.AddPath(path, func(r ionrw.Reader, _ ionpath.Path) (ControlDirective, error) {
		v, err := r.ReadInt()
		got = append(got, v)
		return Next, err
	}); err != nil {
		t.Fatal(err)
	}

	if err := ex.Match(newTreeReader(tree)); err != nil {
		t.Fatalf("Match: %v", err)
	}
	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("fired %d times, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestNonTerminalWildcard registers (foo bar $ion_wildcard::'*' baz)
// against {foo:{bar:[{baz:1}, {zar:2}, {baz:3}]}}; it fires exactly
// twice, reading 1 and 3 — the middle element has no "baz" field so its
// wildcard-matched prefix dies without producing a leaf match.
func TestNonTerminalWildcard(t *testing.T) {
	tree := structNode(
		field("foo", structNode(
			field("bar", listNode(
				structNode(field("baz", intNode(1))),
				structNode(field("zar", intNode(2))),
				structNode(field("baz", intNode(3))),
			)),
		)),
	)

	ex, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := mustPath(t, func(b *ionpath.Builder) error {
		if err := b.AppendField("foo"); err != nil {
			return err
		}
		if err := b.AppendField("bar"); err != nil {
			return err
		}
		if err := b.AppendWildcard(); err != nil {
			return err
		}
		return b.AppendField("baz")
	})

	var got []int64
	if _, err := ex.AddPath(path, func(r ionrw.Reader, _ ionpath.Path) (ControlDirective, error) {
		v, err := r.ReadInt()
		got = append(got, v)
		return Next, err
	}); err != nil {
		t.Fatal(err)
	}

	if err := ex.Match(newTreeReader(tree)); err != nil {
		t.Fatalf("Match: %v", err)
	}
	want := []int64{1, 3}
	if len(got) != len(want) {
		t.Fatalf("fired %d times, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestMultiplePathsSharePass confirms a single Match call evaluates more
// than one registered path concurrently rather than needing one pass per
// path.
func TestMultiplePathsSharePass(t *testing.T) {
	tree := structNode(
		field("foo", intNode(1)),
		field("bar", intNode(2)),
	)

	ex, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	var sawFoo, sawBar bool
	pFoo := mustPath(t, func(b *ionpath.Builder) error { return b.AppendField("foo") })
	pBar := mustPath(t, func(b *ionpath.Builder) error { return b.AppendField("bar") })
	if _, err := ex.AddPath(pFoo, func(r ionrw.Reader, _ ionpath.Path) (ControlDirective, error) {
		sawFoo = true
		return Next, nil
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := ex.AddPath(pBar, func(r ionrw.Reader, _ ionpath.Path) (ControlDirective, error) {
		sawBar = true
		return Next, nil
	}); err != nil {
		t.Fatal(err)
	}

	if err := ex.Match(newTreeReader(tree)); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !sawFoo || !sawBar {
		t.Fatalf("sawFoo=%v sawBar=%v, want both true", sawFoo, sawBar)
	}
}

// TestStepOutAbandonsDeepScan verifies a callback's StepOut directive
// stops the matcher from visiting later siblings at the levels it asked
// to ascend past.
func TestStepOutAbandonsDeepScan(t *testing.T) {
	tree := listNode(
		structNode(field("x", intNode(1))),
		structNode(field("x", intNode(2))),
		structNode(field("x", intNode(3))),
	)

	ex, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := mustPath(t, func(b *ionpath.Builder) error {
		if err := b.AppendWildcard(); err != nil {
			return err
		}
		return b.AppendField("x")
	})

	var got []int64
	if _, err := ex.AddPath(path, func(r ionrw.Reader, _ ionpath.Path) (ControlDirective, error) {
		v, err := r.ReadInt()
		got = append(got, v)
		if v == 1 {
			return StepOut(2), nil
		}
		return Next, err
	}); err != nil {
		t.Fatal(err)
	}

	if err := ex.Match(newTreeReader(tree)); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want only [1] after stepping out past the list", got)
	}
}

func TestNewRejectsOversizedMaxNumPaths(t *testing.T) {
	if _, err := New(Options{MaxNumPaths: MaxNumPaths + 1}); err == nil {
		t.Fatal("New with MaxNumPaths past the bitmap width succeeded, want error")
	}
}

func TestMatchRequiresTopLevelByDefault(t *testing.T) {
	tree := structNode(field("x", intNode(1)))
	ex, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	r := newTreeReader(tree)
	if _, _, err := r.Next(); err != nil {
		t.Fatal(err)
	}
	if err := r.StepIn(); err != nil {
		t.Fatal(err)
	}
	if err := ex.Match(r); err == nil {
		t.Fatal("Match below the top level succeeded without MatchRelativePaths, want error")
	}
}
