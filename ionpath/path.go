// Package ionpath implements the compiled path model the extractor engine
// matches against an Ion value tree: a Path is a sequence of Components,
// each a field name, a zero-based ordinal, or a wildcard, built either
// imperatively via [Builder] or parsed from an Ion sexp/list via
// [FromIon].
//
// This mirrors ion-c's ion_extractor_path_descriptor_t / path-append API
// (ion_extractor.h), generalized into its own package since this module
// splits the path model out from the extractor engine it feeds.
package ionpath

import "fmt"

// ComponentKind discriminates the three predicate shapes a path step can
// take, matching ion-c's ION_EXTRACTOR_FIELD / _ORDINAL / _WILDCARD enum.
type ComponentKind uint8

const (
	Field ComponentKind = iota
	Ordinal
	Wildcard
)

func (k ComponentKind) String() string {
	switch k {
	case Field:
		return "field"
	case Ordinal:
		return "ordinal"
	case Wildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Component is one step of a compiled Path: match a struct field by name,
// a sequence element by zero-based position, or match any value
// regardless of field name or position.
type Component struct {
	Kind      ComponentKind
	FieldName string
	Ordinal   int
}

func fieldComponent(name string) Component { return Component{Kind: Field, FieldName: name} }
func ordinalComponent(i int) Component      { return Component{Kind: Ordinal, Ordinal: i} }
func wildcardComponent() Component          { return Component{Kind: Wildcard} }

// Matches reports whether this component's predicate matches a value at
// the given field name (meaningful only inside a struct; pass hasField
// false otherwise) and zero-based ordinal.
func (c Component) Matches(fieldName string, hasField bool, ordinal int) bool {
	switch c.Kind {
	case Field:
		return hasField && fieldName == c.FieldName
	case Ordinal:
		return c.Ordinal == ordinal
	default: // Wildcard
		return true
	}
}

// Path is a compiled, immutable sequence of Components together with the
// small integer ID the extractor engine uses to address its active-path
// bitmap. IDs are assigned by the Extractor a Path is registered with,
// not by this package.
type Path struct {
	ID         int
	Components []Component
}

// Len returns the number of components in the path.
func (p Path) Len() int { return len(p.Components) }

// String renders p in a debugging-friendly sexp-like notation, e.g.
// ("foo" 0 *) for a path matching field "foo", then ordinal 0, then any
// value.
func (p Path) String() string {
	s := "("
	for i, c := range p.Components {
		if i > 0 {
			s += " "
		}
		switch c.Kind {
		case Field:
			s += fmt.Sprintf("%q", c.FieldName)
		case Ordinal:
			s += fmt.Sprintf("%d", c.Ordinal)
		case Wildcard:
			s += "*"
		}
	}
	return s + ")"
}
