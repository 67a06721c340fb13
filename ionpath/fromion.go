package ionpath

import (
	"fmt"

	"github.com/ion-core/ionx/ionerr"
	"github.com/ion-core/ionx/ionrw"
)

// wildcardAnnotation is the sentinel first annotation that turns a
// string or symbol path component into a wildcard instead of a literal
// field-name match. Marking wildcards by annotation rather than by the
// text "*" leaves a plain "*" string or symbol free to name a field
// literally called "*", exactly as ion-c's
// ion_extractor_path_create_from_ion does.
const wildcardAnnotation = "$ion_wildcard"

// FromIon compiles a Path from an Ion sexp or list, positioned at the
// current (not yet stepped-into) value of r. Each child of the container
// becomes one Component:
//
//   - an int value becomes an Ordinal component
//   - a string or symbol becomes a Field component, naming the value's
//     text, unless its first annotation is literally "$ion_wildcard", in
//     which case it becomes a Wildcard component
//
// Following ion-c's own implementation, this runs in two passes: the
// first walks the container once, validating every child and recording
// it in a scratch slice; the second replays the scratch slice through a
// [Builder]. Splitting the walk this way means a malformed component
// deep in the sequence is reported before any partial Path is built,
// instead of leaving a half-finished Builder for the caller to clean up.
func FromIon(r ionrw.Reader) (Path, error) {
	raw, err := scanPathComponents(r)
	if err != nil {
		return Path{}, err
	}
	if len(raw) == 0 {
		return Path{}, fmt.Errorf("ionpath: empty path expression: %w", ionerr.ErrInvalidState)
	}

	var b Builder
	b.Start()
	for _, c := range raw {
		switch c.Kind {
		case Field:
			err = b.AppendField(c.FieldName)
		case Ordinal:
			err = b.AppendOrdinal(c.Ordinal)
		case Wildcard:
			err = b.AppendWildcard()
		}
		if err != nil {
			return Path{}, err
		}
	}
	return b.Finish()
}

func scanPathComponents(r ionrw.Reader) ([]Component, error) {
	t := r.Type()
	if t != ionrw.TypeSexp && t != ionrw.TypeList {
		return nil, fmt.Errorf("ionpath: path expression must be a sexp or list, got %s: %w", t, ionerr.ErrInvalidArg)
	}
	if err := r.StepIn(); err != nil {
		return nil, err
	}
	defer r.StepOut()

	var out []Component
	for {
		childType, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		c, err := scanPathComponent(r, childType)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func scanPathComponent(r ionrw.Reader, t ionrw.IonType) (Component, error) {
	switch t {
	case ionrw.TypeInt:
		v, err := r.ReadInt()
		if err != nil {
			return Component{}, err
		}
		if v < 0 {
			return Component{}, fmt.Errorf("ionpath: negative ordinal %d in path expression: %w", v, ionerr.ErrInvalidArg)
		}
		return ordinalComponent(int(v)), nil

	case ionrw.TypeString, ionrw.TypeSymbol:
		// The wildcard escape looks only at the *first* annotation, not
		// the whole sequence: an incidentally-present $ion_wildcard
		// later in the list does not turn a real field name into a
		// wildcard.
		anns, err := r.Annotations()
		if err != nil {
			return Component{}, err
		}
		if len(anns) > 0 && anns[0].HasText && anns[0].Text == wildcardAnnotation {
			return wildcardComponent(), nil
		}

		var text string
		if t == ionrw.TypeString {
			text, err = r.ReadString()
		} else {
			var sym ionrw.Symbol
			sym, err = r.ReadSymbol()
			text = sym.String()
		}
		if err != nil {
			return Component{}, err
		}
		return fieldComponent(text), nil

	default:
		return Component{}, fmt.Errorf("ionpath: unsupported path component type %s: %w", t, ionerr.ErrInvalidArg)
	}
}
