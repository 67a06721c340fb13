package ionextract

import (
	"fmt"

	"github.com/ion-core/ionx/ionerr"
	"github.com/ion-core/ionx/ionrw"
)

// Match drives a single recursive-descent pass of r, firing every
// registered path's callback against the values it matches. r must sit
// at the top level (depth 0) unless the Extractor was built with
// Options.MatchRelativePaths, in which case the reader's current
// position is treated as the matching root.
//
// Match consumes the reader: by the time it returns, the cursor has
// walked past every top-level value (or every value at the starting
// depth, under MatchRelativePaths) that it needed to look at to resolve
// every path, skipping the children of any container no path reaches
// into.
func (e *Extractor) Match(r ionrw.Reader) error {
	if !e.opts.MatchRelativePaths && r.Depth() != 0 {
		return fmt.Errorf("ionextract: reader must be positioned at the top level to Match (depth %d): %w",
			r.Depth(), ionerr.ErrInvalidState)
	}
	pending, err := e.matchLevel(r, 0, e.initialActive())
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("ionextract: a callback requested stepping out %d levels past the matching root: %w",
			pending, ionerr.ErrInvalidState)
	}
	return nil
}

func (e *Extractor) initialActive() uint64 {
	var active uint64
	for _, rp := range e.paths {
		active |= uint64(1) << uint(rp.path.ID)
	}
	return active
}

// matchLevel scans the sequence of sibling values at depth, which is
// either the top level (depth 0, no enclosing StepIn/StepOut needed) or
// the contents of a container the caller has already stepped into. The
// depth-0 frame matches nothing itself: it carries every active path into
// each top-level container. At depth > 0, a value is tested against
// components[depth-1], and active holds one bit per path whose
// components[0:depth-1] all matched the ancestry leading here.
//
// The return value, pending, is non-zero when a callback fired at some
// value at or underneath this level and requested stepping out: this
// frame has already stepped itself out (if depth > 0), and pending counts
// the levels unwound so far including this one. A caller receiving 1 has
// nothing left to unwind and resumes at its next sibling; a larger value
// makes the caller step itself out too and return pending-1, until the
// request is absorbed or reaches Match's caller with levels still
// outstanding (an error).
func (e *Extractor) matchLevel(r ionrw.Reader, depth int, active uint64) (pending int, err error) {
	if active == 0 {
		return 0, nil
	}

	ordinal := 0
	for {
		t, ok, err := r.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, nil
		}

		hasField := r.IsInStruct()
		var fieldName string
		if hasField {
			sym, err := r.GetFieldName()
			if err != nil {
				return 0, err
			}
			fieldName = sym.String()
		}

		var nextActive uint64
		var fired []int
		for idx := range e.paths {
			bit := uint64(1) << uint(idx)
			if active&bit == 0 {
				continue
			}
			if depth == 0 {
				nextActive |= bit
				continue
			}
			rp := e.paths[idx]
			comp := rp.path.Components[depth-1]
			if !comp.Matches(fieldName, hasField, ordinal) {
				continue
			}
			if depth == rp.path.Len() {
				fired = append(fired, idx)
			} else {
				nextActive |= bit
			}
		}

		// Every path that matches this value at a leaf position fires
		// before any of them is allowed to steer the cursor: a deeper
		// path sharing the same prefix still gets to see the value.
		maxStepOut := 0
		for _, idx := range fired {
			rp := e.paths[idx]
			depthBefore := r.Depth()
			directive, err := rp.callback(r, rp.path)
			if err != nil {
				return 0, err
			}
			if r.Depth() != depthBefore {
				return 0, fmt.Errorf("ionextract: callback for path %d returned at depth %d, want %d: %w",
					rp.path.ID, r.Depth(), depthBefore, ionerr.ErrInvalidState)
			}
			if directive.Kind != DirectiveStepOut {
				continue
			}
			n := directive.StepOutLevels
			if n < 1 {
				n = 1
			}
			if n > maxStepOut {
				maxStepOut = n
			}
		}
		if maxStepOut > 0 {
			if depth > 0 {
				if err := r.StepOut(); err != nil {
					return 0, err
				}
			}
			return maxStepOut, nil
		}

		if nextActive != 0 && t.IsContainer() && !r.IsNull() {
			if err := r.StepIn(); err != nil {
				return 0, err
			}
			childPending, err := e.matchLevel(r, depth+1, nextActive)
			if err != nil {
				return 0, err
			}
			if childPending == 1 {
				ordinal++
				continue
			}
			if childPending > 0 {
				if depth > 0 {
					if err := r.StepOut(); err != nil {
						return 0, err
					}
				}
				return childPending - 1, nil
			}
			if err := r.StepOut(); err != nil {
				return 0, err
			}
		}

		ordinal++
	}
}
