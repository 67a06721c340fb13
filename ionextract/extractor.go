// Package ionextract implements the streaming path extractor: register up
// to 64 compiled [ionpath.Path] values, then make one recursive-descent
// pass over an [ionrw.Reader], invoking a callback once per path that
// matches the value currently under the cursor. A 64-bit "active path"
// bitmap tracks, at every depth, which registered paths still have a
// live prefix match, so a single pass evaluates every registered path
// concurrently instead of re-walking the tree once per path.
//
// This is a direct generalization of ion-c's ion_extractor_t /
// ion_extractor_match (ion_extractor.c): the bitmap-per-depth and
// recursive match_helper shape are carried over unchanged, Go-cased and
// built against the [ionrw.Reader] interface instead of an ION_READER.
package ionextract

import (
	"fmt"

	"github.com/ion-core/ionx/ionerr"
	"github.com/ion-core/ionx/ionpath"
	"github.com/ion-core/ionx/ionrw"
)

// MaxNumPaths is the hard ceiling on registered paths: the active-path
// bitmap is a single uint64, one bit per path, so path IDs must stay in
// [0, 64).
const MaxNumPaths = 64

// Options configures an Extractor at construction time.
type Options struct {
	// MaxPathLength bounds the component count of any one registered
	// path. Zero means ionpath.MaxPathLength.
	MaxPathLength int

	// MaxNumPaths bounds how many paths may be registered. Zero means
	// MaxNumPaths. Must not exceed MaxNumPaths.
	MaxNumPaths int

	// MatchRelativePaths allows Match to be called with the reader
	// positioned below depth 0 (e.g. already stepped into a container by
	// the caller), treating that position as the root for matching
	// purposes. Ion-c calls this "relative paths"; it defaults to off,
	// requiring Match to start at the top level, the stricter of the
	// two behaviors and the one that catches a misused cursor early.
	MatchRelativePaths bool
}

// Callback is invoked once a registered path matches the value currently
// under the reader's cursor. It returns a ControlDirective telling the
// matcher how to resume: continue at the same depth, or step out of one
// or more enclosing containers before resuming.
//
// The callback must not itself call Next/StepIn/StepOut beyond what its
// returned directive implies — the matcher owns cursor movement between
// callback invocations, exactly as in ion-c's extractor, where the
// callback only reads the current value.
type Callback func(r ionrw.Reader, path ionpath.Path) (ControlDirective, error)

// ControlDirectiveKind discriminates the two ways a Callback may ask the
// matcher to resume.
type ControlDirectiveKind uint8

const (
	// DirectiveNext resumes matching at the next sibling value.
	DirectiveNext ControlDirectiveKind = iota

	// DirectiveStepOut resumes after stepping out of StepOutLevels
	// enclosing containers (at least 1).
	DirectiveStepOut
)

// ControlDirective is a Callback's return instruction to the matcher.
type ControlDirective struct {
	Kind          ControlDirectiveKind
	StepOutLevels int
}

// Next is the zero-value ControlDirective, returned by a Callback that
// wants matching to simply continue.
var Next = ControlDirective{Kind: DirectiveNext}

// StepOut builds a ControlDirective asking the matcher to ascend n
// enclosing containers before resuming. n must be at least 1.
func StepOut(n int) ControlDirective {
	return ControlDirective{Kind: DirectiveStepOut, StepOutLevels: n}
}

type registeredPath struct {
	path     ionpath.Path
	callback Callback
}

// Extractor owns a set of registered paths and evaluates all of them in
// one pass of Match. It is not safe for concurrent use: Match maintains
// matcher state (the active-path bitmap, the pending step-out
// accumulator) across its own single call, but two goroutines calling
// Match on the same Extractor concurrently would race on that state.
type Extractor struct {
	opts  Options
	paths []registeredPath
}

// New creates an Extractor with the given options, applying defaults for
// zero-valued fields the way ion-c's ion_extractor_open does for its
// options struct.
func New(opts Options) (*Extractor, error) {
	if opts.MaxNumPaths == 0 {
		opts.MaxNumPaths = MaxNumPaths
	}
	if opts.MaxNumPaths > MaxNumPaths {
		return nil, fmt.Errorf("ionextract: MaxNumPaths %d exceeds the bitmap width %d: %w",
			opts.MaxNumPaths, MaxNumPaths, ionerr.ErrInvalidArg)
	}
	if opts.MaxPathLength == 0 {
		opts.MaxPathLength = ionpath.MaxPathLength
	}
	if opts.MaxPathLength < 1 || opts.MaxPathLength > ionpath.MaxPathLength {
		return nil, fmt.Errorf("ionextract: MaxPathLength %d outside [1, %d]: %w",
			opts.MaxPathLength, ionpath.MaxPathLength, ionerr.ErrInvalidArg)
	}
	return &Extractor{opts: opts}, nil
}

// AddPath registers path with cb, assigning it the next available path
// ID. Registration order determines callback invocation order among
// paths that match the same value (ascending path ID), matching ion-c's
// own "paths fire in registration order" guarantee.
func (e *Extractor) AddPath(path ionpath.Path, cb Callback) (ionpath.Path, error) {
	if len(e.paths) >= e.opts.MaxNumPaths {
		return ionpath.Path{}, fmt.Errorf("ionextract: extractor already holds %d paths: %w",
			e.opts.MaxNumPaths, ionerr.ErrNoMemory)
	}
	if path.Len() > e.opts.MaxPathLength {
		return ionpath.Path{}, fmt.Errorf("ionextract: path length %d exceeds MaxPathLength %d: %w",
			path.Len(), e.opts.MaxPathLength, ionerr.ErrInvalidArg)
	}
	if path.Len() == 0 {
		return ionpath.Path{}, fmt.Errorf("ionextract: empty path: %w", ionerr.ErrInvalidState)
	}
	path.ID = len(e.paths)
	e.paths = append(e.paths, registeredPath{path: path, callback: cb})
	return path, nil
}

// NumPaths reports how many paths are currently registered.
func (e *Extractor) NumPaths() int { return len(e.paths) }

// Close releases e's registered paths, matching ion-c's
// ion_extractor_close counterpart to ion_extractor_open. An Extractor
// is not usable after Close; discard it rather than calling AddPath or
// Match again.
func (e *Extractor) Close() error {
	e.paths = nil
	return nil
}
