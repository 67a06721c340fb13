package ionpath

import (
	"fmt"

	"github.com/ion-core/ionx/ionerr"
)

// MaxPathLength is the absolute ceiling on how many components a single
// Path may carry: component indices are stored in an 8-bit field, per
// ion-c's ION_EXTRACTOR_MAX_PATH_LENGTH_LIMIT (UINT8_MAX). An Extractor
// narrows this further via its own configurable Options.MaxPathLength,
// which must itself fall within [1, MaxPathLength].
const MaxPathLength = 255

// Builder constructs a [Path] imperatively, one component at a time,
// mirroring ion-c's ion_extractor_path_append_field/_ordinal/_wildcard
// triplet. Start a Builder, append components in root-to-leaf order, then
// Finish to obtain the compiled Path.
//
// A Builder is not safe for concurrent use. It may build several paths in
// turn: Start discards whatever the previous path left behind, and Finish
// copies the components out, so no Reset is needed between paths.
type Builder struct {
	components []Component
	inProgress bool
}

// Start begins a new path, discarding any components appended without a
// matching Finish. Calling Start again without Finishing is equivalent to
// Reset followed by Start.
func (b *Builder) Start() {
	b.components = b.components[:0]
	b.inProgress = true
}

// AppendField appends a field-name predicate. name must be non-empty.
func (b *Builder) AppendField(name string) error {
	if name == "" {
		return fmt.Errorf("ionpath: empty field name: %w", ionerr.ErrInvalidArg)
	}
	return b.append(fieldComponent(name))
}

// AppendOrdinal appends a zero-based ordinal predicate.
func (b *Builder) AppendOrdinal(i int) error {
	if i < 0 {
		return fmt.Errorf("ionpath: negative ordinal %d: %w", i, ionerr.ErrInvalidArg)
	}
	return b.append(ordinalComponent(i))
}

// AppendWildcard appends a predicate matching any value.
func (b *Builder) AppendWildcard() error {
	return b.append(wildcardComponent())
}

func (b *Builder) append(c Component) error {
	if !b.inProgress {
		return fmt.Errorf("ionpath: append without Start: %w", ionerr.ErrInvalidState)
	}
	if len(b.components) >= MaxPathLength {
		return fmt.Errorf("ionpath: path exceeds %d components: %w", MaxPathLength, ionerr.ErrInvalidArg)
	}
	b.components = append(b.components, c)
	return nil
}

// Finish completes the path in progress and returns it. The returned
// Path's ID is always 0; the Extractor that registers the path assigns
// its real ID.
func (b *Builder) Finish() (Path, error) {
	if !b.inProgress {
		return Path{}, fmt.Errorf("ionpath: Finish without Start: %w", ionerr.ErrInvalidState)
	}
	if len(b.components) == 0 {
		return Path{}, fmt.Errorf("ionpath: empty path: %w", ionerr.ErrInvalidState)
	}
	out := make([]Component, len(b.components))
	copy(out, b.components)
	b.inProgress = false
	return Path{Components: out}, nil
}

// Reset discards any path in progress, readying the Builder for Start.
func (b *Builder) Reset() {
	b.components = nil
	b.inProgress = false
}
