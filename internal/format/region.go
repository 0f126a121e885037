package format

import (
	"fmt"

	"github.com/openretro/vckit/internal/buf"
)

// OpaqueRegion marks a byte range whose semantics are not modeled. Regions
// are carried from parse through serialize untouched; they reference the
// original buffer rather than copying it, so materialization is deferred
// until the bytes are actually needed.
type OpaqueRegion struct {
	Offset int
	Length int
}

// Empty reports whether the region covers no bytes.
func (r OpaqueRegion) Empty() bool {
	return r.Length == 0
}

// Bytes returns the region's view of b. The returned slice aliases b.
func (r OpaqueRegion) Bytes(b []byte) ([]byte, error) {
	s, ok := buf.Slice(b, r.Offset, r.Length)
	if !ok {
		return nil, fmt.Errorf("opaque region [%#x,+%d): %w (len %d)",
			r.Offset, r.Length, ErrOutOfBounds, len(b))
	}
	return s, nil
}
