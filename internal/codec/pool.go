package codec

import "github.com/openretro/vckit/internal/format"

// PoolBuilder accumulates the string pool during serialization. Entries are
// appended in first-use order; byte-identical entries are deduplicated. The
// dedup is a pure size optimization: consumers resolve by offset+length, not
// identity, so merging equal-valued entries cannot change meaning.
type PoolBuilder struct {
	data  []byte
	index map[string]format.Ref
}

// NewPoolBuilder returns an empty builder.
func NewPoolBuilder() *PoolBuilder {
	return &PoolBuilder{index: make(map[string]format.Ref)}
}

// Add interns b and returns its reference. Equal byte sequences share one
// pool entry.
func (p *PoolBuilder) Add(b []byte) format.Ref {
	if ref, ok := p.index[string(b)]; ok {
		return ref
	}
	ref := format.Ref{Offset: uint32(len(p.data)), Length: uint32(len(b))}
	p.data = append(p.data, b...)
	p.index[string(b)] = ref
	return ref
}

// Bytes returns the accumulated pool.
func (p *PoolBuilder) Bytes() []byte {
	return p.data
}

// Len returns the current pool size in bytes.
func (p *PoolBuilder) Len() int {
	return len(p.data)
}
