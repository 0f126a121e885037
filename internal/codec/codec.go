// Package codec implements the per-platform strategies for decoding and
// encoding title records and SFROM metadata records. Each platform defines
// its own fixed-field layout; the strategy is always selected by the stored
// platform tag, never by sniffing content shape.
package codec

import (
	"fmt"
	"sort"

	"github.com/openretro/vckit/internal/format"
)

// Codec is the capability set one platform variant must provide. Adding a
// platform means registering a new implementation; existing ones stay
// untouched.
type Codec interface {
	// Platform returns the tag this codec is registered under.
	Platform() format.Platform

	// DecodeRecord decodes one database record frame, resolving variable
	// field references against the string pool.
	DecodeRecord(frame, pool []byte) (*TitleRecord, error)

	// EncodeRecord re-encodes a record, interning its variable fields into
	// the pool builder. The opaque tail is appended verbatim.
	EncodeRecord(rec *TitleRecord, pool *PoolBuilder) ([]byte, error)

	// DecodeMetadata decodes the fixed metadata record at the start of an
	// SFROM metadata section. b is the whole file; the section is
	// [secOff, secOff+secLen). Whatever follows the fixed record becomes
	// the tag-stream opaque region.
	DecodeMetadata(b []byte, secOff, secLen int) (*Metadata, error)

	// EncodeMetadata writes the fixed metadata fields into dst, which must
	// hold at least MetadataFixedSize bytes.
	EncodeMetadata(meta *Metadata, dst []byte) error

	// MetadataFixedSize returns the byte size of the fixed metadata record.
	MetadataFixedSize() int

	// MaxTitleLen returns the platform's title byte limit.
	MaxTitleLen() int
}

var registry = map[format.Platform]Codec{
	format.PlatformGBA:  gbaCodec{},
	format.PlatformSNES: snesCodec{},
}

// ForPlatform returns the codec registered for the given tag.
func ForPlatform(p format.Platform) (Codec, error) {
	c, ok := registry[p]
	if !ok {
		return nil, fmt.Errorf("platform tag %d: %w", uint32(p), format.ErrUnsupportedPlatform)
	}
	return c, nil
}

// Platforms returns the registered platform tags in ascending order.
func Platforms() []format.Platform {
	out := make([]format.Platform, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
