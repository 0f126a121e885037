package codec

import (
	"fmt"

	"github.com/openretro/vckit/internal/format"
)

// Variable-field reference order within a record frame. Both platforms store
// the same three references.
const (
	refTitle = iota
	refCode
	refPublisher
)

func checkFrame(frame []byte, want format.Platform) error {
	if len(frame) < format.RecordMinSize {
		return fmt.Errorf("record frame: %w (have %d, need %d)",
			format.ErrTruncated, len(frame), format.RecordMinSize)
	}
	if got := format.Platform(format.ReadU32(frame, format.RecordPlatformOffset)); got != want {
		return fmt.Errorf("record frame: stored platform tag %d, codec expects %d: %w",
			uint32(got), uint32(want), format.ErrUnsupportedPlatform)
	}
	return nil
}

func readRefs(frame []byte) [format.RecordRefCount]format.Ref {
	var refs [format.RecordRefCount]format.Ref
	for i := range refs {
		off := format.RecordRefsOffset + i*format.RefSize
		refs[i] = format.Ref{
			Offset: format.ReadU32(frame, off),
			Length: format.ReadU32(frame, off+4),
		}
	}
	return refs
}

func putRefs(frame []byte, refs [format.RecordRefCount]format.Ref) {
	for i, r := range refs {
		off := format.RecordRefsOffset + i*format.RefSize
		format.PutU32(frame, off, r.Offset)
		format.PutU32(frame, off+4, r.Length)
	}
}

func opaqueTail(frame []byte) []byte {
	tail := frame[format.RecordMinSize:]
	if len(tail) == 0 {
		return nil
	}
	out := make([]byte, len(tail))
	copy(out, tail)
	return out
}
