package format

import (
	"bytes"
	"fmt"

	"github.com/openretro/vckit/internal/buf"
)

// DatabaseHeader captures the fixed database header fields preceding the
// record index. See consts.go for the on-disk diagram.
type DatabaseHeader struct {
	Version     uint32
	RecordCount uint32
	PoolOffset  uint32
	PoolLength  uint32
}

// ParseDatabaseHeader validates and extracts the fixed fields from a
// database header. The string pool range is bounds-checked here so later
// reference resolution only needs to check against the pool itself.
func ParseDatabaseHeader(b []byte) (DatabaseHeader, error) {
	if len(b) < DBHeaderSize {
		return DatabaseHeader{}, fmt.Errorf("database header: %w (have %d, need %d)",
			ErrTruncated, len(b), DBHeaderSize)
	}
	if !bytes.Equal(b[:SignatureSize], DBSignature) {
		return DatabaseHeader{}, fmt.Errorf("database header: %w (found % x)",
			ErrSignatureMismatch, b[:SignatureSize])
	}
	h := DatabaseHeader{
		Version:     ReadU32(b, DBVersionOffset),
		RecordCount: ReadU32(b, DBRecordCountOffset),
		PoolOffset:  ReadU32(b, DBPoolOffsetOffset),
		PoolLength:  ReadU32(b, DBPoolLengthOffset),
	}
	if !buf.Has(b, int(h.PoolOffset), int(h.PoolLength)) {
		return DatabaseHeader{}, fmt.Errorf("database header: string pool [%#x,+%d) outside file of %d bytes: %w",
			h.PoolOffset, h.PoolLength, len(b), ErrOutOfBounds)
	}
	return h, nil
}

// Encode writes the header into b, which must hold at least DBHeaderSize
// bytes.
func (h DatabaseHeader) Encode(b []byte) {
	copy(b, DBSignature)
	PutU32(b, DBVersionOffset, h.Version)
	PutU32(b, DBRecordCountOffset, h.RecordCount)
	PutU32(b, DBPoolOffsetOffset, h.PoolOffset)
	PutU32(b, DBPoolLengthOffset, h.PoolLength)
}

// IndexEntry is one row of the record index. Offset is absolute within the
// file; insertion order is the on-disk record order and is significant.
type IndexEntry struct {
	ID     uint32
	Offset uint32
	Length uint32
}

// ParseRecordIndex decodes count entries starting at DBHeaderSize. Entry ids
// must be pairwise distinct (ErrDuplicateRecordID) and each declared record
// frame must lie inside the buffer (ErrOutOfBounds).
func ParseRecordIndex(b []byte, count uint32) ([]IndexEntry, error) {
	end, err := buf.CheckListBounds(len(b), DBHeaderSize, int(count), IndexEntrySize)
	if err != nil {
		return nil, fmt.Errorf("record index: %v: %w", err, ErrTruncated)
	}
	entries := make([]IndexEntry, 0, count)
	seen := make(map[uint32]struct{}, count)
	for off := DBHeaderSize; off < end; off += IndexEntrySize {
		e := IndexEntry{
			ID:     ReadU32(b, off+IndexEntryIDField),
			Offset: ReadU32(b, off+IndexEntryOffsetField),
			Length: ReadU32(b, off+IndexEntryLengthField),
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("record index: id %d appears twice: %w", e.ID, ErrDuplicateRecordID)
		}
		seen[e.ID] = struct{}{}
		if !buf.Has(b, int(e.Offset), int(e.Length)) {
			return nil, fmt.Errorf("record index: id %d frame [%#x,+%d) outside file of %d bytes: %w",
				e.ID, e.Offset, e.Length, len(b), ErrOutOfBounds)
		}
		if e.Length < RecordMinSize {
			return nil, fmt.Errorf("record index: id %d frame of %d bytes, need at least %d: %w",
				e.ID, e.Length, RecordMinSize, ErrTruncated)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Encode writes the entry into b at off.
func (e IndexEntry) Encode(b []byte, off int) {
	PutU32(b, off+IndexEntryIDField, e.ID)
	PutU32(b, off+IndexEntryOffsetField, e.Offset)
	PutU32(b, off+IndexEntryLengthField, e.Length)
}

// Ref is an { offset, length } reference into the string pool, relative to
// the pool start. The pool carries no terminators; consumers resolve by
// range, not identity.
type Ref struct {
	Offset uint32
	Length uint32
}

// Resolve returns the referenced pool bytes. The returned slice aliases pool.
func (r Ref) Resolve(pool []byte) ([]byte, error) {
	s, ok := buf.Slice(pool, int(r.Offset), int(r.Length))
	if !ok {
		return nil, fmt.Errorf("pool ref [%#x,+%d): %w (pool %d bytes)",
			r.Offset, r.Length, ErrDanglingReference, len(pool))
	}
	return s, nil
}
