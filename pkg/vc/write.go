package vc

import (
	"fmt"

	"github.com/openretro/vckit/internal/codec"
	"github.com/openretro/vckit/internal/format"
)

// patchChecksum returns a copy of raw with the trailing checksum field
// recomputed. On a valid file this reproduces the input exactly.
func patchChecksum(raw []byte, kind format.ChecksumKind) []byte {
	out := make([]byte, len(raw))
	copy(out, raw)
	body := out[:len(out)-format.ChecksumSize]
	format.PutU32(out, len(out)-format.ChecksumSize, format.Compute(kind, body))
	return out
}

// serializeSfrom re-emits an SFROM container after metadata mutation. Only
// the known fixed metadata fields are re-encoded; the ROM payload, the
// game-tag stream, any padding, and unrecognized sections are reproduced from
// the original buffer. Fixed metadata never changes length, so section
// offsets are stable and only the checksum needs recomputing.
func serializeSfrom(d *SfromDocument) ([]byte, error) {
	out := make([]byte, len(d.raw))
	copy(out, d.raw)

	h := format.SfromHeader{
		Version:      d.Header.Version,
		Platform:     d.Header.Platform,
		FileSize:     d.FileSize,
		SectionCount: uint32(len(d.Sections)),
	}
	h.Encode(out)
	for i, e := range d.Sections {
		e.Encode(out, format.SfromHeaderSize+i*format.SectionEntrySize)
	}

	c, err := codec.ForPlatform(d.Header.Platform)
	if err != nil {
		return nil, err
	}
	for _, e := range d.Sections {
		if e.Kind != format.SectionMetadata {
			continue
		}
		if err := c.EncodeMetadata(d.Metadata, out[e.Offset:e.Offset+e.Length]); err != nil {
			return nil, err
		}
	}

	body := out[:len(out)-format.ChecksumSize]
	format.PutU32(out, len(out)-format.ChecksumSize, format.Compute(format.ChecksumSfrom, body))
	return out, nil
}

// serializeDatabase rebuilds a database from an in-memory model. Records
// are pooled in index order; string pool entries are appended in first-use
// order and deduplicated only when byte-identical. The layout is canonical:
// header, index, record frames, pool, checksum, with no padding.
func serializeDatabase(version uint32, srcIndex []IndexEntry, records map[uint32]*TitleRecord) ([]byte, []IndexEntry, error) {
	pool := codec.NewPoolBuilder()
	frames := make([][]byte, 0, len(srcIndex))
	for _, e := range srcIndex {
		rec := records[e.ID]
		if rec == nil {
			return nil, nil, fmt.Errorf("database: index entry %d has no record: %w",
				e.ID, ErrRecordNotFound)
		}
		c, err := codec.ForPlatform(rec.Platform)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", e.ID, err)
		}
		frame, err := c.EncodeRecord(rec, pool)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", e.ID, err)
		}
		frames = append(frames, frame)
	}

	recordsStart := format.DBHeaderSize + len(srcIndex)*format.IndexEntrySize
	total := recordsStart
	for _, f := range frames {
		total += len(f)
	}
	poolOffset := total
	total += pool.Len() + format.ChecksumSize

	out := make([]byte, total)
	h := format.DatabaseHeader{
		Version:     version,
		RecordCount: uint32(len(srcIndex)),
		PoolOffset:  uint32(poolOffset),
		PoolLength:  uint32(pool.Len()),
	}
	h.Encode(out)

	index := make([]IndexEntry, len(srcIndex))
	off := recordsStart
	for i, e := range srcIndex {
		index[i] = format.IndexEntry{ID: e.ID, Offset: uint32(off), Length: uint32(len(frames[i]))}
		index[i].Encode(out, format.DBHeaderSize+i*format.IndexEntrySize)
		copy(out[off:], frames[i])
		off += len(frames[i])
	}
	copy(out[poolOffset:], pool.Bytes())

	body := out[:len(out)-format.ChecksumSize]
	format.PutU32(out, len(out)-format.ChecksumSize, format.Compute(format.ChecksumDatabase, body))
	return out, index, nil
}
