package format

import (
	"bytes"
	"fmt"

	"github.com/openretro/vckit/internal/buf"
)

// SfromHeader captures the fixed SFROM header fields preceding the section
// table. See consts.go for the on-disk diagram.
type SfromHeader struct {
	Version      uint32
	Platform     Platform
	FileSize     uint32
	SectionCount uint32
}

// ParseSfromHeader validates and extracts the fixed fields from an SFROM
// header.
func ParseSfromHeader(b []byte) (SfromHeader, error) {
	if len(b) < SfromHeaderSize {
		return SfromHeader{}, fmt.Errorf("sfrom header: %w (have %d, need %d)",
			ErrTruncated, len(b), SfromHeaderSize)
	}
	if !bytes.Equal(b[:SignatureSize], SfromSignature) {
		return SfromHeader{}, fmt.Errorf("sfrom header: %w (found % x)",
			ErrSignatureMismatch, b[:SignatureSize])
	}
	h := SfromHeader{
		Version:      ReadU32(b, SfromVersionOffset),
		Platform:     Platform(ReadU32(b, SfromPlatformOffset)),
		FileSize:     ReadU32(b, SfromFileSizeOffset),
		SectionCount: ReadU32(b, SfromSectionCountOffset),
	}
	if h.SectionCount > SfromMaxSections {
		return SfromHeader{}, fmt.Errorf("sfrom header: section count %d exceeds %d: %w",
			h.SectionCount, SfromMaxSections, ErrMalformedSectionTable)
	}
	return h, nil
}

// Encode writes the header into b, which must hold at least SfromHeaderSize
// bytes.
func (h SfromHeader) Encode(b []byte) {
	copy(b, SfromSignature)
	PutU32(b, SfromVersionOffset, h.Version)
	PutU32(b, SfromPlatformOffset, uint32(h.Platform))
	PutU32(b, SfromFileSizeOffset, h.FileSize)
	PutU32(b, SfromSectionCountOffset, h.SectionCount)
}

// SectionEntry is one row of the SFROM section table. Offsets are absolute
// within the file.
type SectionEntry struct {
	Offset uint32
	Length uint32
	Kind   SectionKind
}

// ParseSectionTable decodes count entries starting at SfromHeaderSize and
// validates each against the buffer bounds. Required kinds (ROM, metadata)
// must appear exactly once; violations fail with ErrMalformedSectionTable.
func ParseSectionTable(b []byte, count uint32) ([]SectionEntry, error) {
	end, err := buf.CheckListBounds(len(b), SfromHeaderSize, int(count), SectionEntrySize)
	if err != nil {
		return nil, fmt.Errorf("section table: %v: %w", err, ErrMalformedSectionTable)
	}
	entries := make([]SectionEntry, 0, count)
	var romSeen, metaSeen int
	for off := SfromHeaderSize; off < end; off += SectionEntrySize {
		e := SectionEntry{
			Offset: ReadU32(b, off+SectionEntryOffsetField),
			Length: ReadU32(b, off+SectionEntryLengthField),
			Kind:   SectionKind(ReadU32(b, off+SectionEntryKindField)),
		}
		if !buf.Has(b, int(e.Offset), int(e.Length)) {
			return nil, fmt.Errorf("section table entry %d (kind %d): [%#x,+%d) outside file of %d bytes: %w",
				len(entries), e.Kind, e.Offset, e.Length, len(b), ErrMalformedSectionTable)
		}
		switch e.Kind {
		case SectionROM:
			romSeen++
		case SectionMetadata:
			metaSeen++
		}
		entries = append(entries, e)
	}
	if romSeen != 1 || metaSeen != 1 {
		return nil, fmt.Errorf("section table: ROM sections=%d metadata sections=%d, want exactly 1 of each: %w",
			romSeen, metaSeen, ErrMalformedSectionTable)
	}
	return entries, nil
}

// Encode writes the entry into b at off.
func (e SectionEntry) Encode(b []byte, off int) {
	PutU32(b, off+SectionEntryOffsetField, e.Offset)
	PutU32(b, off+SectionEntryLengthField, e.Length)
	PutU32(b, off+SectionEntryKindField, uint32(e.Kind))
}
