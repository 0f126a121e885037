package format

import (
	"errors"
	"testing"
)

func buildSfromHeader(sections []SectionEntry, fileSize int) []byte {
	b := make([]byte, fileSize)
	h := SfromHeader{
		Version:      SfromVersion,
		Platform:     PlatformSNES,
		FileSize:     uint32(fileSize),
		SectionCount: uint32(len(sections)),
	}
	h.Encode(b)
	for i, e := range sections {
		e.Encode(b, SfromHeaderSize+i*SectionEntrySize)
	}
	return b
}

func TestParseSfromHeader(t *testing.T) {
	b := buildSfromHeader(nil, SfromHeaderSize)
	h, err := ParseSfromHeader(b)
	if err != nil {
		t.Fatalf("ParseSfromHeader: %v", err)
	}
	if h.Version != SfromVersion || h.Platform != PlatformSNES || h.SectionCount != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestParseSfromHeaderBadMagic(t *testing.T) {
	b := buildSfromHeader(nil, SfromHeaderSize)
	b[0] = 'X'
	if _, err := ParseSfromHeader(b); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestParseSfromHeaderTruncated(t *testing.T) {
	if _, err := ParseSfromHeader([]byte{'S', 'F', 'R'}); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestParseSectionTable(t *testing.T) {
	sections := []SectionEntry{
		{Offset: 0x40, Length: 0x20, Kind: SectionROM},
		{Offset: 0x60, Length: 0x10, Kind: SectionMetadata},
	}
	b := buildSfromHeader(sections, 0x80)
	got, err := ParseSectionTable(b, 2)
	if err != nil {
		t.Fatalf("ParseSectionTable: %v", err)
	}
	if len(got) != 2 || got[0] != sections[0] || got[1] != sections[1] {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestParseSectionTableOutOfBounds(t *testing.T) {
	sections := []SectionEntry{
		{Offset: 0x40, Length: 0x1000, Kind: SectionROM},
		{Offset: 0x60, Length: 0x10, Kind: SectionMetadata},
	}
	b := buildSfromHeader(sections, 0x80)
	if _, err := ParseSectionTable(b, 2); !errors.Is(err, ErrMalformedSectionTable) {
		t.Fatalf("expected ErrMalformedSectionTable, got %v", err)
	}
}

func TestParseSectionTableDuplicateRequiredKind(t *testing.T) {
	sections := []SectionEntry{
		{Offset: 0x40, Length: 0x08, Kind: SectionROM},
		{Offset: 0x48, Length: 0x08, Kind: SectionROM},
		{Offset: 0x60, Length: 0x10, Kind: SectionMetadata},
	}
	b := buildSfromHeader(sections, 0x80)
	if _, err := ParseSectionTable(b, 3); !errors.Is(err, ErrMalformedSectionTable) {
		t.Fatalf("expected ErrMalformedSectionTable, got %v", err)
	}
}

func TestParseSectionTableMissingMetadata(t *testing.T) {
	sections := []SectionEntry{
		{Offset: 0x40, Length: 0x20, Kind: SectionROM},
	}
	b := buildSfromHeader(sections, 0x80)
	if _, err := ParseSectionTable(b, 1); !errors.Is(err, ErrMalformedSectionTable) {
		t.Fatalf("expected ErrMalformedSectionTable, got %v", err)
	}
}
