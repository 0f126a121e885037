package vc

import (
	"fmt"
	"os"

	"github.com/openretro/vckit/internal/buf"
	"github.com/openretro/vckit/internal/codec"
	"github.com/openretro/vckit/internal/format"
)

// ParseSfrom parses an SFROM container. The document owns a private copy of
// data. Structural failures abort parsing; a checksum mismatch is reported
// through ChecksumOK unless opts.Strict is set.
func ParseSfrom(data []byte, opts *ParseOptions) (*SfromDocument, error) {
	if opts == nil {
		opts = &ParseOptions{}
	}
	if len(data) < format.SfromHeaderSize+format.ChecksumSize {
		return nil, fmt.Errorf("sfrom: %w (have %d bytes, need at least %d)",
			format.ErrTruncated, len(data), format.SfromHeaderSize+format.ChecksumSize)
	}
	raw := make([]byte, len(data))
	copy(raw, data)

	h, err := format.ParseSfromHeader(raw)
	if err != nil {
		return nil, err
	}
	if int(h.FileSize) != len(raw) {
		return nil, fmt.Errorf("sfrom: header declares %d bytes, buffer has %d: %w",
			h.FileSize, len(raw), format.ErrTruncated)
	}

	sections, err := format.ParseSectionTable(raw, h.SectionCount)
	if err != nil {
		return nil, err
	}

	c, err := codec.ForPlatform(h.Platform)
	if err != nil {
		return nil, err
	}

	doc := &SfromDocument{
		raw:      raw,
		Header:   HeaderInfo{Version: h.Version, Platform: h.Platform},
		FileSize: h.FileSize,
		Sections: sections,
	}
	for _, e := range sections {
		switch e.Kind {
		case format.SectionROM:
			doc.ROM = OpaqueRegion{Offset: int(e.Offset), Length: int(e.Length)}
		case format.SectionMetadata:
			doc.Metadata, err = c.DecodeMetadata(raw, int(e.Offset), int(e.Length))
			if err != nil {
				return nil, err
			}
		}
	}

	body := raw[:len(raw)-format.ChecksumSize]
	doc.Checksum = format.ReadU32(raw, len(raw)-format.ChecksumSize)
	doc.ChecksumOK = format.Verify(format.ChecksumSfrom, body, doc.Checksum)
	if opts.Strict && !doc.ChecksumOK {
		return nil, fmt.Errorf("sfrom: stored %#x, computed %#x: %w",
			doc.Checksum, format.Compute(format.ChecksumSfrom, body), format.ErrChecksumMismatch)
	}
	return doc, nil
}

// ParseSfromFile reads and parses the SFROM container at path.
func ParseSfromFile(path string, opts *ParseOptions) (*SfromDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sfrom: read %s: %w", path, err)
	}
	return ParseSfrom(data, opts)
}

// ParseDatabase parses a virtual console database. The document owns a
// private copy of data. Structural failures (duplicate record ids, dangling
// pool references, frames outside the buffer) abort parsing; a checksum
// mismatch is reported through ChecksumOK unless opts.Strict is set.
func ParseDatabase(data []byte, opts *ParseOptions) (*DatabaseDocument, error) {
	if opts == nil {
		opts = &ParseOptions{}
	}
	if len(data) < format.DBHeaderSize+format.ChecksumSize {
		return nil, fmt.Errorf("database: %w (have %d bytes, need at least %d)",
			format.ErrTruncated, len(data), format.DBHeaderSize+format.ChecksumSize)
	}
	raw := make([]byte, len(data))
	copy(raw, data)

	h, err := format.ParseDatabaseHeader(raw)
	if err != nil {
		return nil, err
	}
	index, err := format.ParseRecordIndex(raw, h.RecordCount)
	if err != nil {
		return nil, err
	}
	pool, _ := buf.Slice(raw, int(h.PoolOffset), int(h.PoolLength)) // bounds checked by header parse

	doc := &DatabaseDocument{
		raw:     raw,
		pool:    pool,
		Header:  HeaderInfo{Version: h.Version},
		Index:   index,
		Records: make(map[uint32]*TitleRecord, len(index)),
		nextID:  1,
	}
	for _, e := range index {
		if e.ID >= doc.nextID {
			doc.nextID = e.ID + 1
		}
	}
	for _, e := range index {
		frame := raw[e.Offset : e.Offset+e.Length]
		tag, err := format.CheckedReadU32(frame, format.RecordPlatformOffset)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", e.ID, err)
		}
		c, err := codec.ForPlatform(format.Platform(tag))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", e.ID, err)
		}
		rec, err := c.DecodeRecord(frame, pool)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", e.ID, err)
		}
		doc.Records[e.ID] = rec
	}

	body := raw[:len(raw)-format.ChecksumSize]
	doc.Checksum = format.ReadU32(raw, len(raw)-format.ChecksumSize)
	doc.ChecksumOK = format.Verify(format.ChecksumDatabase, body, doc.Checksum)
	if opts.Strict && !doc.ChecksumOK {
		return nil, fmt.Errorf("database: stored %#x, computed %#x: %w",
			doc.Checksum, format.Compute(format.ChecksumDatabase, body), format.ErrChecksumMismatch)
	}
	return doc, nil
}

// ParseDatabaseFile reads and parses the database at path.
func ParseDatabaseFile(path string, opts *ParseOptions) (*DatabaseDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("database: read %s: %w", path, err)
	}
	return ParseDatabase(data, opts)
}
