package vc

import (
	"github.com/openretro/vckit/internal/codec"
	"github.com/openretro/vckit/internal/format"
)

// Re-export the model types from the internal packages so users only need to
// import pkg/vc.

// Platform identifies the console variant a record or container belongs to.
type Platform = format.Platform

// Platform tags stored on disk.
const (
	PlatformGBA  = format.PlatformGBA
	PlatformSNES = format.PlatformSNES
)

// Section kinds stored in the SFROM section table.
type SectionKind = format.SectionKind

const (
	SectionROM       = format.SectionROM
	SectionMetadata  = format.SectionMetadata
	SectionPCM       = format.SectionPCM
	SectionPCMFooter = format.SectionPCMFooter
)

// Core model types.
type (
	Section      = format.SectionEntry
	IndexEntry   = format.IndexEntry
	OpaqueRegion = format.OpaqueRegion
	TitleRecord  = codec.TitleRecord
	GBAFields    = codec.GBAFields
	SNESFields   = codec.SNESFields
	Metadata     = codec.Metadata
	GBAMetadata  = codec.GBAMetadata
	SNESMetadata = codec.SNESMetadata
)

// Record flag bits.
const (
	FlagSimultaneous  = codec.FlagSimultaneous
	FlagTitleShiftJIS = codec.FlagTitleShiftJIS
)

// HeaderInfo summarizes the fixed header of a parsed document.
type HeaderInfo struct {
	Version  uint32
	Platform Platform
}

// SfromDocument is a parsed SFROM container. It owns a private copy of the
// source bytes; all offsets and opaque regions are relative to that buffer.
// Documents are only created by a successful parse and are edited exclusively
// through an SfromSession.
type SfromDocument struct {
	raw []byte

	Header   HeaderInfo
	FileSize uint32
	Sections []Section
	ROM      OpaqueRegion
	Metadata *Metadata

	// Checksum is the stored trailing checksum; ChecksumOK reports whether
	// it matched the computed value at parse time.
	Checksum   uint32
	ChecksumOK bool

	sessionActive bool
}

// Bytes returns the document's backing buffer. Callers must not modify it.
func (d *SfromDocument) Bytes() []byte { return d.raw }

// ROMData returns the ROM payload view. The slice aliases the document
// buffer.
func (d *SfromDocument) ROMData() ([]byte, error) {
	return d.ROM.Bytes(d.raw)
}

// Tags returns the raw game-tag stream trailing the fixed metadata record.
// The slice aliases the document buffer.
func (d *SfromDocument) Tags() ([]byte, error) {
	return d.Metadata.Tags.Bytes(d.raw)
}

// DatabaseDocument is a parsed virtual console database. It owns a private
// copy of the source bytes. Record ids are unique; Index preserves the
// on-disk record order, which is significant and survives serialization.
type DatabaseDocument struct {
	raw  []byte
	pool []byte // string pool view into raw

	Header  HeaderInfo
	Index   []IndexEntry
	Records map[uint32]*TitleRecord

	Checksum   uint32
	ChecksumOK bool

	// nextID is the monotonic id counter for AddRecord: one past the highest
	// id ever seen, never decremented, so removed ids are not reassigned.
	nextID uint32

	sessionActive bool
}

// Bytes returns the document's backing buffer. Callers must not modify it.
func (d *DatabaseDocument) Bytes() []byte { return d.raw }

// Len returns the number of records.
func (d *DatabaseDocument) Len() int { return len(d.Index) }

// RecordIDs returns the record ids in on-disk order.
func (d *DatabaseDocument) RecordIDs() []uint32 {
	ids := make([]uint32, len(d.Index))
	for i, e := range d.Index {
		ids[i] = e.ID
	}
	return ids
}

// Record returns the record with the given id, or nil when absent.
func (d *DatabaseDocument) Record(id uint32) *TitleRecord {
	return d.Records[id]
}
