// Package format houses low-level decoders for the virtual console container
// formats: the SFROM title container and the per-platform title database. The
// goal is to keep the parsing focused, allocation-free where possible, and
// independent from the public API so higher-level packages can orchestrate
// the data in a more ergonomic form.
//
// Both formats are little-endian and reverse-engineered from observed files;
// anything not modeled here is carried through as an opaque byte range.
package format

var (
	// SfromSignature is the four-byte signature at the start of every SFROM
	// container.
	// Layout:
	//   0x00  'S' 'F' 'R' 'M'
	SfromSignature = []byte{'S', 'F', 'R', 'M'}

	// DBSignature is the four-byte signature at the start of every virtual
	// console database file.
	// Layout:
	//   0x00  'V' 'C' 'D' 'B'
	DBSignature = []byte{'V', 'C', 'D', 'B'}
)

// Platform identifies the console variant a record or container belongs to.
// The tag is stored on disk and is never inferred from content shape.
type Platform uint32

const (
	// PlatformGBA marks Game Boy Advance titles.
	PlatformGBA Platform = 1
	// PlatformSNES marks Super Famicom / SNES titles.
	PlatformSNES Platform = 2
)

// String returns the conventional short name for the platform tag.
func (p Platform) String() string {
	switch p {
	case PlatformGBA:
		return "GBA"
	case PlatformSNES:
		return "SNES"
	default:
		return "unknown"
	}
}

// ============================================================================
// SFROM Container Constants
// ============================================================================
// SFROM header layout:
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'S' 'F' 'R' 'M'
//	 0x04    4    Format version (0x100 in all observed files)
//	 0x08    4    Platform tag (1 = GBA, 2 = SNES)
//	 0x0C    4    Total file size, trailing checksum included
//	 0x10    4    Section count
//	 0x14   12*n  Section table entries { offset, length, kind }
const (
	SignatureSize = 4

	SfromVersionOffset      = 0x04
	SfromPlatformOffset     = 0x08
	SfromFileSizeOffset     = 0x0C
	SfromSectionCountOffset = 0x10
	SfromHeaderSize         = 0x14

	// SfromVersion is the only format version observed in the wild.
	SfromVersion = 0x100

	// SectionEntrySize is the fixed width of one section table entry.
	SectionEntrySize = 12

	SectionEntryOffsetField = 0x00
	SectionEntryLengthField = 0x04
	SectionEntryKindField   = 0x08

	// SfromMaxSections bounds the declared section count. Observed files
	// carry at most four sections; the cap guards table walks against
	// corrupt counts.
	SfromMaxSections = 64
)

// SectionKind discriminates section table entries.
type SectionKind uint32

const (
	// SectionROM holds the ROM image payload. Required exactly once, never
	// decoded.
	SectionROM SectionKind = 1
	// SectionMetadata holds the platform-specific runtime record plus the
	// trailing game-tag stream. Required exactly once.
	SectionMetadata SectionKind = 2
	// SectionPCM holds pre-rendered PCM sample data (SNES containers only,
	// optional).
	SectionPCM SectionKind = 3
	// SectionPCMFooter holds the PCM index that accompanies SectionPCM.
	SectionPCMFooter SectionKind = 4
)

// ============================================================================
// SFROM Metadata Record Constants
// ============================================================================
// The metadata section opens with a platform-specific fixed record; whatever
// follows it (the single-letter game-tag stream) is preserved verbatim.

// SNES fixed metadata layout (packed, 0x14 bytes):
const (
	SNESMetaFPSOffset        = 0x00 // u8, 0x3C = 60fps, 0x32 = 50fps
	SNESMetaROMSizeOffset    = 0x01 // u32
	SNESMetaPCMSizeOffset    = 0x05 // u32
	SNESMetaPCMFooterOffset  = 0x09 // u32
	SNESMetaPresetIDOffset   = 0x0D // u16
	SNESMetaPlayersOffset    = 0x0F // u8
	SNESMetaVolumeOffset     = 0x10 // u8
	SNESMetaROMTypeOffset    = 0x11 // u8, 0x14 = LoROM, 0x15 = HiROM
	SNESMetaChipOffset       = 0x12 // u8, enhancement chip
	SNESMetaReservedOffset   = 0x13 // u8
	SNESMetaFixedSize        = 0x14
)

// SNES ROM type values.
const (
	SNESROMTypeLoROM = 0x14
	SNESROMTypeHiROM = 0x15
)

// GBA fixed metadata layout (0x10 bytes):
const (
	GBAMetaGameCodeOffset = 0x00 // [4]byte cartridge code
	GBAMetaGameCodeSize   = 4
	GBAMetaSaveTypeOffset = 0x04 // u8
	GBAMetaInputMapOffset = 0x05 // u8
	GBAMetaPlayersOffset  = 0x06 // u8
	GBAMetaVolumeOffset   = 0x07 // u8
	GBAMetaBorderOffset   = 0x08 // u8, display border selection
	GBAMetaColorOffset    = 0x09 // u8, color depth adjustment
	GBAMetaFlagsOffset    = 0x0A // u16
	GBAMetaSRAMSizeOffset = 0x0C // u32
	GBAMetaFixedSize      = 0x10
)

// ============================================================================
// Database Container Constants
// ============================================================================
// Database header layout:
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'V' 'C' 'D' 'B'
//	 0x04    4    Format version
//	 0x08    4    Record count
//	 0x0C    4    String pool offset (absolute)
//	 0x10    4    String pool length
//	 0x14   12*n  Record index entries { id, offset, length }
const (
	DBVersionOffset     = 0x04
	DBRecordCountOffset = 0x08
	DBPoolOffsetOffset  = 0x0C
	DBPoolLengthOffset  = 0x10
	DBHeaderSize        = 0x14

	// DBVersion is the only database version observed in the wild.
	DBVersion = 1

	// IndexEntrySize is the fixed width of one record index entry.
	IndexEntrySize = 12

	IndexEntryIDField     = 0x00
	IndexEntryOffsetField = 0x04
	IndexEntryLengthField = 0x08
)

// Record frame layout shared by both platforms. The platform tag leads the
// frame; the fixed fields and reference block are platform-specific but both
// observed layouts happen to agree on the sizes below.
const (
	RecordPlatformOffset = 0x00 // u32 platform tag
	RecordFixedOffset    = 0x04 // start of platform fixed fields
	RecordFixedSize      = 0x10
	RecordRefsOffset     = RecordFixedOffset + RecordFixedSize // 0x14

	// RecordRefCount is the number of string pool references per record
	// (title, code, publisher, in that order).
	RecordRefCount = 3

	// RefSize is the width of one { offset, length } pool reference.
	RefSize = 8

	RecordMinSize = RecordRefsOffset + RecordRefCount*RefSize // 0x2C
)

// ChecksumSize is the width of the trailing checksum field on both formats.
const ChecksumSize = 4
