package codec

import "github.com/openretro/vckit/internal/format"

// Record flag bits (the flags byte in both record layouts). Unknown bits are
// preserved as stored.
const (
	// FlagSimultaneous marks titles supporting simultaneous multiplayer.
	FlagSimultaneous = 0x01
	// FlagTitleShiftJIS marks SNES records whose title pool bytes are
	// Shift-JIS encoded rather than UTF-8.
	FlagTitleShiftJIS = 0x02
)

// TitleRecord is the in-memory model of one database record. Exactly one of
// GBA/SNES is non-nil, matching the stored platform tag. Variable fields are
// resolved to strings at parse time and re-interned into the pool on encode.
type TitleRecord struct {
	Platform  format.Platform
	Title     string
	Code      string
	Publisher string

	GBA  *GBAFields
	SNES *SNESFields

	// Opaque is the unmodeled frame tail, copied verbatim on re-encode.
	Opaque []byte
}

// GBAFields is the fixed-field block of a GBA record.
type GBAFields struct {
	Players        uint8
	SaveCount      uint8
	Volume         uint8
	Flags          uint8
	SRAMSize       uint32
	ReleaseDate    uint32 // yyyymmdd
	RewindInterval uint16 // centiseconds between rewind snapshots
	Reserved       uint16
}

// SNESFields is the fixed-field block of an SNES record.
type SNESFields struct {
	PresetID        uint16
	Players         uint8
	Volume          uint8
	ROMType         uint8
	EnhancementChip uint8
	FPS             uint8
	Flags           uint8
	ReleaseDate     uint32 // yyyymmdd
	RewindInterval  uint16
	Reserved        uint16
}

// Simultaneous reports the simultaneous-multiplayer flag bit.
func (r *TitleRecord) Simultaneous() bool {
	switch {
	case r.GBA != nil:
		return r.GBA.Flags&FlagSimultaneous != 0
	case r.SNES != nil:
		return r.SNES.Flags&FlagSimultaneous != 0
	}
	return false
}

// Metadata is the in-memory model of an SFROM metadata section: the platform
// fixed record plus the trailing game-tag stream, which is preserved as an
// opaque region of the source buffer.
type Metadata struct {
	Platform format.Platform

	GBA  *GBAMetadata
	SNES *SNESMetadata

	// Tags covers the single-letter game-tag stream following the fixed
	// record. Its contents are not modeled beyond preservation.
	Tags format.OpaqueRegion
}

// GBAMetadata is the fixed runtime record of a GBA container.
type GBAMetadata struct {
	GameCode   [4]byte
	SaveType   uint8
	InputMap   uint8
	Players    uint8
	Volume     uint8
	Border     uint8
	ColorDepth uint8
	Flags      uint16
	SRAMSize   uint32
}

// SNESMetadata is the fixed runtime record of an SNES container. It mirrors
// the footer of the Wii U era containers.
type SNESMetadata struct {
	FPS             uint8 // 0x3C = 60fps, 0x32 = 50fps
	ROMSize         uint32
	PCMSize         uint32
	PCMFooterSize   uint32
	PresetID        uint16
	Players         uint8
	Volume          uint8
	ROMType         uint8
	EnhancementChip uint8
	Reserved        uint8
}
