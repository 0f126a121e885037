package codec

import (
	"fmt"

	"github.com/openretro/vckit/internal/buf"
	"github.com/openretro/vckit/internal/format"
)

// GBA record frame layout (after the u32 platform tag at 0x00):
//
//	Offset  Size  Description
//	------  ----  ---------------------------------------
//	 0x04    1    Player count
//	 0x05    1    Save slot count
//	 0x06    1    Volume (0-100)
//	 0x07    1    Flags (bit 0 = simultaneous multiplayer)
//	 0x08    4    SRAM file size in bytes
//	 0x0C    4    Release date (yyyymmdd)
//	 0x10    2    Rewind snapshot interval (centiseconds)
//	 0x12    2    Reserved
//	 0x14   24    Pool references: title, code, publisher
const (
	gbaRecPlayersOffset   = 0x04
	gbaRecSaveCountOffset = 0x05
	gbaRecVolumeOffset    = 0x06
	gbaRecFlagsOffset     = 0x07
	gbaRecSRAMOffset      = 0x08
	gbaRecDateOffset      = 0x0C
	gbaRecRewindOffset    = 0x10
	gbaRecReservedOffset  = 0x12
)

// gbaMaxTitleLen is the longest title observed in GBA databases.
const gbaMaxTitleLen = 64

type gbaCodec struct{}

func (gbaCodec) Platform() format.Platform { return format.PlatformGBA }

func (gbaCodec) MetadataFixedSize() int { return format.GBAMetaFixedSize }

func (gbaCodec) MaxTitleLen() int { return gbaMaxTitleLen }

func (c gbaCodec) DecodeRecord(frame, pool []byte) (*TitleRecord, error) {
	if err := checkFrame(frame, format.PlatformGBA); err != nil {
		return nil, err
	}
	refs := readRefs(frame)
	title, err := refs[refTitle].Resolve(pool)
	if err != nil {
		return nil, fmt.Errorf("gba title: %w", err)
	}
	code, err := refs[refCode].Resolve(pool)
	if err != nil {
		return nil, fmt.Errorf("gba code: %w", err)
	}
	publisher, err := refs[refPublisher].Resolve(pool)
	if err != nil {
		return nil, fmt.Errorf("gba publisher: %w", err)
	}
	return &TitleRecord{
		Platform:  format.PlatformGBA,
		Title:     string(title),
		Code:      string(code),
		Publisher: string(publisher),
		GBA: &GBAFields{
			Players:        frame[gbaRecPlayersOffset],
			SaveCount:      frame[gbaRecSaveCountOffset],
			Volume:         frame[gbaRecVolumeOffset],
			Flags:          frame[gbaRecFlagsOffset],
			SRAMSize:       format.ReadU32(frame, gbaRecSRAMOffset),
			ReleaseDate:    format.ReadU32(frame, gbaRecDateOffset),
			RewindInterval: format.ReadU16(frame, gbaRecRewindOffset),
			Reserved:       format.ReadU16(frame, gbaRecReservedOffset),
		},
		Opaque: opaqueTail(frame),
	}, nil
}

func (c gbaCodec) EncodeRecord(rec *TitleRecord, pool *PoolBuilder) ([]byte, error) {
	if rec.GBA == nil {
		return nil, fmt.Errorf("gba record missing fixed fields: %w", format.ErrUnsupportedPlatform)
	}
	frame := make([]byte, format.RecordMinSize+len(rec.Opaque))
	format.PutU32(frame, format.RecordPlatformOffset, uint32(format.PlatformGBA))
	f := rec.GBA
	frame[gbaRecPlayersOffset] = f.Players
	frame[gbaRecSaveCountOffset] = f.SaveCount
	frame[gbaRecVolumeOffset] = f.Volume
	frame[gbaRecFlagsOffset] = f.Flags
	format.PutU32(frame, gbaRecSRAMOffset, f.SRAMSize)
	format.PutU32(frame, gbaRecDateOffset, f.ReleaseDate)
	format.PutU16(frame, gbaRecRewindOffset, f.RewindInterval)
	format.PutU16(frame, gbaRecReservedOffset, f.Reserved)
	putRefs(frame, [format.RecordRefCount]format.Ref{
		refTitle:     pool.Add([]byte(rec.Title)),
		refCode:      pool.Add([]byte(rec.Code)),
		refPublisher: pool.Add([]byte(rec.Publisher)),
	})
	copy(frame[format.RecordMinSize:], rec.Opaque)
	return frame, nil
}

func (c gbaCodec) DecodeMetadata(b []byte, secOff, secLen int) (*Metadata, error) {
	fixed, ok := buf.Slice(b, secOff, format.GBAMetaFixedSize)
	if !ok || secLen < format.GBAMetaFixedSize {
		return nil, fmt.Errorf("gba metadata: %w (section %d bytes, need %d)",
			format.ErrTruncated, secLen, format.GBAMetaFixedSize)
	}
	m := &Metadata{
		Platform: format.PlatformGBA,
		GBA: &GBAMetadata{
			SaveType:   fixed[format.GBAMetaSaveTypeOffset],
			InputMap:   fixed[format.GBAMetaInputMapOffset],
			Players:    fixed[format.GBAMetaPlayersOffset],
			Volume:     fixed[format.GBAMetaVolumeOffset],
			Border:     fixed[format.GBAMetaBorderOffset],
			ColorDepth: fixed[format.GBAMetaColorOffset],
			Flags:      format.ReadU16(fixed, format.GBAMetaFlagsOffset),
			SRAMSize:   format.ReadU32(fixed, format.GBAMetaSRAMSizeOffset),
		},
		Tags: format.OpaqueRegion{
			Offset: secOff + format.GBAMetaFixedSize,
			Length: secLen - format.GBAMetaFixedSize,
		},
	}
	copy(m.GBA.GameCode[:], fixed[format.GBAMetaGameCodeOffset:format.GBAMetaGameCodeOffset+format.GBAMetaGameCodeSize])
	return m, nil
}

func (c gbaCodec) EncodeMetadata(meta *Metadata, dst []byte) error {
	if meta.GBA == nil {
		return fmt.Errorf("gba metadata missing fixed fields: %w", format.ErrUnsupportedPlatform)
	}
	if len(dst) < format.GBAMetaFixedSize {
		return fmt.Errorf("gba metadata: %w (dst %d bytes, need %d)",
			format.ErrOutOfBounds, len(dst), format.GBAMetaFixedSize)
	}
	m := meta.GBA
	copy(dst[format.GBAMetaGameCodeOffset:], m.GameCode[:])
	dst[format.GBAMetaSaveTypeOffset] = m.SaveType
	dst[format.GBAMetaInputMapOffset] = m.InputMap
	dst[format.GBAMetaPlayersOffset] = m.Players
	dst[format.GBAMetaVolumeOffset] = m.Volume
	dst[format.GBAMetaBorderOffset] = m.Border
	dst[format.GBAMetaColorOffset] = m.ColorDepth
	format.PutU16(dst, format.GBAMetaFlagsOffset, m.Flags)
	format.PutU32(dst, format.GBAMetaSRAMSizeOffset, m.SRAMSize)
	return nil
}
