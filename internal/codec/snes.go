package codec

import (
	"fmt"

	"golang.org/x/text/encoding/japanese"

	"github.com/openretro/vckit/internal/buf"
	"github.com/openretro/vckit/internal/format"
)

// SNES record frame layout (after the u32 platform tag at 0x00):
//
//	Offset  Size  Description
//	------  ----  ---------------------------------------
//	 0x04    2    Preset ID
//	 0x06    1    Player count
//	 0x07    1    Volume (0-100)
//	 0x08    1    ROM type (0x14 LoROM, 0x15 HiROM)
//	 0x09    1    Enhancement chip
//	 0x0A    1    FPS (0x3C or 0x32)
//	 0x0B    1    Flags (bit 0 = simultaneous, bit 1 = Shift-JIS title)
//	 0x0C    4    Release date (yyyymmdd)
//	 0x10    2    Rewind snapshot interval (centiseconds)
//	 0x12    2    Reserved
//	 0x14   24    Pool references: title, code, publisher
const (
	snesRecPresetOffset   = 0x04
	snesRecPlayersOffset  = 0x06
	snesRecVolumeOffset   = 0x07
	snesRecROMTypeOffset  = 0x08
	snesRecChipOffset     = 0x09
	snesRecFPSOffset      = 0x0A
	snesRecFlagsOffset    = 0x0B
	snesRecDateOffset     = 0x0C
	snesRecRewindOffset   = 0x10
	snesRecReservedOffset = 0x12
)

// snesMaxTitleLen is the longest title observed in SNES databases. Japanese
// region databases store titles Shift-JIS encoded with the FlagTitleShiftJIS
// bit set.
const snesMaxTitleLen = 128

type snesCodec struct{}

func (snesCodec) Platform() format.Platform { return format.PlatformSNES }

func (snesCodec) MetadataFixedSize() int { return format.SNESMetaFixedSize }

func (snesCodec) MaxTitleLen() int { return snesMaxTitleLen }

func (c snesCodec) DecodeRecord(frame, pool []byte) (*TitleRecord, error) {
	if err := checkFrame(frame, format.PlatformSNES); err != nil {
		return nil, err
	}
	refs := readRefs(frame)
	titleRaw, err := refs[refTitle].Resolve(pool)
	if err != nil {
		return nil, fmt.Errorf("snes title: %w", err)
	}
	code, err := refs[refCode].Resolve(pool)
	if err != nil {
		return nil, fmt.Errorf("snes code: %w", err)
	}
	publisher, err := refs[refPublisher].Resolve(pool)
	if err != nil {
		return nil, fmt.Errorf("snes publisher: %w", err)
	}

	flags := frame[snesRecFlagsOffset]
	title := string(titleRaw)
	if flags&FlagTitleShiftJIS != 0 {
		decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(titleRaw)
		if err != nil {
			return nil, fmt.Errorf("snes title: shift-jis decode: %v: %w",
				err, format.ErrInvalidFieldValue)
		}
		title = string(decoded)
	}

	return &TitleRecord{
		Platform:  format.PlatformSNES,
		Title:     title,
		Code:      string(code),
		Publisher: string(publisher),
		SNES: &SNESFields{
			PresetID:        format.ReadU16(frame, snesRecPresetOffset),
			Players:         frame[snesRecPlayersOffset],
			Volume:          frame[snesRecVolumeOffset],
			ROMType:         frame[snesRecROMTypeOffset],
			EnhancementChip: frame[snesRecChipOffset],
			FPS:             frame[snesRecFPSOffset],
			Flags:           flags,
			ReleaseDate:     format.ReadU32(frame, snesRecDateOffset),
			RewindInterval:  format.ReadU16(frame, snesRecRewindOffset),
			Reserved:        format.ReadU16(frame, snesRecReservedOffset),
		},
		Opaque: opaqueTail(frame),
	}, nil
}

func (c snesCodec) EncodeRecord(rec *TitleRecord, pool *PoolBuilder) ([]byte, error) {
	if rec.SNES == nil {
		return nil, fmt.Errorf("snes record missing fixed fields: %w", format.ErrUnsupportedPlatform)
	}
	f := rec.SNES

	titleBytes := []byte(rec.Title)
	if f.Flags&FlagTitleShiftJIS != 0 {
		encoded, err := japanese.ShiftJIS.NewEncoder().Bytes(titleBytes)
		if err != nil {
			return nil, fmt.Errorf("snes title: shift-jis encode: %v: %w",
				err, format.ErrInvalidFieldValue)
		}
		titleBytes = encoded
	}

	frame := make([]byte, format.RecordMinSize+len(rec.Opaque))
	format.PutU32(frame, format.RecordPlatformOffset, uint32(format.PlatformSNES))
	format.PutU16(frame, snesRecPresetOffset, f.PresetID)
	frame[snesRecPlayersOffset] = f.Players
	frame[snesRecVolumeOffset] = f.Volume
	frame[snesRecROMTypeOffset] = f.ROMType
	frame[snesRecChipOffset] = f.EnhancementChip
	frame[snesRecFPSOffset] = f.FPS
	frame[snesRecFlagsOffset] = f.Flags
	format.PutU32(frame, snesRecDateOffset, f.ReleaseDate)
	format.PutU16(frame, snesRecRewindOffset, f.RewindInterval)
	format.PutU16(frame, snesRecReservedOffset, f.Reserved)
	putRefs(frame, [format.RecordRefCount]format.Ref{
		refTitle:     pool.Add(titleBytes),
		refCode:      pool.Add([]byte(rec.Code)),
		refPublisher: pool.Add([]byte(rec.Publisher)),
	})
	copy(frame[format.RecordMinSize:], rec.Opaque)
	return frame, nil
}

func (c snesCodec) DecodeMetadata(b []byte, secOff, secLen int) (*Metadata, error) {
	fixed, ok := buf.Slice(b, secOff, format.SNESMetaFixedSize)
	if !ok || secLen < format.SNESMetaFixedSize {
		return nil, fmt.Errorf("snes metadata: %w (section %d bytes, need %d)",
			format.ErrTruncated, secLen, format.SNESMetaFixedSize)
	}
	return &Metadata{
		Platform: format.PlatformSNES,
		SNES: &SNESMetadata{
			FPS:             fixed[format.SNESMetaFPSOffset],
			ROMSize:         format.ReadU32(fixed, format.SNESMetaROMSizeOffset),
			PCMSize:         format.ReadU32(fixed, format.SNESMetaPCMSizeOffset),
			PCMFooterSize:   format.ReadU32(fixed, format.SNESMetaPCMFooterOffset),
			PresetID:        format.ReadU16(fixed, format.SNESMetaPresetIDOffset),
			Players:         fixed[format.SNESMetaPlayersOffset],
			Volume:          fixed[format.SNESMetaVolumeOffset],
			ROMType:         fixed[format.SNESMetaROMTypeOffset],
			EnhancementChip: fixed[format.SNESMetaChipOffset],
			Reserved:        fixed[format.SNESMetaReservedOffset],
		},
		Tags: format.OpaqueRegion{
			Offset: secOff + format.SNESMetaFixedSize,
			Length: secLen - format.SNESMetaFixedSize,
		},
	}, nil
}

func (c snesCodec) EncodeMetadata(meta *Metadata, dst []byte) error {
	if meta.SNES == nil {
		return fmt.Errorf("snes metadata missing fixed fields: %w", format.ErrUnsupportedPlatform)
	}
	if len(dst) < format.SNESMetaFixedSize {
		return fmt.Errorf("snes metadata: %w (dst %d bytes, need %d)",
			format.ErrOutOfBounds, len(dst), format.SNESMetaFixedSize)
	}
	m := meta.SNES
	dst[format.SNESMetaFPSOffset] = m.FPS
	format.PutU32(dst, format.SNESMetaROMSizeOffset, m.ROMSize)
	format.PutU32(dst, format.SNESMetaPCMSizeOffset, m.PCMSize)
	format.PutU32(dst, format.SNESMetaPCMFooterOffset, m.PCMFooterSize)
	format.PutU16(dst, format.SNESMetaPresetIDOffset, m.PresetID)
	dst[format.SNESMetaPlayersOffset] = m.Players
	dst[format.SNESMetaVolumeOffset] = m.Volume
	dst[format.SNESMetaROMTypeOffset] = m.ROMType
	dst[format.SNESMetaChipOffset] = m.EnhancementChip
	dst[format.SNESMetaReservedOffset] = m.Reserved
	return nil
}
