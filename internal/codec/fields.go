package codec

import (
	"fmt"

	"github.com/openretro/vckit/internal/format"
)

// Field domain limits. Values come from the observed databases; the codec
// rejects anything outside these ranges rather than writing a frame the
// platform application would choke on.
const (
	maxCodeLen      = 16
	maxPublisherLen = 64
	maxPlayers      = 8
	maxVolume       = 100
	maxSaveSlots    = 16
)

// SetField applies one named-field mutation to a record, validating the
// value against the field's domain. Unknown fields and fields belonging to
// the other platform fail with ErrInvalidFieldValue; the record is left
// untouched on any failure.
func SetField(rec *TitleRecord, name string, value any) error {
	switch name {
	case "title":
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		c, err := ForPlatform(rec.Platform)
		if err != nil {
			return err
		}
		if len(s) > c.MaxTitleLen() {
			return fmt.Errorf("field %q: %d bytes exceeds %s limit of %d: %w",
				name, len(s), rec.Platform, c.MaxTitleLen(), format.ErrInvalidFieldValue)
		}
		rec.Title = s
	case "code":
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		if len(s) > maxCodeLen {
			return fmt.Errorf("field %q: %d bytes exceeds limit of %d: %w",
				name, len(s), maxCodeLen, format.ErrInvalidFieldValue)
		}
		rec.Code = s
	case "publisher":
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		if len(s) > maxPublisherLen {
			return fmt.Errorf("field %q: %d bytes exceeds limit of %d: %w",
				name, len(s), maxPublisherLen, format.ErrInvalidFieldValue)
		}
		rec.Publisher = s
	case "players":
		v, err := asUint(name, value, maxPlayers)
		if err != nil {
			return err
		}
		if v < 1 {
			return fmt.Errorf("field %q: player count must be at least 1: %w",
				name, format.ErrInvalidFieldValue)
		}
		switch {
		case rec.GBA != nil:
			rec.GBA.Players = uint8(v)
		case rec.SNES != nil:
			rec.SNES.Players = uint8(v)
		}
	case "volume":
		v, err := asUint(name, value, maxVolume)
		if err != nil {
			return err
		}
		switch {
		case rec.GBA != nil:
			rec.GBA.Volume = uint8(v)
		case rec.SNES != nil:
			rec.SNES.Volume = uint8(v)
		}
	case "simultaneous":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("field %q: want bool, got %T: %w", name, value, format.ErrInvalidFieldValue)
		}
		flags := flagsByte(rec)
		if flags == nil {
			return fmt.Errorf("field %q: record has no fixed fields: %w", name, format.ErrInvalidFieldValue)
		}
		if b {
			*flags |= FlagSimultaneous
		} else {
			*flags &^= FlagSimultaneous
		}
	case "releaseDate":
		v, err := asUint(name, value, 99991231)
		if err != nil {
			return err
		}
		switch {
		case rec.GBA != nil:
			rec.GBA.ReleaseDate = uint32(v)
		case rec.SNES != nil:
			rec.SNES.ReleaseDate = uint32(v)
		}
	case "rewindInterval":
		v, err := asUint(name, value, 0xFFFF)
		if err != nil {
			return err
		}
		switch {
		case rec.GBA != nil:
			rec.GBA.RewindInterval = uint16(v)
		case rec.SNES != nil:
			rec.SNES.RewindInterval = uint16(v)
		}
	case "saveCount":
		if rec.GBA == nil {
			return platformFieldErr(name, rec.Platform, format.PlatformGBA)
		}
		v, err := asUint(name, value, maxSaveSlots)
		if err != nil {
			return err
		}
		rec.GBA.SaveCount = uint8(v)
	case "sramFileSize":
		if rec.GBA == nil {
			return platformFieldErr(name, rec.Platform, format.PlatformGBA)
		}
		v, err := asUint(name, value, 1<<20)
		if err != nil {
			return err
		}
		rec.GBA.SRAMSize = uint32(v)
	case "presetId":
		if rec.SNES == nil {
			return platformFieldErr(name, rec.Platform, format.PlatformSNES)
		}
		v, err := asUint(name, value, 0xFFFF)
		if err != nil {
			return err
		}
		rec.SNES.PresetID = uint16(v)
	case "romType":
		if rec.SNES == nil {
			return platformFieldErr(name, rec.Platform, format.PlatformSNES)
		}
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		if v != format.SNESROMTypeLoROM && v != format.SNESROMTypeHiROM {
			return fmt.Errorf("field %q: %#x is neither LoROM (%#x) nor HiROM (%#x): %w",
				name, v, format.SNESROMTypeLoROM, format.SNESROMTypeHiROM, format.ErrInvalidFieldValue)
		}
		rec.SNES.ROMType = uint8(v)
	case "enhancementChip":
		if rec.SNES == nil {
			return platformFieldErr(name, rec.Platform, format.PlatformSNES)
		}
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		rec.SNES.EnhancementChip = uint8(v)
	case "fps":
		if rec.SNES == nil {
			return platformFieldErr(name, rec.Platform, format.PlatformSNES)
		}
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		if v != 0x3C && v != 0x32 {
			return fmt.Errorf("field %q: %#x is neither 60fps (0x3c) nor 50fps (0x32): %w",
				name, v, format.ErrInvalidFieldValue)
		}
		rec.SNES.FPS = uint8(v)
	default:
		return fmt.Errorf("unknown field %q: %w", name, format.ErrInvalidFieldValue)
	}
	return nil
}

// NewRecord constructs a fresh record for platform with zeroed fixed fields,
// then applies the initial field values. Construction of whole documents
// from scratch is not supported; new records only ever join a parsed
// database through an edit session.
func NewRecord(platform format.Platform, initial map[string]any) (*TitleRecord, error) {
	if _, err := ForPlatform(platform); err != nil {
		return nil, err
	}
	rec := &TitleRecord{Platform: platform}
	switch platform {
	case format.PlatformGBA:
		rec.GBA = &GBAFields{Players: 1}
	case format.PlatformSNES:
		rec.SNES = &SNESFields{Players: 1, ROMType: format.SNESROMTypeLoROM, FPS: 0x3C}
	}
	for name, value := range initial {
		if err := SetField(rec, name, value); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// SetMetadataField applies one named-field mutation to an SFROM metadata
// record. The game-tag stream is opaque and cannot be edited through this
// path.
func SetMetadataField(meta *Metadata, name string, value any) error {
	switch {
	case meta.GBA != nil:
		return setGBAMetaField(meta.GBA, name, value)
	case meta.SNES != nil:
		return setSNESMetaField(meta.SNES, name, value)
	}
	return fmt.Errorf("metadata has no fixed fields: %w", format.ErrInvalidFieldValue)
}

func setGBAMetaField(m *GBAMetadata, name string, value any) error {
	switch name {
	case "saveType":
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		m.SaveType = uint8(v)
	case "inputMap":
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		m.InputMap = uint8(v)
	case "players":
		v, err := asUint(name, value, maxPlayers)
		if err != nil {
			return err
		}
		m.Players = uint8(v)
	case "volume":
		v, err := asUint(name, value, maxVolume)
		if err != nil {
			return err
		}
		m.Volume = uint8(v)
	case "border":
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		m.Border = uint8(v)
	case "colorDepth":
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		m.ColorDepth = uint8(v)
	default:
		return fmt.Errorf("unknown GBA metadata field %q: %w", name, format.ErrInvalidFieldValue)
	}
	return nil
}

func setSNESMetaField(m *SNESMetadata, name string, value any) error {
	switch name {
	case "presetId":
		v, err := asUint(name, value, 0xFFFF)
		if err != nil {
			return err
		}
		m.PresetID = uint16(v)
	case "players":
		v, err := asUint(name, value, maxPlayers)
		if err != nil {
			return err
		}
		m.Players = uint8(v)
	case "volume":
		v, err := asUint(name, value, maxVolume)
		if err != nil {
			return err
		}
		m.Volume = uint8(v)
	case "romType":
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		if v != format.SNESROMTypeLoROM && v != format.SNESROMTypeHiROM {
			return fmt.Errorf("field %q: %#x is neither LoROM nor HiROM: %w",
				name, v, format.ErrInvalidFieldValue)
		}
		m.ROMType = uint8(v)
	case "enhancementChip":
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		m.EnhancementChip = uint8(v)
	case "fps":
		v, err := asUint(name, value, 0xFF)
		if err != nil {
			return err
		}
		if v != 0x3C && v != 0x32 {
			return fmt.Errorf("field %q: %#x is neither 60fps nor 50fps: %w",
				name, v, format.ErrInvalidFieldValue)
		}
		m.FPS = uint8(v)
	default:
		return fmt.Errorf("unknown SNES metadata field %q: %w", name, format.ErrInvalidFieldValue)
	}
	return nil
}

func flagsByte(rec *TitleRecord) *uint8 {
	switch {
	case rec.GBA != nil:
		return &rec.GBA.Flags
	case rec.SNES != nil:
		return &rec.SNES.Flags
	}
	return nil
}

func platformFieldErr(name string, got, want format.Platform) error {
	return fmt.Errorf("field %q belongs to %s records, record is %s: %w",
		name, want, got, format.ErrInvalidFieldValue)
}

func asString(name string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q: want string, got %T: %w", name, value, format.ErrInvalidFieldValue)
	}
	return s, nil
}

func asUint(name string, value any, max uint64) (uint64, error) {
	var v uint64
	switch n := value.(type) {
	case int:
		if n < 0 {
			return 0, fmt.Errorf("field %q: negative value %d: %w", name, n, format.ErrInvalidFieldValue)
		}
		v = uint64(n)
	case uint8:
		v = uint64(n)
	case uint16:
		v = uint64(n)
	case uint32:
		v = uint64(n)
	case uint64:
		v = n
	default:
		return 0, fmt.Errorf("field %q: want integer, got %T: %w", name, value, format.ErrInvalidFieldValue)
	}
	if v > max {
		return 0, fmt.Errorf("field %q: %d exceeds limit of %d: %w", name, v, max, format.ErrInvalidFieldValue)
	}
	return v, nil
}
