package vc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openretro/vckit/internal/format"
	"github.com/openretro/vckit/pkg/vc"
)

func TestParseSfrom(t *testing.T) {
	data := buildGBASfrom(t)
	doc, err := vc.ParseSfrom(data, nil)
	require.NoError(t, err)

	require.Equal(t, uint32(format.SfromVersion), doc.Header.Version)
	require.Equal(t, vc.PlatformGBA, doc.Header.Platform)
	require.Equal(t, uint32(len(data)), doc.FileSize)
	require.Len(t, doc.Sections, 2)
	require.True(t, doc.ChecksumOK)

	rom, err := doc.ROMData()
	require.NoError(t, err)
	require.Equal(t, []byte("ROMDATA!"), rom)

	require.NotNil(t, doc.Metadata.GBA)
	require.Equal(t, "AGBE", string(doc.Metadata.GBA.GameCode[:]))
	require.Equal(t, uint8(85), doc.Metadata.GBA.Volume)
	require.Equal(t, uint32(32768), doc.Metadata.GBA.SRAMSize)

	tags, err := doc.Tags()
	require.NoError(t, err)
	require.Equal(t, []byte("D\x02\x00\x00ok"), tags)
}

func TestParseSfromOwnsItsBuffer(t *testing.T) {
	data := buildGBASfrom(t)
	doc, err := vc.ParseSfrom(data, nil)
	require.NoError(t, err)

	data[0x20] ^= 0xFF
	rom, err := doc.ROMData()
	require.NoError(t, err)
	require.Equal(t, []byte("ROMDATA!"), rom)
}

func TestParseSfromSizeMismatch(t *testing.T) {
	data := buildGBASfrom(t)
	format.PutU32(data, format.SfromFileSizeOffset, uint32(len(data))+1)
	_, err := vc.ParseSfrom(data, nil)
	require.ErrorIs(t, err, vc.ErrTruncated)
}

func TestParseSfromBadSignature(t *testing.T) {
	data := buildGBASfrom(t)
	data[0] = 'X'
	_, err := vc.ParseSfrom(data, nil)
	require.ErrorIs(t, err, vc.ErrSignatureMismatch)
}

func TestParseSfromChecksumMismatch(t *testing.T) {
	data := buildGBASfrom(t)
	data[len(data)-1] ^= 0xFF

	doc, err := vc.ParseSfrom(data, nil)
	require.NoError(t, err)
	require.False(t, doc.ChecksumOK)

	_, err = vc.ParseSfrom(data, &vc.ParseOptions{Strict: true})
	require.ErrorIs(t, err, vc.ErrChecksumMismatch)
}

func TestSfromUnmutatedCommitIsIdentity(t *testing.T) {
	data := buildGBASfrom(t)
	doc, err := vc.ParseSfrom(data, nil)
	require.NoError(t, err)

	s, err := vc.OpenSfromSession(doc)
	require.NoError(t, err)
	out, err := s.Commit()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestParseDatabase(t *testing.T) {
	data := buildGBADatabase(t)
	doc, err := vc.ParseDatabase(data, nil)
	require.NoError(t, err)

	require.Equal(t, 2, doc.Len())
	require.Equal(t, []uint32{1, 2}, doc.RecordIDs())
	require.True(t, doc.ChecksumOK)

	r1 := doc.Record(1)
	require.NotNil(t, r1)
	require.Equal(t, "POCKET RACER", r1.Title)
	require.Equal(t, "AGB-P001", r1.Code)
	require.Equal(t, "Example Works", r1.Publisher)
	require.Equal(t, uint8(2), r1.GBA.Players)
	require.Equal(t, uint8(80), r1.GBA.Volume)
	require.True(t, r1.Simultaneous())
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, r1.Opaque)

	r2 := doc.Record(2)
	require.NotNil(t, r2)
	require.Equal(t, "PUZZLE TOWER", r2.Title)
	require.False(t, r2.Simultaneous())
	require.Nil(t, r2.Opaque)

	require.Nil(t, doc.Record(99))
}

func TestParseMixedPlatformDatabase(t *testing.T) {
	pool := &testPool{}
	frames := [][]byte{
		gbaFrame(pool, gbaSpec{title: "POCKET RACER", code: "AGB-P001", publisher: "Example Works",
			players: 1, volume: 80}),
		snesFrame(pool, snesSpec{title: "SUPER EXAMPLE", code: "SHVC-EX", publisher: "Example Works",
			presetID: 0x1234, players: 2, volume: 90,
			romType: format.SNESROMTypeHiROM, chip: 2, fps: 0x32, releaseDate: 19951201}),
	}
	data := buildDatabase(t, []uint32{10, 20}, frames, pool.b)

	doc, err := vc.ParseDatabase(data, nil)
	require.NoError(t, err)
	require.True(t, doc.ChecksumOK)

	r := doc.Record(20)
	require.NotNil(t, r)
	require.Equal(t, vc.PlatformSNES, r.Platform)
	require.Equal(t, "SUPER EXAMPLE", r.Title)
	require.Equal(t, uint16(0x1234), r.SNES.PresetID)
	require.Equal(t, uint8(format.SNESROMTypeHiROM), r.SNES.ROMType)
	require.Equal(t, uint8(0x32), r.SNES.FPS)

	// SNES-only field validation works through the session.
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)
	require.ErrorIs(t, s.SetField(20, "fps", 0x40), vc.ErrInvalidFieldValue)
	require.NoError(t, s.SetField(20, "romType", format.SNESROMTypeLoROM))
	out, err := s.Commit()
	require.NoError(t, err)

	reparsed, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	require.Equal(t, uint8(format.SNESROMTypeLoROM), reparsed.Record(20).SNES.ROMType)
	require.Equal(t, "POCKET RACER", reparsed.Record(10).Title)
}

func TestParseDatabaseDuplicateID(t *testing.T) {
	data := buildGBADatabase(t)
	// Rewrite the second index entry's id to collide with the first.
	format.PutU32(data, format.DBHeaderSize+format.IndexEntrySize+format.IndexEntryIDField, 1)
	_, err := vc.ParseDatabase(data, nil)
	require.ErrorIs(t, err, vc.ErrDuplicateRecordID)
}

func TestParseDatabaseDanglingReference(t *testing.T) {
	data := buildGBADatabase(t)
	// Point the first record's title reference past the end of the pool.
	frameOff := int(format.ReadU32(data, format.DBHeaderSize+format.IndexEntryOffsetField))
	format.PutU32(data, frameOff+format.RecordRefsOffset, 0xFFFF)
	_, err := vc.ParseDatabase(data, nil)
	require.ErrorIs(t, err, vc.ErrDanglingReference)
}

func TestParseDatabaseChecksumMismatch(t *testing.T) {
	data := buildGBADatabase(t)
	data[len(data)-2] ^= 0xFF

	doc, err := vc.ParseDatabase(data, nil)
	require.NoError(t, err)
	require.False(t, doc.ChecksumOK)

	_, err = vc.ParseDatabase(data, &vc.ParseOptions{Strict: true})
	require.ErrorIs(t, err, vc.ErrChecksumMismatch)
}

func TestDatabaseUnmutatedCommitIsIdentity(t *testing.T) {
	data := buildGBADatabase(t)
	doc, err := vc.ParseDatabase(data, nil)
	require.NoError(t, err)

	s, err := vc.OpenSession(doc)
	require.NoError(t, err)
	out, err := s.Commit()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestDatabaseCommitRepairsChecksum(t *testing.T) {
	data := buildGBADatabase(t)
	good := append([]byte(nil), data...)
	data[len(data)-1] ^= 0xFF

	doc, err := vc.ParseDatabase(data, nil)
	require.NoError(t, err)
	require.False(t, doc.ChecksumOK)

	s, err := vc.OpenSession(doc)
	require.NoError(t, err)
	out, err := s.Commit()
	require.NoError(t, err)
	require.Equal(t, good, out)
	require.True(t, doc.ChecksumOK)
}
