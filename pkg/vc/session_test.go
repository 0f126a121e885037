package vc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openretro/vckit/pkg/vc"
)

func openDatabase(t *testing.T) (*vc.DatabaseDocument, []byte) {
	t.Helper()
	data := buildGBADatabase(t)
	doc, err := vc.ParseDatabase(data, nil)
	require.NoError(t, err)
	return doc, data
}

func TestSessionExclusive(t *testing.T) {
	doc, _ := openDatabase(t)

	s1, err := vc.OpenSession(doc)
	require.NoError(t, err)
	_, err = vc.OpenSession(doc)
	require.ErrorIs(t, err, vc.ErrSessionActive)

	s1.Discard()
	require.Equal(t, vc.SessionDiscarded, s1.State())
	s2, err := vc.OpenSession(doc)
	require.NoError(t, err)
	_, err = s2.Commit()
	require.NoError(t, err)
}

func TestSessionFinalized(t *testing.T) {
	doc, _ := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	_, err = s.Commit()
	require.NoError(t, err)
	require.Equal(t, vc.SessionCommitted, s.State())

	_, err = s.Commit()
	require.ErrorIs(t, err, vc.ErrAlreadyFinalized)
	require.ErrorIs(t, s.SetField(1, "title", "X"), vc.ErrAlreadyFinalized)
	_, err = s.AddRecord(vc.PlatformGBA, nil)
	require.ErrorIs(t, err, vc.ErrAlreadyFinalized)
}

func TestSetFieldAndCommit(t *testing.T) {
	doc, _ := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	require.NoError(t, s.SetField(1, "title", "NEWTITLE"))
	out, err := s.Commit()
	require.NoError(t, err)

	reparsed, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	require.True(t, reparsed.ChecksumOK)
	require.Equal(t, []uint32{1, 2}, reparsed.RecordIDs())

	r1 := reparsed.Record(1)
	require.Equal(t, "NEWTITLE", r1.Title)
	require.Equal(t, "AGB-P001", r1.Code)
	require.Equal(t, uint8(2), r1.GBA.Players)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, r1.Opaque)

	// The untouched record survives the rebuild unchanged.
	r2 := reparsed.Record(2)
	require.Equal(t, "PUZZLE TOWER", r2.Title)
	require.Equal(t, "Example Works", r2.Publisher)
	require.Equal(t, uint8(75), r2.GBA.Volume)
}

func TestSetFieldValidation(t *testing.T) {
	doc, data := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	require.ErrorIs(t, s.SetField(1, "volume", 101), vc.ErrInvalidFieldValue)
	require.ErrorIs(t, s.SetField(1, "players", 0), vc.ErrInvalidFieldValue)
	require.ErrorIs(t, s.SetField(1, "romType", 0x14), vc.ErrInvalidFieldValue) // SNES field
	require.ErrorIs(t, s.SetField(99, "title", "X"), vc.ErrRecordNotFound)

	// A rejected mutation leaves the record untouched; the session still has
	// no pending changes and commits to the original bytes.
	require.Equal(t, uint8(80), doc.Record(1).GBA.Volume)
	out, err := s.Commit()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestAddRecord(t *testing.T) {
	doc, _ := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	id, err := s.AddRecord(vc.PlatformGBA, map[string]any{
		"title":     "METAL COURIER",
		"code":      "AGB-P003",
		"publisher": "Example Works",
		"players":   4,
		"volume":    90,
	})
	require.NoError(t, err)
	require.Equal(t, uint32(3), id)

	out, err := s.Commit()
	require.NoError(t, err)
	reparsed, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 3}, reparsed.RecordIDs())

	r3 := reparsed.Record(3)
	require.Equal(t, "METAL COURIER", r3.Title)
	require.Equal(t, uint8(4), r3.GBA.Players)
	require.Equal(t, uint8(90), r3.GBA.Volume)
}

func TestAddRecordUnsupportedPlatform(t *testing.T) {
	doc, _ := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	_, err = s.AddRecord(vc.Platform(9), map[string]any{"title": "X"})
	require.ErrorIs(t, err, vc.ErrUnsupportedPlatform)
	require.Equal(t, 2, doc.Len())

	// The failed add left no pending changes behind.
	out, err := s.Commit()
	require.NoError(t, err)
	reparsed, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	require.Equal(t, 2, reparsed.Len())
}

func TestRemoveRecord(t *testing.T) {
	doc, _ := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	require.ErrorIs(t, s.RemoveRecord(99), vc.ErrRecordNotFound)
	require.NoError(t, s.RemoveRecord(1))

	out, err := s.Commit()
	require.NoError(t, err)
	reparsed, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{2}, reparsed.RecordIDs())
	require.Nil(t, reparsed.Record(1))
}

func TestAddRecordAfterRemoveDoesNotReuseID(t *testing.T) {
	doc, _ := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	// Removing the record holding the current maximum id must not free that
	// id for the next add.
	require.NoError(t, s.RemoveRecord(2))
	id, err := s.AddRecord(vc.PlatformGBA, map[string]any{"title": "FRESH"})
	require.NoError(t, err)
	require.Equal(t, uint32(3), id)
	out, err := s.Commit()
	require.NoError(t, err)

	// The counter survives the commit on the live document.
	s2, err := vc.OpenSession(doc)
	require.NoError(t, err)
	id, err = s2.AddRecord(vc.PlatformGBA, map[string]any{"title": "NEWER"})
	require.NoError(t, err)
	require.Equal(t, uint32(4), id)
	s2.Discard()

	// A fresh parse of the rebuilt buffer resumes past the highest stored id.
	reparsed, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 3}, reparsed.RecordIDs())
	s3, err := vc.OpenSession(reparsed)
	require.NoError(t, err)
	id, err = s3.AddRecord(vc.PlatformGBA, map[string]any{"title": "LATEST"})
	require.NoError(t, err)
	require.Equal(t, uint32(4), id)
}

func TestDiscardDropsStagedStructuralChanges(t *testing.T) {
	doc, data := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	_, err = s.AddRecord(vc.PlatformGBA, map[string]any{"title": "STAGED"})
	require.NoError(t, err)
	require.NoError(t, s.RemoveRecord(1))

	// Adds and removes stay inside the session until commit.
	require.Equal(t, 2, doc.Len())
	require.NotNil(t, doc.Record(1))
	require.Nil(t, doc.Record(3))

	s.Discard()
	require.Equal(t, 2, doc.Len())
	require.NotNil(t, doc.Record(1))

	// After the discard the document still describes its own bytes: a clean
	// session commits to the original buffer.
	s2, err := vc.OpenSession(doc)
	require.NoError(t, err)
	out, err := s2.Commit()
	require.NoError(t, err)
	require.Equal(t, data, out)
	reparsed, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2}, reparsed.RecordIDs())
}

func TestStagedRecordEditableBeforeCommit(t *testing.T) {
	doc, _ := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)

	id, err := s.AddRecord(vc.PlatformGBA, map[string]any{"title": "DRAFT"})
	require.NoError(t, err)
	require.NoError(t, s.SetField(id, "volume", 55))
	require.ErrorIs(t, s.SetField(id, "volume", 101), vc.ErrInvalidFieldValue)

	// A staged removal makes the record invisible to further edits.
	require.NoError(t, s.RemoveRecord(2))
	require.ErrorIs(t, s.SetField(2, "title", "GONE"), vc.ErrRecordNotFound)

	out, err := s.Commit()
	require.NoError(t, err)
	reparsed, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 3}, reparsed.RecordIDs())
	require.Equal(t, uint8(55), reparsed.Record(3).GBA.Volume)
}

func TestCommitIsDeterministic(t *testing.T) {
	doc1, _ := openDatabase(t)
	doc2, _ := openDatabase(t)

	for _, doc := range []*vc.DatabaseDocument{doc1, doc2} {
		s, err := vc.OpenSession(doc)
		require.NoError(t, err)
		require.NoError(t, s.SetField(2, "volume", 50))
		_, err = s.Commit()
		require.NoError(t, err)
	}
	require.Equal(t, doc1.Bytes(), doc2.Bytes())
}

func TestRecommitAfterRebuildIsIdentity(t *testing.T) {
	doc, _ := openDatabase(t)
	s, err := vc.OpenSession(doc)
	require.NoError(t, err)
	require.NoError(t, s.SetField(1, "title", "NEWTITLE"))
	out, err := s.Commit()
	require.NoError(t, err)

	// Parsing the rebuilt buffer and committing without mutation reproduces
	// it byte for byte.
	doc2, err := vc.ParseDatabase(out, nil)
	require.NoError(t, err)
	s2, err := vc.OpenSession(doc2)
	require.NoError(t, err)
	out2, err := s2.Commit()
	require.NoError(t, err)
	require.Equal(t, out, out2)
}

func TestSfromSessionSetMetadataField(t *testing.T) {
	data := buildGBASfrom(t)
	doc, err := vc.ParseSfrom(data, nil)
	require.NoError(t, err)

	s, err := vc.OpenSfromSession(doc)
	require.NoError(t, err)
	require.NoError(t, s.SetMetadataField("volume", 40))
	require.ErrorIs(t, s.SetMetadataField("volume", 101), vc.ErrInvalidFieldValue)
	require.ErrorIs(t, s.SetMetadataField("presetId", 1), vc.ErrInvalidFieldValue) // SNES field

	out, err := s.Commit()
	require.NoError(t, err)
	require.Len(t, out, len(data))

	reparsed, err := vc.ParseSfrom(out, nil)
	require.NoError(t, err)
	require.True(t, reparsed.ChecksumOK)
	require.Equal(t, uint8(40), reparsed.Metadata.GBA.Volume)

	// Everything outside the fixed metadata record is untouched.
	rom, err := reparsed.ROMData()
	require.NoError(t, err)
	require.Equal(t, []byte("ROMDATA!"), rom)
	tags, err := reparsed.Tags()
	require.NoError(t, err)
	require.Equal(t, []byte("D\x02\x00\x00ok"), tags)
}

func TestSfromSessionExclusive(t *testing.T) {
	data := buildGBASfrom(t)
	doc, err := vc.ParseSfrom(data, nil)
	require.NoError(t, err)

	s1, err := vc.OpenSfromSession(doc)
	require.NoError(t, err)
	_, err = vc.OpenSfromSession(doc)
	require.ErrorIs(t, err, vc.ErrSessionActive)

	_, err = s1.Commit()
	require.NoError(t, err)
	_, err = s1.Commit()
	require.ErrorIs(t, err, vc.ErrAlreadyFinalized)

	s2, err := vc.OpenSfromSession(doc)
	require.NoError(t, err)
	s2.Discard()
}
