package vc

import (
	"fmt"

	"github.com/openretro/vckit/internal/codec"
	"github.com/openretro/vckit/internal/format"
)

// SessionState tracks the edit session lifecycle. Sessions move from Open to
// exactly one of Committed or Discarded and never back.
type SessionState uint8

const (
	// SessionOpen accepts mutations and a single commit.
	SessionOpen SessionState = iota
	// SessionCommitted means Commit produced a buffer; the session is done.
	SessionCommitted
	// SessionDiscarded means the session was abandoned without serializing.
	SessionDiscarded
)

// DatabaseSession is the exclusive mutation context for one
// DatabaseDocument. Only one open session may exist per document; mutations
// validate eagerly and fail without side effects. Structural changes (record
// adds and removes) are staged in the session and reach the document only
// through a successful Commit, which is also the only path to a serialized
// buffer.
type DatabaseSession struct {
	doc    *DatabaseDocument
	state  SessionState
	dirty  map[string]struct{}
	index  []IndexEntry // working copy of the record order
	added  map[uint32]*TitleRecord
	nextID uint32
}

// OpenSession opens an edit session over doc. A second open session on the
// same document fails with ErrSessionActive until the first is committed or
// discarded.
func OpenSession(doc *DatabaseDocument) (*DatabaseSession, error) {
	if doc.sessionActive {
		return nil, ErrSessionActive
	}
	doc.sessionActive = true
	return &DatabaseSession{
		doc:    doc,
		dirty:  make(map[string]struct{}),
		index:  append([]IndexEntry(nil), doc.Index...),
		added:  make(map[uint32]*TitleRecord),
		nextID: doc.nextID,
	}, nil
}

// State returns the session lifecycle state.
func (s *DatabaseSession) State() SessionState { return s.state }

// lookup returns the record for id as the session sees it: staged additions
// included, staged removals excluded.
func (s *DatabaseSession) lookup(id uint32) *TitleRecord {
	for _, e := range s.index {
		if e.ID != id {
			continue
		}
		if rec, ok := s.added[id]; ok {
			return rec
		}
		return s.doc.Records[id]
	}
	return nil
}

// SetField mutates one named field of the record with the given id. The
// value is validated against the field's domain; on failure the record and
// the session's prior mutations are left intact.
func (s *DatabaseSession) SetField(id uint32, field string, value any) error {
	if s.state != SessionOpen {
		return ErrAlreadyFinalized
	}
	rec := s.lookup(id)
	if rec == nil {
		return fmt.Errorf("record %d: %w", id, ErrRecordNotFound)
	}
	if err := codec.SetField(rec, field, value); err != nil {
		return err
	}
	s.dirty[fmt.Sprintf("record/%d/%s", id, field)] = struct{}{}
	return nil
}

// AddRecord stages a new record for the given platform, initialized from the
// provided field values, and returns its assigned id. Ids come from a
// monotonic counter carried on the document, so an id is never reused within
// a document even after the record holding the previous maximum is removed.
func (s *DatabaseSession) AddRecord(platform Platform, initial map[string]any) (uint32, error) {
	if s.state != SessionOpen {
		return 0, ErrAlreadyFinalized
	}
	rec, err := codec.NewRecord(platform, initial)
	if err != nil {
		return 0, err
	}
	id := s.nextID
	s.nextID++
	s.index = append(s.index, IndexEntry{ID: id})
	s.added[id] = rec
	s.dirty["records"] = struct{}{}
	return id, nil
}

// RemoveRecord stages the removal of the record with the given id.
func (s *DatabaseSession) RemoveRecord(id uint32) error {
	if s.state != SessionOpen {
		return ErrAlreadyFinalized
	}
	for i, e := range s.index {
		if e.ID == id {
			s.index = append(s.index[:i], s.index[i+1:]...)
			delete(s.added, id)
			s.dirty["records"] = struct{}{}
			return nil
		}
	}
	return fmt.Errorf("record %d: %w", id, ErrRecordNotFound)
}

// Commit serializes the document and finalizes the session. With no
// mutations the output is the original buffer with its checksum recomputed,
// which is byte-identical for valid inputs. A successful commit applies the
// staged structural changes to the document; a failed commit leaves the
// session open for retry. Calling Commit after it succeeded (or after
// Discard) fails with ErrAlreadyFinalized.
func (s *DatabaseSession) Commit() ([]byte, error) {
	if s.state != SessionOpen {
		return nil, ErrAlreadyFinalized
	}
	var out []byte
	if len(s.dirty) == 0 {
		out = patchChecksum(s.doc.raw, format.ChecksumDatabase)
	} else {
		records := make(map[uint32]*TitleRecord, len(s.index))
		for _, e := range s.index {
			records[e.ID] = s.lookup(e.ID)
		}
		var index []IndexEntry
		var err error
		out, index, err = serializeDatabase(s.doc.Header.Version, s.index, records)
		if err != nil {
			return nil, err
		}
		s.doc.Index = index
		s.doc.Records = records
	}

	s.doc.raw = append([]byte(nil), out...)
	poolOff := int(format.ReadU32(s.doc.raw, format.DBPoolOffsetOffset))
	poolLen := int(format.ReadU32(s.doc.raw, format.DBPoolLengthOffset))
	s.doc.pool = s.doc.raw[poolOff : poolOff+poolLen]
	s.doc.Checksum = format.ReadU32(s.doc.raw, len(s.doc.raw)-format.ChecksumSize)
	s.doc.ChecksumOK = true
	s.doc.nextID = s.nextID

	s.state = SessionCommitted
	s.doc.sessionActive = false
	return out, nil
}

// Discard abandons the session without serializing. Staged record adds and
// removes are dropped with it; field mutations already applied to existing
// in-memory records remain, but no buffer is produced and the document
// accepts a new session.
func (s *DatabaseSession) Discard() {
	if s.state != SessionOpen {
		return
	}
	s.state = SessionDiscarded
	s.doc.sessionActive = false
}

// SfromSession is the exclusive mutation context for one SfromDocument.
// Only the known fixed metadata fields are editable; the ROM payload and the
// game-tag stream are preserved verbatim.
type SfromSession struct {
	doc   *SfromDocument
	state SessionState
	dirty map[string]struct{}
}

// OpenSfromSession opens an edit session over doc, with the same exclusivity
// rule as OpenSession.
func OpenSfromSession(doc *SfromDocument) (*SfromSession, error) {
	if doc.sessionActive {
		return nil, ErrSessionActive
	}
	doc.sessionActive = true
	return &SfromSession{doc: doc, dirty: make(map[string]struct{})}, nil
}

// State returns the session lifecycle state.
func (s *SfromSession) State() SessionState { return s.state }

// SetMetadataField mutates one named fixed metadata field.
func (s *SfromSession) SetMetadataField(field string, value any) error {
	if s.state != SessionOpen {
		return ErrAlreadyFinalized
	}
	if err := codec.SetMetadataField(s.doc.Metadata, field, value); err != nil {
		return err
	}
	s.dirty["metadata/"+field] = struct{}{}
	return nil
}

// Commit serializes the container and finalizes the session, with the same
// semantics as DatabaseSession.Commit.
func (s *SfromSession) Commit() ([]byte, error) {
	if s.state != SessionOpen {
		return nil, ErrAlreadyFinalized
	}
	var out []byte
	if len(s.dirty) == 0 {
		out = patchChecksum(s.doc.raw, format.ChecksumSfrom)
	} else {
		var err error
		out, err = serializeSfrom(s.doc)
		if err != nil {
			return nil, err
		}
	}

	s.doc.raw = append([]byte(nil), out...)
	s.doc.Checksum = format.ReadU32(s.doc.raw, len(s.doc.raw)-format.ChecksumSize)
	s.doc.ChecksumOK = true

	s.state = SessionCommitted
	s.doc.sessionActive = false
	return out, nil
}

// Discard abandons the session without serializing.
func (s *SfromSession) Discard() {
	if s.state != SessionOpen {
		return
	}
	s.state = SessionDiscarded
	s.doc.sessionActive = false
}
