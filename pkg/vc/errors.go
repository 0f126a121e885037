package vc

import (
	"errors"

	"github.com/openretro/vckit/internal/format"
)

var (
	// ErrSessionActive indicates a second edit session was opened while one
	// is still open on the same document.
	ErrSessionActive = errors.New("vc: document already has an open edit session")
	// ErrAlreadyFinalized indicates a mutation or commit on a session that
	// was already committed or discarded.
	ErrAlreadyFinalized = errors.New("vc: edit session already finalized")
	// ErrRecordNotFound indicates the record id does not exist in the
	// document.
	ErrRecordNotFound = errors.New("vc: record not found")
)

// Structural and validation errors surfaced by parsing and mutation,
// re-exported so callers only need this package.
var (
	ErrSignatureMismatch     = format.ErrSignatureMismatch
	ErrTruncated             = format.ErrTruncated
	ErrOutOfBounds           = format.ErrOutOfBounds
	ErrMalformedSectionTable = format.ErrMalformedSectionTable
	ErrDuplicateRecordID     = format.ErrDuplicateRecordID
	ErrDanglingReference     = format.ErrDanglingReference
	ErrUnsupportedPlatform   = format.ErrUnsupportedPlatform
	ErrChecksumMismatch      = format.ErrChecksumMismatch
	ErrInvalidFieldValue     = format.ErrInvalidFieldValue
)
