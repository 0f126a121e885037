package format

import "errors"

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrOutOfBounds indicates a cursor access past the end of the buffer.
	ErrOutOfBounds = errors.New("format: access out of bounds")
	// ErrMalformedSectionTable indicates a section table entry violated its
	// bounds or a required section kind was missing or duplicated.
	ErrMalformedSectionTable = errors.New("format: malformed section table")
	// ErrDuplicateRecordID indicates two record index entries shared an id.
	ErrDuplicateRecordID = errors.New("format: duplicate record id")
	// ErrDanglingReference indicates a string pool reference resolved outside
	// the pool.
	ErrDanglingReference = errors.New("format: dangling string pool reference")
	// ErrUnsupportedPlatform indicates a platform tag with no registered codec.
	ErrUnsupportedPlatform = errors.New("format: unsupported platform")
	// ErrChecksumMismatch indicates the stored checksum does not cover the
	// file contents. Parsing treats this as a flag, not a failure.
	ErrChecksumMismatch = errors.New("format: checksum mismatch")
	// ErrInvalidFieldValue indicates a mutation value outside the field's
	// declared domain.
	ErrInvalidFieldValue = errors.New("format: invalid field value")
)
