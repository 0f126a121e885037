/*
Package vc provides the high-level API for reading and editing virtual
console container files: SFROM title containers and per-platform title
databases.

# Quick Start

Parse a database, edit one field, and write the result:

	doc, err := vc.ParseDatabase(data, nil)
	if err != nil {
	    log.Fatal(err)
	}
	s, err := vc.OpenSession(doc)
	if err != nil {
	    log.Fatal(err)
	}
	if err := s.SetField(1, "title", "NEWTITLE"); err != nil {
	    log.Fatal(err)
	}
	out, err := s.Commit()

# Round-trip fidelity

Both formats are reverse-engineered; fields the package does not model are
carried as opaque byte ranges and reproduced verbatim. Parsing followed by a
commit with no mutations reproduces the input exactly (modulo checksum
recomputation, which is idempotent on valid files).

# Error Handling

Structural parse failures (bad magic, malformed section table, duplicate
record ids, dangling string pool references) abort parsing. A checksum
mismatch does not: the document is returned best-effort with ChecksumOK set
to false so tools can inspect or repair it. Pass ParseOptions.Strict to
promote the mismatch to an error.

Mutations validate against each field's domain and fail without touching the
record; a failed commit leaves the session open for retry.
*/
package vc
