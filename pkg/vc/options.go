package vc

// ParseOptions controls parsing behavior. The zero value is the tolerant
// default used by editing tools.
type ParseOptions struct {
	// Strict promotes a checksum mismatch from a flag on the document to a
	// parse error. Structural failures are always errors regardless of this
	// setting.
	Strict bool
}
