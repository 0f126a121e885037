package format

import (
	"encoding/binary"
	"hash/crc32"
)

// ChecksumKind selects the integrity algorithm for a document kind. The
// algorithms are derived empirically from sample files rather than a public
// specification, so each format's scheme stays a black-box strategy behind
// this tag and can be swapped when better samples surface.
type ChecksumKind uint8

const (
	// ChecksumSfrom covers SFROM containers: XOR of the preceding bytes taken
	// as little-endian dwords, the trailing partial dword zero-padded.
	ChecksumSfrom ChecksumKind = iota + 1
	// ChecksumDatabase covers database files: CRC-32/IEEE over the preceding
	// bytes.
	ChecksumDatabase
)

// Compute returns the checksum of b under the given kind. b excludes the
// trailing checksum field itself.
func Compute(kind ChecksumKind, b []byte) uint32 {
	switch kind {
	case ChecksumSfrom:
		return xorDwords(b)
	case ChecksumDatabase:
		return crc32.ChecksumIEEE(b)
	default:
		return 0
	}
}

// Verify reports whether the stored checksum matches Compute(kind, b).
func Verify(kind ChecksumKind, b []byte, expected uint32) bool {
	return Compute(kind, b) == expected
}

func xorDwords(b []byte) uint32 {
	var sum uint32
	n := len(b) &^ 3
	for off := 0; off < n; off += 4 {
		sum ^= binary.LittleEndian.Uint32(b[off:])
	}
	if rem := len(b) - n; rem > 0 {
		var tail [4]byte
		copy(tail[:], b[n:])
		sum ^= binary.LittleEndian.Uint32(tail[:])
	}
	return sum
}
