package format

import (
	"encoding/binary"
	"fmt"
)

// Binary encoding utilities for little-endian integers. Both container
// formats store every multi-byte field little-endian.

// PutU16 writes a uint16 value to the buffer at the specified offset in little-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// PutU24 writes the low 24 bits of v to the buffer at the specified offset in
// little-endian format. Used by the SFROM game-tag length framing.
func PutU24(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
}

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU16 reads a uint16 value from the buffer at the specified offset in little-endian format.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// CheckedReadU16 reads a uint16 at off, failing with ErrOutOfBounds instead
// of panicking when the buffer is too short.
func CheckedReadU16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, fmt.Errorf("u16 at %#x: %w (len %d)", off, ErrOutOfBounds, len(b))
	}
	return binary.LittleEndian.Uint16(b[off:]), nil
}

// CheckedReadU32 reads a uint32 at off, failing with ErrOutOfBounds instead
// of panicking when the buffer is too short.
func CheckedReadU32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, fmt.Errorf("u32 at %#x: %w (len %d)", off, ErrOutOfBounds, len(b))
	}
	return binary.LittleEndian.Uint32(b[off:]), nil
}
