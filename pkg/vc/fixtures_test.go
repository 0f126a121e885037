package vc_test

import (
	"testing"

	"github.com/openretro/vckit/internal/format"
)

// Test fixtures are built byte-for-byte in the canonical layout so that an
// unmutated commit reproduces them exactly.

type testPool struct {
	b []byte
}

func (p *testPool) add(s string) format.Ref {
	r := format.Ref{Offset: uint32(len(p.b)), Length: uint32(len(s))}
	p.b = append(p.b, s...)
	return r
}

func putRef(frame []byte, slot int, r format.Ref) {
	off := format.RecordRefsOffset + slot*format.RefSize
	format.PutU32(frame, off, r.Offset)
	format.PutU32(frame, off+4, r.Length)
}

type gbaSpec struct {
	title, code, publisher string
	players, volume        uint8
	flags                  uint8
	saveCount              uint8
	sram                   uint32
	releaseDate            uint32
	opaque                 []byte
}

func gbaFrame(pool *testPool, g gbaSpec) []byte {
	frame := make([]byte, format.RecordMinSize+len(g.opaque))
	format.PutU32(frame, format.RecordPlatformOffset, uint32(format.PlatformGBA))
	frame[0x04] = g.players
	frame[0x05] = g.saveCount
	frame[0x06] = g.volume
	frame[0x07] = g.flags
	format.PutU32(frame, 0x08, g.sram)
	format.PutU32(frame, 0x0C, g.releaseDate)
	putRef(frame, 0, pool.add(g.title))
	putRef(frame, 1, pool.add(g.code))
	putRef(frame, 2, pool.add(g.publisher))
	copy(frame[format.RecordMinSize:], g.opaque)
	return frame
}

type snesSpec struct {
	title, code, publisher string
	presetID               uint16
	players, volume        uint8
	romType, chip, fps     uint8
	flags                  uint8
	releaseDate            uint32
}

func snesFrame(pool *testPool, g snesSpec) []byte {
	frame := make([]byte, format.RecordMinSize)
	format.PutU32(frame, format.RecordPlatformOffset, uint32(format.PlatformSNES))
	format.PutU16(frame, 0x04, g.presetID)
	frame[0x06] = g.players
	frame[0x07] = g.volume
	frame[0x08] = g.romType
	frame[0x09] = g.chip
	frame[0x0A] = g.fps
	frame[0x0B] = g.flags
	format.PutU32(frame, 0x0C, g.releaseDate)
	putRef(frame, 0, pool.add(g.title))
	putRef(frame, 1, pool.add(g.code))
	putRef(frame, 2, pool.add(g.publisher))
	return frame
}

// buildDatabase assembles a database in canonical layout: header, index,
// frames in order, pool, trailing checksum.
func buildDatabase(t *testing.T, ids []uint32, frames [][]byte, pool []byte) []byte {
	t.Helper()
	if len(ids) != len(frames) {
		t.Fatalf("fixture: %d ids for %d frames", len(ids), len(frames))
	}
	recordsStart := format.DBHeaderSize + len(ids)*format.IndexEntrySize
	total := recordsStart
	for _, f := range frames {
		total += len(f)
	}
	poolOffset := total
	total += len(pool) + format.ChecksumSize

	out := make([]byte, total)
	h := format.DatabaseHeader{
		Version:     format.DBVersion,
		RecordCount: uint32(len(ids)),
		PoolOffset:  uint32(poolOffset),
		PoolLength:  uint32(len(pool)),
	}
	h.Encode(out)
	off := recordsStart
	for i, f := range frames {
		e := format.IndexEntry{ID: ids[i], Offset: uint32(off), Length: uint32(len(f))}
		e.Encode(out, format.DBHeaderSize+i*format.IndexEntrySize)
		copy(out[off:], f)
		off += len(f)
	}
	copy(out[poolOffset:], pool)
	format.PutU32(out, total-format.ChecksumSize,
		format.Compute(format.ChecksumDatabase, out[:total-format.ChecksumSize]))
	return out
}

// buildGBADatabase builds the standard two-record GBA fixture.
func buildGBADatabase(t *testing.T) []byte {
	t.Helper()
	pool := &testPool{}
	frames := [][]byte{
		gbaFrame(pool, gbaSpec{
			title: "POCKET RACER", code: "AGB-P001", publisher: "Example Works",
			players: 2, volume: 80, flags: 0x01, saveCount: 2,
			sram: 32768, releaseDate: 20040315,
			opaque: []byte{0xDE, 0xAD, 0xBE, 0xEF},
		}),
		gbaFrame(pool, gbaSpec{
			title: "PUZZLE TOWER", code: "AGB-P002", publisher: "Example Works",
			players: 1, volume: 75, saveCount: 1,
			sram: 8192, releaseDate: 20051101,
		}),
	}
	return buildDatabase(t, []uint32{1, 2}, frames, pool.b)
}

// buildGBASfrom builds a minimal GBA SFROM container: ROM section, metadata
// section with a short game-tag stream, trailing checksum.
func buildGBASfrom(t *testing.T) []byte {
	t.Helper()
	rom := []byte("ROMDATA!")
	tags := []byte("D\x02\x00\x00ok")
	metaLen := format.GBAMetaFixedSize + len(tags)

	tableEnd := format.SfromHeaderSize + 2*format.SectionEntrySize
	romOff := tableEnd
	metaOff := romOff + len(rom)
	total := metaOff + metaLen + format.ChecksumSize

	out := make([]byte, total)
	h := format.SfromHeader{
		Version:      format.SfromVersion,
		Platform:     format.PlatformGBA,
		FileSize:     uint32(total),
		SectionCount: 2,
	}
	h.Encode(out)
	romSec := format.SectionEntry{Offset: uint32(romOff), Length: uint32(len(rom)), Kind: format.SectionROM}
	romSec.Encode(out, format.SfromHeaderSize)
	metaSec := format.SectionEntry{Offset: uint32(metaOff), Length: uint32(metaLen), Kind: format.SectionMetadata}
	metaSec.Encode(out, format.SfromHeaderSize+format.SectionEntrySize)

	copy(out[romOff:], rom)
	meta := out[metaOff:]
	copy(meta[format.GBAMetaGameCodeOffset:], "AGBE")
	meta[format.GBAMetaSaveTypeOffset] = 3
	meta[format.GBAMetaInputMapOffset] = 1
	meta[format.GBAMetaPlayersOffset] = 2
	meta[format.GBAMetaVolumeOffset] = 85
	meta[format.GBAMetaBorderOffset] = 1
	meta[format.GBAMetaColorOffset] = 0
	format.PutU16(meta, format.GBAMetaFlagsOffset, 0x0001)
	format.PutU32(meta, format.GBAMetaSRAMSizeOffset, 32768)
	copy(meta[format.GBAMetaFixedSize:], tags)

	format.PutU32(out, total-format.ChecksumSize,
		format.Compute(format.ChecksumSfrom, out[:total-format.ChecksumSize]))
	return out
}
