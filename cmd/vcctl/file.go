package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/openretro/vckit/internal/format"
	"github.com/openretro/vckit/internal/mmfile"
)

type fileKind int

const (
	kindUnknown fileKind = iota
	kindSfrom
	kindDatabase
)

// loadFile maps path read-only and sniffs the four-byte signature. The
// returned cleanup must be called once the bytes are no longer needed;
// documents parsed from the mapping own their own copy, so cleanup can run
// right after parsing.
func loadFile(path string) ([]byte, fileKind, func() error, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, kindUnknown, nil, fmt.Errorf("open %s: %w", path, err)
	}
	kind := kindUnknown
	if len(data) >= format.SignatureSize {
		switch {
		case bytes.Equal(data[:format.SignatureSize], format.SfromSignature):
			kind = kindSfrom
		case bytes.Equal(data[:format.SignatureSize], format.DBSignature):
			kind = kindDatabase
		}
	}
	return data, kind, cleanup, nil
}

// writeFile replaces the file at path with the serialized buffer.
func writeFile(path string, out []byte) error {
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.WithField("bytes", len(out)).Debugf("wrote %s", path)
	return nil
}
