package vc

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
	"golang.org/x/text/unicode/norm"

	"github.com/openretro/vckit/internal/format"
)

// BlankTitle is the placeholder stored in exported manifests when a record
// carries no localized title. The katakana prolonged sound mark is what the
// stock game lists use for untranslated entries.
const BlankTitle = "ー"

// ManifestEntry is one record of the JSON game-list manifest. The field
// names follow the stock game-list layout so exported manifests can be
// diffed against existing ones.
type ManifestEntry struct {
	ID           uint32 `json:"id"`
	Platform     string `json:"platform"`
	Title        string `json:"title"`
	SortTitle    string `json:"sort_title,omitempty"`
	Code         string `json:"code"`
	Publisher    string `json:"copyright"`
	Players      uint8  `json:"players_count"`
	Volume       uint8  `json:"volume"`
	SaveCount    uint8  `json:"save_count,omitempty"`
	Simultaneous bool   `json:"simultaneous,omitempty"`
	ReleaseDate  uint32 `json:"release_date,omitempty"`
}

// Manifest is a JSON game-list view of a database, one entry per record in
// on-disk order.
type Manifest struct {
	Version uint32          `json:"version"`
	Games   []ManifestEntry `json:"games"`
}

// SortTitle derives the collation key used by manifest consumers: the title
// under NFKC normalization, lowercased, with leading whitespace and
// punctuation stripped.
func SortTitle(title string) string {
	s := strings.ToLower(norm.NFKC.String(title))
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}

// ExportManifest builds a manifest from the database's in-memory model.
// Records with no title are exported with the BlankTitle placeholder.
func ExportManifest(doc *DatabaseDocument) *Manifest {
	m := &Manifest{Version: doc.Header.Version, Games: make([]ManifestEntry, 0, doc.Len())}
	for _, e := range doc.Index {
		rec := doc.Records[e.ID]
		entry := ManifestEntry{
			ID:           e.ID,
			Platform:     rec.Platform.String(),
			Title:        rec.Title,
			Code:         rec.Code,
			Publisher:    rec.Publisher,
			Simultaneous: rec.Simultaneous(),
		}
		if rec.Title == "" {
			entry.Title = BlankTitle
		} else {
			entry.SortTitle = SortTitle(rec.Title)
		}
		switch {
		case rec.GBA != nil:
			entry.Players = rec.GBA.Players
			entry.Volume = rec.GBA.Volume
			entry.SaveCount = rec.GBA.SaveCount
			entry.ReleaseDate = rec.GBA.ReleaseDate
		case rec.SNES != nil:
			entry.Players = rec.SNES.Players
			entry.Volume = rec.SNES.Volume
			entry.ReleaseDate = rec.SNES.ReleaseDate
		}
		m.Games = append(m.Games, entry)
	}
	return m
}

// WriteManifest serializes the manifest as indented JSON.
func WriteManifest(w io.Writer, m *Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	return nil
}

// ReadManifest parses a JSON manifest.
func ReadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	return &m, nil
}

// ApplyManifest writes the manifest's editable fields back into an open
// session, matching entries to records by id. Entries whose id is absent
// from the database fail with ErrRecordNotFound; a BlankTitle placeholder
// clears the stored title. Structural fields (platform, sort_title) are
// derived and never applied.
func ApplyManifest(s *DatabaseSession, m *Manifest) error {
	type fieldValue struct {
		name  string
		value any
	}
	for _, entry := range m.Games {
		title := entry.Title
		if title == BlankTitle {
			title = ""
		}
		rec := s.lookup(entry.ID)
		if rec == nil {
			return fmt.Errorf("manifest: game %d: %w", entry.ID, ErrRecordNotFound)
		}
		// Fixed application order keeps the surfaced error stable when an
		// entry carries more than one invalid field.
		fields := []fieldValue{
			{"title", title},
			{"code", entry.Code},
			{"publisher", entry.Publisher},
			{"players", entry.Players},
			{"volume", entry.Volume},
			{"simultaneous", entry.Simultaneous},
		}
		if entry.ReleaseDate != 0 {
			fields = append(fields, fieldValue{"releaseDate", entry.ReleaseDate})
		}
		if rec.Platform == format.PlatformGBA && entry.SaveCount != 0 {
			fields = append(fields, fieldValue{"saveCount", entry.SaveCount})
		}
		for _, f := range fields {
			if err := s.SetField(entry.ID, f.name, f.value); err != nil {
				return fmt.Errorf("manifest: game %d: %w", entry.ID, err)
			}
		}
	}
	return nil
}
