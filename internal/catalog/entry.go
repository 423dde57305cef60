package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/soundfolio/creditsync/internal/project"
)

// transientFields are never persisted to the catalog, even if an
// existing entry carries them.
var transientFields = map[string]bool{"imdb_id": true}

var knownFields = map[string]bool{
	"id": true, "title": true, "year": true, "category": true, "image": true,
	"imdb": true, "role": true, "description": true, "awards": true,
}

// Entry is a single project of the catalog. Fields the catalog carries
// which are not modelled here (e.g. 'director') are kept in Extra.
//
// An entry read from a catalog file remembers every field exactly as it
// was read, in its original order, and is written back that way with
// only the id rewritten. The typed fields are a read-only view of it.
type Entry struct {
	ID          int
	Title       string
	Year        int
	Category    project.Category
	Image       string
	Imdb        string
	Role        project.Localized
	Description project.Localized
	Awards      []string
	Extra       map[string]json.RawMessage

	raw []rawField
}

type rawField struct {
	key   string
	value json.RawMessage
}

// EntryFromRecord keeps only the canonical catalog fields of an enriched
// record. The ID is assigned during the merge.
func EntryFromRecord(record project.Record) Entry {
	awards := make([]string, len(record.Awards))
	copy(awards, record.Awards)

	return Entry{
		Title:       record.Title,
		Year:        record.Year,
		Category:    record.Category,
		Image:       record.Image,
		Imdb:        record.Imdb,
		Role:        record.Role,
		Description: record.Description,
		Awards:      awards,
	}
}

// ImdbID returns the IMDb title ID referenced by this entries link.
func (entry Entry) ImdbID() (string, bool) {
	return project.IDFromLink(entry.Imdb)
}

func (entry Entry) String() string {
	return fmt.Sprintf("Entry{ID=%d title=%q year=%d category=%s}", entry.ID, entry.Title, entry.Year, entry.Category)
}

func (entry *Entry) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}

	targets := map[string]any{
		"id":          &entry.ID,
		"title":       &entry.Title,
		"year":        &entry.Year,
		"category":    &entry.Category,
		"image":       &entry.Image,
		"imdb":        &entry.Imdb,
		"role":        &entry.Role,
		"description": &entry.Description,
		"awards":      &entry.Awards,
	}

	entry.raw = make([]rawField, 0, len(fields))
	for _, f := range fields {
		key, raw := f.key, f.value
		if transientFields[key] {
			continue
		}
		entry.raw = append(entry.raw, f)

		if target, ok := targets[key]; ok {
			if isNull(raw) {
				continue
			}
			if err := json.Unmarshal(raw, target); err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
			continue
		}

		if entry.Extra == nil {
			entry.Extra = make(map[string]json.RawMessage)
		}
		entry.Extra[key] = raw
	}

	return nil
}

// MarshalJSON writes an entry read from a catalog back as it was read,
// with the current id. Any other entry is written with the known fields
// in a fixed order followed by the extra fields, sorted by key.
func (entry Entry) MarshalJSON() ([]byte, error) {
	if entry.raw != nil {
		return entry.marshalRaw()
	}

	awards := entry.Awards
	if awards == nil {
		awards = []string{}
	}

	type field struct {
		key   string
		value any
	}
	fields := []field{
		{"id", entry.ID},
		{"title", entry.Title},
		{"year", entry.Year},
		{"category", entry.Category},
		{"image", entry.Image},
		{"imdb", entry.Imdb},
		{"role", entry.Role},
		{"description", entry.Description},
		{"awards", awards},
	}

	extraKeys := make([]string, 0, len(entry.Extra))
	for key := range entry.Extra {
		if !knownFields[key] && !transientFields[key] {
			extraKeys = append(extraKeys, key)
		}
	}
	sort.Strings(extraKeys)
	for _, key := range extraKeys {
		fields = append(fields, field{key, entry.Extra[key]})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := encode(f.key)
		if err != nil {
			return nil, err
		}
		value, err := encode(f.value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (entry Entry) marshalRaw() ([]byte, error) {
	id, err := encode(entry.ID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	written := false
	writeField := func(key string, value []byte) error {
		encodedKey, err := encode(key)
		if err != nil {
			return err
		}
		if written {
			buf.WriteByte(',')
		}
		written = true

		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(value)
		return nil
	}

	hasID := false
	for _, f := range entry.raw {
		if f.key == "id" {
			hasID = true
			break
		}
	}
	if !hasID {
		if err := writeField("id", id); err != nil {
			return nil, err
		}
	}

	for _, f := range entry.raw {
		value := []byte(f.value)
		if f.key == "id" {
			value = id
		}
		if err := writeField(f.key, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// decodeFields splits a JSON object in to its fields, keeping the order
// they appear in. A repeated key keeps its first position and last value.
func decodeFields(data []byte) ([]rawField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("project must be a JSON object, found %v", tok)
	}

	fields := make([]rawField, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in project", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}

		if i, ok := index[key]; ok {
			fields[i].value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, rawField{key, value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return fields, nil
}

// encode marshals v without escaping HTML characters, so that
// e.g. "Dialogue Editor & Sound Editor" is stored verbatim.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
