package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/soundfolio/creditsync/pkg/atomicfile"
)

// LoadRecords reads an enriched-output file previously written
// by WriteRecords.
func LoadRecords(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enriched records: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("enriched records file %s is malformed: %w", path, err)
	}

	return records, nil
}

// WriteRecords replaces the file at path with the records provided, encoded
// as an indented JSON array.
func WriteRecords(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	data, err := MarshalIndent(records)
	if err != nil {
		return fmt.Errorf("failed to encode enriched records: %w", err)
	}

	return atomicfile.WriteFile(path, data, 0o644)
}

// MarshalIndent encodes v as two-space indented JSON without escaping
// HTML characters, matching the formatting of the catalog files the
// site is built from.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
