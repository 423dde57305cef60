// Package catalog reads, merges and writes the project catalog the
// portfolio site is built from. The catalog file is a JSON object
// holding a single 'projects' list, and is always rewritten in full.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/soundfolio/creditsync/internal/project"
	"github.com/soundfolio/creditsync/pkg/atomicfile"
	"github.com/soundfolio/creditsync/pkg/logger"
)

var (
	log = logger.Get("Catalog")

	ErrMissingProjects = errors.New("catalog has no 'projects' list")
)

type file struct {
	Projects []Entry `json:"projects"`
}

// Load reads the catalog file at the path provided.
func Load(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("catalog %s is malformed: %w", path, err)
	}
	if _, ok := fields["projects"]; !ok {
		return nil, fmt.Errorf("catalog %s is malformed: %w", path, ErrMissingProjects)
	}

	var catalog file
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("catalog %s is malformed: %w", path, err)
	}

	log.Debugf("Loaded %d projects from %s\n", len(catalog.Projects), path)
	return catalog.Projects, nil
}

// Save replaces the catalog file at the path provided with the entries
// given. The file is written to a temporary file first and then renamed
// in to place, so a failed write never leaves a truncated catalog behind.
func Save(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	data, err := project.MarshalIndent(file{Projects: entries})
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	log.Emit(logger.SUCCESS, "Saved %d projects to %s\n", len(entries), path)
	return nil
}

// ImdbIDs returns the IMDb IDs referenced by the entries provided. Entries
// whose link cannot be parsed are ignored.
func ImdbIDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if id, ok := entry.ImdbID(); ok {
			ids = append(ids, id)
		}
	}

	return ids
}
