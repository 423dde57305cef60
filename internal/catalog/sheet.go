package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const awardsSeparator = "|"

var sheetHeader = []string{
	"id", "title", "year", "category", "image", "imdb",
	"role_en", "role_es", "description_en", "description_es", "awards", "director",
}

// ExportSheet writes the entries as CSV, in the column layout the site
// reads when the catalog is published from a spreadsheet.
func ExportSheet(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(sheetHeader); err != nil {
		return fmt.Errorf("failed to write sheet header: %w", err)
	}

	for _, entry := range entries {
		row := []string{
			strconv.Itoa(entry.ID),
			entry.Title,
			strconv.Itoa(entry.Year),
			entry.Category.String(),
			entry.Image,
			entry.Imdb,
			entry.Role.En,
			entry.Role.Es,
			entry.Description.En,
			entry.Description.Es,
			strings.Join(entry.Awards, awardsSeparator),
			entry.extraString("director"),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write sheet row for %s: %w", entry, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// extraString returns the extra field with the key provided if it
// holds a string, or an empty string otherwise.
func (entry Entry) extraString(key string) string {
	raw, ok := entry.Extra[key]
	if !ok {
		return ""
	}

	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}

	return v
}
