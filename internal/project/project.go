// Package project holds the records that flow through creditsync: the raw
// credits scraped from IMDb, the enriched records produced by the fetch
// pipeline, and the helpers shared by both pipelines for deriving their
// fields (category, year, external link).
package project

import "fmt"

type (
	// Credit is one row of raw filmography data for a single production.
	Credit struct {
		ImdbID string `json:"imdb_id" yaml:"imdb_id" mapstructure:"imdb_id" validate:"required,startswith=tt"`
		Title  string `json:"title" yaml:"title" mapstructure:"title" validate:"required"`
		Year   string `json:"year" yaml:"year" mapstructure:"year" validate:"required"`
		Role   string `json:"role" yaml:"role" mapstructure:"role"`
		Type   string `json:"type" yaml:"type" mapstructure:"type"`
	}

	// Localized is a display string in the two languages the site
	// is published in.
	Localized struct {
		En string `json:"en" yaml:"en" validate:"required"`
		Es string `json:"es" yaml:"es" validate:"required"`
	}

	// Record is a credit enriched with its poster, bilingual role and
	// category, pending merge in to the catalog. Description and Awards
	// are always empty here; they are curated by hand once merged.
	Record struct {
		Title       string    `json:"title"`
		Year        int       `json:"year"`
		Category    Category  `json:"category"`
		Image       string    `json:"image"`
		Imdb        string    `json:"imdb"`
		ImdbID      string    `json:"imdb_id"`
		Role        Localized `json:"role"`
		Description Localized `json:"description"`
		Awards      []string  `json:"awards"`
		Type        string    `json:"type"`
	}
)

func (c Credit) String() string {
	return fmt.Sprintf("Credit{ID=%s title=%q year=%s}", c.ImdbID, c.Title, c.Year)
}

func (r Record) String() string {
	return fmt.Sprintf("Record{ID=%s title=%q year=%d category=%s}", r.ImdbID, r.Title, r.Year, r.Category)
}
