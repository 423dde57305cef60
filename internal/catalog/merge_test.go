package catalog_test

import (
	"testing"

	"github.com/soundfolio/creditsync/internal/catalog"
	"github.com/soundfolio/creditsync/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(title string, year int, id string) project.Record {
	return project.Record{
		Title:    title,
		Year:     year,
		Category: project.Film,
		Image:    "/images/projects/placeholder.jpg",
		Imdb:     project.LinkForID(id),
		ImdbID:   id,
		Role:     project.Localized{En: "Sound Editor", Es: "Editor de Sonido"},
		Awards:   []string{},
		Type:     "Movie",
	}
}

func Test_Merge_EndToEnd(t *testing.T) {
	existing := []catalog.Entry{{ID: 1, Title: "Narcos", Year: 2015, Category: project.Series, Imdb: "https://www.imdb.com/title/tt2707408/"}}
	incoming := []project.Record{
		newRecord("Muzzle", 2023, "tt17663876"),
		newRecord("Old Film", 2015, "tt2707408"),
	}

	result := catalog.Merge(existing, incoming)
	require.Len(t, result.Entries, 2)

	assert.Equal(t, "Muzzle", result.Entries[0].Title)
	assert.Equal(t, 1, result.Entries[0].ID)
	assert.Equal(t, 2023, result.Entries[0].Year)
	assert.Equal(t, "Narcos", result.Entries[1].Title)
	assert.Equal(t, 2, result.Entries[1].ID)
	assert.Equal(t, 2015, result.Entries[1].Year)

	require.Len(t, result.Added, 1)
	assert.Equal(t, "Muzzle", result.Added[0].Title)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "Old Film", result.Duplicates[0].Title)
}

func Test_Merge_ExistingEntriesWin(t *testing.T) {
	existing := []catalog.Entry{{
		ID:          7,
		Title:       "La Suprema",
		Year:        2023,
		Category:    project.Film,
		Image:       "/images/projects/la-suprema.jpg",
		Imdb:        "https://www.imdb.com/title/tt20158934/",
		Role:        project.Localized{En: "Dialogue Editor", Es: "Editor de Diálogos"},
		Description: project.Localized{En: "A boxing drama.", Es: "Un drama de boxeo."},
		Awards:      []string{"Best Sound, Festival de Cine"},
	}}
	incoming := []project.Record{newRecord("La Suprema (re-scraped)", 2023, "tt20158934")}

	result := catalog.Merge(existing, incoming)
	require.Len(t, result.Entries, 1)

	expected := existing[0]
	expected.ID = 1
	assert.Equal(t, expected, result.Entries[0])
	assert.Empty(t, result.Added)
	assert.Equal(t, 7, existing[0].ID, "the callers entries must not be modified")
}

func Test_Merge_UnparseableLinksAreKept(t *testing.T) {
	existing := []catalog.Entry{
		{Title: "Unlinked", Year: 2020, Imdb: ""},
		{Title: "Elsewhere", Year: 2020, Imdb: "https://example.com/film"},
	}
	incoming := []project.Record{newRecord("Fresh", 2020, "tt0000001")}

	result := catalog.Merge(existing, incoming)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, []string{"Elsewhere", "Fresh", "Unlinked"}, titles(result.Entries))
}

func Test_Merge_DropsRepeatedNewRecords(t *testing.T) {
	incoming := []project.Record{
		newRecord("First", 2020, "tt0000001"),
		newRecord("First Again", 2020, "tt0000001"),
	}

	result := catalog.Merge(nil, incoming)
	assert.Equal(t, []string{"First"}, titles(result.Entries))
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "First Again", result.Duplicates[0].Title)
}

func Test_Merge_SortAndIDDensity(t *testing.T) {
	existing := []catalog.Entry{
		{ID: 42, Title: "Topos", Year: 2021, Imdb: project.LinkForID("tt13988208")},
		{ID: 42, Title: "Cavewoman", Year: 2023, Imdb: project.LinkForID("tt19867050")},
		{ID: 3, Title: "Los Nadie", Year: 2016, Imdb: project.LinkForID("tt5929594")},
	}
	incoming := []project.Record{
		newRecord("Buy Me a Gun", 2018, "tt7425520"),
		newRecord("Apogeo", 2023, "tt0000010"),
		newRecord("Zafra", 2021, "tt0000011"),
	}

	result := catalog.Merge(existing, incoming)
	assert.Equal(t, []string{"Apogeo", "Cavewoman", "Topos", "Zafra", "Buy Me a Gun", "Los Nadie"}, titles(result.Entries))
	for i, entry := range result.Entries {
		assert.Equal(t, i+1, entry.ID)
	}
}

func Test_Merge_IsIdempotent(t *testing.T) {
	existing := []catalog.Entry{{Title: "Narcos", Year: 2015, Imdb: project.LinkForID("tt2707408")}}
	incoming := []project.Record{newRecord("Muzzle", 2023, "tt17663876")}

	first := catalog.Merge(existing, incoming)
	second := catalog.Merge(first.Entries, incoming)

	assert.Equal(t, first.Entries, second.Entries)
	assert.Empty(t, second.Added)
}

func Test_Merge_Summary(t *testing.T) {
	existing := []catalog.Entry{
		{Title: "Narcos", Year: 2015, Category: project.Series, Imdb: project.LinkForID("tt2707408")},
		{Title: "The Donut King", Year: 2020, Category: project.Documentary, Imdb: project.LinkForID("tt10214496")},
	}
	incoming := []project.Record{newRecord("Muzzle", 2023, "tt17663876"), newRecord("Bruma", 2011, "tt0000012")}

	summary := catalog.Merge(existing, incoming).Summary
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2011, summary.MinYear)
	assert.Equal(t, 2023, summary.MaxYear)
	assert.Equal(t, map[project.Category]int{project.Series: 1, project.Documentary: 1, project.Film: 2}, summary.ByCategory)

	empty := catalog.Summarize(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0, empty.MinYear)
}

func Test_Merge_SimilarTitleHints(t *testing.T) {
	existing := []catalog.Entry{
		{Title: "The Kings of the World", Year: 2022, Imdb: project.LinkForID("tt15399372")},
		{Title: "La Roya", Year: 2021, Imdb: project.LinkForID("tt15399588")},
	}
	incoming := []project.Record{
		newRecord("The Kings of The World", 2022, "tt0000020"),
		newRecord("La Roya", 2024, "tt0000021"),
		newRecord("Something Else", 2022, "tt0000022"),
	}

	result := catalog.Merge(existing, incoming)
	require.Len(t, result.Hints, 1)
	assert.Equal(t, "The Kings of The World", result.Hints[0].Added)
	assert.Equal(t, "The Kings of the World", result.Hints[0].Existing)
	assert.Equal(t, 2022, result.Hints[0].Year)
	assert.Len(t, result.Added, 3, "hints must never change the merge output")

	assert.Empty(t, catalog.MergeWithThreshold(existing, incoming, 0).Hints)
}

func titles(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}

	return out
}
