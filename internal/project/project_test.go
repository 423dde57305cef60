package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soundfolio/creditsync/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseYear(t *testing.T) {
	tests := []struct {
		summary   string
		year      string
		expected  int
		shouldErr bool
	}{
		{"Plain year", "2023", 2023, false},
		{"Year range", "2015–2017", 2015, false},
		{"Open year range", "2019–", 2019, false},
		{"Hyphen is not a range separator", "2015-2017", 0, true},
		{"Empty", "", 0, true},
		{"Not a number", "TBA", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			year, err := project.ParseYear(tt.year)
			if tt.shouldErr {
				assert.Error(t, err, "ParseYear(%q) expected to return an error", tt.year)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, year)
		})
	}
}

func Test_Categorize(t *testing.T) {
	tests := []struct {
		summary  string
		typ      string
		title    string
		expected project.Category
	}{
		{"Series type", "TV Series", "Narcos", project.Series},
		{"Mini series type", "TV Mini Series", "One Hundred Years of Solitude", project.Series},
		{"Short type", "Short", "Cavewoman", project.Short},
		{"Default is film", "", "Muzzle", project.Film},
		{"Unknown type is film", "Video", "Muzzle", project.Film},
		{"Documentary title", "", "A Documentary About Sound", project.Documentary},
		{"Known documentary title", "", "The Donut King", project.Documentary},
		{"Documentary title beats series type", "TV Series", "Documentary Now!", project.Documentary},
		{"Documentary title beats short type", "Short", "Short Documentary", project.Documentary},
		{"Type is case insensitive", "TV SERIES", "Narcos", project.Series},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.expected, project.Categorize(tt.typ, tt.title))
		})
	}
}

func Test_IDFromLink(t *testing.T) {
	id, ok := project.IDFromLink("https://www.imdb.com/title/tt2707408/")
	assert.True(t, ok)
	assert.Equal(t, "tt2707408", id)

	id, ok = project.IDFromLink("https://imdb.com/title/tt2707408")
	assert.True(t, ok)
	assert.Equal(t, "tt2707408", id)

	_, ok = project.IDFromLink("https://example.com/narcos")
	assert.False(t, ok)

	_, ok = project.IDFromLink("")
	assert.False(t, ok)

	assert.Equal(t, "https://www.imdb.com/title/tt17663876/", project.LinkForID("tt17663876"))
}

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadCredits_JSON(t *testing.T) {
	path := writeFile(t, "credits.json", `[
		{"title": "Narcos", "year": "2015–2017", "role": "dialogue editor (30 episodes)", "type": "TV Series", "imdb_id": "tt2707408"},
		{"title": "Muzzle", "year": 2023, "role": "sound editor", "type": "", "imdb_id": "tt17663876"}
	]`)

	credits, err := project.LoadCredits(path)
	require.NoError(t, err)
	require.Len(t, credits, 2)

	assert.Equal(t, project.Credit{
		ImdbID: "tt2707408",
		Title:  "Narcos",
		Year:   "2015–2017",
		Role:   "dialogue editor (30 episodes)",
		Type:   "TV Series",
	}, credits[0])
	assert.Equal(t, "2023", credits[1].Year, "numeric year should be weakly decoded in to a string")
}

func Test_LoadCredits_YAML(t *testing.T) {
	path := writeFile(t, "credits.yaml", `
- title: Topos
  year: 2021
  role: foley artist
  type: Short
  imdb_id: tt13988208
`)

	credits, err := project.LoadCredits(path)
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, "Topos", credits[0].Title)
	assert.Equal(t, "2021", credits[0].Year)
	assert.Equal(t, "tt13988208", credits[0].ImdbID)
}

func Test_LoadCredits_Invalid(t *testing.T) {
	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := project.LoadCredits(writeFile(t, "credits.json", `[{"title": `))
		assert.Error(t, err)
	})

	t.Run("Missing ID", func(t *testing.T) {
		_, err := project.LoadCredits(writeFile(t, "credits.json", `[{"title": "Narcos", "year": "2015"}]`))
		assert.Error(t, err)
	})

	t.Run("ID is not an IMDb title", func(t *testing.T) {
		_, err := project.LoadCredits(writeFile(t, "credits.json", `[{"title": "Narcos", "year": "2015", "imdb_id": "nm123"}]`))
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := project.LoadCredits(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}

func Test_WriteRecords_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "new_projects.json")
	records := []project.Record{{
		Title:    "Muzzle",
		Year:     2023,
		Category: project.Film,
		Image:    "/images/projects/muzzle.jpg",
		Imdb:     project.LinkForID("tt17663876"),
		ImdbID:   "tt17663876",
		Role:     project.Localized{En: "Dialogue Editor", Es: "Editor de Diálogos"},
		Awards:   []string{},
		Type:     "",
	}}

	require.NoError(t, project.WriteRecords(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"es": "Editor de Diálogos"`, "non-ASCII text must not be escaped")

	loaded, err := project.LoadRecords(path)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}
