package role_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soundfolio/creditsync/internal/project"
	"github.com/soundfolio/creditsync/internal/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Clean(t *testing.T) {
	tests := []struct {
		summary  string
		role     string
		expected string
	}{
		{"Lowercase and trim", "  Sound Editor  ", "sound editor"},
		{"Parenthetical removed", "Dialogue Editor (30 episodes, 2015-2017)", "dialogue editor"},
		{"Multiple parentheticals", "sound editor (uncredited) (as Felipe V.)", "sound editor"},
		{"Parenthetical between roles", "dialogue editor (12 episodes) / sound editor", "dialogue editor / sound editor"},
		{"Ellipsis removed", "foley artist... (1 episode)", "foley artist"},
		{"Whitespace collapsed", "adr \t  recordist", "adr recordist"},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.expected, role.Clean(tt.role))
		})
	}
}

func Test_Normalize(t *testing.T) {
	normalizer := role.New(role.DefaultRuleSet())

	tests := []struct {
		summary  string
		role     string
		expected project.Localized
	}{
		{"Single role", "Dialogue Editor (30 episodes)", project.Localized{En: "Dialogue Editor", Es: "Editor de Diálogos"}},
		{"Single role sound editor", "sound editor", project.Localized{En: "Sound Editor", Es: "Editor de Sonido"}},
		{"Dotted ADR recordist", "A.D.R. Recordist", project.Localized{En: "ADR Recordist", Es: "Grabador de ADR"}},
		{"Sound designer", "sound designer (uncredited)", project.Localized{En: "Sound Designer", Es: "Diseñador de Sonido"}},
		{"Combined dialogue and sound editor", "dialogue editor / sound editor", project.Localized{En: "Dialogue Editor & Sound Editor", Es: "Editor de Diálogos y Sonido"}},
		{"Combined ADR and dialogue editor", "adr editor, dialogue editor", project.Localized{En: "ADR Editor & Dialogue Editor", Es: "Editor de ADR y Editor de Diálogos"}},
		{"Combined supervising", "supervising dialogue editor", project.Localized{En: "Dialogue Editor & Supervising Sound Editor", Es: "Editor de Diálogos y Supervisor de Sonido"}},
		{"Combined foley and sound editor", "sound editor / foley artist", project.Localized{En: "Sound Editor & Foley Artist", Es: "Editor de Sonido y Artista de Foley"}},
		{"First single match wins", "supervising sound editor", project.Localized{En: "Sound Editor", Es: "Editor de Sonido"}},
		{"Fallback title case", "music editor (2 episodes)", project.Localized{En: "Music Editor", Es: "Music Editor"}},
		{"Fallback hyphenated", "re-recording mixer", project.Localized{En: "Re-Recording Mixer", Es: "Re-Recording Mixer"}},
		{"Fallback dotted abbreviation", "a.d.r. mixer", project.Localized{En: "A.D.R. Mixer", Es: "A.D.R. Mixer"}},
		{"Parenthetical between words keeps them apart", "music(main titles)editor", project.Localized{En: "Music Editor", Es: "Music Editor"}},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizer.Normalize(tt.role))
		})
	}
}

func Test_Normalize_CombinedRoleNeverSingle(t *testing.T) {
	normalizer := role.New(role.DefaultRuleSet())
	dialogue := project.Localized{En: "Dialogue Editor", Es: "Editor de Diálogos"}
	sound := project.Localized{En: "Sound Editor", Es: "Editor de Sonido"}

	for _, text := range []string{
		"dialogue editor & sound editor",
		"sound editor, dialogue editor",
		"Sound Editor / Dialogue Editor (8 episodes)",
	} {
		result := normalizer.Normalize(text)
		assert.NotEqual(t, dialogue, result, text)
		assert.NotEqual(t, sound, result, text)
		assert.Equal(t, "Dialogue Editor & Sound Editor", result.En, text)
	}
}

func Test_Criteria_DoesNotContain(t *testing.T) {
	rule := role.Rule{
		Criteria: []role.Criteria{
			{Type: role.Contains, Value: "sound editor"},
			{Type: role.DoesNotContain, Value: "supervising"},
		},
		Role: project.Localized{En: "Sound Editor", Es: "Editor de Sonido"},
	}

	assert.True(t, rule.IsMatch("sound editor"))
	assert.False(t, rule.IsMatch("supervising sound editor"))
	assert.False(t, role.Rule{}.IsMatch("sound editor"), "a rule without criteria must never match")
}

func Test_LoadRuleSet(t *testing.T) {
	dir := t.TempDir()

	t.Run("Valid", func(t *testing.T) {
		path := filepath.Join(dir, "roles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
combined:
  - criteria:
      - value: music editor
      - value: sound editor
    role: {en: "Music & Sound Editor", es: "Editor de Música y Sonido"}
single:
  - criteria:
      - value: sound editor
      - type: does_not_contain
        value: supervising
    role: {en: "Sound Editor", es: "Editor de Sonido"}
`), 0o644))

		set, err := role.LoadRuleSet(path)
		require.NoError(t, err)
		require.Len(t, set.Combined, 1)
		require.Len(t, set.Single, 1)
		assert.Equal(t, role.DoesNotContain, set.Single[0].Criteria[1].Type)

		normalizer := role.New(set)
		assert.Equal(t, "Music & Sound Editor", normalizer.Normalize("music editor / sound editor").En)
		assert.Equal(t, "Supervising Sound Editor", normalizer.Normalize("supervising sound editor").En)
	})

	t.Run("Missing translation", func(t *testing.T) {
		path := filepath.Join(dir, "missing.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
single:
  - criteria:
      - value: sound editor
    role: {en: "Sound Editor"}
`), 0o644))

		_, err := role.LoadRuleSet(path)
		assert.Error(t, err)
	})

	t.Run("Rule without criteria", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
single:
  - role: {en: "Sound Editor", es: "Editor de Sonido"}
`), 0o644))

		_, err := role.LoadRuleSet(path)
		assert.Error(t, err)
	})

	t.Run("Unknown criteria type", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
single:
  - criteria:
      - type: starts_with
        value: sound
    role: {en: "Sound", es: "Sonido"}
`), 0o644))

		_, err := role.LoadRuleSet(path)
		assert.Error(t, err)
	})
}
