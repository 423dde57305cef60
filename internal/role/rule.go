package role

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/soundfolio/creditsync/internal/project"
	"gopkg.in/yaml.v3"
)

type (
	// Rule maps any role satisfying ALL of its criteria to
	// a fixed bilingual display pair.
	Rule struct {
		Criteria []Criteria        `yaml:"criteria" validate:"required,min=1,dive"`
		Role     project.Localized `yaml:"role"`
	}

	// RuleSet contains the two ordered rule lists used by the Normalizer.
	// Combined rules describe dual credits and are always evaluated before
	// the single role table, as a single-role lookup would only capture one
	// half of a dual credit.
	RuleSet struct {
		Combined []Rule `yaml:"combined" validate:"dive"`
		Single   []Rule `yaml:"single" validate:"dive"`
	}
)

// IsMatch returns true if every criteria of this rule matches the cleaned role.
func (rule Rule) IsMatch(cleanedRole string) bool {
	for _, c := range rule.Criteria {
		if !c.IsMatch(cleanedRole) {
			return false
		}
	}

	return len(rule.Criteria) > 0
}

func (rule Rule) String() string {
	parts := make([]string, len(rule.Criteria))
	for i, c := range rule.Criteria {
		parts[i] = c.String()
	}

	return fmt.Sprintf("%s => %s", strings.Join(parts, " AND "), rule.Role.En)
}

// containing is a shorthand for a rule whose criteria are all CONTAINS tests.
func containing(en string, es string, substrings ...string) Rule {
	criteria := make([]Criteria, len(substrings))
	for i, s := range substrings {
		criteria[i] = Criteria{Type: Contains, Value: s}
	}

	return Rule{Criteria: criteria, Role: project.Localized{En: en, Es: es}}
}

// LoadRuleSet reads a YAML rules file, replacing the built-in tables. Every
// rule must have at least one criteria and both translations.
func LoadRuleSet(path string) (RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to read role rules: %w", err)
	}

	var rules RuleSet
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return RuleSet{}, fmt.Errorf("role rules file %s is malformed: %w", path, err)
	}

	if err := validator.New().Struct(rules); err != nil {
		return RuleSet{}, fmt.Errorf("role rules file %s is invalid: %w", path, err)
	}

	return rules, nil
}
