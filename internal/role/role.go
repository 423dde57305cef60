// Package role normalizes the free-text role of an IMDb credit in to the
// bilingual display pair shown on the portfolio site.
//
// Normalization is a best-effort heuristic: the cleaned role is tested
// against an ordered list of rules and the first match wins. Unseen
// phrasing falls through to a title-cased copy of the English text.
package role

import (
	"regexp"
	"strings"

	"github.com/soundfolio/creditsync/internal/project"
	"github.com/soundfolio/creditsync/pkg/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	log = logger.Get("Role")

	parentheticalMatcher = regexp.MustCompile(`\s*\(.*?\)\s*`)
	ellipsisMatcher      = regexp.MustCompile(`\s*\.\.\..*`)
	whitespaceMatcher    = regexp.MustCompile(`\s+`)
	letterRunMatcher     = regexp.MustCompile(`\p{L}+`)
)

// Normalizer evaluates an immutable, ordered list of rules.
type Normalizer struct {
	rules  []Rule
	titler cases.Caser
}

// New creates a Normalizer from the rule set provided. The combined
// rules are placed ahead of the single rules.
func New(set RuleSet) *Normalizer {
	rules := make([]Rule, 0, len(set.Combined)+len(set.Single))
	rules = append(rules, set.Combined...)
	rules = append(rules, set.Single...)

	return &Normalizer{rules: rules, titler: cases.Title(language.English)}
}

// Normalize returns the bilingual display pair for the free-text role.
func (normalizer *Normalizer) Normalize(role string) project.Localized {
	cleaned := Clean(role)
	for _, rule := range normalizer.rules {
		if rule.IsMatch(cleaned) {
			log.Verbosef("Role %q matched rule %s\n", cleaned, rule)
			return rule.Role
		}
	}

	log.Debugf("Role %q matched no rule, using title case\n", cleaned)
	display := normalizer.title(cleaned)
	return project.Localized{En: display, Es: display}
}

// title capitalizes every run of letters, so that each letter following
// a non-letter is upper case ("a.d.r. mixer" becomes "A.D.R. Mixer").
func (normalizer *Normalizer) title(role string) string {
	return letterRunMatcher.ReplaceAllStringFunc(role, normalizer.titler.String)
}

// Clean lowercases the role, strips any parenthetical annotations and
// anything following an ellipsis, and collapses whitespace.
func Clean(role string) string {
	cleaned := strings.ToLower(strings.TrimSpace(role))
	cleaned = parentheticalMatcher.ReplaceAllString(cleaned, " ")
	cleaned = ellipsisMatcher.ReplaceAllString(cleaned, "")
	cleaned = whitespaceMatcher.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}
