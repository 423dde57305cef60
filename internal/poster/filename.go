package poster

import (
	"regexp"
	"strings"
)

const maxFilenameLength = 50

var (
	// \s is ASCII only, \p{Z} adds no-break and other unicode spaces
	unsafeCharMatcher    = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}-]`)
	separatorRunMatcher  = regexp.MustCompile(`[-\s\p{Z}]+`)
	untitledFilenameStem = "untitled"
)

// SanitizeFilename converts a title in to a filesystem-safe name (without
// extension): lowercased, stripped of everything except letters, digits,
// underscores, whitespace and hyphens, with runs of whitespace/hyphens
// collapsed to a single hyphen, and truncated to 50 characters.
func SanitizeFilename(title string) string {
	safe := unsafeCharMatcher.ReplaceAllString(strings.ToLower(title), "")
	safe = strings.Trim(separatorRunMatcher.ReplaceAllString(safe, "-"), "-")

	if runes := []rune(safe); len(runes) > maxFilenameLength {
		safe = string(runes[:maxFilenameLength])
	}

	if safe == "" {
		return untitledFilenameStem
	}

	return safe
}
