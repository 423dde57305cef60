package project

import "strings"

type Category string

const (
	Film        Category = "film"
	Series      Category = "series"
	Short       Category = "short"
	Documentary Category = "documentary"
)

func (c Category) Values() []Category {
	return []Category{Film, Series, Short, Documentary}
}

func (c Category) String() string { return string(c) }

// documentaryTitleFragments are lowercase title fragments of productions
// known to be documentaries whose titles do not say so.
var documentaryTitleFragments = []string{"documentary", "donut king"}

// Categorize decides the category of a credit from its free-text type and
// its title. The title rule is checked first, so a documentary series
// is classified as a documentary.
func Categorize(typ string, title string) Category {
	lowerTitle := strings.ToLower(title)
	for _, fragment := range documentaryTitleFragments {
		if strings.Contains(lowerTitle, fragment) {
			return Documentary
		}
	}

	lowerType := strings.ToLower(typ)
	switch {
	case strings.Contains(lowerType, "series"):
		return Series
	case strings.Contains(lowerType, "short"):
		return Short
	default:
		return Film
	}
}
