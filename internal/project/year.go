package project

import (
	"fmt"
	"strconv"
	"strings"
)

// yearRangeSeparator is the en-dash IMDb uses for productions
// spanning multiple years, e.g. "2015–2017".
const yearRangeSeparator = "–"

// ParseYear returns the (start) year of the year string provided. An error
// is returned if the year is not an integer; callers must not default it.
func ParseYear(year string) (int, error) {
	raw := year
	if start, _, found := strings.Cut(year, yearRangeSeparator); found {
		raw = start
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("year %q is not a valid integer year: %w", year, err)
	}

	return v, nil
}
