package catalog

import (
	"sort"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/soundfolio/creditsync/internal/project"
)

// DefaultSimilarityThreshold is the title similarity at or above which an
// added project is reported as a possible duplicate of an existing one.
const DefaultSimilarityThreshold = 0.9

type (
	// Result is the outcome of a merge. Entries is the complete new
	// catalog, sorted and with IDs assigned.
	Result struct {
		Entries    []Entry
		Added      []Entry
		Duplicates []project.Record
		Hints      []Hint
		Summary    Summary
	}

	// Hint describes an added project whose title closely resembles an
	// existing project of the same year. Hints are informational only.
	Hint struct {
		Added      string
		Existing   string
		Year       int
		Similarity float64
	}

	// Summary describes the shape of a catalog.
	Summary struct {
		Total      int
		ByCategory map[project.Category]int
		MinYear    int
		MaxYear    int
	}
)

// Merge combines the existing catalog with the newly enriched records,
// using DefaultSimilarityThreshold for duplicate hints.
func Merge(existing []Entry, incoming []project.Record) *Result {
	return MergeWithThreshold(existing, incoming, DefaultSimilarityThreshold)
}

// MergeWithThreshold combines the existing catalog with the newly enriched
// records:
//  1. Existing entries are indexed by the IMDb ID found in their link
//  2. Every existing entry is carried forward unchanged
//  3. A new record is added only if no existing entry (or earlier new
//     record) has the same IMDb ID
//  4. The result is sorted by year (newest first), then title
//  5. IDs are reassigned 1..N following the sorted order
//
// Existing entries always win over new records, as they may carry
// hand-curated descriptions and awards. A threshold <= 0 disables hints.
func MergeWithThreshold(existing []Entry, incoming []project.Record, threshold float64) *Result {
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, entry := range existing {
		if id, ok := entry.ImdbID(); ok {
			seen[id] = true
		}
	}

	result := &Result{Entries: make([]Entry, 0, len(existing)+len(incoming))}
	result.Entries = append(result.Entries, existing...)

	for _, record := range incoming {
		if seen[record.ImdbID] {
			log.Verbosef("Dropping %s, already in catalog\n", record)
			result.Duplicates = append(result.Duplicates, record)
			continue
		}

		seen[record.ImdbID] = true
		entry := EntryFromRecord(record)
		result.Entries = append(result.Entries, entry)
		result.Added = append(result.Added, entry)
	}

	if threshold > 0 {
		result.Hints = similarTitles(existing, result.Added, threshold)
	}

	Sort(result.Entries)
	AssignIDs(result.Entries)
	result.Summary = Summarize(result.Entries)

	return result
}

// Sort orders entries by year descending, breaking ties by title
// ascending. The sort is stable.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year > entries[j].Year
		}

		return entries[i].Title < entries[j].Title
	})
}

// AssignIDs numbers the entries 1..N in their current order.
func AssignIDs(entries []Entry) {
	for i := range entries {
		entries[i].ID = i + 1
	}
}

func Summarize(entries []Entry) Summary {
	summary := Summary{Total: len(entries), ByCategory: make(map[project.Category]int)}
	for i, entry := range entries {
		summary.ByCategory[entry.Category]++
		if i == 0 || entry.Year < summary.MinYear {
			summary.MinYear = entry.Year
		}
		if i == 0 || entry.Year > summary.MaxYear {
			summary.MaxYear = entry.Year
		}
	}

	return summary
}

// similarTitles compares each added entry against the existing entries of
// the same year, returning a Hint for every pair whose titles are at least
// as similar as the threshold.
func similarTitles(existing []Entry, added []Entry, threshold float64) []Hint {
	byYear := make(map[int][]Entry)
	for _, entry := range existing {
		byYear[entry.Year] = append(byYear[entry.Year], entry)
	}

	metric := metrics.NewJaroWinkler()
	metric.CaseSensitive = false

	var hints []Hint
	for _, entry := range added {
		for _, candidate := range byYear[entry.Year] {
			similarity := strutil.Similarity(entry.Title, candidate.Title, metric)
			if similarity >= threshold {
				hints = append(hints, Hint{Added: entry.Title, Existing: candidate.Title, Year: entry.Year, Similarity: similarity})
			}
		}
	}

	return hints
}
