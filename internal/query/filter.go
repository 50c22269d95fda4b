package query

import (
	"sort"

	"github.com/MikeSquared-Agency/CCS/internal/scoring"
)

// Filter selects records by key. A nil Year or empty Region matches any value.
type Filter struct {
	Year   *int
	Region string
}

// Apply returns every record matching f, in input order.
func Apply(records []scoring.ScoredRecord, f Filter) []scoring.ScoredRecord {
	out := make([]scoring.ScoredRecord, 0)
	for _, r := range records {
		if f.Year != nil && r.Year != *f.Year {
			continue
		}
		if f.Region != "" && r.Region != f.Region {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Years returns the distinct years present, ascending.
func Years(records []scoring.ScoredRecord) []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, r := range records {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Regions returns the distinct regions present, sorted.
func Regions(records []scoring.ScoredRecord) []string {
	seen := make(map[string]bool)
	regions := make([]string, 0)
	for _, r := range records {
		if !seen[r.Region] {
			seen[r.Region] = true
			regions = append(regions, r.Region)
		}
	}
	sort.Strings(regions)
	return regions
}
