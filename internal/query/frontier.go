package query

import "github.com/MikeSquared-Agency/CCS/internal/scoring"

// Frontier returns the records not dominated on (net benefit, sustainability
// score), in input order. A record is dominated if another is >= on both and
// strictly better on at least one.
// O(n^2) dominance check; datasets here are tens of rows.
func Frontier(records []scoring.ScoredRecord) []scoring.ScoredRecord {
	frontier := make([]scoring.ScoredRecord, 0, len(records))
	for i := range records {
		dominated := false
		for j := range records {
			if i == j {
				continue
			}
			if dominates(&records[j], &records[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, records[i])
		}
	}
	return frontier
}

func dominates(a, b *scoring.ScoredRecord) bool {
	if a.NetBenefit < b.NetBenefit || a.SustainabilityScore < b.SustainabilityScore {
		return false
	}
	return a.NetBenefit > b.NetBenefit || a.SustainabilityScore > b.SustainabilityScore
}
