package query

import (
	"sort"

	"github.com/MikeSquared-Agency/CCS/internal/scoring"
)

// Point is one year's values on a region's chart line.
type Point struct {
	Year                int     `json:"year"`
	NetBenefit          float64 `json:"net_benefit"`
	SustainabilityScore float64 `json:"sustainability_score"`
}

// RegionSeries is the chart data for one region, ordered by year.
type RegionSeries struct {
	Region string  `json:"region"`
	Points []Point `json:"points"`
}

// Series groups records per region. Regions are sorted; points within a region
// are ordered by year, and records sharing a year keep their input order.
func Series(records []scoring.ScoredRecord) []RegionSeries {
	byRegion := make(map[string][]Point)
	for _, r := range records {
		byRegion[r.Region] = append(byRegion[r.Region], Point{
			Year:                r.Year,
			NetBenefit:          r.NetBenefit,
			SustainabilityScore: r.SustainabilityScore,
		})
	}

	out := make([]RegionSeries, 0, len(byRegion))
	for _, region := range Regions(records) {
		points := byRegion[region]
		sort.SliceStable(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		out = append(out, RegionSeries{Region: region, Points: points})
	}
	return out
}
