package scoring

import "github.com/MikeSquared-Agency/CCS/internal/store"

// ReportingUnit converts cost and revenue totals to millions.
const ReportingUnit = 1_000_000.0

// DerivedRecord extends an indicator record with its economic totals, in
// millions. Values keep full precision; see query.Table for display rounding.
type DerivedRecord struct {
	store.IndicatorRecord
	TotalCost    float64 `json:"total_cost"`
	TotalRevenue float64 `json:"total_revenue"`
	NetBenefit   float64 `json:"net_benefit"`
}

// Derive computes total cost, total revenue and net benefit for rec.
// Negative or out-of-range inputs are not rejected and propagate into the result.
func Derive(rec store.IndicatorRecord) DerivedRecord {
	unitCost := rec.CaptureCost + rec.TransportCost + rec.StorageCost
	totalCost := unitCost * rec.CO2Volume / ReportingUnit
	totalRevenue := rec.CO2Price * rec.CO2Volume / ReportingUnit

	return DerivedRecord{
		IndicatorRecord: rec,
		TotalCost:       totalCost,
		TotalRevenue:    totalRevenue,
		NetBenefit:      totalRevenue - totalCost,
	}
}
