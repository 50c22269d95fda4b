package query

import (
	"math"

	"github.com/MikeSquared-Agency/CCS/internal/scoring"
)

// Row is a display copy of a scored record with every real value rounded to
// two decimals. Rows are for rendering only and never fed back into scoring.
type Row struct {
	ID     string `json:"id"`
	Year   int    `json:"year"`
	Region string `json:"region"`

	CaptureCost    float64 `json:"capture_cost"`
	TransportCost  float64 `json:"transport_cost"`
	StorageCost    float64 `json:"storage_cost"`
	CO2Price       float64 `json:"co2_price"`
	CO2Volume      float64 `json:"co2_volume"`
	ProductionRate float64 `json:"production_rate"`

	ReliabilityScore      float64 `json:"reliability_score"`
	ProfitMargin          float64 `json:"profit_margin"`
	EROI                  float64 `json:"eroi"`
	CarbonNeutralityScore float64 `json:"carbon_neutrality_score"`
	EnvFriendlyScore      float64 `json:"env_friendly_score"`

	TotalCostMillion    float64 `json:"total_cost_million"`
	TotalRevenueMillion float64 `json:"total_revenue_million"`
	NetBenefitMillion   float64 `json:"net_benefit_million"`
	SustainabilityScore float64 `json:"sustainability_score"`
}

// Table converts records to display rows, preserving order.
func Table(records []scoring.ScoredRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{
			ID:                    r.ID.String(),
			Year:                  r.Year,
			Region:                r.Region,
			CaptureCost:           Round2(r.CaptureCost),
			TransportCost:         Round2(r.TransportCost),
			StorageCost:           Round2(r.StorageCost),
			CO2Price:              Round2(r.CO2Price),
			CO2Volume:             Round2(r.CO2Volume),
			ProductionRate:        Round2(r.ProductionRate),
			ReliabilityScore:      Round2(r.ReliabilityScore),
			ProfitMargin:          Round2(r.ProfitMargin),
			EROI:                  Round2(r.EROI),
			CarbonNeutralityScore: Round2(r.CarbonNeutralityScore),
			EnvFriendlyScore:      Round2(r.EnvFriendlyScore),
			TotalCostMillion:      Round2(r.TotalCost),
			TotalRevenueMillion:   Round2(r.TotalRevenue),
			NetBenefitMillion:     Round2(r.NetBenefit),
			SustainabilityScore:   Round2(r.SustainabilityScore),
		})
	}
	return rows
}

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
