package store

import (
	"context"

	"github.com/google/uuid"
)

// IndicatorRecord is one observation of a CCS project for a (year, region) pair.
// The pair is not unique; a dataset may hold several records with the same key.
type IndicatorRecord struct {
	ID     uuid.UUID `json:"id" yaml:"id"`
	Year   int       `json:"year" yaml:"year"`
	Region string    `json:"region" yaml:"region"`

	// Costs and price per unit of CO2 volume
	CaptureCost   float64 `json:"capture_cost" yaml:"capture_cost"`
	TransportCost float64 `json:"transport_cost" yaml:"transport_cost"`
	StorageCost   float64 `json:"storage_cost" yaml:"storage_cost"`
	CO2Price      float64 `json:"co2_price" yaml:"co2_price"`
	CO2Volume     float64 `json:"co2_volume" yaml:"co2_volume"`

	ProductionRate float64 `json:"production_rate" yaml:"production_rate"`

	// Scoring inputs
	ReliabilityScore      float64 `json:"reliability_score" yaml:"reliability_score"`
	ProfitMargin          float64 `json:"profit_margin" yaml:"profit_margin"`
	EROI                  float64 `json:"eroi" yaml:"eroi"`
	CarbonNeutralityScore float64 `json:"carbon_neutrality_score" yaml:"carbon_neutrality_score"`
	EnvFriendlyScore      float64 `json:"env_friendly_score" yaml:"env_friendly_score"`
}

// RecordFilter narrows ListRecords. Zero values match everything.
type RecordFilter struct {
	Year   *int
	Region string
	Limit  int
	Offset int
}

// Matches reports whether rec satisfies the year and region constraints.
func (f RecordFilter) Matches(rec *IndicatorRecord) bool {
	if f.Year != nil && rec.Year != *f.Year {
		return false
	}
	if f.Region != "" && rec.Region != f.Region {
		return false
	}
	return true
}

// Store supplies indicator records to the scoring pipeline. Implementations are
// read-only: scored results are never written back.
type Store interface {
	ListRecords(ctx context.Context, filter RecordFilter) ([]*IndicatorRecord, error)
	CountRecords(ctx context.Context) (int, error)

	Close() error
}
