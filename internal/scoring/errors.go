package scoring

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/CCS/internal/store"
)

// InvalidRecordError reports an indicator record whose shape cannot be scored.
type InvalidRecordError struct {
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record: %s %s", e.Field, e.Reason)
}

// RecordError ties a failure to the position of the record in a batch.
type RecordError struct {
	Index int
	ID    string
	Err   error
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// ValidateRecord checks that rec is present, names a region and carries only
// finite numbers. Values outside their expected ranges are accepted.
func ValidateRecord(rec *store.IndicatorRecord) error {
	if rec == nil {
		return &InvalidRecordError{Field: "record", Reason: "is missing"}
	}
	if rec.Region == "" {
		return &InvalidRecordError{Field: "region", Reason: "is empty"}
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"capture_cost", rec.CaptureCost},
		{"transport_cost", rec.TransportCost},
		{"storage_cost", rec.StorageCost},
		{"co2_price", rec.CO2Price},
		{"co2_volume", rec.CO2Volume},
		{"production_rate", rec.ProductionRate},
		{"reliability_score", rec.ReliabilityScore},
		{"profit_margin", rec.ProfitMargin},
		{"eroi", rec.EROI},
		{"carbon_neutrality_score", rec.CarbonNeutralityScore},
		{"env_friendly_score", rec.EnvFriendlyScore},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidRecordError{Field: f.name, Reason: "is not a finite number"}
		}
	}
	return nil
}

// validateResult rejects a scored record whose totals or score overflowed.
func validateResult(rec *ScoredRecord) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"total_cost", rec.TotalCost},
		{"total_revenue", rec.TotalRevenue},
		{"net_benefit", rec.NetBenefit},
		{"sustainability_score", rec.SustainabilityScore},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidRecordError{Field: f.name, Reason: "overflows"}
		}
	}
	return nil
}
