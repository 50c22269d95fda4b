package scoring

import (
	"log/slog"

	"github.com/MikeSquared-Agency/CCS/internal/store"
)

// ScoreScale turns the weighted sum into the reported score.
const ScoreScale = 100.0

// ScoredRecord is a derived record with its sustainability score and the
// per-dimension breakdown that produced it.
type ScoredRecord struct {
	DerivedRecord
	SustainabilityScore float64        `json:"sustainability_score"`
	Factors             []FactorResult `json:"factors,omitempty"`
}

// Score computes the composite sustainability score of rec under w:
//
//	(profit*w.profit + reliability*w.reliability + eroi/10*w.eroi +
//	 neutrality*w.neutrality + env*w.env) * 100
//
// The result is not clamped; it stays in [0, 100] only when the weights sum
// to at most 1 and every component is in [0, 1].
func Score(rec DerivedRecord, w WeightConfig) float64 {
	return sumWeighted(computeFactors(&rec, w)) * ScoreScale
}

// BatchResult holds the outcome of scoring many records. Scored keeps the
// input order of the records that passed validation.
type BatchResult struct {
	Scored []ScoredRecord
	Errors []*RecordError
}

// Scorer applies one weight configuration to indicator records.
type Scorer struct {
	weights WeightConfig
	logger  *slog.Logger
}

// NewScorer creates a Scorer with the given weights. Weights are used as-is;
// callers that want bounds call WeightConfig.Validate first.
func NewScorer(weights WeightConfig, logger *slog.Logger) *Scorer {
	return &Scorer{
		weights: weights,
		logger:  logger,
	}
}

// Weights returns the configuration the scorer was built with.
func (s *Scorer) Weights() WeightConfig {
	return s.weights
}

// ScoreRecord derives and scores a single record.
func (s *Scorer) ScoreRecord(rec store.IndicatorRecord) ScoredRecord {
	derived := Derive(rec)
	factors := computeFactors(&derived, s.weights)
	return ScoredRecord{
		DerivedRecord:       derived,
		SustainabilityScore: sumWeighted(factors) * ScoreScale,
		Factors:             factors,
	}
}

// ScoreAll scores every record independently. A record that fails validation,
// or whose finite inputs overflow to a non-finite total or score, is reported
// in Errors and does not stop the rest of the batch.
func (s *Scorer) ScoreAll(records []*store.IndicatorRecord) BatchResult {
	result := BatchResult{Scored: make([]ScoredRecord, 0, len(records))}
	for i, rec := range records {
		err := ValidateRecord(rec)
		var scored ScoredRecord
		if err == nil {
			scored = s.ScoreRecord(*rec)
			err = validateResult(&scored)
		}
		if err != nil {
			re := &RecordError{Index: i, Err: err}
			if rec != nil {
				re.ID = rec.ID.String()
			}
			result.Errors = append(result.Errors, re)
			if s.logger != nil {
				s.logger.Debug("skipping invalid record", "index", i, "error", err)
			}
			continue
		}
		result.Scored = append(result.Scored, scored)
	}
	return result
}
