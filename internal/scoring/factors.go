package scoring

// Factor names, also used as JSON keys in score breakdowns.
const (
	FactorProfit      = "profit"
	FactorReliability = "reliability"
	FactorEROI        = "eroi"
	FactorNeutrality  = "neutrality"
	FactorEnv         = "env"
)

// EROINormalization maps the expected EROI range onto roughly [0, 1].
// EROI above this value yields a normalized value above 1 and is not clamped.
const EROINormalization = 10.0

// FactorResult captures one dimension's contribution to the score.
type FactorResult struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Normalized float64 `json:"normalized"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
}

// --- Individual factor calculators ---

// ProfitFactor is a passthrough from profit_margin.
func ProfitFactor(rec *DerivedRecord) FactorResult {
	return FactorResult{Name: FactorProfit, Value: rec.ProfitMargin, Normalized: rec.ProfitMargin}
}

// ReliabilityFactor is a passthrough from reliability_score.
func ReliabilityFactor(rec *DerivedRecord) FactorResult {
	return FactorResult{Name: FactorReliability, Value: rec.ReliabilityScore, Normalized: rec.ReliabilityScore}
}

// EROIFactor divides eroi by EROINormalization.
func EROIFactor(rec *DerivedRecord) FactorResult {
	return FactorResult{Name: FactorEROI, Value: rec.EROI, Normalized: rec.EROI / EROINormalization}
}

// NeutralityFactor is a passthrough from carbon_neutrality_score.
func NeutralityFactor(rec *DerivedRecord) FactorResult {
	return FactorResult{Name: FactorNeutrality, Value: rec.CarbonNeutralityScore, Normalized: rec.CarbonNeutralityScore}
}

// EnvFactor is a passthrough from env_friendly_score.
func EnvFactor(rec *DerivedRecord) FactorResult {
	return FactorResult{Name: FactorEnv, Value: rec.EnvFriendlyScore, Normalized: rec.EnvFriendlyScore}
}

// computeFactors evaluates every dimension of rec and applies w. The order
// matches WeightConfig.asList.
func computeFactors(rec *DerivedRecord, w WeightConfig) []FactorResult {
	factors := []FactorResult{
		ProfitFactor(rec),
		ReliabilityFactor(rec),
		EROIFactor(rec),
		NeutralityFactor(rec),
		EnvFactor(rec),
	}

	weights := w.asList()
	for i := range factors {
		factors[i].Weight = weights[i]
		factors[i].Weighted = factors[i].Normalized * weights[i]
	}
	return factors
}

func sumWeighted(factors []FactorResult) float64 {
	var total float64
	for _, f := range factors {
		total += f.Weighted
	}
	return total
}
