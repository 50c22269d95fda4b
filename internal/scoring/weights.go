package scoring

import (
	"fmt"
	"math"
)

// WeightConfig sets the relative importance of each sustainability dimension.
// Weights are not required to sum to 1.0; the score scale follows their sum.
type WeightConfig struct {
	Profit      float64 `json:"profit" yaml:"profit"`
	Reliability float64 `json:"reliability" yaml:"reliability"`
	EROI        float64 `json:"eroi" yaml:"eroi"`
	Neutrality  float64 `json:"neutrality" yaml:"neutrality"`
	Env         float64 `json:"env" yaml:"env"`
}

// DefaultWeights returns the initial slider positions of the dashboard.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Profit:      0.30,
		Reliability: 0.20,
		EROI:        0.15,
		Neutrality:  0.15,
		Env:         0.20,
	}
}

// Sum returns the total of all weights.
func (w WeightConfig) Sum() float64 {
	return w.Profit + w.Reliability + w.EROI + w.Neutrality + w.Env
}

// Validate rejects non-finite and negative weights. It does not constrain the sum.
func (w WeightConfig) Validate() error {
	for i, v := range w.asList() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s is not a finite number", dimensionNames[i])
		}
		if v < 0 {
			return fmt.Errorf("negative weight for %s: %f", dimensionNames[i], v)
		}
	}
	return nil
}

func (w WeightConfig) asList() []float64 {
	return []float64{w.Profit, w.Reliability, w.EROI, w.Neutrality, w.Env}
}

// dimensionNames is ordered like asList.
var dimensionNames = []string{
	FactorProfit, FactorReliability, FactorEROI, FactorNeutrality, FactorEnv,
}
