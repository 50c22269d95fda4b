package dataset

import (
	"math/rand/v2"

	"github.com/MikeSquared-Agency/CCS/internal/store"
)

// GeneratorConfig controls the synthetic dataset. Years are inclusive.
type GeneratorConfig struct {
	Seed      uint64
	StartYear int
	EndYear   int
	Regions   []string
}

// DefaultGeneratorConfig covers 2020–2025 for the two reference regions.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:      42,
		StartYear: 2020,
		EndYear:   2025,
		Regions:   []string{"SouthSea", "NorthBay"},
	}
}

// Generate builds one record per (year, region) pair with values drawn from
// the documented ranges. The same seed always yields the same dataset.
func Generate(cfg GeneratorConfig) []store.IndicatorRecord {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	var records []store.IndicatorRecord
	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		for _, region := range cfg.Regions {
			records = append(records, generateOne(rng, year, region))
		}
	}
	return records
}

func generateOne(rng *rand.Rand, year int, region string) store.IndicatorRecord {
	// Draw order is fixed so a seed reproduces identical records.
	return store.IndicatorRecord{
		Year:                  year,
		Region:                region,
		CaptureCost:           randInt(rng, 50, 100),
		TransportCost:         randInt(rng, 5, 15),
		StorageCost:           randInt(rng, 8, 20),
		CO2Price:              uniform(rng, 60, 100),
		CO2Volume:             randInt(rng, 80000, 120000),
		ProductionRate:        randInt(rng, 80000, 120000),
		ReliabilityScore:      uniform(rng, 0.6, 0.95),
		ProfitMargin:          uniform(rng, 0.1, 0.4),
		EROI:                  uniform(rng, 2.0, 5.0),
		CarbonNeutralityScore: uniform(rng, 0.3, 0.9),
		EnvFriendlyScore:      uniform(rng, 0.4, 0.9),
	}
}

// randInt returns an integer in [lo, hi) as a float64.
func randInt(rng *rand.Rand, lo, hi int) float64 {
	return float64(lo + rng.IntN(hi-lo))
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
