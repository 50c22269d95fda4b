package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/CCS/internal/scoring"
)

func TestGenerateCoversEveryPair(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	records := Generate(cfg)
	require.Len(t, records, 12)

	seen := make(map[string]bool)
	for _, r := range records {
		seen[fmt.Sprintf("%d/%s", r.Year, r.Region)] = true
	}
	assert.Len(t, seen, 12)
}

func TestGenerateRanges(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.EndYear = 2120
	for _, r := range Generate(cfg) {
		assert.True(t, r.CaptureCost >= 50 && r.CaptureCost < 100, "capture %v", r.CaptureCost)
		assert.True(t, r.TransportCost >= 5 && r.TransportCost < 15, "transport %v", r.TransportCost)
		assert.True(t, r.StorageCost >= 8 && r.StorageCost < 20, "storage %v", r.StorageCost)
		assert.True(t, r.CO2Price >= 60 && r.CO2Price < 100, "price %v", r.CO2Price)
		assert.True(t, r.CO2Volume >= 80000 && r.CO2Volume < 120000, "volume %v", r.CO2Volume)
		assert.True(t, r.ProductionRate >= 80000 && r.ProductionRate < 120000, "production %v", r.ProductionRate)
		assert.True(t, r.ReliabilityScore >= 0.6 && r.ReliabilityScore < 0.95, "reliability %v", r.ReliabilityScore)
		assert.True(t, r.ProfitMargin >= 0.1 && r.ProfitMargin < 0.4, "margin %v", r.ProfitMargin)
		assert.True(t, r.EROI >= 2 && r.EROI < 5, "eroi %v", r.EROI)
		assert.True(t, r.CarbonNeutralityScore >= 0.3 && r.CarbonNeutralityScore < 0.9, "neutrality %v", r.CarbonNeutralityScore)
		assert.True(t, r.EnvFriendlyScore >= 0.4 && r.EnvFriendlyScore < 0.9, "env %v", r.EnvFriendlyScore)
		assert.Equal(t, r.CaptureCost, float64(int(r.CaptureCost)), "capture cost should be whole")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	assert.Equal(t, Generate(cfg), Generate(cfg))

	other := cfg
	other.Seed = cfg.Seed + 1
	assert.NotEqual(t, Generate(cfg), Generate(other))
}

func TestGenerateEmptyRange(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.StartYear, cfg.EndYear = 2030, 2020
	assert.Empty(t, Generate(cfg))
}

func TestParseYAML(t *testing.T) {
	doc := `
records:
  - id: 6f1c2d8e-3b7a-4c55-9a0e-0d2b8f1e4a11
    year: 2021
    region: SouthSea
    capture_cost: 60
    transport_cost: 10
    storage_cost: 12
    co2_price: 80
    co2_volume: 100000
    reliability_score: 0.8
    profit_margin: 0.25
    eroi: 4.0
    carbon_neutrality_score: 0.6
    env_friendly_score: 0.7
`
	res, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, "6f1c2d8e-3b7a-4c55-9a0e-0d2b8f1e4a11", r.ID.String())
	assert.Equal(t, 2021, r.Year)
	assert.Equal(t, 100000.0, r.CO2Volume)
	assert.Equal(t, 0.0, r.ProductionRate)
}

func TestParseJSONIsolatesBadRecords(t *testing.T) {
	doc := `{"records": [
		{"year": 2020, "region": "NorthBay", "capture_cost": 50, "transport_cost": 5, "storage_cost": 8,
		 "co2_price": 61.5, "co2_volume": 90000, "reliability_score": 0.7, "profit_margin": 0.2,
		 "eroi": 3, "carbon_neutrality_score": 0.5, "env_friendly_score": 0.6},
		{"year": 2020, "region": "NorthBay", "transport_cost": 5},
		{"year": 2021, "region": "NorthBay", "capture_cost": "lots", "transport_cost": 5, "storage_cost": 8,
		 "co2_price": 61.5, "co2_volume": 90000, "reliability_score": 0.7, "profit_margin": 0.2,
		 "eroi": 3, "carbon_neutrality_score": 0.5, "env_friendly_score": 0.6},
		{"year": 2022, "capture_cost": 1},
		{"year": 2023, "region": "NorthBay", "capture_cost": null, "transport_cost": 5, "storage_cost": 8,
		 "co2_price": 61.5, "co2_volume": 90000, "reliability_score": 0.7, "profit_margin": 0.2,
		 "eroi": 3, "carbon_neutrality_score": 0.5, "env_friendly_score": 0.6},
		{"year": null, "region": "NorthBay"},
		{"year": 2024, "region": null}
	]}`

	res, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	require.Len(t, res.Errors, 6)

	wantFields := []string{"capture_cost", "capture_cost", "region", "capture_cost", "year", "region"}
	wantIdx := []int{1, 2, 3, 4, 5, 6}
	for i, re := range res.Errors {
		var invalid *scoring.InvalidRecordError
		require.True(t, errors.As(re, &invalid), "error %d: %v", i, re)
		assert.Equal(t, wantFields[i], invalid.Field)
		assert.Equal(t, wantIdx[i], re.Index)
	}
}

func TestParseYAMLNullIsMissing(t *testing.T) {
	doc := `records:
  - year: 2020
    region: SouthSea
    capture_cost: 60
    transport_cost: 10
    storage_cost: 12
    co2_price: 80
    co2_volume: ~
    production_rate: ~
    reliability_score: 0.8
    profit_margin: 0.25
    eroi: 4
    carbon_neutrality_score: 0.6
    env_friendly_score: 0.7
`
	res, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	require.Len(t, res.Errors, 1)

	var invalid *scoring.InvalidRecordError
	require.True(t, errors.As(res.Errors[0], &invalid))
	assert.Equal(t, "co2_volume", invalid.Field)
	assert.Equal(t, "is missing", invalid.Reason)
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := Parse([]byte("records: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	doc := "records:\n  - {year: 2020, region: A, capture_cost: 1, transport_cost: 1, storage_cost: 1, co2_price: 1, co2_volume: 1, reliability_score: 1, profit_margin: 1, eroi: 1, carbon_neutrality_score: 1, env_friendly_score: 1}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	res, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
