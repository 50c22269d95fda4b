package dataset

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/CCS/internal/scoring"
	"github.com/MikeSquared-Agency/CCS/internal/store"
)

// LoadResult holds the records decoded from a file and the per-record
// failures. A bad record never hides the good ones around it.
type LoadResult struct {
	Records []store.IndicatorRecord
	Errors  []*scoring.RecordError
}

type document struct {
	Records []yaml.Node `yaml:"records"`
}

// LoadFile reads a YAML or JSON document of the form {records: [...]}.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes a dataset document. JSON input is accepted as YAML.
func Parse(data []byte) (*LoadResult, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	result := &LoadResult{}
	for i := range doc.Records {
		rec, err := decodeRecord(&doc.Records[i])
		if err != nil {
			result.Errors = append(result.Errors, &scoring.RecordError{Index: i, Err: err})
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func decodeRecord(node *yaml.Node) (store.IndicatorRecord, error) {
	var rec store.IndicatorRecord

	var fields map[string]yaml.Node
	if err := node.Decode(&fields); err != nil {
		return rec, &scoring.InvalidRecordError{Field: "record", Reason: "is not a mapping"}
	}

	if n, ok := lookup(fields, "id"); ok {
		var s string
		if err := n.Decode(&s); err != nil {
			return rec, &scoring.InvalidRecordError{Field: "id", Reason: "is not a string"}
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return rec, &scoring.InvalidRecordError{Field: "id", Reason: "is not a valid uuid"}
		}
		rec.ID = id
	}

	n, ok := lookup(fields, "year")
	if !ok {
		return rec, &scoring.InvalidRecordError{Field: "year", Reason: "is missing"}
	}
	if err := n.Decode(&rec.Year); err != nil {
		return rec, &scoring.InvalidRecordError{Field: "year", Reason: "is not an integer"}
	}

	n, ok = lookup(fields, "region")
	if !ok {
		return rec, &scoring.InvalidRecordError{Field: "region", Reason: "is missing"}
	}
	if err := n.Decode(&rec.Region); err != nil || rec.Region == "" {
		return rec, &scoring.InvalidRecordError{Field: "region", Reason: "is empty"}
	}

	numeric := []struct {
		name     string
		dest     *float64
		optional bool
	}{
		{"capture_cost", &rec.CaptureCost, false},
		{"transport_cost", &rec.TransportCost, false},
		{"storage_cost", &rec.StorageCost, false},
		{"co2_price", &rec.CO2Price, false},
		{"co2_volume", &rec.CO2Volume, false},
		{"production_rate", &rec.ProductionRate, true},
		{"reliability_score", &rec.ReliabilityScore, false},
		{"profit_margin", &rec.ProfitMargin, false},
		{"eroi", &rec.EROI, false},
		{"carbon_neutrality_score", &rec.CarbonNeutralityScore, false},
		{"env_friendly_score", &rec.EnvFriendlyScore, false},
	}
	for _, f := range numeric {
		n, ok := lookup(fields, f.name)
		if !ok {
			if f.optional {
				continue
			}
			return rec, &scoring.InvalidRecordError{Field: f.name, Reason: "is missing"}
		}
		if err := n.Decode(f.dest); err != nil {
			return rec, &scoring.InvalidRecordError{Field: f.name, Reason: "is not numeric"}
		}
	}

	return rec, scoring.ValidateRecord(&rec)
}

// lookup returns the value node for name. An explicit null (JSON null, YAML ~)
// counts as absent.
func lookup(fields map[string]yaml.Node, name string) (*yaml.Node, bool) {
	n, ok := fields[name]
	if !ok || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null") {
		return nil, false
	}
	return &n, true
}
