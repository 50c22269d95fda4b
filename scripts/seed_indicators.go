// seed_indicators.go generates a synthetic indicator dataset and either loads
// it into Postgres or writes it as a dataset file for the file source.
//
// Usage:
//
//	go run scripts/seed_indicators.go -database postgres://localhost/ccs -seed 7
//	go run scripts/seed_indicators.go -out testdata/indicators.yaml -start 2015 -end 2030
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/CCS/internal/dataset"
	"github.com/MikeSquared-Agency/CCS/internal/store"
)

type document struct {
	Records []store.IndicatorRecord `json:"records" yaml:"records"`
}

func main() {
	defaults := dataset.DefaultGeneratorConfig()

	databaseURL := flag.String("database", "", "Postgres URL to seed")
	outPath := flag.String("out", "", "write the dataset to this .yaml or .json file")
	seed := flag.Uint64("seed", defaults.Seed, "generator seed")
	start := flag.Int("start", defaults.StartYear, "first year")
	end := flag.Int("end", defaults.EndYear, "last year")
	regions := flag.String("regions", strings.Join(defaults.Regions, ","), "comma-separated regions")
	dryRun := flag.Bool("dry-run", false, "print records without writing")
	flag.Parse()

	records := dataset.Generate(dataset.GeneratorConfig{
		Seed:      *seed,
		StartYear: *start,
		EndYear:   *end,
		Regions:   strings.Split(*regions, ","),
	})
	log.Printf("generated %d records", len(records))

	if *dryRun {
		for _, r := range records {
			log.Printf("  %d %-10s capture=%.0f transport=%.0f storage=%.0f price=%.2f volume=%.0f",
				r.Year, r.Region, r.CaptureCost, r.TransportCost, r.StorageCost, r.CO2Price, r.CO2Volume)
		}
		return
	}

	if *databaseURL == "" && *outPath == "" {
		log.Fatal("one of -database or -out is required")
	}

	if *outPath != "" {
		if err := writeFile(*outPath, records); err != nil {
			log.Fatalf("write dataset: %v", err)
		}
		log.Printf("wrote %s", *outPath)
	}

	if *databaseURL != "" {
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, *databaseURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()

		if err := store.SeedRecords(ctx, pool, records); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("seeded %d records into ccs_indicators", len(records))
	}
}

func writeFile(path string, records []store.IndicatorRecord) error {
	for i := range records {
		records[i].ID = uuid.New()
	}
	doc := document{Records: records}

	var data []byte
	var err error
	if filepath.Ext(path) == ".json" {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
