package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the ccs_indicators table read by PostgresStore.
const Schema = `CREATE TABLE IF NOT EXISTS ccs_indicators (
	record_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	seq BIGSERIAL NOT NULL,
	year INT NOT NULL,
	region TEXT NOT NULL,
	capture_cost DOUBLE PRECISION NOT NULL,
	transport_cost DOUBLE PRECISION NOT NULL,
	storage_cost DOUBLE PRECISION NOT NULL,
	co2_price DOUBLE PRECISION NOT NULL,
	co2_volume DOUBLE PRECISION NOT NULL,
	production_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	reliability_score DOUBLE PRECISION NOT NULL,
	profit_margin DOUBLE PRECISION NOT NULL,
	eroi DOUBLE PRECISION NOT NULL,
	carbon_neutrality_score DOUBLE PRECISION NOT NULL,
	env_friendly_score DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
ALTER TABLE ccs_indicators ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
CREATE INDEX IF NOT EXISTS idx_ccs_indicators_year_region ON ccs_indicators (year, region, seq);`

// A NULL record_id falls back to a generated one.
const insertRecordSQL = `INSERT INTO ccs_indicators (record_id, year, region,
	capture_cost, transport_cost, storage_cost, co2_price, co2_volume,
	production_rate,
	reliability_score, profit_margin, eroi, carbon_neutrality_score, env_friendly_score)
VALUES (COALESCE($1::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// SeedRecords creates the schema if needed and inserts records in one batch,
// keeping their ids when set. Rows are read back in insertion order within a
// (year, region) key. It loads input data for the postgres source; scored
// results are never stored.
func SeedRecords(ctx context.Context, pool *pgxpool.Pool, records []IndicatorRecord) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(insertRecordSQL,
			recordID(r.ID), r.Year, r.Region,
			r.CaptureCost, r.TransportCost, r.StorageCost, r.CO2Price, r.CO2Volume,
			r.ProductionRate,
			r.ReliabilityScore, r.ProfitMargin, r.EROI, r.CarbonNeutralityScore, r.EnvFriendlyScore,
		)
	}

	br := pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return nil
}

func recordID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
