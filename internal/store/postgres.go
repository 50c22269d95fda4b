package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads indicator records from the ccs_indicators table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const recordColumns = `record_id, year, region,
	capture_cost, transport_cost, storage_cost, co2_price, co2_volume,
	production_rate,
	reliability_score, profit_margin, eroi, carbon_neutrality_score, env_friendly_score`

func (s *PostgresStore) ListRecords(ctx context.Context, filter RecordFilter) ([]*IndicatorRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM ccs_indicators WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Year != nil {
		n++
		query += fmt.Sprintf(" AND year = $%d", n)
		args = append(args, *filter.Year)
	}
	if filter.Region != "" {
		n++
		query += fmt.Sprintf(" AND region = $%d", n)
		args = append(args, filter.Region)
	}

	query += " ORDER BY year ASC, region ASC, seq ASC"

	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *PostgresStore) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ccs_indicators`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func scanRecords(rows pgx.Rows) ([]*IndicatorRecord, error) {
	var records []*IndicatorRecord
	for rows.Next() {
		r := &IndicatorRecord{}
		if err := rows.Scan(
			&r.ID, &r.Year, &r.Region,
			&r.CaptureCost, &r.TransportCost, &r.StorageCost, &r.CO2Price, &r.CO2Volume,
			&r.ProductionRate,
			&r.ReliabilityScore, &r.ProfitMargin, &r.EROI, &r.CarbonNeutralityScore, &r.EnvFriendlyScore,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
