package store

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// MemoryStore serves a dataset built once by an input provider.
type MemoryStore struct {
	records []*IndicatorRecord
}

// NewMemoryStore copies records into a new store, assigning ids to records
// that arrive without one. Records are kept ordered by year then region;
// records sharing a key keep their input order.
func NewMemoryStore(records []IndicatorRecord) *MemoryStore {
	out := make([]*IndicatorRecord, 0, len(records))
	for i := range records {
		rec := records[i]
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		out = append(out, &rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Region < out[j].Region
	})
	return &MemoryStore{records: out}
}

func (s *MemoryStore) ListRecords(_ context.Context, filter RecordFilter) ([]*IndicatorRecord, error) {
	var matched []*IndicatorRecord
	for _, rec := range s.records {
		if filter.Matches(rec) {
			cp := *rec
			matched = append(matched, &cp)
		}
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *MemoryStore) CountRecords(_ context.Context) (int, error) {
	return len(s.records), nil
}

func (s *MemoryStore) Close() error { return nil }
