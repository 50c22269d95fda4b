package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/CCS/internal/engine"
	"github.com/MikeSquared-Agency/CCS/internal/query"
	"github.com/MikeSquared-Agency/CCS/internal/scoring"
)

// Pipeline is the read/write surface the API needs from the engine.
type Pipeline interface {
	Snapshot() engine.Snapshot
	Weights() scoring.WeightConfig
	SetWeights(ctx context.Context, w scoring.WeightConfig, source string) (engine.Snapshot, error)
	Find(id uuid.UUID) (scoring.ScoredRecord, bool)
	SourceCount(ctx context.Context) (int, error)
}

type RecordsHandler struct {
	pipeline Pipeline
}

func NewRecordsHandler(p Pipeline) *RecordsHandler {
	return &RecordsHandler{pipeline: p}
}

// parseFilter reads ?year= and ?region=. An unparsable year is a client error.
func parseFilter(r *http.Request) (query.Filter, error) {
	f := query.Filter{Region: r.URL.Query().Get("region")}
	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return f, err
		}
		f.Year = &year
	}
	return f, nil
}

// List handles GET /api/v1/records
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	writeJSON(w, http.StatusOK, query.Apply(h.pipeline.Snapshot().Records, f))
}

// Table handles GET /api/v1/table
func (h *RecordsHandler) Table(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	writeJSON(w, http.StatusOK, query.Table(query.Apply(h.pipeline.Snapshot().Records, f)))
}

type KeysResponse struct {
	Years   []int    `json:"years"`
	Regions []string `json:"regions"`
}

// Keys handles GET /api/v1/keys
func (h *RecordsHandler) Keys(w http.ResponseWriter, r *http.Request) {
	records := h.pipeline.Snapshot().Records
	writeJSON(w, http.StatusOK, KeysResponse{
		Years:   query.Years(records),
		Regions: query.Regions(records),
	})
}

// Series handles GET /api/v1/series
func (h *RecordsHandler) Series(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.Series(h.pipeline.Snapshot().Records))
}

// Frontier handles GET /api/v1/frontier
func (h *RecordsHandler) Frontier(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.Frontier(h.pipeline.Snapshot().Records))
}

type InvalidRecord struct {
	Index    int    `json:"index"`
	RecordID string `json:"record_id,omitempty"`
	Error    string `json:"error"`
}

type StatusResponse struct {
	// SourceRecords is absent when the store cannot be reached.
	SourceRecords *int                 `json:"source_records,omitempty"`
	SourceError   string               `json:"source_error,omitempty"`
	Records       int                  `json:"records"`
	Invalid       []InvalidRecord      `json:"invalid"`
	Weights       scoring.WeightConfig `json:"weights"`
	ComputedAt    time.Time            `json:"computed_at"`
}

// Status handles GET /api/v1/status
func (h *RecordsHandler) Status(w http.ResponseWriter, r *http.Request) {
	snap := h.pipeline.Snapshot()
	invalid := make([]InvalidRecord, 0, len(snap.Errors))
	for _, re := range snap.Errors {
		invalid = append(invalid, InvalidRecord{Index: re.Index, RecordID: re.ID, Error: re.Err.Error()})
	}
	resp := StatusResponse{
		Records:    len(snap.Records),
		Invalid:    invalid,
		Weights:    snap.Weights,
		ComputedAt: snap.ComputedAt,
	}
	if n, err := h.pipeline.SourceCount(r.Context()); err != nil {
		resp.SourceError = err.Error()
	} else {
		resp.SourceRecords = &n
	}
	writeJSON(w, http.StatusOK, resp)
}

// Explain returns the scoring breakdown for one record.
// GET /api/v1/records/{id}/explain
func (h *RecordsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	rec, ok := h.pipeline.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}

	var weightSum float64
	for _, f := range rec.Factors {
		weightSum += f.Weight
	}

	resp := map[string]interface{}{
		"id":                   rec.ID,
		"year":                 rec.Year,
		"region":               rec.Region,
		"sustainability_score": rec.SustainabilityScore,
		"net_benefit":          rec.NetBenefit,
		"factors":              rec.Factors,
		"weight_sum":           weightSum,
	}
	writeJSON(w, http.StatusOK, resp)
}
