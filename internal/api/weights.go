package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/CCS/internal/engine"
	"github.com/MikeSquared-Agency/CCS/internal/scoring"
)

type WeightsHandler struct {
	pipeline Pipeline
}

func NewWeightsHandler(p Pipeline) *WeightsHandler {
	return &WeightsHandler{pipeline: p}
}

type WeightsResponse struct {
	Weights scoring.WeightConfig `json:"weights"`
	Sum     float64              `json:"sum"`
}

// Get handles GET /api/v1/weights
func (h *WeightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	current := h.pipeline.Weights()
	writeJSON(w, http.StatusOK, WeightsResponse{Weights: current, Sum: current.Sum()})
}

type UpdateWeightsResponse struct {
	Weights scoring.WeightConfig `json:"weights"`
	Sum     float64              `json:"sum"`
	Records int                  `json:"records"`
	Invalid int                  `json:"invalid"`
}

// Update handles PUT /api/v1/weights. The body replaces the whole configuration;
// omitted dimensions are zero.
func (h *WeightsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req scoring.WeightConfig
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.pipeline.SetWeights(r.Context(), req, engine.SourceAPI)
	if errors.Is(err, engine.ErrInvalidWeights) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UpdateWeightsResponse{
		Weights: snap.Weights,
		Sum:     snap.Weights.Sum(),
		Records: len(snap.Records),
		Invalid: len(snap.Errors),
	})
}
