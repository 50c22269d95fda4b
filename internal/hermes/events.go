package hermes

import "time"

type WeightsUpdatedEvent struct {
	Profit      float64   `json:"profit"`
	Reliability float64   `json:"reliability"`
	EROI        float64   `json:"eroi"`
	Neutrality  float64   `json:"neutrality"`
	Env         float64   `json:"env"`
	Sum         float64   `json:"sum"`
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

type ScoresRecomputedEvent struct {
	Records    int       `json:"records"`
	Invalid    int       `json:"invalid"`
	MinScore   float64   `json:"min_score"`
	MaxScore   float64   `json:"max_score"`
	MeanScore  float64   `json:"mean_score"`
	TotalNet   float64   `json:"total_net_benefit"`
	DurationMs float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

type RecordInvalidEvent struct {
	Index  int    `json:"index"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}
