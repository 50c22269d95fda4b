package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ccs_records_scored_total",
		Help: "Indicator records scored across all recomputations.",
	})
	invalidRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ccs_invalid_records_total",
		Help: "Indicator records skipped because they failed validation.",
	})
	weightUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ccs_weight_updates_total",
		Help: "Accepted weight configuration changes, by source.",
	}, []string{"source"})
	datasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ccs_dataset_records",
		Help: "Scored records in the current snapshot.",
	})
	recomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ccs_recompute_duration_seconds",
		Help:    "Time to list and score the full dataset.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	})
)
