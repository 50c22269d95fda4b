package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/CCS/internal/hermes"
	"github.com/MikeSquared-Agency/CCS/internal/scoring"
	"github.com/MikeSquared-Agency/CCS/internal/store"
)

// ErrInvalidWeights is returned by SetWeights when the configuration fails validation.
var ErrInvalidWeights = errors.New("invalid weights")

// Weight change sources, used as metric labels and event fields.
const (
	SourceAPI    = "api"
	SourceConfig = "config"
	SourceHermes = "hermes"
)

// Snapshot is the result of one recomputation. It is never modified after
// it is published, so readers may hold it without locking.
type Snapshot struct {
	Records    []scoring.ScoredRecord
	Errors     []*scoring.RecordError
	Weights    scoring.WeightConfig
	ComputedAt time.Time
}

// Engine runs the weights -> scored records pipeline over an injected store
// and keeps the latest snapshot for readers.
type Engine struct {
	store  store.Store
	hermes hermes.Client
	logger *slog.Logger

	recomputeMu sync.Mutex

	mu       sync.RWMutex
	weights  scoring.WeightConfig
	snapshot Snapshot

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, h hermes.Client, weights scoring.WeightConfig, logger *slog.Logger) *Engine {
	return &Engine{
		store:   s,
		hermes:  h,
		logger:  logger,
		weights: weights,
		stopCh:  make(chan struct{}),
	}
}

// Start re-reads the store every interval. A zero interval disables refresh.
func (e *Engine) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	e.wg.Add(1)
	go e.refreshLoop(ctx, interval)
}

func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
	e.wg.Wait()
}

func (e *Engine) refreshLoop(ctx context.Context, interval time.Duration) {
	defer e.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.Recompute(ctx); err != nil {
				e.logger.Error("scheduled recompute failed", "error", err)
			}
		}
	}
}

// Weights returns the configuration behind the current snapshot.
func (e *Engine) Weights() scoring.WeightConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weights
}

// Snapshot returns the latest scored dataset.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Find returns the scored record with the given id from the latest snapshot.
func (e *Engine) Find(id uuid.UUID) (scoring.ScoredRecord, bool) {
	snap := e.Snapshot()
	for _, r := range snap.Records {
		if r.ID == id {
			return r, true
		}
	}
	return scoring.ScoredRecord{}, false
}

// SourceCount reports how many records the underlying store holds, valid or not.
func (e *Engine) SourceCount(ctx context.Context) (int, error) {
	n, err := e.store.CountRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Recompute rescores the full dataset with the current weights.
func (e *Engine) Recompute(ctx context.Context) (Snapshot, error) {
	e.recomputeMu.Lock()
	defer e.recomputeMu.Unlock()
	return e.recompute(ctx, e.Weights())
}

// SetWeights validates w, rescores the dataset with it and makes it current.
// If the dataset cannot be read the previous weights stay in effect.
func (e *Engine) SetWeights(ctx context.Context, w scoring.WeightConfig, source string) (Snapshot, error) {
	if err := w.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}

	e.recomputeMu.Lock()
	defer e.recomputeMu.Unlock()

	snap, err := e.recompute(ctx, w)
	if err != nil {
		return Snapshot{}, err
	}

	weightUpdates.WithLabelValues(source).Inc()
	e.logger.Info("weights updated", "source", source, "sum", w.Sum(),
		"profit", w.Profit, "reliability", w.Reliability, "eroi", w.EROI,
		"neutrality", w.Neutrality, "env", w.Env)

	if e.hermes != nil {
		e.publish(hermes.SubjectWeightsUpdated, hermes.WeightsUpdatedEvent{
			Profit:      w.Profit,
			Reliability: w.Reliability,
			EROI:        w.EROI,
			Neutrality:  w.Neutrality,
			Env:         w.Env,
			Sum:         w.Sum(),
			Source:      source,
			Timestamp:   time.Now().UTC(),
		})
	}
	return snap, nil
}

func (e *Engine) recompute(ctx context.Context, w scoring.WeightConfig) (Snapshot, error) {
	start := time.Now()

	records, err := e.store.ListRecords(ctx, store.RecordFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("list records: %w", err)
	}

	result := scoring.NewScorer(w, e.logger).ScoreAll(records)
	snap := Snapshot{
		Records:    result.Scored,
		Errors:     result.Errors,
		Weights:    w,
		ComputedAt: time.Now().UTC(),
	}

	e.mu.Lock()
	e.weights = w
	e.snapshot = snap
	e.mu.Unlock()

	elapsed := time.Since(start)
	recomputeDuration.Observe(elapsed.Seconds())
	recordsScored.Add(float64(len(result.Scored)))
	invalidRecords.Add(float64(len(result.Errors)))
	datasetRecords.Set(float64(len(result.Scored)))

	for _, re := range result.Errors {
		e.logger.Warn("invalid record skipped", "index", re.Index, "record_id", re.ID, "error", re.Err)
		e.publishInvalid(re)
	}

	summary := summarize(snap.Records)
	summary.Invalid = len(result.Errors)
	summary.DurationMs = float64(elapsed.Microseconds()) / 1000
	summary.Timestamp = snap.ComputedAt

	e.logger.Info("scores recomputed",
		"records", summary.Records,
		"invalid", summary.Invalid,
		"mean_score", summary.MeanScore,
		"duration_ms", summary.DurationMs,
	)
	if e.hermes != nil {
		e.publish(hermes.SubjectScoresRecomputed, summary)
	}
	return snap, nil
}

func (e *Engine) publishInvalid(re *scoring.RecordError) {
	if e.hermes == nil {
		return
	}
	ev := hermes.RecordInvalidEvent{Index: re.Index, Reason: re.Err.Error()}
	var invalid *scoring.InvalidRecordError
	if errors.As(re, &invalid) {
		ev.Field = invalid.Field
		ev.Reason = invalid.Reason
	}
	e.publish(hermes.SubjectRecordInvalid(strconv.Itoa(re.Index)), ev)
}

// publish sends an event and logs a failure; scoring never waits on events.
func (e *Engine) publish(subject string, data interface{}) {
	if err := e.hermes.Publish(subject, data); err != nil {
		e.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}

// SetupSubscriptions applies weight configurations published on
// hermes.SubjectWeightsSet.
func (e *Engine) SetupSubscriptions(ctx context.Context) error {
	if e.hermes == nil {
		return nil
	}
	return e.hermes.Subscribe(hermes.SubjectWeightsSet, func(subject string, data []byte) {
		var w scoring.WeightConfig
		if err := json.Unmarshal(data, &w); err != nil {
			e.logger.Warn("malformed weights message", "subject", subject, "error", err)
			return
		}
		if _, err := e.SetWeights(ctx, w, SourceHermes); err != nil {
			e.logger.Warn("rejected weights message", "subject", subject, "error", err)
		}
	})
}

func summarize(records []scoring.ScoredRecord) hermes.ScoresRecomputedEvent {
	ev := hermes.ScoresRecomputedEvent{Records: len(records)}
	if len(records) == 0 {
		return ev
	}
	ev.MinScore = math.Inf(1)
	ev.MaxScore = math.Inf(-1)
	var sum float64
	for _, r := range records {
		ev.MinScore = math.Min(ev.MinScore, r.SustainabilityScore)
		ev.MaxScore = math.Max(ev.MaxScore, r.SustainabilityScore)
		sum += r.SustainabilityScore
		ev.TotalNet += r.NetBenefit
	}
	ev.MeanScore = sum / float64(len(records))
	return ev
}
