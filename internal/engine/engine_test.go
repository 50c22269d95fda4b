package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/CCS/internal/hermes"
	"github.com/MikeSquared-Agency/CCS/internal/scoring"
	"github.com/MikeSquared-Agency/CCS/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockHermes implements hermes.Client for testing
type MockHermes struct {
	mock.Mock

	mu       sync.Mutex
	handlers map[string]func(string, []byte)
}

func (m *MockHermes) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func (m *MockHermes) Subscribe(subject string, handler func(string, []byte)) error {
	m.mu.Lock()
	if m.handlers == nil {
		m.handlers = make(map[string]func(string, []byte))
	}
	m.handlers[subject] = handler
	m.mu.Unlock()
	return nil
}

func (m *MockHermes) Close() {}

func (m *MockHermes) deliver(subject string, data []byte) {
	m.mu.Lock()
	h := m.handlers[subject]
	m.mu.Unlock()
	h(subject, data)
}

type failingStore struct{}

func (failingStore) ListRecords(context.Context, store.RecordFilter) ([]*store.IndicatorRecord, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) CountRecords(context.Context) (int, error) { return 0, errors.New("connection refused") }
func (failingStore) Close() error                              { return nil }

func testRecords() []store.IndicatorRecord {
	return []store.IndicatorRecord{
		{
			Year: 2020, Region: "SouthSea",
			CaptureCost: 60, TransportCost: 10, StorageCost: 12, CO2Price: 80, CO2Volume: 100000,
			ProfitMargin: 0.25, ReliabilityScore: 0.8, EROI: 4, CarbonNeutralityScore: 0.6, EnvFriendlyScore: 0.7,
		},
		{
			Year: 2021, Region: "NorthBay",
			CaptureCost: 50, TransportCost: 5, StorageCost: 8, CO2Price: 90, CO2Volume: 100000,
			ProfitMargin: 0.4, ReliabilityScore: 0.9, EROI: 5, CarbonNeutralityScore: 0.9, EnvFriendlyScore: 0.9,
		},
		{Year: 2022, Region: ""},
	}
}

func TestRecomputeScoresDataset(t *testing.T) {
	e := New(store.NewMemoryStore(testRecords()), nil, scoring.DefaultWeights(), discardLogger())

	snap, err := e.Recompute(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Records, 2)
	require.Len(t, snap.Errors, 1)

	assert.InDelta(t, 52.5, snap.Records[0].SustainabilityScore, 1e-9)
	assert.InDelta(t, -0.2, snap.Records[0].NetBenefit, 1e-9)
	assert.False(t, snap.ComputedAt.IsZero())
	assert.Equal(t, scoring.DefaultWeights(), snap.Weights)
	assert.Equal(t, snap.Records, e.Snapshot().Records)
}

func TestSetWeightsRecomputesAndPublishes(t *testing.T) {
	h := &MockHermes{}
	h.On("Publish", hermes.SubjectScoresRecomputed, mock.Anything).Return(nil)
	h.On("Publish", hermes.SubjectRecordInvalid("2"), mock.MatchedBy(func(ev hermes.RecordInvalidEvent) bool {
		return ev.Field == "region"
	})).Return(nil)
	h.On("Publish", hermes.SubjectWeightsUpdated, mock.MatchedBy(func(ev hermes.WeightsUpdatedEvent) bool {
		return ev.Source == SourceAPI && ev.Profit == 1
	})).Return(nil)

	e := New(store.NewMemoryStore(testRecords()), h, scoring.DefaultWeights(), discardLogger())
	_, err := e.Recompute(context.Background())
	require.NoError(t, err)

	snap, err := e.SetWeights(context.Background(), scoring.WeightConfig{Profit: 1}, SourceAPI)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, snap.Records[0].SustainabilityScore, 1e-9)
	assert.InDelta(t, 40.0, snap.Records[1].SustainabilityScore, 1e-9)
	assert.Equal(t, scoring.WeightConfig{Profit: 1}, e.Weights())
	h.AssertExpectations(t)
}

func TestPublishFailureIsLogged(t *testing.T) {
	h := &MockHermes{}
	h.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats: connection closed"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := New(store.NewMemoryStore(testRecords()), h, scoring.DefaultWeights(), logger)

	_, err := e.SetWeights(context.Background(), scoring.WeightConfig{Profit: 1}, SourceAPI)
	require.NoError(t, err, "publish failures must not fail the update")

	out := buf.String()
	assert.Contains(t, out, "event publish failed")
	assert.Contains(t, out, hermes.SubjectScoresRecomputed)
	assert.Contains(t, out, hermes.SubjectWeightsUpdated)
	assert.Contains(t, out, hermes.SubjectRecordInvalid("2"))
}

func TestSetWeightsRejectsInvalid(t *testing.T) {
	e := New(store.NewMemoryStore(testRecords()), nil, scoring.DefaultWeights(), discardLogger())

	_, err := e.SetWeights(context.Background(), scoring.WeightConfig{Env: -1}, SourceAPI)
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = e.SetWeights(context.Background(), scoring.WeightConfig{Env: math.NaN()}, SourceAPI)
	assert.ErrorIs(t, err, ErrInvalidWeights)

	assert.Equal(t, scoring.DefaultWeights(), e.Weights())
}

func TestSetWeightsKeepsPreviousOnStoreFailure(t *testing.T) {
	e := New(failingStore{}, nil, scoring.DefaultWeights(), discardLogger())

	_, err := e.SetWeights(context.Background(), scoring.WeightConfig{Profit: 1}, SourceAPI)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidWeights)
	assert.Equal(t, scoring.DefaultWeights(), e.Weights())
}

func TestSourceCount(t *testing.T) {
	e := New(store.NewMemoryStore(testRecords()), nil, scoring.DefaultWeights(), discardLogger())
	n, err := e.SourceCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	e = New(failingStore{}, nil, scoring.DefaultWeights(), discardLogger())
	_, err = e.SourceCount(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestFind(t *testing.T) {
	recs := testRecords()
	id := uuid.New()
	recs[1].ID = id
	e := New(store.NewMemoryStore(recs), nil, scoring.DefaultWeights(), discardLogger())
	_, err := e.Recompute(context.Background())
	require.NoError(t, err)

	got, ok := e.Find(id)
	require.True(t, ok)
	assert.Equal(t, "NorthBay", got.Region)
	assert.Len(t, got.Factors, 5)

	_, ok = e.Find(uuid.New())
	assert.False(t, ok)
}

func TestSubscriptionAppliesRemoteWeights(t *testing.T) {
	h := &MockHermes{}
	h.On("Publish", mock.Anything, mock.Anything).Return(nil)

	e := New(store.NewMemoryStore(testRecords()), h, scoring.DefaultWeights(), discardLogger())
	require.NoError(t, e.SetupSubscriptions(context.Background()))

	payload, _ := json.Marshal(scoring.WeightConfig{Reliability: 1})
	h.deliver(hermes.SubjectWeightsSet, payload)
	assert.Equal(t, scoring.WeightConfig{Reliability: 1}, e.Weights())

	h.deliver(hermes.SubjectWeightsSet, []byte(`{"profit": -3}`))
	assert.Equal(t, scoring.WeightConfig{Reliability: 1}, e.Weights(), "negative weights must be rejected")

	h.deliver(hermes.SubjectWeightsSet, []byte(`not json`))
	assert.Equal(t, scoring.WeightConfig{Reliability: 1}, e.Weights())
}

func TestSetupSubscriptionsWithoutHermes(t *testing.T) {
	e := New(store.NewMemoryStore(nil), nil, scoring.DefaultWeights(), discardLogger())
	assert.NoError(t, e.SetupSubscriptions(context.Background()))
}

func TestRefreshLoop(t *testing.T) {
	e := New(store.NewMemoryStore(testRecords()), nil, scoring.DefaultWeights(), discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e.Start(ctx, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(e.Snapshot().Records) == 2
	}, 2*time.Second, 10*time.Millisecond)
	e.Stop()
	e.Stop()
}

func TestStartWithZeroIntervalIsNoop(t *testing.T) {
	e := New(store.NewMemoryStore(testRecords()), nil, scoring.DefaultWeights(), discardLogger())
	e.Start(context.Background(), 0)
	e.Stop()
	assert.Empty(t, e.Snapshot().Records)
}

func TestSummarize(t *testing.T) {
	ev := summarize(nil)
	assert.Equal(t, 0, ev.Records)
	assert.Equal(t, 0.0, ev.MinScore)

	recs := []scoring.ScoredRecord{
		{SustainabilityScore: 10, DerivedRecord: scoring.DerivedRecord{NetBenefit: 1}},
		{SustainabilityScore: 30, DerivedRecord: scoring.DerivedRecord{NetBenefit: -0.5}},
	}
	ev = summarize(recs)
	assert.Equal(t, 2, ev.Records)
	assert.Equal(t, 10.0, ev.MinScore)
	assert.Equal(t, 30.0, ev.MaxScore)
	assert.Equal(t, 20.0, ev.MeanScore)
	assert.Equal(t, 0.5, ev.TotalNet)
}
