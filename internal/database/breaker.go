package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/google/uuid"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
	"github.com/Tanishqstar/sentiment-command-center/internal/metrics"
)

// BreakerStore wraps a record store with a circuit breaker so a dead
// store fails fast instead of piling up fetches. The cache degrades to
// serving its stale snapshot while the circuit is open.
type BreakerStore struct {
	inner domain.RecordStore
	cb    circuitbreaker.CircuitBreaker[any]
}

var _ domain.RecordStore = (*BreakerStore)(nil)

// NewBreakerStore wraps inner with a circuit breaker:
// 60% failure rate over min 5 requests in a 10s rolling window opens
// the circuit, 30s delay before half-open, 1 success closes it.
func NewBreakerStore(inner domain.RecordStore) *BreakerStore {
	cb := circuitbreaker.NewBuilder[any]().
		WithFailureRateThreshold(0.6, 5, 10*time.Second).
		WithDelay(30 * time.Second).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", "record_store",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)
			metrics.CircuitBreakerStateChanges.WithLabelValues("record_store", e.NewState.String()).Inc()
			metrics.CircuitBreakerState.WithLabelValues("record_store").Set(stateToFloat(e.NewState))
		}).
		Build()

	return &BreakerStore{inner: inner, cb: cb}
}

func (s *BreakerStore) QueryAll(ctx context.Context) ([]domain.FeedbackRecord, error) {
	if !s.cb.TryAcquirePermit() {
		return nil, fmt.Errorf("record store query: %w", circuitbreaker.ErrOpen)
	}
	records, err := s.inner.QueryAll(ctx)
	s.record(err)
	return records, err
}

func (s *BreakerStore) Insert(ctx context.Context, nf domain.NewFeedback) (*domain.FeedbackRecord, error) {
	if !s.cb.TryAcquirePermit() {
		return nil, fmt.Errorf("record store insert: %w", circuitbreaker.ErrOpen)
	}
	record, err := s.inner.Insert(ctx, nf)
	s.record(err)
	return record, err
}

func (s *BreakerStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResolutionStatus) error {
	if !s.cb.TryAcquirePermit() {
		return fmt.Errorf("record store update: %w", circuitbreaker.ErrOpen)
	}
	err := s.inner.UpdateStatus(ctx, id, status)
	s.record(err)
	return err
}

func (s *BreakerStore) record(err error) {
	// A missing record is a caller mistake, not store trouble.
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		s.cb.RecordError(err)
		return
	}
	s.cb.RecordSuccess()
}

func stateToFloat(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}
