package dynamo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pscheid92/mindpulse/internal/domain"
	"github.com/pscheid92/mindpulse/internal/metrics"
	"github.com/sony/gobreaker"
)

// BreakerStore wraps an entry store with a circuit breaker so a degraded
// DynamoDB does not pile up slow requests. Trips after 5 consecutive
// failures, probes again after 30 seconds.
type BreakerStore struct {
	inner domain.EntryStore
	cb    *gobreaker.CircuitBreaker
}

func NewBreakerStore(inner domain.EntryStore) *BreakerStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "entry-store",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				"component", name,
				"from", from.String(),
				"to", to.String(),
			)
			metrics.CircuitBreakerStateChanges.WithLabelValues(name, to.String()).Inc()
		},
	})
	return &BreakerStore{inner: inner, cb: cb}
}

func (s *BreakerStore) FetchEntries(ctx context.Context, userID string) ([]domain.Entry, error) {
	result, err := s.cb.Execute(func() (any, error) {
		return s.inner.FetchEntries(ctx, userID)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnhealthy, err)
		}
		return nil, err
	}
	entries, _ := result.([]domain.Entry)
	return entries, nil
}

func (s *BreakerStore) ListUsers(ctx context.Context) ([]string, error) {
	result, err := s.cb.Execute(func() (any, error) {
		return s.inner.ListUsers(ctx)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnhealthy, err)
		}
		return nil, err
	}
	users, _ := result.([]string)
	return users, nil
}
