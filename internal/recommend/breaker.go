package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/iliyamo/ticketr/internal/metrics"
	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/repository"
)

const breakerName = "event_search"

// BreakerSearcher fails fast once the event store has failed too many times
// in a row. While open, Recommend answers with the apology.
type BreakerSearcher struct {
	inner EventSearcher
	cb    *gobreaker.CircuitBreaker[[]model.Event]
}

// NewBreakerSearcher opens after failures consecutive errors and probes
// again after timeout.
func NewBreakerSearcher(inner EventSearcher, failures uint32, timeout time.Duration) *BreakerSearcher {
	if failures == 0 {
		failures = 1
	}
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A caller hanging up says nothing about the store.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, _, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	}
	metrics.BreakerState.WithLabelValues(breakerName).Set(float64(gobreaker.StateClosed))
	return &BreakerSearcher{inner: inner, cb: gobreaker.NewCircuitBreaker[[]model.Event](settings)}
}

// SearchUpcoming runs the inner search through the breaker.
func (b *BreakerSearcher) SearchUpcoming(ctx context.Context, q repository.EventSearch) ([]model.Event, error) {
	return b.cb.Execute(func() ([]model.Event, error) {
		return b.inner.SearchUpcoming(ctx, q)
	})
}

func (b *BreakerSearcher) ListUpcoming(ctx context.Context, limit int) ([]model.Event, error) {
	return b.cb.Execute(func() ([]model.Event, error) {
		return b.inner.ListUpcoming(ctx, limit)
	})
}

// State reports the breaker state ("closed", "half-open" or "open").
func (b *BreakerSearcher) State() string { return b.cb.State().String() }
