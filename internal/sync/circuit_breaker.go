// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mirrarr/internal/logging"
	"github.com/tomtom215/mirrarr/internal/metrics"
	"github.com/tomtom215/mirrarr/internal/models"
)

// BreakerArrClient wraps an ArrClient with a circuit breaker so a dead
// or slow instance stops consuming the pacing budget of every sync run.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout calculations. Tests exercise the wrapped client directly.
type BreakerArrClient struct {
	client ArrClient
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

// Ensure BreakerArrClient implements ArrClient.
var _ ArrClient = (*BreakerArrClient)(nil)

// NewBreakerArrClient wraps client with a named circuit breaker.
// Opens after a 60% failure rate over at least 5 requests; recovers
// through a half-open probe after 1 minute.
func NewBreakerArrClient(name string, client ArrClient) *BreakerArrClient {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", breakerStateString(from)).
				Str("to", breakerStateString(to)).
				Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateFloat(to))
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerArrClient{client: client, cb: cb, name: name}
}

func (b *BreakerArrClient) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		counts := b.cb.Counts()
		metrics.CircuitBreakerFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
	}
	return result, err
}

func (b *BreakerArrClient) Ping(ctx context.Context) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.client.Ping(ctx)
	})
	return err
}

func (b *BreakerArrClient) Lookup(ctx context.Context, ev *Event) (bool, error) {
	result, err := b.execute(func() (any, error) {
		return b.client.Lookup(ctx, ev)
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func (b *BreakerArrClient) Add(ctx context.Context, ev *Event) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.client.Add(ctx, ev)
	})
	return err
}

func (b *BreakerArrClient) RootFolders(ctx context.Context) ([]models.RootFolder, error) {
	result, err := b.execute(func() (any, error) {
		return b.client.RootFolders(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.RootFolder), nil
}

func (b *BreakerArrClient) QualityProfiles(ctx context.Context) ([]models.QualityProfile, error) {
	result, err := b.execute(func() (any, error) {
		return b.client.QualityProfiles(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.QualityProfile), nil
}

func (b *BreakerArrClient) LanguageProfiles(ctx context.Context) ([]models.LanguageProfile, error) {
	result, err := b.execute(func() (any, error) {
		return b.client.LanguageProfiles(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.LanguageProfile), nil
}

func (b *BreakerArrClient) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	result, err := b.execute(func() (any, error) {
		return b.client.SystemStatus(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.SystemStatus), nil
}

func breakerStateString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func breakerStateFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
