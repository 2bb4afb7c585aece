// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &fakeArrClient{found: true}
	client := NewBreakerArrClient("breaker-pass", inner)

	found, err := client.Lookup(context.Background(), &Event{TVDBID: 1, Kind: KindSeries})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !found {
		t.Error("result not passed through")
	}
	if inner.lookupCalls != 1 {
		t.Errorf("inner lookup calls = %d", inner.lookupCalls)
	}
}

func TestBreakerPropagatesErrors(t *testing.T) {
	wantErr := errors.New("connection refused")
	inner := &fakeArrClient{lookupErr: wantErr}
	client := NewBreakerArrClient("breaker-err", inner)

	_, err := client.Lookup(context.Background(), &Event{TVDBID: 1, Kind: KindSeries})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped inner error", err)
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	inner := &fakeArrClient{lookupErr: errors.New("down")}
	client := NewBreakerArrClient("breaker-open", inner)

	ev := &Event{TVDBID: 1, Kind: KindSeries}
	for i := 0; i < 10; i++ {
		_, _ = client.Lookup(context.Background(), ev)
	}

	_, err := client.Lookup(context.Background(), ev)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState after sustained failures", err)
	}
	// The open breaker short-circuits; the inner client stops seeing
	// traffic.
	callsWhenOpened := inner.lookupCalls
	_, _ = client.Lookup(context.Background(), ev)
	if inner.lookupCalls != callsWhenOpened {
		t.Errorf("inner client called while breaker open")
	}
}
