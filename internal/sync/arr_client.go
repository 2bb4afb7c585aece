// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/mirrarr/internal/config"
	"github.com/tomtom215/mirrarr/internal/models"
)

// ArrClient is the capability contract the orchestrator consumes for one
// Sonarr or Radarr instance. Concrete implementations exist per vendor
// kind and are selected once at factory time by the stored kind field,
// never by runtime type inspection. All calls carry a bounded timeout;
// timeouts surface as transport errors, never left pending.
type ArrClient interface {
	// Ping verifies connectivity and credentials.
	Ping(ctx context.Context) error

	// Lookup finds an existing item by the event's external id. A nil
	// error with found=false means the instance answered and has no
	// matching item.
	Lookup(ctx context.Context, ev *Event) (found bool, err error)

	// Add creates the event's item on the instance using the instance's
	// own root folder and profile settings.
	Add(ctx context.Context, ev *Event) error

	// RootFolders lists the instance's configured root folders.
	RootFolders(ctx context.Context) ([]models.RootFolder, error)

	// QualityProfiles lists the instance's quality profiles.
	QualityProfiles(ctx context.Context) ([]models.QualityProfile, error)

	// LanguageProfiles lists language profiles. Radarr has none and
	// returns an empty list.
	LanguageProfiles(ctx context.Context) ([]models.LanguageProfile, error)

	// SystemStatus fetches version information for connection tests.
	SystemStatus(ctx context.Context) (*models.SystemStatus, error)
}

// ClientFactory builds vendor clients for registry entries. The engine
// consumes this interface so tests can substitute fakes.
type ClientFactory interface {
	Arr(inst *Instance) ArrClient
	Server(srv *MediaServer) MediaServerClient
}

const (
	// vendorTimeout bounds every outbound vendor call.
	vendorTimeout = 30 * time.Second

	// arrRequestRate caps outbound request rate per arr instance. Arr
	// APIs tolerate bursts poorly when several relays fire at once.
	arrRequestRate  = rate.Limit(5)
	arrRequestBurst = 10
)

// HTTPClientFactory builds real HTTP-backed vendor clients, wraps arr
// clients in circuit breakers, and caches them per registry entry name
// so breaker state survives across requests.
type HTTPClientFactory struct {
	mu      sync.Mutex
	arrs    map[string]ArrClient
	servers map[string]MediaServerClient
}

// NewHTTPClientFactory returns an empty factory.
func NewHTTPClientFactory() *HTTPClientFactory {
	return &HTTPClientFactory{
		arrs:    make(map[string]ArrClient),
		servers: make(map[string]MediaServerClient),
	}
}

// Arr returns the cached client for the instance, building it on first
// use.
func (f *HTTPClientFactory) Arr(inst *Instance) ArrClient {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.arrs[inst.Name]; ok {
		return c
	}

	client := NewBreakerArrClient(inst.Name, NewArrClient(inst))
	f.arrs[inst.Name] = client
	return client
}

// NewArrClient builds the bare vendor client for an instance, selected
// by its kind. Callers that need breaker protection wrap it themselves.
func NewArrClient(inst *Instance) ArrClient {
	if inst.Kind == config.KindRadarr {
		return NewRadarrClient(inst)
	}
	return NewSonarrClient(inst)
}

// Server returns the cached client for the media server, building it on
// first use.
func (f *HTTPClientFactory) Server(srv *MediaServer) MediaServerClient {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.servers[srv.Name]; ok {
		return c
	}

	var client MediaServerClient
	switch srv.Kind {
	case config.KindPlex:
		client = NewPlexClient(srv.Name, srv.URL, srv.Credential)
	case config.KindEmby:
		client = NewEmbyClient(srv.Name, srv.URL, srv.Credential)
	default:
		client = NewJellyfinClient(srv.Name, srv.URL, srv.Credential)
	}
	f.servers[srv.Name] = client
	return client
}

// newVendorHTTPClient returns the shared http.Client shape for vendor
// calls.
func newVendorHTTPClient() *http.Client {
	return &http.Client{
		Timeout: vendorTimeout,
	}
}
