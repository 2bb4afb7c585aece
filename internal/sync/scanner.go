// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"context"

	"github.com/tomtom215/mirrarr/internal/logging"
	"github.com/tomtom215/mirrarr/internal/metrics"
	"github.com/tomtom215/mirrarr/internal/models"
)

// Per-server scan outcome statuses.
const (
	ScanSuccess = "success"
	ScanError   = "error"
)

// ScanOutcome records the result of one media server scan attempt.
type ScanOutcome struct {
	Server     string
	ServerType string
	Status     string
	SectionID  string
	Err        error
}

// DispatchScans triggers a scoped scan on every enabled media server for
// a scan-eligible event. Each server gets the event path rewritten with
// its own rules before section resolution. Per-server failures are
// recorded and never abort remaining servers.
//
// The aggregate status is "ok" when every server succeeded, "warning"
// when at least one did, "error" when none did. A scan-eligible event
// that reaches zero servers (none enabled, or the manual filter matched
// nothing) scanned nothing and aggregates to "error".
func (e *Engine) DispatchScans(ctx context.Context, ev *Event) ([]ScanOutcome, string) {
	log := logging.Ctx(ctx)

	if !ev.ScanEligible() {
		return nil, models.StatusOK
	}

	servers := e.registry.Servers()
	if ev.Manual && len(ev.Servers) > 0 {
		servers = filterServers(servers, ev.Servers)
	}
	if len(servers) == 0 {
		log.Warn().Msg("No enabled media servers to scan")
		return nil, models.StatusError
	}

	outcomes := make([]ScanOutcome, 0, len(servers))
	for i := range servers {
		srv := &servers[i]
		outcome := e.scanServer(ctx, ev, srv)
		metrics.ScanOutcomes.WithLabelValues(srv.Name, srv.Kind, outcome.Status).Inc()
		outcomes = append(outcomes, outcome)
	}
	return outcomes, aggregateScanStatus(outcomes)
}

// scanServer resolves the section for one server and triggers the scan.
func (e *Engine) scanServer(ctx context.Context, ev *Event, srv *MediaServer) ScanOutcome {
	log := logging.Ctx(ctx)
	client := e.factory.Server(srv)

	path := RewritePath(ev.Path, srv.Rewrite)
	log.Debug().
		Str("server", srv.Name).
		Str("path", path).
		Msg("Resolving library section")

	section, err := client.ResolveSection(ctx, path, ev.Kind)
	if err != nil {
		log.Error().Err(err).
			Str("server", srv.Name).
			Str("path", path).
			Msg("Section resolution failed")
		return ScanOutcome{Server: srv.Name, ServerType: srv.Kind, Status: ScanError, Err: err}
	}

	if err := client.Scan(ctx, section, path); err != nil {
		log.Error().Err(err).
			Str("server", srv.Name).
			Str("section", section.ID).
			Msg("Scan trigger failed")
		return ScanOutcome{Server: srv.Name, ServerType: srv.Kind, Status: ScanError, SectionID: section.ID, Err: err}
	}

	log.Info().
		Str("server", srv.Name).
		Str("section", section.ID).
		Str("path", path).
		Msg("Scan triggered")
	return ScanOutcome{Server: srv.Name, ServerType: srv.Kind, Status: ScanSuccess, SectionID: section.ID}
}

func filterServers(servers []MediaServer, names []string) []MediaServer {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	var filtered []MediaServer
	for _, s := range servers {
		if allowed[s.Name] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func aggregateScanStatus(outcomes []ScanOutcome) string {
	succeeded := 0
	for _, o := range outcomes {
		if o.Status == ScanSuccess {
			succeeded++
		}
	}
	switch {
	case succeeded == len(outcomes):
		return models.StatusOK
	case succeeded > 0:
		return models.StatusWarning
	default:
		return models.StatusError
	}
}
