// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"context"
	"time"

	"github.com/tomtom215/mirrarr/internal/logging"
	"github.com/tomtom215/mirrarr/internal/metrics"
)

// Per-target sync outcome statuses.
const (
	SyncAdded   = "added"
	SyncExists  = "already-exists"
	SyncSkipped = "skipped"
	SyncError   = "error"
)

// SyncOutcome records the result of relaying one event to one target
// instance. Transient; aggregated into the HTTP response and discarded.
type SyncOutcome struct {
	Target string
	Status string
	Detail string
	Err    error
}

// Engine drives classification results through the orchestrator and scan
// dispatcher. It holds the immutable registry snapshot and a client
// factory; it has no other shared mutable state, so concurrent runs need
// no locking.
type Engine struct {
	registry *Registry
	factory  ClientFactory

	// sleep is injectable so tests can record pacing instead of waiting.
	sleep func(time.Duration)
}

// NewEngine builds an engine over a registry snapshot.
func NewEngine(reg *Registry, factory ClientFactory) *Engine {
	return &Engine{
		registry: reg,
		factory:  factory,
		sleep:    time.Sleep,
	}
}

// SetSleepFunc replaces the pacing sleep. Test hook.
func (e *Engine) SetSleepFunc(fn func(time.Duration)) {
	e.sleep = fn
}

// Registry returns the engine's registry snapshot.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Synchronize relays an actionable event onto every eligible same-kind
// target, sequentially, with delay/interval pacing. Per-target errors
// are recorded and never abort remaining targets. Outcomes are returned
// in target-processing order.
//
// Events that are not actionable (deletes, renames, tests, unknown
// types) and events the source has not enabled produce an empty outcome
// list; an event whose media kind cannot be resolved produces a single
// skipped outcome for the event itself.
func (e *Engine) Synchronize(ctx context.Context, ev *Event, source *Instance) []SyncOutcome {
	log := logging.Ctx(ctx)

	if ev.Kind == KindUnknown {
		return []SyncOutcome{{
			Target: source.Name,
			Status: SyncSkipped,
			Detail: "unclassified media kind",
		}}
	}
	if !source.EventEnabled(ev) {
		log.Debug().
			Str("source", source.Name).
			Str("event_type", ev.RawType).
			Msg("Event type not enabled for source, skipping sync")
		return nil
	}
	if !ev.Actionable() {
		return nil
	}

	targets := e.registry.Targets(source, ev)
	if len(targets) == 0 {
		log.Debug().Str("source", source.Name).Msg("No eligible sync targets")
		return nil
	}

	// One-time pacing guard before any target work. Rate-limited
	// downstream APIs see the webhook burst from the source instance
	// first; the delay lets it settle.
	if d := e.registry.Delay(); d > 0 {
		log.Debug().Dur("delay", d).Msg("Applying sync delay")
		e.sleep(d)
	}

	outcomes := make([]SyncOutcome, 0, len(targets))
	for i, target := range targets {
		if i > 0 {
			if iv := e.registry.Interval(); iv > 0 {
				log.Debug().Dur("interval", iv).Msg("Applying sync interval")
				e.sleep(iv)
			}
		}
		outcome := e.syncTarget(ctx, ev, target)
		metrics.SyncOutcomes.WithLabelValues(target.Name, outcome.Status).Inc()
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// syncTarget performs the add-or-skip decision against one target. Any
// transport or vendor error is captured in the outcome.
func (e *Engine) syncTarget(ctx context.Context, ev *Event, target *Instance) SyncOutcome {
	log := logging.Ctx(ctx)
	client := e.factory.Arr(target)

	found, err := client.Lookup(ctx, ev)
	if err != nil {
		log.Error().Err(err).
			Str("target", target.Name).
			Str("title", ev.Title).
			Msg("Target lookup failed")
		return SyncOutcome{Target: target.Name, Status: SyncError, Detail: "lookup failed", Err: err}
	}

	if found {
		log.Debug().
			Str("target", target.Name).
			Str("title", ev.Title).
			Msg("Item already exists on target")
		return SyncOutcome{Target: target.Name, Status: SyncExists}
	}

	if err := client.Add(ctx, ev); err != nil {
		log.Error().Err(err).
			Str("target", target.Name).
			Str("title", ev.Title).
			Msg("Target add failed")
		return SyncOutcome{Target: target.Name, Status: SyncError, Detail: "add failed", Err: err}
	}

	log.Info().
		Str("target", target.Name).
		Str("title", ev.Title).
		Int("external_id", ev.ExternalID()).
		Msg("Added item to target")
	return SyncOutcome{Target: target.Name, Status: SyncAdded}
}
