// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"strings"
	"time"

	"github.com/tomtom215/mirrarr/internal/config"
)

// Instance is the runtime view of a configured Sonarr or Radarr
// endpoint. Read-only during a sync run.
type Instance struct {
	Name              string
	Kind              string
	URL               string
	APIKey            string
	RootFolderPath    string
	QualityProfileID  int
	LanguageProfileID int
	SeasonFolder      bool
	SearchOnSync      bool
	EnabledEvents     []string
	Rewrite           []config.RewriteRule
}

// EventEnabled reports whether the instance accepts the event. An empty
// enabled-event set means all events. Names match either the raw vendor
// string or the canonical taxonomy name, case-insensitively.
func (i *Instance) EventEnabled(ev *Event) bool {
	if len(i.EnabledEvents) == 0 {
		return true
	}
	for _, name := range i.EnabledEvents {
		if strings.EqualFold(name, ev.RawType) || strings.EqualFold(name, string(ev.Type)) {
			return true
		}
	}
	return false
}

// MediaServer is the runtime view of a configured media server.
type MediaServer struct {
	Name       string
	Kind       string
	URL        string
	Credential string
	Enabled    bool
	Rewrite    []config.RewriteRule
}

// Registry is the immutable snapshot of configured instances and media
// servers that one orchestration run operates on. It holds pure data;
// vendor clients are built by the engine's client factory.
type Registry struct {
	instances []Instance
	servers   []MediaServer
	delay     time.Duration
	interval  time.Duration
}

// NewRegistry builds a registry snapshot from validated configuration.
// Pacing values were checked at config load time.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{
		delay:    cfg.Sync.DelayDuration(),
		interval: cfg.Sync.IntervalDuration(),
	}
	for _, ic := range cfg.Instances {
		r.instances = append(r.instances, Instance{
			Name:              ic.Name,
			Kind:              ic.Kind,
			URL:               strings.TrimSuffix(ic.URL, "/"),
			APIKey:            ic.APIKey,
			RootFolderPath:    ic.RootFolderPath,
			QualityProfileID:  ic.QualityProfileID,
			LanguageProfileID: ic.LanguageProfileID,
			SeasonFolder:      ic.SeasonFolder,
			SearchOnSync:      ic.SearchOnSync,
			EnabledEvents:     ic.EnabledEvents,
			Rewrite:           ic.Rewrite,
		})
	}
	for _, sc := range cfg.MediaServers {
		r.servers = append(r.servers, MediaServer{
			Name:       sc.Name,
			Kind:       sc.Kind,
			URL:        strings.TrimSuffix(sc.URL, "/"),
			Credential: sc.Credential(),
			Enabled:    sc.Enabled,
			Rewrite:    sc.Rewrite,
		})
	}
	return r
}

// Instance returns the named instance, or false if absent.
func (r *Registry) Instance(name string) (*Instance, bool) {
	for i := range r.instances {
		if r.instances[i].Name == name {
			return &r.instances[i], true
		}
	}
	return nil, false
}

// Instances returns all configured instances in declaration order.
func (r *Registry) Instances() []Instance {
	return r.instances
}

// Targets selects the instances a sync run mirrors the event onto: same
// kind as the source, excluding the source itself, and with the event
// type enabled. Quality profile differences between source and target
// are tolerated; each target adds with its own profile.
func (r *Registry) Targets(source *Instance, ev *Event) []*Instance {
	var targets []*Instance
	for i := range r.instances {
		inst := &r.instances[i]
		if inst.Name == source.Name || inst.Kind != source.Kind {
			continue
		}
		if !inst.EventEnabled(ev) {
			continue
		}
		targets = append(targets, inst)
	}
	return targets
}

// Servers returns the enabled media servers in declaration order.
func (r *Registry) Servers() []MediaServer {
	var enabled []MediaServer
	for _, s := range r.servers {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// Delay is the one-time pacing sleep applied before target processing.
func (r *Registry) Delay() time.Duration { return r.delay }

// Interval is the pacing sleep applied between consecutive targets.
func (r *Registry) Interval() time.Duration { return r.interval }
