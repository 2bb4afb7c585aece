// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"testing"
	"time"

	"github.com/tomtom215/mirrarr/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Sync: config.SyncConfig{Delay: "5s", Interval: "2s"},
		Instances: []config.InstanceConfig{
			{Name: "sonarr-4k", Kind: config.KindSonarr, URL: "http://a:8989/", APIKey: "k1", RootFolderPath: "/tv4k"},
			{Name: "sonarr-1080p", Kind: config.KindSonarr, URL: "http://b:8989", APIKey: "k2", RootFolderPath: "/tv",
				EnabledEvents: []string{"Import", "Grab"}},
			{Name: "radarr-main", Kind: config.KindRadarr, URL: "http://c:7878", APIKey: "k3", RootFolderPath: "/movies"},
		},
		MediaServers: []config.MediaServerConfig{
			{Name: "plex-main", Kind: config.KindPlex, URL: "http://plex:32400", Token: "t", Enabled: true},
			{Name: "jf-old", Kind: config.KindJellyfin, URL: "http://jf:8096", APIKey: "k", Enabled: false},
		},
	}
}

func TestRegistryInstanceLookup(t *testing.T) {
	reg := NewRegistry(testConfig())

	inst, ok := reg.Instance("sonarr-4k")
	if !ok {
		t.Fatal("sonarr-4k not found")
	}
	if inst.URL != "http://a:8989" {
		t.Errorf("URL = %q, want trailing slash stripped", inst.URL)
	}
	if _, ok := reg.Instance("missing"); ok {
		t.Error("missing instance should not be found")
	}
}

func TestRegistryTargets(t *testing.T) {
	reg := NewRegistry(testConfig())
	source, _ := reg.Instance("sonarr-4k")

	ev := &Event{RawType: "Download", Type: EventImport, Kind: KindSeries}
	targets := reg.Targets(source, ev)
	if len(targets) != 1 {
		t.Fatalf("targets = %d, want 1", len(targets))
	}
	if targets[0].Name != "sonarr-1080p" {
		t.Errorf("target = %q", targets[0].Name)
	}
}

func TestRegistryTargetsGatedByEnabledEvents(t *testing.T) {
	reg := NewRegistry(testConfig())
	source, _ := reg.Instance("sonarr-4k")

	// sonarr-1080p enables only Import and Grab; a Rename event must
	// produce no target entry for it at all.
	ev := &Event{RawType: "Rename", Type: EventRename, Kind: KindSeries}
	if targets := reg.Targets(source, ev); len(targets) != 0 {
		t.Errorf("targets = %d, want 0", len(targets))
	}
}

func TestRegistryTargetsExcludesOtherKind(t *testing.T) {
	reg := NewRegistry(testConfig())
	source, _ := reg.Instance("radarr-main")

	ev := &Event{RawType: "Download", Type: EventImport, Kind: KindMovie}
	if targets := reg.Targets(source, ev); len(targets) != 0 {
		t.Errorf("radarr source matched sonarr targets: %d", len(targets))
	}
}

func TestRegistryServersEnabledOnly(t *testing.T) {
	reg := NewRegistry(testConfig())
	servers := reg.Servers()
	if len(servers) != 1 || servers[0].Name != "plex-main" {
		t.Errorf("servers = %+v, want only plex-main", servers)
	}
	if servers[0].Credential != "t" {
		t.Errorf("credential = %q, want plex token", servers[0].Credential)
	}
}

func TestRegistryPacing(t *testing.T) {
	reg := NewRegistry(testConfig())
	if reg.Delay() != 5*time.Second {
		t.Errorf("delay = %v", reg.Delay())
	}
	if reg.Interval() != 2*time.Second {
		t.Errorf("interval = %v", reg.Interval())
	}
}

func TestInstanceEventEnabled(t *testing.T) {
	empty := &Instance{Name: "a"}
	ev := &Event{RawType: "Download", Type: EventImport}
	if !empty.EventEnabled(ev) {
		t.Error("empty enabled-event set must accept all events")
	}

	gated := &Instance{Name: "b", EnabledEvents: []string{"Grab"}}
	if gated.EventEnabled(ev) {
		t.Error("Download should be gated out")
	}

	// Canonical taxonomy names match too.
	canonical := &Instance{Name: "c", EnabledEvents: []string{"import"}}
	if !canonical.EventEnabled(ev) {
		t.Error("canonical name should match a Download event")
	}

	caseFold := &Instance{Name: "d", EnabledEvents: []string{"download"}}
	if !caseFold.EventEnabled(ev) {
		t.Error("matching is case-insensitive")
	}
}
