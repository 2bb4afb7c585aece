// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

// Package config provides declarative configuration for Mirrarr, loaded via
// Koanf v2 with layered sources (highest priority wins):
//
//   - Environment variables (SERVER_PORT, LOG_LEVEL, SYNC_DELAY, ...)
//   - Config file (config.yaml, or CONFIG_PATH override)
//   - Built-in defaults
//
// Instances and media servers are declared in the config file only; the
// sync core receives them as an immutable registry snapshot and never
// writes configuration back.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/mirrarr/internal/validation"
)

// Instance kinds.
const (
	KindSonarr = "sonarr"
	KindRadarr = "radarr"
)

// Media server kinds.
const (
	KindPlex     = "plex"
	KindJellyfin = "jellyfin"
	KindEmby     = "emby"
)

// Config is the root configuration structure.
type Config struct {
	Server       ServerConfig        `koanf:"server"`
	Logging      LoggingConfig       `koanf:"logging"`
	Sync         SyncConfig          `koanf:"sync"`
	Instances    []InstanceConfig    `koanf:"instances" validate:"dive"`
	MediaServers []MediaServerConfig `koanf:"media_servers" validate:"dive"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// SyncConfig holds the pacing settings applied during synchronization runs.
// Delay is slept once before any target work; Interval is slept between
// consecutive targets. Both accept "0", bare seconds ("5"), or Go duration
// strings ("500ms", "5s", "1m").
type SyncConfig struct {
	Delay    string `koanf:"delay" validate:"omitempty,pacing"`
	Interval string `koanf:"interval" validate:"omitempty,pacing"`
}

// RewriteRule maps a path prefix from the sender's filesystem view to the
// receiver's. Rules apply in declaration order; first match wins.
type RewriteRule struct {
	From string `koanf:"from_path" validate:"required"`
	To   string `koanf:"to_path" validate:"required"`
}

// InstanceConfig describes one Sonarr or Radarr endpoint.
type InstanceConfig struct {
	Name              string        `koanf:"name" validate:"required"`
	Kind              string        `koanf:"type" validate:"oneof=sonarr radarr"`
	URL               string        `koanf:"url" validate:"required,baseurl"`
	APIKey            string        `koanf:"api_key" validate:"required"`
	RootFolderPath    string        `koanf:"root_folder_path" validate:"required"`
	QualityProfileID  int           `koanf:"quality_profile_id" validate:"min=1"`
	LanguageProfileID int           `koanf:"language_profile_id"`
	SeasonFolder      bool          `koanf:"season_folder"`
	SearchOnSync      bool          `koanf:"search_on_sync"`
	EnabledEvents     []string      `koanf:"enabled_events"`
	Rewrite           []RewriteRule `koanf:"rewrite" validate:"dive"`
}

// MediaServerConfig describes one Plex, Jellyfin, or Emby server.
type MediaServerConfig struct {
	Name    string        `koanf:"name" validate:"required"`
	Kind    string        `koanf:"type" validate:"oneof=plex jellyfin emby"`
	URL     string        `koanf:"url" validate:"required,baseurl"`
	Token   string        `koanf:"token"`
	APIKey  string        `koanf:"api_key"`
	Enabled bool          `koanf:"enabled"`
	Rewrite []RewriteRule `koanf:"rewrite" validate:"dive"`
}

// Credential returns the auth credential for the server's kind:
// the Plex token, or the Jellyfin/Emby API key.
func (m *MediaServerConfig) Credential() string {
	if m.Kind == KindPlex {
		return m.Token
	}
	return m.APIKey
}

// ParsePacing parses a sync pacing value into a duration. Accepted forms:
// "" and "0" (no pacing), bare integers as seconds ("5"), and Go duration
// strings ("500ms", "5s", "1m").
func ParsePacing(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("pacing value must not be negative: %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid pacing value %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("pacing value must not be negative: %q", s)
	}
	return d, nil
}

// DelayDuration returns the parsed sync delay. Invalid values were rejected
// at load time, so parse errors here collapse to zero.
func (s *SyncConfig) DelayDuration() time.Duration {
	d, _ := ParsePacing(s.Delay)
	return d
}

// IntervalDuration returns the parsed sync interval.
func (s *SyncConfig) IntervalDuration() time.Duration {
	d, _ := ParsePacing(s.Interval)
	return d
}

// Validate checks the configuration for structural and semantic errors.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if _, err := ParsePacing(c.Sync.Delay); err != nil {
		return fmt.Errorf("sync.delay: %w", err)
	}
	if _, err := ParsePacing(c.Sync.Interval); err != nil {
		return fmt.Errorf("sync.interval: %w", err)
	}

	// Instance names must be unique across all instances regardless of kind.
	seen := make(map[string]struct{}, len(c.Instances))
	for _, inst := range c.Instances {
		if _, dup := seen[inst.Name]; dup {
			return fmt.Errorf("duplicate instance name %q", inst.Name)
		}
		seen[inst.Name] = struct{}{}
	}

	seenServers := make(map[string]struct{}, len(c.MediaServers))
	for _, srv := range c.MediaServers {
		if _, dup := seenServers[srv.Name]; dup {
			return fmt.Errorf("duplicate media server name %q", srv.Name)
		}
		seenServers[srv.Name] = struct{}{}
		if srv.Kind == KindPlex && srv.Token == "" {
			return fmt.Errorf("media server %q: plex requires a token", srv.Name)
		}
		if (srv.Kind == KindJellyfin || srv.Kind == KindEmby) && srv.APIKey == "" {
			return fmt.Errorf("media server %q: %s requires an api_key", srv.Name, srv.Kind)
		}
	}

	return nil
}
