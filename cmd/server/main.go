// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

// Package main is the entry point for the Mirrarr server.
//
// Mirrarr receives webhook notifications from Sonarr and Radarr
// instances, relays library changes to peer instances (add-if-missing
// with path rewriting and configurable pacing), and triggers scoped
// library scans on Plex, Jellyfin, and Emby media servers.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (SERVER_*, LOG_*, SYNC_*, CONFIG_PATH)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Instances and media servers are declared in the config file only;
// their list shape does not map onto flat environment variables.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops
// accepting connections and waits for in-flight webhook runs to finish,
// bounded by server.shutdown_timeout. Webhook runs can legitimately
// take the full pacing budget (delay + targets x interval), so the
// write timeout and shutdown timeout are sized generously.
//
// # Example Usage
//
//	export SERVER_PORT=3537
//	export LOG_LEVEL=debug
//	export CONFIG_PATH=/etc/mirrarr/config.yaml
//	./mirrarr
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/mirrarr/internal/api"
	"github.com/tomtom215/mirrarr/internal/config"
	"github.com/tomtom215/mirrarr/internal/logging"
	"github.com/tomtom215/mirrarr/internal/supervisor"
	"github.com/tomtom215/mirrarr/internal/sync"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Int("instances", len(cfg.Instances)).
		Int("media_servers", len(cfg.MediaServers)).
		Str("sync_delay", cfg.Sync.Delay).
		Str("sync_interval", cfg.Sync.Interval).
		Msg("Starting Mirrarr")

	for _, inst := range cfg.Instances {
		logging.Info().
			Str("name", inst.Name).
			Str("type", inst.Kind).
			Str("url", inst.URL).
			Msg("Instance configured")
	}
	for _, srv := range cfg.MediaServers {
		logging.Info().
			Str("name", srv.Name).
			Str("type", srv.Kind).
			Bool("enabled", srv.Enabled).
			Msg("Media server configured")
	}

	registry := sync.NewRegistry(cfg)
	engine := sync.NewEngine(registry, sync.NewHTTPClientFactory())
	router := api.NewRouter(engine, version)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Mirrarr stopped gracefully")
}
