// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

// Package api provides HTTP routing and handlers using the Chi router.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/mirrarr/internal/middleware"
	"github.com/tomtom215/mirrarr/internal/sync"
)

// Router wires handlers into the HTTP surface.
type Router struct {
	handler *Handler
}

// NewRouter builds a router over the engine.
func NewRouter(engine *sync.Engine, version string) *Router {
	return &Router{
		handler: NewHandler(engine, version),
	}
}

// Setup returns the fully assembled HTTP handler.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))
	r.Use(middleware.PrometheusMetrics)

	// Webhook surface. Arr instances retry on 429, so a limit here only
	// sheds genuine floods.
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(300, time.Minute))
		r.Post("/webhook", rt.handler.Webhook)
		r.Post("/debug-webhook", rt.handler.DebugWebhook)
	})

	// Configuration helper endpoints used by setup tooling.
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(60, time.Minute))
		r.Post("/test-connection", rt.handler.TestConnection)
		r.Get("/api/root-folders", rt.handler.RootFolders)
		r.Get("/api/quality-profiles", rt.handler.QualityProfiles)
		r.Get("/api/language-profiles", rt.handler.LanguageProfiles)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", rt.handler.Health)
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
