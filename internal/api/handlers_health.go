// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/mirrarr/internal/models"
)

// Health reports overall service health with a component breakdown.
// The dispatcher holds no external connections at rest, so health is a
// configuration summary rather than a dependency probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	reg := h.engine.Registry()
	respondJSON(w, http.StatusOK, &models.HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Components: map[string]string{
			"instances":     strconv.Itoa(len(reg.Instances())),
			"media_servers": strconv.Itoa(len(reg.Servers())),
		},
	})
}

// HealthLive is the liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.HealthResponse{Status: "healthy"})
}

// HealthReady is the readiness probe. The service is ready as soon as
// its registry is loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.HealthResponse{Status: "ready"})
}
