// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/mirrarr/internal/config"
	"github.com/tomtom215/mirrarr/internal/models"
	"github.com/tomtom215/mirrarr/internal/sync"
)

// TestConnection probes a vendor endpoint with ad-hoc credentials
// supplied as form fields (type, url, api_key or token). Nothing from
// the configured registry is used, so the handler works for instances
// that are not configured yet.
func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_FORM", "Request body is not valid form data", err)
		return
	}

	kind := strings.ToLower(strings.TrimSpace(r.FormValue("type")))
	url := normalizeBaseURL(r.FormValue("url"))
	credential := strings.TrimSpace(r.FormValue("api_key"))
	if credential == "" {
		credential = strings.TrimSpace(r.FormValue("token"))
	}
	if kind == "" || url == "" || credential == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMETERS",
			"type, url, and api_key (or token) are required", nil)
		return
	}

	resp := &models.TestConnectionResponse{Status: "success"}
	switch kind {
	case config.KindSonarr, config.KindRadarr:
		client := adHocArrClient(kind, url, credential)
		status, err := client.SystemStatus(r.Context())
		if err != nil {
			respondJSON(w, http.StatusOK, &models.TestConnectionResponse{
				Status:  models.StatusError,
				Message: "Connection failed: " + err.Error(),
			})
			return
		}
		resp.Message = "Connected to " + status.AppName
		resp.Version = status.Version
	case config.KindPlex, config.KindJellyfin, config.KindEmby:
		client := adHocServerClient(kind, url, credential)
		if err := client.Ping(r.Context()); err != nil {
			respondJSON(w, http.StatusOK, &models.TestConnectionResponse{
				Status:  models.StatusError,
				Message: "Connection failed: " + err.Error(),
			})
			return
		}
		resp.Message = "Connected to " + kind + " server"
	default:
		respondError(w, http.StatusBadRequest, "UNSUPPORTED_TYPE",
			"Unsupported connection type: "+sanitizeLogValue(kind), nil)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// RootFolders proxies the root folder list of an arr instance named by
// query parameters.
func (h *Handler) RootFolders(w http.ResponseWriter, r *http.Request) {
	client, ok := h.arrFromQuery(w, r)
	if !ok {
		return
	}
	folders, err := client.RootFolders(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch root folders", err)
		return
	}
	respondJSON(w, http.StatusOK, &models.RootFoldersResponse{Status: models.StatusOK, Folders: folders})
}

// QualityProfiles proxies the quality profile list of an arr instance.
func (h *Handler) QualityProfiles(w http.ResponseWriter, r *http.Request) {
	client, ok := h.arrFromQuery(w, r)
	if !ok {
		return
	}
	profiles, err := client.QualityProfiles(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch quality profiles", err)
		return
	}
	respondJSON(w, http.StatusOK, &models.QualityProfilesResponse{Status: models.StatusOK, Profiles: profiles})
}

// LanguageProfiles proxies Sonarr language profiles. Radarr instances
// get an empty list without an upstream call.
func (h *Handler) LanguageProfiles(w http.ResponseWriter, r *http.Request) {
	client, ok := h.arrFromQuery(w, r)
	if !ok {
		return
	}
	profiles, err := client.LanguageProfiles(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch language profiles", err)
		return
	}
	respondJSON(w, http.StatusOK, &models.LanguageProfilesResponse{Status: models.StatusOK, Profiles: profiles})
}

// arrFromQuery resolves an arr client from query parameters, preferring
// a configured instance by name and falling back to ad-hoc credentials.
func (h *Handler) arrFromQuery(w http.ResponseWriter, r *http.Request) (sync.ArrClient, bool) {
	q := r.URL.Query()

	if name := strings.TrimSpace(q.Get("instance")); name != "" {
		inst, ok := h.engine.Registry().Instance(name)
		if !ok {
			respondError(w, http.StatusNotFound, "UNKNOWN_INSTANCE",
				"Instance is not configured: "+sanitizeLogValue(name), nil)
			return nil, false
		}
		return sync.NewArrClient(inst), true
	}

	kind := strings.ToLower(strings.TrimSpace(q.Get("type")))
	url := normalizeBaseURL(q.Get("url"))
	apiKey := strings.TrimSpace(q.Get("api_key"))
	if kind == "" || url == "" || apiKey == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMETERS",
			"instance, or type, url, and api_key are required", nil)
		return nil, false
	}
	if kind != config.KindSonarr && kind != config.KindRadarr {
		respondError(w, http.StatusBadRequest, "UNSUPPORTED_TYPE",
			"Unsupported instance type: "+sanitizeLogValue(kind), nil)
		return nil, false
	}
	return adHocArrClient(kind, url, apiKey), true
}

// normalizeBaseURL defaults user-supplied addresses to http://, the
// common case for LAN-hosted instances pasted without a scheme.
func normalizeBaseURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return u
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "http://" + u
	}
	return u
}

func adHocArrClient(kind, url, apiKey string) sync.ArrClient {
	return sync.NewArrClient(&sync.Instance{
		Name:   "adhoc-" + kind,
		Kind:   kind,
		URL:    strings.TrimSuffix(url, "/"),
		APIKey: apiKey,
	})
}

func adHocServerClient(kind, url, credential string) sync.MediaServerClient {
	switch kind {
	case config.KindPlex:
		return sync.NewPlexClient("adhoc-plex", url, credential)
	case config.KindEmby:
		return sync.NewEmbyClient("adhoc-emby", url, credential)
	default:
		return sync.NewJellyfinClient("adhoc-jellyfin", url, credential)
	}
}
