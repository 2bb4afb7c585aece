// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

/*
sonarr_client.go - Sonarr v3 REST API Client

Implements the ArrClient contract against the Sonarr v3 API: series
lookup by TVDB id, series add with the instance's own profile settings,
and root folder / profile listings.

API Reference: https://sonarr.tv/docs/api/
*/

package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/mirrarr/internal/metrics"
	"github.com/tomtom215/mirrarr/internal/models"
)

// Ensure SonarrClient implements ArrClient.
var _ ArrClient = (*SonarrClient)(nil)

// SonarrClient provides access to one Sonarr instance's v3 API.
type SonarrClient struct {
	name       string
	baseURL    string
	apiKey     string
	inst       *Instance
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSonarrClient creates a client bound to one registry instance.
func NewSonarrClient(inst *Instance) *SonarrClient {
	return &SonarrClient{
		name:       inst.Name,
		baseURL:    inst.URL,
		apiKey:     inst.APIKey,
		inst:       inst,
		httpClient: newVendorHTTPClient(),
		limiter:    rate.NewLimiter(arrRequestRate, arrRequestBurst),
	}
}

// Ping verifies connectivity and credentials via the system status
// endpoint.
func (c *SonarrClient) Ping(ctx context.Context) error {
	_, err := c.SystemStatus(ctx)
	return err
}

// Lookup checks for an existing series by the event's TVDB id.
func (c *SonarrClient) Lookup(ctx context.Context, ev *Event) (bool, error) {
	start := time.Now()
	var series []models.SeriesResource
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/series?tvdbId="+strconv.Itoa(ev.TVDBID), nil, &series)
	metrics.ObserveVendorRequest("sonarr", "lookup", start, err)
	if err != nil {
		return false, fmt.Errorf("sonarr series lookup failed: %w", err)
	}
	return len(series) > 0, nil
}

// Add creates the series on the instance. The add spec is deliberately
// path-independent: the target's own root folder and profiles apply, not
// the source's.
func (c *SonarrClient) Add(ctx context.Context, ev *Event) error {
	if c.inst.RootFolderPath == "" {
		return fmt.Errorf("instance %s: %w", c.name, ErrMissingRootFolder)
	}

	body := models.SeriesResource{
		Title:             ev.Title,
		TVDBID:            ev.TVDBID,
		RootFolderPath:    c.inst.RootFolderPath,
		QualityProfileID:  c.inst.QualityProfileID,
		LanguageProfileID: c.inst.LanguageProfileID,
		SeasonFolder:      c.inst.SeasonFolder,
		Monitored:         true,
		SeriesType:        "standard",
		Seasons:           []models.SeasonResource{},
		AddOptions: &models.AddSeriesOptions{
			IgnoreEpisodesWithFiles:      true,
			Monitor:                      "future",
			SearchForMissingEpisodes:     c.inst.SearchOnSync,
			SearchForCutoffUnmetEpisodes: c.inst.SearchOnSync,
		},
	}
	if ev.Series != nil {
		body.TitleSlug = ev.Series.TitleSlug
		body.Year = ev.Series.Year
		body.Images = ev.Series.Images
	}

	start := time.Now()
	err := c.doJSON(ctx, http.MethodPost, "/api/v3/series", body, nil)
	metrics.ObserveVendorRequest("sonarr", "add", start, err)
	if err != nil {
		return fmt.Errorf("sonarr series add failed: %w", err)
	}
	return nil
}

// RootFolders lists configured root folders.
func (c *SonarrClient) RootFolders(ctx context.Context) ([]models.RootFolder, error) {
	start := time.Now()
	var folders []models.RootFolder
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/rootfolder", nil, &folders)
	metrics.ObserveVendorRequest("sonarr", "rootfolders", start, err)
	if err != nil {
		return nil, fmt.Errorf("sonarr root folders failed: %w", err)
	}
	return folders, nil
}

// QualityProfiles lists quality profiles.
func (c *SonarrClient) QualityProfiles(ctx context.Context) ([]models.QualityProfile, error) {
	start := time.Now()
	var profiles []models.QualityProfile
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/qualityprofile", nil, &profiles)
	metrics.ObserveVendorRequest("sonarr", "qualityprofiles", start, err)
	if err != nil {
		return nil, fmt.Errorf("sonarr quality profiles failed: %w", err)
	}
	return profiles, nil
}

// LanguageProfiles lists language profiles.
func (c *SonarrClient) LanguageProfiles(ctx context.Context) ([]models.LanguageProfile, error) {
	start := time.Now()
	var profiles []models.LanguageProfile
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/languageprofile", nil, &profiles)
	metrics.ObserveVendorRequest("sonarr", "languageprofiles", start, err)
	if err != nil {
		return nil, fmt.Errorf("sonarr language profiles failed: %w", err)
	}
	return profiles, nil
}

// SystemStatus fetches instance version information.
func (c *SonarrClient) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	start := time.Now()
	var status models.SystemStatus
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/system/status", nil, &status)
	metrics.ObserveVendorRequest("sonarr", "status", start, err)
	if err != nil {
		return nil, fmt.Errorf("sonarr system status failed: %w", err)
	}
	return &status, nil
}

// doJSON performs one authenticated API call, optionally encoding a
// request body and decoding the response into out when non-nil.
func (c *SonarrClient) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("%s returned status %d (failed to read body)", endpoint, resp.StatusCode)
		}
		return fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
