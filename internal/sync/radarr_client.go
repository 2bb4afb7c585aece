// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

/*
radarr_client.go - Radarr v3 REST API Client

Implements the ArrClient contract against the Radarr v3 API: movie
lookup by TMDB id, movie add, and root folder / profile listings.
Radarr has no language profiles; that listing returns empty.

API Reference: https://radarr.video/docs/api/
*/

package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/mirrarr/internal/metrics"
	"github.com/tomtom215/mirrarr/internal/models"
)

// Ensure RadarrClient implements ArrClient.
var _ ArrClient = (*RadarrClient)(nil)

// RadarrClient provides access to one Radarr instance's v3 API.
type RadarrClient struct {
	name       string
	baseURL    string
	apiKey     string
	inst       *Instance
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewRadarrClient creates a client bound to one registry instance.
func NewRadarrClient(inst *Instance) *RadarrClient {
	return &RadarrClient{
		name:       inst.Name,
		baseURL:    inst.URL,
		apiKey:     inst.APIKey,
		inst:       inst,
		httpClient: newVendorHTTPClient(),
		limiter:    rate.NewLimiter(arrRequestRate, arrRequestBurst),
	}
}

// Ping verifies connectivity and credentials.
func (c *RadarrClient) Ping(ctx context.Context) error {
	_, err := c.SystemStatus(ctx)
	return err
}

// Lookup checks for an existing movie by the event's TMDB id.
func (c *RadarrClient) Lookup(ctx context.Context, ev *Event) (bool, error) {
	start := time.Now()
	var movies []models.MovieResource
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/movie?tmdbId="+strconv.Itoa(ev.TMDBID), nil, &movies)
	metrics.ObserveVendorRequest("radarr", "lookup", start, err)
	if err != nil {
		return false, fmt.Errorf("radarr movie lookup failed: %w", err)
	}
	return len(movies) > 0, nil
}

// Add creates the movie on the instance with the instance's own root
// folder and quality profile. The add itself never searches; when the
// instance has search-on-sync enabled a separate MoviesSearch command is
// issued for the created movie, matching how Radarr's own UI adds.
func (c *RadarrClient) Add(ctx context.Context, ev *Event) error {
	if c.inst.RootFolderPath == "" {
		return fmt.Errorf("instance %s: %w", c.name, ErrMissingRootFolder)
	}

	body := models.MovieResource{
		Title:            ev.Title,
		TitleSlug:        slugify(ev.Title),
		TMDBID:           ev.TMDBID,
		RootFolderPath:   c.inst.RootFolderPath,
		QualityProfileID: c.inst.QualityProfileID,
		Monitored:        true,
		AddOptions: &models.AddMovieOptions{
			SearchForMovie: false,
		},
	}
	if ev.Movie != nil {
		body.Year = ev.Movie.Year
	}

	start := time.Now()
	var created models.MovieResource
	err := c.doJSON(ctx, http.MethodPost, "/api/v3/movie", body, &created)
	metrics.ObserveVendorRequest("radarr", "add", start, err)
	if err != nil {
		return fmt.Errorf("radarr movie add failed: %w", err)
	}

	if c.inst.SearchOnSync && created.ID > 0 {
		cmd := models.CommandRequest{Name: "MoviesSearch", MovieIDs: []int{created.ID}}
		start = time.Now()
		err = c.doJSON(ctx, http.MethodPost, "/api/v3/command", cmd, nil)
		metrics.ObserveVendorRequest("radarr", "search", start, err)
		if err != nil {
			return fmt.Errorf("radarr movie search command failed: %w", err)
		}
	}
	return nil
}

// RootFolders lists configured root folders.
func (c *RadarrClient) RootFolders(ctx context.Context) ([]models.RootFolder, error) {
	start := time.Now()
	var folders []models.RootFolder
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/rootfolder", nil, &folders)
	metrics.ObserveVendorRequest("radarr", "rootfolders", start, err)
	if err != nil {
		return nil, fmt.Errorf("radarr root folders failed: %w", err)
	}
	return folders, nil
}

// QualityProfiles lists quality profiles.
func (c *RadarrClient) QualityProfiles(ctx context.Context) ([]models.QualityProfile, error) {
	start := time.Now()
	var profiles []models.QualityProfile
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/qualityprofile", nil, &profiles)
	metrics.ObserveVendorRequest("radarr", "qualityprofiles", start, err)
	if err != nil {
		return nil, fmt.Errorf("radarr quality profiles failed: %w", err)
	}
	return profiles, nil
}

// LanguageProfiles returns an empty list; Radarr has no language
// profiles.
func (c *RadarrClient) LanguageProfiles(_ context.Context) ([]models.LanguageProfile, error) {
	return []models.LanguageProfile{}, nil
}

// SystemStatus fetches instance version information.
func (c *RadarrClient) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	start := time.Now()
	var status models.SystemStatus
	err := c.doJSON(ctx, http.MethodGet, "/api/v3/system/status", nil, &status)
	metrics.ObserveVendorRequest("radarr", "status", start, err)
	if err != nil {
		return nil, fmt.Errorf("radarr system status failed: %w", err)
	}
	return &status, nil
}

func (c *RadarrClient) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
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

// slugify lowercases and hyphenates a title for Radarr's titleSlug
// field.
func slugify(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}
