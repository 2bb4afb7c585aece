// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

/*
plex_client.go - Plex Media Server REST API Client

Implements the MediaServerClient contract against the Plex HTTP API:
section resolution via /library/sections with path matching, and scoped
scans via /library/sections/{id}/refresh?path=.

API Reference: https://plexapi.dev/
*/

package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mirrarr/internal/metrics"
	"github.com/tomtom215/mirrarr/internal/models"
)

// Ensure PlexClient implements MediaServerClient.
var _ MediaServerClient = (*PlexClient)(nil)

// PlexClient provides access to one Plex server's HTTP API.
type PlexClient struct {
	name       string
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewPlexClient creates a Plex API client.
func NewPlexClient(name, baseURL, token string) *PlexClient {
	return &PlexClient{
		name:       name,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: newVendorHTTPClient(),
	}
}

// Ping verifies connectivity via the unauthenticated-tolerant /identity
// endpoint.
func (c *PlexClient) Ping(ctx context.Context) error {
	start := time.Now()
	var identity models.PlexIdentityResponse
	err := c.doGET(ctx, "/identity", &identity)
	metrics.ObserveVendorRequest("plex", "ping", start, err)
	if err != nil {
		return fmt.Errorf("plex ping failed: %w", err)
	}
	return nil
}

// ResolveSection finds the library section that claims the content
// path. Sections are filtered by kind first so a movie path never
// resolves to a show library sharing a mount point. Location matching
// runs two passes: exact prefix first, then a substring fallback for
// sections whose location sits deeper in the mount (a "/movies" section
// still claims "/data/movies/Film").
func (c *PlexClient) ResolveSection(ctx context.Context, path string, kind MediaKind) (*models.Section, error) {
	start := time.Now()
	var resp models.PlexSectionsResponse
	err := c.doGET(ctx, "/library/sections", &resp)
	metrics.ObserveVendorRequest("plex", "sections", start, err)
	if err != nil {
		return nil, fmt.Errorf("plex sections failed: %w", err)
	}

	wantType := plexSectionType(kind)
	match := func(claims func(locPath string) bool) *models.Section {
		for _, dir := range resp.MediaContainer.Directories {
			if wantType != "" && dir.Type != wantType {
				continue
			}
			for _, loc := range dir.Locations {
				if claims(loc.Path) {
					return &models.Section{
						ID:        dir.Key,
						Title:     dir.Title,
						Locations: plexLocationPaths(dir.Locations),
					}
				}
			}
		}
		return nil
	}

	if s := match(func(locPath string) bool { return strings.HasPrefix(path, locPath) }); s != nil {
		return s, nil
	}
	if s := match(func(locPath string) bool { return locPath != "" && strings.Contains(path, locPath) }); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("plex server %s, path %s: %w", c.name, path, ErrNoMatchingSection)
}

// Scan triggers a path-scoped refresh of the section.
func (c *PlexClient) Scan(ctx context.Context, section *models.Section, path string) error {
	endpoint := fmt.Sprintf("/library/sections/%s/refresh?path=%s", section.ID, url.QueryEscape(path))

	start := time.Now()
	err := c.doGET(ctx, endpoint, nil)
	metrics.ObserveVendorRequest("plex", "scan", start, err)
	if err != nil {
		return fmt.Errorf("plex scan failed: %w", err)
	}
	return nil
}

func (c *PlexClient) doGET(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("%s returned status %d (failed to read body)", endpoint, resp.StatusCode)
		}
		return fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// plexSectionType maps a media kind to the Plex section type filter.
// Unknown kinds match any section type.
func plexSectionType(kind MediaKind) string {
	switch kind {
	case KindSeries:
		return "show"
	case KindMovie:
		return "movie"
	default:
		return ""
	}
}

func plexLocationPaths(locs []models.PlexLocation) []string {
	paths := make([]string, 0, len(locs))
	for _, l := range locs {
		paths = append(paths, l.Path)
	}
	return paths
}
