// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

/*
mediabrowser_client.go - Jellyfin and Emby REST API Client

Jellyfin and Emby share the MediaBrowser API surface; they differ only
in the auth header name. Section resolution uses
/Library/SelectableMediaFolders, scoped scans use
/Items/{id}/Refresh?Recursive=true against the resolved folder.

API Reference: https://api.jellyfin.org/
*/

package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mirrarr/internal/metrics"
	"github.com/tomtom215/mirrarr/internal/models"
)

// Ensure MediaBrowserClient implements MediaServerClient.
var _ MediaServerClient = (*MediaBrowserClient)(nil)

// MediaBrowserClient provides access to one Jellyfin or Emby server.
type MediaBrowserClient struct {
	name        string
	serverType  string
	baseURL     string
	apiKey      string
	tokenHeader string
	httpClient  *http.Client
}

// NewJellyfinClient creates a client for a Jellyfin server.
func NewJellyfinClient(name, baseURL, apiKey string) *MediaBrowserClient {
	return &MediaBrowserClient{
		name:        name,
		serverType:  "jellyfin",
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		tokenHeader: "X-MediaBrowser-Token",
		httpClient:  newVendorHTTPClient(),
	}
}

// NewEmbyClient creates a client for an Emby server.
func NewEmbyClient(name, baseURL, apiKey string) *MediaBrowserClient {
	return &MediaBrowserClient{
		name:        name,
		serverType:  "emby",
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		tokenHeader: "X-Emby-Token",
		httpClient:  newVendorHTTPClient(),
	}
}

// Ping verifies connectivity via /System/Info/Public.
func (c *MediaBrowserClient) Ping(ctx context.Context) error {
	start := time.Now()
	var info models.JellyfinSystemInfo
	err := c.do(ctx, http.MethodGet, "/System/Info/Public", &info)
	metrics.ObserveVendorRequest(c.serverType, "ping", start, err)
	if err != nil {
		return fmt.Errorf("%s ping failed: %w", c.serverType, err)
	}
	return nil
}

// ResolveSection finds the media folder whose subfolder path is a prefix
// of the content path. Media kind is not used for filtering here; folder
// paths disambiguate on their own.
func (c *MediaBrowserClient) ResolveSection(ctx context.Context, path string, _ MediaKind) (*models.Section, error) {
	start := time.Now()
	var folders []models.JellyfinMediaFolder
	err := c.do(ctx, http.MethodGet, "/Library/SelectableMediaFolders", &folders)
	metrics.ObserveVendorRequest(c.serverType, "folders", start, err)
	if err != nil {
		return nil, fmt.Errorf("%s media folders failed: %w", c.serverType, err)
	}

	for _, folder := range folders {
		for _, sub := range folder.SubFolders {
			if sub.Path != "" && strings.HasPrefix(path, sub.Path) {
				return &models.Section{
					ID:        folder.ID,
					Title:     folder.Name,
					Locations: subFolderPaths(folder.SubFolders),
				}, nil
			}
		}
	}
	return nil, fmt.Errorf("%s server %s, path %s: %w", c.serverType, c.name, path, ErrNoMatchingSection)
}

// Scan triggers a recursive refresh of the resolved folder only.
func (c *MediaBrowserClient) Scan(ctx context.Context, section *models.Section, _ string) error {
	endpoint := fmt.Sprintf("/Items/%s/Refresh?Recursive=true", section.ID)

	start := time.Now()
	err := c.do(ctx, http.MethodPost, endpoint, nil)
	metrics.ObserveVendorRequest(c.serverType, "scan", start, err)
	if err != nil {
		return fmt.Errorf("%s scan failed: %w", c.serverType, err)
	}
	return nil
}

func (c *MediaBrowserClient) do(ctx context.Context, method, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(c.tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Refresh endpoints return 204 No Content.
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

func subFolderPaths(subs []models.JellyfinSubFolder) []string {
	paths := make([]string, 0, len(subs))
	for _, s := range subs {
		paths = append(paths, s.Path)
	}
	return paths
}
