// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/mirrarr/internal/models"
)

const mediaFoldersBody = `[
  {"Name": "Shows", "Id": "f1", "SubFolders": [{"Name": "tv", "Id": "s1", "Path": "/media/tv"}]},
  {"Name": "Movies", "Id": "f2", "SubFolders": [{"Name": "movies", "Id": "s2", "Path": "/media/movies"}]}
]`

func TestJellyfinResolveSection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-MediaBrowser-Token"); got != "key1" {
			t.Errorf("token header = %q", got)
		}
		if r.URL.Path != "/Library/SelectableMediaFolders" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(mediaFoldersBody))
	}))
	t.Cleanup(srv.Close)

	client := NewJellyfinClient("jf-test", srv.URL, "key1")
	section, err := client.ResolveSection(context.Background(), "/media/tv/Severance", KindSeries)
	if err != nil {
		t.Fatalf("ResolveSection() error = %v", err)
	}
	if section.ID != "f1" || section.Title != "Shows" {
		t.Errorf("section = %+v", section)
	}
}

func TestJellyfinResolveSectionNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mediaFoldersBody))
	}))
	t.Cleanup(srv.Close)

	client := NewJellyfinClient("jf-test", srv.URL, "key1")
	_, err := client.ResolveSection(context.Background(), "/other/path", KindSeries)
	if !errors.Is(err, ErrNoMatchingSection) {
		t.Errorf("error = %v, want ErrNoMatchingSection", err)
	}
}

func TestJellyfinScanScopedToFolder(t *testing.T) {
	var method, path, recursive string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		recursive = r.URL.Query().Get("Recursive")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	client := NewJellyfinClient("jf-test", srv.URL, "key1")
	err := client.Scan(context.Background(), &models.Section{ID: "f1"}, "/media/tv/Severance")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if method != http.MethodPost || path != "/Items/f1/Refresh" {
		t.Errorf("scan request = %s %s", method, path)
	}
	if recursive != "true" {
		t.Errorf("Recursive = %q", recursive)
	}
}

func TestEmbyAuthHeader(t *testing.T) {
	var embyToken, mbToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		embyToken = r.Header.Get("X-Emby-Token")
		mbToken = r.Header.Get("X-MediaBrowser-Token")
		_, _ = w.Write([]byte(`{"ServerName": "emby", "Version": "4.8", "Id": "e1"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewEmbyClient("emby-test", srv.URL, "key2")
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if embyToken != "key2" {
		t.Errorf("X-Emby-Token = %q", embyToken)
	}
	if mbToken != "" {
		t.Errorf("emby client must not send the jellyfin header, got %q", mbToken)
	}
}
