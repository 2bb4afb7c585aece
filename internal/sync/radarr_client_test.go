// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mirrarr/internal/models"
)

func newRadarrTestServer(t *testing.T, handler http.HandlerFunc) *RadarrClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	inst := &Instance{
		Name:             "radarr-test",
		Kind:             "radarr",
		URL:              srv.URL,
		APIKey:           "secret",
		RootFolderPath:   "/movies",
		QualityProfileID: 6,
	}
	return NewRadarrClient(inst)
}

func TestRadarrLookup(t *testing.T) {
	client := newRadarrTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/movie" || r.URL.Query().Get("tmdbId") != "693134" {
			t.Errorf("unexpected request %s %s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"id": 3, "title": "Dune: Part Two", "tmdbId": 693134}]`))
	})

	found, err := client.Lookup(context.Background(), &Event{Kind: KindMovie, TMDBID: 693134})
	if err != nil || !found {
		t.Errorf("Lookup() = %v, %v", found, err)
	}
}

func TestRadarrAdd(t *testing.T) {
	var got models.MovieResource
	client := newRadarrTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v3/movie" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode add body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 9}`))
	})

	ev := &Event{
		Kind:   KindMovie,
		Title:  "Dune: Part Two",
		TMDBID: 693134,
		Movie:  &models.WebhookMovie{Title: "Dune: Part Two", Year: 2024},
	}
	if err := client.Add(context.Background(), ev); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if got.TMDBID != 693134 || got.Year != 2024 {
		t.Errorf("add body = %+v", got)
	}
	if got.RootFolderPath != "/movies" || got.QualityProfileID != 6 {
		t.Errorf("target settings not applied: %+v", got)
	}
	if got.TitleSlug != "dune:-part-two" {
		t.Errorf("titleSlug = %q", got.TitleSlug)
	}
	if got.AddOptions == nil || got.AddOptions.SearchForMovie {
		t.Errorf("addOptions = %+v, search disabled when search_on_sync is off", got.AddOptions)
	}
}

func TestRadarrAddSearchOnSync(t *testing.T) {
	var addBody models.MovieResource
	var cmdBody models.CommandRequest
	commands := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/movie":
			if err := json.NewDecoder(r.Body).Decode(&addBody); err != nil {
				t.Fatalf("decode add body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 42, "tmdbId": 949}`))
		case "/api/v3/command":
			commands++
			if err := json.NewDecoder(r.Body).Decode(&cmdBody); err != nil {
				t.Fatalf("decode command body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 1}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewRadarrClient(&Instance{
		Name:             "radarr-test",
		Kind:             "radarr",
		URL:              srv.URL,
		APIKey:           "secret",
		RootFolderPath:   "/movies",
		QualityProfileID: 6,
		SearchOnSync:     true,
	})

	ev := &Event{Kind: KindMovie, Title: "Heat", TMDBID: 949}
	if err := client.Add(context.Background(), ev); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// The add itself never searches; the search runs as a follow-up
	// command for the created movie.
	if addBody.AddOptions == nil || addBody.AddOptions.SearchForMovie {
		t.Errorf("addOptions = %+v, want searchForMovie false", addBody.AddOptions)
	}
	if commands != 1 {
		t.Fatalf("command calls = %d, want 1", commands)
	}
	if cmdBody.Name != "MoviesSearch" || len(cmdBody.MovieIDs) != 1 || cmdBody.MovieIDs[0] != 42 {
		t.Errorf("command body = %+v, want MoviesSearch for movie 42", cmdBody)
	}
}

func TestRadarrLanguageProfilesEmpty(t *testing.T) {
	client := newRadarrTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("language profiles must not hit the API")
	})
	profiles, err := client.LanguageProfiles(context.Background())
	if err != nil || len(profiles) != 0 {
		t.Errorf("LanguageProfiles() = %v, %v", profiles, err)
	}
}
