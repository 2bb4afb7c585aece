// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"errors"
	"testing"
)

func TestClassifySonarrImport(t *testing.T) {
	body := []byte(`{
		"eventType": "Download",
		"instanceName": "sonarr-4k",
		"series": {"id": 1, "title": "Severance", "path": "/mnt/shows4k/Severance", "tvdbId": 371980, "type": "standard", "year": 2022},
		"episodes": [{"id": 10, "episodeNumber": 1, "seasonNumber": 2, "title": "Hello", "seriesId": 1, "tvdbId": 99}]
	}`)

	ev, err := Classify(body)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if ev.Type != EventImport {
		t.Errorf("type = %q, want import (Download alias)", ev.Type)
	}
	if ev.Kind != KindSeries {
		t.Errorf("kind = %q, want series", ev.Kind)
	}
	if ev.Source != "sonarr-4k" {
		t.Errorf("source = %q", ev.Source)
	}
	if ev.TVDBID != 371980 || ev.ExternalID() != 371980 {
		t.Errorf("external id = %d", ev.ExternalID())
	}
	if ev.Path != "/mnt/shows4k/Severance" {
		t.Errorf("path = %q", ev.Path)
	}
	if !ev.Actionable() || !ev.ScanEligible() {
		t.Error("import event should be actionable and scan eligible")
	}
}

func TestClassifyRadarrGrab(t *testing.T) {
	body := []byte(`{
		"eventType": "Grab",
		"instanceName": "radarr-main",
		"movie": {"id": 3, "title": "Dune: Part Two", "year": 2024, "folderPath": "/mnt/movies/Dune Part Two (2024)", "tmdbId": 693134}
	}`)

	ev, err := Classify(body)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if ev.Type != EventGrab || ev.Kind != KindMovie {
		t.Errorf("type = %q kind = %q", ev.Type, ev.Kind)
	}
	if ev.ExternalID() != 693134 {
		t.Errorf("external id = %d, want tmdb id", ev.ExternalID())
	}
	if !ev.Actionable() {
		t.Error("grab should be actionable")
	}
	if ev.ScanEligible() {
		t.Error("grab should not be scan eligible; nothing imported yet")
	}
}

func TestClassifySeriesAdd(t *testing.T) {
	body := []byte(`{
		"eventType": "SeriesAdd",
		"instanceName": "sonarr-main",
		"series": {"id": 7, "title": "The Leftovers", "path": "/tv/The Leftovers", "tvdbId": 271910, "type": "standard", "year": 2014}
	}`)

	ev, err := Classify(body)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if ev.Type != EventAdd || ev.Kind != KindSeries {
		t.Errorf("type = %q kind = %q, want add/series", ev.Type, ev.Kind)
	}
	if !ev.Actionable() {
		t.Error("add event should relay to peer instances")
	}
	if ev.ScanEligible() {
		t.Error("add should not be scan eligible; no files imported yet")
	}
}

func TestClassifyMovieAddedWithoutFilePath(t *testing.T) {
	// MovieAdded fires before any file exists; only the folder path and
	// tmdb id are present, which is enough to relay.
	body := []byte(`{
		"eventType": "MovieAdded",
		"instanceName": "radarr-main",
		"movie": {"id": 9, "title": "Heat", "year": 1995, "folderPath": "/movies/Heat (1995)", "tmdbId": 949}
	}`)

	ev, err := Classify(body)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if ev.Type != EventAdd || !ev.Actionable() {
		t.Errorf("type = %q actionable = %v, want actionable add", ev.Type, ev.Actionable())
	}
	if ev.ExternalID() != 949 {
		t.Errorf("external id = %d, want tmdb id", ev.ExternalID())
	}
}

func TestClassifyEventTypeTaxonomy(t *testing.T) {
	tests := []struct {
		raw        string
		want       EventType
		actionable bool
	}{
		{"Grab", EventGrab, true},
		{"Download", EventImport, true},
		{"Import", EventImport, true},
		{"MovieFileImported", EventImport, true},
		{"SeriesAdd", EventAdd, true},
		{"MovieAdded", EventAdd, true},
		{"SeriesDelete", EventDelete, false},
		{"EpisodeFileDelete", EventDelete, false},
		{"MovieFileDelete", EventDelete, false},
		{"Rename", EventRename, false},
		{"ApplicationUpdate", EventUnknown, false},
		{"Health", EventUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := canonicalEventType(tt.raw)
			if got != tt.want {
				t.Errorf("canonicalEventType(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			ev := &Event{RawType: tt.raw, Type: got}
			if ev.Actionable() != tt.actionable {
				t.Errorf("Actionable() = %v, want %v", ev.Actionable(), tt.actionable)
			}
		})
	}
}

func TestClassifyUnknownTypeAccepted(t *testing.T) {
	// Unrecognized event types are accepted but non-actionable; the
	// request is not failed.
	body := []byte(`{
		"eventType": "ApplicationUpdate",
		"instanceName": "sonarr-main",
		"series": {"id": 1, "title": "X", "path": "/tv/X", "tvdbId": 5, "type": "standard", "year": 2020}
	}`)
	ev, err := Classify(body)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if ev.Type != EventUnknown || ev.Actionable() {
		t.Errorf("unknown type should be non-actionable, got %q", ev.Type)
	}
}

func TestClassifyManualScan(t *testing.T) {
	body := []byte(`{
		"eventType": "ManualScan",
		"path": "/mnt/movies/Movie (2020)",
		"contentType": "movie",
		"manual": true
	}`)
	ev, err := Classify(body)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if ev.Type != EventManualScan || !ev.Manual {
		t.Errorf("type = %q manual = %v", ev.Type, ev.Manual)
	}
	if ev.Kind != KindMovie {
		t.Errorf("kind = %q, want movie", ev.Kind)
	}
	if ev.Actionable() {
		t.Error("manual scan must never mutate instances")
	}
	if !ev.ScanEligible() {
		t.Error("manual scan should be scan eligible")
	}
}

func TestClassifyTestEventWithoutMediaBlock(t *testing.T) {
	body := []byte(`{"eventType": "Test", "instanceName": "sonarr-main"}`)
	ev, err := Classify(body)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if ev.Type != EventTest {
		t.Errorf("type = %q", ev.Type)
	}
}

func TestClassifyMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing event type", `{"instanceName": "sonarr-main"}`},
		{"no media block", `{"eventType": "Download", "instanceName": "sonarr-main"}`},
		{"import without external id", `{"eventType": "Download", "instanceName": "s", "series": {"id": 1, "title": "X", "path": "/tv/X", "tvdbId": 0, "type": "standard", "year": 2020}}`},
		{"import without path", `{"eventType": "Download", "instanceName": "s", "series": {"id": 1, "title": "X", "path": "", "tvdbId": 5, "type": "standard", "year": 2020}}`},
		{"manual scan without path", `{"eventType": "ManualScan", "manual": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify([]byte(tt.body))
			if !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("Classify() error = %v, want ErrMalformedPayload", err)
			}
		})
	}
}

func TestDeleteEventScanEligible(t *testing.T) {
	body := []byte(`{
		"eventType": "EpisodeFileDelete",
		"instanceName": "sonarr-main",
		"series": {"id": 1, "title": "X", "path": "/tv/X", "tvdbId": 5, "type": "standard", "year": 2020}
	}`)
	ev, err := Classify(body)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if ev.Actionable() {
		t.Error("deletes must not propagate across instances")
	}
	if !ev.ScanEligible() {
		t.Error("deletes change files on disk; servers should rescan")
	}
}
