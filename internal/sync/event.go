// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mirrarr/internal/models"
)

// MediaKind identifies which media block a payload carried.
type MediaKind string

const (
	KindSeries  MediaKind = "series"
	KindMovie   MediaKind = "movie"
	KindUnknown MediaKind = ""
)

// EventType is the canonical event taxonomy. Vendor-specific strings are
// mapped once during classification and never re-inspected downstream.
type EventType string

const (
	EventGrab       EventType = "grab"
	EventImport     EventType = "import"
	EventAdd        EventType = "add"
	EventDelete     EventType = "delete"
	EventRename     EventType = "rename"
	EventTest       EventType = "test"
	EventManualScan EventType = "manual_scan"
	EventUnknown    EventType = "unknown"
)

// Event is the classified form of one inbound webhook. It is transient,
// lives only for the duration of request handling, and carries exactly
// the fields its variant needs: Series for sonarr payloads, Movie for
// radarr payloads, neither for manual scans.
type Event struct {
	Source  string
	RawType string
	Type    EventType
	Kind    MediaKind
	Title   string
	Path    string

	TVDBID int
	TMDBID int
	IMDBID string

	Series   *models.WebhookSeries
	Episodes []models.WebhookEpisode
	Movie    *models.WebhookMovie
	Release  *models.ReleaseInfo

	// Manual scan fields.
	Manual  bool
	Servers []string
}

// inboundEnvelope is the superset of shapes accepted on /webhook: the
// native arr payload plus the synthetic manual-scan shape.
type inboundEnvelope struct {
	models.WebhookPayload
	Path        string   `json:"path"`
	ContentType string   `json:"contentType"`
	Manual      bool     `json:"manual"`
	Servers     []string `json:"servers"`
}

// eventTypeAliases maps vendor event-type strings to the canonical
// taxonomy. Sonarr and Radarr both send "Download" for completed
// imports; newer Radarr versions also send "MovieFileImported".
// SeriesAdd and MovieAdded announce an item newly added to the source
// instance; like grabs they carry no file path yet.
var eventTypeAliases = map[string]EventType{
	"grab":              EventGrab,
	"download":          EventImport,
	"import":            EventImport,
	"moviefileimported": EventImport,
	"seriesadd":         EventAdd,
	"movieadded":        EventAdd,
	"seriesdelete":      EventDelete,
	"episodefiledelete": EventDelete,
	"moviedelete":       EventDelete,
	"moviefiledelete":   EventDelete,
	"rename":            EventRename,
	"test":              EventTest,
	"manualscan":        EventManualScan,
}

// canonicalEventType resolves a raw vendor event name. Unrecognized
// names map to EventUnknown rather than failing the request.
func canonicalEventType(raw string) EventType {
	if t, ok := eventTypeAliases[strings.ToLower(raw)]; ok {
		return t
	}
	return EventUnknown
}

// Classify parses a raw webhook body into an Event. It is a pure
// transform: no registry lookups, no side effects. Returns
// ErrMalformedPayload when the body is unparseable or when an event type
// that needs identifying fields (external id, path) lacks them.
func Classify(raw []byte) (*Event, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if env.EventType == "" {
		return nil, fmt.Errorf("%w: missing eventType", ErrMalformedPayload)
	}

	ev := &Event{
		Source:  env.InstanceName,
		RawType: env.EventType,
		Type:    canonicalEventType(env.EventType),
	}

	if ev.Type == EventManualScan {
		return classifyManual(&env, ev)
	}

	switch {
	case env.Series != nil:
		ev.Kind = KindSeries
		ev.Title = env.Series.Title
		ev.Path = env.Series.Path
		ev.TVDBID = env.Series.TVDBID
		ev.IMDBID = env.Series.IMDBID
		ev.Series = env.Series
		ev.Episodes = env.Episodes
		ev.Release = env.Release
	case env.Movie != nil:
		ev.Kind = KindMovie
		ev.Title = env.Movie.Title
		ev.Path = env.Movie.Path()
		ev.TMDBID = env.Movie.TMDBID
		ev.IMDBID = env.Movie.IMDBID
		ev.Movie = env.Movie
		ev.Release = env.Release
	default:
		// Test events legitimately arrive without a media block.
		if ev.Type == EventTest {
			return ev, nil
		}
		return nil, fmt.Errorf("%w: neither series nor movie block present", ErrMalformedPayload)
	}

	if ev.Actionable() {
		if ev.ExternalID() == 0 {
			return nil, fmt.Errorf("%w: %s event without external id", ErrMalformedPayload, ev.RawType)
		}
		if ev.Type == EventImport && ev.Path == "" {
			return nil, fmt.Errorf("%w: import event without path", ErrMalformedPayload)
		}
	}

	return ev, nil
}

func classifyManual(env *inboundEnvelope, ev *Event) (*Event, error) {
	if env.Path == "" {
		return nil, fmt.Errorf("%w: manual scan without path", ErrMalformedPayload)
	}
	ev.Manual = true
	ev.Path = env.Path
	ev.Servers = env.Servers
	switch strings.ToLower(env.ContentType) {
	case "series", "tv", "show":
		ev.Kind = KindSeries
	case "movie", "movies":
		ev.Kind = KindMovie
	default:
		ev.Kind = KindUnknown
	}
	return ev, nil
}

// Actionable reports whether the event can mutate target instances.
// Grab, import, and add events drive add-or-skip; deletes and renames
// are classified but never propagated across instances.
func (e *Event) Actionable() bool {
	return e.Type == EventGrab || e.Type == EventImport || e.Type == EventAdd
}

// ScanEligible reports whether the event should trigger media server
// scans. Imports and manual scans always qualify; deletes and renames
// qualify because the files on disk changed even though no instance
// mutation happens.
func (e *Event) ScanEligible() bool {
	switch e.Type {
	case EventImport, EventManualScan, EventDelete, EventRename:
		return e.Path != ""
	default:
		return false
	}
}

// ExternalID returns the vendor-appropriate external identifier: TVDB
// for series, TMDB for movies. Zero means absent.
func (e *Event) ExternalID() int {
	switch e.Kind {
	case KindSeries:
		return e.TVDBID
	case KindMovie:
		return e.TMDBID
	default:
		return 0
	}
}
