// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

// Package models provides wire-level data models for inbound webhooks,
// Sonarr/Radarr API calls, media server API calls, and HTTP responses.
package models

// WebhookPayload is the inbound notification body posted by a Sonarr or
// Radarr instance. Exactly one of Series or Movie is set on a well-formed
// payload; both fields are pointers so presence can be distinguished from
// an empty struct.
type WebhookPayload struct {
	EventType      string           `json:"eventType"`
	InstanceName   string           `json:"instanceName"`
	ApplicationURL string           `json:"applicationUrl,omitempty"`
	Series         *WebhookSeries   `json:"series,omitempty"`
	Episodes       []WebhookEpisode `json:"episodes,omitempty"`
	Movie          *WebhookMovie    `json:"movie,omitempty"`

	Release            *ReleaseInfo      `json:"release,omitempty"`
	DownloadClient     string            `json:"downloadClient,omitempty"`
	DownloadClientType string            `json:"downloadClientType,omitempty"`
	CustomFormatInfo   *CustomFormatInfo `json:"customFormatInfo,omitempty"`
}

// WebhookSeries is the series block of a Sonarr webhook.
type WebhookSeries struct {
	ID               int          `json:"id"`
	Title            string       `json:"title"`
	TitleSlug        string       `json:"titleSlug,omitempty"`
	Path             string       `json:"path"`
	TVDBID           int          `json:"tvdbId"`
	TVMazeID         int          `json:"tvMazeId,omitempty"`
	TMDBID           int          `json:"tmdbId,omitempty"`
	IMDBID           string       `json:"imdbId,omitempty"`
	Type             string       `json:"type"`
	Year             int          `json:"year"`
	Genres           []string     `json:"genres,omitempty"`
	Images           []MediaImage `json:"images,omitempty"`
	Tags             []string     `json:"tags,omitempty"`
	OriginalLanguage *Language    `json:"originalLanguage,omitempty"`
}

// WebhookEpisode is one entry of the episodes block of a Sonarr webhook.
type WebhookEpisode struct {
	ID            int    `json:"id"`
	EpisodeNumber int    `json:"episodeNumber"`
	SeasonNumber  int    `json:"seasonNumber"`
	Title         string `json:"title"`
	Overview      string `json:"overview,omitempty"`
	AirDate       string `json:"airDate,omitempty"`
	AirDateUTC    string `json:"airDateUtc,omitempty"`
	SeriesID      int    `json:"seriesId"`
	TVDBID        int    `json:"tvdbId"`
}

// WebhookMovie is the movie block of a Radarr webhook.
type WebhookMovie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	FilePath    string   `json:"filePath,omitempty"`
	FolderPath  string   `json:"folderPath,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	TMDBID      int      `json:"tmdbId"`
	IMDBID      string   `json:"imdbId,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Path returns the library path of the movie, preferring the folder path.
func (m *WebhookMovie) Path() string {
	if m.FolderPath != "" {
		return m.FolderPath
	}
	return m.FilePath
}

// ReleaseInfo describes the grabbed or imported release.
type ReleaseInfo struct {
	Quality           string     `json:"quality,omitempty"`
	QualityVersion    int        `json:"qualityVersion,omitempty"`
	ReleaseTitle      string     `json:"releaseTitle,omitempty"`
	Indexer           string     `json:"indexer,omitempty"`
	Size              int64      `json:"size,omitempty"`
	CustomFormatScore int        `json:"customFormatScore,omitempty"`
	CustomFormats     []string   `json:"customFormats,omitempty"`
	Languages         []Language `json:"languages,omitempty"`
}

// CustomFormatInfo carries scored custom formats of the imported release.
type CustomFormatInfo struct {
	CustomFormats     []CustomFormat `json:"customFormats"`
	CustomFormatScore int            `json:"customFormatScore"`
}

// CustomFormat is a named custom format entry.
type CustomFormat struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Language is a language reference as used across arr payloads.
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MediaImage is a poster/banner/fanart reference.
type MediaImage struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url"`
	RemoteURL string `json:"remoteUrl,omitempty"`
}

// ManualScanRequest asks for a targeted media server scan without an
// originating arr webhook.
type ManualScanRequest struct {
	Path      string   `json:"path" validate:"required"`
	MediaType string   `json:"media_type,omitempty" validate:"omitempty,oneof=series movie"`
	Servers   []string `json:"servers,omitempty"`
}
