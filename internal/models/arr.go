// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package models

// Resources exchanged with the Sonarr and Radarr v3 APIs. Field sets are
// trimmed to what the relay reads and writes; both APIs tolerate missing
// optional fields on add.

// SeriesResource is a Sonarr series as returned by /api/v3/series and
// accepted by POST /api/v3/series.
type SeriesResource struct {
	ID                int               `json:"id,omitempty"`
	Title             string            `json:"title"`
	TitleSlug         string            `json:"titleSlug,omitempty"`
	TVDBID            int               `json:"tvdbId"`
	Path              string            `json:"path,omitempty"`
	RootFolderPath    string            `json:"rootFolderPath,omitempty"`
	QualityProfileID  int               `json:"qualityProfileId,omitempty"`
	LanguageProfileID int               `json:"languageProfileId,omitempty"`
	SeasonFolder      bool              `json:"seasonFolder"`
	Monitored         bool              `json:"monitored"`
	SeriesType        string            `json:"seriesType,omitempty"`
	Year              int               `json:"year,omitempty"`
	Seasons           []SeasonResource  `json:"seasons,omitempty"`
	Images            []MediaImage      `json:"images,omitempty"`
	AddOptions        *AddSeriesOptions `json:"addOptions,omitempty"`
}

// SeasonResource is a per-season monitoring flag.
type SeasonResource struct {
	SeasonNumber int  `json:"seasonNumber"`
	Monitored    bool `json:"monitored"`
}

// AddSeriesOptions controls Sonarr behavior when a series is first added.
type AddSeriesOptions struct {
	IgnoreEpisodesWithFiles      bool   `json:"ignoreEpisodesWithFiles"`
	IgnoreEpisodesWithoutFiles   bool   `json:"ignoreEpisodesWithoutFiles"`
	Monitor                      string `json:"monitor,omitempty"`
	SearchForMissingEpisodes     bool   `json:"searchForMissingEpisodes"`
	SearchForCutoffUnmetEpisodes bool   `json:"searchForCutoffUnmetEpisodes"`
}

// MovieResource is a Radarr movie as returned by /api/v3/movie and
// accepted by POST /api/v3/movie.
type MovieResource struct {
	ID                  int              `json:"id,omitempty"`
	Title               string           `json:"title"`
	TitleSlug           string           `json:"titleSlug,omitempty"`
	TMDBID              int              `json:"tmdbId"`
	Path                string           `json:"path,omitempty"`
	RootFolderPath      string           `json:"rootFolderPath,omitempty"`
	QualityProfileID    int              `json:"qualityProfileId,omitempty"`
	Monitored           bool             `json:"monitored"`
	MinimumAvailability string           `json:"minimumAvailability,omitempty"`
	Year                int              `json:"year,omitempty"`
	Images              []MediaImage     `json:"images,omitempty"`
	AddOptions          *AddMovieOptions `json:"addOptions,omitempty"`
}

// AddMovieOptions controls Radarr behavior when a movie is first added.
type AddMovieOptions struct {
	SearchForMovie bool `json:"searchForMovie"`
}

// CommandRequest is the body for POST /api/v3/command. Radarr's
// MoviesSearch command takes the ids of the movies to search for.
type CommandRequest struct {
	Name     string `json:"name"`
	MovieIDs []int  `json:"movieIds,omitempty"`
}

// RootFolder is an arr root folder entry from /api/v3/rootfolder.
type RootFolder struct {
	ID         int    `json:"id"`
	Path       string `json:"path"`
	Accessible bool   `json:"accessible"`
	FreeSpace  int64  `json:"freeSpace,omitempty"`
}

// QualityProfile is an arr quality profile from /api/v3/qualityprofile.
type QualityProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LanguageProfile is a Sonarr language profile from /api/v3/languageprofile.
// Radarr has no language profiles.
type LanguageProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SystemStatus is the subset of /api/v3/system/status used for
// connectivity checks.
type SystemStatus struct {
	AppName      string `json:"appName,omitempty"`
	InstanceName string `json:"instanceName,omitempty"`
	Version      string `json:"version"`
}
