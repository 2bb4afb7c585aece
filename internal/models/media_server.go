// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package models

// Section is a vendor-neutral view of one media server library section,
// resolved against a content path before a scoped scan.
type Section struct {
	ID        string
	Title     string
	Locations []string
}

// PlexSectionsResponse is the JSON envelope of Plex /library/sections
// when requested with Accept: application/json.
type PlexSectionsResponse struct {
	MediaContainer PlexMediaContainer `json:"MediaContainer"`
}

// PlexMediaContainer wraps the library section directory list.
type PlexMediaContainer struct {
	Size        int             `json:"size"`
	Directories []PlexDirectory `json:"Directory"`
}

// PlexDirectory is one library section inside a Plex MediaContainer.
type PlexDirectory struct {
	Key       string         `json:"key"`
	Type      string         `json:"type"` // "movie", "show"
	Title     string         `json:"title"`
	Locations []PlexLocation `json:"Location"`
}

// PlexLocation is a filesystem path claimed by a Plex library section.
type PlexLocation struct {
	ID   int    `json:"id"`
	Path string `json:"path"`
}

// PlexIdentityResponse is the envelope of Plex /identity, used for
// connectivity checks.
type PlexIdentityResponse struct {
	MediaContainer PlexIdentity `json:"MediaContainer"`
}

// PlexIdentity carries the server identifier and version.
type PlexIdentity struct {
	MachineIdentifier string `json:"machineIdentifier"`
	Version           string `json:"version"`
}

// JellyfinMediaFolder is one entry of /Library/SelectableMediaFolders on
// Jellyfin and Emby servers.
type JellyfinMediaFolder struct {
	Name       string              `json:"Name"`
	ID         string              `json:"Id"`
	SubFolders []JellyfinSubFolder `json:"SubFolders,omitempty"`
}

// JellyfinSubFolder is a filesystem path belonging to a media folder.
type JellyfinSubFolder struct {
	Name string `json:"Name"`
	ID   string `json:"Id"`
	Path string `json:"Path"`
}

// JellyfinSystemInfo is the subset of /System/Info/Public used for
// connectivity checks. Emby serves the same shape.
type JellyfinSystemInfo struct {
	ServerName string `json:"ServerName"`
	Version    string `json:"Version"`
	ID         string `json:"Id"`
}
