// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package models

// Aggregate status values reported by webhook and scan responses.
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)

// WebhookResponse is the synchronous result of processing one webhook:
// per-target sync outcomes, per-server scan outcomes, and an aggregate
// status. The HTTP status is 200 whenever processing ran; failures live
// in the outcome entries.
type WebhookResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message,omitempty"`
	EventType   string       `json:"event_type"`
	Title       string       `json:"title,omitempty"`
	SyncResults []SyncResult `json:"sync_results"`
	ScanResults []ScanResult `json:"scan_results"`
	ScannedPath string       `json:"scanned_path,omitempty"`
}

// SyncResult reports the outcome of relaying to one target instance.
type SyncResult struct {
	Target string `json:"target"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ScanResult reports the outcome of one media server scan attempt.
type ScanResult struct {
	Server     string `json:"server"`
	ServerType string `json:"type"`
	Status     string `json:"status"`
	Section    string `json:"section,omitempty"`
	Error      string `json:"error,omitempty"`
}

// TestConnectionResponse is the result of a connectivity probe against an
// arr instance or media server.
type TestConnectionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}

// RootFoldersResponse wraps the proxied root folder list of an instance.
type RootFoldersResponse struct {
	Status  string       `json:"status"`
	Folders []RootFolder `json:"folders"`
}

// QualityProfilesResponse wraps the proxied quality profile list.
type QualityProfilesResponse struct {
	Status   string           `json:"status"`
	Profiles []QualityProfile `json:"profiles"`
}

// LanguageProfilesResponse wraps the proxied language profile list.
type LanguageProfilesResponse struct {
	Status   string            `json:"status"`
	Profiles []LanguageProfile `json:"profiles"`
}

// ErrorResponse is the standard error envelope for 4xx/5xx responses.
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse reports liveness and component readiness.
type HealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}

// DebugWebhookResponse echoes a received payload back for inspection.
type DebugWebhookResponse struct {
	Status    string         `json:"status"`
	EventType string         `json:"event_type"`
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload"`
}
