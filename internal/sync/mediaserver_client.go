// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"context"

	"github.com/tomtom215/mirrarr/internal/models"
)

// MediaServerClient is the capability contract the scan dispatcher
// consumes for one media server. One concrete implementation exists per
// vendor kind (Plex, Jellyfin, Emby).
//
// Scans are always scoped: ResolveSection maps a content path to the
// library section that claims it, and Scan refreshes only that section.
// Full-library refreshes are never issued; they rescan unrelated content
// and their cost grows with library size.
type MediaServerClient interface {
	// Ping verifies connectivity and credentials.
	Ping(ctx context.Context) error

	// ResolveSection finds the library section whose location claims the
	// path. Returns ErrNoMatchingSection when no section matches.
	ResolveSection(ctx context.Context, path string, kind MediaKind) (*models.Section, error)

	// Scan triggers a refresh of the section, scoped to path where the
	// vendor supports path-level scoping.
	Scan(ctx context.Context, section *models.Section, path string) error
}
