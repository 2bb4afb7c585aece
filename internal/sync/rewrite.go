// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import (
	"strings"

	"github.com/tomtom215/mirrarr/internal/config"
)

// RewritePath translates a filesystem path between two views of the same
// storage by ordered prefix substitution. First matching rule wins,
// regardless of specificity; comparison is case-sensitive; a path no
// rule matches passes through unchanged. Pure and total: it never fails.
func RewritePath(path string, rules []config.RewriteRule) string {
	for _, r := range rules {
		if r.From == "" {
			continue
		}
		if strings.HasPrefix(path, r.From) {
			return r.To + strings.TrimPrefix(path, r.From)
		}
	}
	return path
}
