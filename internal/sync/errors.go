// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package sync

import "errors"

// Sentinel errors forming the processing taxonomy. Classification errors
// (ErrMalformedPayload, ErrUnknownSource) abort the whole request before
// any target work; the rest are recorded per-target or per-server and
// never abort siblings.
var (
	// ErrMalformedPayload marks a payload missing the fields its event
	// type requires (external id, path, media block).
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrUnknownSource marks a webhook whose instanceName is not in the
	// registry.
	ErrUnknownSource = errors.New("unknown source instance")

	// ErrNoMatchingSection marks a scan target whose library sections
	// claim none of the rewritten path.
	ErrNoMatchingSection = errors.New("no matching library section")

	// ErrMissingRootFolder marks a target instance that cannot accept
	// adds because no root folder path is configured for it.
	ErrMissingRootFolder = errors.New("no root folder path configured")

	// ErrItemNotFound marks a lookup that matched nothing on the remote
	// instance.
	ErrItemNotFound = errors.New("item not found")
)
