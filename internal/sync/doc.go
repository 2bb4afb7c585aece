// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

// Package sync implements the webhook dispatch and synchronization engine:
// event classification, cross-instance add-or-skip relaying with pacing,
// path rewriting, and scoped media server scan dispatch.
//
// Processing for one inbound event is strictly sequential. The registry
// passed into a run is an immutable snapshot; configuration changes take
// effect on the next run, never mid-run.
package sync
