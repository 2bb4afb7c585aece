// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mirrarr/internal/logging"
	"github.com/tomtom215/mirrarr/internal/metrics"
	"github.com/tomtom215/mirrarr/internal/models"
	"github.com/tomtom215/mirrarr/internal/sync"
)

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	engine    *sync.Engine
	version   string
	startTime time.Time
}

// NewHandler builds a handler set over the engine.
func NewHandler(engine *sync.Engine, version string) *Handler {
	return &Handler{
		engine:    engine,
		version:   version,
		startTime: time.Now(),
	}
}

// Webhook receives arr webhook POSTs and the synthetic manual-scan
// shape, runs classification, relay, and scan dispatch synchronously,
// and reports itemized outcomes. Response latency includes the full
// pacing budget (delay + targets x interval); callers must tolerate it.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { metrics.WebhookDuration.Observe(time.Since(start).Seconds()) }()

	webhookID := logging.GenerateWebhookID()
	ctx := logging.ContextWithWebhookID(r.Context(), webhookID)
	log := logging.Ctx(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		metrics.WebhooksRejected.WithLabelValues("read_error").Inc()
		respondError(w, http.StatusBadRequest, "MALFORMED_PAYLOAD", "Failed to read request body", err)
		return
	}

	ev, err := sync.Classify(body)
	if err != nil {
		metrics.WebhooksRejected.WithLabelValues("malformed").Inc()
		respondError(w, http.StatusBadRequest, "MALFORMED_PAYLOAD", "Webhook payload is malformed", err)
		return
	}

	metrics.WebhooksReceived.WithLabelValues(string(ev.Type), string(ev.Kind)).Inc()
	log.Info().
		Str("event_type", sanitizeLogValue(ev.RawType)).
		Str("kind", string(ev.Kind)).
		Str("source", sanitizeLogValue(ev.Source)).
		Str("title", sanitizeLogValue(ev.Title)).
		Msg("Webhook received")

	// A disconnecting caller must not abort in-flight target work; the
	// run completes and the response is discarded by the transport.
	runCtx := context.WithoutCancel(ctx)

	if ev.Manual {
		h.manualScan(runCtx, w, ev)
		return
	}

	source, ok := h.engine.Registry().Instance(ev.Source)
	if !ok {
		metrics.WebhooksRejected.WithLabelValues("unknown_source").Inc()
		respondError(w, http.StatusNotFound, "UNKNOWN_SOURCE",
			"Webhook source instance is not configured", sync.ErrUnknownSource)
		return
	}

	if ev.Type == sync.EventTest {
		respondJSON(w, http.StatusOK, &models.WebhookResponse{
			Status:      models.StatusOK,
			Message:     "Test webhook received",
			EventType:   ev.RawType,
			SyncResults: []models.SyncResult{},
			ScanResults: []models.ScanResult{},
		})
		return
	}

	syncOutcomes := h.engine.Synchronize(runCtx, ev, source)
	scanOutcomes, _ := h.engine.DispatchScans(runCtx, ev)

	resp := buildWebhookResponse(ev, syncOutcomes, scanOutcomes)
	log.Info().
		Str("status", resp.Status).
		Int("sync_results", len(resp.SyncResults)).
		Int("scan_results", len(resp.ScanResults)).
		Msg("Webhook processed")
	respondJSON(w, http.StatusOK, resp)
}

// manualScan bypasses instance matching and goes straight to the scan
// dispatcher.
func (h *Handler) manualScan(ctx context.Context, w http.ResponseWriter, ev *sync.Event) {
	outcomes, status := h.engine.DispatchScans(ctx, ev)
	resp := &models.WebhookResponse{
		Status:      status,
		EventType:   ev.RawType,
		SyncResults: []models.SyncResult{},
		ScanResults: scanResults(outcomes),
		ScannedPath: ev.Path,
	}
	if len(outcomes) == 0 {
		resp.Message = "No media servers matched the scan request"
	}
	respondJSON(w, http.StatusOK, resp)
}

// DebugWebhook echoes the classification of a payload without running
// it. Useful when wiring a new instance.
func (h *Handler) DebugWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "MALFORMED_PAYLOAD", "Failed to read request body", err)
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "MALFORMED_PAYLOAD", "Payload is not valid JSON", err)
		return
	}

	resp := &models.DebugWebhookResponse{
		Status:  models.StatusOK,
		Payload: payload,
	}
	if ev, err := sync.Classify(body); err == nil {
		resp.EventType = string(ev.Type)
		resp.Kind = string(ev.Kind)
	} else if errors.Is(err, sync.ErrMalformedPayload) {
		resp.EventType = "malformed"
	}
	respondJSON(w, http.StatusOK, resp)
}

// buildWebhookResponse folds per-target and per-server outcomes into the
// response envelope with an aggregate status: ok when nothing errored,
// error when nothing succeeded, warning in between.
func buildWebhookResponse(ev *sync.Event, syncs []sync.SyncOutcome, scans []sync.ScanOutcome) *models.WebhookResponse {
	resp := &models.WebhookResponse{
		EventType:   ev.RawType,
		Title:       ev.Title,
		SyncResults: make([]models.SyncResult, 0, len(syncs)),
		ScanResults: scanResults(scans),
	}
	if len(scans) > 0 {
		resp.ScannedPath = ev.Path
	}

	succeeded, failed := 0, 0
	for _, o := range syncs {
		result := models.SyncResult{Target: o.Target, Status: o.Status, Detail: o.Detail}
		if o.Err != nil {
			result.Error = o.Err.Error()
			failed++
		} else {
			succeeded++
		}
		resp.SyncResults = append(resp.SyncResults, result)
	}
	for _, o := range scans {
		if o.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}

	switch {
	case failed == 0:
		resp.Status = models.StatusOK
	case succeeded > 0:
		resp.Status = models.StatusWarning
	default:
		resp.Status = models.StatusError
	}
	if len(syncs) == 0 && len(scans) == 0 {
		resp.Status = models.StatusOK
		resp.Message = "Nothing to synchronize"
	}
	return resp
}

func scanResults(outcomes []sync.ScanOutcome) []models.ScanResult {
	results := make([]models.ScanResult, 0, len(outcomes))
	for _, o := range outcomes {
		result := models.ScanResult{
			Server:     o.Server,
			ServerType: o.ServerType,
			Status:     o.Status,
			Section:    o.SectionID,
		}
		if o.Err != nil {
			result.Error = o.Err.Error()
		}
		results = append(results, result)
	}
	return results
}
