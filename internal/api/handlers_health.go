// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shelfwise/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of catalog state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.healthStatus("ok"),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only once a snapshot is published, 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := h.healthStatus("ready")

	statusCode := http.StatusOK
	status := "success"
	if !health.Ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
		health.Status = "starting"
		w.Header().Set("Retry-After", "5")
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data:   health,
		Metadata: models.Metadata{
			Timestamp:  time.Now(),
			SnapshotID: health.SnapshotID,
		},
	})
}

func (h *Handler) healthStatus(status string) models.HealthStatus {
	health := models.HealthStatus{
		Status:    status,
		Uptime:    time.Since(h.startTime).Seconds(),
		Version:   h.config.Version,
		Timestamp: time.Now(),
	}
	if snap, err := h.engine.Snapshot(); err == nil {
		health.Ready = true
		health.SnapshotID = snap.ID()
	}
	return health
}
