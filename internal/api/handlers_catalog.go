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

// CatalogStatus handles GET /api/v1/catalog/status.
// Before publication it answers 200 with ready=false so operators can
// poll it the same way before and after the load.
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	status := models.CatalogStatus{}

	snap, err := h.engine.Snapshot()
	if err == nil {
		st := snap.Stats()
		status = models.CatalogStatus{
			Ready:               true,
			SnapshotID:          st.ID,
			BuiltAt:             st.BuiltAt,
			BuildDurationMS:     st.BuildDuration.Milliseconds(),
			Items:               st.Items,
			Users:               st.Users,
			Interactions:        st.Interactions,
			SkippedInteractions: st.SkippedInteractions,
			VocabularySize:      st.Vocabulary,
			Normalization: models.Normalization{
				RowsRead:            st.Catalog.RowsRead,
				RowsSkipped:         st.Catalog.RowsSkipped,
				Duplicates:          st.Catalog.Duplicates,
				InvalidRatings:      st.Catalog.InvalidRatings,
				InvalidReviewCounts: st.Catalog.InvalidReviewCounts,
			},
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp:  time.Now(),
			SnapshotID: status.SnapshotID,
		},
	})
}
