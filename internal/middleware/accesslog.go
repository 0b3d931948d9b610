// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/shelfwise/internal/logging"
)

// AccessLog writes one log line per request. Requests slower than
// slowThreshold, and 5xx responses, are logged at warn; the rest at debug.
// A zero threshold disables slow-request escalation.
func AccessLog(slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			elapsed := time.Since(start)
			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			if wrapper.statusCode >= http.StatusInternalServerError || (slowThreshold > 0 && elapsed > slowThreshold) {
				event = logger.Warn()
			}
			event.
				Str("method", r.Method).
				Str("path", logging.SanitizeValue(r.URL.Path, 200)).
				Str("route", routeLabel(r)).
				Int("status", wrapper.statusCode).
				Int("bytes", wrapper.bytes).
				Dur("duration", elapsed).
				Msg("HTTP request")
		})
	}
}
