// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

/*
Package services provides suture.Service wrappers for Shelfwise components.

CatalogService (data layer):
  - loads the catalog table (and an optional interaction table) through a loader.Source
  - normalizes, builds the recommendation snapshot and publishes it once
  - idles until shutdown; a restart after publication does not reload
  - schema errors terminate the supervisor tree, I/O errors are retried

HTTPServerService (api layer):
  - runs *http.Server.ListenAndServe in a goroutine
  - on context cancellation calls Shutdown with its own timeout
  - http.ErrServerClosed is not treated as a failure

Both implement fmt.Stringer so supervisor events name them.
*/
package services
