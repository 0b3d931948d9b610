// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

/*
Package validation provides struct validation using go-playground/validator v10.

A single validator instance caches struct metadata and is shared by every
handler. Failures are reported as *RequestValidationError, which converts to
the API's VALIDATION_ERROR format through ToAPIError.

Custom tags:
  - maxterms=N: a comma-separated string has at most N non-empty terms
*/
package validation
