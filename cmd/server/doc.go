// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

/*
Package main is the entry point for the Shelfwise server application.

Shelfwise serves product recommendations over HTTP from a catalog file.
Anonymous users get top-rated products, users with history get
neighbour-based suggestions, and a query text adds content matches.

# Application Architecture

	RootSupervisor ("shelfwise")
	├── DataSupervisor ("data-layer")
	│   └── Catalog service (load, normalize, build, publish once)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Sources: DuckDB readers for the catalog and optional interaction file,
    wrapped in a gobreaker circuit breaker
 4. Engine: recommendation engine, not ready until the catalog service publishes
 5. Response cache: bigcache, optional
 6. Supervisor Tree: Suture v4 process supervision

The HTTP server starts immediately. Until the first snapshot is published
the readiness probe and recommendation endpoints answer 503.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains with
SHUTDOWN_TIMEOUT and services that fail to stop are reported.

# Exit Codes

	0  clean shutdown
	1  configuration error, or the tree terminated (for example a catalog
	   file missing the product name column)

# Example Usage

	export CATALOG_PATH=/data/products.tsv
	export LOG_FORMAT=console
	./shelfwise

	curl 'localhost:8080/api/v1/recommendations?user_id=4&q=shampoo&n=5'
*/
package main
