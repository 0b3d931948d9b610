// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

/*
Package config provides layered configuration management for Shelfwise.

Settings come from built-in defaults, an optional YAML file and mapped
environment variables, in increasing priority, using knadh/koanf v2.

# Config File

The first existing file among CONFIG_PATH, config.yaml, config.yml,
/etc/shelfwise/config.yaml and /etc/shelfwise/config.yml is loaded:

	server:
	  port: 8080
	catalog:
	  path: /data/products.csv
	  columns:
	    text: [Category, Description, Tags]
	recommend:
	  default_n: 10
	  collaborative:
	    k: 50
	    similarity_metric: cosine

# Environment Variables

Server: HTTP_PORT, HTTP_HOST, SERVER_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT

API: CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT,
RESPONSE_CACHE_ENABLED, RESPONSE_CACHE_TTL, RESPONSE_CACHE_MAX_MB,
SLOW_REQUEST_THRESHOLD

ENVIRONMENT=production (or prod) refuses DISABLE_RATE_LIMIT=true.

Catalog: CATALOG_PATH (required), INTERACTIONS_PATH, CATALOG_FORMAT,
CATALOG_COLUMN_NAME, CATALOG_COLUMN_BRAND, CATALOG_COLUMN_RATING,
CATALOG_COLUMN_REVIEW_COUNT, CATALOG_COLUMN_IMAGE, CATALOG_COLUMN_ITEM_ID,
CATALOG_COLUMN_USER_ID, CATALOG_TEXT_COLUMNS, LOADER_BREAKER_*

Recommend: RECOMMEND_DEFAULT_N, RECOMMEND_MAX_N, RECOMMEND_SUPPLEMENTAL_K,
RATING_WEIGHT, REVIEW_WEIGHT, REVIEW_CAP, CONTENT_MIN_TOKEN_LENGTH,
CONTENT_SUBLINEAR_TF, CONTENT_STOP_WORDS, KNN_NEIGHBORS, KNN_MIN_SIMILARITY,
KNN_SIMILARITY_METRIC, KNN_SHRINKAGE, KNN_MIN_COMMON_ITEMS, KNN_WORKERS

Logging: LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Comma-separated values are accepted for CORS_ORIGINS, CATALOG_TEXT_COLUMNS
and CONTENT_STOP_WORDS.
*/
package config
