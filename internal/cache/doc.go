// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

/*
Package cache provides the HTTP response cache.

Entries are serialized response bodies stored in allegro/bigcache, a
sharded byte cache that keeps its entries out of the garbage
collector's pointer graph. All entries share one TTL.

Keys are built with GenerateKey from a namespace and the normalized
request parameters. The API includes the published snapshot id in the
parameters, so a new snapshot never serves stale bodies.

# Usage Example

	c, err := cache.New(ctx, cache.Config{TTL: 5 * time.Minute, MaxMB: 64})
	if err != nil {
	    return err
	}
	defer c.Close()

	key := cache.GenerateKey("top-rated", map[string]any{"snapshot": id, "n": 10})
	if body, ok := c.Get(key); ok {
	    w.Write(body)
	    return
	}

Set the Noop cacher when caching is disabled:

	var c cache.Cacher = cache.Noop{}
*/
package cache
