// Shelfwise - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfwise

/*
Package supervisor provides process supervision for Shelfwise using suture v4.

	RootSupervisor ("shelfwise")
	├── DataSupervisor ("data-layer")
	│   └── CatalogService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failed catalog load (missing file, DuckDB error) is restarted with
suture's backoff while the API keeps answering readiness probes with 503.
A structurally bad catalog returns suture.ErrTerminateSupervisorTree and
stops the whole tree so the process exits instead of restart-looping.

Supervisor events are logged through sutureslog into the zerolog-backed
slog handler from the logging package.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogService(engine, src, nil, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
