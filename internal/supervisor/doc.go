// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

/*
Package supervisor provides process supervision for basketrec using suture v4.

The tree separates the rebuild scheduler from the ops HTTP server so each
can restart on its own:

	RootSupervisor ("basketrec")
	├── EngineSupervisor ("engine-layer")
	│   └── RebuildService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (if OPS_ADDR is set)

Supervisor events (service failures, backoff, restarts) are written through
sutureslog into the zerolog logger, using the logging package's slog adapter:

	tree, err := supervisor.NewSupervisorTree(
	    logging.NewSlogLogger(logging.WithComponent("supervisor")),
	    supervisor.DefaultTreeConfig(),
	)
	tree.AddEngineService(rebuildSvc)
	tree.AddAPIService(httpSvc)
	err = tree.Serve(ctx)

Cancelling ctx stops every service; services that outlive ShutdownTimeout
are listed by UnstoppedServiceReport.

See the services subpackage for the service implementations.
*/
package supervisor
