// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

/*
Package opsapi provides the operational HTTP endpoints of the basketrec server.

Routes (chi):

	GET  /healthz        process liveness, always 200
	GET  /readyz         200 with the engine status once a snapshot is published, 503 before
	GET  /metrics        Prometheus exposition
	POST /admin/rebuild  queue an on-demand snapshot rebuild (202, or 429 when throttled)

Recommendations themselves are served in-process by recommend.Engine; this
package exposes no query endpoints.

Every request gets an X-Request-ID, which is propagated into the logging
context and into rebuilds triggered through /admin/rebuild.
*/
package opsapi
