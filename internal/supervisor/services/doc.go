// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

/*
Package services provides suture.Service implementations for basketrec.

RebuildService owns every snapshot rebuild. It rebuilds on startup, on a
fixed interval, and on demand through Trigger. On-demand requests are rate
limited with golang.org/x/time/rate to one per MinRebuildGap, and requests
arriving while one is already queued are merged into it. Skipped requests are
counted in basketrec_rebuilds_skipped_total by reason (throttled, coalesced,
in_progress).

HTTPServerService adapts *http.Server to suture's context-driven lifecycle
and shuts the server down gracefully when its context is canceled.
*/
package services
