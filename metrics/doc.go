// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics registers the service's Prometheus collectors.

Collectors are package-level and registered once via promauto:

  - kq_votes_submitted_total{outcome}: accepted, duplicate, rejected, error
  - kq_results_requests_total{outcome}: revealed, gated, error
  - kq_http_request_duration_seconds{method,route}

The /metrics endpoint is served by promhttp in the router.
*/
package metrics
