// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Gimnis API.

	mux := router.NewRouter(db, cfg, rules)

# Endpoints

Ops:

	GET /health
	GET /metrics

Judges:

	POST   /scores        - Submit or overwrite a mark
	DELETE /scores        - Remove a mark
	GET    /votes/current - Active competitor (?judge_id= adds already_voted)

Secretary (requires X-Secretary-Key when a key is configured):

	POST   /votes/start                - Open voting on a competitor
	POST   /votes/stop                 - Clear the active competitor
	PUT    /scores/{competitorId}      - Bulk edit marks by label
	POST   /competitors/{id}/validate  - Freeze the total
	DELETE /competitors/{id}/validate  - Unfreeze

Read-only:

	GET /scores
	GET /scores/{competitorId}
	GET /scores/{competitorId}/preview
	GET /competitors?category=
	GET /judges
	GET /judges/{id}/scores
	GET /rankings?category=

Every route is wrapped with middleware.WithLogging. main wraps the whole mux
with CORS and request ids.
*/
package router
