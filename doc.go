// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Gimnis scoring server.

Gimnis collects marks from a gymnastics judging panel, coordinates which
competitor is currently being voted on, aggregates the panel into a final
score and freezes it once the secretary validates it. Rankings are computed
from frozen totals only.

# Starting the Server

	DATABASE_URL=gimnis.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -secretary-key s3cret

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SECRETARY_KEY (-secretary-key): required on secretary routes when set
  - SEED_FILE (-seed): YAML file with judges and competitors
  - RULES_FILE (-rules): YAML overlay for scoring rules
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output
  - REQUIRE_ACTIVE_VOTE: only accept marks for the active competitor

A .env file in the working directory is loaded when present.

# Architecture

  - scores, session, validation, ranking: the engine
  - scoring: pure aggregation rules
  - directory, registry: judges and competitors
  - handlers, router, middleware: HTTP surface
  - db, cliparse, metrics, auth: infrastructure

See package documentation for each component.
*/
package main
