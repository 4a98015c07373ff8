// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - SecretaryKey: Key for secretary-only routes (optional; open when empty)
  - SeedFile: YAML judges and competitors applied at start-up
  - RulesFile: YAML scoring rules overlay
  - LogLevel, LogFormat: slog level and text/json handler
  - RequireActiveVote: Only accept marks for the competitor on the vote

# CLI Flags

	-p                   Server port
	-d                   Database URL
	-t                   Database type
	-secretary-key       Secretary key
	-seed                Seed file
	-rules               Rules file
	-log-level           Log level
	-log-format          Log format
	-require-active-vote Active-vote gate
	-env-file            Env file (default .env)

# Environment Variables

Flags fall back to environment variables, parsed with caarlos0/env:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	SECRETARY_KEY       → -secretary-key
	SEED_FILE           → -seed
	RULES_FILE          → -rules
	LOG_LEVEL           → -log-level
	LOG_FORMAT          → -log-format
	REQUIRE_ACTIVE_VOTE → -require-active-vote

Variables missing from the environment are read from the env file first
(joho/godotenv). CLI flags take precedence over environment variables.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(cfg.NewLogger(os.Stdout))

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(conn, cfg, rules)
*/
package cliparse
