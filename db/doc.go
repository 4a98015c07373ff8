// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Opening

	conn, err := db.Open("sqlite", "gimnis.db")
	conn, err := db.Open("postgres", "postgres://...")

SQLite connections are limited to a single open connection so that
transactions serialize.

# Schema Creation

CreateSchema initializes all required tables. Safe to call multiple times.
The DDL sticks to the subset shared by PostgreSQL and SQLite.

# Tables

  - judges: panel members and their role
  - competitors: registered entries, validation state, frozen total and breakdown
  - competitor_members: people in each entry
  - scores: one row per (judge, competitor, score type), value in [0, 10]
  - current_vote: single row holding the active competitor

# Relationships

	competitors 1──* competitor_members
	competitors 1──* scores
	judges      1──* scores
	current_vote *──1 competitors

# Transactions

WithTx runs a function inside a transaction and rolls back on error. Engine
code takes a Querier so the same helpers run against *sql.DB or *sql.Tx.
*/
package db
