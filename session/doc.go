// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session tracks which competitor is open for live voting.
//
// The state is one row in current_vote. StartVote replaces it, StopVote
// clears it, and every write is a single UPDATE so readers never see a
// half-applied change. Starting a vote does not validate or otherwise touch
// the previous competitor.
package session
