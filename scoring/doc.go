// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package scoring turns a competitor's raw panel marks into a Breakdown.
// It has no storage and no side effects.
package scoring
