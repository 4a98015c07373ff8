// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"strings"

	"github.com/danielhkuo/gimnis/models"
)

// Difficulty divisors
const (
	BaseDivisor   = 2.0
	MixedDivisor  = 1.9
	FemaleDivisor = 1.8
)

// Category parts. Categories are written "<Kind> - <Level>", e.g.
// "Trio - Seniors" or "Individual Men - Youth".
const (
	KindTrio     = "Trio"
	KindGroup    = "Group"
	LevelSeniors = "Seniors"
)

// SplitCategory returns the kind and level halves of a category name.
func SplitCategory(category string) (kind, level string) {
	kind, level, _ = strings.Cut(category, " - ")
	return strings.TrimSpace(kind), strings.TrimSpace(level)
}

// SeniorTeam reports whether the category is a Seniors Trio or Group.
func SeniorTeam(category string) bool {
	kind, level := SplitCategory(category)
	if !strings.EqualFold(level, LevelSeniors) {
		return false
	}
	return strings.EqualFold(kind, KindTrio) || strings.EqualFold(kind, KindGroup)
}

// Divisor selects the difficulty divisor with the default values.
func Divisor(category string, sexes []string) float64 {
	return DefaultRules().Divisor(category, sexes)
}

// Divisor selects the difficulty divisor for a category and roster.
// Only Seniors Trio/Group rosters change it: mixed rosters use the mixed
// divisor, all-female rosters the female divisor. Everything else keeps
// the base divisor.
func (r Rules) Divisor(category string, sexes []string) float64 {
	if !SeniorTeam(category) {
		return r.BaseDivisor
	}

	var male, female int
	for _, s := range sexes {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case models.SexMale:
			male++
		case models.SexFemale:
			female++
		}
	}

	switch {
	case male > 0 && female > 0:
		return r.MixedDivisor
	case female > 0 && female == len(sexes):
		return r.FemaleDivisor
	default:
		return r.BaseDivisor
	}
}
