// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/danielhkuo/gimnis/models"
)

// Panel sizes
const (
	FourJudgePanelSize = 4
	TwoJudgePanelSize  = 2
)

// Tolerance tiers for four-judge panels, keyed by the floor of the
// middle-pair average.
const (
	HighTierFloor         = 8.0
	HighTierTolerance     = 0.3
	UpperMidTierFloor     = 7.0
	UpperMidTierTolerance = 0.4
	LowerMidTierFloor     = 6.0
	LowerMidTierTolerance = 0.5
	BaseTolerance         = 0.6
)

// marks are entered with at most a few decimals; anything below this is
// float noise, not a real difference
const epsilon = 1e-9

// Tier maps a middle-average floor to the allowed middle-pair spread.
type Tier struct {
	Floor     float64 `koanf:"floor" json:"floor"`
	Tolerance float64 `koanf:"tolerance" json:"tolerance"`
}

// DefaultTiers returns the standard tolerance tiers, highest floor first.
func DefaultTiers() []Tier {
	return []Tier{
		{Floor: HighTierFloor, Tolerance: HighTierTolerance},
		{Floor: UpperMidTierFloor, Tolerance: UpperMidTierTolerance},
		{Floor: LowerMidTierFloor, Tolerance: LowerMidTierTolerance},
	}
}

// ToleranceFor returns the tolerance for a middle-pair average. tiers must
// be sorted by descending floor; averages below every floor get fallback.
func ToleranceFor(middleAvg float64, tiers []Tier, fallback float64) float64 {
	for _, t := range tiers {
		if middleAvg >= t.Floor {
			return t.Tolerance
		}
	}
	return fallback
}

// Tolerance returns the default-tier tolerance for a middle-pair average.
func Tolerance(middleAvg float64) float64 {
	return ToleranceFor(middleAvg, DefaultTiers(), BaseTolerance)
}

// FourJudgePanel reduces four marks to a section value using the default tiers.
func FourJudgePanel(marks []float64) (models.Section, error) {
	return fourJudgePanel(marks, DefaultTiers(), BaseTolerance)
}

// fourJudgePanel has two branches. When the two middle marks agree within
// the tier tolerance, the section is their average. Otherwise the section is
// the mean of all four marks and is flagged discrepant.
func fourJudgePanel(marks []float64, tiers []Tier, fallback float64) (models.Section, error) {
	if len(marks) != FourJudgePanelSize {
		return models.Section{}, fmt.Errorf("four-judge panel needs %d marks, got %d", FourJudgePanelSize, len(marks))
	}

	sorted := sortedCopy(marks)
	middleAvg := (sorted[1] + sorted[2]) / 2
	middleDiff := sorted[2] - sorted[1]

	if middleDiff <= ToleranceFor(middleAvg, tiers, fallback)+epsilon {
		return models.Section{Value: middleAvg, Marks: sorted}, nil
	}

	return models.Section{Value: mean(sorted), Marks: sorted, Discrepant: true}, nil
}

// TwoJudgePanel averages a two-judge panel. Any difference between the two
// marks flags the section as discrepant; the value is still the mean.
func TwoJudgePanel(marks []float64) (models.Section, error) {
	if len(marks) != TwoJudgePanelSize {
		return models.Section{}, fmt.Errorf("two-judge panel needs %d marks, got %d", TwoJudgePanelSize, len(marks))
	}

	sorted := sortedCopy(marks)
	return models.Section{
		Value:      mean(sorted),
		Marks:      sorted,
		Discrepant: math.Abs(sorted[1]-sorted[0]) > epsilon,
	}, nil
}

// partialPanel is used by previews only: whatever marks exist are averaged
// and the section is flagged incomplete.
func partialPanel(marks []float64) models.Section {
	sorted := sortedCopy(marks)
	return models.Section{Value: mean(sorted), Marks: sorted, Incomplete: true}
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// mean calculates the arithmetic mean
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
