// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/danielhkuo/gimnis/models"
)

// Input is everything the aggregator needs for one competitor.
type Input struct {
	Category string
	Sexes    []string
	Marks    map[models.ScoreType][]float64
}

// Check returns ErrIncompleteScores, naming every score type whose mark
// count differs from RequiredMarks.
func Check(marks map[models.ScoreType][]float64) error {
	var problems []string
	for _, t := range models.AllScoreTypes {
		want := RequiredMarks[t]
		if got := len(marks[t]); got != want {
			problems = append(problems, fmt.Sprintf("%s has %d of %d marks", t, got, want))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", models.ErrIncompleteScores, strings.Join(problems, "; "))
	}
	return nil
}

// Aggregate computes the section breakdown and final total. It refuses to
// run on an incomplete panel: no mark is ever substituted.
func (r Rules) Aggregate(in Input) (models.Breakdown, error) {
	if err := Check(in.Marks); err != nil {
		return models.Breakdown{}, err
	}

	var b models.Breakdown
	var err error

	if b.Execution, err = fourJudgePanel(in.Marks[models.ScoreExecution], r.Tiers, r.BaseTolerance); err != nil {
		return models.Breakdown{}, err
	}
	if b.Artistry, err = fourJudgePanel(in.Marks[models.ScoreArtistry], r.Tiers, r.BaseTolerance); err != nil {
		return models.Breakdown{}, err
	}
	if b.Difficulty, err = TwoJudgePanel(in.Marks[models.ScoreDifficulty]); err != nil {
		return models.Breakdown{}, err
	}
	if b.DifficultyPenalization, err = TwoJudgePanel(in.Marks[models.ScoreDifficultyPenalization]); err != nil {
		return models.Breakdown{}, err
	}
	b.LinePenalization = in.Marks[models.ScoreLinePenalization][0]
	b.PrincipalPenalization = in.Marks[models.ScorePrincipalPenalization][0]
	b.Divisor = r.Divisor(in.Category, in.Sexes)
	b.Total = total(b)

	return b, nil
}

// Preview computes a provisional breakdown from whatever marks exist.
// Incomplete panels average their present marks; missing single-judge
// penalties count as 0. The result is never used for validation.
func (r Rules) Preview(in Input) models.Breakdown {
	b := models.Breakdown{Preview: true}

	b.Execution = r.previewFour(in.Marks[models.ScoreExecution])
	b.Artistry = r.previewFour(in.Marks[models.ScoreArtistry])
	b.Difficulty = previewTwo(in.Marks[models.ScoreDifficulty])
	b.DifficultyPenalization = previewTwo(in.Marks[models.ScoreDifficultyPenalization])
	b.LinePenalization = mean(in.Marks[models.ScoreLinePenalization])
	b.PrincipalPenalization = mean(in.Marks[models.ScorePrincipalPenalization])
	b.Divisor = r.Divisor(in.Category, in.Sexes)
	b.Total = total(b)

	return b
}

func (r Rules) previewFour(marks []float64) models.Section {
	if len(marks) == FourJudgePanelSize {
		s, _ := fourJudgePanel(marks, r.Tiers, r.BaseTolerance)
		return s
	}
	return partialPanel(marks)
}

func previewTwo(marks []float64) models.Section {
	if len(marks) == TwoJudgePanelSize {
		s, _ := TwoJudgePanel(marks)
		return s
	}
	return partialPanel(marks)
}

// total = artistry + execution + difficulty/divisor - penalties,
// floored at 0 and rounded to 3 decimals
func total(b models.Breakdown) float64 {
	penalties := b.DifficultyPenalization.Value + b.LinePenalization + b.PrincipalPenalization
	raw := b.Artistry.Value + b.Execution.Value + b.Difficulty.Value/b.Divisor - penalties
	return Round3(math.Max(raw, 0))
}
