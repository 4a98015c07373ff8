// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/danielhkuo/gimnis/models"
)

const rulesEnvPrefix = "GIMNIS_RULES_"

// Rules holds the tunable numbers of the aggregation. Panel sizes are fixed
// by the algorithm and are not part of it.
type Rules struct {
	BaseDivisor   float64 `koanf:"base_divisor" json:"base_divisor"`
	MixedDivisor  float64 `koanf:"mixed_divisor" json:"mixed_divisor"`
	FemaleDivisor float64 `koanf:"female_divisor" json:"female_divisor"`
	Tiers         []Tier  `koanf:"tiers" json:"tiers"`
	BaseTolerance float64 `koanf:"base_tolerance" json:"base_tolerance"`
}

func DefaultRules() Rules {
	return Rules{
		BaseDivisor:   BaseDivisor,
		MixedDivisor:  MixedDivisor,
		FemaleDivisor: FemaleDivisor,
		Tiers:         DefaultTiers(),
		BaseTolerance: BaseTolerance,
	}
}

// LoadRules layers defaults, an optional YAML file and GIMNIS_RULES_* env
// vars, in that order of precedence (low -> high).
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	rules.Tiers = nil

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Rules{}, fmt.Errorf("load rules file: %w", err)
		}
	}

	envProvider := env.Provider(rulesEnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, rulesEnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Rules{}, fmt.Errorf("load rules env: %w", err)
	}

	if err := k.UnmarshalWithConf("", &rules, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	if len(rules.Tiers) == 0 {
		rules.Tiers = DefaultTiers()
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate checks the rules and sorts tiers by descending floor.
func (r *Rules) Validate() error {
	if r.BaseDivisor <= 0 || r.MixedDivisor <= 0 || r.FemaleDivisor <= 0 {
		return errors.New("difficulty divisors must be positive")
	}
	if r.BaseTolerance < 0 {
		return errors.New("base tolerance must not be negative")
	}
	for _, t := range r.Tiers {
		if t.Tolerance < 0 {
			return fmt.Errorf("tier %.2f: tolerance must not be negative", t.Floor)
		}
	}
	sort.SliceStable(r.Tiers, func(i, j int) bool {
		return r.Tiers[i].Floor > r.Tiers[j].Floor
	})
	return nil
}

// RequiredMarks is the number of marks each score type needs before a
// competitor can be validated.
var RequiredMarks = map[models.ScoreType]int{
	models.ScoreExecution:              FourJudgePanelSize,
	models.ScoreArtistry:               FourJudgePanelSize,
	models.ScoreDifficulty:             TwoJudgePanelSize,
	models.ScoreDifficultyPenalization: TwoJudgePanelSize,
	models.ScoreLinePenalization:       1,
	models.ScorePrincipalPenalization:  1,
}
