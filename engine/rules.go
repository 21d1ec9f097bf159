package engine

import (
	"errors"
	"fmt"
)

// RuleSet holds the configurable thresholds of a game.
type RuleSet struct {
	Name                   string `yaml:"name"`
	GoStopThreshold        int    `yaml:"go_stop_threshold"`        // running score that opens the go/stop decision
	PiBakMaxPiCount        int    `yaml:"pibak_max_pi_count"`       // loser Pi units at or below this trigger pibak
	GoBakMinGoCount        int    `yaml:"gobak_min_go_count"`       // loser go calls at or above this trigger gobak
	GoMultiplierFromCount  int    `yaml:"go_multiplier_from_count"` // winner go calls at or above this double the score
	EnableMeongteongguri   bool   `yaml:"enable_meongteongguri"`
	DokbakStealThreshold   int    `yaml:"dokbak_steal_threshold"`     // Pi stolen from the loser at or above this trigger dokbak
	FieldQuadStackWinScore int    `yaml:"field_quad_stack_win_score"` // 0 disables the dealt four-of-a-kind win
}

// StandardRuleSet returns the standard matgo rules.
func StandardRuleSet() RuleSet {
	return RuleSet{
		Name:                   "standard-matgo",
		GoStopThreshold:        7,
		PiBakMaxPiCount:        5,
		GoBakMinGoCount:        3,
		GoMultiplierFromCount:  3,
		EnableMeongteongguri:   true,
		DokbakStealThreshold:   3,
		FieldQuadStackWinScore: 10,
	}
}

// ErrInvalidRuleSet is returned by Validate.
var ErrInvalidRuleSet = errors.New("invalid ruleset")

// Validate checks that every threshold is usable.
func (r RuleSet) Validate() error {
	switch {
	case r.GoStopThreshold < 1:
		return fmt.Errorf("%w: go_stop_threshold %d < 1", ErrInvalidRuleSet, r.GoStopThreshold)
	case r.PiBakMaxPiCount < 0:
		return fmt.Errorf("%w: pibak_max_pi_count %d < 0", ErrInvalidRuleSet, r.PiBakMaxPiCount)
	case r.GoBakMinGoCount < 1:
		return fmt.Errorf("%w: gobak_min_go_count %d < 1", ErrInvalidRuleSet, r.GoBakMinGoCount)
	case r.GoMultiplierFromCount < 1:
		return fmt.Errorf("%w: go_multiplier_from_count %d < 1", ErrInvalidRuleSet, r.GoMultiplierFromCount)
	case r.DokbakStealThreshold < 1:
		return fmt.Errorf("%w: dokbak_steal_threshold %d < 1", ErrInvalidRuleSet, r.DokbakStealThreshold)
	case r.FieldQuadStackWinScore < 0:
		return fmt.Errorf("%w: field_quad_stack_win_score %d < 0", ErrInvalidRuleSet, r.FieldQuadStackWinScore)
	}
	return nil
}
