package agent

import (
	"slices"

	"github.com/joseph-jy/gostop/engine"
)

const (
	mediumSafeLead   = 10  // stop at once with this lead
	mediumStopChance = 0.7 // otherwise stop this often
)

// MediumPlayer prefers capturing a Gwang, then completing a combo, then plays at random.
type MediumPlayer struct {
	rng Rand
}

func (p *MediumPlayer) SelectMove(state engine.State, hand, field, _ []engine.Card) engine.Card {
	for _, c := range hand {
		if c.Type == engine.Gwang && len(engine.FindMatchingCards(c, field)) > 0 {
			return c
		}
	}

	capture := state.Capture(state.Turn)
	have := len(engine.GetCombos(capture))
	for _, c := range hand {
		matches := engine.FindMatchingCards(c, field)
		if len(matches) == 0 {
			continue
		}
		after := slices.Concat(capture, []engine.Card{c, engine.PickBestMatch(matches)})
		if len(engine.GetCombos(after)) > have {
			return c
		}
	}
	return hand[p.rng.IntN(len(hand))]
}

func (p *MediumPlayer) SelectGoStop(score, myScore, opponentScore int, _ float64) Decision {
	if myScore-opponentScore >= mediumSafeLead {
		return Stop
	}
	if score < goStopFloor {
		return Go
	}
	if p.rng.Float64() < mediumStopChance {
		return Stop
	}
	return Go
}
