package agent

import "github.com/joseph-jy/gostop/engine"

// easyGoChance is the probability an EasyPlayer keeps going.
const easyGoChance = 0.3

// EasyPlayer plays a uniformly random card and mostly stops.
type EasyPlayer struct {
	rng Rand
}

func (p *EasyPlayer) SelectMove(_ engine.State, hand, _, _ []engine.Card) engine.Card {
	return hand[p.rng.IntN(len(hand))]
}

func (p *EasyPlayer) SelectGoStop(_, _, _ int, _ float64) Decision {
	if p.rng.Float64() < easyGoChance {
		return Go
	}
	return Stop
}
