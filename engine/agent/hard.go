package agent

import (
	"math"
	"slices"

	"github.com/joseph-jy/gostop/engine"
)

// DefaultSamples is the number of Monte Carlo samples per candidate card.
const DefaultSamples = 50

const (
	immediateMatchBonus = 5.0
	hardExpectedLead    = 5.0 // stop when the expected score beats the opponent by this much
	hardSafeLead        = 7
	hardGoWinProb       = 0.6
	hardCautiousLead    = 3
	hardCautiousScore   = 10
)

// HardPlayer samples the unseen pool to estimate what each card captures over the
// hand and deck phases of one turn.
type HardPlayer struct {
	rng     Rand
	Samples int
}

func (p *HardPlayer) samples() int {
	if p.Samples < 1 {
		return DefaultSamples
	}
	return p.Samples
}

func (p *HardPlayer) SelectMove(state engine.State, hand, field, known []engine.Card) engine.Card {
	pool := unseenPool(state, state.Turn, known)
	n := p.samples()

	best, bestValue := hand[0], math.Inf(-1)
	for _, c := range hand {
		total := 0
		for i := 0; i < n; i++ {
			total += p.simulateTurn(c, field, pool)
		}
		v := float64(total) / float64(n)
		if len(engine.FindMatchingCards(c, field)) > 0 {
			v += immediateMatchBonus
		}
		if v > bestValue {
			best, bestValue = c, v
		}
	}
	return best
}

// simulateTurn plays card, flips one random unseen card and returns the captured value.
func (p *HardPlayer) simulateTurn(card engine.Card, field, pool []engine.Card) int {
	captured, rest := playGreedy(card, field)
	if len(pool) > 0 {
		more, _ := playGreedy(pool[p.rng.IntN(len(pool))], rest)
		captured = append(captured, more...)
	}
	return captureValue(captured)
}

// playGreedy resolves card against field, taking the most valuable candidate on a
// multi-way match. Ssatda is ignored.
func playGreedy(card engine.Card, field []engine.Card) (captured, rest []engine.Card) {
	if engine.DetectPpuk(card, field) {
		r := engine.ApplyPpuk(card, field)
		return r.Captured, r.RemainingField
	}
	m := engine.ApplyMatch(card, field)
	if m.RequiresChoice {
		m = engine.ResolveChoice(card, engine.PickBestMatch(m.MatchingCards), field)
	}
	return m.Captured, m.RemainingField
}

// ExpectedScore estimates side's running score once its hand is played out, drawing
// the flips from a shuffled unseen pool. Opponent moves are not simulated.
func (p *HardPlayer) ExpectedScore(state engine.State, side engine.Side, known []engine.Card) float64 {
	pool := unseenPool(state, side, known)
	hand := state.Hand(side)
	n := p.samples()

	total := 0
	for i := 0; i < n; i++ {
		capture := slices.Clone(state.Capture(side))
		field := state.Field
		draws := engine.Shuffle(pool, p.rng)
		for k, c := range hand {
			var got []engine.Card
			got, field = playGreedy(c, field)
			capture = append(capture, got...)
			if k < len(draws) {
				got, field = playGreedy(draws[k], field)
				capture = append(capture, got...)
			}
		}
		total += engine.CalculateScore(capture)
	}
	return float64(total) / float64(n)
}

func (p *HardPlayer) SelectGoStop(score, myScore, opponentScore int, expected float64) Decision {
	if score < goStopFloor {
		return Go
	}
	if expected-float64(opponentScore) >= hardExpectedLead {
		return Stop
	}
	lead := myScore - opponentScore
	if lead >= hardSafeLead {
		return Stop
	}
	if expected/(expected+float64(opponentScore)+1) > hardGoWinProb {
		return Go
	}
	if lead >= hardCautiousLead && score >= hardCautiousScore {
		return Stop
	}
	if p.rng.Float64() < 0.5 {
		return Go
	}
	return Stop
}
