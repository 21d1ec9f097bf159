// Package agent implements computer opponents for the Go-Stop engine.
//
// A Player picks a hand card and answers the go/stop question. The engine never
// calls a Player; the game driver does, and it must accept any conforming
// implementation, deterministic or not.
package agent

import (
	"fmt"

	"github.com/joseph-jy/gostop/engine"
)

// Decision is the answer to the go/stop question.
type Decision uint8

const (
	Go Decision = iota
	Stop
)

func (d Decision) String() string {
	if d == Stop {
		return "stop"
	}
	return "go"
}

// Difficulty selects a strategy.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Rand is the randomness a strategy draws from. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Player is a computer opponent.
type Player interface {
	// SelectMove returns the card to play. It must be one of hand, which is never empty.
	SelectMove(state engine.State, hand, field, known []engine.Card) engine.Card
	// SelectGoStop decides whether to continue. score is the running score that
	// opened the decision; expected is the strategy-independent estimate supplied
	// by the driver (see Estimator).
	SelectGoStop(score, myScore, opponentScore int, expected float64) Decision
}

// Estimator is implemented by players that can estimate their final score. Drivers
// use it to fill the expected argument of SelectGoStop.
type Estimator interface {
	ExpectedScore(state engine.State, side engine.Side, known []engine.Card) float64
}

// goStopFloor is the score below which every strategy keeps going.
const goStopFloor = 7

// NewPlayer creates the strategy for the given difficulty.
func NewPlayer(d Difficulty, rng Rand) (Player, error) {
	switch d {
	case Easy:
		return &EasyPlayer{rng: rng}, nil
	case Medium:
		return &MediumPlayer{rng: rng}, nil
	case Hard:
		return &HardPlayer{rng: rng, Samples: DefaultSamples}, nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %q", d)
	}
}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty: %q", s)
	}
}

// unseenPool returns every card side has not seen: the catalog minus the cards
// visible to side and the known ones.
func unseenPool(state engine.State, side engine.Side, known []engine.Card) []engine.Card {
	seen := make(map[string]struct{})
	for _, c := range state.Visible(side) {
		seen[c.ID] = struct{}{}
	}
	for _, c := range known {
		seen[c.ID] = struct{}{}
	}
	var pool []engine.Card
	for _, c := range engine.Catalog() {
		if _, ok := seen[c.ID]; !ok {
			pool = append(pool, c)
		}
	}
	return pool
}

// captureValue is the heuristic worth of a set of captured cards.
func captureValue(cards []engine.Card) int {
	v := 0
	for _, c := range cards {
		v += c.Value()
	}
	return v
}
