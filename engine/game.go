// Package engine implements the two-player Go-Stop (matgo) rules.
//
// The engine is pure: every transition takes a State value and returns a new one,
// never mutating the slices it was given. Randomness enters only through the Rand
// passed to Shuffle. Callers drive a game by replacing their current State with the
// result of each transition (see actions.go and legal.go).
package engine

import (
	"fmt"
	"slices"
)

// MaxEvents bounds the event log; older entries are dropped first.
const MaxEvents = 20

// State is the authoritative snapshot of one game.
type State struct {
	PlayerHand    []Card
	AIHand        []Card
	Field         []Card
	Deck          []Card
	PlayerCapture []Card
	AICapture     []Card

	Turn    Side
	Starter Side
	Phase   Phase
	GoCount [2]int

	Selected *Card // hand card being played this turn
	Flipped  *Card // deck card flipped this turn

	ShakingMultiplier int
	ShakeDeclared     bool // the selected card was played with a shake
	Pending           *PendingCapture
	Choice            *ChoiceContext

	Rules     RuleSet
	Events    []Event
	EventSeq  int // events ever logged, including those dropped from Events
	GoHistory []GoDeclaration
	PiStolen  [2]int // Pi cards stolen from each side
	BakFlags  [2]bool
	Combos    [2][]Combo // combos already announced per side

	Winner Side // side that called stop, SideNone otherwise
	Forced *ForcedResult
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// NewState builds the initial waiting state from a deal. The player starts.
func NewState(d Deal, rules RuleSet) State {
	return State{
		PlayerHand:        slices.Clone(d.PlayerHand),
		AIHand:            slices.Clone(d.AIHand),
		Field:             slices.Clone(d.Field),
		Deck:              slices.Clone(d.Deck),
		Turn:              SidePlayer,
		Starter:           SidePlayer,
		Phase:             PhaseWaiting,
		ShakingMultiplier: 1,
		Rules:             rules,
		Winner:            SideNone,
	}
}

// NewGame shuffles a fresh deck with rng and returns the initial state.
func NewGame(rng Rand, rules RuleSet) State {
	return NewState(ShuffleAndDeal(rng), rules)
}

// WithStarter returns s with the given side opening the game. Only meaningful while waiting.
func (s State) WithStarter(side Side) State {
	s.Starter = side
	s.Turn = side
	return s
}

// ---------------------------------------------------------------------------
// Per-side accessors
// ---------------------------------------------------------------------------

// Hand returns side's hand.
func (s State) Hand(side Side) []Card {
	if side == SideAI {
		return s.AIHand
	}
	return s.PlayerHand
}

// Capture returns side's capture pile.
func (s State) Capture(side Side) []Card {
	if side == SideAI {
		return s.AICapture
	}
	return s.PlayerCapture
}

func (s State) withHand(side Side, hand []Card) State {
	if side == SideAI {
		s.AIHand = hand
	} else {
		s.PlayerHand = hand
	}
	return s
}

func (s State) withCapture(side Side, capture []Card) State {
	if side == SideAI {
		s.AICapture = capture
	} else {
		s.PlayerCapture = capture
	}
	return s
}

// capture appends cards to side's pile.
func (s State) capture(side Side, cards ...Card) State {
	if len(cards) == 0 {
		return s
	}
	return s.withCapture(side, with(s.Capture(side), cards...))
}

// steal moves Pi already removed from the victim into thief's pile and counts them.
func (s State) steal(thief Side, stolen, victimCapture []Card) State {
	victim := thief.Other()
	s = s.withCapture(victim, victimCapture)
	s = s.capture(thief, stolen...)
	s.PiStolen[victim] += len(stolen)
	return s
}

// Score returns side's running score: the category total of its capture pile.
// Combo points count only in the settlement.
func (s State) Score(side Side) int {
	return CalculateScore(s.Capture(side))
}

// ActiveHand is the hand of the side to move.
func (s State) ActiveHand() []Card { return s.Hand(s.Turn) }

// IsTerminal reports whether the game has ended.
func (s State) IsTerminal() bool { return s.Phase == PhaseEnd }

// ---------------------------------------------------------------------------
// Event log
// ---------------------------------------------------------------------------

func (s State) log(e Event) State {
	events := slices.Concat(s.Events, []Event{e})
	if len(events) > MaxEvents {
		events = events[len(events)-MaxEvents:]
	}
	s.Events = events
	s.EventSeq++
	return s
}

// EventsSince returns the events logged after the log reached seq, oldest first.
// Events already dropped from the bounded log are not returned.
func (s State) EventsSince(seq int) []Event {
	n := min(s.EventSeq-seq, len(s.Events))
	if n <= 0 {
		return nil
	}
	return s.Events[len(s.Events)-n:]
}

// ---------------------------------------------------------------------------
// Conservation
// ---------------------------------------------------------------------------

// InFlight returns the cards that have left a pile but not yet landed this turn.
func (s State) InFlight() []Card {
	var out []Card
	switch s.Phase {
	case PhaseMatchHand:
		if s.Selected != nil {
			out = append(out, *s.Selected)
		}
	case PhaseMatchDeck:
		if s.Flipped != nil {
			out = append(out, *s.Flipped)
		}
	case PhaseChooseMatchHand, PhaseChooseMatchDeck:
		if s.Choice != nil {
			out = append(out, s.Choice.PlayedCard)
		}
	}
	return append(out, s.Pending.Cards()...)
}

// PileCount is the number of cards in the six piles.
func (s State) PileCount() int {
	return len(s.PlayerHand) + len(s.AIHand) + len(s.Field) + len(s.Deck) +
		len(s.PlayerCapture) + len(s.AICapture)
}

// CheckConservation verifies that the piles plus in-flight cards hold all 48 cards exactly once.
func (s State) CheckConservation() error {
	seen := make(map[string]struct{}, DeckSize)
	piles := [][]Card{s.PlayerHand, s.AIHand, s.Field, s.Deck, s.PlayerCapture, s.AICapture, s.InFlight()}
	for _, pile := range piles {
		for _, c := range pile {
			if _, dup := seen[c.ID]; dup {
				return fmt.Errorf("card %s appears twice", c.ID)
			}
			seen[c.ID] = struct{}{}
		}
	}
	if len(seen) != DeckSize {
		return fmt.Errorf("card count = %d, want %d", len(seen), DeckSize)
	}
	return nil
}
