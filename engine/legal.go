package engine

// nextPhase is the static successor of each phase along the main line of a turn.
var nextPhase = map[Phase]Phase{
	PhaseWaiting:         PhaseSelectHand,
	PhaseSelectHand:      PhaseMatchHand,
	PhaseMatchHand:       PhaseFlipDeck,
	PhaseChooseMatchHand: PhaseFlipDeck,
	PhaseFlipDeck:        PhaseMatchDeck,
	PhaseMatchDeck:       PhaseCheckScore,
	PhaseChooseMatchDeck: PhaseCheckScore,
	PhaseCheckScore:      PhaseSelectHand,
	PhaseGoStop:          PhaseSelectHand,
	PhaseEnd:             PhaseEnd,
}

// transitions lists every legal edge of the state machine.
var transitions = map[Phase][]Phase{
	PhaseWaiting:         {PhaseSelectHand, PhaseEnd},
	PhaseSelectHand:      {PhaseMatchHand},
	PhaseMatchHand:       {PhaseFlipDeck, PhaseChooseMatchHand},
	PhaseChooseMatchHand: {PhaseFlipDeck},
	PhaseFlipDeck:        {PhaseMatchDeck, PhaseCheckScore},
	PhaseMatchDeck:       {PhaseCheckScore, PhaseChooseMatchDeck},
	PhaseChooseMatchDeck: {PhaseCheckScore},
	PhaseCheckScore:      {PhaseSelectHand, PhaseGoStop, PhaseEnd},
	PhaseGoStop:          {PhaseSelectHand, PhaseEnd},
}

// Phases lists every phase in turn order.
func Phases() []Phase {
	return []Phase{
		PhaseWaiting, PhaseSelectHand, PhaseMatchHand, PhaseChooseMatchHand, PhaseFlipDeck,
		PhaseMatchDeck, PhaseChooseMatchDeck, PhaseCheckScore, PhaseGoStop, PhaseEnd,
	}
}

// NextPhase returns the main-line successor of p. Branches (choices, go-stop, end)
// are decided by the transition functions, not by this table.
func NextPhase(p Phase) Phase {
	if n, ok := nextPhase[p]; ok {
		return n
	}
	return PhaseEnd
}

// CanTransition reports whether from -> to is an edge of the state machine.
func CanTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// DecisionContext tells a driver who has to act next.
type DecisionContext uint8

const (
	CtxAutomatic DecisionContext = iota // call Advance
	CtxSelectCard
	CtxChooseMatch
	CtxGoStop
	CtxTerminal
)

// Decision returns the decision context of s.
func (s State) Decision() DecisionContext {
	switch s.Phase {
	case PhaseSelectHand:
		return CtxSelectCard
	case PhaseChooseMatchHand, PhaseChooseMatchDeck:
		return CtxChooseMatch
	case PhaseGoStop:
		return CtxGoStop
	case PhaseEnd:
		return CtxTerminal
	default:
		return CtxAutomatic
	}
}

// IsInputPhase reports whether p waits for a decision of the side to move.
func IsInputPhase(p Phase) bool {
	switch p {
	case PhaseSelectHand, PhaseChooseMatchHand, PhaseChooseMatchDeck, PhaseGoStop:
		return true
	}
	return false
}

// ShakeableCards returns the active hand cards that may be played with a shake.
func (s State) ShakeableCards() []Card {
	hand := s.ActiveHand()
	var out []Card
	for _, c := range hand {
		if CanShake(c, hand, s.Field) {
			out = append(out, c)
		}
	}
	return out
}

// LegalActions lists every decision the side to move may take. It is empty in
// automatic phases and at the end.
func (s State) LegalActions() []Action {
	var out []Action
	switch s.Decision() {
	case CtxSelectCard:
		for _, c := range s.ActiveHand() {
			out = append(out, Action{Kind: ActionSelect, CardID: c.ID})
		}
		for _, c := range s.ShakeableCards() {
			out = append(out, Action{Kind: ActionSelect, CardID: c.ID, Shake: true})
		}
	case CtxChooseMatch:
		for _, c := range s.Choice.MatchingCards {
			out = append(out, Action{Kind: ActionChoose, CardID: c.ID})
		}
	case CtxGoStop:
		out = append(out, Action{Kind: ActionGo}, Action{Kind: ActionStop})
	}
	return out
}
