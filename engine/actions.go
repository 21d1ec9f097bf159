package engine

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	ErrWrongPhase    = errors.New("action not allowed in this phase")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrNotACandidate = errors.New("card is not a matching candidate")
	ErrCannotShake   = errors.New("shake not allowed for this card")
	ErrInputRequired = errors.New("phase waits for a decision")
	ErrGameOver      = errors.New("game is already over")
	ErrUnknownAction = errors.New("unknown action")
)

func wrongPhase(op string, p Phase) error {
	return fmt.Errorf("%s in phase %s: %w", op, p, ErrWrongPhase)
}

// ActionKind names a decision taken by the side to move.
type ActionKind uint8

const (
	ActionSelect ActionKind = iota // play CardID from hand, optionally shaking
	ActionChoose                   // pair the played card with field card CardID
	ActionGo
	ActionStop
)

func (k ActionKind) String() string {
	switch k {
	case ActionSelect:
		return "select"
	case ActionChoose:
		return "choose"
	case ActionGo:
		return "go"
	case ActionStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Action is one decision. Automatic phases never take an Action; see Advance.
type Action struct {
	Kind   ActionKind
	CardID string
	Shake  bool
}

// Apply dispatches a decision to its transition.
func Apply(s State, a Action) (State, error) {
	if s.IsTerminal() {
		return s, ErrGameOver
	}
	switch a.Kind {
	case ActionSelect:
		return SelectCard(s, a.CardID, a.Shake)
	case ActionChoose:
		return ChooseMatch(s, a.CardID)
	case ActionGo:
		return DeclareGo(s)
	case ActionStop:
		return DeclareStop(s)
	default:
		return s, fmt.Errorf("action kind %d: %w", a.Kind, ErrUnknownAction)
	}
}

// Advance runs the automatic transition of the current phase. Input phases return
// ErrInputRequired and the end phase returns ErrGameOver; s is returned unchanged.
func Advance(s State) (State, error) {
	switch s.Phase {
	case PhaseWaiting:
		return Start(s)
	case PhaseMatchHand:
		return MatchHand(s)
	case PhaseFlipDeck:
		return FlipDeck(s)
	case PhaseMatchDeck:
		return MatchDeck(s)
	case PhaseCheckScore:
		return CheckScore(s)
	case PhaseEnd:
		return s, ErrGameOver
	default:
		return s, fmt.Errorf("phase %s: %w", s.Phase, ErrInputRequired)
	}
}

// ---------------------------------------------------------------------------
// Deal
// ---------------------------------------------------------------------------

// Start resolves the deal-time specials and opens the first turn.
//
// Each side, player first, plays its chongtong months then its bomb months. A field
// holding all four cards of a month ends the game at once in the starter's favour.
func Start(s State) (State, error) {
	if s.Phase != PhaseWaiting {
		return s, wrongPhase("start", s.Phase)
	}
	s = s.dealSpecials(SidePlayer)
	s = s.dealSpecials(SideAI)

	if m, ok := DetectFieldQuadStack(s.Field); ok && s.Rules.FieldQuadStackWinScore > 0 {
		s.Forced = &ForcedResult{
			Winner: s.Starter,
			Score:  s.Rules.FieldQuadStackWinScore,
			Reason: "field quad stack",
		}
		s = s.log(Event{Kind: EventQuadStack, Side: s.Starter, Month: m})
		s.Phase = PhaseEnd
		return s, nil
	}

	if len(s.PlayerHand) == 0 && len(s.AIHand) == 0 {
		s = s.log(Event{Kind: EventExhausted, Side: SideNone})
		s.Phase = PhaseEnd
		return s, nil
	}
	s.Turn = s.Starter
	if len(s.Hand(s.Turn)) == 0 {
		s.Turn = s.Turn.Other()
	}
	s.Phase = PhaseSelectHand
	return s, nil
}

func (s State) dealSpecials(side Side) State {
	for _, m := range DetectChongtong(s.Hand(side)) {
		r := ApplyChongtong(m, s.Hand(side), s.Capture(side.Other()))
		s = s.withHand(side, r.RemainingHand).capture(side, r.Captured...)
		s = s.steal(side, r.Stolen, r.OpponentCapture)
		s = s.log(Event{Kind: EventChongtong, Side: side, Month: m})
	}
	for _, m := range DetectBomb(s.Hand(side)) {
		r := ApplyBomb(m, s.Hand(side), s.Field, s.Capture(side.Other()))
		s.Field = r.RemainingField
		s = s.withHand(side, r.RemainingHand).capture(side, r.Captured...)
		s = s.steal(side, r.Stolen, r.OpponentCapture)
		s = s.log(Event{Kind: EventBomb, Side: side, Month: m})
	}
	return s
}

// ---------------------------------------------------------------------------
// Hand phase
// ---------------------------------------------------------------------------

// SelectCard takes the card with the given id out of the active hand. With shake set
// the card must satisfy CanShake; a shaken card played into a field pair becomes a
// jjok attempt.
func SelectCard(s State, id string, shake bool) (State, error) {
	if s.Phase != PhaseSelectHand {
		return s, wrongPhase("select", s.Phase)
	}
	hand := s.ActiveHand()
	i := indexOf(hand, id)
	if i < 0 {
		return s, fmt.Errorf("select %s: %w", id, ErrCardNotInHand)
	}
	card := hand[i]
	if shake && !CanShake(card, hand, s.Field) {
		return s, fmt.Errorf("shake %s: %w", id, ErrCannotShake)
	}
	s = s.withHand(s.Turn, without(hand, card))
	s.Selected = &card
	s.ShakeDeclared = shake
	if shake {
		s = s.log(Event{Kind: EventShake, Side: s.Turn, Month: card.Month})
	}
	s.Phase = PhaseMatchHand
	return s, nil
}

// MatchHand resolves the selected card against the field.
//
// Ppuk is checked first and captures at once. A single match, or a shaken play into
// a field pair, is held as a pending capture until the deck card is seen. Two or more
// matches without a shake stop in choose-match-hand.
func MatchHand(s State) (State, error) {
	if s.Phase != PhaseMatchHand {
		return s, wrongPhase("match hand", s.Phase)
	}
	card := *s.Selected

	switch {
	case DetectPpuk(card, s.Field):
		r := ApplyPpuk(card, s.Field)
		s.Field = r.RemainingField
		s = s.capture(s.Turn, r.Captured...)
		s = s.log(Event{Kind: EventPpuk, Side: s.Turn, Month: card.Month})
		s.Phase = PhaseFlipDeck

	case s.ShakeDeclared && DetectJjok(card, s.Field):
		pair := FindMatchingCards(card, s.Field)
		s.Field = without(s.Field, pair...)
		s.Pending = &PendingCapture{Kind: PendingJjok, HandCard: card, FieldCards: pair}
		s.Phase = PhaseFlipDeck

	default:
		m := ApplyMatch(card, s.Field)
		switch {
		case m.RequiresChoice:
			s.Choice = &ChoiceContext{PlayedCard: card, MatchingCards: m.MatchingCards, Source: ChoiceFromHand}
			s.Phase = PhaseChooseMatchHand
		case len(m.Captured) == 2:
			s.Field = m.RemainingField
			s.Pending = &PendingCapture{Kind: PendingPair, HandCard: card, FieldCards: m.Captured[1:]}
			s.Phase = PhaseFlipDeck
		default:
			s.Field = m.RemainingField
			s.Phase = PhaseFlipDeck
		}
	}
	return s, nil
}

// ChooseMatch pairs the played card with the field card fieldID, which must be one of
// the candidates. A hand choice becomes a pending capture; a deck choice captures.
func ChooseMatch(s State, fieldID string) (State, error) {
	if s.Phase != PhaseChooseMatchHand && s.Phase != PhaseChooseMatchDeck {
		return s, wrongPhase("choose", s.Phase)
	}
	c := s.Choice
	i := indexOf(c.MatchingCards, fieldID)
	if i < 0 {
		return s, fmt.Errorf("choose %s: %w", fieldID, ErrNotACandidate)
	}
	chosen := c.MatchingCards[i]
	r := ResolveChoice(c.PlayedCard, chosen, s.Field)
	s.Field = r.RemainingField
	s.Choice = nil

	if c.Source == ChoiceFromHand {
		s.Pending = &PendingCapture{Kind: PendingPair, HandCard: c.PlayedCard, FieldCards: []Card{chosen}}
		s.Phase = PhaseFlipDeck
		return s, nil
	}
	s = s.capture(s.Turn, r.Captured...)
	s.Phase = PhaseCheckScore
	return s, nil
}

// ---------------------------------------------------------------------------
// Deck phase
// ---------------------------------------------------------------------------

// FlipDeck turns over the top of the draw pile. With an empty pile the pending
// capture is finalized and the turn goes straight to check-score.
func FlipDeck(s State) (State, error) {
	if s.Phase != PhaseFlipDeck {
		return s, wrongPhase("flip", s.Phase)
	}
	if len(s.Deck) == 0 {
		s = s.resolvePending()
		s.Phase = PhaseCheckScore
		return s, nil
	}
	top := s.Deck[0]
	s.Deck = slices.Clone(s.Deck[1:])
	s.Flipped = &top
	s.Phase = PhaseMatchDeck
	return s, nil
}

// MatchDeck resolves the flipped card.
//
// A pending capture of the same month is a ssatda: every card involved stays on the
// field, and a pending jjok also fails its shake. Otherwise the pending capture is
// finalized and the deck card is matched like a hand card, except that a multi-way
// match stops in choose-match-deck and a single match captures at once.
func MatchDeck(s State) (State, error) {
	if s.Phase != PhaseMatchDeck {
		return s, wrongPhase("match deck", s.Phase)
	}
	flipped := *s.Flipped

	if p := s.Pending; p != nil && DetectSsatda(p.HandCard, flipped) {
		s.Pending = nil
		if p.Kind == PendingPair {
			s.Field = ApplySsatda(p.HandCard, p.FieldCards[0], flipped, s.Field)
		} else {
			s.Field = with(s.Field, with(p.Cards(), flipped)...)
			s.ShakingMultiplier = ApplyShake(false, s.ShakingMultiplier)
			s = s.log(Event{Kind: EventShakeFail, Side: s.Turn, Month: flipped.Month})
		}
		s = s.log(Event{Kind: EventSsatda, Side: s.Turn, Month: flipped.Month})
		s.Phase = PhaseCheckScore
		return s, nil
	}

	placed := s.Pending == nil && s.Selected != nil && containsID(s.Field, s.Selected.ID)
	s = s.resolvePending()
	if placed && DetectJjoknassda(*s.Selected, flipped) {
		s = s.log(Event{Kind: EventJjoknassda, Side: s.Turn, Month: flipped.Month})
	}

	if DetectPpuk(flipped, s.Field) {
		r := ApplyPpuk(flipped, s.Field)
		s.Field = r.RemainingField
		s = s.capture(s.Turn, r.Captured...)
		s = s.log(Event{Kind: EventPpuk, Side: s.Turn, Month: flipped.Month})
		s.Phase = PhaseCheckScore
		return s, nil
	}

	m := ApplyMatch(flipped, s.Field)
	if m.RequiresChoice {
		s.Choice = &ChoiceContext{PlayedCard: flipped, MatchingCards: m.MatchingCards, Source: ChoiceFromDeck}
		s.Phase = PhaseChooseMatchDeck
		return s, nil
	}
	s.Field = m.RemainingField
	s = s.capture(s.Turn, m.Captured...)
	s.Phase = PhaseCheckScore
	return s, nil
}

// resolvePending moves a pending capture into the active pile. A jjok also steals one
// opponent Pi and counts as a successful shake.
func (s State) resolvePending() State {
	p := s.Pending
	if p == nil {
		return s
	}
	s.Pending = nil
	switch p.Kind {
	case PendingJjok:
		r := ApplyJjok(p.HandCard, p.FieldCards, s.Capture(s.Turn.Other()))
		s = s.capture(s.Turn, r.Captured...)
		s = s.steal(s.Turn, r.Stolen, r.OpponentCapture)
		s.ShakingMultiplier = ApplyShake(true, s.ShakingMultiplier)
		s = s.log(Event{Kind: EventJjok, Side: s.Turn, Month: p.HandCard.Month})
	default:
		s = s.capture(s.Turn, p.Cards()...)
	}
	return s
}

// ---------------------------------------------------------------------------
// Scoring gate and turn change
// ---------------------------------------------------------------------------

// CheckScore ends the game when both hands are empty, opens go-stop when the active
// side reached the threshold and otherwise passes the turn.
func CheckScore(s State) (State, error) {
	if s.Phase != PhaseCheckScore {
		return s, wrongPhase("check score", s.Phase)
	}
	s = s.announceCombos(s.Turn)

	if len(s.PlayerHand) == 0 && len(s.AIHand) == 0 {
		s = s.log(Event{Kind: EventExhausted, Side: SideNone})
		s = s.clearTurn()
		s.Phase = PhaseEnd
		return s, nil
	}
	if s.Score(s.Turn) >= s.Rules.GoStopThreshold {
		s.Phase = PhaseGoStop
		return s, nil
	}
	return SwitchTurn(s), nil
}

func (s State) announceCombos(side Side) State {
	current := GetCombos(s.Capture(side))
	for _, c := range current {
		if !slices.Contains(s.Combos[side], c) {
			s = s.log(Event{Kind: EventCombo, Side: side, Detail: string(c)})
		}
	}
	s.Combos[side] = current
	return s
}

func (s State) clearTurn() State {
	s.Selected = nil
	s.Flipped = nil
	s.Pending = nil
	s.Choice = nil
	s.ShakeDeclared = false
	return s
}

// SwitchTurn clears the per-turn fields and hands the move to the other side, or
// keeps it with the active side when the other hand is empty.
func SwitchTurn(s State) State {
	next := s.Turn.Other()
	if len(s.Hand(next)) == 0 && len(s.Hand(s.Turn)) > 0 {
		next = s.Turn
	}
	s = s.clearTurn()
	s.Turn = next
	s.Phase = PhaseSelectHand
	return s
}

// DeclareGo continues the game: the active side's go count rises and the turn passes.
func DeclareGo(s State) (State, error) {
	if s.Phase != PhaseGoStop {
		return s, wrongPhase("go", s.Phase)
	}
	side := s.Turn
	s.GoCount[side]++
	n := s.GoCount[side]
	if n >= s.Rules.GoBakMinGoCount {
		s.BakFlags[side] = true
	}
	s.GoHistory = slices.Concat(s.GoHistory, []GoDeclaration{{Side: side, Count: n, Score: s.Score(side)}})
	s = s.log(Event{Kind: EventGo, Side: side, Detail: strconv.Itoa(n)})
	return SwitchTurn(s), nil
}

// DeclareStop ends the game with the active side as declared winner.
func DeclareStop(s State) (State, error) {
	if s.Phase != PhaseGoStop {
		return s, wrongPhase("stop", s.Phase)
	}
	s.Winner = s.Turn
	s = s.log(Event{Kind: EventStop, Side: s.Turn})
	s = s.clearTurn()
	s.Phase = PhaseEnd
	return s, nil
}
