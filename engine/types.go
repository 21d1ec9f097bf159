package engine

// Month is the hwatu suit, 1 (January) through 12 (December).
type Month uint8

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"", "january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

func (m Month) String() string {
	if m < January || m > December {
		return "unknown"
	}
	return monthNames[m]
}

// CardType is the scoring category of a card.
type CardType uint8

const (
	Gwang CardType = iota // bright, 5 cards
	Yeol                  // animal / ten-point, 9 cards
	Tti                   // ribbon, 10 cards
	Pi                    // junk, 24 cards (two count double)
)

func (t CardType) String() string {
	switch t {
	case Gwang:
		return "gwang"
	case Yeol:
		return "yeol"
	case Tti:
		return "tti"
	case Pi:
		return "pi"
	default:
		return "unknown"
	}
}

// Value ranks the categories for tie-break heuristics: Gwang 20, Yeol 10, Tti 5, Pi 1.
func (t CardType) Value() int {
	switch t {
	case Gwang:
		return 20
	case Yeol:
		return 10
	case Tti:
		return 5
	default:
		return 1
	}
}

// Card is an immutable catalog entry. Cards are compared by ID.
type Card struct {
	ID    string
	Month Month
	Type  CardType
	Art   string // image reference for the renderer
}

// IsDoublePi reports whether the card counts as two Pi units.
func (c Card) IsDoublePi() bool {
	return c.ID == NovemberDoublePiID || c.ID == DecemberDoublePiID
}

// PiUnits returns the Pi units the card contributes: 2 for double Pi, 1 for other Pi, 0 otherwise.
func (c Card) PiUnits() int {
	if c.Type != Pi {
		return 0
	}
	if c.IsDoublePi() {
		return 2
	}
	return 1
}

// Value returns the heuristic value of the card (category value, doubled for double Pi).
func (c Card) Value() int {
	if c.IsDoublePi() {
		return c.Type.Value() * 2
	}
	return c.Type.Value()
}

func (c Card) String() string { return c.ID }

// Side identifies one of the two seats.
type Side uint8

const (
	SidePlayer Side = iota
	SideAI
	SideNone // no side, e.g. no declared winner
)

// Other returns the opposing side. SideNone maps to itself.
func (s Side) Other() Side {
	switch s {
	case SidePlayer:
		return SideAI
	case SideAI:
		return SidePlayer
	default:
		return SideNone
	}
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideAI:
		return "ai"
	default:
		return "none"
	}
}

// Phase is the position of the turn state machine.
type Phase string

const (
	PhaseWaiting         Phase = "waiting"
	PhaseSelectHand      Phase = "select-hand"
	PhaseMatchHand       Phase = "match-hand"
	PhaseChooseMatchHand Phase = "choose-match-hand"
	PhaseFlipDeck        Phase = "flip-deck"
	PhaseMatchDeck       Phase = "match-deck"
	PhaseChooseMatchDeck Phase = "choose-match-deck"
	PhaseCheckScore      Phase = "check-score"
	PhaseGoStop          Phase = "go-stop"
	PhaseEnd             Phase = "end"
)

// PendingKind distinguishes the deferred hand captures.
type PendingKind uint8

const (
	PendingPair PendingKind = iota // hand card + one field card
	PendingJjok                    // shaken hand card + the field pair
)

// PendingCapture is a hand-phase capture held back until the flipped deck
// card proves it is not a ssatda. A nil *PendingCapture means nothing is pending.
type PendingCapture struct {
	Kind       PendingKind
	HandCard   Card
	FieldCards []Card
}

// Cards returns every card held by the pending capture.
func (p *PendingCapture) Cards() []Card {
	if p == nil {
		return nil
	}
	out := make([]Card, 0, len(p.FieldCards)+1)
	out = append(out, p.HandCard)
	return append(out, p.FieldCards...)
}

// ChoiceSource tells whether a disambiguation came from the hand or the deck card.
type ChoiceSource uint8

const (
	ChoiceFromHand ChoiceSource = iota
	ChoiceFromDeck
)

// ChoiceContext describes a pending 2-way (or more) match the actor must resolve.
type ChoiceContext struct {
	PlayedCard    Card
	MatchingCards []Card
	Source        ChoiceSource
}

// EventKind names an entry of the game event log.
type EventKind string

const (
	EventShake      EventKind = "shake"
	EventShakeFail  EventKind = "shake_fail"
	EventPpuk       EventKind = "ppuk"
	EventJjok       EventKind = "jjok"
	EventBomb       EventKind = "bomb"
	EventChongtong  EventKind = "chongtong"
	EventSsatda     EventKind = "ssatda"
	EventJjoknassda EventKind = "jjoknassda"
	EventCombo      EventKind = "combo"
	EventGo         EventKind = "go"
	EventStop       EventKind = "stop"
	EventExhausted  EventKind = "exhausted"
	EventQuadStack  EventKind = "field_quad_stack"
)

// Event is a single game log entry.
type Event struct {
	Kind   EventKind
	Side   Side
	Month  Month  // zero when not month-specific
	Detail string // e.g. combo name or go count
}

// GoDeclaration records one Go call.
type GoDeclaration struct {
	Side  Side
	Count int // the side's go count after the call
	Score int // running score at the time of the call
}

// ForcedResult ends a game without regular settlement (field quad stack at the deal).
type ForcedResult struct {
	Winner Side
	Score  int
	Reason string
}
