// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	"github.com/joseph-jy/gostop/engine"
)

// SeatView is one side of the table as seen by an observer.
type SeatView struct {
	Side     string     `json:"side"`
	HandSize int        `json:"handSize"`
	Hand     []CardView `json:"hand,omitempty"` // only for the observer's own seat
	Capture  []CardView `json:"capture"`
	Score    int        `json:"score"`
	GoCount  int        `json:"goCount"`
	PiStolen int        `json:"piStolen"` // Pi lost to the other side
}

// View is the game state from one side's perspective. The opponent's hand and
// the deck order are never included.
type View struct {
	GameID            uuid.UUID   `json:"gameId"`
	Phase             string      `json:"phase"`
	Turn              string      `json:"turn"`
	YourTurn          bool        `json:"yourTurn"`
	Field             []CardView  `json:"field"`
	DeckSize          int         `json:"deckSize"`
	Self              SeatView    `json:"self"`
	Opponent          SeatView    `json:"opponent"`
	ShakingMultiplier int         `json:"shakingMultiplier"`
	Choices           []CardView  `json:"choices,omitempty"`   // field candidates when a match must be chosen
	Shakeable         []CardView  `json:"shakeable,omitempty"` // hand cards that may be played with a shake
	GameOver          bool        `json:"gameOver"`
	Result            *ResultView `json:"result,omitempty"`
}

// View returns the state as seen by side. Any side other than the player or the AI
// gets an observer view: Self is the player seat, Opponent the AI seat, and no hand
// is shown.
func (s *Session) View(side engine.Side) View {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.view(side)
}

// view builds a View. Assumes lock is held by caller.
func (s *Session) view(side engine.Side) View {
	st := s.State
	observer := side != engine.SidePlayer && side != engine.SideAI
	self := side
	if observer {
		self = engine.SidePlayer
	}
	v := View{
		GameID:            s.ID,
		Phase:             string(st.Phase),
		Turn:              st.Turn.String(),
		YourTurn:          !observer && st.Turn == side && !st.IsTerminal(),
		Field:             newCardViews(st.Field),
		DeckSize:          len(st.Deck),
		Self:              seatView(st, self),
		Opponent:          seatView(st, self.Other()),
		ShakingMultiplier: st.ShakingMultiplier,
		GameOver:          st.IsTerminal(),
	}
	if !observer {
		v.Self.Hand = newCardViews(st.Hand(side))
	}

	if v.YourTurn {
		switch st.Decision() {
		case engine.CtxChooseMatch:
			v.Choices = newCardViews(st.Choice.MatchingCards)
		case engine.CtxSelectCard:
			if shake := st.ShakeableCards(); len(shake) > 0 {
				v.Shakeable = newCardViews(shake)
			}
		}
	}
	if s.result != nil {
		v.Result = newResultView(*s.result)
	}
	return v
}

func seatView(st engine.State, side engine.Side) SeatView {
	return SeatView{
		Side:     side.String(),
		HandSize: len(st.Hand(side)),
		Capture:  newCardViews(st.Capture(side)),
		Score:    st.Score(side),
		GoCount:  st.GoCount[side],
		PiStolen: st.PiStolen[side],
	}
}
