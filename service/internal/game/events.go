// internal/game/events.go
package game

import (
	"github.com/google/uuid"
	"github.com/joseph-jy/gostop/engine"
)

// GameEventType represents the type of a game event handed to BroadcastFn.
type GameEventType string

const (
	EventGameStart     GameEventType = "game_start"
	EventTurn          GameEventType = "game_turn"       // a human decision is awaited; State carries that side's view
	EventCardPlayed    GameEventType = "card_played"     // a hand card was played
	EventCardFlipped   GameEventType = "card_flipped"    // the top deck card was flipped
	EventShakeDeclared GameEventType = "shake_declared"  // Cards holds the revealed hand cards
	EventGoStopReached GameEventType = "go_stop_reached" // the side to move reached the threshold
	EventRule          GameEventType = "rule_event"      // an engine log entry; Special holds its kind
	EventGameEnd       GameEventType = "game_end"        // Result holds the settlement
)

// CardView is the public description of a card.
type CardView struct {
	ID    string `json:"id"`
	Month int    `json:"month"`
	Type  string `json:"type"`
	Art   string `json:"art"`
}

func newCardView(c engine.Card) *CardView {
	return &CardView{ID: c.ID, Month: int(c.Month), Type: c.Type.String(), Art: c.Art}
}

func newCardViews(cards []engine.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = *newCardView(c)
	}
	return out
}

// ResultView is the settlement of a finished game.
type ResultView struct {
	Winner      string   `json:"winner"`
	Nagari      bool     `json:"nagari"`
	Reason      string   `json:"reason"`
	PlayerTotal int      `json:"playerTotal"`
	AITotal     int      `json:"aiTotal"`
	Base        int      `json:"base"`
	Multiplier  int      `json:"multiplier"`
	Bonuses     []string `json:"bonuses,omitempty"`
	PlayerFinal int      `json:"playerFinal"`
	AIFinal     int      `json:"aiFinal"`
}

func newResultView(r engine.Settlement) *ResultView {
	v := &ResultView{
		Winner:      r.Winner.String(),
		Nagari:      r.IsNagari,
		Reason:      r.Reason,
		PlayerTotal: r.PlayerTotal,
		AITotal:     r.AITotal,
		Base:        r.Base,
		Multiplier:  r.Multiplier,
		PlayerFinal: r.PlayerFinal,
		AIFinal:     r.AIFinal,
	}
	for _, b := range r.Bonuses {
		v.Bonuses = append(v.Bonuses, string(b))
	}
	return v
}

// GameEvent is the structure broadcast for every state change.
type GameEvent struct {
	Type    GameEventType `json:"type"`
	GameID  uuid.UUID     `json:"gameId"`
	Side    string        `json:"side,omitempty"`
	Card    *CardView     `json:"card,omitempty"`
	Cards   []CardView    `json:"cards,omitempty"`
	Special string        `json:"special,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`

	State  *View       `json:"state,omitempty"`
	Result *ResultView `json:"result,omitempty"`
}
