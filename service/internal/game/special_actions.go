// internal/game/special_actions.go
package game

import (
	"github.com/joseph-jy/gostop/engine"
	"github.com/sirupsen/logrus"
)

// shakeReveal returns the hand cards a shake declaration shows to the table: every
// card of the played card's month held by the side to move. It returns nil for any
// other action. Assumes lock is held by caller.
func (s *Session) shakeReveal(a engine.Action) []engine.Card {
	if a.Kind != engine.ActionSelect || !a.Shake {
		return nil
	}
	played, ok := engine.CardByID(a.CardID)
	if !ok {
		return nil
	}
	var shown []engine.Card
	for _, c := range s.State.ActiveHand() {
		if c.Month == played.Month {
			shown = append(shown, c)
		}
	}
	return shown
}

// announceShake records the revealed cards in the opponent's memory and broadcasts
// them. Assumes lock is held by caller.
func (s *Session) announceShake(side engine.Side, shown []engine.Card) {
	s.memory[side.Other()].Observe(shown...)
	s.fireEvent(GameEvent{
		Type:  EventShakeDeclared,
		Side:  side.String(),
		Cards: newCardViews(shown),
	})
	s.log.WithFields(logrus.Fields{
		"side":  side,
		"month": shown[0].Month,
		"cards": engine.IDs(shown),
	}).Info("shake declared")
}
