// engine_adapter.go: bridge between engine.State transitions and Session events.
package game

import (
	"github.com/joseph-jy/gostop/engine"
	"github.com/joseph-jy/gostop/engine/agent"
	"github.com/sirupsen/logrus"
)

// transition is any engine reducer.
type transition func(engine.State) (engine.State, error)

// step runs one transition and publishes what it revealed.
// Assumes lock is held by caller.
func (s *Session) step(fn transition) error {
	prev := s.State
	next, err := fn(prev)
	if err != nil {
		return err
	}
	s.State = next
	s.observeReveals(prev, next)
	s.emitEngineEvents(prev, next)
	return nil
}

// apply runs a decision through the engine. A rejected action leaves the state
// untouched. Assumes lock is held by caller.
func (s *Session) apply(a engine.Action) error {
	side := s.State.Turn
	shown := s.shakeReveal(a)
	err := s.step(func(st engine.State) (engine.State, error) { return engine.Apply(st, a) })
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"side":   side,
			"action": a.Kind,
			"card":   a.CardID,
		}).Warn("action rejected")
		return err
	}
	if len(shown) > 0 {
		s.announceShake(side, shown)
	}
	s.log.WithFields(logrus.Fields{
		"side":   side,
		"action": a.Kind,
		"card":   a.CardID,
		"shake":  a.Shake,
		"phase":  s.State.Phase,
	}).Debug("action applied")
	return nil
}

// botAction asks bot for the decision the current phase needs. Multi-way matches are
// resolved with PickBestMatch; the engine itself never chooses. Assumes lock is held.
func (s *Session) botAction(bot agent.Player) engine.Action {
	st := s.State
	side := st.Turn
	known := s.memory[side].Known()

	switch st.Decision() {
	case engine.CtxSelectCard:
		hand := st.ActiveHand()
		c := bot.SelectMove(st, hand, st.Field, known)
		return engine.Action{
			Kind:   engine.ActionSelect,
			CardID: c.ID,
			Shake:  engine.CanShake(c, hand, st.Field),
		}
	case engine.CtxChooseMatch:
		return engine.Action{Kind: engine.ActionChoose, CardID: engine.PickBestMatch(st.Choice.MatchingCards).ID}
	case engine.CtxGoStop:
		my, opp := st.Score(side), st.Score(side.Other())
		expected := float64(my)
		if est, ok := bot.(agent.Estimator); ok {
			expected = est.ExpectedScore(st, side, known)
		}
		d := bot.SelectGoStop(my, my, opp, expected)
		s.log.WithFields(logrus.Fields{
			"side":     side,
			"score":    my,
			"opponent": opp,
			"expected": expected,
			"decision": d,
		}).Debug("bot go/stop")
		if d == agent.Stop {
			return engine.Action{Kind: engine.ActionStop}
		}
		return engine.Action{Kind: engine.ActionGo}
	}
	return engine.Action{}
}

// observeReveals feeds the played and flipped cards to both memories and
// broadcasts them. Assumes lock is held by caller.
func (s *Session) observeReveals(prev, next engine.State) {
	if c := next.Selected; c != nil && !sameCard(prev.Selected, c) {
		s.observe(*c)
		s.fireEvent(GameEvent{Type: EventCardPlayed, Side: next.Turn.String(), Card: newCardView(*c)})
	}
	if c := next.Flipped; c != nil && !sameCard(prev.Flipped, c) {
		s.observe(*c)
		s.fireEvent(GameEvent{Type: EventCardFlipped, Side: next.Turn.String(), Card: newCardView(*c)})
	}
	if next.Phase == engine.PhaseGoStop && prev.Phase != engine.PhaseGoStop {
		s.fireEvent(GameEvent{
			Type:    EventGoStopReached,
			Side:    next.Turn.String(),
			Payload: map[string]interface{}{"score": next.Score(next.Turn)},
		})
	}
}

func sameCard(a, b *engine.Card) bool {
	return a != nil && b != nil && a.ID == b.ID
}

func (s *Session) observe(cards ...engine.Card) {
	for _, m := range s.memory {
		m.Observe(cards...)
	}
}

// emitEngineEvents broadcasts the engine log entries added by a transition.
// Assumes lock is held by caller.
func (s *Session) emitEngineEvents(prev, next engine.State) {
	for _, e := range next.EventsSince(prev.EventSeq) {
		ev := GameEvent{
			Type:    EventRule,
			Side:    e.Side.String(),
			Special: string(e.Kind),
		}
		if e.Month != 0 || e.Detail != "" {
			ev.Payload = map[string]interface{}{}
			if e.Month != 0 {
				ev.Payload["month"] = int(e.Month)
			}
			if e.Detail != "" {
				ev.Payload["detail"] = e.Detail
			}
		}
		s.log.WithFields(logrus.Fields{
			"event": e.Kind,
			"side":  e.Side,
			"month": e.Month,
		}).Debug("rule event")
		s.fireEvent(ev)
	}
}

// promptHuman tells the human side to move what decision is awaited.
// Assumes lock is held by caller.
func (s *Session) promptHuman() {
	side := s.State.Turn
	view := s.view(side)
	s.fireEvent(GameEvent{
		Type:    EventTurn,
		Side:    side.String(),
		Special: decisionName(s.State.Decision()),
		State:   &view,
	})
}

func decisionName(d engine.DecisionContext) string {
	switch d {
	case engine.CtxSelectCard:
		return "select_card"
	case engine.CtxChooseMatch:
		return "choose_match"
	case engine.CtxGoStop:
		return "go_stop"
	case engine.CtxTerminal:
		return "game_over"
	default:
		return "automatic"
	}
}
