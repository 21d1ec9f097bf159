// internal/game/game.go
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/joseph-jy/gostop/engine"
	"github.com/joseph-jy/gostop/engine/agent"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotStarted     = errors.New("game not started")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotYourTurn    = errors.New("seat is played by a bot")
)

// OnGameEndFunc is called once when a game reaches the end phase.
type OnGameEndFunc func(gameID uuid.UUID, result engine.Settlement)

// Session drives one two-seat game. A seat with a bot attached plays itself; the
// other seat is driven through PlayCard, ChooseMatch, Go and Stop. Bot turns run
// synchronously inside the call that hands them the move.
type Session struct {
	ID    uuid.UUID
	Rules engine.RuleSet
	State engine.State

	bots   [2]agent.Player
	memory [2]*agent.Memory
	rng    agent.Rand

	started bool
	result  *engine.Settlement

	log *logrus.Entry
	Mu  sync.Mutex // protects everything above

	BroadcastFn func(ev GameEvent) // receives every public event
	OnGameEnd   OnGameEndFunc
}

// NewSession creates a game with both seats human-driven. rng supplies the shuffle
// and every bot decision.
func NewSession(rules engine.RuleSet, rng agent.Rand) *Session {
	id := uuid.New()
	return &Session{
		ID:     id,
		Rules:  rules,
		rng:    rng,
		memory: [2]*agent.Memory{agent.NewMemory(), agent.NewMemory()},
		log:    logrus.WithField("game", id),
	}
}

// SetBot attaches a strategy to side. Must be called before Start.
func (s *Session) SetBot(side engine.Side, p agent.Player) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.bots[side] = p
}

// Start deals, resolves the deal-time specials and plays until a human decision is
// needed or the game ends.
func (s *Session) Start(starter engine.Side) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	if err := s.Rules.Validate(); err != nil {
		return err
	}
	s.started = true
	s.State = engine.NewGame(s.rng, s.Rules).WithStarter(starter)
	for _, m := range s.memory {
		m.Reset()
	}
	s.log.WithFields(logrus.Fields{
		"starter": starter,
		"rules":   s.Rules.Name,
	}).Info("game started")
	s.fireEvent(GameEvent{Type: EventGameStart, Side: starter.String()})
	return s.run()
}

// PlayCard plays a hand card for the human side to move, optionally declaring a shake.
func (s *Session) PlayCard(cardID string, shake bool) error {
	return s.humanAction(engine.Action{Kind: engine.ActionSelect, CardID: cardID, Shake: shake})
}

// ChooseMatch picks the field card to pair with the played or flipped card.
func (s *Session) ChooseMatch(fieldID string) error {
	return s.humanAction(engine.Action{Kind: engine.ActionChoose, CardID: fieldID})
}

// Go continues the game after reaching the go/stop threshold.
func (s *Session) Go() error {
	return s.humanAction(engine.Action{Kind: engine.ActionGo})
}

// Stop ends the game in the caller's favour.
func (s *Session) Stop() error {
	return s.humanAction(engine.Action{Kind: engine.ActionStop})
}

func (s *Session) humanAction(a engine.Action) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if s.State.IsTerminal() {
		return engine.ErrGameOver
	}
	if s.bots[s.State.Turn] != nil {
		return fmt.Errorf("%s to move: %w", s.State.Turn, ErrNotYourTurn)
	}
	if err := s.apply(a); err != nil {
		return err
	}
	return s.run()
}

// Result returns the settlement once the game has ended.
func (s *Session) Result() (engine.Settlement, bool) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.result == nil {
		return engine.Settlement{}, false
	}
	return *s.result, true
}

// Snapshot returns the current engine state.
func (s *Session) Snapshot() engine.State {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.State
}

// run advances automatic phases and bot decisions until a human must act or the
// game ends. Assumes lock is held by caller.
func (s *Session) run() error {
	for {
		switch s.State.Decision() {
		case engine.CtxTerminal:
			s.endGame()
			return nil
		case engine.CtxAutomatic:
			if err := s.step(engine.Advance); err != nil {
				return err
			}
		default:
			bot := s.bots[s.State.Turn]
			if bot == nil {
				s.promptHuman()
				return nil
			}
			if err := s.apply(s.botAction(bot)); err != nil {
				s.log.WithError(err).WithField("side", s.State.Turn).Error("bot action rejected")
				return err
			}
		}
	}
}

// endGame settles the game and fires the end callbacks once.
// Assumes lock is held by caller.
func (s *Session) endGame() {
	if s.result != nil {
		return
	}
	result := engine.Settle(s.State)
	s.result = &result

	s.log.WithFields(logrus.Fields{
		"winner":     result.Winner,
		"nagari":     result.IsNagari,
		"reason":     result.Reason,
		"multiplier": result.Multiplier,
		"bonuses":    result.Bonuses,
		"player":     result.PlayerFinal,
		"ai":         result.AIFinal,
	}).Info("game over")

	s.fireEvent(GameEvent{
		Type:   EventGameEnd,
		Side:   result.Winner.String(),
		Result: newResultView(result),
	})
	if s.OnGameEnd != nil {
		s.OnGameEnd(s.ID, result)
	}
}

// fireEvent broadcasts an event via the BroadcastFn callback.
// Assumes lock is held by caller.
func (s *Session) fireEvent(ev GameEvent) {
	ev.GameID = s.ID
	if s.BroadcastFn == nil {
		s.log.WithField("type", ev.Type).Debug("no broadcaster, event dropped")
		return
	}
	s.BroadcastFn(ev)
}
