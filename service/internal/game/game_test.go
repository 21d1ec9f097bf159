// internal/game/game_test.go
package game

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/joseph-jy/gostop/engine"
	"github.com/joseph-jy/gostop/engine/agent"
	"github.com/joseph-jy/gostop/service/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBroadcaster captures game events for testing assertions.
type mockBroadcaster struct {
	mu        sync.Mutex
	allEvents []GameEvent
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{}
}

func (mb *mockBroadcaster) broadcastFn(ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = append(mb.allEvents, ev)
}

func (mb *mockBroadcaster) clear() {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = nil
}

func (mb *mockBroadcaster) getLastEvent() *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if len(mb.allEvents) == 0 {
		return nil
	}
	return &mb.allEvents[len(mb.allEvents)-1]
}

func (mb *mockBroadcaster) findEventByType(eventType GameEventType) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := len(mb.allEvents) - 1; i >= 0; i-- {
		if mb.allEvents[i].Type == eventType {
			return &mb.allEvents[i]
		}
	}
	return nil
}

func (mb *mockBroadcaster) countType(eventType GameEventType) int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	n := 0
	for _, ev := range mb.allEvents {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func cards(ids ...string) []engine.Card {
	out := make([]engine.Card, len(ids))
	for i, id := range ids {
		out[i] = engine.MustCard(id)
	}
	return out
}

// setupTestSession creates a session with an easy bot on the AI seat and a mock broadcaster.
func setupTestSession(t *testing.T, seed uint64) (*Session, *mockBroadcaster) {
	t.Helper()
	rng := newRNG(seed)
	s := NewSession(engine.StandardRuleSet(), rng)
	bot, err := agent.NewPlayer(agent.Easy, rng)
	require.NoError(t, err)
	s.SetBot(engine.SideAI, bot)

	mb := newMockBroadcaster()
	s.BroadcastFn = mb.broadcastFn
	return s, mb
}

// injectState starts s from a hand-built deal with the player to move.
func injectState(t *testing.T, s *Session, d engine.Deal, capture []string) {
	t.Helper()
	st := engine.NewState(d, s.Rules)
	st.PlayerCapture = cards(capture...)
	st, err := engine.Start(st)
	require.NoError(t, err)
	require.Equal(t, engine.PhaseSelectHand, st.Phase)
	s.State = st
	s.started = true
}

func TestActionsBeforeStart(t *testing.T) {
	s, _ := setupTestSession(t, 1)
	assert.ErrorIs(t, s.PlayCard("may-pi-1", false), ErrNotStarted)
	assert.ErrorIs(t, s.Go(), ErrNotStarted)
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestStartTwice(t *testing.T) {
	s, _ := setupTestSession(t, 2)
	require.NoError(t, s.Start(engine.SidePlayer))
	assert.ErrorIs(t, s.Start(engine.SidePlayer), ErrAlreadyStarted)
}

func TestStartRejectsInvalidRules(t *testing.T) {
	rules := engine.StandardRuleSet()
	rules.GoStopThreshold = 0
	s := NewSession(rules, newRNG(3))
	assert.ErrorIs(t, s.Start(engine.SidePlayer), engine.ErrInvalidRuleSet)
}

// TestAutoplayFinishes verifies two bots play a full game inside Start and the end
// callbacks fire exactly once.
func TestAutoplayFinishes(t *testing.T) {
	for seed := uint64(1); seed <= 15; seed++ {
		rng := newRNG(seed)
		s := NewSession(engine.StandardRuleSet(), rng)
		for _, side := range []engine.Side{engine.SidePlayer, engine.SideAI} {
			bot, err := agent.NewPlayer([]agent.Difficulty{agent.Easy, agent.Medium, agent.Hard}[(int(seed)+int(side))%3], rng)
			require.NoError(t, err)
			s.SetBot(side, bot)
		}
		mb := newMockBroadcaster()
		s.BroadcastFn = mb.broadcastFn

		var ended int
		var endedID uuid.UUID
		s.OnGameEnd = func(id uuid.UUID, _ engine.Settlement) {
			ended++
			endedID = id
		}

		require.NoError(t, s.Start(engine.SidePlayer), "seed %d", seed)

		snap := s.Snapshot()
		assert.True(t, snap.IsTerminal(), "seed %d", seed)
		assert.NoError(t, snap.CheckConservation(), "seed %d", seed)
		assert.Equal(t, 1, ended)
		assert.Equal(t, s.ID, endedID)

		res, ok := s.Result()
		require.True(t, ok)
		last := mb.getLastEvent()
		require.NotNil(t, last)
		assert.Equal(t, EventGameEnd, last.Type)
		assert.Equal(t, res.Winner.String(), last.Result.Winner)
		assert.Equal(t, s.ID, last.GameID)
		assert.Equal(t, 1, mb.countType(EventGameStart))
		assert.Zero(t, mb.countType(EventTurn), "no human prompts in autoplay")
	}
}

// TestHumanAgainstBot drives the player seat through the public API until the game ends.
func TestHumanAgainstBot(t *testing.T) {
	s, mb := setupTestSession(t, 7)
	require.NoError(t, s.Start(engine.SidePlayer))

	for i := 0; i < 100; i++ {
		if _, ok := s.Result(); ok {
			break
		}
		v := s.View(engine.SidePlayer)
		require.True(t, v.YourTurn, "control returned while %s is to move", v.Turn)

		last := mb.getLastEvent()
		require.NotNil(t, last)
		require.Equal(t, EventTurn, last.Type)

		switch engine.Phase(v.Phase) {
		case engine.PhaseSelectHand:
			assert.Equal(t, "select_card", last.Special)
			require.NoError(t, s.PlayCard(v.Self.Hand[0].ID, false))
		case engine.PhaseChooseMatchHand, engine.PhaseChooseMatchDeck:
			require.NotEmpty(t, v.Choices)
			require.NoError(t, s.ChooseMatch(v.Choices[0].ID))
		case engine.PhaseGoStop:
			require.NoError(t, s.Stop())
		default:
			t.Fatalf("unexpected phase %s at a prompt", v.Phase)
		}
	}

	res, ok := s.Result()
	require.True(t, ok, "game did not finish")
	assert.ErrorIs(t, s.PlayCard("may-pi-1", false), engine.ErrGameOver)
	assert.NotNil(t, mb.findEventByType(EventGameEnd))
	if !res.IsNagari {
		assert.Contains(t, []engine.Side{engine.SidePlayer, engine.SideAI}, res.Winner)
	}
}

func TestViewHidesOpponentHand(t *testing.T) {
	s, _ := setupTestSession(t, 11)
	require.NoError(t, s.Start(engine.SidePlayer))
	if _, over := s.Result(); over {
		t.Skip("deal ended the game at once")
	}

	snap := s.Snapshot()
	v := s.View(engine.SidePlayer)
	assert.Len(t, v.Self.Hand, len(snap.PlayerHand))
	assert.Nil(t, v.Opponent.Hand)
	assert.Equal(t, len(snap.AIHand), v.Opponent.HandSize)
	assert.Equal(t, len(snap.Deck), v.DeckSize)
	assert.Equal(t, s.ID, v.GameID)

	ai := s.View(engine.SideAI)
	assert.False(t, ai.YourTurn)
	assert.Empty(t, ai.Choices)
	assert.Empty(t, ai.Shakeable)
}

func TestObserverViewShowsNoHand(t *testing.T) {
	s, _ := setupTestSession(t, 11)
	require.NoError(t, s.Start(engine.SidePlayer))

	snap := s.Snapshot()
	var v View
	require.NotPanics(t, func() { v = s.View(engine.SideNone) })
	assert.False(t, v.YourTurn)
	assert.Nil(t, v.Self.Hand)
	assert.Nil(t, v.Opponent.Hand)
	assert.Empty(t, v.Choices)
	assert.Empty(t, v.Shakeable)
	assert.Equal(t, "player", v.Self.Side)
	assert.Equal(t, "ai", v.Opponent.Side)
	assert.Equal(t, len(snap.PlayerHand), v.Self.HandSize)
	assert.Equal(t, len(snap.AIHand), v.Opponent.HandSize)
}

func TestRejectedActionLeavesState(t *testing.T) {
	s, mb := setupTestSession(t, 5)
	injectState(t, s, engine.Deal{
		PlayerHand: cards("may-pi-1", "june-pi-1"),
		AIHand:     cards("december-tti", "january-pi-1"),
		Field:      cards("march-pi-1", "april-pi-1"),
		Deck:       cards("december-yeol", "november-pi-1"),
	}, nil)
	before := s.Snapshot()
	mb.clear()

	assert.ErrorIs(t, s.PlayCard("august-gwang", false), engine.ErrCardNotInHand)
	assert.ErrorIs(t, s.PlayCard("may-pi-1", true), engine.ErrCannotShake)
	assert.ErrorIs(t, s.ChooseMatch("march-pi-1"), engine.ErrWrongPhase)
	assert.ErrorIs(t, s.Go(), engine.ErrWrongPhase)

	assert.Equal(t, before, s.Snapshot())
	assert.Nil(t, mb.findEventByType(EventShakeDeclared), "rejected shake must not reveal cards")
	assert.False(t, s.memory[engine.SideAI].Knows("may-pi-1"))
}

func TestBotSeatRejectsHumanAction(t *testing.T) {
	s, _ := setupTestSession(t, 6)
	injectState(t, s, engine.Deal{
		PlayerHand: cards("may-pi-1"),
		AIHand:     cards("december-tti"),
		Field:      cards("march-pi-1"),
		Deck:       cards("december-yeol", "november-pi-1"),
	}, nil)
	s.State.Turn = engine.SideAI

	assert.ErrorIs(t, s.PlayCard("december-tti", false), ErrNotYourTurn)
}

// TestShakeRevealsToOpponent verifies a shake shows the month's hand cards to the bot.
func TestShakeRevealsToOpponent(t *testing.T) {
	s, mb := setupTestSession(t, 9)
	injectState(t, s, engine.Deal{
		PlayerHand: cards("may-pi-1", "june-pi-1", "july-pi-1"),
		AIHand:     cards("december-tti", "january-pi-1", "october-pi-2"),
		Field:      cards("may-pi-2", "may-tti", "march-pi-1"),
		Deck:       cards("december-yeol", "november-pi-1", "october-pi-1", "august-pi-1", "september-pi-1", "february-pi-1"),
	}, nil)
	mb.clear()

	require.NoError(t, s.PlayCard("may-pi-1", true))

	shake := mb.findEventByType(EventShakeDeclared)
	require.NotNil(t, shake)
	assert.Equal(t, "player", shake.Side)
	require.Len(t, shake.Cards, 1)
	assert.Equal(t, "may-pi-1", shake.Cards[0].ID)
	assert.True(t, s.memory[engine.SideAI].Knows("may-pi-1"))

	var kinds []string
	mb.mu.Lock()
	for _, ev := range mb.allEvents {
		if ev.Type == EventRule {
			kinds = append(kinds, ev.Special)
		}
	}
	mb.mu.Unlock()
	assert.Contains(t, kinds, string(engine.EventJjok))
	assert.Contains(t, kinds, string(engine.EventShake))
	assert.Equal(t, 2, s.Snapshot().ShakingMultiplier)
}

// TestGoStopPromptAndStop verifies the go/stop prompt and a human stop ending the game.
func TestGoStopPromptAndStop(t *testing.T) {
	s, mb := setupTestSession(t, 4)
	injectState(t, s, engine.Deal{
		PlayerHand: cards("june-pi-1", "july-pi-1"),
		AIHand:     cards("december-tti", "october-pi-1"),
		Field:      cards("june-pi-2", "may-pi-2"),
		Deck:       cards("november-pi-1", "september-pi-1", "august-pi-1", "february-pi-1"),
	}, []string{"january-gwang", "march-gwang", "august-gwang", "november-gwang", "december-gwang", "january-tti", "february-tti", "march-tti"})

	store := &stats.MemoryStore{}
	rec := stats.NewRecorder(store)
	s.OnGameEnd = func(_ uuid.UUID, res engine.Settlement) {
		_, err := rec.RecordGame(context.Background(), res)
		assert.NoError(t, err)
	}

	require.NoError(t, s.PlayCard("june-pi-1", false))

	v := s.View(engine.SidePlayer)
	require.Equal(t, string(engine.PhaseGoStop), v.Phase)
	assert.True(t, v.YourTurn)
	reached := mb.findEventByType(EventGoStopReached)
	require.NotNil(t, reached)
	assert.Equal(t, 15, reached.Payload["score"], "hongdan counts only in the settlement")
	assert.Equal(t, "go_stop", mb.getLastEvent().Special)

	require.NoError(t, s.Stop())
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, engine.SidePlayer, res.Winner)
	assert.Equal(t, "stop", res.Reason)

	r, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, r.TotalGames)
	assert.Equal(t, 1, r.Wins)
	assert.Equal(t, res.PlayerFinal, r.HighScore)

	end := s.View(engine.SidePlayer)
	assert.True(t, end.GameOver)
	require.NotNil(t, end.Result)
	assert.Equal(t, "player", end.Result.Winner)
}
