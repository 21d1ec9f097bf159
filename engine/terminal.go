package engine

import "slices"

// ---------------------------------------------------------------------------
// Settlement of a finished game
// ---------------------------------------------------------------------------

// Settle computes the settlement of a terminal state. A forced result (field quad
// stack) pays the fixed score to its winner without bonuses.
func Settle(s State) Settlement {
	if f := s.Forced; f != nil {
		out := Settlement{
			Winner:      f.Winner,
			PlayerTotal: RunningScore(s.PlayerCapture),
			AITotal:     RunningScore(s.AICapture),
			Base:        f.Score,
			Multiplier:  1,
			Reason:      f.Reason,
		}
		if f.Winner == SideAI {
			out.AIFinal = f.Score
		} else {
			out.PlayerFinal = f.Score
		}
		return out
	}
	return CalculateSettlement(s.SettlementInput())
}

// SettlementInput collects the settlement input from s.
func (s State) SettlementInput() SettlementInput {
	return SettlementInput{
		PlayerCapture:     s.PlayerCapture,
		AICapture:         s.AICapture,
		GoCount:           s.GoCount,
		ShakingMultiplier: s.ShakingMultiplier,
		Rules:             s.Rules,
		DeclaredWinner:    s.Winner,
		BakFlags:          s.BakFlags,
		PiStolen:          s.PiStolen,
	}
}

// ---------------------------------------------------------------------------
// Hidden information
// ---------------------------------------------------------------------------

// Unseen returns the cards side cannot see: the opponent's hand and the draw pile,
// minus any card listed in known.
func (s State) Unseen(side Side, known []Card) []Card {
	pool := with(s.Hand(side.Other()), s.Deck...)
	return without(pool, known...)
}

// Visible returns every card side can currently see: its own hand, the field and
// both capture piles.
func (s State) Visible(side Side) []Card {
	return slices.Concat(s.Hand(side), s.Field, s.PlayerCapture, s.AICapture)
}
