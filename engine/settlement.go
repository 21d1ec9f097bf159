package engine

// Bonus names a doubling applied to the winner's score.
type Bonus string

const (
	BonusPibak          Bonus = "pibak"
	BonusGwangbak       Bonus = "gwangbak"
	BonusMeongteongguri Bonus = "meongteongguri"
	BonusGobak          Bonus = "gobak"
	BonusDokbak         Bonus = "dokbak"
	BonusGo             Bonus = "go"
	BonusShake          Bonus = "shake"
)

// SettlementInput is everything settlement needs from a finished game.
type SettlementInput struct {
	PlayerCapture     []Card
	AICapture         []Card
	GoCount           [2]int
	ShakingMultiplier int
	Rules             RuleSet
	DeclaredWinner    Side // SideNone when the game ended by exhaustion
	BakFlags          [2]bool
	PiStolen          [2]int // Pi cards stolen from each side
}

// Settlement is the final result of a game.
type Settlement struct {
	Winner      Side
	IsNagari    bool
	PlayerTotal int // category score plus combo points
	AITotal     int
	Combos      [2][]Combo
	Base        int // winner total before multipliers
	Multiplier  int
	Bonuses     []Bonus
	PlayerFinal int
	AIFinal     int
	Reason      string
}

// Final returns the final score of side.
func (s Settlement) Final(side Side) int {
	if side == SideAI {
		return s.AIFinal
	}
	return s.PlayerFinal
}

// CategoryBonuses evaluates pibak, gwangbak and meongteongguri for a winner/loser pair
// and returns the combined multiplier (1, 2, 4 or 8).
func CategoryBonuses(winner, loser []Card, rules RuleSet) (int, []Bonus) {
	mult := 1
	var bonuses []Bonus
	if PiUnits(loser) <= rules.PiBakMaxPiCount {
		mult *= 2
		bonuses = append(bonuses, BonusPibak)
	}
	winnerGwang := len(ofType(winner, Gwang))
	if winnerGwang >= 3 && len(ofType(loser, Gwang)) == 0 {
		mult *= 2
		bonuses = append(bonuses, BonusGwangbak)
	}
	if rules.EnableMeongteongguri && winnerGwang >= 3 && len(ofType(loser, Yeol)) == 0 &&
		CalculateScore(winner) > CalculateScore(loser) {
		mult *= 2
		bonuses = append(bonuses, BonusMeongteongguri)
	}
	return mult, bonuses
}

// GoMultiplier is 2 once goCount reaches the ruleset threshold, 1 below it.
func GoMultiplier(goCount int, rules RuleSet) int {
	if goCount >= rules.GoMultiplierFromCount {
		return 2
	}
	return 1
}

// CalculateSettlement determines the winner and the final scores.
//
// A declared winner (the side that called stop) takes precedence; otherwise the
// higher total wins and an exact tie is nagari. The winner's total is multiplied by
// the category bonuses, gobak, dokbak, the go multiplier and the shake multiplier.
// The loser keeps its own total.
func CalculateSettlement(in SettlementInput) Settlement {
	captures := [2][]Card{in.PlayerCapture, in.AICapture}
	s := Settlement{Winner: in.DeclaredWinner}
	var totals [2]int
	for side := range captures {
		s.Combos[side] = GetCombos(captures[side])
		totals[side] = CalculateScore(captures[side]) + GetComboScore(s.Combos[side])
	}
	s.PlayerTotal, s.AITotal = totals[SidePlayer], totals[SideAI]

	if s.Winner != SidePlayer && s.Winner != SideAI {
		switch {
		case totals[SidePlayer] > totals[SideAI]:
			s.Winner = SidePlayer
		case totals[SideAI] > totals[SidePlayer]:
			s.Winner = SideAI
		default:
			s.Winner = SideNone
			s.IsNagari = true
			s.Reason = "nagari"
			return s
		}
		s.Reason = "higher total"
	} else {
		s.Reason = "stop"
	}

	w, l := s.Winner, s.Winner.Other()
	s.Base = totals[w]
	mult, bonuses := CategoryBonuses(captures[w], captures[l], in.Rules)
	if in.GoCount[l] >= in.Rules.GoBakMinGoCount || in.BakFlags[l] {
		mult *= 2
		bonuses = append(bonuses, BonusGobak)
	}
	if in.PiStolen[l] >= in.Rules.DokbakStealThreshold {
		mult *= 2
		bonuses = append(bonuses, BonusDokbak)
	}
	if g := GoMultiplier(in.GoCount[w], in.Rules); g > 1 {
		mult *= g
		bonuses = append(bonuses, BonusGo)
	}
	if in.ShakingMultiplier > 1 {
		mult *= in.ShakingMultiplier
		bonuses = append(bonuses, BonusShake)
	}
	s.Multiplier = mult
	s.Bonuses = bonuses

	finals := [2]int{}
	finals[w] = s.Base * mult
	finals[l] = totals[l]
	s.PlayerFinal, s.AIFinal = finals[SidePlayer], finals[SideAI]
	return s
}
