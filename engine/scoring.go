package engine

// ScoreBreakdown is the per-category score of a capture pile.
type ScoreBreakdown struct {
	Gwang int
	Yeol  int
	Tti   int
	Pi    int
	Total int
}

// GwangScore: 0 below three, 3 for three (2 when the rain gwang is among them),
// 4 for four, 15 for all five.
func GwangScore(cards []Card) int {
	gwang := ofType(cards, Gwang)
	switch len(gwang) {
	case 3:
		if containsID(gwang, RainGwangID) {
			return 2
		}
		return 3
	case 4:
		return 4
	case 5:
		return 15
	default:
		return 0
	}
}

// countScore is the Yeol/Tti rule: nothing below five, then one point per card past four.
func countScore(n int) int {
	if n < 5 {
		return 0
	}
	return n - 4
}

// YeolScore scores the Yeol cards in cards.
func YeolScore(cards []Card) int {
	return countScore(len(ofType(cards, Yeol)))
}

// TtiScore scores the Tti cards in cards.
func TtiScore(cards []Card) int {
	return countScore(len(ofType(cards, Tti)))
}

// PiUnits counts Pi units; the two double Pi count 2 each.
func PiUnits(cards []Card) int {
	units := 0
	for _, c := range cards {
		units += c.PiUnits()
	}
	return units
}

// PiScore: nothing below ten units, then one point per unit past nine.
func PiScore(cards []Card) int {
	units := PiUnits(cards)
	if units < 10 {
		return 0
	}
	return units - 9
}

// Breakdown scores every category of a capture pile.
func Breakdown(cards []Card) ScoreBreakdown {
	b := ScoreBreakdown{
		Gwang: GwangScore(cards),
		Yeol:  YeolScore(cards),
		Tti:   TtiScore(cards),
		Pi:    PiScore(cards),
	}
	b.Total = b.Gwang + b.Yeol + b.Tti + b.Pi
	return b
}

// CalculateScore returns the category total of a capture pile, combos excluded.
func CalculateScore(cards []Card) int {
	return Breakdown(cards).Total
}

// RunningScore is the category total plus combo points.
func RunningScore(cards []Card) int {
	return CalculateScore(cards) + GetComboScore(GetCombos(cards))
}
