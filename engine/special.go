package engine

// SpecialResult is the delta produced by a special-rule application. The caller
// moves Captured and Stolen into the acting side's pile and replaces the other
// slices it passed in.
type SpecialResult struct {
	Captured        []Card
	RemainingHand   []Card
	RemainingField  []Card
	Stolen          []Card
	OpponentCapture []Card
}

// stealPi takes up to n Pi cards from the opponent's pile, first found first.
func stealPi(opponent []Card, n int) (stolen, remaining []Card) {
	for _, c := range opponent {
		if len(stolen) == n {
			break
		}
		if c.Type == Pi {
			stolen = append(stolen, c)
		}
	}
	return stolen, without(opponent, stolen...)
}

// DetectJjok reports whether the field holds exactly two cards of card's month.
func DetectJjok(card Card, field []Card) bool {
	return len(ofMonth(field, card.Month)) == 2
}

// ApplyJjok captures the played card with the field pair and steals one opponent Pi.
func ApplyJjok(card Card, field, opponentCapture []Card) SpecialResult {
	pair := ofMonth(field, card.Month)
	stolen, opp := stealPi(opponentCapture, 1)
	return SpecialResult{
		Captured:        with([]Card{card}, pair...),
		RemainingField:  without(field, pair...),
		Stolen:          stolen,
		OpponentCapture: opp,
	}
}

// DetectPpuk reports whether the field holds exactly three cards of card's month.
func DetectPpuk(card Card, field []Card) bool {
	return len(ofMonth(field, card.Month)) == 3
}

// ApplyPpuk captures the played card and the three field cards. Nothing is stolen.
func ApplyPpuk(card Card, field []Card) SpecialResult {
	stack := ofMonth(field, card.Month)
	return SpecialResult{
		Captured:       with([]Card{card}, stack...),
		RemainingField: without(field, stack...),
	}
}

// monthsWithCount returns, in month order, every month held exactly n times.
func monthsWithCount(hand []Card, n int) []Month {
	counts := monthCounts(hand)
	var out []Month
	for m := January; m <= December; m++ {
		if counts[m] == n {
			out = append(out, m)
		}
	}
	return out
}

// DetectBomb returns every month for which hand holds exactly three cards.
func DetectBomb(hand []Card) []Month {
	return monthsWithCount(hand, 3)
}

// ApplyBomb plays the three hand cards of month, captures them with every field card
// of that month and steals one opponent Pi.
func ApplyBomb(month Month, hand, field, opponentCapture []Card) SpecialResult {
	played := ofMonth(hand, month)
	onField := ofMonth(field, month)
	stolen, opp := stealPi(opponentCapture, 1)
	return SpecialResult{
		Captured:        with(played, onField...),
		RemainingHand:   without(hand, played...),
		RemainingField:  without(field, onField...),
		Stolen:          stolen,
		OpponentCapture: opp,
	}
}

// DetectChongtong returns every month for which hand holds all four cards.
func DetectChongtong(hand []Card) []Month {
	return monthsWithCount(hand, 4)
}

// ApplyChongtong captures the four hand cards of month and steals up to two opponent Pi.
func ApplyChongtong(month Month, hand, opponentCapture []Card) SpecialResult {
	played := ofMonth(hand, month)
	stolen, opp := stealPi(opponentCapture, 2)
	return SpecialResult{
		Captured:        played,
		RemainingHand:   without(hand, played...),
		Stolen:          stolen,
		OpponentCapture: opp,
	}
}

// CanShake reports whether a shake may be declared for card: the field must hold
// exactly two cards of its month and the hand at least one.
func CanShake(card Card, hand, field []Card) bool {
	return len(ofMonth(field, card.Month)) == 2 && len(ofMonth(hand, card.Month)) >= 1
}

// ApplyShake doubles the multiplier on success and resets it to 1 on failure.
func ApplyShake(success bool, multiplier int) int {
	if !success {
		return 1
	}
	if multiplier < 1 {
		multiplier = 1
	}
	return multiplier * 2
}

// DetectSsatda reports whether the flipped deck card shares the month of a hand
// card that was about to capture a single field card.
func DetectSsatda(handCard, deckCard Card) bool {
	return handCard.Month == deckCard.Month
}

// ApplySsatda leaves the hand card, its matched field card and the deck card on the field.
func ApplySsatda(handCard, matched, deckCard Card, field []Card) []Card {
	return with(without(field, matched), matched, handCard, deckCard)
}

// DetectJjoknassda reports whether a hand card placed without a match is followed by
// a deck card of the same month. It is an event only.
func DetectJjoknassda(handCard, deckCard Card) bool {
	return handCard.Month == deckCard.Month
}

// DetectFieldQuadStack reports the first month whose four cards were all dealt to the field.
func DetectFieldQuadStack(field []Card) (Month, bool) {
	months := monthsWithCount(field, 4)
	if len(months) == 0 {
		return 0, false
	}
	return months[0], true
}
