package engine

// MatchResult is the outcome of playing one card against the field.
type MatchResult struct {
	Captured       []Card // played card first, then the matched field card
	RemainingField []Card
	RequiresChoice bool
	MatchingCards  []Card // same-month field cards; populated whenever RequiresChoice is set
}

// FindMatchingCards returns every field card sharing card's month.
func FindMatchingCards(card Card, field []Card) []Card {
	return ofMonth(field, card.Month)
}

// ApplyMatch resolves a played card against the field.
//
// With no match the card joins the field. With exactly one match both cards are
// captured. With two or more the result only signals RequiresChoice; the field is
// returned unchanged and nothing is captured.
func ApplyMatch(card Card, field []Card) MatchResult {
	matches := FindMatchingCards(card, field)
	switch len(matches) {
	case 0:
		return MatchResult{RemainingField: with(field, card)}
	case 1:
		return MatchResult{
			Captured:       []Card{card, matches[0]},
			RemainingField: without(field, matches[0]),
		}
	default:
		return MatchResult{
			RemainingField: with(field),
			RequiresChoice: true,
			MatchingCards:  matches,
		}
	}
}

// ResolveChoice pairs card with the chosen field card. The unchosen cards stay on the field.
func ResolveChoice(card, chosen Card, field []Card) MatchResult {
	return MatchResult{
		Captured:       []Card{card, chosen},
		RemainingField: without(field, chosen),
	}
}

// PickBestMatch returns the highest-valued candidate (Gwang > Yeol > Tti > Pi, double Pi
// above plain Pi); the first one wins ties. It must only be used for AI decisions.
func PickBestMatch(candidates []Card) Card {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Value() > best.Value() {
			best = c
		}
	}
	return best
}
