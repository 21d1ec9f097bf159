package engine

import "slices"

// Rand is the randomness source used for shuffling. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Deal sizes.
const (
	HandSize  = 10
	FieldSize = 8
	StockSize = DeckSize - 2*HandSize - FieldSize
)

// Deal is the partition of one shuffled deck.
type Deal struct {
	PlayerHand []Card
	AIHand     []Card
	Field      []Card
	Deck       []Card
}

// NewDeck returns a fresh, unshuffled copy of the catalog.
func NewDeck() []Card {
	return Catalog()
}

// Shuffle returns a uniformly random permutation of deck (Fisher-Yates).
// The input is left untouched.
func Shuffle(deck []Card, rng Rand) []Card {
	out := slices.Clone(deck)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// DealCards partitions a 48-card deck: 10 to the player, 10 to the AI, 8 to the field
// and the remaining 20 to the draw pile, in that order from the top.
func DealCards(deck []Card) Deal {
	d := slices.Clone(deck)
	return Deal{
		PlayerHand: d[0:HandSize:HandSize],
		AIHand:     d[HandSize : 2*HandSize : 2*HandSize],
		Field:      d[2*HandSize : 2*HandSize+FieldSize : 2*HandSize+FieldSize],
		Deck:       d[2*HandSize+FieldSize:],
	}
}

// ShuffleAndDeal is NewDeck, Shuffle and DealCards in one call.
func ShuffleAndDeal(rng Rand) Deal {
	return DealCards(Shuffle(NewDeck(), rng))
}

// Slice helpers. None of them modify their inputs.

func containsID(cards []Card, id string) bool {
	return indexOf(cards, id) >= 0
}

func indexOf(cards []Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// without returns cards minus every card whose id appears in remove.
func without(cards []Card, remove ...Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if !containsID(remove, c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// with returns a new slice holding cards followed by add.
func with(cards []Card, add ...Card) []Card {
	return slices.Concat(cards, add)
}

// ofMonth returns the cards of the given month, in order.
func ofMonth(cards []Card, m Month) []Card {
	var out []Card
	for _, c := range cards {
		if c.Month == m {
			out = append(out, c)
		}
	}
	return out
}

// ofType returns the cards of the given type, in order.
func ofType(cards []Card, t CardType) []Card {
	var out []Card
	for _, c := range cards {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// monthCounts tallies cards per month; index 0 is unused.
func monthCounts(cards []Card) [13]int {
	var counts [13]int
	for _, c := range cards {
		if c.Month >= January && c.Month <= December {
			counts[c.Month]++
		}
	}
	return counts
}

// IDs returns the ids of cards, in order.
func IDs(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
