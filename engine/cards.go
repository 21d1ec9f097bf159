package engine

// Designated card ids referenced by the scoring and combo rules.
const (
	RainGwangID        = "december-gwang"
	NovemberDoublePiID = "november-pi-double"
	DecemberDoublePiID = "december-pi-double"
)

// DeckSize is the number of cards in a hwatu deck.
const DeckSize = 48

func card(id string, m Month, t CardType) Card {
	return Card{ID: id, Month: m, Type: t, Art: "cards/" + id + ".png"}
}

// catalog is the fixed 48-card deck, ordered by month. October's ribbon is
// october-tti and November's plain cards are november-pi-1 and november-pi-2, so
// ids and Art paths follow the standard deck rather than older asset names.
var catalog = [DeckSize]Card{
	card("january-gwang", January, Gwang),
	card("january-tti", January, Tti),
	card("january-pi-1", January, Pi),
	card("january-pi-2", January, Pi),

	card("february-yeol", February, Yeol),
	card("february-tti", February, Tti),
	card("february-pi-1", February, Pi),
	card("february-pi-2", February, Pi),

	card("march-gwang", March, Gwang),
	card("march-tti", March, Tti),
	card("march-pi-1", March, Pi),
	card("march-pi-2", March, Pi),

	card("april-yeol", April, Yeol),
	card("april-tti", April, Tti),
	card("april-pi-1", April, Pi),
	card("april-pi-2", April, Pi),

	card("may-yeol", May, Yeol),
	card("may-tti", May, Tti),
	card("may-pi-1", May, Pi),
	card("may-pi-2", May, Pi),

	card("june-yeol", June, Yeol),
	card("june-tti", June, Tti),
	card("june-pi-1", June, Pi),
	card("june-pi-2", June, Pi),

	card("july-yeol", July, Yeol),
	card("july-tti", July, Tti),
	card("july-pi-1", July, Pi),
	card("july-pi-2", July, Pi),

	card("august-gwang", August, Gwang),
	card("august-yeol", August, Yeol),
	card("august-pi-1", August, Pi),
	card("august-pi-2", August, Pi),

	card("september-yeol", September, Yeol),
	card("september-tti", September, Tti),
	card("september-pi-1", September, Pi),
	card("september-pi-2", September, Pi),

	card("october-yeol", October, Yeol),
	card("october-tti", October, Tti),
	card("october-pi-1", October, Pi),
	card("october-pi-2", October, Pi),

	card("november-gwang", November, Gwang),
	card("november-pi-1", November, Pi),
	card("november-pi-2", November, Pi),
	card(NovemberDoublePiID, November, Pi),

	card(RainGwangID, December, Gwang),
	card("december-yeol", December, Yeol),
	card("december-tti", December, Tti),
	card(DecemberDoublePiID, December, Pi),
}

var catalogIndex = func() map[string]Card {
	m := make(map[string]Card, DeckSize)
	for _, c := range catalog {
		m[c.ID] = c
	}
	return m
}()

// Catalog returns a copy of the 48-card catalog.
func Catalog() []Card {
	out := make([]Card, DeckSize)
	copy(out, catalog[:])
	return out
}

// CardByID looks up a catalog card.
func CardByID(id string) (Card, bool) {
	c, ok := catalogIndex[id]
	return c, ok
}

// MustCard returns the catalog card with the given id and panics if it does not exist.
// Intended for fixtures and tables.
func MustCard(id string) Card {
	c, ok := catalogIndex[id]
	if !ok {
		panic("engine: unknown card id " + id)
	}
	return c
}
