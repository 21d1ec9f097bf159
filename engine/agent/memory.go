package agent

import "github.com/joseph-jy/gostop/engine"

// Memory records cards a seat has seen, in first-seen order. The driver feeds it
// with played and flipped cards and with hand cards the opponent revealed by shaking;
// the result is the known argument of SelectMove.
type Memory struct {
	seen  map[string]struct{}
	order []engine.Card
}

// NewMemory returns an empty memory.
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

// Observe records cards; repeats are ignored.
func (m *Memory) Observe(cards ...engine.Card) {
	for _, c := range cards {
		if _, ok := m.seen[c.ID]; ok {
			continue
		}
		m.seen[c.ID] = struct{}{}
		m.order = append(m.order, c)
	}
}

// Knows reports whether the card with id has been observed.
func (m *Memory) Knows(id string) bool {
	_, ok := m.seen[id]
	return ok
}

// Known returns a copy of the observed cards.
func (m *Memory) Known() []engine.Card {
	out := make([]engine.Card, len(m.order))
	copy(out, m.order)
	return out
}

// Len is the number of observed cards.
func (m *Memory) Len() int { return len(m.order) }

// Reset forgets everything.
func (m *Memory) Reset() {
	m.seen = make(map[string]struct{})
	m.order = nil
}
