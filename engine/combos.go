package engine

// Combo names a fixed three-card set worth ComboPoints.
type Combo string

const (
	Godori    Combo = "godori"
	Hongdan   Combo = "hongdan"
	Chodan    Combo = "chodan"
	Cheongdan Combo = "cheongdan"
)

// ComboPoints is the score of each completed combo.
const ComboPoints = 5

// comboSets lists the combos in reporting order.
var comboSets = []struct {
	name Combo
	ids  [3]string
}{
	{Godori, [3]string{"february-yeol", "april-yeol", "august-yeol"}},
	{Hongdan, [3]string{"january-tti", "february-tti", "march-tti"}},
	{Chodan, [3]string{"april-tti", "may-tti", "july-tti"}},
	{Cheongdan, [3]string{"june-tti", "september-tti", "october-tti"}},
}

// ComboCards returns the card ids that make up the named combo.
func ComboCards(name Combo) []string {
	for _, set := range comboSets {
		if set.name == name {
			return set.ids[:]
		}
	}
	return nil
}

// GetCombos returns the satisfied combos in the order godori, hongdan, chodan, cheongdan.
func GetCombos(cards []Card) []Combo {
	var out []Combo
	for _, set := range comboSets {
		if hasAll(cards, set.ids[:]) {
			out = append(out, set.name)
		}
	}
	return out
}

// GetComboScore is 5 per combo.
func GetComboScore(combos []Combo) int {
	return ComboPoints * len(combos)
}

// MissingForCombo returns how many of the combo's cards are absent from cards.
func MissingForCombo(cards []Card, name Combo) int {
	missing := 0
	for _, id := range ComboCards(name) {
		if !containsID(cards, id) {
			missing++
		}
	}
	return missing
}

func hasAll(cards []Card, ids []string) bool {
	for _, id := range ids {
		if !containsID(cards, id) {
			return false
		}
	}
	return true
}
