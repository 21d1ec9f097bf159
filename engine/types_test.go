package engine

import "testing"

// TestCatalogUnique verifies the catalog holds 48 cards with distinct ids.
func TestCatalogUnique(t *testing.T) {
	cat := Catalog()
	if len(cat) != DeckSize {
		t.Fatalf("len(Catalog()) = %d, want %d", len(cat), DeckSize)
	}
	seen := make(map[string]bool)
	for _, c := range cat {
		if seen[c.ID] {
			t.Errorf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
}

// TestCatalogTypeCounts verifies the per-category card counts.
func TestCatalogTypeCounts(t *testing.T) {
	want := map[CardType]int{Gwang: 5, Yeol: 9, Tti: 10, Pi: 24}
	got := make(map[CardType]int)
	for _, c := range Catalog() {
		got[c.Type]++
	}
	for typ, n := range want {
		if got[typ] != n {
			t.Errorf("%s count = %d, want %d", typ, got[typ], n)
		}
	}
}

// TestCatalogFourPerMonth verifies every month has exactly four cards.
func TestCatalogFourPerMonth(t *testing.T) {
	counts := monthCounts(Catalog())
	for m := January; m <= December; m++ {
		if counts[m] != 4 {
			t.Errorf("%s has %d cards, want 4", m, counts[m])
		}
	}
}

// TestCatalogStandardIDs verifies the October and November ids and their Art paths.
func TestCatalogStandardIDs(t *testing.T) {
	tests := []struct {
		id  string
		typ CardType
	}{
		{"october-tti", Tti},
		{"november-pi-1", Pi},
		{"november-pi-2", Pi},
	}
	for _, tt := range tests {
		c, ok := CardByID(tt.id)
		if !ok {
			t.Errorf("CardByID(%s) missing", tt.id)
			continue
		}
		if c.Type != tt.typ || c.Art != "cards/"+tt.id+".png" {
			t.Errorf("%s = %+v, want type %s", tt.id, c, tt.typ)
		}
	}
	for _, id := range []string{"october-pi-3", "november-tti", "november-pi"} {
		if _, ok := CardByID(id); ok {
			t.Errorf("CardByID(%s) found, want absent", id)
		}
	}
}

// TestCatalogIsCopy verifies callers cannot alter the catalog.
func TestCatalogIsCopy(t *testing.T) {
	a := Catalog()
	a[0].ID = "tampered"
	if Catalog()[0].ID == "tampered" {
		t.Error("Catalog() exposed the package table")
	}
}

// TestPiUnits verifies double Pi count two units and non-Pi none.
func TestPiUnits(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{NovemberDoublePiID, 2},
		{DecemberDoublePiID, 2},
		{"january-pi-1", 1},
		{"november-pi-2", 1},
		{"january-gwang", 0},
		{"may-tti", 0},
	}
	for _, tt := range tests {
		if got := MustCard(tt.id).PiUnits(); got != tt.want {
			t.Errorf("%s.PiUnits() = %d, want %d", tt.id, got, tt.want)
		}
	}
}

// TestCardValue verifies the tie-break ranking Gwang > Yeol > Tti > double Pi > Pi.
func TestCardValue(t *testing.T) {
	order := []string{"march-gwang", "may-yeol", "may-tti", DecemberDoublePiID, "may-pi-1"}
	for i := 1; i < len(order); i++ {
		hi, lo := MustCard(order[i-1]), MustCard(order[i])
		if hi.Value() <= lo.Value() {
			t.Errorf("%s value %d should exceed %s value %d", hi.ID, hi.Value(), lo.ID, lo.Value())
		}
	}
}

// TestCardByIDUnknown verifies lookups of unknown ids fail.
func TestCardByIDUnknown(t *testing.T) {
	if _, ok := CardByID("thirteenth-gwang"); ok {
		t.Error("CardByID found a card that does not exist")
	}
	if c, ok := CardByID(RainGwangID); !ok || c.Month != December || c.Type != Gwang {
		t.Errorf("CardByID(%s) = %+v, %v", RainGwangID, c, ok)
	}
}

// TestSideOther verifies side flipping.
func TestSideOther(t *testing.T) {
	if SidePlayer.Other() != SideAI || SideAI.Other() != SidePlayer {
		t.Error("Other() does not swap player and ai")
	}
	if SideNone.Other() != SideNone {
		t.Error("SideNone.Other() should stay SideNone")
	}
}
