package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTable() Table {
	return Table{
		"weapons": Category{
			"sword": RarityMap{
				"Common": {
					{Name: "Rusty Sword", Rarity: "Common", Type: "sword",
						Drop: Drop{Weight: 10}, Tags: []string{"melee", "starter"}},
				},
				"Legendary": {
					{Name: "Doombringer", Rarity: "Legendary", Type: "sword",
						Drop: Drop{Weight: 1}, Tags: []string{"melee", "cursed"}},
				},
			},
		},
		"armor": Category{
			"helmet": RarityMap{
				"Common": {
					{Name: "Leather Cap", Rarity: "Common", Type: "helmet",
						Drop: Drop{Weight: 8}, Tags: []string{"head", "starter"}},
				},
			},
		},
	}
}

func TestFlatten_SortedAndStable(t *testing.T) {
	tbl := sampleTable()

	first := tbl.Flatten()
	second := tbl.Flatten()

	if len(first) != 3 {
		t.Fatalf("expected 3 items, got %d", len(first))
	}
	// armor sorts before weapons, Common before Legendary.
	if first[0].Name != "Leather Cap" {
		t.Errorf("expected Leather Cap first, got %s", first[0].Name)
	}
	if first[1].Name != "Rusty Sword" || first[2].Name != "Doombringer" {
		t.Errorf("unexpected order: %s, %s", first[1].Name, first[2].Name)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Flatten not stable (-first +second):\n%s", diff)
	}
}

func TestItemsByTag(t *testing.T) {
	tbl := sampleTable()

	melee := tbl.ItemsByTag("melee")
	if len(melee) != 2 {
		t.Fatalf("expected 2 melee items, got %d", len(melee))
	}

	if got := tbl.ItemsByTag("ranged"); len(got) != 0 {
		t.Fatalf("expected no ranged items, got %d", len(got))
	}
}

func TestItemsByTags_RequiresAll(t *testing.T) {
	tbl := sampleTable()

	got := tbl.ItemsByTags([]string{"melee", "cursed"})
	if len(got) != 1 || got[0].Name != "Doombringer" {
		t.Fatalf("expected only Doombringer, got %+v", got)
	}
}

func TestItemsByCategory(t *testing.T) {
	tbl := sampleTable()

	items, ok := tbl.ItemsByCategory("armor")
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 armor item, ok=%v len=%d", ok, len(items))
	}

	if _, ok := tbl.ItemsByCategory("potions"); ok {
		t.Fatal("expected missing category to report ok=false")
	}
}

func TestItemsByRarity(t *testing.T) {
	tbl := sampleTable()

	common := tbl.ItemsByRarity("Common")
	if len(common) != 2 {
		t.Fatalf("expected 2 Common items, got %d", len(common))
	}
}

func TestCloneRaw_Isolated(t *testing.T) {
	doc := map[string]any{
		"weapons": map[string]any{
			"sword": map[string]any{
				"Common": []any{
					map[string]any{"name": "Sword", "drop": map[string]any{"weight": 1}},
				},
			},
		},
	}

	clone := CloneRaw(doc).(map[string]any)
	item := clone["weapons"].(map[string]any)["sword"].(map[string]any)["Common"].([]any)[0].(map[string]any)
	item["name"] = "Changed"
	item["drop"].(map[string]any)["weight"] = 99

	orig := doc["weapons"].(map[string]any)["sword"].(map[string]any)["Common"].([]any)[0].(map[string]any)
	if orig["name"] != "Sword" {
		t.Fatalf("clone mutation leaked into original name: %v", orig["name"])
	}
	if orig["drop"].(map[string]any)["weight"] != 1 {
		t.Fatalf("clone mutation leaked into original weight")
	}
}

func TestAsInt(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{in: 3, want: 3, ok: true},
		{in: int64(4), want: 4, ok: true},
		{in: 2.0, ok: false},
		{in: "2", ok: false},
		{in: true, ok: false},
		{in: nil, ok: false},
	}
	for _, c := range cases {
		got, ok := AsInt(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("AsInt(%v) = %d,%v want %d,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
