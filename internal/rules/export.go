package rules

import (
	"math"

	"github.com/HadleysDad/loot-api/internal/table"
)

// ApplyMultipliers scales every integer drop weight by the multiplier
// registered for its container rarity, rounding to the nearest integer
// with a floor of 1. Rarities without a multiplier keep their weights.
// The input document is never mutated; the scaled copy is returned.
func ApplyMultipliers(doc any, multipliers map[string]float64) any {
	out := table.CloneRaw(doc)
	table.WalkItems(out, func(ref table.ItemRef, item map[string]any) {
		m, ok := multipliers[ref.Rarity]
		if !ok {
			return
		}
		w, ok := table.RawWeight(item)
		if !ok {
			return
		}
		scaled := int64(math.Round(float64(w) * m))
		if scaled < 1 {
			scaled = 1
		}
		item["drop"].(map[string]any)["weight"] = scaled
	})
	return out
}
