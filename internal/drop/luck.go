package drop

import (
	"math"

	"github.com/HadleysDad/loot-api/internal/table"
)

// luckSlope is the per-tier coefficient in the luck multiplier
// 1 + slope*luck. Rarer tiers climb faster; unknown tiers do not move.
var luckSlope = map[string]float64{
	"Common":    0,
	"Uncommon":  0.25,
	"Rare":      0.5,
	"Epic":      0.75,
	"Legendary": 1.0,
}

// ApplyLuck returns new item records whose weights are scaled by the
// luck multiplier for their rarity, rounded and floored at 1. Luck at
// or below zero is an identity transform that returns the input slice
// itself; luck above 1 is treated as 1.
func ApplyLuck(items []table.Item, luck float64) []table.Item {
	if luck <= 0 {
		return items
	}
	if luck > 1 {
		luck = 1
	}
	out := make([]table.Item, len(items))
	for i, it := range items {
		mult := 1 + luckSlope[it.Rarity]*luck
		w := int(math.Round(float64(it.Drop.Weight) * mult))
		if w < 1 {
			w = 1
		}
		it.Drop.Weight = w
		out[i] = it
	}
	return out
}
