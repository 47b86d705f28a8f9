package simulate

import (
	"github.com/HadleysDad/loot-api/internal/drop"
	"github.com/HadleysDad/loot-api/internal/table"
)

// Comparison contrasts a base run with a luck-adjusted run. Each arm
// is aggregated strictly from its own draws.
type Comparison struct {
	Draws       int                `json:"draws"`
	Luck        float64            `json:"luck"`
	Base        Report             `json:"base"`
	WithLuck    Report             `json:"with_luck"`
	RarityDelta map[string]float64 `json:"rarity_delta"`
}

// Compare runs n draws twice from the same seed, once over the raw
// items and once with luck applied, and reports how the rarity shares
// move. Paired seeds keep the arms replayable and comparable.
func Compare(items []table.Item, luck float64, seed int64, n int) (Comparison, error) {
	baseDraws, err := Run(items, drop.NewRNG(seed), n)
	if err != nil {
		return Comparison{}, err
	}
	luckDraws, err := Run(drop.ApplyLuck(items, luck), drop.NewRNG(seed), n)
	if err != nil {
		return Comparison{}, err
	}

	c := Comparison{
		Draws:       n,
		Luck:        luck,
		Base:        Aggregate(baseDraws),
		WithLuck:    Aggregate(luckDraws),
		RarityDelta: map[string]float64{},
	}
	for rarity := range c.Base.Rarity.Percent {
		c.RarityDelta[rarity] = round2(c.WithLuck.Rarity.Percent[rarity] - c.Base.Rarity.Percent[rarity])
	}
	for rarity := range c.WithLuck.Rarity.Percent {
		if _, done := c.RarityDelta[rarity]; !done {
			c.RarityDelta[rarity] = round2(c.WithLuck.Rarity.Percent[rarity])
		}
	}
	return c, nil
}
