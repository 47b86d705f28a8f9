// Package drop resolves weighted random drops from a flat item list.
// Each item enters the pool once per point of drop weight and one draw
// picks a pool entry uniformly. A luck transform can re-weight rarer
// tiers before the pool is built.
package drop

import (
	"errors"
	"math/rand"

	"github.com/HadleysDad/loot-api/internal/table"
)

// ErrEmptyPool is returned when a roll is asked of an item list with
// no weighted candidates.
var ErrEmptyPool = errors.New("loot pool is empty")

// BuildPool replicates each item by its drop weight. Weights below 1
// contribute nothing: clamping them is the rule engine's job, and an
// under-weighted pool beats a crash here.
func BuildPool(items []table.Item) []table.Item {
	pool := make([]table.Item, 0, len(items))
	for _, it := range items {
		for i := 0; i < it.Drop.Weight; i++ {
			pool = append(pool, it)
		}
	}
	return pool
}

// Roll draws one item from the weighted pool built over items. The
// supplied generator is the only randomness source, so a seeded caller
// replays the same draw.
func Roll(items []table.Item, rng *rand.Rand) (table.Item, error) {
	pool := BuildPool(items)
	if len(pool) == 0 {
		return table.Item{}, ErrEmptyPool
	}
	return pool[rng.Intn(len(pool))], nil
}
