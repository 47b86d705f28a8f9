// Package simulate drives the drop engine at scale and aggregates the
// draws into empirical distributions used for balance diagnostics.
package simulate

import (
	"math"
	"math/rand"

	"github.com/HadleysDad/loot-api/internal/drop"
	"github.com/HadleysDad/loot-api/internal/table"
)

// Distribution buckets draws along one dimension, reporting absolute
// counts and their share of the run as a percentage.
type Distribution struct {
	Counts  map[string]int     `json:"counts"`
	Percent map[string]float64 `json:"percent"`
}

// Report is the aggregate outcome of one simulation run. Tag
// percentages can sum past 100 because one item may carry many tags.
type Report struct {
	Draws  int          `json:"draws"`
	Rarity Distribution `json:"rarity"`
	Tags   Distribution `json:"tags"`
	Items  Distribution `json:"items"`
}

// Run performs n independent draws against a pool built once per run;
// weights are static for the duration. The drawn items are returned in
// order so callers can aggregate or replay them.
func Run(items []table.Item, rng *rand.Rand, n int) ([]table.Item, error) {
	pool := drop.BuildPool(items)
	if len(pool) == 0 {
		return nil, drop.ErrEmptyPool
	}
	draws := make([]table.Item, n)
	for i := 0; i < n; i++ {
		draws[i] = pool[rng.Intn(len(pool))]
	}
	return draws, nil
}

// Aggregate buckets a draw set by rarity, tag and item name.
func Aggregate(draws []table.Item) Report {
	rep := Report{
		Draws:  len(draws),
		Rarity: newDistribution(),
		Tags:   newDistribution(),
		Items:  newDistribution(),
	}
	for _, it := range draws {
		rep.Rarity.Counts[it.Rarity]++
		rep.Items.Counts[it.Name]++
		for _, tag := range it.Tags {
			rep.Tags.Counts[tag]++
		}
	}
	rep.Rarity.fillPercent(rep.Draws)
	rep.Tags.fillPercent(rep.Draws)
	rep.Items.fillPercent(rep.Draws)
	return rep
}

func newDistribution() Distribution {
	return Distribution{
		Counts:  map[string]int{},
		Percent: map[string]float64{},
	}
}

func (d Distribution) fillPercent(total int) {
	if total == 0 {
		return
	}
	for k, c := range d.Counts {
		d.Percent[k] = round2(100 * float64(c) / float64(total))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
