package rules

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/HadleysDad/loot-api/internal/config"
	"github.com/HadleysDad/loot-api/internal/table"
)

// An analyzer inspects the table and its validation report and
// proposes zero or more fixes. Analyzers are independent: none sees
// another's output, and each tags its findings with a fixed severity.
type analyzer func(doc any, res table.Result, cfg config.Rules) []Fix

// battery is the full analyzer set, run in severity order. Filtering
// by profile happens afterwards in BuildPreview.
var battery = []analyzer{
	weightClampFixes,
	missingTagFixes,
	rarityMismatchFixes,
	missingTierFixes,
	weightOutlierFixes,
	curveDriftFixes,
	powerCurveFixes,
	legendaryPayoffFixes,
	legendaryExposureFixes,
	concentrationFixes,
	rarityIdentityFixes,
	unknownRarityFixes,
}

// weightClampFixes proposes the minimum-weight clamp for every weight
// violation the validator reported.
func weightClampFixes(_ any, res table.Result, _ config.Rules) []Fix {
	var fixes []Fix
	for _, e := range res.Errors {
		if e.Code != table.CodeWeightNotInt && e.Code != table.CodeWeightRange {
			continue
		}
		fixes = append(fixes, Fix{
			Path:     e.Path,
			Issue:    e.Message,
			Before:   "invalid or < 1",
			After:    1,
			Action:   "Clamp drop.weight to minimum of 1",
			Severity: SeveritySafe,
			Kind:     KindClampWeight,
		})
	}
	return fixes
}

// missingTagFixes proposes an empty tags list wherever the validator
// flagged the field as absent.
func missingTagFixes(_ any, res table.Result, _ config.Rules) []Fix {
	var fixes []Fix
	for _, w := range res.Warnings {
		if w.Code != table.CodeMissingTags {
			continue
		}
		fixes = append(fixes, Fix{
			Path:     w.Path,
			Issue:    "Missing tags",
			Before:   nil,
			After:    []string{},
			Action:   "Add empty tags list",
			Severity: SeveritySafe,
			Kind:     KindAddTags,
		})
	}
	return fixes
}

// rarityMismatchFixes proposes rewriting an item's declared rarity to
// the rarity key of the list that holds it.
func rarityMismatchFixes(doc any, res table.Result, _ config.Rules) []Fix {
	var fixes []Fix
	for _, e := range res.Errors {
		if e.Code != table.CodeRarityMismatch {
			continue
		}
		ref, err := table.ParseItemPath(e.Path)
		if err != nil {
			continue
		}
		var before any
		if item, found := table.LookupRawItem(doc, ref); found {
			before = item["rarity"]
		}
		fixes = append(fixes, Fix{
			Path:     e.Path,
			Issue:    e.Message,
			Before:   before,
			After:    ref.Rarity,
			Action:   "Normalize item.rarity to container rarity",
			Severity: SeverityAggressive,
			Kind:     KindNormalizeRarity,
		})
	}
	return fixes
}

// missingTierFixes flags item types that do not declare every
// canonical rarity tier.
func missingTierFixes(doc any, _ table.Result, _ config.Rules) []Fix {
	var fixes []Fix
	table.WalkTypes(doc, func(category, itemType string, rarities map[string]any) {
		var present, missing []string
		for _, r := range table.Rarities {
			if _, ok := rarities[r]; ok {
				present = append(present, r)
			} else {
				missing = append(missing, r)
			}
		}
		if len(missing) == 0 {
			return
		}
		fixes = append(fixes, Fix{
			Path:     fmt.Sprintf("$.%s.%s", category, itemType),
			Issue:    "Missing rarity tiers: " + strings.Join(missing, ", "),
			Before:   present,
			After:    table.Rarities,
			Action:   "Add empty lists for missing rarity tiers",
			Severity: SeverityAggressive,
			Kind:     KindFillRarityTiers,
		})
	})
	return fixes
}

// weightOutlierFixes flags items whose drop weight towers over their
// tier's mean and suggests a reweight toward it.
func weightOutlierFixes(doc any, _ table.Result, cfg config.Rules) []Fix {
	var fixes []Fix
	tiers := tierWeights(doc)
	for _, rarity := range sortedKeys(tiers) {
		entries := tiers[rarity]
		mean := meanWeight(entries)
		if mean <= 0 {
			continue
		}
		for _, wi := range entries {
			if float64(wi.weight) <= cfg.OutlierMultiplier*mean {
				continue
			}
			after := int64(math.Round(cfg.OutlierReweightFactor * mean))
			if after < 1 {
				after = 1
			}
			fixes = append(fixes, Fix{
				Path:     wi.ref.Path() + ".drop.weight",
				Issue:    fmt.Sprintf("drop.weight %d exceeds %.0fx the %s tier mean of %.1f", wi.weight, cfg.OutlierMultiplier, rarity, mean),
				Before:   wi.weight,
				After:    after,
				Action:   "Reweight outlier toward the tier mean",
				Severity: SeverityAggressive,
				Kind:     KindReweightOutlier,
			})
		}
	}
	return fixes
}

// curveDriftFixes compares each canonical tier's share of validated
// items against the expected rarity curve.
func curveDriftFixes(_ any, res table.Result, cfg config.Rules) []Fix {
	total := 0
	for _, r := range table.Rarities {
		total += res.Summary.RarityCounts[r]
	}
	if total == 0 {
		return nil
	}
	var fixes []Fix
	for _, r := range table.Rarities {
		expected, ok := cfg.ExpectedCurve[r]
		if !ok {
			continue
		}
		actual := 100 * float64(res.Summary.RarityCounts[r]) / float64(total)
		if math.Abs(actual-expected) < cfg.CurveDriftPoints {
			continue
		}
		fixes = append(fixes, Fix{
			Path:     "$",
			Issue:    fmt.Sprintf("%s share is %.2f%% of items, expected %.2f%%", r, actual, expected),
			Before:   round2(actual),
			After:    expected,
			Action:   "Align rarity distribution with the expected curve",
			Severity: SeverityAggressive,
			Kind:     KindAlignRarityCurve,
		})
	}
	return fixes
}

// powerCurveFixes checks that mean power climbs between adjacent
// canonical tiers. Findings are informational; there is no mechanical
// after value for a stat redesign.
func powerCurveFixes(doc any, _ table.Result, cfg config.Rules) []Fix {
	powers := tierPowers(doc, cfg.StatImpact)
	var fixes []Fix
	for i := 1; i < len(table.Rarities); i++ {
		prev, cur := table.Rarities[i-1], table.Rarities[i]
		if len(powers[prev]) == 0 || len(powers[cur]) == 0 {
			continue
		}
		pm, cm := meanFloat(powers[prev]), meanFloat(powers[cur])
		if pm == 0 && cm == 0 {
			continue
		}
		if cm >= pm*(1+cfg.PowerLift) {
			continue
		}
		fixes = append(fixes, Fix{
			Path:     "$",
			Issue:    fmt.Sprintf("%s mean power %.2f is not %.0f%% above %s mean power %.2f", cur, cm, cfg.PowerLift*100, prev, pm),
			Before:   round2(cm),
			After:    nil,
			Action:   "Review stat progression across rarity tiers",
			Severity: SeverityAggressive,
			Kind:     KindPowerCurve,
		})
	}
	return fixes
}

// legendaryPayoffFixes checks that Legendary items actually pay off
// against Epic ones.
func legendaryPayoffFixes(doc any, _ table.Result, cfg config.Rules) []Fix {
	powers := tierPowers(doc, cfg.StatImpact)
	epic, legendary := powers["Epic"], powers["Legendary"]
	if len(epic) == 0 || len(legendary) == 0 {
		return nil
	}
	em, lm := meanFloat(epic), meanFloat(legendary)
	if lm >= cfg.LegendaryPayoffRatio*em {
		return nil
	}
	return []Fix{{
		Path:     "$",
		Issue:    fmt.Sprintf("Legendary mean power %.2f is below %.2fx Epic mean power %.2f", lm, cfg.LegendaryPayoffRatio, em),
		Before:   round2(lm),
		After:    nil,
		Action:   "Raise the Legendary stat payoff",
		Severity: SeverityAggressive,
		Kind:     KindLegendaryPayoff,
	}}
}

// legendaryExposureFixes flags a table that hands out Legendary drops
// too freely.
func legendaryExposureFixes(doc any, _ table.Result, cfg config.Rules) []Fix {
	tiers := tierWeights(doc)
	var total, legendary int64
	for rarity, entries := range tiers {
		for _, wi := range entries {
			total += wi.weight
			if rarity == "Legendary" {
				legendary += wi.weight
			}
		}
	}
	if total <= 0 {
		return nil
	}
	share := float64(legendary) / float64(total)
	if share <= cfg.LegendaryShareLimit {
		return nil
	}
	return []Fix{{
		Path:     "$",
		Issue:    fmt.Sprintf("Legendary items hold %.2f%% of total drop weight, limit is %.2f%%", share*100, cfg.LegendaryShareLimit*100),
		Before:   round2(share * 100),
		After:    nil,
		Action:   "Reduce early Legendary exposure",
		Severity: SeverityAggressive,
		Kind:     KindLegendaryExposure,
	}}
}

// concentrationFixes flags tiers where a handful of heavy items crowd
// out the rest, the classic loot-fatigue shape. Tiers with at most
// ConcentrationTopN items are skipped; the measure is degenerate there.
func concentrationFixes(doc any, _ table.Result, cfg config.Rules) []Fix {
	var fixes []Fix
	tiers := tierWeights(doc)
	for _, rarity := range sortedKeys(tiers) {
		entries := tiers[rarity]
		if len(entries) <= cfg.ConcentrationTopN {
			continue
		}
		weights := make([]int64, len(entries))
		var total int64
		for i, wi := range entries {
			weights[i] = wi.weight
			total += wi.weight
		}
		if total <= 0 {
			continue
		}
		sort.Slice(weights, func(i, j int) bool { return weights[i] > weights[j] })
		var top int64
		for _, w := range weights[:cfg.ConcentrationTopN] {
			top += w
		}
		share := float64(top) / float64(total)
		if share < cfg.ConcentrationShare {
			continue
		}
		fixes = append(fixes, Fix{
			Path:     "$",
			Issue:    fmt.Sprintf("Top %d %s items carry %.2f%% of the tier's drop weight", cfg.ConcentrationTopN, rarity, share*100),
			Before:   round2(share * 100),
			After:    nil,
			Action:   "Spread drop weight across the tier",
			Severity: SeverityAggressive,
			Kind:     KindConcentration,
		})
	}
	return fixes
}

// rarityIdentityFixes flags a tier whose tag and stat vocabulary is a
// subset of the tier below it, meaning it introduces nothing new.
func rarityIdentityFixes(doc any, _ table.Result, _ config.Rules) []Fix {
	identity, counts := tierIdentity(doc)
	var fixes []Fix
	for i := 1; i < len(table.Rarities); i++ {
		prev, cur := table.Rarities[i-1], table.Rarities[i]
		if counts[prev] == 0 || counts[cur] == 0 {
			continue
		}
		if !isSubset(identity[cur], identity[prev]) {
			continue
		}
		fixes = append(fixes, Fix{
			Path:     "$",
			Issue:    fmt.Sprintf("%s introduces no tags or stats beyond %s", cur, prev),
			Before:   sortedMarkers(identity[cur]),
			After:    nil,
			Action:   "Differentiate rarity tiers with new tags or stats",
			Severity: SeverityAggressive,
			Kind:     KindRarityIdentity,
		})
	}
	return fixes
}

// unknownRarityFixes turns every unknown rarity key the validator
// counted into a strict-tier rejection.
func unknownRarityFixes(_ any, res table.Result, _ config.Rules) []Fix {
	var fixes []Fix
	for _, rarity := range sortedKeys(res.Summary.UnknownRarityCounts) {
		count := res.Summary.UnknownRarityCounts[rarity]
		fixes = append(fixes, Fix{
			Path:     "$",
			Issue:    fmt.Sprintf("Unknown rarity %q used %d times", rarity, count),
			Before:   rarity,
			After:    nil,
			Action:   "Reject or remove items with unknown rarity",
			Severity: SeverityStrict,
			Kind:     KindDropUnknownRarity,
		})
	}
	return fixes
}

type weightedItem struct {
	ref    table.ItemRef
	weight int64
}

// tierWeights groups integer drop weights by rarity key. Items whose
// weight is missing or not an integer stay out, matching how the tier
// mean is defined.
func tierWeights(doc any) map[string][]weightedItem {
	out := map[string][]weightedItem{}
	table.WalkItems(doc, func(ref table.ItemRef, item map[string]any) {
		w, ok := table.RawWeight(item)
		if !ok {
			return
		}
		out[ref.Rarity] = append(out[ref.Rarity], weightedItem{ref: ref, weight: w})
	})
	return out
}

// tierPowers collects one power score per item, grouped by rarity key.
// Items without stats score zero.
func tierPowers(doc any, impact map[string]float64) map[string][]float64 {
	out := map[string][]float64{}
	table.WalkItems(doc, func(ref table.ItemRef, item map[string]any) {
		out[ref.Rarity] = append(out[ref.Rarity], powerScore(table.RawStats(item), impact))
	})
	return out
}

// tierIdentity gathers each rarity key's tag and stat-key vocabulary
// plus its item count.
func tierIdentity(doc any) (map[string]map[string]bool, map[string]int) {
	identity := map[string]map[string]bool{}
	counts := map[string]int{}
	table.WalkItems(doc, func(ref table.ItemRef, item map[string]any) {
		counts[ref.Rarity]++
		set := identity[ref.Rarity]
		if set == nil {
			set = map[string]bool{}
			identity[ref.Rarity] = set
		}
		for _, t := range table.RawTags(item) {
			set[t] = true
		}
		for k := range table.RawStats(item) {
			set[k] = true
		}
	})
	return identity, counts
}

// powerScore sums an item's numeric stats, scaling each by its impact
// weight. Stats without an impact entry count with weight 1.
func powerScore(stats map[string]float64, impact map[string]float64) float64 {
	total := 0.0
	for name, v := range stats {
		w := 1.0
		if iw, ok := impact[name]; ok {
			w = iw
		}
		total += v * w
	}
	return total
}

func meanWeight(entries []weightedItem) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum int64
	for _, wi := range entries {
		sum += wi.weight
	}
	return float64(sum) / float64(len(entries))
}

func meanFloat(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func isSubset(sub, super map[string]bool) bool {
	for k := range sub {
		if !super[k] {
			return false
		}
	}
	return true
}

func sortedMarkers(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
