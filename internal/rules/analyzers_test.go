package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HadleysDad/loot-api/internal/config"
	"github.com/HadleysDad/loot-api/internal/table"
)

func decodeDoc(t *testing.T, src string) any {
	t.Helper()
	doc, err := table.DecodeJSON(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func swordItem(name, rarity string, weight int) map[string]any {
	return map[string]any{
		"name":   name,
		"rarity": rarity,
		"type":   "sword",
		"drop":   map[string]any{"weight": weight},
		"tags":   []any{},
	}
}

func withStats(item map[string]any, stats map[string]any) map[string]any {
	item["stats"] = stats
	return item
}

func withTags(item map[string]any, tags ...string) map[string]any {
	list := make([]any, len(tags))
	for i, tag := range tags {
		list[i] = tag
	}
	item["tags"] = list
	return item
}

func weaponDoc(tiers map[string][]any) map[string]any {
	node := map[string]any{}
	for rarity, items := range tiers {
		node[rarity] = items
	}
	return map[string]any{"weapons": map[string]any{"sword": node}}
}

func TestWeightClampFixes(t *testing.T) {
	doc := decodeDoc(t, `{
		"weapons": {"sword": {"Common": [
			{"name": "Zero", "rarity": "Common", "type": "sword", "drop": {"weight": 0}, "tags": []},
			{"name": "Half", "rarity": "Common", "type": "sword", "drop": {"weight": 2.5}, "tags": []},
			{"name": "Fine", "rarity": "Common", "type": "sword", "drop": {"weight": 2}, "tags": []}
		]}}
	}`)
	res := table.Validate(doc)

	fixes := weightClampFixes(doc, res, config.DefaultRules())
	require.Len(t, fixes, 2)
	for _, fix := range fixes {
		assert.Equal(t, SeveritySafe, fix.Severity)
		assert.Equal(t, KindClampWeight, fix.Kind)
		assert.Equal(t, 1, fix.After)
		assert.Equal(t, "Clamp drop.weight to minimum of 1", fix.Action)
	}
	assert.Equal(t, "$.weapons.sword.Common[0].drop.weight", fixes[0].Path)
	assert.Equal(t, "$.weapons.sword.Common[1].drop.weight", fixes[1].Path)
}

func TestMissingTagFixes(t *testing.T) {
	bare := swordItem("Bare", "Common", 2)
	delete(bare, "tags")
	doc := weaponDoc(map[string][]any{"Common": {bare, swordItem("Tagged", "Common", 2)}})
	res := table.Validate(doc)

	fixes := missingTagFixes(doc, res, config.DefaultRules())
	require.Len(t, fixes, 1)
	assert.Equal(t, "$.weapons.sword.Common[0]", fixes[0].Path)
	assert.Equal(t, "Missing tags", fixes[0].Issue)
	assert.Nil(t, fixes[0].Before)
	assert.Equal(t, []string{}, fixes[0].After)
	assert.Equal(t, SeveritySafe, fixes[0].Severity)
	assert.Equal(t, KindAddTags, fixes[0].Kind)
}

func TestRarityMismatchFixes(t *testing.T) {
	doc := weaponDoc(map[string][]any{"Common": {swordItem("Stray", "Rare", 2)}})
	res := table.Validate(doc)

	fixes := rarityMismatchFixes(doc, res, config.DefaultRules())
	require.Len(t, fixes, 1)
	assert.Equal(t, "$.weapons.sword.Common[0].rarity", fixes[0].Path)
	assert.Equal(t, "Rare", fixes[0].Before)
	assert.Equal(t, "Common", fixes[0].After)
	assert.Equal(t, SeverityAggressive, fixes[0].Severity)
	assert.Equal(t, KindNormalizeRarity, fixes[0].Kind)
}

func TestMissingTierFixes(t *testing.T) {
	t.Run("partial tier set", func(t *testing.T) {
		doc := weaponDoc(map[string][]any{
			"Common": {swordItem("A", "Common", 1)},
			"Rare":   {swordItem("B", "Rare", 1)},
		})
		fixes := missingTierFixes(doc, table.Result{}, config.DefaultRules())
		require.Len(t, fixes, 1)
		assert.Equal(t, "$.weapons.sword", fixes[0].Path)
		assert.Equal(t, "Missing rarity tiers: Uncommon, Epic, Legendary", fixes[0].Issue)
		assert.Equal(t, []string{"Common", "Rare"}, fixes[0].Before)
		assert.Equal(t, table.Rarities, fixes[0].After)
		assert.Equal(t, KindFillRarityTiers, fixes[0].Kind)
	})

	t.Run("full tier set", func(t *testing.T) {
		tiers := map[string][]any{}
		for _, r := range table.Rarities {
			tiers[r] = []any{swordItem(r+" Sword", r, 1)}
		}
		fixes := missingTierFixes(weaponDoc(tiers), table.Result{}, config.DefaultRules())
		assert.Empty(t, fixes)
	})
}

func TestWeightOutlierFixes(t *testing.T) {
	items := []any{
		swordItem("A", "Common", 1),
		swordItem("B", "Common", 1),
		swordItem("C", "Common", 1),
		swordItem("D", "Common", 1),
		swordItem("E", "Common", 1),
		swordItem("Whale", "Common", 55),
	}
	doc := weaponDoc(map[string][]any{"Common": items})

	fixes := weightOutlierFixes(doc, table.Result{}, config.DefaultRules())
	require.Len(t, fixes, 1, "mean 10, threshold 50, only the 55 qualifies")
	assert.Equal(t, "$.weapons.sword.Common[5].drop.weight", fixes[0].Path)
	assert.Equal(t, int64(55), fixes[0].Before)
	assert.Equal(t, int64(20), fixes[0].After, "round(2 x mean 10)")
	assert.Equal(t, SeverityAggressive, fixes[0].Severity)
	assert.Equal(t, KindReweightOutlier, fixes[0].Kind)
}

func TestWeightOutlierNeedsSpread(t *testing.T) {
	doc := weaponDoc(map[string][]any{"Common": {
		swordItem("A", "Common", 10),
		swordItem("B", "Common", 40),
	}})
	fixes := weightOutlierFixes(doc, table.Result{}, config.DefaultRules())
	assert.Empty(t, fixes, "40 is under 5x the mean of 25")
}

func TestCurveDriftFixes(t *testing.T) {
	res := table.Result{Summary: table.Summary{RarityCounts: map[string]int{
		"Common": 10, "Uncommon": 0, "Rare": 0, "Epic": 0, "Legendary": 0,
	}}}

	fixes := curveDriftFixes(nil, res, config.DefaultRules())
	require.Len(t, fixes, 3, "Common, Uncommon and Rare drift past 5 points; Epic and Legendary stay inside")
	assert.Equal(t, "Common share is 100.00% of items, expected 70.00%", fixes[0].Issue)
	assert.Equal(t, 100.0, fixes[0].Before)
	assert.Equal(t, 70.0, fixes[0].After)
	assert.Equal(t, KindAlignRarityCurve, fixes[0].Kind)
}

func TestCurveDriftQuietOnBalancedCounts(t *testing.T) {
	res := table.Result{Summary: table.Summary{RarityCounts: map[string]int{
		"Common": 70, "Uncommon": 20, "Rare": 7, "Epic": 2, "Legendary": 1,
	}}}
	assert.Empty(t, curveDriftFixes(nil, res, config.DefaultRules()))
}

func TestCurveDriftSkipsEmptyTable(t *testing.T) {
	res := table.Result{Summary: table.Summary{RarityCounts: map[string]int{}}}
	assert.Nil(t, curveDriftFixes(nil, res, config.DefaultRules()))
}

func TestPowerCurveFixes(t *testing.T) {
	doc := weaponDoc(map[string][]any{
		"Common":   {withStats(swordItem("A", "Common", 1), map[string]any{"attack": 10})},
		"Uncommon": {withStats(swordItem("B", "Uncommon", 1), map[string]any{"attack": 10.5})},
		"Rare":     {withStats(swordItem("C", "Rare", 1), map[string]any{"attack": 20})},
	})

	fixes := powerCurveFixes(doc, table.Result{}, config.DefaultRules())
	require.Len(t, fixes, 1, "10 -> 10.5 misses the 10% lift; 10.5 -> 20 clears it")
	assert.Equal(t, "Uncommon mean power 10.50 is not 10% above Common mean power 10.00", fixes[0].Issue)
	assert.Equal(t, 10.5, fixes[0].Before)
	assert.Nil(t, fixes[0].After)
	assert.Equal(t, KindPowerCurve, fixes[0].Kind)
}

func TestPowerCurveSkipsStatlessPairs(t *testing.T) {
	doc := weaponDoc(map[string][]any{
		"Common":   {swordItem("A", "Common", 1)},
		"Uncommon": {swordItem("B", "Uncommon", 1)},
	})
	assert.Empty(t, powerCurveFixes(doc, table.Result{}, config.DefaultRules()), "both means zero is not a regression")
}

func TestPowerScoreHonorsImpactWeights(t *testing.T) {
	stats := map[string]float64{"attack": 10, "defense": 5}
	impact := map[string]float64{"attack": 2}
	assert.Equal(t, 25.0, powerScore(stats, impact))
	assert.Equal(t, 15.0, powerScore(stats, nil), "unweighted stats count once")
}

func TestLegendaryPayoffFixes(t *testing.T) {
	t.Run("below ratio", func(t *testing.T) {
		doc := weaponDoc(map[string][]any{
			"Epic":      {withStats(swordItem("E", "Epic", 1), map[string]any{"attack": 100})},
			"Legendary": {withStats(swordItem("L", "Legendary", 1), map[string]any{"attack": 105})},
		})
		fixes := legendaryPayoffFixes(doc, table.Result{}, config.DefaultRules())
		require.Len(t, fixes, 1)
		assert.Equal(t, "Legendary mean power 105.00 is below 1.10x Epic mean power 100.00", fixes[0].Issue)
		assert.Equal(t, KindLegendaryPayoff, fixes[0].Kind)
	})

	t.Run("ratio met", func(t *testing.T) {
		doc := weaponDoc(map[string][]any{
			"Epic":      {withStats(swordItem("E", "Epic", 1), map[string]any{"attack": 100})},
			"Legendary": {withStats(swordItem("L", "Legendary", 1), map[string]any{"attack": 115})},
		})
		assert.Empty(t, legendaryPayoffFixes(doc, table.Result{}, config.DefaultRules()))
	})

	t.Run("tier missing", func(t *testing.T) {
		doc := weaponDoc(map[string][]any{
			"Legendary": {withStats(swordItem("L", "Legendary", 1), map[string]any{"attack": 5})},
		})
		assert.Empty(t, legendaryPayoffFixes(doc, table.Result{}, config.DefaultRules()))
	})
}

func TestLegendaryExposureFixes(t *testing.T) {
	doc := weaponDoc(map[string][]any{
		"Common":    {swordItem("C", "Common", 99)},
		"Legendary": {swordItem("L", "Legendary", 2)},
	})
	fixes := legendaryExposureFixes(doc, table.Result{}, config.DefaultRules())
	require.Len(t, fixes, 1, "2 of 101 is just under 2%, over the 1% limit")
	assert.Equal(t, "Legendary items hold 1.98% of total drop weight, limit is 1.00%", fixes[0].Issue)
	assert.Equal(t, 1.98, fixes[0].Before)
	assert.Equal(t, KindLegendaryExposure, fixes[0].Kind)

	quiet := weaponDoc(map[string][]any{
		"Common":    {swordItem("C", "Common", 999)},
		"Legendary": {swordItem("L", "Legendary", 1)},
	})
	assert.Empty(t, legendaryExposureFixes(quiet, table.Result{}, config.DefaultRules()))
}

func TestConcentrationFixes(t *testing.T) {
	heavy := []any{}
	for i := 0; i < 5; i++ {
		heavy = append(heavy, swordItem("Heavy", "Common", 10))
	}
	for i := 0; i < 15; i++ {
		heavy = append(heavy, swordItem("Light", "Common", 1))
	}
	doc := weaponDoc(map[string][]any{"Common": heavy})

	fixes := concentrationFixes(doc, table.Result{}, config.DefaultRules())
	require.Len(t, fixes, 1, "top 5 carry 50 of 65")
	assert.Equal(t, "Top 5 Common items carry 76.92% of the tier's drop weight", fixes[0].Issue)
	assert.Equal(t, KindConcentration, fixes[0].Kind)
}

func TestConcentrationQuietCases(t *testing.T) {
	t.Run("even spread", func(t *testing.T) {
		even := []any{}
		for i := 0; i < 20; i++ {
			even = append(even, swordItem("Even", "Common", 1))
		}
		doc := weaponDoc(map[string][]any{"Common": even})
		assert.Empty(t, concentrationFixes(doc, table.Result{}, config.DefaultRules()))
	})

	t.Run("tiny tier skipped", func(t *testing.T) {
		doc := weaponDoc(map[string][]any{"Common": {
			swordItem("A", "Common", 1000),
			swordItem("B", "Common", 1),
		}})
		assert.Empty(t, concentrationFixes(doc, table.Result{}, config.DefaultRules()))
	})
}

func TestRarityIdentityFixes(t *testing.T) {
	t.Run("stale tier flagged", func(t *testing.T) {
		doc := weaponDoc(map[string][]any{
			"Common":   {withStats(withTags(swordItem("A", "Common", 1), "basic"), map[string]any{"attack": 1})},
			"Uncommon": {withStats(withTags(swordItem("B", "Uncommon", 1), "basic"), map[string]any{"attack": 2})},
		})
		fixes := rarityIdentityFixes(doc, table.Result{}, config.DefaultRules())
		require.Len(t, fixes, 1)
		assert.Equal(t, "Uncommon introduces no tags or stats beyond Common", fixes[0].Issue)
		assert.Equal(t, []string{"attack", "basic"}, fixes[0].Before)
		assert.Equal(t, KindRarityIdentity, fixes[0].Kind)
	})

	t.Run("new marker clears it", func(t *testing.T) {
		doc := weaponDoc(map[string][]any{
			"Common":   {withTags(swordItem("A", "Common", 1), "basic")},
			"Uncommon": {withTags(swordItem("B", "Uncommon", 1), "basic", "glowing")},
		})
		assert.Empty(t, rarityIdentityFixes(doc, table.Result{}, config.DefaultRules()))
	})

	t.Run("empty tiers skipped", func(t *testing.T) {
		doc := weaponDoc(map[string][]any{
			"Common": {withTags(swordItem("A", "Common", 1), "basic")},
		})
		assert.Empty(t, rarityIdentityFixes(doc, table.Result{}, config.DefaultRules()))
	})
}

func TestUnknownRarityFixes(t *testing.T) {
	res := table.Result{Summary: table.Summary{UnknownRarityCounts: map[string]int{
		"Zeta":  1,
		"Alpha": 2,
	}}}

	fixes := unknownRarityFixes(nil, res, config.DefaultRules())
	require.Len(t, fixes, 2)
	assert.Equal(t, `Unknown rarity "Alpha" used 2 times`, fixes[0].Issue)
	assert.Equal(t, `Unknown rarity "Zeta" used 1 times`, fixes[1].Issue)
	for _, fix := range fixes {
		assert.Equal(t, "$", fix.Path)
		assert.Nil(t, fix.After)
		assert.Equal(t, SeverityStrict, fix.Severity)
		assert.Equal(t, KindDropUnknownRarity, fix.Kind)
	}
}
