package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HadleysDad/loot-api/internal/config"
	"github.com/HadleysDad/loot-api/internal/table"
)

// messyDoc carries one of everything: a weight violation, a missing
// tags field, a rarity mismatch, a partial tier set and an unknown
// rarity key.
const messyDoc = `{
	"weapons": {
		"sword": {
			"Common": [
				{"name": "Rusty Sword", "rarity": "Common", "type": "sword", "drop": {"weight": 2}, "tags": ["starter"]},
				{"name": "Broken Sword", "rarity": "Common", "type": "sword", "drop": {"weight": 0}, "tags": ["starter"]},
				{"name": "Odd Sword", "rarity": "Rare", "type": "sword", "drop": {"weight": 3}, "tags": ["starter"]},
				{"name": "Bare Blade", "rarity": "Common", "type": "sword", "drop": {"weight": 5}}
			],
			"Mythic": [
				{"name": "Myth A", "rarity": "Mythic", "type": "sword", "drop": {"weight": 1}, "tags": ["myth"]},
				{"name": "Myth B", "rarity": "Mythic", "type": "sword", "drop": {"weight": 1}, "tags": ["myth"]},
				{"name": "Myth C", "rarity": "Mythic", "type": "sword", "drop": {"weight": 1}, "tags": ["myth"]}
			]
		}
	}
}`

func messyPreview(t *testing.T, profile string) (any, table.Result, Preview) {
	t.Helper()
	doc := decodeDoc(t, messyDoc)
	res := table.Validate(doc)
	p, err := BuildPreview(doc, res, config.DefaultRules(), profile)
	require.NoError(t, err)
	return doc, res, p
}

func TestBuildPreviewSafeProfile(t *testing.T) {
	_, res, p := messyPreview(t, "safe")

	assert.Equal(t, SeveritySafe, p.Profile)
	assert.True(t, p.WouldApply)
	require.Len(t, p.Fixes, 2)
	for _, fix := range p.Fixes {
		assert.Equal(t, SeveritySafe, fix.Severity)
	}
	assert.Equal(t, KindClampWeight, p.Fixes[0].Kind)
	assert.Equal(t, KindAddTags, p.Fixes[1].Kind)

	assert.Equal(t, 2, p.Summary.ApplicableFixes)
	assert.Greater(t, p.Summary.TotalDetectedIssues, p.Summary.ApplicableFixes,
		"aggressive and strict findings still count as detected")

	require.Len(t, p.Warnings, len(res.Warnings))
	for i, w := range res.Warnings {
		assert.Equal(t, w.Message, p.Warnings[i])
	}
}

func TestBuildPreviewAddTagsFix(t *testing.T) {
	_, _, p := messyPreview(t, "safe")

	var tagFix *Fix
	for i := range p.Fixes {
		if p.Fixes[i].Kind == KindAddTags {
			tagFix = &p.Fixes[i]
		}
	}
	require.NotNil(t, tagFix)
	assert.Equal(t, "$.weapons.sword.Common[3]", tagFix.Path)
	assert.Equal(t, "Add empty tags list", tagFix.Action)
	assert.Equal(t, []string{}, tagFix.After)
}

func TestBuildPreviewStrictIncludesUnknownRarity(t *testing.T) {
	_, _, p := messyPreview(t, "strict")

	var rejection *Fix
	for i := range p.Fixes {
		if p.Fixes[i].Kind == KindDropUnknownRarity {
			rejection = &p.Fixes[i]
		}
	}
	require.NotNil(t, rejection)
	assert.Equal(t, SeverityStrict, rejection.Severity)
	assert.Contains(t, rejection.Issue, "Mythic")
	assert.Contains(t, rejection.Issue, "3")
	assert.Equal(t, "Mythic", rejection.Before)
	assert.Nil(t, rejection.After)
}

func TestBuildPreviewSeverityMonotonicity(t *testing.T) {
	_, _, safe := messyPreview(t, "safe")
	_, _, aggressive := messyPreview(t, "aggressive")
	_, _, strict := messyPreview(t, "strict")

	assertFixSuperset(t, aggressive.Fixes, safe.Fixes)
	assertFixSuperset(t, strict.Fixes, aggressive.Fixes)

	assert.Equal(t, safe.Summary.TotalDetectedIssues, strict.Summary.TotalDetectedIssues,
		"detection does not depend on the profile")
	assert.LessOrEqual(t, safe.Summary.ApplicableFixes, aggressive.Summary.ApplicableFixes)
	assert.LessOrEqual(t, aggressive.Summary.ApplicableFixes, strict.Summary.ApplicableFixes)
}

func assertFixSuperset(t *testing.T, super, sub []Fix) {
	t.Helper()
	seen := map[string]bool{}
	for _, f := range super {
		seen[f.Path+"|"+string(f.Kind)+"|"+f.Issue] = true
	}
	for _, f := range sub {
		if !seen[f.Path+"|"+string(f.Kind)+"|"+f.Issue] {
			t.Fatalf("fix %s (%s) missing from wider profile", f.Path, f.Kind)
		}
	}
}

func TestBuildPreviewInvalidProfile(t *testing.T) {
	doc := decodeDoc(t, messyDoc)
	res := table.Validate(doc)

	_, err := BuildPreview(doc, res, config.DefaultRules(), "yolo")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "yolo")
}

func TestBuildPreviewCleanTableHasNoSafeFixes(t *testing.T) {
	doc := decodeDoc(t, `{
		"weapons": {"sword": {"Common": [
			{"name": "Plain Sword", "rarity": "Common", "type": "sword", "drop": {"weight": 3}, "tags": ["starter"]}
		]}}
	}`)
	res := table.Validate(doc)
	require.True(t, res.Valid)

	p, err := BuildPreview(doc, res, config.DefaultRules(), "safe")
	require.NoError(t, err)
	assert.False(t, p.WouldApply)
	assert.Empty(t, p.Fixes)
	assert.Empty(t, p.Warnings)
}

func TestLoadProfile(t *testing.T) {
	for _, name := range []string{"safe", "aggressive", "strict"} {
		p, err := LoadProfile(name)
		if err != nil {
			t.Fatalf("LoadProfile(%q): %v", name, err)
		}
		if string(p) != name {
			t.Fatalf("LoadProfile(%q) = %q", name, p)
		}
	}

	_, err := LoadProfile("reckless")
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestProfileCapabilities(t *testing.T) {
	assert.True(t, SeveritySafe.Capabilities().Apply, "only safe may apply")
	assert.False(t, SeverityAggressive.Capabilities().Apply)
	assert.False(t, SeverityStrict.Capabilities().Apply)
	assert.True(t, SeverityStrict.Capabilities().RemovesItems)
	assert.Equal(t, SeveritySafe.Capabilities(), Severity("bogus").Capabilities(),
		"unknown profiles fall back to the most restrictive record")
}

func TestSeverityRank(t *testing.T) {
	if SeveritySafe.Rank() >= SeverityAggressive.Rank() {
		t.Fatal("safe must rank below aggressive")
	}
	if SeverityAggressive.Rank() >= SeverityStrict.Rank() {
		t.Fatal("aggressive must rank below strict")
	}
	if Severity("mystery").Rank() <= SeverityStrict.Rank() {
		t.Fatal("unknown severities must never pass a strict filter")
	}
}
