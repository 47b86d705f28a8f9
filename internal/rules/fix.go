package rules

// Kind names the mutation a fix proposes. The apply engine dispatches
// on it with a closed switch, so the human-readable action text stays
// free to change.
type Kind string

const (
	KindClampWeight       Kind = "clamp_weight"
	KindAddTags           Kind = "add_tags"
	KindNormalizeRarity   Kind = "normalize_rarity"
	KindFillRarityTiers   Kind = "fill_rarity_tiers"
	KindReweightOutlier   Kind = "reweight_outlier"
	KindAlignRarityCurve  Kind = "align_rarity_curve"
	KindPowerCurve        Kind = "power_curve"
	KindLegendaryPayoff   Kind = "legendary_payoff"
	KindLegendaryExposure Kind = "legendary_exposure"
	KindConcentration     Kind = "weight_concentration"
	KindRarityIdentity    Kind = "rarity_identity"
	KindDropUnknownRarity Kind = "drop_unknown_rarity"
)

// Fix is one detected issue plus its proposed remediation. Before and
// After are opaque: sometimes concrete values, sometimes a measured
// statistic, nil when the finding is informational.
type Fix struct {
	Path     string   `json:"path"`
	Issue    string   `json:"issue"`
	Before   any      `json:"before"`
	After    any      `json:"after"`
	Action   string   `json:"action"`
	Severity Severity `json:"severity"`
	Kind     Kind     `json:"kind"`
}

// PreviewSummary counts findings before and after profile filtering.
type PreviewSummary struct {
	TotalDetectedIssues int `json:"total_detected_issues"`
	ApplicableFixes     int `json:"applicable_fixes"`
}

// Preview is the set of fixes applicable under a requested profile,
// with the validation warnings carried through unchanged.
type Preview struct {
	Profile    Severity       `json:"profile"`
	WouldApply bool           `json:"would_apply"`
	Summary    PreviewSummary `json:"summary"`
	Fixes      []Fix          `json:"fixes"`
	Warnings   []string       `json:"warnings"`
}
