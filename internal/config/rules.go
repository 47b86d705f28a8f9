package config

// Rules holds the tunable thresholds for the balance analyzers. The
// zero value is not usable directly; call ApplyDefaults or start from
// DefaultRules.
type Rules struct {
	// OutlierMultiplier flags an item whose drop weight exceeds this
	// multiple of its rarity tier's mean weight.
	OutlierMultiplier float64 `yaml:"outlier_multiplier" json:"outlier_multiplier"`
	// OutlierReweightFactor sizes the suggested replacement weight for
	// an outlier, as a multiple of the tier mean.
	OutlierReweightFactor float64 `yaml:"outlier_reweight_factor" json:"outlier_reweight_factor"`

	// CurveDriftPoints is the tolerated deviation, in percentage
	// points, between a tier's item share and the expected curve.
	CurveDriftPoints float64 `yaml:"curve_drift_points" json:"curve_drift_points"`
	// ExpectedCurve maps each rarity to its target share of validated
	// items, in percent. The values should sum to 100.
	ExpectedCurve map[string]float64 `yaml:"expected_curve" json:"expected_curve"`

	// PowerLift is the minimum relative increase in average power
	// score expected between adjacent rarity tiers.
	PowerLift float64 `yaml:"power_lift" json:"power_lift"`
	// LegendaryPayoffRatio is the minimum ratio of Legendary average
	// power to Epic average power.
	LegendaryPayoffRatio float64 `yaml:"legendary_payoff_ratio" json:"legendary_payoff_ratio"`
	// LegendaryShareLimit caps the Legendary share of total drop
	// weight, as a fraction.
	LegendaryShareLimit float64 `yaml:"legendary_share_limit" json:"legendary_share_limit"`

	// ConcentrationTopN and ConcentrationShare flag a tier where the
	// heaviest N items carry at least this fraction of the tier's
	// weight.
	ConcentrationTopN  int     `yaml:"concentration_top_n" json:"concentration_top_n"`
	ConcentrationShare float64 `yaml:"concentration_share" json:"concentration_share"`

	// StatImpact weights individual stats when computing an item's
	// power score. Stats not listed count with weight 1. An empty map
	// weighs every stat equally.
	StatImpact map[string]float64 `yaml:"stat_impact" json:"stat_impact"`
}

func defaultCurve() map[string]float64 {
	return map[string]float64{
		"Common":    70,
		"Uncommon":  20,
		"Rare":      7,
		"Epic":      2.5,
		"Legendary": 0.5,
	}
}

// DefaultRules returns the baseline thresholds the analyzers ship with.
func DefaultRules() Rules {
	return Rules{
		OutlierMultiplier:     5.0,
		OutlierReweightFactor: 2.0,
		CurveDriftPoints:      5.0,
		ExpectedCurve:         defaultCurve(),
		PowerLift:             0.10,
		LegendaryPayoffRatio:  1.10,
		LegendaryShareLimit:   0.01,
		ConcentrationTopN:     5,
		ConcentrationShare:    0.50,
	}
}

// RelaxedRules loosens the balance thresholds for early-development
// tables where drift and outliers are expected.
func RelaxedRules() Rules {
	r := DefaultRules()
	r.OutlierMultiplier = 8.0
	r.CurveDriftPoints = 8.0
	r.PowerLift = 0.05
	r.LegendaryShareLimit = 0.02
	r.ConcentrationShare = 0.60
	return r
}

// TournamentRules tightens every threshold for competitive tables
// where the curve has to hold.
func TournamentRules() Rules {
	r := DefaultRules()
	r.OutlierMultiplier = 3.0
	r.CurveDriftPoints = 3.0
	r.PowerLift = 0.15
	r.LegendaryPayoffRatio = 1.25
	r.LegendaryShareLimit = 0.005
	r.ConcentrationShare = 0.40
	return r
}

// ApplyDefaults fills zero-valued fields so a partial YAML document
// still yields workable thresholds.
func (r *Rules) ApplyDefaults() {
	d := DefaultRules()
	if r.OutlierMultiplier == 0 {
		r.OutlierMultiplier = d.OutlierMultiplier
	}
	if r.OutlierReweightFactor == 0 {
		r.OutlierReweightFactor = d.OutlierReweightFactor
	}
	if r.CurveDriftPoints == 0 {
		r.CurveDriftPoints = d.CurveDriftPoints
	}
	if len(r.ExpectedCurve) == 0 {
		r.ExpectedCurve = d.ExpectedCurve
	}
	if r.PowerLift == 0 {
		r.PowerLift = d.PowerLift
	}
	if r.LegendaryPayoffRatio == 0 {
		r.LegendaryPayoffRatio = d.LegendaryPayoffRatio
	}
	if r.LegendaryShareLimit == 0 {
		r.LegendaryShareLimit = d.LegendaryShareLimit
	}
	if r.ConcentrationTopN == 0 {
		r.ConcentrationTopN = d.ConcentrationTopN
	}
	if r.ConcentrationShare == 0 {
		r.ConcentrationShare = d.ConcentrationShare
	}
}
