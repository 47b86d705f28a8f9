package simulate

// Multipliers derives per-rarity weight multipliers that would steer
// an observed distribution toward the requested target shares, both in
// percent. Tiers that never dropped carry no signal and are skipped,
// as are non-positive targets.
func Multipliers(observed Report, target map[string]float64) map[string]float64 {
	out := map[string]float64{}
	for rarity, want := range target {
		got := observed.Rarity.Percent[rarity]
		if got <= 0 || want <= 0 {
			continue
		}
		out[rarity] = round2(want / got)
	}
	return out
}
