package config

import (
	"os"
	"strconv"
)

var rulesEnvKeys = []string{
	"LOOT_RULES_PRESET",
	"LOOT_OUTLIER_MULTIPLIER",
	"LOOT_OUTLIER_REWEIGHT_FACTOR",
	"LOOT_CURVE_DRIFT_POINTS",
	"LOOT_POWER_LIFT",
	"LOOT_LEGENDARY_PAYOFF_RATIO",
	"LOOT_LEGENDARY_SHARE_LIMIT",
	"LOOT_CONCENTRATION_TOP_N",
	"LOOT_CONCENTRATION_SHARE",
}

// HasRulesEnv reports whether any analyzer threshold is set through the
// environment. When it is, the environment replaces the file-configured
// rules wholesale.
func HasRulesEnv() bool {
	for _, key := range rulesEnvKeys {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// RulesFromEnv loads analyzer thresholds from environment variables.
// Falls back to defaults if variables are not set.
func RulesFromEnv() Rules {
	r := DefaultRules()

	if val := getEnvFloat("LOOT_OUTLIER_MULTIPLIER"); val > 0 {
		r.OutlierMultiplier = val
	}
	if val := getEnvFloat("LOOT_OUTLIER_REWEIGHT_FACTOR"); val > 0 {
		r.OutlierReweightFactor = val
	}
	if val := getEnvFloat("LOOT_CURVE_DRIFT_POINTS"); val > 0 {
		r.CurveDriftPoints = val
	}
	if val := getEnvFloat("LOOT_POWER_LIFT"); val > 0 {
		r.PowerLift = val
	}
	if val := getEnvFloat("LOOT_LEGENDARY_PAYOFF_RATIO"); val > 0 {
		r.LegendaryPayoffRatio = val
	}
	if val := getEnvFloat("LOOT_LEGENDARY_SHARE_LIMIT"); val > 0 {
		r.LegendaryShareLimit = val
	}
	if val := getEnvInt("LOOT_CONCENTRATION_TOP_N"); val > 0 {
		r.ConcentrationTopN = val
	}
	if val := getEnvFloat("LOOT_CONCENTRATION_SHARE"); val > 0 {
		r.ConcentrationShare = val
	}

	// Support preset modes
	if mode := os.Getenv("LOOT_RULES_PRESET"); mode != "" {
		switch mode {
		case "relaxed":
			return RelaxedRules()
		case "tournament":
			return TournamentRules()
		}
	}

	return r
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}
