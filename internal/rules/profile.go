package rules

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is returned when a caller names a profile outside
// safe, aggressive and strict.
var ErrInvalidProfile = errors.New("invalid auto-correct profile")

// Capabilities describes what a profile is allowed to do with its
// findings. Only safe ever carries Apply; that is a hard rule, not a
// default.
type Capabilities struct {
	Preview       bool   `json:"preview"`
	Apply         bool   `json:"apply"`
	Export        bool   `json:"export"`
	ChangesRarity bool   `json:"changes_rarity"`
	RemovesItems  bool   `json:"removes_items"`
	Description   string `json:"description"`
}

var profileCapabilities = map[Severity]Capabilities{
	SeveritySafe: {
		Preview:     true,
		Apply:       true,
		Description: "Non-destructive fixes only (weights, missing optional fields).",
	},
	SeverityAggressive: {
		Preview:       true,
		ChangesRarity: true,
		Description:   "Structural normalization and balance fixes (preview-only).",
	},
	SeverityStrict: {
		Preview:       true,
		ChangesRarity: true,
		RemovesItems:  true,
		Description:   "CI-grade enforcement with strict schema rules.",
	},
}

// LoadProfile resolves a profile name, failing with ErrInvalidProfile
// for anything outside the three known tiers.
func LoadProfile(name string) (Severity, error) {
	p := Severity(name)
	if _, ok := profileCapabilities[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidProfile, name)
	}
	return p, nil
}

// Capabilities returns the capability record for a profile. Unknown
// profiles fall back to the safe record, the most restrictive one.
func (s Severity) Capabilities() Capabilities {
	if caps, ok := profileCapabilities[s]; ok {
		return caps
	}
	return profileCapabilities[SeveritySafe]
}

// Profiles lists the known profile names in severity order.
func Profiles() []Severity {
	return []Severity{SeveritySafe, SeverityAggressive, SeverityStrict}
}
