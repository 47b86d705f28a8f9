package rules

import (
	"github.com/HadleysDad/loot-api/internal/config"
	"github.com/HadleysDad/loot-api/internal/table"
)

// BuildPreview runs the analyzer battery over a raw loot-table
// document and its validation result, then filters the findings down
// to what the requested profile may see. A fix's severity is set by
// its analyzer at creation time; the profile only draws the line.
func BuildPreview(doc any, res table.Result, cfg config.Rules, profile string) (Preview, error) {
	prof, err := LoadProfile(profile)
	if err != nil {
		return Preview{}, err
	}

	var fixes []Fix
	for _, analyze := range battery {
		fixes = append(fixes, analyze(doc, res, cfg)...)
	}

	applicable := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		if f.Severity.Rank() <= prof.Rank() {
			applicable = append(applicable, f)
		}
	}

	warnings := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		warnings = append(warnings, w.Message)
	}

	return Preview{
		Profile:    prof,
		WouldApply: len(applicable) > 0,
		Summary: PreviewSummary{
			TotalDetectedIssues: len(fixes),
			ApplicableFixes:     len(applicable),
		},
		Fixes:    applicable,
		Warnings: warnings,
	}, nil
}
