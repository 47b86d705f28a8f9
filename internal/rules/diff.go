package rules

// DiffEntry is one fix rendered in the compact change-list shape.
type DiffEntry struct {
	Path     string   `json:"path"`
	Severity Severity `json:"severity"`
	Issue    string   `json:"issue"`
	Before   any      `json:"before"`
	After    any      `json:"after"`
	Action   string   `json:"action"`
}

// Diff is an apply-agnostic rendering of a preview's fixes.
type Diff struct {
	Profile   Severity    `json:"profile"`
	DiffCount int         `json:"diff_count"`
	Diffs     []DiffEntry `json:"diffs"`
}

// BuildDiff projects a preview into its change list. It adds no
// filtering; the preview already applied the profile.
func BuildDiff(p Preview) Diff {
	diffs := make([]DiffEntry, 0, len(p.Fixes))
	for _, fix := range p.Fixes {
		diffs = append(diffs, DiffEntry{
			Path:     fix.Path,
			Severity: fix.Severity,
			Issue:    fix.Issue,
			Before:   fix.Before,
			After:    fix.After,
			Action:   fix.Action,
		})
	}
	return Diff{
		Profile:   p.Profile,
		DiffCount: len(diffs),
		Diffs:     diffs,
	}
}
