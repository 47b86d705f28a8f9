// Package rules turns a validated loot table into correction
// proposals. A fixed battery of analyzers inspects the table and the
// validation report, each finding carries a severity, and a requested
// profile bounds which findings are surfaced. Only the safe tier may
// ever be applied; apply works on a deep copy and never fails.
package rules

// Severity orders fixes from harmless to destructive. It doubles as
// the profile name a caller requests, since a profile is exactly a
// severity ceiling.
type Severity string

const (
	SeveritySafe       Severity = "safe"
	SeverityAggressive Severity = "aggressive"
	SeverityStrict     Severity = "strict"
)

// Rank places a severity in the safe < aggressive < strict order.
// Unknown severities rank above strict so a filter never admits them.
func (s Severity) Rank() int {
	switch s {
	case SeveritySafe:
		return 1
	case SeverityAggressive:
		return 2
	case SeverityStrict:
		return 3
	default:
		return 4
	}
}
