package style

import (
	"github.com/pterm/pterm"
)

// Status of a managed entry as shown by `doty status`
type Status string

const (
	StatusComplete Status = "complete" // file stored and link in place
	StatusPending  Status = "pending"  // not captured yet
	StatusDrifted  Status = "drifted"  // captured, but the link disagrees
	StatusBroken   Status = "broken"   // cannot be acted on
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusComplete:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusPending:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusDrifted:
		return pterm.NewStyle(pterm.FgCyan)
	case StatusBroken:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusSymbol is the unstyled one-character marker for a status
func StatusSymbol(status Status) string {
	switch status {
	case StatusComplete:
		return "✓"
	case StatusBroken:
		return "✗"
	case StatusDrifted:
		return "!"
	default:
		return "○"
	}
}

// Aggregate folds entry statuses into one: broken beats drifted beats
// pending beats complete.
func Aggregate(statuses []Status) Status {
	rank := map[Status]int{StatusComplete: 0, StatusPending: 1, StatusDrifted: 2, StatusBroken: 3}
	out := StatusComplete
	for _, s := range statuses {
		if rank[s] > rank[out] {
			out = s
		}
	}
	return out
}
