// Package style renders deplift's run report for the terminal.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/deplift/deplift/pkg/nestedstack"
)

var (
	// TitleStyle renders section headings.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// MutedStyle renders secondary details like skip reasons.
	MutedStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle renders fatal error messages.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// OutcomeStyle returns the pterm style for a function outcome.
func OutcomeStyle(outcome nestedstack.Outcome) *pterm.Style {
	switch outcome {
	case nestedstack.OutcomeLayerAdded:
		return pterm.NewStyle(pterm.FgGreen)
	default:
		return pterm.NewStyle(pterm.FgYellow)
	}
}

// outcomeLabel is the human-readable label per outcome.
func outcomeLabel(outcome nestedstack.Outcome) string {
	switch outcome {
	case nestedstack.OutcomeLayerAdded:
		return "layer added"
	case nestedstack.OutcomeSkippedPackageType:
		return "skipped (image-packaged)"
	case nestedstack.OutcomeSkippedResourceType:
		return "skipped (unsupported resource type)"
	case nestedstack.OutcomeSkippedNotBuilt:
		return "skipped (not built)"
	case nestedstack.OutcomeSkippedRuntime:
		return "skipped (unsupported runtime)"
	case nestedstack.OutcomeSkippedNoDependencies:
		return "skipped (no dependency directory)"
	default:
		return string(outcome)
	}
}
