package style

import (
	"fmt"
	"strings"

	"github.com/deplift/deplift/pkg/nestedstack"
)

// RenderReport renders the run report as a per-function summary.
func RenderReport(report nestedstack.Report) string {
	if len(report) == 0 {
		return MutedStyle.Render("No functions found in template")
	}

	color := UseColor()
	var b strings.Builder

	heading := "Dependency layer extraction"
	if color {
		heading = TitleStyle.Render(heading)
	}
	b.WriteString(heading + "\n\n")

	for _, fr := range report {
		label := outcomeLabel(fr.Outcome)
		if color {
			label = OutcomeStyle(fr.Outcome).Sprint(label)
		}

		line := fmt.Sprintf("  %-32s %s", fr.Function, label)
		if fr.LayerLogicalID != "" {
			detail := fmt.Sprintf(" -> %s", fr.LayerLogicalID)
			if color {
				detail = MutedStyle.Render(detail)
			}
			line += detail
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d of %d function(s) received a dependency layer\n", report.Added(), len(report)))

	return b.String()
}
