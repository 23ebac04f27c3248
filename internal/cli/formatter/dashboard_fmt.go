package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/aionboard/internal/service"
)

const phaseBarWidth = 20

// FormatDashboard renders overall and per-phase progress plus the next activity.
func FormatDashboard(d *service.Dashboard) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n\n",
		Dim("Persona:"), PersonaStyle(d.PersonaProfile.Persona).Render(d.PersonaProfile.Title),
		Dim("Day:"), StyleFg.Render(fmt.Sprintf("%d/90", d.DayOfPlan)),
		Dim("Streak:"), streakText(d.Streak)))

	if d.Empty {
		b.WriteString(Dim("Your plan has no activities yet. Regenerate it with a different frequency."))
		b.WriteString("\n")
		return RenderBox("Progress", strings.TrimRight(b.String(), "\n"))
	}

	b.WriteString(fmt.Sprintf("%s %s\n\n",
		RenderProgress(d.Percent/100, phaseBarWidth),
		Dim(fmt.Sprintf("%d of %d activities", d.Completed, d.Total))))

	rows := make([][]string, 0, len(d.Phases))
	for _, p := range d.Phases {
		pct := 0.0
		if p.Total > 0 {
			pct = float64(p.Completed) / float64(p.Total)
		}
		name := fmt.Sprintf("%d. %s", p.Phase, p.Title)
		if p.Phase == d.CurrentPhase {
			name = StyleYellow.Render("▶ " + name)
		} else {
			name = "  " + name
		}
		rows = append(rows, []string{
			name,
			RenderCompactBar(pct, 10, p.Phase != d.CurrentPhase),
			fmt.Sprintf("%d/%d", p.Completed, p.Total),
		})
	}
	b.WriteString(RenderTable([]string{"PHASE", "", "DONE"}, rows))

	b.WriteString("\n")
	if d.Next != nil {
		b.WriteString(fmt.Sprintf("%s %s %s  %s\n", Dim("Up next:"),
			Bold(d.Next.Activity.Title), TruncID(d.Next.Activity.ID), Dim(ShortDate(d.Next.Date))))
	} else {
		b.WriteString(StyleGreen.Render("Every activity in your plan is complete."))
		b.WriteString("\n")
	}

	return RenderBox("Progress", strings.TrimRight(b.String(), "\n"))
}

func streakText(days int) string {
	switch {
	case days == 0:
		return Dim("none")
	case days == 1:
		return StyleYellow.Render("1 day")
	default:
		return StyleGreen.Render(fmt.Sprintf("%d days", days))
	}
}
