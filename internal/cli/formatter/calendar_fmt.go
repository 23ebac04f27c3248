package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/aionboard/internal/domain"
)

// FormatCalendar groups scheduled activities by week, one line per activity.
func FormatCalendar(entries []domain.ScheduledActivity, done map[string]bool, now time.Time) string {
	if len(entries) == 0 {
		return Dim("Nothing scheduled in this range.") + "\n"
	}
	var b strings.Builder
	week := -1
	for _, e := range entries {
		w := (e.Day - 1) / 7
		if w != week {
			if week != -1 {
				b.WriteString("\n")
			}
			week = w
			b.WriteString(StyleHeader.Render(fmt.Sprintf("Week %d", w+1)))
			b.WriteString(Dim(fmt.Sprintf("  · Phase %d", e.Phase)))
			b.WriteString("\n")
		}
		mark := StyleDim.Render("○")
		if done[e.Activity.ID] {
			mark = StyleGreen.Render("✔")
		}
		b.WriteString(fmt.Sprintf("  %s %-10s %s  %s  %s\n",
			mark,
			ShortDate(e.Date),
			Bold(e.Activity.Title),
			Dim(FormatMinutes(e.Activity.DurationMin)),
			DueStyled(e.Date, now)))
	}
	return b.String()
}

// FormatTimeline renders the plan as a vertical timeline of phases, with a
// marker for where today falls.
func FormatTimeline(rec *domain.PlanRecord, done map[string]bool, now time.Time) string {
	var b strings.Builder
	today := now.Sub(rec.StartDate).Hours() / 24
	for i, ph := range rec.Plan.Phases() {
		n := i + 1
		from := rec.StartDate.AddDate(0, 0, i*domain.PhaseDays)
		to := from.AddDate(0, 0, domain.PhaseDays-1)
		completed := 0
		for _, a := range ph.Activities {
			if done[a.ID] {
				completed++
			}
		}
		marker := StyleDim.Render("│")
		if today >= float64(i*domain.PhaseDays) && today < float64(n*domain.PhaseDays) {
			marker = StyleYellow.Render("▶")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker,
			StyleHeader.Render(fmt.Sprintf("Phase %d", n)), Bold(ph.Title)))
		b.WriteString(fmt.Sprintf("%s   %s → %s  %s\n", StyleDim.Render("│"),
			ShortDate(from), ShortDate(to),
			Dim(fmt.Sprintf("%d/%d done", completed, len(ph.Activities)))))
		for _, a := range ph.Activities {
			dot := StyleDim.Render("·")
			if done[a.ID] {
				dot = StyleGreen.Render("✔")
			}
			b.WriteString(fmt.Sprintf("%s   %s %s\n", StyleDim.Render("│"), dot, a.Title))
		}
	}
	b.WriteString(StyleDim.Render("┴"))
	b.WriteString("\n")
	return b.String()
}
