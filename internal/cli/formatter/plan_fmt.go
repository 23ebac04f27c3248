package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/aionboard/internal/domain"
)

// FormatActivity renders one activity as a title line plus an indented meta line.
func FormatActivity(a domain.Activity, done bool) string {
	mark := StyleDim.Render("○")
	title := Bold(a.Title)
	if done {
		mark = StyleGreen.Render("✔")
		title = StyleDim.Strikethrough(true).Render(a.Title)
	}
	meta := fmt.Sprintf("%s %s  %s  %s",
		ActivityTypeIcon(a.Type), Dim(string(a.Type)),
		DifficultyBadge(a.Difficulty),
		Dim(FormatMinutes(a.DurationMin)))
	return fmt.Sprintf("%s %s %s\n    %s\n", mark, title, TruncID(a.ID), meta)
}

// FormatPhase renders a phase heading followed by its activities.
func FormatPhase(n int, ph domain.PhasePlan, done map[string]bool) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Phase %d: %s", n, ph.Title)))
	b.WriteString("\n")
	if ph.Subtitle != "" {
		b.WriteString(Dim(ph.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if len(ph.Activities) == 0 {
		b.WriteString(Dim("  No activities matched this phase."))
		b.WriteString("\n")
		return b.String()
	}
	for _, a := range ph.Activities {
		b.WriteString(FormatActivity(a, done[a.ID]))
	}
	return b.String()
}

// FormatPlan renders all three phases of a plan.
func FormatPlan(plan domain.Plan, done map[string]bool) string {
	if plan.TotalActivities() == 0 {
		return Dim("This plan has no activities. Try a different frequency or work type.") + "\n"
	}
	parts := make([]string, 0, domain.NumPhases)
	for i, ph := range plan.Phases() {
		parts = append(parts, FormatPhase(i+1, ph, done))
	}
	return strings.Join(parts, "\n")
}

// FormatPlanRecord renders a persisted plan with a summary line above it.
func FormatPlanRecord(rec *domain.PlanRecord, done map[string]bool) string {
	var b strings.Builder
	prof := domain.ProfileFor(rec.Persona)
	b.WriteString(fmt.Sprintf("%s %s  %s %s → %s  %s %s\n\n",
		Dim("Persona:"), PersonaStyle(rec.Persona).Render(prof.Title),
		Dim("Dates:"), ShortDate(rec.StartDate), ShortDate(rec.EndDate()),
		Dim("Activities:"), StyleFg.Render(fmt.Sprintf("%d", rec.Plan.TotalActivities()))))
	b.WriteString(FormatPlan(rec.Plan, done))
	return b.String()
}

// FormatPlanHistory renders a table of a user's plans, newest first.
func FormatPlanHistory(recs []*domain.PlanRecord, now time.Time) string {
	if len(recs) == 0 {
		return Dim("No plans yet.") + "\n"
	}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		current := ""
		if r.IsCurrent {
			current = StyleGreen.Render("current")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			PersonaStyle(r.Persona).Render(string(r.Persona)),
			Dim(Label(r.Frequency)),
			fmt.Sprintf("%d", r.Plan.TotalActivities()),
			RelativeDateFrom(r.GeneratedAt, now),
			current,
		})
	}
	return RenderTable([]string{"ID", "PERSONA", "FREQUENCY", "ACTIVITIES", "GENERATED", ""}, rows)
}
