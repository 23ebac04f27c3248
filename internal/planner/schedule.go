package planner

import (
	"math"
	"time"

	"github.com/alexanderramin/aionboard/internal/domain"
)

// Schedule places plan activities on calendar days. Phase n covers plan days
// [(n-1)*30, n*30) counted from start; a phase's activities are spread evenly
// across its window in plan order. The result is sorted by date.
func Schedule(plan domain.Plan, start time.Time) []domain.ScheduledActivity {
	start = StartOfDay(start)
	out := make([]domain.ScheduledActivity, 0, plan.TotalActivities())
	for n := 1; n <= domain.NumPhases; n++ {
		acts := plan.Phase(n).Activities
		if len(acts) == 0 {
			continue
		}
		base := (n - 1) * domain.PhaseDays
		for i, a := range acts {
			offset := base + i*domain.PhaseDays/len(acts)
			out = append(out, domain.ScheduledActivity{
				Activity: a.Clone(),
				Phase:    n,
				Day:      offset + 1,
				Date:     start.AddDate(0, 0, offset),
			})
		}
	}
	return out
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayOfPlan returns the 1-based plan day that now falls on, which may be
// outside 1..90 before the start or after the end.
func DayOfPlan(start, now time.Time) int {
	s := StartOfDay(start)
	n := StartOfDay(now.In(s.Location()))
	return int(math.Round(n.Sub(s).Hours()/24)) + 1
}

// PhaseForDay clamps a plan day to its phase, 1..3.
func PhaseForDay(day int) int {
	if day < 1 {
		return 1
	}
	p := (day-1)/domain.PhaseDays + 1
	if p > domain.NumPhases {
		return domain.NumPhases
	}
	return p
}
