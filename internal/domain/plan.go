package domain

import "time"

// PlanDays is the length of a plan; each of the three phases covers a third.
const (
	PlanDays  = 90
	PhaseDays = 30
	NumPhases = 3
)

// PhasePlan is one 30-day bucket of a plan.
type PhasePlan struct {
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle"`
	Activities []Activity `json:"activities"`
}

// Plan is a generated 90-day activity plan.
type Plan struct {
	Phase1 PhasePlan `json:"phase1"`
	Phase2 PhasePlan `json:"phase2"`
	Phase3 PhasePlan `json:"phase3"`
}

// Phases returns the three phases in order.
func (p *Plan) Phases() []PhasePlan {
	return []PhasePlan{p.Phase1, p.Phase2, p.Phase3}
}

// Phase returns a pointer to phase n (1-based), or nil when out of range.
func (p *Plan) Phase(n int) *PhasePlan {
	switch n {
	case 1:
		return &p.Phase1
	case 2:
		return &p.Phase2
	case 3:
		return &p.Phase3
	default:
		return nil
	}
}

// TotalActivities counts activities across all phases.
func (p *Plan) TotalActivities() int {
	return len(p.Phase1.Activities) + len(p.Phase2.Activities) + len(p.Phase3.Activities)
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	for n := 1; n <= NumPhases; n++ {
		ph := p.Phase(n)
		acts := make([]Activity, len(ph.Activities))
		for i, a := range ph.Activities {
			acts[i] = a.Clone()
		}
		ph.Activities = acts
	}
	return p
}

// PlanRecord is a persisted plan with the inputs that produced it.
type PlanRecord struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Persona     Persona             `json:"persona"`
	WorkType    string              `json:"workType"`
	Frequency   string              `json:"frequency"`
	TimeWasters []string            `json:"timeWasters"`
	Goal        string              `json:"goal"`
	StartDate   time.Time           `json:"startDate"`
	GeneratedAt time.Time           `json:"generatedAt"`
	IsCurrent   bool                `json:"isCurrent"`
	Plan        Plan                `json:"plan"`
	Schedule    []ScheduledActivity `json:"schedule"`
}

// EndDate is the last calendar day covered by the plan.
func (r *PlanRecord) EndDate() time.Time {
	return r.StartDate.AddDate(0, 0, PlanDays-1)
}
