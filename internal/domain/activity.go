package domain

import "time"

// Activity is a static catalog entry. Personas and WorkTypes may contain
// Wildcard to apply to every persona or work type.
type Activity struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	DurationMin int          `json:"duration" yaml:"duration"`
	Difficulty  Difficulty   `json:"difficulty" yaml:"difficulty"`
	Type        ActivityType `json:"type" yaml:"type"`
	Phase       int          `json:"phase" yaml:"phase"`
	Personas    []string     `json:"personas" yaml:"personas"`
	WorkTypes   []string     `json:"workTypes" yaml:"work_types"`
	Outcomes    []string     `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

// AppliesToPersona reports whether the activity targets p directly or via Wildcard.
func (a *Activity) AppliesToPersona(p Persona) bool {
	return containsOrWildcard(a.Personas, string(p))
}

// AppliesToWorkType reports whether the activity targets workType directly or via Wildcard.
func (a *Activity) AppliesToWorkType(workType string) bool {
	return containsOrWildcard(a.WorkTypes, workType)
}

func containsOrWildcard(list []string, v string) bool {
	for _, item := range list {
		if item == v || item == Wildcard {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with a.
func (a Activity) Clone() Activity {
	a.Personas = append([]string(nil), a.Personas...)
	a.WorkTypes = append([]string(nil), a.WorkTypes...)
	a.Outcomes = append([]string(nil), a.Outcomes...)
	return a
}

// ScheduledActivity is an activity placed on a calendar day of a plan.
type ScheduledActivity struct {
	Activity Activity  `json:"activity"`
	Phase    int       `json:"phase"`
	Day      int       `json:"day"` // 1-based day within the 90-day plan
	Date     time.Time `json:"date"`
}
