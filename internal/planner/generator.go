package planner

import (
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/aionboard/internal/domain"
)

// Input is everything the generator reads from a completed survey.
type Input struct {
	Persona     domain.Persona `json:"persona"`
	WorkType    string         `json:"workType"`
	Frequency   string         `json:"frequency"`
	TimeWasters []string       `json:"timeWasters"`
	// Goal is carried for display; it does not affect selection.
	Goal string `json:"goal,omitempty"`
}

// PlanGenerator produces a plan for an input.
type PlanGenerator interface {
	Generate(in Input) domain.Plan
}

type phaseCopy struct {
	title    string
	subtitle string
}

var phaseCopies = [domain.NumPhases]phaseCopy{
	{"Foundation", "Days 1-30: build confidence with everyday AI habits"},
	{"Integration", "Days 31-60: weave AI into your real workflows"},
	{"Mastery", "Days 61-90: push further and share what works"},
}

// PhaseTitle returns the fixed title and subtitle for phase n (1-based).
func PhaseTitle(n int) (string, string) {
	if n < 1 || n > domain.NumPhases {
		return "", ""
	}
	c := phaseCopies[n-1]
	return c.title, c.subtitle
}

var activitiesPer30Days = map[string]int{
	domain.FrequencyDaily:      20,
	domain.FrequencyEveryOther: 15,
	domain.FrequencyThreeTimes: 12,
	domain.FrequencyTwice:      8,
	domain.FrequencyWeekly:     4,
}

const defaultActivitiesPer30Days = 12

// ActivitiesPer30Days maps an engagement frequency to a monthly activity
// count. Unknown frequencies get the default.
func ActivitiesPer30Days(frequency string) int {
	if n, ok := activitiesPer30Days[frequency]; ok {
		return n
	}
	return defaultActivitiesPer30Days
}

// PhaseCap is the maximum number of activities a single phase may hold.
func PhaseCap(frequency string) int {
	return int(math.Ceil(float64(ActivitiesPer30Days(frequency)) / float64(domain.NumPhases)))
}

// Generator selects plan activities from a fixed catalog.
type Generator struct {
	activities []domain.Activity
}

// New returns a Generator over the given catalog. The slice is not copied;
// callers must not mutate it afterwards.
func New(activities []domain.Activity) *Generator {
	return &Generator{activities: activities}
}

// Generate builds a plan from the catalog.
func (g *Generator) Generate(in Input) domain.Plan {
	return Generate90DayPlan(g.activities, in)
}

// Generate90DayPlan selects and orders catalog activities for each of the
// three phases. It is deterministic and never fails: a phase with no matching
// activities gets an empty, non-nil list.
func Generate90DayPlan(catalog []domain.Activity, in Input) domain.Plan {
	var plan domain.Plan
	limit := PhaseCap(in.Frequency)
	tags := normalizeTags(in.TimeWasters)

	for n := 1; n <= domain.NumPhases; n++ {
		selected := filterPhase(catalog, n, in.Persona, in.WorkType)
		sortByDifficulty(selected, in.Persona)
		if len(selected) > limit {
			selected = selected[:limit]
		}
		selected = partitionByTags(selected, tags)

		ph := plan.Phase(n)
		ph.Title, ph.Subtitle = PhaseTitle(n)
		ph.Activities = selected
	}
	return plan
}

func filterPhase(catalog []domain.Activity, phase int, persona domain.Persona, workType string) []domain.Activity {
	out := make([]domain.Activity, 0)
	for i := range catalog {
		a := &catalog[i]
		if a.Phase != phase {
			continue
		}
		if !a.AppliesToPersona(persona) || !a.AppliesToWorkType(workType) {
			continue
		}
		out = append(out, a.Clone())
	}
	return out
}

// sortByDifficulty eases beginners in and front-loads hard material for
// experienced personas. Everyone else keeps catalog order.
func sortByDifficulty(acts []domain.Activity, persona domain.Persona) {
	switch persona {
	case domain.PersonaCautiousExplorer, domain.PersonaEagerBeginner:
		sort.SliceStable(acts, func(i, j int) bool {
			return acts[i].Difficulty.Rank() < acts[j].Difficulty.Rank()
		})
	case domain.PersonaPowerOptimizer, domain.PersonaInnovationDriver:
		sort.SliceStable(acts, func(i, j int) bool {
			return acts[i].Difficulty.Rank() > acts[j].Difficulty.Rank()
		})
	}
}

// partitionByTags moves activities mentioning any tag to the front, keeping
// relative order within both groups.
func partitionByTags(acts []domain.Activity, tags []string) []domain.Activity {
	if len(tags) == 0 || len(acts) == 0 {
		return acts
	}
	matched := make([]domain.Activity, 0, len(acts))
	var rest []domain.Activity
	for _, a := range acts {
		if mentionsAny(a, tags) {
			matched = append(matched, a)
		} else {
			rest = append(rest, a)
		}
	}
	return append(matched, rest...)
}

func mentionsAny(a domain.Activity, tags []string) bool {
	title := strings.ToLower(a.Title)
	desc := strings.ToLower(a.Description)
	for _, t := range tags {
		if strings.Contains(title, t) || strings.Contains(desc, t) {
			return true
		}
	}
	return false
}

// normalizeTags lowercases, drops empties, and dedupes, returning a sorted list.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// InputFromAnswers derives generator input from a persona and survey answers.
func InputFromAnswers(persona domain.Persona, answers *domain.AnswerSet) Input {
	return Input{
		Persona:     persona,
		WorkType:    answers.Single(domain.QuestionIDWorkType),
		Frequency:   answers.Single(domain.QuestionIDEngagementFrequency),
		TimeWasters: answers.Multi(domain.QuestionIDTimeWasters),
		Goal:        answers.Single(domain.QuestionIDSuccessMetric),
	}
}
