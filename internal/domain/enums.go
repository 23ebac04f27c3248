package domain

type QuestionType string

const (
	QuestionIntro        QuestionType = "intro"
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionMultiChoice  QuestionType = "multi-choice"
	QuestionComplete     QuestionType = "complete"
)

// ValidQuestionTypes is the canonical set of accepted question type strings.
var ValidQuestionTypes = map[QuestionType]bool{
	QuestionIntro: true, QuestionSingleChoice: true,
	QuestionMultiChoice: true, QuestionComplete: true,
}

type Persona string

const (
	PersonaCautiousExplorer Persona = "cautious-explorer"
	PersonaEagerBeginner    Persona = "eager-beginner"
	PersonaPracticalAdopter Persona = "practical-adopter"
	PersonaEfficiencySeeker Persona = "efficiency-seeker"
	PersonaInnovationDriver Persona = "innovation-driver"
	PersonaPowerOptimizer   Persona = "power-optimizer"
)

// AllPersonas lists every persona in survey-journey order.
var AllPersonas = []Persona{
	PersonaCautiousExplorer,
	PersonaEagerBeginner,
	PersonaPracticalAdopter,
	PersonaEfficiencySeeker,
	PersonaInnovationDriver,
	PersonaPowerOptimizer,
}

// Valid reports whether p is one of the six defined personas.
func (p Persona) Valid() bool {
	for _, known := range AllPersonas {
		if p == known {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyAdvanced Difficulty = "advanced"
)

// Rank orders difficulties from easiest (0) to hardest (2).
// Unknown values rank after advanced.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyAdvanced:
		return 2
	default:
		return 3
	}
}

type ActivityType string

const (
	ActivityExercise   ActivityType = "exercise"
	ActivityExperiment ActivityType = "experiment"
	ActivityReflection ActivityType = "reflection"
	ActivityChallenge  ActivityType = "challenge"
	ActivityShare      ActivityType = "share"
)

// ValidActivityTypes is the canonical set of accepted activity type strings.
var ValidActivityTypes = map[ActivityType]bool{
	ActivityExercise: true, ActivityExperiment: true, ActivityReflection: true,
	ActivityChallenge: true, ActivityShare: true,
}

// Wildcard matches every persona or work type in an activity's applicability lists.
const Wildcard = "all"

// Engagement frequencies collected by the survey.
const (
	FrequencyDaily      = "daily"
	FrequencyEveryOther = "every-other"
	FrequencyThreeTimes = "3-times"
	FrequencyTwice      = "twice"
	FrequencyWeekly     = "weekly"
)

// Survey question IDs the rest of the system reads answers from.
const (
	QuestionIDWelcome             = "welcome"
	QuestionIDWorkType            = "work-type"
	QuestionIDExperience          = "ai-experience"
	QuestionIDConcerns            = "ai-concerns"
	QuestionIDCurrentTools        = "current-tools"
	QuestionIDTimeWasters         = "time-wasters"
	QuestionIDEngagementFrequency = "engagement-frequency"
	QuestionIDSuccessMetric       = "success-metric"
	QuestionIDComplete            = "complete"
)
