package survey

import "github.com/alexanderramin/aionboard/internal/domain"

// CalculatePersona classifies a respondent from their answers. It is total:
// missing, multi-valued, or unknown answers fall through to defaults and the
// result is always one of the six defined personas. The engagement-frequency
// answer is collected by the survey but does not influence the persona.
func CalculatePersona(answers *domain.AnswerSet) domain.Persona {
	experience := answers.Single(domain.QuestionIDExperience)
	concerns := answers.Single(domain.QuestionIDConcerns)
	goal := answers.Single(domain.QuestionIDSuccessMetric)

	switch experience {
	case "never", "once-twice":
		if concerns == "where-to-start" || concerns == "job-replacement" {
			return domain.PersonaCautiousExplorer
		}
		return domain.PersonaEagerBeginner
	case "occasionally":
		if goal == "save-time" || goal == "eliminate-boring" {
			return domain.PersonaEfficiencySeeker
		}
		return domain.PersonaPracticalAdopter
	case "regularly", "power-user":
		if goal == "help-team" {
			return domain.PersonaInnovationDriver
		}
		return domain.PersonaPowerOptimizer
	default:
		return domain.PersonaPracticalAdopter
	}
}
