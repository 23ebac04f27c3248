package domain

// PersonaProfile is the display copy shown for a persona.
type PersonaProfile struct {
	Persona     Persona `json:"persona"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Focus       string  `json:"focus"`
}

var personaProfiles = map[Persona]PersonaProfile{
	PersonaCautiousExplorer: {
		Persona:     PersonaCautiousExplorer,
		Title:       "Cautious Explorer",
		Description: "You're curious about AI but want to understand it before relying on it.",
		Focus:       "Low-stakes experiments that build trust one step at a time.",
	},
	PersonaEagerBeginner: {
		Persona:     PersonaEagerBeginner,
		Title:       "Eager Beginner",
		Description: "You're new to AI and ready to jump in.",
		Focus:       "Quick wins that turn curiosity into daily habits.",
	},
	PersonaPracticalAdopter: {
		Persona:     PersonaPracticalAdopter,
		Title:       "Practical Adopter",
		Description: "You use AI now and then and want it to earn its place in your work.",
		Focus:       "Repeatable workflows for the tasks you already do.",
	},
	PersonaEfficiencySeeker: {
		Persona:     PersonaEfficiencySeeker,
		Title:       "Efficiency Seeker",
		Description: "You want AI to hand back hours from repetitive work.",
		Focus:       "Automating the routine so you can focus on what matters.",
	},
	PersonaInnovationDriver: {
		Persona:     PersonaInnovationDriver,
		Title:       "Innovation Driver",
		Description: "You're fluent with AI and want to bring your team along.",
		Focus:       "Sharing playbooks and leading adoption around you.",
	},
	PersonaPowerOptimizer: {
		Persona:     PersonaPowerOptimizer,
		Title:       "Power Optimizer",
		Description: "You already rely on AI and want to push it further.",
		Focus:       "Advanced techniques, chaining tools, and measuring impact.",
	},
}

// ProfileFor returns display copy for p. Unknown personas get a generic profile.
func ProfileFor(p Persona) PersonaProfile {
	if prof, ok := personaProfiles[p]; ok {
		return prof
	}
	return PersonaProfile{Persona: p, Title: string(p)}
}
