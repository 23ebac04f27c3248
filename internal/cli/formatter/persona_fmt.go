package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/aionboard/internal/domain"
)

// FormatPersona renders the persona reveal shown when the survey finishes.
func FormatPersona(p domain.PersonaProfile) string {
	var b strings.Builder
	style := PersonaStyle(p.Persona)
	b.WriteString(style.Bold(true).Render(p.Title))
	b.WriteString("  ")
	b.WriteString(Dim(string(p.Persona)))
	b.WriteString("\n\n")
	if p.Description != "" {
		b.WriteString(StyleFg.Render(p.Description))
		b.WriteString("\n")
	}
	if p.Focus != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Focus:"), p.Focus))
	}
	return RenderBox("Your AI persona", strings.TrimRight(b.String(), "\n"))
}

// FormatPersonaList renders every persona with its title and focus.
func FormatPersonaList(personas []domain.Persona) string {
	rows := make([][]string, 0, len(personas))
	for _, p := range personas {
		prof := domain.ProfileFor(p)
		rows = append(rows, []string{
			PersonaStyle(p).Render(string(p)),
			Bold(prof.Title),
			Dim(prof.Focus),
		})
	}
	return RenderTable([]string{"PERSONA", "TITLE", "FOCUS"}, rows)
}

// FormatAnswers lists survey answers in the order they were given, resolving
// option IDs through label when it is non-nil.
func FormatAnswers(answers *domain.AnswerSet, label func(questionID, optionID string) string) string {
	if answers.Len() == 0 {
		return Dim("No answers yet.") + "\n"
	}
	rows := make([][]string, 0, answers.Len())
	for _, qid := range answers.Keys() {
		vals := answers.Multi(qid)
		shown := make([]string, len(vals))
		for i, v := range vals {
			shown[i] = v
			if label != nil {
				if l := label(qid, v); l != "" {
					shown[i] = l
				}
			}
		}
		rows = append(rows, []string{Dim(qid), strings.Join(shown, ", ")})
	}
	return RenderTable([]string{"QUESTION", "ANSWER"}, rows)
}
