package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/aionboard/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DifficultyStyle colors easy green, medium yellow and advanced red.
func DifficultyStyle(d domain.Difficulty) lipgloss.Style {
	switch d {
	case domain.DifficultyEasy:
		return StyleGreen
	case domain.DifficultyMedium:
		return StyleYellow
	case domain.DifficultyAdvanced:
		return StyleRed
	default:
		return StyleDim
	}
}

// DifficultyBadge returns a colored difficulty indicator such as "● MEDIUM".
func DifficultyBadge(d domain.Difficulty) string {
	if d == "" {
		return StyleDim.Render("● ?")
	}
	return DifficultyStyle(d).Render("● " + strings.ToUpper(string(d)))
}

// PersonaStyle groups the six personas into three bands by confidence.
func PersonaStyle(p domain.Persona) lipgloss.Style {
	switch p {
	case domain.PersonaCautiousExplorer, domain.PersonaEagerBeginner:
		return StyleBlue
	case domain.PersonaPracticalAdopter, domain.PersonaEfficiencySeeker:
		return StyleYellow
	case domain.PersonaInnovationDriver, domain.PersonaPowerOptimizer:
		return StylePurple
	default:
		return StyleDim
	}
}

// ActivityTypeIcon returns a one-glyph marker for an activity type.
func ActivityTypeIcon(t domain.ActivityType) string {
	switch t {
	case domain.ActivityExercise:
		return "✎"
	case domain.ActivityExperiment:
		return "⚗"
	case domain.ActivityReflection:
		return "◎"
	case domain.ActivityChallenge:
		return "▲"
	case domain.ActivityShare:
		return "⇪"
	default:
		return "•"
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
