package cli

import (
	"errors"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
	"github.com/alexanderramin/aionboard/internal/domain"
)

// errGoBack is returned by a questionAsker when the respondent asks for the
// previous question.
var errGoBack = errors.New("go back")

const backChoice = "\x00back"

// questionAsker prompts for one survey question at a time. Abandoning the
// survey is reported as huh.ErrUserAborted.
type questionAsker interface {
	Intro(q *domain.Question) error
	Single(q *domain.Question, canGoBack bool) (string, error)
	Multi(q *domain.Question, selected []string, canGoBack bool) ([]string, error)
}

// aionboardHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func aionboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[•] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// huhAsker renders each question as a huh form in the terminal.
type huhAsker struct{}

func runForm(groups ...*huh.Group) error {
	return huh.NewForm(groups...).WithTheme(aionboardHuhTheme()).WithShowHelp(false).Run()
}

func (huhAsker) Intro(q *domain.Question) error {
	start := true
	err := runForm(huh.NewGroup(
		huh.NewConfirm().
			Title(q.Prompt).
			Description(q.Subtitle).
			Affirmative("Let's go").
			Negative("Not now").
			Value(&start),
	))
	if err != nil {
		return err
	}
	if !start {
		return huh.ErrUserAborted
	}
	return nil
}

func (huhAsker) Single(q *domain.Question, canGoBack bool) (string, error) {
	opts := make([]huh.Option[string], 0, len(q.Options)+1)
	for _, o := range q.Options {
		opts = append(opts, huh.NewOption(o.Label, o.ID))
	}
	if canGoBack {
		opts = append(opts, huh.NewOption("← Back", backChoice))
	}

	var choice string
	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(q.Prompt).
			Description(q.Subtitle).
			Options(opts...).
			Value(&choice),
	))
	if err != nil {
		return "", err
	}
	if choice == backChoice {
		return "", errGoBack
	}
	return choice, nil
}

func (huhAsker) Multi(q *domain.Question, selected []string, canGoBack bool) ([]string, error) {
	opts := make([]huh.Option[string], 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, huh.NewOption(o.Label, o.ID).Selected(slices.Contains(selected, o.ID)))
	}

	chosen := append([]string(nil), selected...)
	fields := []huh.Field{
		huh.NewMultiSelect[string]().
			Title(q.Prompt).
			Description(q.Subtitle).
			Options(opts...).
			Value(&chosen),
	}
	forward := true
	if canGoBack {
		fields = append(fields, huh.NewConfirm().
			Affirmative("Continue").
			Negative("← Back").
			Value(&forward))
	}

	if err := runForm(huh.NewGroup(fields...)); err != nil {
		return nil, err
	}
	if !forward {
		return nil, errGoBack
	}
	return chosen, nil
}
