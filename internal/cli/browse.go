package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
	"github.com/alexanderramin/aionboard/internal/domain"
)

// programRunner runs a bubbletea model to completion.
type programRunner func(m tea.Model, out io.Writer) error

func runProgram(m tea.Model, out io.Writer) error {
	_, err := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen()).Run()
	return err
}

func newPlanBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse your plan phase by phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("plan browse needs a terminal; use `aionboard plan show` instead")
			}
			ctx := cmd.Context()
			rec, err := app.Plans.Current(ctx, app.UserID)
			if err != nil {
				return err
			}
			run := app.RunProgram
			if run == nil {
				run = runProgram
			}
			return run(newPlanBrowser(rec, completedIDs(ctx, app)), cmd.OutOrStdout())
		},
	}
}

type browseKeyMap struct {
	NextPhase key.Binding
	PrevPhase key.Binding
	Up        key.Binding
	Down      key.Binding
	Quit      key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		NextPhase: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("→/tab", "next phase")),
		PrevPhase: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev phase")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPhase, k.PrevPhase, k.Up, k.Down, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// planBrowser is a read-only bubbletea view of a plan with one tab per phase.
type planBrowser struct {
	rec    *domain.PlanRecord
	done   map[string]bool
	dates  map[string]string
	phase  int // 0-based
	cursor int
	keys   browseKeyMap
	help   help.Model
	width  int
}

func newPlanBrowser(rec *domain.PlanRecord, done map[string]bool) planBrowser {
	dates := make(map[string]string, len(rec.Schedule))
	for _, s := range rec.Schedule {
		dates[s.Activity.ID] = formatter.ShortDate(s.Date)
	}
	return planBrowser{
		rec:   rec,
		done:  done,
		dates: dates,
		keys:  defaultBrowseKeys(),
		help:  help.New(),
	}
}

func (m planBrowser) Init() tea.Cmd { return nil }

func (m planBrowser) activities() []domain.Activity {
	return m.rec.Plan.Phase(m.phase + 1).Activities
}

func (m planBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextPhase):
			m.phase = (m.phase + 1) % domain.NumPhases
			m.cursor = 0
		case key.Matches(msg, m.keys.PrevPhase):
			m.phase = (m.phase + domain.NumPhases - 1) % domain.NumPhases
			m.cursor = 0
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.activities())-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

var (
	activeTab   = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	inactiveTab = lipgloss.NewStyle().Foreground(formatter.ColorDim)
)

func (m planBrowser) View() string {
	var b strings.Builder

	tabs := make([]string, 0, domain.NumPhases)
	for i, ph := range m.rec.Plan.Phases() {
		label := fmt.Sprintf("Phase %d · %s", i+1, ph.Title)
		if i == m.phase {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, inactiveTab.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "   "))
	b.WriteString("\n")
	if sub := m.rec.Plan.Phase(m.phase + 1).Subtitle; sub != "" {
		b.WriteString(formatter.Dim(sub))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	acts := m.activities()
	if len(acts) == 0 {
		b.WriteString(formatter.Dim("No activities in this phase."))
		b.WriteString("\n")
	}
	for i, a := range acts {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		mark := formatter.Dim("○")
		if m.done[a.ID] {
			mark = formatter.StyleGreen.Render("✔")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", cursor, mark, a.Title, formatter.Dim(m.dates[a.ID])))
	}

	if m.cursor < len(acts) {
		b.WriteString("\n")
		b.WriteString(m.detail(acts[m.cursor]))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m planBrowser) detail(a domain.Activity) string {
	var b strings.Builder
	b.WriteString(formatter.Bold(a.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s  %s\n",
		formatter.ActivityTypeIcon(a.Type), formatter.Dim(string(a.Type)),
		formatter.DifficultyBadge(a.Difficulty),
		formatter.Dim(formatter.FormatMinutes(a.DurationMin))))
	if a.Description != "" {
		desc := a.Description
		if m.width > 4 {
			desc = lipgloss.NewStyle().Width(m.width - 4).Render(desc)
		}
		b.WriteString(desc)
		b.WriteString("\n")
	}
	for _, o := range a.Outcomes {
		b.WriteString(formatter.StyleBlue.Render("  → " + o))
		b.WriteString("\n")
	}
	return b.String()
}
