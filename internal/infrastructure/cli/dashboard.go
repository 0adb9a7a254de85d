package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/render"
	"github.com/felixgeelhaar/storylint/pkg/application"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [directory]",
	Short: "Interactive TUI for a directory of story files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		if os.Getenv("STORYLINT_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialModel(root))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

type model struct {
	table      table.Model
	results    []*application.AnalysisResult
	showDetail bool
	err        error
}

func initialModel(root string) model {
	svc := defaultService()

	results, err := svc.AnalyzeDirectory(root)
	if err != nil {
		return model{err: err}
	}

	columns := []table.Column{
		{Title: "Rating", Width: 7},
		{Title: "Category", Width: 26},
		{Title: "Clarity", Width: 8},
		{Title: "INVEST", Width: 7},
		{Title: "Source", Width: 40},
	}

	rows := []table.Row{}
	for _, r := range results {
		overall := r.Report.OverallReadinessScore
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", overall.ReadinessRating),
			overall.ReadinessCategory,
			fmt.Sprintf("%d/40", r.Report.ClarityAndRequirementAnalysis.TotalScore),
			fmt.Sprintf("%d/60", r.Report.InvestCriteriaAssessment.TotalScore),
			r.Source,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))

	t.SetStyles(s)

	return model{
		table:   t,
		results: results,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.showDetail = !m.showDetail
			return m, nil
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(fmt.Sprintf("Storylint — %d stories", len(m.results)))

	detail := ""
	if m.showDetail {
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.results) {
			r := m.results[idx]
			detail = "\n" + render.Terminal(r.Source, r.Report)
		}
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.table.View(),
			detail,
			"\n[q] Quit  [Up/Down] Navigate  [Enter] Toggle detail",
		),
	) + "\n"
}
