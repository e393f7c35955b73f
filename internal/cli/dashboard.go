package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"taskhorizon/pkg/models"
)

// Style definitions for the dashboard.
var (
	dashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	dashPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	dashHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	countOverdue = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	countToday   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	countWeek    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	dashHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type dashboardModel struct {
	width  int
	height int

	overdue  int
	dueToday int
	dueWeek  int
	total    int
	upcoming []models.Task

	loading bool
	err     error
}

// taskDataMsg carries loaded store data back to the model.
type taskDataMsg struct {
	overdue  int
	dueToday int
	dueWeek  int
	total    int
	upcoming []models.Task
	err      error
}

func newDashboardModel() dashboardModel {
	return dashboardModel{loading: true}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadTaskData
}

func loadTaskData() tea.Msg {
	if TaskMgr == nil {
		return taskDataMsg{err: fmt.Errorf("task manager not initialized")}
	}

	tasks, err := TaskMgr.GetAll()
	if err != nil {
		return taskDataMsg{err: err}
	}

	now := time.Now()
	weekEnd := now.AddDate(0, 0, 7)
	msg := taskDataMsg{total: len(tasks)}
	for i := range tasks {
		due, err := tasks[i].DueAt()
		if err != nil {
			continue
		}
		switch {
		case due.Before(now):
			msg.overdue++
		case due.Year() == now.Year() && due.YearDay() == now.YearDay():
			msg.dueToday++
		case due.Before(weekEnd):
			msg.dueWeek++
		}
	}

	upcoming, err := TaskMgr.ListUpcoming(7)
	if err != nil {
		return taskDataMsg{err: err}
	}
	if len(upcoming) > 10 {
		upcoming = upcoming[:10]
	}
	msg.upcoming = upcoming
	return msg
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, loadTaskData
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case taskDataMsg:
		m.loading = false
		m.err = msg.err
		m.overdue = msg.overdue
		m.dueToday = msg.dueToday
		m.dueWeek = msg.dueWeek
		m.total = msg.total
		m.upcoming = msg.upcoming
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(dashTitleStyle.Render("taskhorizon"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading tasks...\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
		b.WriteString(dashHelpStyle.Render("\nq quit • r reload\n"))
		return b.String()
	}

	counts := fmt.Sprintf("%s overdue   %s due today   %s this week   %d total",
		countOverdue.Render(fmt.Sprintf("%d", m.overdue)),
		countToday.Render(fmt.Sprintf("%d", m.dueToday)),
		countWeek.Render(fmt.Sprintf("%d", m.dueWeek)),
		m.total,
	)
	b.WriteString(dashPanelStyle.Render(counts))
	b.WriteString("\n")

	var upcoming strings.Builder
	upcoming.WriteString(dashHeaderStyle.Render("Next 7 days"))
	upcoming.WriteString("\n")
	if len(m.upcoming) == 0 {
		upcoming.WriteString("nothing due")
	}
	for i := range m.upcoming {
		t := &m.upcoming[i]
		upcoming.WriteString(fmt.Sprintf("%-20s %s\n", t.DueTime, t.Summary))
	}
	b.WriteString(dashPanelStyle.Render(upcoming.String()))
	b.WriteString("\n")
	b.WriteString(dashHelpStyle.Render("q quit • r reload"))
	b.WriteString("\n")

	return b.String()
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive overview of due and upcoming tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
