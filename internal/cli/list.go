package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"taskhorizon/pkg/models"
)

var (
	listFrom     string
	listTo       string
	listUpcoming int
)

// Row styles for the list output.
var (
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	rowOverdue = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	rowToday   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	rowFuture  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	rowRecur   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks sorted by due time",
	Long: `List tasks in due-time order.

Without flags every stored task is shown. Use --from/--to for an inclusive
time window, or --upcoming N for tasks due within the next N days.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		var tasks []models.Task
		var err error
		switch {
		case listUpcoming > 0:
			tasks, err = TaskMgr.ListUpcoming(listUpcoming)
		case listFrom != "" || listTo != "":
			if listFrom == "" || listTo == "" {
				return fmt.Errorf("--from and --to must be given together")
			}
			tasks, err = TaskMgr.ListInTimeframe(listFrom, listTo)
		default:
			tasks, err = TaskMgr.GetAll()
		}
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}

		printTaskTable(tasks)
		return nil
	},
}

func printTaskTable(tasks []models.Task) {
	fmt.Println(listHeaderStyle.Render(fmt.Sprintf("  %-42s %-20s %-8s %s", "ID", "DUE", "RECURS", "SUMMARY")))
	now := time.Now()
	for i := range tasks {
		t := &tasks[i]
		fmt.Println(renderTaskRow(t, now))
	}
	fmt.Printf("\n%d task(s)\n", len(tasks))
}

func renderTaskRow(t *models.Task, now time.Time) string {
	recurs := "-"
	if t.IsRecurring {
		recurs = string(t.RecurrenceType)
		if t.RecurrenceValue > 0 {
			recurs = fmt.Sprintf("%s(%d)", t.RecurrenceType, t.RecurrenceValue)
		}
	}

	line := fmt.Sprintf("  %-42s %-20s %-8s %s", shortID(t.ID), t.DueTime, recurs, t.Summary)

	due, err := t.DueAt()
	if err != nil {
		return rowFuture.Render(line)
	}
	switch {
	case due.Before(now):
		return rowOverdue.Render(line)
	case due.Year() == now.Year() && due.YearDay() == now.YearDay():
		return rowToday.Render(line)
	case t.IsRecurring:
		return rowRecur.Render(line)
	default:
		return rowFuture.Render(line)
	}
}

// shortID truncates the UUID portion of an identifier for display; the full
// ID is shown by "taskhorizon show".
func shortID(id string) string {
	if len(id) <= 42 {
		return id
	}
	return id[:39] + "..."
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "window start, ISO format (inclusive)")
	listCmd.Flags().StringVar(&listTo, "to", "", "window end, ISO format (inclusive)")
	listCmd.Flags().IntVar(&listUpcoming, "upcoming", 0, "show tasks due within the next N days")
	rootCmd.AddCommand(listCmd)
}
