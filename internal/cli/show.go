package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show full details of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		task, err := TaskMgr.Get(args[0])
		if err != nil {
			return fmt.Errorf("showing task: %w", err)
		}

		fmt.Printf("ID:        %s\n", task.ID)
		fmt.Printf("Summary:   %s\n", task.Summary)
		fmt.Printf("Details:   %s\n", task.Details)
		fmt.Printf("Due:       %s\n", task.DueTime)
		fmt.Printf("Created:   %s\n", task.CreatedAt)
		fmt.Printf("Recurring: %v\n", task.IsRecurring)
		if task.IsRecurring {
			fmt.Printf("Rule:      %s", task.RecurrenceType)
			if task.RecurrenceValue > 0 {
				fmt.Printf(" (every %d)", task.RecurrenceValue)
			}
			fmt.Println()
		}
		fmt.Printf("Alerts:    %s\n", strings.Join(task.AlertTimes, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
