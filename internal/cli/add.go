package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskhorizon/internal/core"
)

var (
	addDetails string
	addDue     string
	addRecur   string
	addEvery   int
	addAlerts  []string
)

var addCmd = &cobra.Command{
	Use:   "add <summary>",
	Short: "Add a new task",
	Long: `Add a new task with the given one-line summary.

The due time is required and must lie in the future. Recurring tasks take
--recur with one of: daily, weekly, monthly, yearly, days, weeks, months.
The last three also need --every N. A recurring task is expanded into all
its occurrences up to the horizon immediately; a daily task creates on the
order of 1800 entries.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		task, err := TaskMgr.Create(core.CreateRequest{
			Summary:         args[0],
			Details:         addDetails,
			IsRecurring:     addRecur != "",
			RecurrenceType:  addRecur,
			RecurrenceValue: addEvery,
			DueTime:         addDue,
			AlertTimes:      addAlerts,
		})
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}

		fmt.Printf("Created task %s\n", task.ID)
		fmt.Printf("  Summary: %s\n", task.Summary)
		fmt.Printf("  Due:     %s\n", task.DueTime)
		if task.IsRecurring {
			fmt.Printf("  Recurs:  %s", task.RecurrenceType)
			if task.RecurrenceValue > 0 {
				fmt.Printf(" (every %d)", task.RecurrenceValue)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDetails, "details", "d", "", "detailed description (required)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due time, ISO format YYYY-MM-DDTHH:MM:SS (required)")
	addCmd.Flags().StringVar(&addRecur, "recur", "", "recurrence rule: daily, weekly, monthly, yearly, days, weeks, months")
	addCmd.Flags().IntVar(&addEvery, "every", 0, "unit count for days/weeks/months rules")
	addCmd.Flags().StringSliceVar(&addAlerts, "alert", nil, "alert times, ISO format (defaults to the due time)")
	_ = addCmd.MarkFlagRequired("details")
	_ = addCmd.MarkFlagRequired("due")
	rootCmd.AddCommand(addCmd)
}
