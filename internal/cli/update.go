package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskhorizon/internal/core"
)

var (
	updateSummary string
	updateDetails string
	updateDue     string
	updateRecur   string
	updateEvery   int
	updateOneOff  bool
	updateAlerts  []string
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update fields of an existing task",
	Long: `Update fields of an existing task. Only supplied flags are applied.

A new due time must lie in the future and moves the task to its new
position in the list; the task identifier does not change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		var req core.UpdateRequest
		if cmd.Flags().Changed("summary") {
			req.Summary = &updateSummary
		}
		if cmd.Flags().Changed("details") {
			req.Details = &updateDetails
		}
		if cmd.Flags().Changed("due") {
			req.DueTime = &updateDue
		}
		if cmd.Flags().Changed("recur") {
			recurring := true
			req.IsRecurring = &recurring
			req.RecurrenceType = &updateRecur
		}
		if cmd.Flags().Changed("every") {
			req.RecurrenceValue = &updateEvery
		}
		if cmd.Flags().Changed("one-off") && updateOneOff {
			recurring := false
			req.IsRecurring = &recurring
		}
		if cmd.Flags().Changed("alert") {
			req.AlertTimes = updateAlerts
		}

		if req.Empty() {
			return fmt.Errorf("no fields to update: provide at least one flag")
		}

		task, err := TaskMgr.Update(args[0], req)
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}

		fmt.Printf("Updated task %s\n", task.ID)
		fmt.Printf("  Summary: %s\n", task.Summary)
		fmt.Printf("  Due:     %s\n", task.DueTime)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateSummary, "summary", "", "new summary")
	updateCmd.Flags().StringVarP(&updateDetails, "details", "d", "", "new details")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due time, ISO format, must be in the future")
	updateCmd.Flags().StringVar(&updateRecur, "recur", "", "new recurrence rule")
	updateCmd.Flags().IntVar(&updateEvery, "every", 0, "new unit count for days/weeks/months rules")
	updateCmd.Flags().BoolVar(&updateOneOff, "one-off", false, "clear the recurring flag")
	updateCmd.Flags().StringSliceVar(&updateAlerts, "alert", nil, "new alert times, ISO format")
	rootCmd.AddCommand(updateCmd)
}
