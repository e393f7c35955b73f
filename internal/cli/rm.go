package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmAll bool

var rmCmd = &cobra.Command{
	Use:   "rm [task-id]",
	Short: "Remove a task, or every task with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		if rmAll {
			if len(args) > 0 {
				return fmt.Errorf("--all takes no task-id argument")
			}
			ok, err := TaskMgr.DeleteAll()
			if err != nil {
				return fmt.Errorf("removing all tasks: %w", err)
			}
			if !ok {
				fmt.Println("No tasks to delete.")
				return nil
			}
			fmt.Println("All tasks deleted.")
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("provide a task-id or --all")
		}

		ok, err := TaskMgr.Delete(args[0])
		if err != nil {
			return fmt.Errorf("removing task: %w", err)
		}
		if !ok {
			fmt.Printf("Task %s not found.\n", args[0])
			return nil
		}
		fmt.Printf("Deleted task %s\n", args[0])
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVar(&rmAll, "all", false, "delete every task")
	rootCmd.AddCommand(rmCmd)
}
