// Package cli implements the taskhorizon command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "taskhorizon",
	Short: "taskhorizon - scheduled task list with a sorted store and MCP tools",
	Long: `taskhorizon manages a list of scheduled tasks, one-off and recurring,
kept continuously sorted by due time and persisted to a CSV file.

Recurring tasks are expanded into their future occurrences at creation
time, out to a configurable horizon. The same operations are available
as CLI commands and as MCP tools for conversational agents
(taskhorizon mcp serve).`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskhorizon %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
