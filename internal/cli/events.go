package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskhorizon/internal/observability"
)

var (
	eventsType  string
	eventsSince string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recorded task store events",
	Long: `Show events from the append-only event log: task creations,
recurrence expansions, updates, deletions, and persistence failures.

Use --since with a duration like 24h or 7d to limit the window, and
--type to filter by event type (e.g. task.created, store.save_failed).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not available")
		}

		filter := observability.EventFilter{Type: eventsType}
		if eventsSince != "" {
			since, err := parseSinceDuration(eventsSince)
			if err != nil {
				return fmt.Errorf("parsing --since: %w", err)
			}
			filter.Since = &since
		}

		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events.")
			return nil
		}
		for _, e := range events {
			fmt.Printf("%s  %-5s %-18s %s\n", e.Time.Format("2006-01-02 15:04:05"), e.Level, e.Type, e.Message)
		}
		return nil
	},
}

// parseSinceDuration accepts Go durations plus a "d" suffix for days
// (e.g. "7d", "24h", "90m") and returns the corresponding past instant.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now()
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &days); err != nil {
			return time.Time{}, fmt.Errorf("invalid duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}
	return now.Add(-d), nil
}

func init() {
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "filter by event type")
	eventsCmd.Flags().StringVar(&eventsSince, "since", "", "only events newer than this duration (e.g. 24h, 7d)")
	rootCmd.AddCommand(eventsCmd)
}
