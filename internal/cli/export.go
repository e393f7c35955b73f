package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tasks to stdout as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		tasks, err := TaskMgr.GetAll()
		if err != nil {
			return fmt.Errorf("exporting tasks: %w", err)
		}

		switch exportFormat {
		case "yaml":
			data, err := yaml.Marshal(tasks)
			if err != nil {
				return fmt.Errorf("exporting tasks: marshalling YAML: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tasks)
		default:
			return fmt.Errorf("unsupported format %q (use yaml or json)", exportFormat)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(exportCmd)
}
