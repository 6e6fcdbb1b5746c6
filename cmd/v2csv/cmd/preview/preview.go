package preview

import (
	"github.com/spf13/cobra"
	"video2csv/cmd/v2csv/cmd/shared"
	"video2csv/internal/app/converter/export"
)

// Cmd represents the preview command
var Cmd = &cobra.Command{
	Use:   "preview <table>",
	Short: "Print a previously exported .csv or .xlsx transcript table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := export.ReadTable(args[0])
		if err != nil {
			return err
		}
		return shared.PrintRows(cmd.OutOrStdout(), rows)
	},
}
