package backends

import (
	"fmt"

	"github.com/spf13/cobra"
	"video2csv/cmd/v2csv/cmd/shared"
	"video2csv/internal/app/api/provider"
)

// Cmd represents the backends command
var Cmd = &cobra.Command{
	Use:   "backends",
	Short: "List the registered transcription backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfigWithoutCredentials()
		if err != nil {
			return err
		}

		for _, name := range provider.ListRegisteredProviders() {
			marker := " "
			if name == cfg.Backend {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
		}
		return nil
	},
}
