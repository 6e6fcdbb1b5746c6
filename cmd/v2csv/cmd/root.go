package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"video2csv/cmd/v2csv/cmd/backends"
	"video2csv/cmd/v2csv/cmd/preview"
	"video2csv/cmd/v2csv/cmd/serve"
	"video2csv/cmd/v2csv/cmd/shared"
	"video2csv/cmd/v2csv/cmd/transcribe"
	"video2csv/cmd/v2csv/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "v2csv",
	Short: "Convert a video into a timestamped, speaker labeled transcript table",
	Long: `Convert a video into a timestamped, speaker labeled transcript table.
- The audio track is extracted with ffmpeg
- A speech recognition backend transcribes it (hosted HTTP API, OpenAI or a streaming client process)
- The result is written as CSV or XLSX with the columns
  "Seconds in video", "Speaker Name/Number", "Transcribed text"`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(preview.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(backends.Cmd)
	rootCmd.AddCommand(version.Cmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&shared.Flags.ConfigPath, "config", "c", "", "YAML config file (defaults apply when empty)")
	flags.BoolVarP(&shared.Flags.Verbose, "verbose", "V", false, "verbose development logging")
	flags.StringVarP(&shared.Flags.Backend, "backend", "b", "", "transcription backend: http, openai or process")
	flags.StringVarP(&shared.Flags.Format, "format", "f", "", "export format: csv or xlsx")
	flags.StringVarP(&shared.Flags.OutputDir, "output-dir", "o", "", "directory receiving the exports")
}
