package transcribe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"video2csv/cmd/v2csv/cmd/shared"
	"video2csv/internal/app"
	"video2csv/internal/app/converter"
	apperrors "video2csv/internal/app/errors"
	"video2csv/internal/app/model"
)

var (
	showProgress bool
	quiet        bool
)

func init() {
	Cmd.Flags().BoolVarP(&showProgress, "progress", "p", false, "force the progress bar even when stderr is not a terminal")
	Cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the row preview")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <video>",
	Short: "Transcribe one video file into a transcript table",
	Long: `Transcribe one video file into a transcript table

- Extracts the audio track, sends it to the selected backend
- Writes <output-dir>/<video name>.csv (or .xlsx) and prints a preview`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig()
		if err != nil {
			return err
		}

		logger, err := shared.NewLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		conv, err := app.InitializeConverter(cfg, logger, converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(showProgress),
			Writer:  cmd.ErrOrStderr(),
		}, prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer conv.Close()

		videoPath := args[0]
		file, err := os.Open(videoPath)
		if err != nil {
			return apperrors.Wrapf(apperrors.ErrExtraction, "open %s: %v", videoPath, err)
		}
		defer file.Close()

		result, err := conv.Convert(cmd.Context(), model.MediaInput{
			Reader:   file,
			Filename: filepath.Base(videoPath),
		})
		if err != nil {
			return err
		}
		conv.Close()

		logger.Debug("transcript", zap.String("full_text", result.Transcript.FullText))
		out := cmd.OutOrStdout()
		if !quiet {
			if err := shared.PrintRows(out, result.Rows); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d rows written to %s (backend %s)\n", len(result.Rows), result.OutputPath, result.Backend)
		return nil
	},
}
