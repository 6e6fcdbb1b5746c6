package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"video2csv/cmd/v2csv/cmd/shared"
	"video2csv/internal/api/server"
	"video2csv/internal/app"
	"video2csv/internal/app/converter"
	envconfig "video2csv/internal/config"
)

var (
	host           string
	port           string
	environment    string
	maxUploadBytes int64
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen address")
	Cmd.Flags().StringVar(&port, "port", envconfig.DefaultServePort, "listen port")
	Cmd.Flags().StringVar(&environment, "env", "production", "gin mode: production or development")
	Cmd.Flags().Int64Var(&maxUploadBytes, "max-upload-bytes", 2<<30, "largest accepted upload")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload API",
	Long: `Serve the upload API

- POST /api/v1/transcriptions with a multipart "file" field
- GET  /api/v1/exports/<name> downloads a written table
- GET  /health and /metrics for probes and Prometheus`,
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

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		conv, err := app.InitializeConverter(cfg, logger, converter.ProgressConfig{}, registry)
		if err != nil {
			return err
		}
		defer conv.Close()

		srv := server.NewServer(server.Config{
			Host:           host,
			Port:           port,
			ReadTimeout:    5 * time.Minute,
			WriteTimeout:   15 * time.Minute,
			IdleTimeout:    2 * time.Minute,
			Environment:    environment,
			OutputDir:      cfg.OutputDir,
			MaxUploadBytes: maxUploadBytes,
		}, conv, registry, conv.BackendName(), logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}
