package app

import (
	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	"video2csv/internal/app/audio"
	appconfig "video2csv/internal/app/config"
	"video2csv/internal/app/converter"
)

func provideExtractor(cfg *appconfig.Config, logger *zap.Logger) *audio.Extractor {
	return audio.NewExtractor(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.FFProbePath, cfg.TempDir, logger.Named("audio"))
}

// provideBackend creates the configured backend wrapped with metrics
func provideBackend(cfg *appconfig.Config, logger *zap.Logger, metrics *provider.Metrics) (provider.Backend, error) {
	backend, err := provider.CreateProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	return metrics.Instrument(backend), nil
}

func provideOptions(cfg *appconfig.Config) converter.Options {
	return converter.Options{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		TempDir:   cfg.TempDir,
	}
}
