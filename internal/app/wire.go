//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	"video2csv/internal/app/audio"
	appconfig "video2csv/internal/app/config"
	"video2csv/internal/app/converter"
)

// InitializeConverter builds the pipeline for the backend selected in cfg.
// Backend calls are recorded in registerer.
func InitializeConverter(cfg *appconfig.Config, logger *zap.Logger, progress converter.ProgressConfig, registerer prometheus.Registerer) (*converter.Converter, error) {
	wire.Build(
		provideExtractor,
		provider.NewMetrics,
		provideBackend,
		provideOptions,
		converter.NewProgressManager,
		converter.NewConverter,
		wire.Bind(new(converter.AudioExtractor), new(*audio.Extractor)),
	)
	return &converter.Converter{}, nil
}
