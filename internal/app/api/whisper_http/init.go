package whisper_http

import (
	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	appconfig "video2csv/internal/app/config"
)

func init() {
	provider.RegisterProvider(backendName, createHTTPProvider)
}

func createHTTPProvider(cfg *appconfig.Config, logger *zap.Logger) (provider.Backend, error) {
	return NewHTTPProvider(HTTPProviderConfig{
		URL:     cfg.HTTP.URL,
		APIKey:  cfg.HTTP.APIKey,
		Model:   cfg.HTTP.Model,
		Timeout: cfg.HTTP.Timeout(),
	}, logger), nil
}
