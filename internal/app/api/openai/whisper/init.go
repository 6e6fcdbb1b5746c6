package whisper

import (
	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	appconfig "video2csv/internal/app/config"
)

func init() {
	provider.RegisterProvider(backendName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper backend from configuration
func createOpenAIProvider(cfg *appconfig.Config, logger *zap.Logger) (provider.Backend, error) {
	client := NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
	return NewRemoteTranscriber(client, cfg.OpenAI.Model, cfg.OpenAI.Timeout(), logger), nil
}
