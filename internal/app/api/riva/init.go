package riva

import (
	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	appconfig "video2csv/internal/app/config"
)

func init() {
	provider.RegisterProvider(backendName, createProcessProvider)
}

func createProcessProvider(cfg *appconfig.Config, logger *zap.Logger) (provider.Backend, error) {
	return NewProcessTranscriber(ProcessConfig{
		Command:      cfg.Process.Command,
		Server:       cfg.Process.Server,
		UseSSL:       cfg.Process.UseSSL,
		FunctionID:   cfg.Process.FunctionID,
		APIKey:       cfg.Process.APIKey,
		LanguageCode: cfg.Process.LanguageCode,
		MaxSpeakers:  cfg.Process.MaxSpeakers,
		Timeout:      cfg.Process.Timeout(),
	}, logger), nil
}
