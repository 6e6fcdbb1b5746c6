package shared

import (
	"go.uber.org/zap"
	appconfig "video2csv/internal/app/config"
	"video2csv/internal/app/logging"
	envconfig "video2csv/internal/config"
)

// Flags holds the persistent flags of the root command
var Flags struct {
	ConfigPath string
	Verbose    bool
	Backend    string
	Format     string
	OutputDir  string
}

// LoadConfig reads .env and the config file, applies flag overrides and
// resolves the credential of the selected backend. A missing credential is
// reported here, before any work starts.
func LoadConfig() (*appconfig.Config, error) {
	creds, err := envconfig.InitializeConfig()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfigWithoutCredentials()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyCredentials(creds); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigWithoutCredentials reads the config file and flag overrides only
func LoadConfigWithoutCredentials() (*appconfig.Config, error) {
	cfg, err := appconfig.Load(Flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	if Flags.Backend != "" {
		cfg.Backend = Flags.Backend
	}
	if Flags.Format != "" {
		cfg.Format = Flags.Format
	}
	if Flags.OutputDir != "" {
		cfg.OutputDir = Flags.OutputDir
	}
	return cfg, cfg.Validate()
}

// NewLogger builds the process logger from the verbose flag
func NewLogger() (*zap.Logger, error) {
	return logging.NewLogger(Flags.Verbose)
}
