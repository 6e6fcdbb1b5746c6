package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	apperrors "video2csv/internal/app/errors"
)

// Credentials holds all secrets loaded from environment
type Credentials struct {
	NVIDIA         string
	OpenAI         string
	RivaFunctionID string
}

// LoadEnv loads environment variables from .env file if it exists.
// Variables already set in the process environment win.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// GetCredentials reads the credentials from the environment
func GetCredentials() *Credentials {
	return &Credentials{
		NVIDIA:         strings.TrimSpace(os.Getenv("NVIDIA_API_KEY")),
		OpenAI:         strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		RivaFunctionID: strings.TrimSpace(os.Getenv("RIVA_FUNCTION_ID")),
	}
}

// RequireCredential returns the bearer key needed by backend, or a
// configuration error naming the missing variable.
func (c *Credentials) RequireCredential(backend string) (string, error) {
	switch backend {
	case "http", "process":
		if c.NVIDIA == "" {
			return "", apperrors.Wrap(apperrors.ErrMissingAPIKey,
				"NVIDIA_API_KEY not found, set it in the environment or in a .env file (NVIDIA_API_KEY=your_api_key_here)")
		}
		return c.NVIDIA, nil
	case "openai":
		if c.OpenAI == "" {
			return "", apperrors.Wrap(apperrors.ErrMissingAPIKey,
				"OPENAI_API_KEY not found, set it in the environment or in a .env file")
		}
		if !strings.HasPrefix(c.OpenAI, "sk-") {
			return "", apperrors.Wrap(apperrors.ErrConfig, "invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		return c.OpenAI, nil
	}
	return "", apperrors.Wrapf(apperrors.ErrUnknownBackend, "%q", backend)
}

// InitializeConfig loads the .env file and returns the credentials.
// This is the main entry point for configuration loading
func InitializeConfig() (*Credentials, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfig, err.Error())
	}
	return GetCredentials(), nil
}
