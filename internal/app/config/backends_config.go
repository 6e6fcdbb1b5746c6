package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	apperrors "video2csv/internal/app/errors"
	envconfig "video2csv/internal/config"
)

// Config is the full run configuration. Secrets are never read from YAML;
// they are filled in from the environment by ApplyCredentials.
type Config struct {
	Backend   string        `yaml:"backend" validate:"required,oneof=http openai process"`
	OutputDir string        `yaml:"output_dir" validate:"required"`
	Format    string        `yaml:"format" validate:"required,oneof=csv xlsx"`
	TempDir   string        `yaml:"temp_dir,omitempty"`
	FFmpeg    FFmpegConfig  `yaml:"ffmpeg"`
	HTTP      HTTPConfig    `yaml:"http"`
	OpenAI    OpenAIConfig  `yaml:"openai"`
	Process   ProcessConfig `yaml:"process"`
}

// FFmpegConfig locates the media binaries
type FFmpegConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path,omitempty"`
	FFProbePath string `yaml:"ffprobe_path,omitempty"`
}

// HTTPConfig configures the hosted verbose_json endpoint
type HTTPConfig struct {
	URL        string `yaml:"url" validate:"required,url"`
	Model      string `yaml:"model" validate:"required"`
	TimeoutSec int    `yaml:"timeout_sec" validate:"gte=1"`
	APIKey     string `yaml:"-"`
}

// OpenAIConfig configures the go-openai backend
type OpenAIConfig struct {
	BaseURL    string `yaml:"base_url" validate:"required,url"`
	Model      string `yaml:"model" validate:"required"`
	TimeoutSec int    `yaml:"timeout_sec" validate:"gte=1"`
	APIKey     string `yaml:"-"`
}

// ProcessConfig configures the streaming recognizer client
type ProcessConfig struct {
	Command      []string `yaml:"command" validate:"required,min=1,dive,required"`
	Server       string   `yaml:"server" validate:"required,hostname_port"`
	UseSSL       bool     `yaml:"use_ssl"`
	FunctionID   string   `yaml:"function_id"`
	LanguageCode string   `yaml:"language_code" validate:"required"`
	MaxSpeakers  int      `yaml:"max_speakers" validate:"gte=1,lte=32"`
	TimeoutSec   int      `yaml:"timeout_sec" validate:"gte=1"`
	APIKey       string   `yaml:"-"`
}

// Timeout returns the configured HTTP request timeout
func (c HTTPConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSec) * time.Second }

// Timeout returns the configured SDK request timeout
func (c OpenAIConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSec) * time.Second }

// Timeout returns the hard wall clock limit of one client run
func (c ProcessConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSec) * time.Second }

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Backend:   envconfig.DefaultBackend,
		OutputDir: envconfig.DefaultOutputDir,
		Format:    envconfig.DefaultExportFormat,
		HTTP: HTTPConfig{
			URL:        envconfig.DefaultHTTPURL,
			Model:      envconfig.DefaultHTTPModel,
			TimeoutSec: int(envconfig.DefaultHTTPTimeout / time.Second),
		},
		OpenAI: OpenAIConfig{
			BaseURL:    envconfig.DefaultOpenAIBaseURL,
			Model:      envconfig.DefaultOpenAIModel,
			TimeoutSec: int(envconfig.DefaultOpenAITimeout / time.Second),
		},
		Process: ProcessConfig{
			Command:      append([]string(nil), envconfig.DefaultProcessCommand...),
			Server:       envconfig.DefaultProcessServer,
			UseSSL:       true,
			LanguageCode: envconfig.DefaultProcessLanguageCode,
			MaxSpeakers:  envconfig.DefaultProcessMaxSpeakers,
			TimeoutSec:   int(envconfig.DefaultProcessTimeout / time.Second),
		},
	}
}

// Load reads configPath over the defaults. An empty path returns the defaults.
// ${VAR} references in the file are expanded from the environment.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(os.ExpandEnv(configPath))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfig, "failed to read config file: %v", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfig, "failed to parse YAML: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories
func Save(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	return os.WriteFile(configPath, data, 0o644)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints of the whole configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return apperrors.Wrapf(apperrors.ErrConfig, "%s failed on '%s' (value %v)",
				first.Namespace(), first.Tag(), first.Value())
		}
		return apperrors.Wrap(apperrors.ErrConfig, err.Error())
	}
	return nil
}

// ApplyCredentials copies the bearer key of the selected backend from the
// environment. A missing key is a startup error.
func (c *Config) ApplyCredentials(creds *envconfig.Credentials) error {
	key, err := creds.RequireCredential(c.Backend)
	if err != nil {
		return err
	}

	switch c.Backend {
	case "http":
		c.HTTP.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "process":
		c.Process.APIKey = key
		if c.Process.FunctionID == "" {
			c.Process.FunctionID = creds.RivaFunctionID
		}
		if c.Process.FunctionID == "" {
			return apperrors.RequiredField("RIVA_FUNCTION_ID")
		}
	}
	return nil
}
