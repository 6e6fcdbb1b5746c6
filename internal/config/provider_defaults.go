package config

import "time"

// Backend default configuration constants
const (
	// Hosted verbose_json transcription endpoint
	DefaultHTTPURL     = "https://integrate.api.nvidia.com/v1/audio/transcriptions"
	DefaultHTTPModel   = "whisper-large-v3"
	DefaultHTTPTimeout = 300 * time.Second

	// OpenAI SDK backend
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "whisper-1"
	DefaultOpenAITimeout = 300 * time.Second

	// Streaming recognizer client
	DefaultProcessServer       = "grpc.nvcf.nvidia.com:443"
	DefaultProcessLanguageCode = "en-US"
	DefaultProcessMaxSpeakers  = 5
	DefaultProcessTimeout      = 300 * time.Second

	// Output
	DefaultOutputDir    = "Output"
	DefaultExportFormat = "csv"
	DefaultBackend      = "http"
	DefaultServePort    = "8080"
)

// DefaultProcessCommand is the client invocation, before per-run flags.
var DefaultProcessCommand = []string{"python3", "python-clients/scripts/asr/transcribe_file.py"}
