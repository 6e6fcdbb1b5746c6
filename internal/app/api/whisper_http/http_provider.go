package whisper_http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	"video2csv/internal/app/audio"
	apperrors "video2csv/internal/app/errors"
)

const backendName = "http"

// HTTPProvider posts audio to a hosted verbose_json transcription endpoint
type HTTPProvider struct {
	config HTTPProviderConfig
	client *http.Client
	logger *zap.Logger
}

// HTTPProviderConfig represents configuration for the hosted endpoint
type HTTPProviderConfig struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewHTTPProvider creates a new hosted endpoint provider
func NewHTTPProvider(config HTTPProviderConfig, logger *zap.Logger) *HTTPProvider {
	if config.Timeout == 0 {
		config.Timeout = 300 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

func (hp *HTTPProvider) Name() string { return backendName }

func (hp *HTTPProvider) AudioFormat() audio.Format { return audio.FormatMP3 }

// Transcribe uploads the audio once. Non-200 responses are returned as a
// BackendError carrying status and body; nothing is retried.
func (hp *HTTPProvider) Transcribe(ctx context.Context, waveformPath string) (*provider.RawPayload, error) {
	body, contentType, err := hp.createMultipartForm(waveformPath)
	if err != nil {
		return nil, &apperrors.BackendError{Backend: backendName, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, hp.config.URL, body)
	if err != nil {
		return nil, &apperrors.BackendError{Backend: backendName, Err: fmt.Errorf("failed to create HTTP request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", "Bearer "+hp.config.APIKey)
	httpReq.Header.Set("Accept", "application/json")

	hp.logger.Info("sending transcription request",
		zap.String("url", hp.config.URL),
		zap.String("model", hp.config.Model),
		zap.Int("body_bytes", body.Len()))

	start := time.Now()
	resp, err := hp.client.Do(httpReq)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &apperrors.BackendError{Backend: backendName, TimedOut: true, Timeout: hp.config.Timeout, Err: err}
		}
		return nil, &apperrors.BackendError{Backend: backendName, Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.BackendError{Backend: backendName, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.BackendError{
			Backend:    backendName,
			StatusCode: resp.StatusCode,
			Body:       string(responseData),
		}
	}

	hp.logger.Info("transcription response received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_bytes", len(responseData)))

	return provider.NewJSONPayload(backendName, responseData), nil
}

// createMultipartForm creates the multipart form for the API request
func (hp *HTTPProvider) createMultipartForm(waveformPath string) (*bytes.Buffer, string, error) {
	file, err := os.Open(waveformPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(waveformPath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file content: %w", err)
	}

	fields := [][2]string{
		{"model", hp.config.Model},
		{"timestamp_granularities[]", "segment"},
		{"response_format", "verbose_json"},
	}
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field[0], err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
