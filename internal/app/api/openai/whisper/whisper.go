package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	"video2csv/internal/app/audio"
	apperrors "video2csv/internal/app/errors"
)

const backendName = "openai"

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, model string, timeout time.Duration, logger *zap.Logger) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteTranscriber{client: client, model: model, timeout: timeout, logger: logger}
}

// NewClient builds a go-openai client for apiKey, pointed at baseURL when set.
func NewClient(apiKey, baseURL string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

func (rt *RemoteTranscriber) Name() string { return backendName }

func (rt *RemoteTranscriber) AudioFormat() audio.Format { return audio.FormatMP3 }

// Transcribe requests a verbose_json transcription with segment timestamps
// and re-encodes the SDK response as a canonical segment list payload.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, waveformPath string) (*provider.RawPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, rt.timeout)
	defer cancel()

	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: waveformPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
		},
	}

	rt.logger.Info("sending transcription request", zap.String("model", rt.model), zap.String("file", waveformPath))

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, rt.handleAPIError(ctx, err)
	}

	doc := provider.Document{Text: &resp.Text}
	for _, seg := range resp.Segments {
		doc.Segments = append(doc.Segments, provider.VerboseSegment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrParse, "encode openai response: %v", err)
	}

	rt.logger.Info("transcription response received",
		zap.Int("segments", len(doc.Segments)),
		zap.Float64("duration", resp.Duration))

	return provider.NewJSONPayload(backendName, body), nil
}

// handleAPIError converts OpenAI SDK errors to BackendError
func (rt *RemoteTranscriber) handleAPIError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &apperrors.BackendError{Backend: backendName, TimedOut: true, Timeout: rt.timeout, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &apperrors.BackendError{
			Backend:    backendName,
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &apperrors.BackendError{
			Backend:    backendName,
			StatusCode: reqErr.HTTPStatusCode,
			Body:       reqErr.Error(),
		}
	}

	return &apperrors.BackendError{Backend: backendName, Err: fmt.Errorf("createTranscription failed: %w", err)}
}
