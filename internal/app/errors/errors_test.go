package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsTaxonomy(t *testing.T) {
	err := Wrapf(ErrExtraction, "ffmpeg failed for %s", "clip.mp4")
	wrapped := fmt.Errorf("run: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrExtraction))
	assert.False(t, stderrors.Is(wrapped, ErrBackend))
	assert.Contains(t, wrapped.Error(), "clip.mp4")
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestBackendError(t *testing.T) {
	testCases := []struct {
		name     string
		err      *BackendError
		contains string
		timeout  bool
	}{
		{
			name:     "status code",
			err:      &BackendError{Backend: "http", StatusCode: 401, Body: `{"error":"bad key"}`},
			contains: "status 401",
		},
		{
			name:     "exit code",
			err:      &BackendError{Backend: "process", ExitCode: 2, Body: "usage"},
			contains: "exited with code 2",
		},
		{
			name:     "timeout",
			err:      &BackendError{Backend: "process", TimedOut: true, Timeout: 300 * time.Second, Err: context.DeadlineExceeded},
			contains: "timed out after 5m0s",
			timeout:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, tc.err.Error(), tc.contains)
			assert.True(t, stderrors.Is(tc.err, ErrBackend))
			assert.Equal(t, tc.timeout, IsTimeout(fmt.Errorf("wrapped: %w", tc.err)))
		})
	}

	var be *BackendError
	err := fmt.Errorf("outer: %w", &BackendError{Backend: "process", TimedOut: true, Err: context.DeadlineExceeded})
	assert.True(t, stderrors.As(err, &be))
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ok", Kind(nil))
	assert.Equal(t, "config", Kind(ErrMissingAPIKey))
	assert.Equal(t, "config", Kind(RequiredField("api_key")))
	assert.Equal(t, "extraction", Kind(Wrap(ErrExtraction, "x")))
	assert.Equal(t, "backend", Kind(&BackendError{Backend: "http", StatusCode: 500}))
	assert.Equal(t, "timeout", Kind(&BackendError{Backend: "process", TimedOut: true}))
	assert.Equal(t, "parse", Kind(Wrap(ErrParse, "x")))
	assert.Equal(t, "empty_transcript", Kind(ErrEmptyTranscript))
	assert.Equal(t, "io", Kind(ErrUnsupportedFile))
	assert.Equal(t, "unknown", Kind(stderrors.New("other")))
}
