package provider

import (
	"context"

	"video2csv/internal/app/audio"
)

// Backend turns an extracted audio file into a raw backend payload.
// Implementations must not retry and must honour ctx cancellation.
type Backend interface {
	// Name is the registry key of the backend, e.g. "http" or "process".
	Name() string

	// AudioFormat selects the extraction variant the backend consumes.
	AudioFormat() audio.Format

	// Transcribe sends the audio at waveformPath to the recognizer.
	Transcribe(ctx context.Context, waveformPath string) (*RawPayload, error)
}
