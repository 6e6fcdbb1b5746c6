package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"video2csv/internal/app/api/provider"
	"video2csv/internal/app/audio"
)

// MockBackend is a testify mock of provider.Backend
type MockBackend struct {
	mock.Mock
	mu sync.Mutex

	name   string
	format audio.Format

	// WaveformExisted records, per call, whether the waveform was on disk
	// while the backend ran.
	WaveformExisted []bool
	waveforms       []string
}

// NewMockBackend creates a MockBackend reporting name and format
func NewMockBackend(name string, format audio.Format) *MockBackend {
	return &MockBackend{name: name, format: format}
}

func (m *MockBackend) Name() string { return m.name }

func (m *MockBackend) AudioFormat() audio.Format { return m.format }

// Transcribe implements provider.Backend
func (m *MockBackend) Transcribe(ctx context.Context, waveformPath string) (*provider.RawPayload, error) {
	m.mu.Lock()
	m.waveforms = append(m.waveforms, waveformPath)
	m.WaveformExisted = append(m.WaveformExisted, fileExists(waveformPath))
	m.mu.Unlock()

	args := m.Called(ctx, waveformPath)
	var payload *provider.RawPayload
	if p := args.Get(0); p != nil {
		payload = p.(*provider.RawPayload)
	}
	return payload, args.Error(1)
}

// LastWaveform returns the path handed to the most recent Transcribe call
func (m *MockBackend) LastWaveform() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.waveforms) == 0 {
		return ""
	}
	return m.waveforms[len(m.waveforms)-1]
}
