package testutil

import (
	"context"
	"os"
	"sync"

	"video2csv/internal/app/audio"
)

// StubExtractor stands in for audio.Extractor without running ffmpeg
type StubExtractor struct {
	// Dir receives the fake waveforms, os.TempDir() when empty
	Dir string
	// ExtractErr, when set, is returned by ExtractAudio
	ExtractErr error
	// DurationErr, when set, is returned by GetAudioDuration
	DurationErr error
	Duration    float64

	mu     sync.Mutex
	inputs []string
	// InputExisted records whether each input copy was readable when
	// extraction ran.
	InputExisted []bool
}

func NewStubExtractor(dir string) *StubExtractor {
	return &StubExtractor{Dir: dir, Duration: 12.5}
}

func (s *StubExtractor) ExtractAudio(ctx context.Context, inputFilePath string, format audio.Format) (string, error) {
	s.mu.Lock()
	s.inputs = append(s.inputs, inputFilePath)
	s.InputExisted = append(s.InputExisted, fileExists(inputFilePath))
	s.mu.Unlock()

	if s.ExtractErr != nil {
		return "", s.ExtractErr
	}

	out, err := os.CreateTemp(s.Dir, "v2csv-audio-*"+format.Extension())
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := out.Write([]byte("RIFF fake waveform")); err != nil {
		return "", err
	}
	return out.Name(), nil
}

func (s *StubExtractor) GetAudioDuration(ctx context.Context, filePath string) (float64, error) {
	if s.DurationErr != nil {
		return 0, s.DurationErr
	}
	return s.Duration, nil
}

// Inputs returns the container paths extraction was asked to read
func (s *StubExtractor) Inputs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.inputs...)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
