package converter

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"video2csv/internal/app/api/provider"
	"video2csv/internal/app/api/riva"
	"video2csv/internal/app/audio"
	"video2csv/internal/app/converter/export"
	apperrors "video2csv/internal/app/errors"
	"video2csv/internal/app/model"
	"video2csv/internal/app/testutil"
)

type fixture struct {
	tempDir   string
	outputDir string
	extractor *testutil.StubExtractor
	backend   *testutil.MockBackend
	converter *Converter
}

func newFixture(t *testing.T, backendName string, format audio.Format, exportFormat string) *fixture {
	t.Helper()
	f := &fixture{
		tempDir:   t.TempDir(),
		outputDir: filepath.Join(t.TempDir(), "Output"),
		backend:   testutil.NewMockBackend(backendName, format),
	}
	f.extractor = testutil.NewStubExtractor(f.tempDir)
	f.converter = NewConverter(f.extractor, f.backend, Options{
		OutputDir: f.outputDir,
		Format:    exportFormat,
		TempDir:   f.tempDir,
	}, nil, zaptest.NewLogger(t))
	return f
}

func (f *fixture) assertTempDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary files must be released")
}

func (f *fixture) assertNoExport(t *testing.T) {
	t.Helper()
	_, err := os.Stat(f.outputDir)
	if err == nil {
		entries, err := os.ReadDir(f.outputDir)
		require.NoError(t, err)
		assert.Empty(t, entries, "no export may be written")
	}
}

func video(name string) model.MediaInput {
	return model.MediaInput{Reader: strings.NewReader("\x00\x00\x00\x18ftypmp42 fake video"), Filename: name}
}

func TestConvertScenarios(t *testing.T) {
	tests := []struct {
		name        string
		backendName string
		format      audio.Format
		payload     *provider.RawPayload
		expected    []model.ExportRow
	}{
		{
			name:        "verbose segments",
			backendName: "http",
			format:      audio.FormatMP3,
			payload:     provider.NewJSONPayload("http", []byte(testutil.VerbosePayload)),
			expected: []model.ExportRow{
				{Seconds: "0.00", Speaker: "Speaker 1", Text: "hi"},
				{Seconds: "1.20", Speaker: "Speaker 2", Text: "there"},
			},
		},
		{
			name:        "streaming results",
			backendName: "process",
			format:      audio.FormatWAV16kMono,
			payload:     provider.NewJSONPayload("process", []byte(testutil.StreamingPayload)),
			expected:    []model.ExportRow{{Seconds: "3", Speaker: "Speaker 2", Text: "hello world"}},
		},
		{
			name:        "full text only",
			backendName: "http",
			format:      audio.FormatMP3,
			payload:     provider.NewJSONPayload("http", []byte(testutil.FullTextPayload)),
			expected:    []model.ExportRow{{Seconds: "0", Speaker: "Speaker 1", Text: "fallback"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.backendName, tt.format, "csv")
			f.backend.On("Transcribe", mock.Anything, mock.Anything).Return(tt.payload, nil).Once()

			result, err := f.converter.Convert(context.Background(), video("team meeting.mp4"))
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(f.outputDir, "team meeting.csv"), result.OutputPath)
			assert.Equal(t, tt.expected, result.Rows)
			assert.Equal(t, tt.backendName, result.Backend)
			assert.Equal(t, 12.5, result.AudioDuration)
			assert.NotEmpty(t, result.RunID)

			reread, err := export.ReadCSV(result.OutputPath)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reread)

			assert.Equal(t, tt.format.Extension(), filepath.Ext(f.backend.LastWaveform()))
			assert.Equal(t, []bool{true}, f.backend.WaveformExisted)
			assert.Equal(t, []bool{true}, f.extractor.InputExisted)
			f.assertTempDirEmpty(t)
			f.backend.AssertExpectations(t)
		})
	}
}

func TestConvertXLSX(t *testing.T) {
	f := newFixture(t, "http", audio.FormatMP3, "xlsx")
	f.backend.On("Transcribe", mock.Anything, mock.Anything).
		Return(provider.NewJSONPayload("http", []byte(testutil.VerbosePayload)), nil)

	result, err := f.converter.Convert(context.Background(), video("clip.mov"))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(result.OutputPath))

	rows, err := export.ReadTable(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, result.Rows, rows)
}

func TestConvertBackendTimeoutReleasesWaveform(t *testing.T) {
	f := newFixture(t, "process", audio.FormatWAV16kMono, "csv")
	f.backend.On("Transcribe", mock.Anything, mock.Anything).Return(nil, &apperrors.BackendError{
		Backend:  "process",
		TimedOut: true,
		Timeout:  300 * time.Second,
	})

	result, err := f.converter.Convert(context.Background(), video("long.mp4"))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsTimeout(err))
	assert.True(t, stderrors.Is(err, apperrors.ErrBackend))

	waveform := f.backend.LastWaveform()
	require.NotEmpty(t, waveform)
	assert.Equal(t, []bool{true}, f.backend.WaveformExisted)
	assert.NoFileExists(t, waveform)
	f.assertTempDirEmpty(t)
	f.assertNoExport(t)
}

func TestConvertUnparseableProcessOutput(t *testing.T) {
	f := newFixture(t, "process", audio.FormatWAV16kMono, "csv")
	_, parseErr := riva.ExtractPayload("Connecting...\nERROR: stream closed\n")
	require.Error(t, parseErr)
	f.backend.On("Transcribe", mock.Anything, mock.Anything).Return(nil, parseErr)

	_, err := f.converter.Convert(context.Background(), video("clip.mp4"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrParse))
	assert.Equal(t, "parse", apperrors.Kind(err))
	f.assertTempDirEmpty(t)
	f.assertNoExport(t)
}

func TestConvertFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fixture)
		input   model.MediaInput
		target  error
		backend bool
	}{
		{
			name: "extraction failure",
			setup: func(f *fixture) {
				f.extractor.ExtractErr = apperrors.Wrap(apperrors.ErrExtraction, "moov atom not found")
			},
			input:  video("broken.mp4"),
			target: apperrors.ErrExtraction,
		},
		{
			name:   "missing reader",
			setup:  func(f *fixture) {},
			input:  model.MediaInput{Filename: "nothing.mp4"},
			target: apperrors.ErrExtraction,
		},
		{
			name: "empty transcript",
			setup: func(f *fixture) {
				f.backend.On("Transcribe", mock.Anything, mock.Anything).
					Return(provider.NewJSONPayload("http", []byte(`{"text":"   "}`)), nil)
			},
			input:   video("silence.mp4"),
			target:  apperrors.ErrEmptyTranscript,
			backend: true,
		},
		{
			name: "http error status",
			setup: func(f *fixture) {
				f.backend.On("Transcribe", mock.Anything, mock.Anything).
					Return(nil, &apperrors.BackendError{Backend: "http", StatusCode: 401, Body: "unauthorized"})
			},
			input:   video("clip.mp4"),
			target:  apperrors.ErrBackend,
			backend: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "http", audio.FormatMP3, "csv")
			tt.setup(f)

			result, err := f.converter.Convert(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, stderrors.Is(err, tt.target), "got %v", err)

			if tt.backend {
				assert.NoFileExists(t, f.backend.LastWaveform())
			} else {
				assert.Empty(t, f.backend.LastWaveform(), "backend must not be called")
			}
			f.assertTempDirEmpty(t)
			f.assertNoExport(t)
		})
	}
}

func TestConvertExportFailure(t *testing.T) {
	f := newFixture(t, "http", audio.FormatMP3, "csv")
	require.NoError(t, os.WriteFile(f.outputDir, []byte("not a directory"), 0o644))
	f.backend.On("Transcribe", mock.Anything, mock.Anything).
		Return(provider.NewJSONPayload("http", []byte(testutil.VerbosePayload)), nil)

	_, err := f.converter.Convert(context.Background(), video("clip.mp4"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrIO))
	f.assertTempDirEmpty(t)
}

func TestConvertDurationProbeFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, "http", audio.FormatMP3, "csv")
	f.extractor.DurationErr = stderrors.New("ffprobe: not found")
	f.backend.On("Transcribe", mock.Anything, mock.Anything).
		Return(provider.NewJSONPayload("http", []byte(testutil.FullTextPayload)), nil)

	result, err := f.converter.Convert(context.Background(), video("clip.mp4"))
	require.NoError(t, err)
	assert.Zero(t, result.AudioDuration)
}

func TestConvertRerunOverwrites(t *testing.T) {
	f := newFixture(t, "http", audio.FormatMP3, "csv")
	f.backend.On("Transcribe", mock.Anything, mock.Anything).
		Return(provider.NewJSONPayload("http", []byte(testutil.VerbosePayload)), nil).Once()
	f.backend.On("Transcribe", mock.Anything, mock.Anything).
		Return(provider.NewJSONPayload("http", []byte(testutil.FullTextPayload)), nil).Once()

	first, err := f.converter.Convert(context.Background(), video("clip.mp4"))
	require.NoError(t, err)
	second, err := f.converter.Convert(context.Background(), video("clip.mp4"))
	require.NoError(t, err)

	assert.Equal(t, first.OutputPath, second.OutputPath)
	assert.NotEqual(t, first.RunID, second.RunID)
	rows, err := export.ReadCSV(second.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, []model.ExportRow{{Seconds: "0", Speaker: "Speaker 1", Text: "fallback"}}, rows)
}

func TestConvertWithProgress(t *testing.T) {
	var out bytes.Buffer
	f := newFixture(t, "http", audio.FormatMP3, "csv")
	f.converter.progress = NewProgressManager(ProgressConfig{Enabled: true, Writer: &out})
	f.backend.On("Transcribe", mock.Anything, mock.Anything).
		Return(provider.NewJSONPayload("http", []byte(testutil.VerbosePayload)), nil)

	_, err := f.converter.Convert(context.Background(), video("clip.mp4"))
	require.NoError(t, err)

	closed := make(chan error, 1)
	go func() { closed <- f.converter.Close() }()
	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("progress did not finish")
	}
	assert.NotEmpty(t, out.String())
}

func TestProgressDisabledIsNoop(t *testing.T) {
	pm := NewProgressManager(ProgressConfig{Enabled: false})
	bar := pm.CreateBar("clip")
	bar.Advance("transcribe")
	bar.Abort()
	bar.Complete()
	pm.Wait()

	var nilManager *ProgressManager
	nilManager.CreateBar("clip").Complete()
	nilManager.Wait()

	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.True(t, ShouldShowProgress(true))
}
