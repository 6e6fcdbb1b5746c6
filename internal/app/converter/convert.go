package converter

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	"video2csv/internal/app/audio"
	"video2csv/internal/app/converter/export"
	apperrors "video2csv/internal/app/errors"
	"video2csv/internal/app/model"
	"video2csv/internal/app/transcript"
	"video2csv/internal/app/util/files"
)

// AudioExtractor is the part of audio.Extractor the pipeline needs.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, inputFilePath string, format audio.Format) (string, error)
	GetAudioDuration(ctx context.Context, filePath string) (float64, error)
}

// Options configures where a Converter writes.
type Options struct {
	OutputDir string
	// Format is the export extension, "csv" or "xlsx".
	Format  string
	TempDir string
}

// Result describes one finished run.
type Result struct {
	RunID         string
	OutputPath    string
	Rows          []model.ExportRow
	Transcript    *model.Transcript
	Backend       string
	AudioDuration float64
}

// Converter runs the video to table pipeline. Runs are serialized.
type Converter struct {
	extractor AudioExtractor
	backend   provider.Backend
	options   Options
	progress  *ProgressManager
	logger    *zap.Logger
	mu        sync.Mutex
}

func NewConverter(extractor AudioExtractor, backend provider.Backend, options Options, progress *ProgressManager, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		extractor: extractor,
		backend:   backend,
		options:   options,
		progress:  progress,
		logger:    logger,
	}
}

// Close waits for the progress display to finish rendering.
func (c *Converter) Close() error {
	c.progress.Wait()
	return nil
}

// BackendName reports which backend this converter transcribes with.
func (c *Converter) BackendName() string {
	return c.backend.Name()
}

// Convert transcribes input and writes <OutputDir>/<stem>.<Format>. Every
// temporary file it creates is removed before it returns, whatever the
// outcome. Nothing is exported unless every stage succeeds.
func (c *Converter) Convert(ctx context.Context, input model.MediaInput) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	runID := uuid.NewString()
	logger := c.logger.With(zap.String("run_id", runID), zap.String("file", input.Filename))
	bar := c.progress.CreateBar(files.Stem(input.Filename))

	result, err := c.run(ctx, input, runID, logger, bar)
	if err != nil {
		bar.Abort()
		logger.Error("conversion failed", zap.String("kind", apperrors.Kind(err)), zap.Error(err))
		return nil, err
	}
	bar.Complete()
	return result, nil
}

func (c *Converter) run(ctx context.Context, input model.MediaInput, runID string, logger *zap.Logger, bar *ProgressBar) (*Result, error) {
	if input.Reader == nil {
		return nil, apperrors.Wrap(apperrors.ErrExtraction, "no input data")
	}
	start := time.Now()

	waveformPath, err := c.extractWaveform(ctx, input, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(waveformPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove waveform", zap.String("path", waveformPath), zap.Error(err))
		}
	}()
	bar.Advance("transcribe")

	duration, err := c.extractor.GetAudioDuration(ctx, waveformPath)
	if err != nil {
		logger.Warn("failed to get audio duration", zap.Error(err))
	} else {
		logger.Info("audio ready", zap.Float64("duration_sec", duration))
	}

	payload, err := c.backend.Transcribe(ctx, waveformPath)
	if err != nil {
		return nil, err
	}
	bar.Advance("normalize")

	tr, err := transcript.Normalize(payload)
	if err != nil {
		return nil, err
	}
	bar.Advance("export")

	outputPath, rows, err := export.ToTable(tr, files.OutputPath(c.options.OutputDir, input.Filename, c.options.Format))
	if err != nil {
		return nil, err
	}
	bar.Advance("done")

	logger.Info("conversion completed",
		zap.String("output", outputPath),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		RunID:         runID,
		OutputPath:    outputPath,
		Rows:          rows,
		Transcript:    tr,
		Backend:       c.backend.Name(),
		AudioDuration: duration,
	}, nil
}

// extractWaveform copies the upload to a scoped temp file, extracts the audio
// track the backend expects and drops the copy again.
func (c *Converter) extractWaveform(ctx context.Context, input model.MediaInput, logger *zap.Logger) (string, error) {
	containerPath, cleanup, err := files.CopyToTemp(input.Reader, c.options.TempDir, input.Filename)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrExtraction, "read upload: %v", err)
	}
	defer cleanup()
	logger.Debug("input copied", zap.String("path", containerPath))

	return c.extractor.ExtractAudio(ctx, containerPath, c.backend.AudioFormat())
}
