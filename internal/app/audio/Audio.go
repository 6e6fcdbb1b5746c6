package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
	apperrors "video2csv/internal/app/errors"
	"video2csv/internal/app/model"
)

// Format selects the encoding of the extracted audio track.
type Format string

const (
	// FormatWAV16kMono is 16 kHz, mono, signed 16-bit little endian PCM.
	FormatWAV16kMono Format = "wav16k"
	// FormatMP3 is a compressed track accepted by hosted transcription APIs.
	FormatMP3 Format = "mp3"
)

const (
	SampleRate = 16000
	Channels   = 1
	PCMCodec   = "pcm_s16le"
)

// Extension returns the file extension, with dot, used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMP3:
		return ".mp3"
	default:
		return ".wav"
	}
}

func (f Format) codecArgs() []string {
	switch f {
	case FormatMP3:
		return []string{"-acodec", "libmp3lame", "-q:a", "2"}
	default:
		return []string{"-acodec", PCMCodec, "-ar", strconv.Itoa(SampleRate), "-ac", strconv.Itoa(Channels)}
	}
}

// Extractor wraps the ffmpeg and ffprobe binaries.
type Extractor struct {
	FFmpegPath  string
	FFProbePath string
	// TempDir is where extracted tracks are written, os.TempDir() when empty.
	TempDir string
	logger  *zap.Logger
}

func NewExtractor(ffmpegPath, ffprobePath, tempDir string, logger *zap.Logger) *Extractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		FFmpegPath:  ffmpegPath,
		FFProbePath: ffprobePath,
		TempDir:     tempDir,
		logger:      logger,
	}
}

// ExtractAudio demuxes the audio track of inputFilePath into a new temporary
// file encoded as format and returns its path. The caller owns the returned
// file. On failure nothing is left behind.
func (e *Extractor) ExtractAudio(ctx context.Context, inputFilePath string, format Format) (string, error) {
	out, err := os.CreateTemp(e.TempDir, "v2csv-audio-*"+format.Extension())
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrExtraction, "create audio temp file: %v", err)
	}
	outputPath := out.Name()
	out.Close()

	args := append([]string{"-y", "-nostdin", "-i", inputFilePath, "-vn"}, format.codecArgs()...)
	args = append(args, outputPath)

	e.logger.Debug("extracting audio",
		zap.String("input", inputFilePath),
		zap.String("format", string(format)),
		zap.String("output", outputPath))

	cmd := exec.CommandContext(ctx, e.FFmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		return "", apperrors.Wrapf(apperrors.ErrExtraction, "FFmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		os.Remove(outputPath)
		return "", apperrors.Wrapf(apperrors.ErrExtraction, "ffmpeg produced no audio for %s", inputFilePath)
	}

	e.logger.Info("audio extraction completed", zap.String("output", outputPath), zap.Int64("bytes", info.Size()))
	return outputPath, nil
}

// ProbeStreams runs ffprobe and decodes its stream and format description.
func (e *Extractor) ProbeStreams(ctx context.Context, filePath string) (*model.FFProbeOutput, error) {
	cmd := exec.CommandContext(ctx, e.FFProbePath, "-v", "quiet", "-print_format", "json", "-show_streams", "-show_format", filePath)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", filePath, err)
	}

	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}
	return &probeOutput, nil
}

// GetAudioDuration returns the container duration in seconds.
func (e *Extractor) GetAudioDuration(ctx context.Context, filePath string) (float64, error) {
	probe, err := e.ProbeStreams(ctx, filePath)
	if err != nil {
		return 0, err
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}

// Is16kHzMonoWav reports whether the file holds a mono 16 kHz s16le track.
func (e *Extractor) Is16kHzMonoWav(ctx context.Context, filePath string) (bool, error) {
	probe, err := e.ProbeStreams(ctx, filePath)
	if err != nil {
		return false, err
	}

	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" &&
			stream.CodecName == PCMCodec &&
			stream.SampleRate == SampleRate &&
			stream.Channels == Channels {
			return true, nil
		}
	}
	return false, nil
}
