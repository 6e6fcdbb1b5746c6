package riva

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"video2csv/internal/app/api/provider"
	"video2csv/internal/app/audio"
	apperrors "video2csv/internal/app/errors"
)

const backendName = "process"

// ProcessTranscriber runs an external streaming recognizer client once per
// file and scrapes its standard output.
type ProcessTranscriber struct {
	config ProcessConfig
	logger *zap.Logger
}

// ProcessConfig describes the client invocation
type ProcessConfig struct {
	// Command is the executable and its leading arguments, e.g.
	// ["python3", "transcribe_file.py"].
	Command      []string
	Server       string
	UseSSL       bool
	FunctionID   string
	APIKey       string
	LanguageCode string
	MaxSpeakers  int
	Timeout      time.Duration
}

// NewProcessTranscriber creates a new instance of ProcessTranscriber.
func NewProcessTranscriber(config ProcessConfig, logger *zap.Logger) *ProcessTranscriber {
	if config.Timeout == 0 {
		config.Timeout = 300 * time.Second
	}
	if config.MaxSpeakers == 0 {
		config.MaxSpeakers = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessTranscriber{config: config, logger: logger}
}

func (pt *ProcessTranscriber) Name() string { return backendName }

func (pt *ProcessTranscriber) AudioFormat() audio.Format { return audio.FormatWAV16kMono }

func (pt *ProcessTranscriber) args(waveformPath string, apiKey string) []string {
	args := append([]string{}, pt.config.Command[1:]...)
	args = append(args, "--server", pt.config.Server)
	if pt.config.UseSSL {
		args = append(args, "--use-ssl")
	}
	args = append(args,
		"--metadata", "function-id", pt.config.FunctionID,
		"--metadata", "authorization", "Bearer "+apiKey,
		"--language-code", pt.config.LanguageCode,
		"--input-file", waveformPath,
		"--word-time-offsets",
		"--automatic-punctuation",
		"--speaker-diarization",
		"--diarization-max-speakers", strconv.Itoa(pt.config.MaxSpeakers),
	)
	return args
}

// Transcribe runs the client under a hard timeout. A timeout and a non-zero
// exit are reported as distinct BackendErrors.
func (pt *ProcessTranscriber) Transcribe(ctx context.Context, waveformPath string) (*provider.RawPayload, error) {
	if len(pt.config.Command) == 0 {
		return nil, apperrors.RequiredField("process command")
	}

	ctx, cancel := context.WithTimeout(ctx, pt.config.Timeout)
	defer cancel()

	command := exec.CommandContext(ctx, pt.config.Command[0], pt.args(waveformPath, pt.config.APIKey)...)
	command.WaitDelay = 5 * time.Second
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	pt.logger.Info("running transcription command",
		zap.String("command", pt.config.Command[0]),
		zap.String("args", strings.Join(pt.args(waveformPath, "***"), " ")),
		zap.Duration("timeout", pt.config.Timeout))

	start := time.Now()
	err := command.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		pt.logger.Warn("transcription command timed out", zap.Duration("elapsed", time.Since(start)))
		return nil, &apperrors.BackendError{
			Backend:  backendName,
			TimedOut: true,
			Timeout:  pt.config.Timeout,
			Err:      context.DeadlineExceeded,
		}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return nil, &apperrors.BackendError{
				Backend:  backendName,
				ExitCode: exitErr.ExitCode(),
				Body:     strings.TrimSpace(stderr.String()),
			}
		}
		return nil, &apperrors.BackendError{Backend: backendName, Err: fmt.Errorf("command execution error: %w", err)}
	}

	pt.logger.Info("transcription command finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("stdout_bytes", stdout.Len()))

	return ExtractPayload(stdout.String())
}
