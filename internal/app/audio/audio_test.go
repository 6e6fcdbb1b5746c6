package audio

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	apperrors "video2csv/internal/app/errors"
)

// writeScript drops an executable shell script standing in for ffmpeg/ffprobe.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "v2csv-audio-*"))
	require.NoError(t, err)
	return matches
}

func TestExtractAudio(t *testing.T) {
	testCases := []struct {
		name        string
		script      string
		format      Format
		expectError bool
		ext         string
	}{
		{
			name:   "wav for process backend",
			script: "for last; do :; done\nprintf 'RIFF0000WAVE' > \"$last\"\n",
			format: FormatWAV16kMono,
			ext:    ".wav",
		},
		{
			name:   "mp3 for http backend",
			script: "for last; do :; done\nprintf 'ID3' > \"$last\"\n",
			format: FormatMP3,
			ext:    ".mp3",
		},
		{
			name:        "ffmpeg failure",
			script:      "echo 'moov atom not found' >&2\nexit 1\n",
			format:      FormatWAV16kMono,
			expectError: true,
		},
		{
			name:        "empty output",
			script:      "exit 0\n",
			format:      FormatWAV16kMono,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			binDir := t.TempDir()
			tmpDir := t.TempDir()
			ffmpeg := writeScript(t, binDir, "ffmpeg", tc.script)
			extractor := NewExtractor(ffmpeg, "", tmpDir, zaptest.NewLogger(t))

			out, err := extractor.ExtractAudio(context.Background(), "/videos/input.mp4", tc.format)
			if tc.expectError {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, apperrors.ErrExtraction))
				assert.Empty(t, out)
				assert.Empty(t, leftovers(t, tmpDir), "failed extraction must not leave audio behind")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tmpDir, filepath.Dir(out))
			assert.Equal(t, tc.ext, filepath.Ext(out))
			assert.FileExists(t, out)
		})
	}
}

func TestExtractAudioPassesPCMArguments(t *testing.T) {
	binDir := t.TempDir()
	argsFile := filepath.Join(binDir, "args.txt")
	ffmpeg := writeScript(t, binDir, "ffmpeg",
		"echo \"$@\" > "+argsFile+"\nfor last; do :; done\nprintf 'RIFF' > \"$last\"\n")

	extractor := NewExtractor(ffmpeg, "", t.TempDir(), nil)
	out, err := extractor.ExtractAudio(context.Background(), "in.mp4", FormatWAV16kMono)
	require.NoError(t, err)
	defer os.Remove(out)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "-vn -acodec pcm_s16le -ar 16000 -ac 1")
}

func TestProbe(t *testing.T) {
	binDir := t.TempDir()
	ffprobe := writeScript(t, binDir, "ffprobe", `cat <<'JSON'
{"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000","channels":1,"bits_per_sample":16}],
 "format":{"duration":"12.480000"}}
JSON
`)
	extractor := NewExtractor("", ffprobe, "", nil)

	ok, err := extractor.Is16kHzMonoWav(context.Background(), "a.wav")
	require.NoError(t, err)
	assert.True(t, ok)

	duration, err := extractor.GetAudioDuration(context.Background(), "a.wav")
	require.NoError(t, err)
	assert.InDelta(t, 12.48, duration, 0.0001)
}

func TestProbeRejectsStereo(t *testing.T) {
	binDir := t.TempDir()
	ffprobe := writeScript(t, binDir, "ffprobe", `echo '{"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000","channels":2}],"format":{"duration":"1.0"}}'
`)
	extractor := NewExtractor("", ffprobe, "", nil)

	ok, err := extractor.Is16kHzMonoWav(context.Background(), "a.wav")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestExtractAudioWithFFmpeg runs the real binaries when they are installed.
func TestExtractAudioWithFFmpeg(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}

	dir := t.TempDir()
	video := filepath.Join(dir, "tone.mp4")
	gen := exec.Command("ffmpeg", "-y", "-f", "lavfi", "-i", "sine=frequency=440:duration=2",
		"-f", "lavfi", "-i", "color=c=black:s=64x64:d=2", "-shortest", "-ac", "2", "-ar", "44100", video)
	if out, err := gen.CombinedOutput(); err != nil {
		t.Skipf("ffmpeg cannot synthesize test video: %v %s", err, out)
	}

	extractor := NewExtractor("", "", dir, zaptest.NewLogger(t))
	ctx := context.Background()

	wav, err := extractor.ExtractAudio(ctx, video, FormatWAV16kMono)
	require.NoError(t, err)
	defer os.Remove(wav)

	probe, err := extractor.ProbeStreams(ctx, wav)
	require.NoError(t, err)
	require.Len(t, probe.Streams, 1)
	assert.Equal(t, "pcm_s16le", probe.Streams[0].CodecName)
	assert.Equal(t, 16000, probe.Streams[0].SampleRate)
	assert.Equal(t, 1, probe.Streams[0].Channels)
	assert.Equal(t, 16, probe.Streams[0].BitsPerSample)

	srcDuration, err := extractor.GetAudioDuration(ctx, video)
	require.NoError(t, err)
	wavDuration, err := extractor.GetAudioDuration(ctx, wav)
	require.NoError(t, err)
	assert.InDelta(t, srcDuration, wavDuration, 0.1)
}
