package export

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "video2csv/internal/app/errors"
	"video2csv/internal/app/model"
)

func intPtr(v int) *int { return &v }

func sampleTranscript() *model.Transcript {
	return &model.Transcript{
		FullText: "hi, there \"quoted\" 日本語",
		Segments: []model.Segment{
			{Start: 0, Text: "hi, there", Resolution: model.ResolutionCentiseconds},
			{Start: 1.2, Text: "\"quoted\"\nline", Resolution: model.ResolutionCentiseconds},
			{Start: 2.6, Text: "日本語", SpeakerTag: intPtr(3), Resolution: model.ResolutionSeconds},
		},
	}
}

var expectedRows = []model.ExportRow{
	{Seconds: "0.00", Speaker: "Speaker 1", Text: "hi, there"},
	{Seconds: "1.20", Speaker: "Speaker 2", Text: "\"quoted\"\nline"},
	{Seconds: "3", Speaker: "Speaker 4", Text: "日本語"},
}

func TestBuildRows(t *testing.T) {
	assert.Equal(t, expectedRows, BuildRows(sampleTranscript()))
	assert.Empty(t, BuildRows(&model.Transcript{}))
}

func TestToTableRoundTrip(t *testing.T) {
	for _, ext := range []string{".csv", ".xlsx"} {
		t.Run(ext, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "nested", "Output", "clip"+ext)

			path, rows, err := ToTable(sampleTranscript(), dest)
			require.NoError(t, err)
			assert.Equal(t, dest, path)
			assert.Equal(t, expectedRows, rows)

			reread, err := ReadTable(path)
			require.NoError(t, err)
			assert.Equal(t, expectedRows, reread)

			leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(dest), ".v2csv-export-*"))
			require.NoError(t, err)
			assert.Empty(t, leftovers)
		})
	}
}

func TestToTableCSVEncoding(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clip.csv")
	_, _, err := ToTable(&model.Transcript{
		FullText: "fallback",
		Segments: []model.Segment{{Start: 0, Text: "fallback"}},
	}, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFSeconds in video,Speaker Name/Number,Transcribed text\n0,Speaker 1,fallback\n", string(data))
}

func TestToTableOverwrites(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clip.csv")
	require.NoError(t, os.WriteFile(dest, []byte("stale content that is much longer than the export"), 0o644))

	_, _, err := ToTable(&model.Transcript{Segments: []model.Segment{{Text: "new"}}}, dest)
	require.NoError(t, err)

	rows, err := ReadCSV(dest)
	require.NoError(t, err)
	assert.Equal(t, []model.ExportRow{{Seconds: "0", Speaker: "Speaker 1", Text: "new"}}, rows)
}

func TestToTableErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, _, err := ToTable(sampleTranscript(), filepath.Join(t.TempDir(), "clip.pdf"))
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrIO))
	})

	t.Run("directory cannot be created", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))

		_, _, err := ToTable(sampleTranscript(), filepath.Join(blocker, "clip.csv"))
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrIO))
		assert.Equal(t, "io", apperrors.Kind(err))
	})
}

func TestReadCSVRejectsForeignFiles(t *testing.T) {
	dir := t.TempDir()

	wrongHeader := filepath.Join(dir, "wrong.csv")
	require.NoError(t, os.WriteFile(wrongHeader, []byte("a,b,c\n1,2,3\n"), 0o644))
	_, err := ReadCSV(wrongHeader)
	assert.True(t, stderrors.Is(err, apperrors.ErrIO))

	noBOM := filepath.Join(dir, "plain.csv")
	require.NoError(t, os.WriteFile(noBOM, []byte("Seconds in video,Speaker Name/Number,Transcribed text\n0.00,Speaker 1,hi\n"), 0o644))
	rows, err := ReadCSV(noBOM)
	require.NoError(t, err)
	assert.Equal(t, []model.ExportRow{{Seconds: "0.00", Speaker: "Speaker 1", Text: "hi"}}, rows)

	_, err = ReadCSV(filepath.Join(dir, "missing.csv"))
	assert.True(t, stderrors.Is(err, apperrors.ErrIO))
}
