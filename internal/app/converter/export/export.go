package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/tealeg/xlsx"
	apperrors "video2csv/internal/app/errors"
	"video2csv/internal/app/model"
	"video2csv/internal/app/transcript"
)

// Header is the fixed column set of every export.
var Header = []string{"Seconds in video", "Speaker Name/Number", "Transcribed text"}

// SheetName is the worksheet written to .xlsx exports.
const SheetName = "Transcript"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BuildRows converts a transcript to table rows, one per segment in order.
func BuildRows(tr *model.Transcript) []model.ExportRow {
	return lo.Map(tr.Segments, func(seg model.Segment, i int) model.ExportRow {
		return model.ExportRow{
			Seconds: transcript.FormatSeconds(seg),
			Speaker: transcript.SpeakerLabel(seg, i),
			Text:    seg.Text,
		}
	})
}

// ToTable writes tr to destPath and returns the written path with the rows.
// The format follows the extension, .csv or .xlsx. Missing directories are
// created and an existing file is replaced. The file is written under a
// temporary name first so a failed run never leaves a partial export.
func ToTable(tr *model.Transcript, destPath string) (string, []model.ExportRow, error) {
	var write func(io.Writer, []model.ExportRow) error
	switch strings.ToLower(filepath.Ext(destPath)) {
	case ".csv":
		write = writeCSV
	case ".xlsx":
		write = writeXLSX
	default:
		return "", nil, apperrors.Wrapf(apperrors.ErrUnsupportedFile, "%q", filepath.Ext(destPath))
	}

	rows := BuildRows(tr)

	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, apperrors.Wrapf(apperrors.ErrIO, "create output directory: %v", err)
	}

	tmp, err := os.CreateTemp(dir, ".v2csv-export-*")
	if err != nil {
		return "", nil, apperrors.Wrapf(apperrors.ErrIO, "create export file: %v", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := write(tmp, rows); err != nil {
		tmp.Close()
		return "", nil, apperrors.Wrapf(apperrors.ErrIO, "write %s: %v", destPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", nil, apperrors.Wrapf(apperrors.ErrIO, "close %s: %v", destPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", nil, apperrors.Wrapf(apperrors.ErrIO, "chmod %s: %v", destPath, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", nil, apperrors.Wrapf(apperrors.ErrIO, "move export into place: %v", err)
	}
	return destPath, rows, nil
}

func writeCSV(w io.Writer, rows []model.ExportRow) error {
	buf := bufio.NewWriter(w)
	if _, err := buf.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(buf)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Seconds, r.Speaker, r.Text}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return buf.Flush()
}

func writeXLSX(w io.Writer, rows []model.ExportRow) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, title := range Header {
		headerRow.AddCell().SetString(title)
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Seconds)
		row.AddCell().SetString(r.Speaker)
		row.AddCell().SetString(r.Text)
	}
	return file.Write(w)
}

// ReadTable parses an export written by ToTable back into rows.
func ReadTable(path string) ([]model.ExportRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	}
	return nil, apperrors.Wrapf(apperrors.ErrUnsupportedFile, "%q", filepath.Ext(path))
}

// ReadCSV parses a CSV export. The byte order mark is optional and the header
// must match Header.
func ReadCSV(path string) ([]model.ExportRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrIO, "read %s: %v", path, err)
	}

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrIO, "parse %s: %v", path, err)
	}
	return fromRecords(path, records)
}

// ReadXLSX parses the first worksheet of an .xlsx export.
func ReadXLSX(path string) ([]model.ExportRow, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrIO, "open %s: %v", path, err)
	}
	if len(file.Sheets) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrIO, "%s has no worksheet", path)
	}

	records := lo.Map(file.Sheets[0].Rows, func(row *xlsx.Row, _ int) []string {
		return lo.Map(row.Cells, func(cell *xlsx.Cell, _ int) string { return cell.Value })
	})
	return fromRecords(path, records)
}

func fromRecords(path string, records [][]string) ([]model.ExportRow, error) {
	if len(records) == 0 || !slices.Equal(records[0], Header) {
		return nil, apperrors.Wrapf(apperrors.ErrIO, "%s does not start with the transcript header", path)
	}

	rows := make([]model.ExportRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(Header) {
			return nil, apperrors.Wrapf(apperrors.ErrIO, "%s row %d has %d columns", path, i+2, len(rec))
		}
		rows = append(rows, model.ExportRow{Seconds: rec[0], Speaker: rec[1], Text: rec[2]})
	}
	return rows, nil
}
