package shared

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"video2csv/internal/app/converter/export"
	"video2csv/internal/app/model"
)

// PrintRows renders export rows as an aligned preview table. Line breaks
// inside a text cell are flattened for display.
func PrintRows(w io.Writer, rows []model.ExportRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(export.Header, "\t"))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Seconds, r.Speaker, strings.ReplaceAll(r.Text, "\n", " "))
	}
	return tw.Flush()
}
