package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// Preview prints records as an aligned table for terminals. Cells wider than
// maxWidth display columns are truncated; maxWidth <= 0 disables truncation.
func Preview(w io.Writer, header []string, records [][]string, maxWidth int) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, header)
	for _, rec := range records {
		cells := make([]string, len(rec))
		for i, f := range rec {
			cells[i] = EscapeField(f)
			if maxWidth > 0 && runewidth.StringWidth(cells[i]) > maxWidth {
				cells[i] = runewidth.Truncate(cells[i], maxWidth, "…")
			}
		}
		rows = append(rows, cells)
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	bw := bufio.NewWriter(w)
	for n, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				line.WriteString(columnGap)
			}
			line.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')

		if n == 0 {
			total := 0
			for _, wd := range widths {
				total += wd
			}
			total += len(columnGap) * max(len(widths)-1, 0)
			bw.WriteString(strings.Repeat("-", total))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
