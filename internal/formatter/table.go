// Package formatter renders tables as aligned markdown for terminal previews.
package formatter

import (
	"strings"

	"dataclean/internal/models"
	"dataclean/pkg/utils"

	"github.com/mattn/go-runewidth"
)

const (
	absentCell   = "<NA>"
	maxCellRunes = 32
	minColWidth  = 3
)

// RenderTable formats the first limit records of the table as a markdown
// table. Absent values show as "<NA>"; long cells are truncated. A limit <= 0
// renders every record.
func RenderTable(table *models.Table, limit int) string {
	records := table.Records
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, cleanCells(table.Columns))

	for _, rec := range records {
		cells := make([]string, len(table.Columns))

		for i, f := range table.Values(rec) {
			if !f.Valid {
				cells[i] = absentCell
				continue
			}

			cells[i] = f.Value
		}

		rows = append(rows, cleanCells(cells))
	}

	return strings.Join(alignRows(rows), "\n")
}

func cleanCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = utils.NormalizeWhitespace(c)
		c = strings.ReplaceAll(c, "|", `\|`)
		out[i] = utils.TruncateString(c, maxCellRunes)
	}

	return out
}

// alignRows pads every cell to its column's display width. The first row is
// the header and is followed by a separator row.
func alignRows(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	colCount := len(rows[0])

	// Calculate max widths (using display width)
	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			if width := runewidth.StringWidth(row[i]); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < minColWidth {
			colWidths[i] = minColWidth
		}
	}

	result := make([]string, 0, len(rows)+1)

	for i, row := range rows {
		result = append(result, renderRow(row, colWidths))

		if i == 0 {
			sep := make([]string, colCount)
			for j, w := range colWidths {
				sep[j] = strings.Repeat("-", w)
			}

			result = append(result, renderRow(sep, colWidths))
		}
	}

	return result
}

func renderRow(cells []string, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, w := range widths {
		content := ""
		if j < len(cells) {
			content = cells[j]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		// Pad with spaces based on display width
		if padding := w - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
