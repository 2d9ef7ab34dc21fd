package ui

import (
	"strings"
	"unicode/utf8"
)

const tableCellMaxWidth = 60
const tableCellEllipsis = "..."

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as an aligned table. Cells are
// flattened to a single line; column widths ignore ANSI styling so
// highlighted cells line up with plain ones.
func FormatTable(headers []string, rows [][]string) string {
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeTableCell(header)
	}

	normalizedRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		normalizedRow := make([]string, len(row))
		for i, cell := range row {
			normalizedRow[i] = normalizeTableCell(cell)
		}
		normalizedRows = append(normalizedRows, normalizedRow)
	}

	widths := make([]int, len(normalizedHeaders))
	for i, header := range normalizedHeaders {
		widths[i] = displayWidth(header)
	}
	for _, row := range normalizedRows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if cellWidth := displayWidth(cell); cellWidth > widths[i] {
				widths[i] = cellWidth
			}
		}
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			padding := widths[i] - displayWidth(cell)
			builder.WriteString(strings.Repeat(" ", padding+2))
		}
	}

	writeRow(normalizedHeaders)
	for _, row := range normalizedRows {
		writeRow(row)
	}

	return builder.String()
}

// TruncateTableCell limits cell width while preserving visible characters.
func TruncateTableCell(value string) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}

	max := tableCellMaxWidth - len(tableCellEllipsis)
	var builder strings.Builder
	visible := 0
	for i := 0; i < len(value); {
		if value[i] == '\x1b' {
			end := skipANSISequence(value, i)
			builder.WriteString(value[i:end])
			i = end
			continue
		}
		if visible >= max {
			break
		}
		_, size := utf8.DecodeRuneInString(value[i:])
		builder.WriteString(value[i : i+size])
		visible++
		i += size
	}
	return builder.String() + tableCellEllipsis
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

func displayWidth(value string) int {
	width := 0
	for i := 0; i < len(value); {
		if value[i] == '\x1b' {
			i = skipANSISequence(value, i)
			continue
		}
		_, size := utf8.DecodeRuneInString(value[i:])
		width++
		i += size
	}
	return width
}

// skipANSISequence returns the index just past the SGR escape sequence
// starting at i, or i+1 for a bare escape byte.
func skipANSISequence(value string, i int) int {
	end := i + 1
	if end < len(value) && value[end] == '[' {
		end++
		for end < len(value) && value[end] != 'm' {
			end++
		}
		if end < len(value) {
			end++
		}
	}
	return end
}
