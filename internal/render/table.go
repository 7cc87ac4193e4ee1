package render

import (
	"strings"

	"github.com/mithrel/answerview/pkg/api"
)

// MaxRows caps how many rows a table displays, whatever the reported total.
const MaxRows = 20

// Table is a rendered result grid. Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NormalizeRows projects up to MaxRows rows onto columns as display strings.
// Object rows are looked up by column name, positional rows by index and
// scalars fill the first cell. Missing cells are empty.
func NormalizeRows(columns []string, rows []api.Value) [][]string {
	if len(columns) == 0 || len(rows) == 0 {
		return nil
	}
	if len(rows) > MaxRows {
		rows = rows[:MaxRows]
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(columns))
		switch {
		case row.IsObject():
			for i, col := range columns {
				cells[i] = Coerce(row.Field(col))
			}
		case row.IsArray():
			elems := row.Elems()
			for i := range cells {
				if i < len(elems) {
					cells[i] = Coerce(elems[i])
				}
			}
		default:
			cells[0] = Coerce(row)
		}
		out = append(out, cells)
	}
	return out
}

// RenderTable builds a table from raw rows. It returns nil when there is
// nothing to show.
func RenderTable(columns []string, rows []api.Value) *Table {
	body := NormalizeRows(columns, rows)
	if len(body) == 0 {
		return nil
	}
	return &Table{Columns: append([]string(nil), columns...), Rows: body}
}

// HTML renders the table as an escaped HTML fragment. URL cells become
// links that open in a new tab without access to the opener.
func (t *Table) HTML() string {
	if t == nil || len(t.Columns) == 0 || len(t.Rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="result-scroll"><table class="result-table"><thead><tr>`)
	for _, col := range t.Columns {
		b.WriteString("<th>")
		b.WriteString(EscapeHTML(col))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			writeCellHTML(&b, cell)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></div>")
	return b.String()
}

func writeCellHTML(b *strings.Builder, cell string) {
	switch {
	case cell == "":
		b.WriteString("<td></td>")
	case IsURL(cell):
		b.WriteString(`<td><a href="`)
		b.WriteString(EscapeAttr(cell))
		b.WriteString(`" target="_blank" rel="noopener noreferrer">`)
		b.WriteString(EscapeHTML(cell))
		b.WriteString("</a></td>")
	default:
		b.WriteString("<td>")
		b.WriteString(EscapeHTML(cell))
		b.WriteString("</td>")
	}
}
