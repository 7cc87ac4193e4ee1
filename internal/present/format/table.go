package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/mithrel/answerview/internal/render"
)

// URL cells wider than maxURLDisplay show their head and tail only.
const (
	maxURLDisplay = 80
	urlHead       = 40
	urlTail       = 30
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	linkStyle   = cellStyle.Underline(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// FormatURLDisplay shortens long URLs to "head...tail" for display.
func FormatURLDisplay(u string) string {
	if ansi.StringWidth(u) <= maxURLDisplay {
		return u
	}
	r := []rune(u)
	return ansi.Truncate(u, urlHead, "") + "..." + string(r[len(r)-urlTail:])
}

// TableString draws t for a terminal. With styled output, URL cells are
// OSC 8 hyperlinks to the full address.
func TableString(t *render.Table, styled bool) string {
	if t == nil || len(t.Rows) == 0 {
		return ""
	}
	links := make(map[[2]int]bool)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cellText(cell)
			if render.IsURL(cell) {
				links[[2]int{i, j}] = true
				cells[j] = FormatURLDisplay(cell)
				if styled {
					cells[j] = ansi.SetHyperlink(cell) + cells[j] + ansi.ResetHyperlink()
				}
			}
		}
		rows[i] = cells
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if styled && links[[2]int{row, col}] {
				return linkStyle
			}
			return cellStyle
		}).
		Headers(t.Columns...).
		Rows(rows...)
	return tbl.String()
}

// cellText keeps multi-line values on one table row.
func cellText(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
}

// WriteExecutionPretty writes the execution table (or placeholder), its
// meta line and notes for a terminal.
func WriteExecutionPretty(w io.Writer, ex *render.Execution, styled bool) error {
	if ex == nil {
		return nil
	}
	var b strings.Builder
	if tbl := TableString(ex.Table, styled); tbl != "" {
		b.WriteString(tbl)
		b.WriteString("\n")
	} else if ex.Empty {
		b.WriteString(render.EmptyText + "\n")
	}
	if meta := ex.MetaText(); meta != "" {
		b.WriteString(muted(meta, styled) + "\n")
	}
	for _, n := range ex.Notes {
		b.WriteString(muted("• "+cellText(n), styled) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func muted(s string, styled bool) string {
	if !styled {
		return s
	}
	return mutedStyle.Render(s)
}
