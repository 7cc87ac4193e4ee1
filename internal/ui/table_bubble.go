package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mithrel/answerview/internal/render"
)

const maxColumnWidth = 40

// BrowseExecution opens an interactive Bubble Tea table over the rendered
// execution rows.
func BrowseExecution(ctx context.Context, ex *render.Execution) error {
	m := newModel(ex)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// buildTable sizes each column to its widest cell, capped at maxColumnWidth.
func buildTable(t *render.Table) table.Model {
	if t == nil {
		return table.New()
	}
	cols := make([]table.Column, len(t.Columns))
	for i, name := range t.Columns {
		w := ansi.StringWidth(name)
		for _, row := range t.Rows {
			if cw := ansi.StringWidth(row[i]); cw > w {
				w = cw
			}
		}
		cols[i] = table.Column{Title: truncate(name, maxColumnWidth), Width: min(w, maxColumnWidth)}
	}

	rows := make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = truncate(cell, maxColumnWidth)
		}
		rows = append(rows, row)
	}

	tm := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(render.MaxRows+1, max(3, len(rows)+1))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	tm.SetStyles(s)
	return tm
}

type model struct {
	table table.Model
	meta  string
	empty bool
}

func newModel(ex *render.Execution) model {
	m := model{meta: ex.MetaText()}
	if ex == nil || ex.Table == nil {
		m.empty = true
		return m
	}
	m.table = buildTable(ex.Table)
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.empty {
		return render.EmptyText + "\n"
	}
	footer := "↑/↓ to navigate • enter/q to exit\n"
	if m.meta != "" {
		footer = m.meta + "\n" + footer
	}
	return m.table.View() + "\n" + footer
}

func truncate(s string, n int) string {
	if ansi.StringWidth(s) <= n {
		return s
	}
	return ansi.Truncate(s, n, "…")
}
