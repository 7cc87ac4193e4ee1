package render

import (
	"math"
	"strings"

	"github.com/mithrel/answerview/pkg/api"
)

// MetaSeparator joins the parts of an execution meta line.
const MetaSeparator = " • "

// EmptyText is shown when a read returned no rows at all.
const EmptyText = "No rows."

// readKinds are the statement kinds whose results are tabulated.
var readKinds = map[string]bool{"SELECT": true, "EXPLAIN": true}

// Execution is the rendered form of a read execution result.
type Execution struct {
	Kind string
	// Table is nil when there were no rows to display.
	Table *Table
	// Plan is set when Table is a flattened EXPLAIN plan.
	Plan bool
	// Empty asks for the "no rows" placeholder in place of a table.
	Empty    bool
	// Notes are listed under the result.
	Notes    []string
	RowCount *float64
	ExecMs   *float64
	EngineMs *float64
}

// RenderExecution renders the payload's execution result. It returns nil
// when there is no execution, when it was a write, when the statement is
// not a read, or when there is nothing at all to show.
func RenderExecution(p api.ResponsePayload) *Execution {
	res, ok := p.ExecutionResult()
	if !ok || res.Write {
		return nil
	}
	if res.Kind != "" && !readKinds[res.Kind] {
		return nil
	}

	columns := DeriveColumns(res, res.Rows)
	rowCount := float64(len(res.Rows))
	if res.RowCount != nil {
		rowCount = *res.RowCount
	}

	ex := &Execution{
		Kind:     res.Kind,
		ExecMs:   finite(res.ExecMs),
		EngineMs: finite(res.EngineMs),
	}
	if res.Kind == "EXPLAIN" {
		if plan := FlattenPlan(res.Rows); plan != nil {
			ex.Table = plan.Table
			ex.Plan = true
			rowCount = float64(plan.Nodes)
		}
	}
	if ex.Table == nil {
		ex.Table = RenderTable(columns, res.Rows)
	}
	ex.RowCount = finite(&rowCount)
	ex.Notes = notes(p.Notes)
	ex.Empty = ex.Table == nil && rowCount == 0 && len(res.Rows) == 0

	if ex.Table == nil && !ex.Empty && ex.MetaText() == "" {
		return nil
	}
	return ex
}

// notes reads the payload's notes array; anything else yields none.
func notes(v api.Value) []string {
	elems := v.Elems()
	if len(elems) == 0 {
		return nil
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = Stringify(e)
	}
	return out
}

func finite(f *float64) *float64 {
	if f == nil || math.IsNaN(*f) {
		return nil
	}
	return f
}

// MetaText summarizes row count and timings, e.g. "rows=2 • exec=12ms".
func (e *Execution) MetaText() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if e.RowCount != nil {
		parts = append(parts, "rows="+api.FormatNumber(*e.RowCount))
	}
	if e.ExecMs != nil {
		parts = append(parts, "exec="+api.FormatNumber(*e.ExecMs)+"ms")
	}
	if e.EngineMs != nil {
		parts = append(parts, "engine="+api.FormatNumber(*e.EngineMs)+"ms")
	}
	return strings.Join(parts, MetaSeparator)
}

// HTML renders the table or placeholder followed by the meta line and
// the notes list.
func (e *Execution) HTML() string {
	if e == nil {
		return ""
	}
	var parts []string
	if table := e.Table.HTML(); table != "" {
		parts = append(parts, table)
	} else if e.Empty {
		parts = append(parts, `<div class="result-empty">`+EmptyText+`</div>`)
	}
	if meta := e.MetaText(); meta != "" {
		parts = append(parts, `<div class="result-meta">`+EscapeHTML(meta)+`</div>`)
	}
	if len(e.Notes) > 0 {
		var b strings.Builder
		b.WriteString(`<ul class="result-notes">`)
		for _, n := range e.Notes {
			b.WriteString("<li>" + EscapeHTML(n) + "</li>")
		}
		b.WriteString("</ul>")
		parts = append(parts, b.String())
	}
	if len(parts) == 0 {
		return ""
	}
	return `<div class="result-execution">` + strings.Join(parts, "") + `</div>`
}
