package api

import "strings"

// ExecutionResult is a read-only view of the payload's execution object.
type ExecutionResult struct {
	// Kind is stmt_kind trimmed and upper-cased; empty when absent or not a string.
	Kind string
	// Write is true only for a literal JSON true.
	Write bool
	// Columns is nil unless the payload supplies an array.
	Columns []Value
	// Rows is empty unless the payload supplies an array.
	Rows     []Value
	RowCount *float64
	ExecMs   *float64
	EngineMs *float64
}

// NormalizeKind canonicalizes a statement classifier.
func NormalizeKind(v Value) string {
	if v.Kind() != KindString {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(v.AsString()))
}

// ExecutionResult returns the execution view. ok is false when the payload has
// no execution object.
func (p ResponsePayload) ExecutionResult() (ExecutionResult, bool) {
	ex := p.Execution
	if !ex.IsObject() {
		return ExecutionResult{}, false
	}
	res := ExecutionResult{
		Kind:     NormalizeKind(ex.Field("stmt_kind")),
		RowCount: numberField(ex, "row_count"),
	}
	if w := ex.Field("write"); w.Kind() == KindBool && w.AsBool() {
		res.Write = true
	}
	if cols := ex.Field("columns"); cols.IsArray() {
		res.Columns = cols.Elems()
	}
	if rows := ex.Field("rows"); rows.IsArray() {
		res.Rows = rows.Elems()
	}

	// Timings come from execution.meta first, then the payload's own meta.
	meta := ex.Field("meta")
	res.ExecMs = numberField(meta, "exec_ms")
	if res.ExecMs == nil {
		res.ExecMs = numberField(p.Meta, "exec_ms")
	}
	res.EngineMs = numberField(meta, "engine_ms")
	if res.EngineMs == nil {
		res.EngineMs = numberField(p.Meta, "engine_ms")
	}
	return res, true
}
