package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/answerview/pkg/api"
)

func payload(t *testing.T, s string) api.ResponsePayload {
	t.Helper()
	p, err := api.DecodePayload([]byte(s))
	require.NoError(t, err)
	return p
}

func TestFlattenPlanSingleNode(t *testing.T) {
	rows := mustParse(t, `[{"plan": "{\"Plan\":{\"Node Type\":\"Seq Scan\",\"Plan Rows\":100,\"Startup Cost\":0,\"Total Cost\":1.5,\"Plans\":[]}}"}]`).Elems()
	plan := FlattenPlan(rows)
	require.NotNil(t, plan)
	assert.Equal(t, 1, plan.Nodes)
	assert.Equal(t, PlanColumns, plan.Table.Columns)
	assert.Equal(t, [][]string{{"Seq Scan", "", "100", "0", "1.5"}}, plan.Table.Rows)
}

func TestFlattenPlanPreOrder(t *testing.T) {
	rows := mustParse(t, `[{"plan": [{"Plan": {
		"Node Type": "Sort", "Sort Key": ["a", "b DESC"], "Plan Rows": 10,
		"Plans": [
			{"Node Type": "Hash Join", "Plans": [
				{"Node Type": "Seq Scan"},
				{"Node Type": "Hash", "Plans": [{"Node Type": "Index Scan", "Sort Key": "id"}]}
			]},
			{"Node Type": "Limit"}
		]}}]}]`).Elems()
	plan := FlattenPlan(rows)
	require.NotNil(t, plan)
	var types []string
	for _, r := range plan.Table.Rows {
		types = append(types, r[0])
	}
	assert.Equal(t, []string{"Sort", "Hash Join", "Seq Scan", "Hash", "Index Scan", "Limit"}, types)
	assert.Equal(t, "a, b DESC", plan.Table.Rows[0][1])
	assert.Equal(t, "id", plan.Table.Rows[4][1])
	assert.Equal(t, 6, plan.Nodes)
}

func TestFlattenPlanDoesNotMutateInput(t *testing.T) {
	src := `[{"plan":{"Plan":{"Node Type":"Seq Scan","Sort Key":["x","y"]}}}]`
	rows := mustParse(t, src).Elems()
	FlattenPlan(rows)
	b, err := api.Array(rows...).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, src, string(b))
}

func TestFlattenPlanRejects(t *testing.T) {
	cases := map[string]string{
		"no rows":         `[]`,
		"scalar row":      `[1]`,
		"no plan key":     `[{"other": 1}]`,
		"bad json":        `[{"plan": "{not json"}]`,
		"scalar root":     `[{"plan": "42"}]`,
		"multi array":     `[{"plan": [{"Node Type": "A"}, {"Node Type": "B"}]}]`,
		"plan not object": `[{"plan": {"Plan": [1]}}]`,
		"null plan":       `[{"plan": null}]`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, FlattenPlan(mustParse(t, src).Elems()))
		})
	}
}

func TestRenderExecutionSelect(t *testing.T) {
	p := payload(t, `{"execution": {
		"stmt_kind": "select",
		"columns": ["id", "url", "captured_at"],
		"rows": [
			[1, "https://example.com/first", "2024-01-01T00:00:00Z"],
			[2, "https://example.com/second", "2024-01-02T00:00:00Z"]
		],
		"row_count": 2,
		"meta": {"exec_ms": 12, "engine_ms": 5}
	}}`)
	ex := RenderExecution(p)
	require.NotNil(t, ex)
	assert.Equal(t, "SELECT", ex.Kind)
	assert.Equal(t, "rows=2 • exec=12ms • engine=5ms", ex.MetaText())

	html := ex.HTML()
	assert.True(t, strings.HasPrefix(html, `<div class="result-execution"><div class="result-scroll">`))
	assert.Equal(t, 3, strings.Count(html, "<tr>"))
	assert.Contains(t, html, `<a href="https://example.com/first"`)
	assert.Contains(t, html, `<div class="result-meta">rows=2 • exec=12ms • engine=5ms</div>`)
}

func TestRenderExecutionEmpty(t *testing.T) {
	p := payload(t, `{"execution": {"stmt_kind": "SELECT", "columns": ["id"], "rows": [], "row_count": 0, "meta": {"exec_ms": 3}}}`)
	ex := RenderExecution(p)
	require.NotNil(t, ex)
	assert.True(t, ex.Empty)
	html := ex.HTML()
	assert.Contains(t, html, "No rows.")
	assert.NotContains(t, html, "<table")
	assert.Contains(t, html, "exec=3ms")
}

func TestRenderExecutionSkips(t *testing.T) {
	cases := map[string]string{
		"no execution":     `{}`,
		"execution scalar": `{"execution": "SELECT"}`,
		"write flag":       `{"execution": {"stmt_kind": "SELECT", "write": true, "rows": [[1]]}}`,
		"insert":           `{"execution": {"stmt_kind": "INSERT", "rows": [[1]]}}`,
		"update lowercase": `{"execution": {"stmt_kind": " update ", "rows": [[1]]}}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, RenderExecution(payload(t, src)))
		})
	}
}

func TestRenderExecutionWithoutKind(t *testing.T) {
	ex := RenderExecution(payload(t, `{"execution": {"rows": [{"a": 1, "b": "x"}]}}`))
	require.NotNil(t, ex)
	assert.Equal(t, []string{"a", "b"}, ex.Table.Columns)
	assert.Equal(t, "rows=1", ex.MetaText())
}

func TestRenderExecutionTimingFallback(t *testing.T) {
	p := payload(t, `{
		"execution": {"stmt_kind": "SELECT", "rows": [[1]], "meta": {"exec_ms": "fast"}},
		"meta": {"exec_ms": 7, "engine_ms": 2}
	}`)
	ex := RenderExecution(p)
	require.NotNil(t, ex)
	assert.Equal(t, "rows=1 • exec=7ms • engine=2ms", ex.MetaText())
}

func TestRenderExecutionRowCountBeyondCap(t *testing.T) {
	rows := make([]string, 25)
	for i := range rows {
		rows[i] = "[1]"
	}
	ex := RenderExecution(payload(t, `{"execution": {"stmt_kind": "SELECT", "row_count": 1000, "rows": [`+strings.Join(rows, ",")+`]}}`))
	require.NotNil(t, ex)
	assert.Len(t, ex.Table.Rows, MaxRows)
	assert.Equal(t, "rows=1000", ex.MetaText())
}

func TestRenderExecutionExplain(t *testing.T) {
	p := payload(t, `{"execution": {
		"stmt_kind": "EXPLAIN",
		"rows": [{"plan": [{"Plan": {"Node Type": "Limit", "Plans": [{"Node Type": "Seq Scan", "Plan Rows": 4}]}}]}],
		"row_count": 1
	}}`)
	ex := RenderExecution(p)
	require.NotNil(t, ex)
	assert.True(t, ex.Plan)
	assert.Equal(t, PlanColumns, ex.Table.Columns)
	assert.Equal(t, "rows=2", ex.MetaText())
}

func TestRenderExecutionExplainFallsBack(t *testing.T) {
	p := payload(t, `{"execution": {"stmt_kind": "EXPLAIN", "rows": [{"QUERY PLAN": "Seq Scan on t"}]}}`)
	ex := RenderExecution(p)
	require.NotNil(t, ex)
	assert.False(t, ex.Plan)
	assert.Equal(t, []string{"QUERY PLAN"}, ex.Table.Columns)
	assert.Equal(t, [][]string{{"Seq Scan on t"}}, ex.Table.Rows)
}

func TestRenderExecutionDoesNotMutatePayload(t *testing.T) {
	src := `{"execution": {"stmt_kind": "EXPLAIN", "rows": [{"plan": {"Plan": {"Node Type": "A"}}}]}}`
	p := payload(t, src)
	before := p.Hash()
	first := RenderExecution(p).HTML()
	second := RenderExecution(p).HTML()
	assert.Equal(t, first, second)
	assert.Equal(t, before, p.Hash())
}

func TestRenderExecutionNotes(t *testing.T) {
	p := payload(t, `{
		"execution": {"stmt_kind": "SELECT", "rows": [[1]]},
		"notes": ["Limited to 20 rows", "<b>raw</b>", null]
	}`)
	ex := RenderExecution(p)
	require.NotNil(t, ex)
	assert.Equal(t, []string{"Limited to 20 rows", "<b>raw</b>", "null"}, ex.Notes)
	assert.True(t, strings.HasSuffix(ex.HTML(),
		`<div class="result-meta">rows=1</div><ul class="result-notes"><li>Limited to 20 rows</li><li>&lt;b&gt;raw&lt;/b&gt;</li><li>null</li></ul></div>`))

	for _, src := range []string{`[]`, `"just text"`} {
		ex := RenderExecution(payload(t, `{"execution": {"rows": [[1]]}, "notes": `+src+`}`))
		require.NotNil(t, ex)
		assert.Nil(t, ex.Notes)
		assert.NotContains(t, ex.HTML(), "result-notes")
	}
}
