package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/answerview/internal/render"
	"github.com/mithrel/answerview/pkg/api"
)

const samplePayload = `{
	"response": "Top rows below.\n\n## Notes\nAll good.",
	"execution": {
		"stmt_kind": "SELECT",
		"columns": ["id", "link"],
		"rows": [[1, "https://example.com/a"], [2, null]],
		"row_count": 2,
		"meta": {"exec_ms": 12, "engine_ms": 5}
	},
	"intent": {"zeta": 1, "alpha": [true, null]},
	"breadcrumbs": {"deterministic": true, "rule": "top_n", "llm_ms": 0}
}`

func sampleDoc(t *testing.T, src string) Document {
	t.Helper()
	p, err := api.DecodePayload([]byte(src))
	require.NoError(t, err)
	return Document{
		Hash:        p.Hash(),
		Markdown:    p.Response,
		Chunks:      render.Blocks(p.Response),
		Execution:   render.RenderExecution(p),
		Intent:      p.Intent,
		Breadcrumbs: p.Breadcrumbs,
		UIForcePlan: p.UIForcePlan,
	}
}

func TestFormatURLDisplay(t *testing.T) {
	short := "https://example.com/x"
	assert.Equal(t, short, FormatURLDisplay(short))

	long := "https://example.com/" + strings.Repeat("a", 50) + strings.Repeat("z", 40)
	got := FormatURLDisplay(long)
	assert.Equal(t, long[:40]+"..."+long[len(long)-30:], got)
	assert.Len(t, got, 73)
}

func TestFooter(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`{}`, ""},
		{`{"breadcrumbs": "x"}`, ""},
		{`{"breadcrumbs": {"deterministic": true, "rule": "top_n", "llm_ms": 0}}`, "deterministic • rule=top_n • llm=0ms"},
		{`{"breadcrumbs": {"deterministic": false, "llm_ms": 1250.5}}`, "llm=1250.5ms"},
		{`{"breadcrumbs": {"rule": 7}}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, sampleDoc(t, tc.src).Footer())
		})
	}
}

func TestTableStringPlainTerminal(t *testing.T) {
	d := sampleDoc(t, samplePayload)
	out := TableString(d.Execution.Table, false)
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "https://example.com/a")
	assert.NotContains(t, out, "\x1b]8;;")
	assert.Empty(t, TableString(nil, false))
}

func TestTableStringStyledLinks(t *testing.T) {
	d := sampleDoc(t, samplePayload)
	out := TableString(d.Execution.Table, true)
	assert.Contains(t, out, "\x1b]8;;https://example.com/a")
}

func TestCellTextFlattensNewlines(t *testing.T) {
	assert.Equal(t, "a b c", cellText("a\nb\tc"))
}

func TestWritePlainDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainDocument(&buf, sampleDoc(t, samplePayload), true))
	want := "Top rows below.\n\n## Notes\nAll good.\n" +
		"id  link\n" +
		"1   https://example.com/a\n" +
		"2   \n" +
		"rows=2 • exec=12ms • engine=5ms\n" +
		"deterministic • rule=top_n • llm=0ms\n"
	assert.Equal(t, want, buf.String())
}

func TestWritePlainExecutionEmpty(t *testing.T) {
	d := sampleDoc(t, `{"execution": {"stmt_kind": "SELECT", "rows": []}}`)
	var buf bytes.Buffer
	require.NoError(t, WritePlainExecution(&buf, d.Execution, true))
	assert.Equal(t, "No rows.\n", buf.String())
}

func TestWritePrettyDocumentUnstyled(t *testing.T) {
	var buf bytes.Buffer
	err := WritePrettyDocument(&buf, sampleDoc(t, samplePayload), PrettyOptions{Style: "dracula", WordWrap: 60})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Top rows below.")
	assert.Contains(t, out, "Notes")
	assert.Contains(t, out, "rows=2 • exec=12ms • engine=5ms")
	assert.Contains(t, out, "deterministic • rule=top_n")
}

func TestWriteHTMLDocument(t *testing.T) {
	d := sampleDoc(t, `{"response": "Hi **there**\n\n- <script>alert(1)</script> item", "execution": {"stmt_kind": "SELECT", "rows": [{"v": "<i>x</i>"}]}}`)
	var buf bytes.Buffer
	require.NoError(t, WriteHTMLDocument(&buf, d, NewHTMLConverter(true)))
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `<div class="bubble assistant">`))
	assert.Contains(t, out, "<strong>there</strong>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;i&gt;x&lt;/i&gt;")
}

func TestHTMLConverterSanitizes(t *testing.T) {
	c := NewHTMLConverter(true)
	got, err := c.Convert(`[x](https://example.com "t")`)
	require.NoError(t, err)
	assert.Contains(t, got, `href="https://example.com"`)
	assert.Contains(t, got, `rel="nofollow"`)

	raw, err := NewHTMLConverter(false).Convert("plain")
	require.NoError(t, err)
	assert.Equal(t, "<p>plain</p>\n", raw)
}

func TestWriteJSONDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONDocument(&buf, sampleDoc(t, samplePayload), NewHTMLConverter(true), false))
	out := buf.String()

	assert.Contains(t, out, `"intent":{"zeta":1,"alpha":[true,null]}`)
	assert.Contains(t, out, `"ui_force_plan":null`)
	assert.Contains(t, out, `<table class="result-table">`)

	var wd WireDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &wd))
	assert.Equal(t, []string{"Top rows below.", "## Notes\nAll good."}, wd.Chunks)
	require.Len(t, wd.ChunksHTML, 2)
	assert.Contains(t, wd.ChunksHTML[1], "<h2")
	require.NotNil(t, wd.Execution)
	assert.Equal(t, []string{"id", "link"}, wd.Execution.Columns)
	assert.Equal(t, [][]string{{"1", "https://example.com/a"}, {"2", ""}}, wd.Execution.Rows)
	assert.Equal(t, "deterministic • rule=top_n • llm=0ms", wd.Footer)
}

func TestNDJSONStreamWriter(t *testing.T) {
	var buf bytes.Buffer
	nw := NewNDJSONStreamWriter(&buf, NewHTMLConverter(true))
	require.NoError(t, nw.WriteDocument(sampleDoc(t, `{"response": "one"}`)))
	require.NoError(t, nw.WriteDocument(sampleDoc(t, `{"response": "two"}`)))
	require.NoError(t, nw.Close())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"markdown":"one"`)
	assert.Contains(t, lines[1], `"markdown":"two"`)
}

func TestExecutionNotesInTextModes(t *testing.T) {
	d := sampleDoc(t, `{"execution": {"stmt_kind": "SELECT", "columns": ["a"], "rows": [["x"]]}, "notes": ["first\tnote", "second"]}`)

	var plain bytes.Buffer
	require.NoError(t, WritePlainExecution(&plain, d.Execution, false))
	assert.Equal(t, "x\nrows=1\n- first\\tnote\n- second\n", plain.String())

	var pretty bytes.Buffer
	require.NoError(t, WriteExecutionPretty(&pretty, d.Execution, false))
	assert.Contains(t, pretty.String(), "• first note\n• second\n")

	wd, err := d.Wire(NewHTMLConverter(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"first\tnote", "second"}, wd.Execution.Notes)
}
