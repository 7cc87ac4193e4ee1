package present

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/answerview/pkg/api"
)

func decode(t *testing.T, s string) api.ResponsePayload {
	t.Helper()
	p, err := api.DecodePayload([]byte(s))
	require.NoError(t, err)
	return p
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"pretty": ModePretty,
		" PLAIN": ModePlain,
		"html":   ModeHTML,
		"Json":   ModeJSON,
		"tui":    ModeTUI,
	} {
		got, ok := ParseMode(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseMode("yaml")
	assert.False(t, ok)
}

func TestBuildReadGatesChecklist(t *testing.T) {
	p := decode(t, `{
		"response": "Summary\n\nPlan:\n- step\n\nValidation:\n- check\n\n## Result\nDone",
		"execution": {"stmt_kind": "SELECT", "rows": [[1]]},
		"intent": {"name": "top_n"},
		"ui_force_plan": true
	}`)
	d := Build(p)
	assert.False(t, d.WriteLike)
	assert.Equal(t, "Summary\n\n## Result\nDone", d.Markdown)
	assert.Equal(t, []string{"Summary", "## Result\nDone"}, d.Chunks)
	require.NotNil(t, d.Execution)
	assert.Equal(t, "SELECT", d.Execution.Kind)
	assert.Equal(t, p.Hash(), d.Hash)
	assert.Equal(t, "top_n", d.Intent.Field("name").AsString())
	assert.True(t, d.UIForcePlan.AsBool())
}

func TestBuildWriteKeepsChecklist(t *testing.T) {
	md := "Summary\n\nPlan:\n- step"
	d := Build(decode(t, `{"response": "Summary\n\nPlan:\n- step", "execution": {"stmt_kind": "UPDATE"}}`))
	assert.True(t, d.WriteLike)
	assert.Equal(t, md, d.Markdown)
	assert.Nil(t, d.Execution)
}

func TestBuildDropsBlankChunks(t *testing.T) {
	d := BuildMarkdown("   \n\n")
	assert.Empty(t, d.Chunks)
	assert.Nil(t, d.Execution)
}

func TestRenderDocumentModes(t *testing.T) {
	d := Build(decode(t, `{"response": "Hello", "execution": {"stmt_kind": "SELECT", "columns": ["a"], "rows": [["x"]]}}`))

	var plain bytes.Buffer
	require.NoError(t, RenderDocument(context.Background(), &plain, d, Options{Mode: ModePlain, Headers: true}))
	assert.Equal(t, "Hello\na\nx\nrows=1\n", plain.String())

	var html bytes.Buffer
	require.NoError(t, RenderDocument(context.Background(), &html, d, Options{Mode: ModeHTML, Sanitize: true}))
	assert.Contains(t, html.String(), "<p>Hello</p>")
	assert.Contains(t, html.String(), "<td>x</td>")

	var js bytes.Buffer
	require.NoError(t, RenderDocument(context.Background(), &js, d, Options{Mode: ModeJSON}))
	assert.Contains(t, js.String(), `"chunks":["Hello"]`)
}
