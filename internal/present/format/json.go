package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/answerview/pkg/api"
)

// WireDocument is the JSON shape of a Document.
type WireDocument struct {
	Hash          string         `json:"hash"`
	WriteLike     bool           `json:"write_like"`
	Markdown      string         `json:"markdown"`
	Chunks        []string       `json:"chunks"`
	ChunksHTML    []string       `json:"chunks_html"`
	Execution     *WireExecution `json:"execution,omitempty"`
	ExecutionHTML string         `json:"execution_html,omitempty"`
	Footer        string         `json:"footer,omitempty"`
	Intent        api.Value      `json:"intent"`
	Breadcrumbs   api.Value      `json:"breadcrumbs"`
	UIForcePlan   api.Value      `json:"ui_force_plan"`
}

// WireExecution is the structured form of a rendered execution.
type WireExecution struct {
	Kind    string     `json:"kind,omitempty"`
	Plan    bool       `json:"plan"`
	Empty   bool       `json:"empty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Meta    string     `json:"meta,omitempty"`
	Notes   []string   `json:"notes,omitempty"`
}

// Wire converts d to its JSON shape, rendering chunk HTML with c.
func (d Document) Wire(c *HTMLConverter) (WireDocument, error) {
	chunksHTML, err := c.ConvertChunks(d)
	if err != nil {
		return WireDocument{}, err
	}
	chunks := d.Chunks
	if chunks == nil {
		chunks = []string{}
	}
	wd := WireDocument{
		Hash:          d.Hash,
		WriteLike:     d.WriteLike,
		Markdown:      d.Markdown,
		Chunks:        chunks,
		ChunksHTML:    chunksHTML,
		ExecutionHTML: d.Execution.HTML(),
		Footer:        d.Footer(),
		Intent:        d.Intent,
		Breadcrumbs:   d.Breadcrumbs,
		UIForcePlan:   d.UIForcePlan,
	}
	if ex := d.Execution; ex != nil {
		we := &WireExecution{
			Kind:    ex.Kind,
			Plan:    ex.Plan,
			Empty:   ex.Empty,
			Columns: []string{},
			Rows:    [][]string{},
			Meta:    ex.MetaText(),
			Notes:   ex.Notes,
		}
		if ex.Table != nil {
			we.Columns = ex.Table.Columns
			we.Rows = ex.Table.Rows
		}
		wd.Execution = we
	}
	return wd, nil
}

// WriteJSONDocument writes d as a single JSON object.
func WriteJSONDocument(w io.Writer, d Document, c *HTMLConverter, indent bool) error {
	wd, err := d.Wire(c)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(wd)
}
