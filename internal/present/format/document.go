package format

import (
	"strings"

	"github.com/mithrel/answerview/internal/render"
	"github.com/mithrel/answerview/pkg/api"
)

// Document is one composed response, ready for any output mode.
type Document struct {
	Hash      string
	WriteLike bool
	// Markdown is the gated response text; Chunks is how it displays.
	Markdown  string
	Chunks    []string
	Execution *render.Execution

	// Passed through from the payload untouched.
	Intent      api.Value
	Breadcrumbs api.Value
	UIForcePlan api.Value
}

// Footer summarizes breadcrumbs, e.g. "deterministic • rule=top_n • llm=0ms".
// It is empty when the payload has no breadcrumbs worth showing.
func (d Document) Footer() string {
	bc, ok := api.ParseBreadcrumbs(d.Breadcrumbs)
	if !ok {
		return ""
	}
	var parts []string
	if bc.Deterministic {
		parts = append(parts, "deterministic")
	}
	if bc.Rule != "" {
		parts = append(parts, "rule="+bc.Rule)
	}
	if bc.LLMMs != nil {
		parts = append(parts, "llm="+api.FormatNumber(*bc.LLMMs)+"ms")
	}
	return strings.Join(parts, render.MetaSeparator)
}
