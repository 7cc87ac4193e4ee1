package present

import (
	"context"
	"io"
	"strings"

	"github.com/mithrel/answerview/internal/checklist"
	"github.com/mithrel/answerview/internal/present/format"
	"github.com/mithrel/answerview/internal/render"
	"github.com/mithrel/answerview/internal/ui"
	"github.com/mithrel/answerview/pkg/api"
)

type Mode int

const (
	ModePretty Mode = iota
	ModePlain
	ModeHTML
	ModeJSON
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Sanitize   bool
	Pretty     format.PrettyOptions
}

// ParseMode parses a string like "pretty", "plain", "html", "json", "tui".
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pretty":
		return ModePretty, true
	case "plain":
		return ModePlain, true
	case "html":
		return ModeHTML, true
	case "json":
		return ModeJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePretty, false
	}
}

// Build composes a payload into a document: the response markdown is
// checklist-gated and split into display chunks, and the execution result
// is rendered alongside. The payload is only read.
func Build(p api.ResponsePayload) format.Document {
	gated := checklist.Apply(p.Response, p)
	chunks := make([]string, 0, 4)
	for _, block := range render.Blocks(gated) {
		if strings.TrimSpace(block) != "" {
			chunks = append(chunks, block)
		}
	}
	return format.Document{
		Hash:        p.Hash(),
		WriteLike:   checklist.IsWriteLike(p),
		Markdown:    gated,
		Chunks:      chunks,
		Execution:   render.RenderExecution(p),
		Intent:      p.Intent,
		Breadcrumbs: p.Breadcrumbs,
		UIForcePlan: p.UIForcePlan,
	}
}

// BuildMarkdown composes bare markdown with no execution attached.
func BuildMarkdown(md string) format.Document {
	return Build(api.ResponsePayload{Response: md})
}

// RenderDocument writes d according to options.
func RenderDocument(ctx context.Context, w io.Writer, d format.Document, opts Options) error {
	switch opts.Mode {
	case ModePlain:
		return format.WritePlainDocument(w, d, opts.Headers)
	case ModeHTML:
		return format.WriteHTMLDocument(w, d, format.NewHTMLConverter(opts.Sanitize))
	case ModeJSON:
		return format.WriteJSONDocument(w, d, format.NewHTMLConverter(opts.Sanitize), opts.JSONIndent)
	case ModeTUI:
		// Markdown prints first; the row browser takes over the terminal after.
		md := d
		md.Execution = nil
		if err := format.WritePrettyDocument(w, md, opts.Pretty); err != nil {
			return err
		}
		if d.Execution == nil || d.Execution.Table == nil {
			return format.WriteExecutionPretty(w, d.Execution, opts.Pretty.Styled)
		}
		return ui.BrowseExecution(ctx, d.Execution)
	default:
		return format.WritePrettyDocument(w, d, opts.Pretty)
	}
}
