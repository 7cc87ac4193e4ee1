package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// PrettyOptions tunes terminal rendering.
type PrettyOptions struct {
	Style    string
	WordWrap int
	// Styled enables ANSI styling; otherwise glamour's notty style is used.
	Styled bool
}

// WritePrettyDocument renders each markdown chunk with glamour, followed by
// the execution table and the breadcrumb footer.
func WritePrettyDocument(w io.Writer, d Document, opts PrettyOptions) error {
	style := opts.Style
	if style == "" || !opts.Styled {
		style = "notty"
	}
	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	for i, chunk := range d.Chunks {
		out, err := r.Render(chunk)
		if err != nil {
			return fmt.Errorf("failed to render markdown chunk %d: %w", i, err)
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	if err := WriteExecutionPretty(w, d.Execution, opts.Styled); err != nil {
		return err
	}
	if footer := d.Footer(); footer != "" {
		_, err = io.WriteString(w, muted(footer, opts.Styled)+"\n")
	}
	return err
}
