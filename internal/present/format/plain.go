package format

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/answerview/internal/render"
)

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// WritePlainDocument writes chunks verbatim, separated by a blank line,
// then the execution result as an aligned table.
func WritePlainDocument(w io.Writer, d Document, headers bool) error {
	if len(d.Chunks) > 0 {
		if _, err := io.WriteString(w, strings.Join(d.Chunks, "\n\n")+"\n"); err != nil {
			return err
		}
	}
	if err := WritePlainExecution(w, d.Execution, headers); err != nil {
		return err
	}
	if footer := d.Footer(); footer != "" {
		if _, err := io.WriteString(w, footer+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WritePlainExecution writes the table as tab-aligned columns, the
// placeholder when there are no rows, and the meta line.
func WritePlainExecution(w io.Writer, ex *render.Execution, headers bool) error {
	if ex == nil {
		return nil
	}
	if ex.Table != nil {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if headers {
			_, _ = io.WriteString(tw, joinEscaped(ex.Table.Columns)+"\n")
		}
		for _, row := range ex.Table.Rows {
			_, _ = io.WriteString(tw, joinEscaped(row)+"\n")
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	} else if ex.Empty {
		if _, err := io.WriteString(w, render.EmptyText+"\n"); err != nil {
			return err
		}
	}
	if meta := ex.MetaText(); meta != "" {
		if _, err := io.WriteString(w, meta+"\n"); err != nil {
			return err
		}
	}
	for _, n := range ex.Notes {
		if _, err := io.WriteString(w, "- "+esc(n)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func joinEscaped(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(esc(f))
	}
	return b.String()
}
