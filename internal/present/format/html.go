package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLConverter turns markdown chunks into sanitized HTML.
type HTMLConverter struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	sanitize bool
}

// NewHTMLConverter builds a GFM converter. With sanitize set, output is
// filtered through bluemonday's UGC policy.
func NewHTMLConverter(sanitize bool) *HTMLConverter {
	return &HTMLConverter{
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
		sanitize: sanitize,
	}
}

// Convert renders one markdown chunk.
func (c *HTMLConverter) Convert(md string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	if !c.sanitize {
		return buf.String(), nil
	}
	return c.policy.Sanitize(buf.String()), nil
}

// ConvertChunks renders every chunk of d.
func (c *HTMLConverter) ConvertChunks(d Document) ([]string, error) {
	out := make([]string, 0, len(d.Chunks))
	for _, chunk := range d.Chunks {
		h, err := c.Convert(chunk)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// WriteHTMLDocument writes one assistant bubble per chunk, then the
// execution fragment.
func WriteHTMLDocument(w io.Writer, d Document, c *HTMLConverter) error {
	chunks, err := c.ConvertChunks(d)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, h := range chunks {
		b.WriteString(`<div class="bubble assistant"><div class="content">`)
		b.WriteString(h)
		b.WriteString("</div></div>\n")
	}
	if ex := d.Execution.HTML(); ex != "" {
		b.WriteString(ex)
		b.WriteString("\n")
	}
	_, err = io.WriteString(w, b.String())
	return err
}
