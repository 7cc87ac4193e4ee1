package format

import (
	"encoding/json"
	"io"
)

// NDJSONStreamWriter incrementally writes documents as NDJSON.
type NDJSONStreamWriter struct {
	enc  *json.Encoder
	conv *HTMLConverter
}

// NewNDJSONStreamWriter creates a streaming NDJSON writer.
func NewNDJSONStreamWriter(w io.Writer, conv *HTMLConverter) *NDJSONStreamWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONStreamWriter{enc: enc, conv: conv}
}

// WriteDocument writes one document as one JSON line.
func (nw *NDJSONStreamWriter) WriteDocument(d Document) error {
	wd, err := d.Wire(nw.conv)
	if err != nil {
		return err
	}
	return nw.enc.Encode(wd)
}

// Close is a no-op for NDJSON output.
func (nw *NDJSONStreamWriter) Close() error { return nil }
