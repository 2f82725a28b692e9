package report

import (
	"encoding/json"
	"fmt"
	"io"

	"digital.vasic.docrender/pkg/document"
)

// JSONEncoder encodes documents as JSON.
type JSONEncoder struct {
	pretty bool
}

// NewJSONEncoder creates a JSON encoder. When pretty is true,
// output is indented for readability.
func NewJSONEncoder(pretty bool) *JSONEncoder {
	return &JSONEncoder{pretty: pretty}
}

// Encode returns doc as JSON.
func (e *JSONEncoder) Encode(doc *document.Document) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if e.pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("encode document as json: %w", err)
	}
	return append(data, '\n'), nil
}

// Write writes doc as JSON to w.
func (e *JSONEncoder) Write(w io.Writer, doc *document.Document) error {
	return write(e, w, doc)
}
