// Package report encodes rendered documents for output.
package report

import (
	"fmt"
	"io"
	"strings"

	"digital.vasic.docrender/pkg/document"
)

// Encoder turns a document into bytes of one output format.
type Encoder interface {
	// Encode returns the encoded document.
	Encode(doc *document.Document) ([]byte, error)

	// Write writes the encoded document to w.
	Write(w io.Writer, doc *document.Document) error
}

// Formats lists the names accepted by ForFormat.
var Formats = []string{"json", "yaml", "html"}

// ForFormat returns the encoder registered for name. JSON output
// is indented.
func ForFormat(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return NewJSONEncoder(true), nil
	case "yaml", "yml":
		return NewYAMLEncoder(), nil
	case "html":
		return NewHTMLEncoder(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", name)
	}
}

// write encodes doc with e and copies the result to w.
func write(e Encoder, w io.Writer, doc *document.Document) error {
	data, err := e.Encode(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
