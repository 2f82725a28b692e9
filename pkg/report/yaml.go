package report

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"digital.vasic.docrender/pkg/document"
)

// YAMLEncoder encodes documents as YAML.
type YAMLEncoder struct{}

// NewYAMLEncoder creates a YAML encoder.
func NewYAMLEncoder() *YAMLEncoder {
	return &YAMLEncoder{}
}

// Encode returns doc as YAML with two-space indentation.
func (e *YAMLEncoder) Encode(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document as yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document as yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Write writes doc as YAML to w.
func (e *YAMLEncoder) Write(w io.Writer, doc *document.Document) error {
	return write(e, w, doc)
}
