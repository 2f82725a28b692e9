package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"digital.vasic.docrender/pkg/document"
)

func makeTestDocument() *document.Document {
	failed := document.NewText("age mean must be between 0 and 100. Failed.")
	failed.Status = document.StatusFailure
	samples := document.NewValueList("Sample unexpected values", []string{"<b>", "-1"})
	samples.Status = document.StatusFailure

	return &document.Document{
		ID:     "4b7d0c2e-0000-5000-8000-000000000000",
		Title:  "people",
		Mode:   "descriptive",
		Header: document.NewHeader("people", "2 evaluated, 1 successful, 1 unsuccessful (50% success)"),
		Summary: document.Summary{
			Expectations:   2,
			Evaluated:      2,
			Successful:     1,
			Unsuccessful:   1,
			Sections:       2,
			Blocks:         4,
			SuccessPercent: 50,
		},
		Sections: []document.Section{
			{
				Label: document.TableLevelLabel,
				Blocks: []document.Block{
					document.NewTable("Must have between 1 and 10 rows.",
						[]string{"Bound", "Value"},
						[][]string{{"Minimum", "1"}, {"Maximum", "10"}}),
				},
			},
			{
				Label:  "age",
				Column: "age",
				Blocks: []document.Block{failed, samples, {
					Kind: document.KindUnsupported,
					Text: "Unsupported expectation type: x_custom",
					Raw:  &document.Raw{Kind: "x_custom", Payload: `{"kwargs":{}}`},
				}},
			},
		},
		Warnings: []document.Warning{{
			Code:    document.WarnUnsupportedKind,
			Kind:    "x_custom",
			Column:  "age",
			Message: `no renderer for expectation type "x_custom"`,
		}},
	}
}

func TestJSONEncoder_Pretty(t *testing.T) {
	data, err := NewJSONEncoder(true).Encode(makeTestDocument())
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), "\n  \"title\": \"people\"")
}

func TestJSONEncoder_Compact(t *testing.T) {
	data, err := NewJSONEncoder(false).Encode(makeTestDocument())
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.NotContains(t, string(data), "\n  ")
}

func TestJSONEncoder_RoundTrip(t *testing.T) {
	doc := makeTestDocument()
	data, err := NewJSONEncoder(false).Encode(doc)
	require.NoError(t, err)

	var decoded document.Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc, &decoded)
}

func TestYAMLEncoder(t *testing.T) {
	doc := makeTestDocument()

	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder().Write(&buf, doc))
	assert.Contains(t, buf.String(), "content_block_type: value_list")

	var decoded document.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc, &decoded)
}

func TestHTMLEncoder(t *testing.T) {
	data, err := NewHTMLEncoder().Encode(makeTestDocument())
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "<title>people</title>")
	assert.Contains(t, content, "<h2>Table-Level</h2>")
	assert.Contains(t, content, "<caption>Must have between 1 and 10 rows.</caption>")
	assert.Contains(t, content, "status-failed")
	assert.Contains(t, content, "<code>&lt;b&gt;</code>")
	assert.Contains(t, content, "<h2>Warnings</h2>")
	assert.Contains(t, content, "x_custom")
	assert.True(t, strings.HasSuffix(content, "</html>\n"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestHTMLEncoder_WriteError(t *testing.T) {
	err := NewHTMLEncoder().Write(failingWriter{}, makeTestDocument())
	assert.EqualError(t, err, "disk full")
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name string
		want Encoder
	}{
		{"json", NewJSONEncoder(true)},
		{"", NewJSONEncoder(true)},
		{"YAML", NewYAMLEncoder()},
		{"yml", NewYAMLEncoder()},
		{"html", NewHTMLEncoder()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := ForFormat(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, enc)
		})
	}

	_, err := ForFormat("pdf")
	assert.Error(t, err)
}
