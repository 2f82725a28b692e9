package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"digital.vasic.docrender/pkg/document"
)

// HTMLEncoder encodes documents as a standalone HTML page.
type HTMLEncoder struct{}

// NewHTMLEncoder creates an HTML encoder.
func NewHTMLEncoder() *HTMLEncoder {
	return &HTMLEncoder{}
}

// Encode returns doc as HTML.
func (e *HTMLEncoder) Encode(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes doc as HTML to w.
func (e *HTMLEncoder) Write(w io.Writer, doc *document.Document) error {
	ew := &errWriter{w: w}
	writeHeader(ew, doc.Title)

	fmt.Fprintf(ew, "<h1>%s</h1>\n", html.EscapeString(doc.Header.Header))
	if doc.Header.Subheader != "" {
		fmt.Fprintf(ew, "<p class=\"subheader\">%s</p>\n",
			html.EscapeString(doc.Header.Subheader))
	}

	writeSummaryTable(ew, doc)
	for _, s := range doc.Sections {
		writeSection(ew, s)
	}
	writeWarnings(ew, doc.Warnings)

	writeFooter(ew, doc.ID)
	return ew.err
}

// errWriter keeps the first write error so the writers below can
// ignore it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func writeSummaryTable(w io.Writer, doc *document.Document) {
	s := doc.Summary
	fmt.Fprintln(w, "<h2>Summary</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(w, "<tr><td>Mode</td><td>%s</td></tr>\n", html.EscapeString(doc.Mode))
	fmt.Fprintf(w, "<tr><td>Expectations</td><td>%d</td></tr>\n", s.Expectations)
	if s.Evaluated > 0 {
		fmt.Fprintf(w, "<tr><td>Successful</td><td class=\"status-passed\">%d</td></tr>\n",
			s.Successful)
		fmt.Fprintf(w, "<tr><td>Unsuccessful</td><td class=\"status-failed\">%d</td></tr>\n",
			s.Unsuccessful)
		fmt.Fprintf(w, "<tr><td>Success Rate</td><td>%.0f%%</td></tr>\n", s.SuccessPercent)
	}
	if s.Filtered > 0 {
		fmt.Fprintf(w, "<tr><td>Filtered</td><td>%d</td></tr>\n", s.Filtered)
	}
	fmt.Fprintln(w, "</table>")
}

func writeSection(w io.Writer, s document.Section) {
	fmt.Fprintf(w, "<section>\n<h2>%s</h2>\n", html.EscapeString(s.Label))
	for _, b := range s.Blocks {
		writeBlock(w, b)
	}
	fmt.Fprintln(w, "</section>")
}

func statusClass(b document.Block) string {
	switch b.Status {
	case document.StatusSuccess:
		return "status-passed"
	case document.StatusFailure:
		return "status-failed"
	default:
		return "block"
	}
}

func writeBlock(w io.Writer, b document.Block) {
	class := statusClass(b)
	switch b.Kind {
	case document.KindText:
		fmt.Fprintf(w, "<p class=\"%s\">%s</p>\n", class, html.EscapeString(b.Text))
	case document.KindHeader:
		fmt.Fprintf(w, "<h3>%s</h3>\n", html.EscapeString(b.Header))
		if b.Subheader != "" {
			fmt.Fprintf(w, "<p>%s</p>\n", html.EscapeString(b.Subheader))
		}
	case document.KindValueList, document.KindBulletList:
		fmt.Fprintf(w, "<p class=\"%s\">%s</p>\n", class, html.EscapeString(b.Header))
		fmt.Fprintln(w, "<ul>")
		for _, item := range b.Items {
			if b.Kind == document.KindValueList {
				fmt.Fprintf(w, "<li><code>%s</code></li>\n", html.EscapeString(item))
			} else {
				fmt.Fprintf(w, "<li>%s</li>\n", html.EscapeString(item))
			}
		}
		fmt.Fprintln(w, "</ul>")
	case document.KindTable:
		if b.Table == nil {
			return
		}
		fmt.Fprintf(w, "<table class=\"%s\">\n", class)
		if b.Table.Title != "" {
			fmt.Fprintf(w, "<caption>%s</caption>\n", html.EscapeString(b.Table.Title))
		}
		writeRow(w, "th", b.Table.Header)
		for _, row := range b.Table.Rows {
			writeRow(w, "td", row)
		}
		fmt.Fprintln(w, "</table>")
	case document.KindGraph:
		if b.Graph == nil {
			return
		}
		fmt.Fprintf(w, "<table class=\"graph\">\n<caption>%s</caption>\n",
			html.EscapeString(b.Graph.Title))
		writeRow(w, "th", []string{b.Graph.X, b.Graph.Y})
		for _, p := range b.Graph.Data {
			fmt.Fprintf(w,
				"<tr><td>%s</td><td><span class=\"bar\" style=\"width: %.0fpx\"></span> %g</td></tr>\n",
				html.EscapeString(p.Label), p.Value*200, p.Value)
		}
		fmt.Fprintln(w, "</table>")
	default:
		fmt.Fprintf(w, "<div class=\"unsupported %s\">\n<p>%s</p>\n", class,
			html.EscapeString(b.Text))
		if b.Raw != nil {
			fmt.Fprintf(w, "<pre><code>%s</code></pre>\n", html.EscapeString(b.Raw.Payload))
		}
		fmt.Fprintln(w, "</div>")
	}
}

func writeRow(w io.Writer, cell string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprint(w, "<tr>")
	for _, v := range values {
		fmt.Fprintf(w, "<%s>%s</%s>", cell, html.EscapeString(v), cell)
	}
	fmt.Fprintln(w, "</tr>")
}

func writeWarnings(w io.Writer, warnings []document.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "<h2>Warnings</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Code</th><th>Expectation</th><th>Column</th><th>Message</th></tr>")
	for _, warn := range warnings {
		fmt.Fprintf(w, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(string(warn.Code)),
			html.EscapeString(warn.Kind),
			html.EscapeString(warn.Column),
			html.EscapeString(warn.Message),
		)
	}
	fmt.Fprintln(w, "</table>")
}

func writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont,
    "Segoe UI", Roboto, sans-serif;
  max-width: 960px;
  margin: 0 auto;
  padding: 20px;
  color: #333;
  background: #f9f9f9;
}
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
h2 { color: #2c3e50; margin-top: 30px; }
h3 { color: #34495e; }
.subheader { color: #7f8c8d; }
table {
  border-collapse: collapse;
  width: 100%%;
  margin: 10px 0;
  background: #fff;
}
caption { text-align: left; padding: 6px 0; font-weight: bold; }
th, td {
  border: 1px solid #ddd;
  padding: 8px 12px;
  text-align: left;
}
th { background: #3498db; color: #fff; }
tr:nth-child(even) { background: #f2f2f2; }
.status-passed { color: #27ae60; }
.status-failed { color: #e74c3c; font-weight: bold; }
.bar { display: inline-block; height: 10px; background: #3498db; }
.unsupported { border-left: 4px solid #f39c12; padding-left: 10px; }
code, pre {
  background: #ecf0f1;
  padding: 2px 6px;
  border-radius: 3px;
  font-size: 0.9em;
}
footer {
  margin-top: 40px;
  padding-top: 10px;
  border-top: 1px solid #ddd;
  color: #7f8c8d;
  font-size: 0.9em;
}
</style>
</head>
<body>
`, html.EscapeString(title))
}

func writeFooter(w io.Writer, id string) {
	fmt.Fprintln(w, "<footer>")
	fmt.Fprintf(w, "<p>Document %s</p>\n", html.EscapeString(id))
	fmt.Fprintln(w, "</footer>")
	fmt.Fprintln(w, "</body>")
	fmt.Fprintln(w, "</html>")
}
