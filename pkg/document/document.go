// Package document defines the rendered document tree: a Document
// holds ordered Sections, each holding ordered content Blocks.
package document

// TableLevelLabel is the reserved label of the section that holds
// expectations without a single target column.
const TableLevelLabel = "Table-Level"

// Document is the root of a rendered tree. It is built fresh for
// every render call and never modified after it is returned.
type Document struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Mode     string    `json:"mode" yaml:"mode"`
	Header   Block     `json:"header" yaml:"header"`
	Summary  Summary   `json:"summary" yaml:"summary"`
	Sections []Section `json:"sections" yaml:"sections"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Summary holds page-level counts.
type Summary struct {
	Expectations   int     `json:"expectations" yaml:"expectations"`
	Evaluated      int     `json:"evaluated" yaml:"evaluated"`
	Successful     int     `json:"successful" yaml:"successful"`
	Unsuccessful   int     `json:"unsuccessful" yaml:"unsuccessful"`
	Filtered       int     `json:"filtered" yaml:"filtered"`
	Sections       int     `json:"sections" yaml:"sections"`
	Blocks         int     `json:"blocks" yaml:"blocks"`
	SuccessPercent float64 `json:"success_percent" yaml:"success_percent"`
}

// Section is a labeled group of blocks, usually one per column.
type Section struct {
	Label  string  `json:"label" yaml:"label"`
	Column string  `json:"column,omitempty" yaml:"column,omitempty"`
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// IsTableLevel reports whether s is the table-level section.
func (s Section) IsTableLevel() bool {
	return s.Label == TableLevelLabel && s.Column == ""
}

// Labels returns the section labels in document order.
func (d *Document) Labels() []string {
	labels := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		labels = append(labels, s.Label)
	}
	return labels
}

// Section returns the section with the given label.
func (d *Document) Section(label string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Label == label {
			return s, true
		}
	}
	return Section{}, false
}

// BlockCount returns the number of blocks across all sections.
func (d *Document) BlockCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Blocks)
	}
	return n
}

// WarningCode classifies a recovered rendering problem.
type WarningCode string

const (
	WarnUnsupportedKind    WarningCode = "unsupported_kind"
	WarnMissingContextData WarningCode = "missing_contextual_data"
	WarnMalformedResult    WarningCode = "malformed_evaluation_result"
)

// Warning records a problem that was absorbed during rendering.
// The affected item is still present as a degraded block.
type Warning struct {
	Code    WarningCode `json:"code" yaml:"code"`
	Kind    string      `json:"kind" yaml:"kind"`
	Column  string      `json:"column,omitempty" yaml:"column,omitempty"`
	Message string      `json:"message" yaml:"message"`
}
