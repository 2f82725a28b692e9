package page

import (
	"digital.vasic.docrender/pkg/content"
	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/inspect"
)

// DefaultDescriptiveTitle is used when the result set names no
// suite.
const DefaultDescriptiveTitle = "Validation Results"

// Descriptive renders evaluation results as outcomes.
type Descriptive struct {
	opts options
}

// NewDescriptive creates a descriptive composer.
func NewDescriptive(opts ...Option) *Descriptive {
	return &Descriptive{opts: newOptions(opts)}
}

// Compose renders in.Results. With only-failures enabled, blocks
// from passing results are dropped and emptied sections omitted.
func (d *Descriptive) Compose(
	in Input,
	lookup inspect.Inspectable,
) (*document.Document, error) {
	if in.Results == nil {
		return nil, ErrNoResults
	}

	items := make([]content.Item, 0, len(in.Results.Results))
	for _, r := range in.Results.Results {
		items = append(items, content.DescriptiveItem(r))
	}

	title := d.opts.title
	if title == "" {
		title = in.Results.SuiteName
	}
	if title == "" {
		title = DefaultDescriptiveTitle
	}

	var keep func(document.Block) bool
	if d.opts.onlyReturnFailures {
		keep = func(b document.Block) bool { return b.Failed() }
	}

	return d.opts.assemble(document.ModeDescriptive, title, items, lookup, keep)
}
