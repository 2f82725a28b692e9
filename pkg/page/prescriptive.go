package page

import (
	"digital.vasic.docrender/pkg/content"
	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/inspect"
)

// DefaultPrescriptiveTitle is used when the suite has no name.
const DefaultPrescriptiveTitle = "Expectation Suite"

// Prescriptive renders an expectation suite as declarative
// statements.
type Prescriptive struct {
	opts options
}

// NewPrescriptive creates a prescriptive composer.
func NewPrescriptive(opts ...Option) *Prescriptive {
	return &Prescriptive{opts: newOptions(opts)}
}

// Compose renders in.Suite.
func (p *Prescriptive) Compose(
	in Input,
	lookup inspect.Inspectable,
) (*document.Document, error) {
	if in.Suite == nil {
		return nil, ErrNoSuite
	}

	items := make([]content.Item, 0, len(in.Suite.Expectations))
	for _, e := range in.Suite.Expectations {
		items = append(items, content.PrescriptiveItem(e))
	}

	title := p.opts.title
	if title == "" {
		title = in.Suite.Name
	}
	if title == "" {
		title = DefaultPrescriptiveTitle
	}

	return p.opts.assemble(document.ModePrescriptive, title, items, lookup, nil)
}
