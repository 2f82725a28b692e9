// Package page assembles complete documents from suites and
// evaluation results.
package page

import (
	"errors"
	"fmt"

	"digital.vasic.docrender/pkg/content"
	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/expectation"
	"digital.vasic.docrender/pkg/inspect"
	"digital.vasic.docrender/pkg/section"
)

// Input carries the items to render. Prescriptive composition
// reads Suite, descriptive composition reads Results.
type Input struct {
	Suite   *expectation.Suite
	Results *expectation.ResultSet
}

// Composer turns an Input into a document.
type Composer interface {
	Compose(in Input, lookup inspect.Inspectable) (*document.Document, error)
}

var (
	// ErrNoSuite is returned when prescriptive composition is
	// given no suite.
	ErrNoSuite = errors.New("no expectation suite given")

	// ErrNoResults is returned when descriptive composition is
	// given no result set.
	ErrNoResults = errors.New("no evaluation results given")
)

// Filter decides whether an item is rendered. A returned error
// aborts composition.
type Filter func(item content.Item) (bool, error)

// Option configures a composer.
type Option func(*options)

type options struct {
	title              string
	mapper             *content.Mapper
	parallelism        int
	filter             Filter
	onlyReturnFailures bool
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithMapper sets the content mapper.
func WithMapper(m *content.Mapper) Option {
	return func(o *options) {
		o.mapper = m
	}
}

// WithParallelism sets how many sections are mapped concurrently.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithFilter drops items the filter rejects before grouping.
func WithFilter(f Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithOnlyReturnFailures drops blocks derived from passing
// results. Only descriptive composition honors it.
func WithOnlyReturnFailures(enabled bool) Option {
	return func(o *options) {
		o.onlyReturnFailures = enabled
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.mapper == nil {
		o.mapper = content.NewMapper(nil)
	}
	return o
}

// assemble runs the shared composition steps: filtering, section
// composition, summary and header.
func (o options) assemble(
	mode document.Mode,
	title string,
	items []content.Item,
	lookup inspect.Inspectable,
	keep func(document.Block) bool,
) (*document.Document, error) {
	kept := items
	filtered := 0
	if o.filter != nil {
		kept = make([]content.Item, 0, len(items))
		for i, item := range items {
			ok, err := o.filter(item)
			if err != nil {
				return nil, fmt.Errorf("filter item %d (%s): %w",
					i, item.Expectation.Kind, err)
			}
			if !ok {
				filtered++
				continue
			}
			kept = append(kept, item)
		}
	}

	composer := &section.Composer{
		Mapper:      o.mapper,
		Mode:        mode,
		Lookup:      lookup,
		Parallelism: o.parallelism,
		KeepBlock:   keep,
	}
	sections, warnings := composer.Compose(kept)

	doc := &document.Document{
		ID:       DocumentID(mode, title),
		Title:    title,
		Mode:     mode.String(),
		Sections: sections,
		Warnings: warnings,
	}
	doc.Summary = summarize(items, filtered, doc)
	doc.Header = header(mode, doc)
	return doc, nil
}
