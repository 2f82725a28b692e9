// Package content maps a single expectation or evaluation result
// to the content blocks that represent it.
package content

import (
	"fmt"

	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/expectation"
	"digital.vasic.docrender/pkg/inspect"
)

// Item is one unit of input to the mapper: an expectation, plus
// its evaluation result in descriptive mode.
type Item struct {
	Expectation expectation.Expectation
	Result      *expectation.EVR
}

// PrescriptiveItem wraps an expectation.
func PrescriptiveItem(e expectation.Expectation) Item {
	return Item{Expectation: e}
}

// DescriptiveItem wraps an evaluation result.
func DescriptiveItem(r expectation.EVR) Item {
	return Item{Expectation: r.Expectation, Result: &r}
}

// Context is handed to a Renderer. It carries the expectation
// being rendered and read-only access to contextual data.
type Context struct {
	// Expectation is the rule being rendered.
	Expectation expectation.Expectation

	// Column is the resolved target column, empty for
	// table-level rules.
	Column string

	// Statement is the declarative sentence, set after the
	// renderer's Statement func has run.
	Statement string

	// Lookup provides contextual statistics.
	Lookup inspect.Inspectable

	warnings []document.Warning
}

// Missing records that contextual data for what was not
// available and returns the placeholder to render instead.
func (c *Context) Missing(what string) string {
	c.warnings = append(c.warnings, document.Warning{
		Code:    document.WarnMissingContextData,
		Kind:    c.Expectation.Kind,
		Column:  c.Column,
		Message: fmt.Sprintf("%s not available", what),
	})
	return document.NotAvailable
}

// Kwarg returns the named parameter.
func (c *Context) Kwarg(name string) (any, bool) {
	return c.Expectation.Kwarg(name)
}

// Renderer turns an expectation kind into text and blocks.
type Renderer struct {
	// Statement returns the declarative sentence for the
	// expectation. Required.
	Statement func(c *Context) string

	// Blocks builds the prescriptive blocks. When nil, a single
	// text block carrying the statement is used.
	Blocks func(c *Context) []document.Block
}
